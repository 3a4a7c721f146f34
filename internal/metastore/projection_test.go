package metastore

import (
	"testing"
	"time"
)

func mustInsert(t *testing.T, s *Store, filename string, rec Record) {
	t.Helper()
	if _, err := s.InsertIfAbsent(filename, rec); err != nil {
		t.Fatalf("InsertIfAbsent %s: %v", filename, err)
	}
}

func TestSorted_DescendingWithDefaultLast(t *testing.T) {
	s := testStore(t)
	alpha := time.Date(2024, 1, 5, 10, 0, 0, 0, time.Local).UTC()
	beta := time.Date(2024, 3, 1, 9, 30, 0, 0, time.Local).UTC()
	mustInsert(t, s, "a.html", Record{Title: "Alpha", Published: alpha})
	mustInsert(t, s, "b.html", Record{Title: "Beta", Published: beta})
	mustInsert(t, s, "c.html", Record{Title: ""})

	got, err := s.Sorted("")
	if err != nil {
		t.Fatalf("Sorted: %v", err)
	}

	want := []Listing{
		{Filename: "b.html", Title: "Beta", Published: beta.Format(time.RFC3339)},
		{Filename: "a.html", Title: "Alpha", Published: alpha.Format(time.RFC3339)},
		{Filename: "c.html", Title: "", Published: time.Time{}.Format(time.RFC3339)},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSorted_LatestNSlice(t *testing.T) {
	s := testStore(t)
	mustInsert(t, s, "a.html", Record{Title: "Alpha", Published: time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)})
	mustInsert(t, s, "b.html", Record{Title: "Beta", Published: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)})
	mustInsert(t, s, "c.html", Record{Title: "Gamma"})

	got, err := s.Sorted("")
	if err != nil {
		t.Fatalf("Sorted: %v", err)
	}
	latest := got[:2]
	if latest[0].Title != "Beta" || latest[1].Title != "Alpha" {
		t.Errorf("latest 2 = [%s %s], want [Beta Alpha]", latest[0].Title, latest[1].Title)
	}
}

func TestSorted_EqualTimestampsTiebreak(t *testing.T) {
	s := testStore(t)
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	mustInsert(t, s, "zulu.html", Record{Title: "Z", Published: ts})
	mustInsert(t, s, "alpha.html", Record{Title: "A", Published: ts})

	got, err := s.Sorted("")
	if err != nil {
		t.Fatalf("Sorted: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (no loss, no duplication)", len(got))
	}
	if got[0].Filename != "alpha.html" || got[1].Filename != "zulu.html" {
		t.Errorf("tiebreak order = [%s %s], want filename ascending", got[0].Filename, got[1].Filename)
	}
}

func TestSorted_FormatOnlyChangesTimestampText(t *testing.T) {
	s := testStore(t)
	mustInsert(t, s, "a.html", Record{Title: "Alpha", Published: time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)})
	mustInsert(t, s, "b.html", Record{Title: "Beta", Published: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)})

	plain, err := s.Sorted("")
	if err != nil {
		t.Fatalf("Sorted: %v", err)
	}
	custom, err := s.Sorted("2006-01-02")
	if err != nil {
		t.Fatalf("Sorted custom: %v", err)
	}
	if len(plain) != len(custom) {
		t.Fatalf("lengths differ: %d vs %d", len(plain), len(custom))
	}
	for i := range plain {
		if plain[i].Filename != custom[i].Filename || plain[i].Title != custom[i].Title {
			t.Errorf("entry %d: ordering differs between formats", i)
		}
		if plain[i].Published == custom[i].Published {
			t.Errorf("entry %d: timestamps should render differently", i)
		}
	}
	if custom[0].Published != "2024-03-01" {
		t.Errorf("custom format = %q, want 2024-03-01", custom[0].Published)
	}
}

func TestSorted_EmptyStore(t *testing.T) {
	s := testStore(t)
	got, err := s.Sorted("")
	if err != nil {
		t.Fatalf("Sorted: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

package metastore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitForRecord(t *testing.T, s *Store, filename string) Record {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		ok, err := s.Contains(filename)
		if err != nil {
			t.Fatalf("Contains: %v", err)
		}
		if ok {
			rec, err := s.Get(filename)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			return rec
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("record for %s never appeared", filename)
	return Record{}
}

func TestWatch_IndexesNewPost(t *testing.T) {
	dir := t.TempDir()
	s := testStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = Watch(ctx, s, dir, discardLogger())
	}()

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)

	writePost(t, dir, "new.html", "New Post", "Created: 2024-05-01 Wed 08:00")

	rec := waitForRecord(t, s, "new.html")
	if rec.Title != "New Post" {
		t.Errorf("title = %q, want %q", rec.Title, "New Post")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}

// A post is usually created empty and filled in by a second write. The
// record must reflect the final content, not whatever was on disk when
// the Create event fired.
func TestWatch_WaitsForContentBeforeIndexing(t *testing.T) {
	dir := t.TempDir()
	s := testStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = Watch(ctx, s, dir, discardLogger()) }()
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "slow.html")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)
	writePost(t, dir, "slow.html", "Slow Export", "Created: 2024-06-01 Sat 12:00")

	rec := waitForRecord(t, s, "slow.html")
	if rec.Title != "Slow Export" {
		t.Errorf("title = %q, want %q", rec.Title, "Slow Export")
	}
	if rec.Published.IsZero() {
		t.Error("timestamp should come from the final content")
	}
}

func TestWatch_IgnoresNonPosts(t *testing.T) {
	dir := t.TempDir()
	s := testStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = Watch(ctx, s, dir, discardLogger()) }()
	time.Sleep(100 * time.Millisecond)

	writePost(t, dir, "real.html", "Real", "")
	writePost(t, dir, "ignored.txt.bak", "Nope", "")

	waitForRecord(t, s, "real.html")
	ok, err := s.Contains("ignored.txt.bak")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("non-post file should not be indexed")
	}
}

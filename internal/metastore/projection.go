package metastore

import (
	"sort"
	"time"
)

// Listing is one row of the sorted projection: the inputs every public
// page (blog index, home excerpt, Atom feed) consumes verbatim.
type Listing struct {
	Filename  string
	Title     string
	Published string
}

// Sorted materializes the whole store ordered newest-first and renders each
// timestamp through format, a Go reference layout. An empty format means
// RFC3339. Entries with equal timestamps are ordered by filename ascending
// so the projection is deterministic regardless of traversal order.
//
// The store is never mutated; this is a pure read. Full decode-and-sort per
// call is fine at corpus scale (tens to low hundreds of posts).
func (s *Store) Sorted(format string) ([]Listing, error) {
	entries, err := s.All()
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.Record.Published.Equal(b.Record.Published) {
			return a.Record.Published.After(b.Record.Published)
		}
		return a.Filename < b.Filename
	})

	if format == "" {
		format = time.RFC3339
	}
	out := make([]Listing, len(entries))
	for i, e := range entries {
		out[i] = Listing{
			Filename:  e.Filename,
			Title:     e.Record.Title,
			Published: e.Record.Published.Format(format),
		}
	}
	return out, nil
}

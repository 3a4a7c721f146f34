// Package postservice coordinates the metadata store and the post corpus
// for the web and MCP surfaces.
package postservice

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/halvard/orglog/internal/apperr"
	"github.com/halvard/orglog/internal/metastore"
)

// PostDetail is the full representation of a post: its cached metadata plus
// the document body read from disk.
type PostDetail struct {
	Filename  string
	Title     string
	Published time.Time
	Content   string
}

// Service serves posts from the corpus directory with metadata from the
// store. It never writes to either.
type Service struct {
	store *metastore.Store
	dir   string
}

// NewService creates a post service over the given store and corpus dir.
func NewService(store *metastore.Store, dir string) *Service {
	return &Service{store: store, dir: dir}
}

// GetPost returns the post named by filename. An unindexed filename, a
// traversal attempt, or a record whose file has gone missing all map to
// apperr.ErrNotFound.
func (s *Service) GetPost(_ context.Context, filename string) (*PostDetail, error) {
	if !validFilename(filename) {
		return nil, apperr.ErrNotFound
	}
	rec, err := s.store.Get(filename)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("postservice: read %s: %w", filename, err)
	}
	return &PostDetail{
		Filename:  filename,
		Title:     rec.Title,
		Published: rec.Published,
		Content:   string(data),
	}, nil
}

// Listing returns all posts newest-first with timestamps rendered through
// format ("" means RFC3339).
func (s *Service) Listing(_ context.Context, format string) ([]metastore.Listing, error) {
	return s.store.Sorted(format)
}

// Recent returns at most n entries from the head of the listing.
func (s *Service) Recent(ctx context.Context, format string, n int) ([]metastore.Listing, error) {
	all, err := s.Listing(ctx, format)
	if err != nil {
		return nil, err
	}
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

// validFilename rejects anything that is not a bare post filename. Keys in
// the store are base names, so path separators can only be traversal
// attempts.
func validFilename(name string) bool {
	return name != "" && !strings.ContainsAny(name, `/\`) && name != "." && name != ".."
}

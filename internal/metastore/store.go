// Package metastore is the durable metadata cache for the post corpus. It
// maps each document filename to a write-once binary Record kept in an
// embedded pebble database, conventionally nested under the posts directory
// so the cache travels with the content.
package metastore

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/halvard/orglog/internal/apperr"
)

// writeOptions syncs every insert; the cache must survive a crash without
// losing records, or the no-re-index rule would drop posts on restart.
var writeOptions = pebble.WriteOptions{Sync: true}

// Store is the pebble-backed metadata cache. A single Store is opened at
// process start and shared across request handlers; pebble supports
// concurrent readers without external locking.
type Store struct {
	db *pebble.DB
}

// Open opens (creating if absent) the store rooted at path.
func Open(path string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("metastore: open %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Contains reports whether filename has already been indexed. No decoding
// is performed.
func (s *Store) Contains(filename string) (bool, error) {
	_, closer, err := s.db.Get([]byte(filename))
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("metastore: contains %s: %w", filename, err)
	}
	_ = closer.Close()
	return true, nil
}

// InsertIfAbsent writes rec under filename unless a record already exists,
// in which case it is a no-op. Records are write-once: a later scan of the
// same filename never overwrites the stored bytes. The reported bool is
// true when the record was written.
//
// The contains check and the write are not atomic against a second writer
// on the same key; the bootstrap scan and the watcher are the only writers
// and never run concurrently.
func (s *Store) InsertIfAbsent(filename string, rec Record) (bool, error) {
	ok, err := s.Contains(filename)
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}
	if err := s.db.Set([]byte(filename), rec.Encode(), &writeOptions); err != nil {
		return false, fmt.Errorf("metastore: insert %s: %w", filename, err)
	}
	return true, nil
}

// Get returns the record stored under filename, apperr.ErrNotFound when the
// filename was never indexed. A record that is present but undecodable
// signals store corruption and surfaces apperr.ErrCorrupt.
func (s *Store) Get(filename string) (Record, error) {
	val, closer, err := s.db.Get([]byte(filename))
	if errors.Is(err, pebble.ErrNotFound) {
		return Record{}, apperr.ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("metastore: get %s: %w", filename, err)
	}
	defer closer.Close()
	return DecodeRecord(val)
}

// Entry pairs a filename with its decoded record.
type Entry struct {
	Filename string
	Record   Record
}

// All returns every stored entry in unspecified order. Decode failure
// anywhere aborts the traversal: callers rely on the full set being present
// (feed updated-time, latest-N slicing), so a corrupt entry is never
// silently dropped.
func (s *Store) All() ([]Entry, error) {
	it, err := s.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, fmt.Errorf("metastore: iterator: %w", err)
	}
	defer it.Close()

	var out []Entry
	for it.First(); it.Valid(); it.Next() {
		rec, err := DecodeRecord(it.Value())
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{Filename: string(it.Key()), Record: rec})
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("metastore: scan: %w", err)
	}
	return out, nil
}

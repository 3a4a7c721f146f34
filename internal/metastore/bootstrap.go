package metastore

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/halvard/orglog/internal/extract"
)

// postExt marks a directory entry as a post. The store's own directory
// lives under the corpus dir and is skipped along with everything else
// that does not carry the extension.
const postExt = ".html"

// Bootstrap indexes every post in dir that is not already in the store.
// It runs once at startup, before the store is exposed to request traffic,
// and is a no-op for filenames already present. Unreadable entries are
// fatal; a malformed date paragraph is logged and the document is recorded
// with the default timestamp instead of aborting the scan.
func Bootstrap(s *Store, dir string, logger *slog.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("metastore: read corpus dir: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), postExt) {
			continue
		}
		if err := indexFile(s, filepath.Join(dir, e.Name()), logger); err != nil {
			return err
		}
	}
	return nil
}

// indexFile extracts metadata from the file at path and inserts it under
// its base filename unless already present. Shared by Bootstrap and the
// watcher.
func indexFile(s *Store, path string, logger *slog.Logger) error {
	filename := filepath.Base(path)

	// Cheap existence check first so unchanged corpora re-read nothing.
	ok, err := s.Contains(filename)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("metastore: read %s: %w", filename, err)
	}

	meta, err := extract.Extract(data)
	switch {
	case errors.Is(err, extract.ErrDateFormat):
		logger.Warn("index: bad date text, recording default timestamp",
			slog.String("filename", filename),
			slog.String("error", err.Error()))
	case err != nil:
		return err
	}

	inserted, err := s.InsertIfAbsent(filename, Record{Title: meta.Title, Published: meta.Published})
	if err != nil {
		return err
	}
	if inserted {
		logger.Debug("index: recorded",
			slog.String("filename", filename),
			slog.String("title", meta.Title))
	}
	return nil
}

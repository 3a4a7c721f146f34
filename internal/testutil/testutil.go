// Package testutil provides shared test helpers for setting up corpora and
// metadata stores.
package testutil

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/halvard/orglog/internal/metastore"
)

// TestCorpus creates a temporary posts directory and an empty metadata
// store, both cleaned up with the test.
func TestCorpus(t *testing.T) (string, *metastore.Store) {
	t.Helper()
	dir := t.TempDir()
	store, err := metastore.Open(filepath.Join(t.TempDir(), "metadata"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return dir, store
}

// WritePost writes an org-export-shaped HTML document into dir. An empty
// dateText omits the date paragraph entirely.
func WritePost(t *testing.T, dir, name, title, dateText string) {
	t.Helper()
	var date string
	if dateText != "" {
		date = fmt.Sprintf(`<p class="date">%s</p>`, dateText)
	}
	doc := fmt.Sprintf("<html><head><title>%s</title></head><body>%s<div id=\"content\">%s body</div></body></html>",
		title, date, title)
	if err := os.WriteFile(filepath.Join(dir, name), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
}

// BootstrapCorpus runs the startup scan against dir with a silent logger.
func BootstrapCorpus(t *testing.T, store *metastore.Store, dir string) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := metastore.Bootstrap(store, dir, logger); err != nil {
		t.Fatal(err)
	}
}

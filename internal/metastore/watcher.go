package metastore

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay is how long a post must stay quiet on disk before it is
// indexed. Exporters typically create the file and stream the body in
// afterwards, so indexing on the Create event alone would record the
// half-written document, and records are write-once.
const settleDelay = 200 * time.Millisecond

// Watch indexes posts dropped into dir after startup, so an export does not
// require a server restart. Create and Write events for files with the post
// extension mark the file as pending; the insert happens once no further
// events arrive for settleDelay. Rewrites of an already indexed file are
// ignored at insert time, and removal from disk never touches the store.
// Runs until ctx is cancelled.
//
// Watch is the sole writer once Bootstrap has returned, keeping the
// contains-then-insert sequence single-writer.
func Watch(ctx context.Context, s *Store, dir string, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("dir", dir))

	// settleTimer debounces indexing of pending files.
	pending := make(map[string]struct{})
	var settleTimer *time.Timer
	var settleCh <-chan time.Time

	scheduleSettle := func() {
		if settleTimer == nil {
			settleTimer = time.NewTimer(settleDelay)
			settleCh = settleTimer.C
		} else {
			settleTimer.Reset(settleDelay)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if settleTimer != nil {
				settleTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-settleCh:
			for path := range pending {
				delete(pending, path)
				if err := indexFile(s, path, logger); err != nil {
					logger.Warn("watcher: index failed",
						slog.String("path", path),
						slog.String("error", err.Error()))
				}
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 || !strings.HasSuffix(ev.Name, postExt) {
				continue
			}
			if info, statErr := os.Stat(ev.Name); statErr != nil || info.IsDir() {
				continue
			}
			pending[ev.Name] = struct{}{}
			scheduleSettle()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

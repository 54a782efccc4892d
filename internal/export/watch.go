package export

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch re-runs fn whenever the snapshot file at source changes, until
// ctx is cancelled. Events are debounced so tools that write a snapshot
// in several steps trigger a single export.
func Watch(ctx context.Context, source string, logger *slog.Logger, fn func(context.Context) error) error {
	abs, err := filepath.Abs(source)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Watch the parent directory: a replace-by-rename write would detach
	// a watch placed on the file itself.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	logger.Info("watch: started", slog.String("source", abs))

	var debounce *time.Timer
	var fire <-chan time.Time

	schedule := func() {
		if debounce == nil {
			debounce = time.NewTimer(200 * time.Millisecond)
			fire = debounce.C
		} else {
			debounce.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			logger.Info("watch: stopped")
			return nil

		case <-fire:
			logger.Info("watch: snapshot changed, re-exporting")
			if err := fn(ctx); err != nil {
				logger.Error("watch: export failed", slog.String("error", err.Error()))
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				schedule()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch: error", slog.String("error", watchErr.Error()))
		}
	}
}

package assets

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the catalog at path whenever it changes on disk and sends
// each successfully parsed catalog on the returned channel. The directory is
// watched rather than the file so editors that replace the file on save are
// still seen. Parse failures are logged and skipped. The channel is closed
// when ctx is done.
func Watch(ctx context.Context, path string, logger *slog.Logger) (<-chan []*Asset, error) {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch catalog: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch catalog: %w", err)
	}

	out := make(chan []*Asset, 1)
	go func() {
		defer close(out)
		defer w.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				list, err := LoadCatalog(abs)
				if err != nil {
					logger.Warn("catalog reload failed", "path", abs, "err", err)
					continue
				}
				logger.Info("catalog reloaded", "path", abs, "assets", len(list))

				// Only the newest catalog matters; drop one that was never picked up.
				select {
				case <-out:
				default:
				}
				select {
				case out <- list:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("catalog watcher error", "err", err)
			}
		}
	}()
	return out, nil
}

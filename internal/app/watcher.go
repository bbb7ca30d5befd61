package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/five82/catalogue/internal/debounce"
)

const defaultReloadDelay = 250 * time.Millisecond

// watchFile calls reload after path changes on disk, coalescing bursts of
// events that arrive within delay. Reloads run on the calling goroutine, one
// at a time; changes seen during a reload queue at most one more. It blocks
// until ctx is done.
//
// The parent directory is watched rather than the file so editors that save
// by renaming a temp file over the original keep triggering reloads.
func watchFile(ctx context.Context, path string, delay time.Duration, clock debounce.Clock, logger *zap.Logger, reload func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	logger.Debug("watching source file", zap.String("path", target))

	if delay <= 0 {
		delay = defaultReloadDelay
	}
	settled := make(chan struct{}, 1)
	var events uint64
	trigger := debounce.New(events, delay, clock, func(uint64) {
		select {
		case settled <- struct{}{}:
		default:
		}
	})
	defer trigger.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-settled:
			reload()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("source file changed", zap.String("op", event.Op.String()))
			events++
			trigger.Set(events)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("source watcher error", zap.Error(err))
		}
	}
}

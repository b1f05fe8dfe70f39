package rankings

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is how long the watcher waits after the last file event
// before refreshing.
const DefaultDebounce = 500 * time.Millisecond

// Watch refreshes the repository whenever a ranking sheet in dir is
// written, created, renamed or removed. Bursts of events collapse into one
// refresh. It blocks until ctx is cancelled.
func (r *Repository) Watch(ctx context.Context, dir string, debounce time.Duration) (err error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch rankings directory: %w", err)
	}
	r.logger.WithField("dir", dir).Info("Watching rankings directory")

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isRankingFile(filepath.Base(event.Name)) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			r.logger.WithFields(logrus.Fields{"file": event.Name, "op": event.Op.String()}).Debug("Rankings file changed")
			timer.Reset(debounce)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.WithError(werr).Warn("Rankings watcher error")
		case <-timer.C:
			if _, err := r.Refresh(ctx); err != nil {
				r.logger.WithError(err).Warn("Rankings reload after file change failed")
			}
		}
	}
}

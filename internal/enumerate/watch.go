package enumerate

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// WatchFunc re-runs a collation. Returning an error stops the watch.
type WatchFunc func() error

// Watch runs fn once immediately, then again each time root's contents
// settle for the debounce interval after a filesystem event. It blocks
// until ctx is cancelled (returning nil), the watcher reports an error, or
// fn fails.
func Watch(ctx context.Context, root string, debounce time.Duration, fn WatchFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(root); err != nil {
		return err
	}

	if err := fn(); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		timer := time.NewTimer(debounce)
		if !timer.Stop() {
			<-timer.C
		}
		pending := false

		for {
			select {
			case <-ctx.Done():
				return nil
			case _, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if pending {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
				}
				timer.Reset(debounce)
				pending = true
			case watchErr, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				return watchErr
			case <-timer.C:
				pending = false
				if err := fn(); err != nil {
					return err
				}
			}
		}
	})
	return g.Wait()
}

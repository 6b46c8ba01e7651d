package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/loom/internal/config"
)

// WatchDebounce is how long the watcher waits after the last change
// before re-running the pipeline. Editors fire several events per
// save; the pipeline should run once per save, not once per event.
const WatchDebounce = 100 * time.Millisecond

// Watch runs the pipeline once, then re-runs it whenever the input
// document or a filter script changes, until ctx is cancelled. Run
// failures are logged rather than returned so a half-saved input
// does not end the watch.
func (r *Runner) Watch(ctx context.Context) error {
	in := filepath.Clean(r.resolve(r.cfg.Input.Path))
	if in == filepath.Clean(r.resolve(r.cfg.Output.Path)) {
		return ErrWatchInPlace
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch parent directories and filter events by path: editors
	// often replace files on save, which drops direct file watches.
	watched := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, path := range r.watchPaths() {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		watched[abs] = true

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	r.runLogged()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantOp(event.Op) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}
			r.log.Debug("change detected: %s", event.Name)
			if timer == nil {
				timer = time.NewTimer(WatchDebounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(WatchDebounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			r.runLogged()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.Error("watch error: %v", err)
		}
	}
}

// watchPaths lists the files whose changes re-run the pipeline.
func (r *Runner) watchPaths() []string {
	paths := []string{r.resolve(r.cfg.Input.Path)}
	for _, step := range r.cfg.Steps {
		if step.Op == config.OpFilter {
			paths = append(paths, r.resolve(step.Script))
		}
	}
	return paths
}

func (r *Runner) runLogged() {
	if err := r.Run(); err != nil {
		r.log.Error("run failed: %v", err)
	}
}

func relevantOp(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}

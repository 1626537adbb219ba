package roster

import (
	"context"
	"log"
	"os"
	"time"
)

// FileWatcher polls file modification times.
// Files that appear after the first scan count as changed.
type FileWatcher struct {
	Paths    []string
	Interval time.Duration

	primed    bool
	lastMTime map[string]time.Time
}

// NewFileWatcher creates a watcher for given paths and interval.
func NewFileWatcher(paths []string, interval time.Duration) *FileWatcher {
	return &FileWatcher{
		Paths:     paths,
		Interval:  interval,
		lastMTime: make(map[string]time.Time),
	}
}

// Poll scans once and returns the paths that changed since the last scan.
// The first call only records mtimes.
func (w *FileWatcher) Poll() []string {
	var changed []string
	for _, p := range w.Paths {
		fi, err := os.Stat(p)
		if err != nil {
			// missing file: forget it so a later re-create is noticed
			if _, ok := w.lastMTime[p]; ok {
				delete(w.lastMTime, p)
				if w.primed {
					changed = append(changed, p)
				}
			}
			continue
		}
		mt := fi.ModTime()
		last, ok := w.lastMTime[p]
		if !ok || mt.After(last) {
			w.lastMTime[p] = mt
			if w.primed {
				changed = append(changed, p)
			}
		}
	}
	w.primed = true
	return changed
}

// Run polls until ctx is done, calling onChange once per scan that saw changes.
func (w *FileWatcher) Run(ctx context.Context, onChange func([]string)) {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	w.Poll()
	for {
		select {
		case <-ticker.C:
			if changed := w.Poll(); len(changed) > 0 && onChange != nil {
				onChange(changed)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Reloader keeps a Store in sync with the roster files on disk.
type Reloader struct {
	loader *Loader
	store  *Store
	logger *log.Logger
}

func NewReloader(loader *Loader, store *Store, logger *log.Logger) *Reloader {
	if logger == nil {
		logger = log.Default()
	}
	return &Reloader{loader: loader, store: store, logger: logger}
}

// Reload re-reads the files and swaps the store. On error the previous
// roster stays in place.
func (r *Reloader) Reload() error {
	r.loader.Invalidate()
	next, err := r.loader.Load()
	if err != nil {
		return err
	}
	r.store.Swap(next)
	return nil
}

// Watch polls the roster files every interval until ctx is done.
func (r *Reloader) Watch(ctx context.Context, interval time.Duration) {
	w := NewFileWatcher(r.loader.Paths().All(), interval)
	w.Run(ctx, func(changed []string) {
		if err := r.Reload(); err != nil {
			r.logger.Printf("roster reload (%v) failed, keeping previous roster: %v", changed, err)
			return
		}
		cur := r.store.Current()
		r.logger.Printf("roster reloaded: %d batters, %d pitchers", cur.Len(Batter), cur.Len(Pitcher))
	})
}

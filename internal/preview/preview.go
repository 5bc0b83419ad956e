// Package preview serves the generated site locally and optionally watches
// the source directories, rebuilding on change.
package preview

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/siteforge/internal/logfields"
)

// Options configures the preview server.
type Options struct {
	Addr    string
	SiteDir string

	// WatchDirs are watched recursively; any change triggers Rebuild after
	// a short debounce. Empty means no watching.
	WatchDirs []string

	// Rebuild re-runs the site build. Required when WatchDirs is set.
	Rebuild func() error

	// MetricsHandler, when non-nil, is mounted at /metrics.
	MetricsHandler http.Handler
}

const debounceInterval = 250 * time.Millisecond

// Serve runs the preview server until ctx is canceled.
func Serve(ctx context.Context, opts Options) error {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(opts.SiteDir)))
	if opts.MetricsHandler != nil {
		mux.Handle("/metrics", opts.MetricsHandler)
	}

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	if len(opts.WatchDirs) > 0 {
		watcher, err := newWatcher(opts.WatchDirs)
		if err != nil {
			return err
		}
		defer func() { _ = watcher.Close() }()
		go watchLoop(ctx, watcher, opts.Rebuild)
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("preview server listening", logfields.Addr(opts.Addr), logfields.Path(opts.SiteDir))
		errChan <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func newWatcher(dirs []string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		watchRecursive(watcher, dir)
	}
	return watcher, nil
}

// watchRecursive registers dir and every directory below it. fsnotify's Add
// only watches one level, so new nested directories must also be added as
// they appear (see watchLoop).
func watchRecursive(watcher *fsnotify.Watcher, dir string) {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return watcher.Add(path)
	})
	if err != nil {
		slog.Warn("cannot watch directory", logfields.Path(dir), logfields.Error(err))
	}
}

// watchLoop debounces change bursts (editors fire several events per save)
// and runs one rebuild per quiet period.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, rebuild func() error) {
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	schedule := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounceInterval, func() {
			select {
			case fire <- struct{}{}:
			default:
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				if event.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						watchRecursive(watcher, event.Name)
					}
				}
				slog.Debug("source changed", logfields.Path(event.Name))
				schedule()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("watch error", logfields.Error(err))
		case <-fire:
			if rebuild == nil {
				continue
			}
			if err := rebuild(); err != nil {
				slog.Error("rebuild failed", logfields.Error(err))
			} else {
				slog.Info("site rebuilt")
			}
		}
	}
}

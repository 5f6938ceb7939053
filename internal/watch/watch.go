// Package watch reloads the configuration file when it changes on disk.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/san-kum/glyphfield/internal/config"
	"go.uber.org/zap"
)

const DefaultDebounce = 200 * time.Millisecond

// minTick bounds how often pending events are checked.
const minTick = time.Millisecond

// ConfigWatcher watches the directory of a config file so editors that
// replace the file on save are still seen.
type ConfigWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	log      *zap.Logger
	onChange func(*config.Config, error)
	debounce time.Duration
	pending  time.Time
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	stopped  bool
}

// New creates a watcher for path. onChange receives every reloaded config,
// or the error that prevented loading it.
func New(path string, log *zap.Logger, onChange func(*config.Config, error)) (*ConfigWatcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &ConfigWatcher{
		watcher:  w,
		path:     abs,
		log:      log,
		onChange: onChange,
		debounce: DefaultDebounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// SetDebounce changes the quiet period before a reload. Call before Start.
// Non-positive values restore the default.
func (cw *ConfigWatcher) SetDebounce(d time.Duration) {
	if d <= 0 {
		d = DefaultDebounce
	}
	cw.debounce = d
}

// Start begins watching in a goroutine.
func (cw *ConfigWatcher) Start(ctx context.Context) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if cw.running || cw.stopped {
		return nil
	}
	if err := cw.watcher.Add(filepath.Dir(cw.path)); err != nil {
		return err
	}
	cw.running = true
	cw.log.Info("watching config", zap.String("path", cw.path))
	go cw.run(ctx)
	return nil
}

// Stop ends the watch and waits for the goroutine to exit. Later calls do
// nothing.
func (cw *ConfigWatcher) Stop() {
	cw.mu.Lock()
	if cw.stopped {
		cw.mu.Unlock()
		return
	}
	cw.stopped = true
	running := cw.running
	cw.running = false
	cw.mu.Unlock()

	close(cw.stopCh)
	if running {
		<-cw.doneCh
	}
	if err := cw.watcher.Close(); err != nil {
		cw.log.Warn("closing config watcher", zap.Error(err))
	}
}

func (cw *ConfigWatcher) run(ctx context.Context) {
	defer close(cw.doneCh)

	tick := time.NewTicker(max(cw.debounce/4, minTick))
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stopCh:
			return

		case ev, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != cw.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			cw.log.Debug("config event", zap.String("op", ev.Op.String()))
			cw.pending = time.Now()

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.log.Warn("config watcher error", zap.Error(err))

		case now := <-tick.C:
			if cw.pending.IsZero() || now.Sub(cw.pending) < cw.debounce {
				continue
			}
			cw.pending = time.Time{}
			cw.reload()
		}
	}
}

func (cw *ConfigWatcher) reload() {
	cfg, err := config.Load(cw.path)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		cw.log.Warn("config reload failed", zap.Error(err))
		cw.onChange(nil, err)
		return
	}
	cw.log.Info("config reloaded", zap.String("path", cw.path))
	cw.onChange(cfg, nil)
}

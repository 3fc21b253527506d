package config

import (
	"io"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow coalesces the bursts of write events editors produce
// when saving a file.
const debounceWindow = 200 * time.Millisecond

// Watcher reloads the configuration file when it changes and hands the
// parsed result to a callback. Reload failures are logged and the
// previous configuration stays in effect.
type Watcher struct {
	path     string
	onChange func(Config)
	logger   *slog.Logger

	fsw  *fsnotify.Watcher
	done chan struct{}
}

// NewWatcher starts watching path. The callback runs on the watcher
// goroutine; callers deliver into their own event loop as needed.
func NewWatcher(path string, logger *slog.Logger, onChange func(Config)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(path); err != nil {
		fsw.Close()
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	w := &Watcher{
		path:     path,
		onChange: onChange,
		logger:   logger.With("component", "config"),
		fsw:      fsw,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) run() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				timerC = timer.C
			} else {
				timer.Reset(debounceWindow)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		case <-timerC:
			timer = nil
			timerC = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Warn("config reload failed", "error", err)
		return
	}
	w.logger.Info("config reloaded")
	w.onChange(cfg)
}

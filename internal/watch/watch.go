// Package watch observes a single configuration file for changes.
//
// The watcher registers on the file's parent directory rather than the
// file itself, so atomic replace-by-rename writes keep delivering events
// after the original inode disappears.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces editor write bursts into one event.
const DefaultDebounce = 100 * time.Millisecond

var (
	// ErrClosed indicates an operation on a closed watcher.
	ErrClosed = errors.New("watcher is closed")

	// ErrAlreadyStarted indicates Start was called twice.
	ErrAlreadyStarted = errors.New("watcher already started")

	// ErrNoPath indicates the configuration lacked a file path.
	ErrNoPath = errors.New("watch path is required")
)

// Op names the kind of change observed on the file.
type Op string

// File operations surfaced to subscribers.
const (
	OpCreate Op = "create"
	OpWrite  Op = "write"
	OpRemove Op = "remove"
	OpRename Op = "rename"
	OpChmod  Op = "chmod"
)

// Event is a debounced change notification for the watched file.
type Event struct {
	Path string
	Op   Op
	At   time.Time
}

// LogWriter receives diagnostic output from the watcher.
type LogWriter interface {
	Debug(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Config carries the watcher dependencies.
type Config struct {
	// Path is the file to observe. Required.
	Path string

	// DebounceInterval overrides DefaultDebounce when positive.
	DebounceInterval time.Duration

	// Logger receives diagnostics. Optional.
	Logger LogWriter
}

// Watcher delivers debounced change events for one file.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	dir      string
	base     string
	debounce time.Duration
	logger   LogWriter

	events chan Event
	errors chan error

	mu       sync.Mutex
	running  bool
	closed   bool
	stopChan chan struct{}
	timer    *time.Timer
	pending  Event
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Error(string, ...interface{}) {}

// New creates a watcher for the file named in cfg. The parent directory
// must exist before Start is called.
func New(cfg *Config) (*Watcher, error) {
	if cfg == nil || cfg.Path == "" {
		return nil, ErrNoPath
	}

	debounce := cfg.DebounceInterval
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	var logger LogWriter = noopLogger{}
	if cfg.Logger != nil {
		logger = cfg.Logger
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsw:      fsw,
		path:     cfg.Path,
		dir:      filepath.Dir(cfg.Path),
		base:     filepath.Base(cfg.Path),
		debounce: debounce,
		logger:   logger,
		events:   make(chan Event, 16),
		errors:   make(chan error, 4),
		stopChan: make(chan struct{}),
	}, nil
}

// Start registers the parent directory and begins event delivery. It
// returns immediately; events arrive on Events until the context ends
// or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	if w.running {
		w.mu.Unlock()
		return ErrAlreadyStarted
	}
	w.running = true
	w.mu.Unlock()

	if _, err := os.Stat(w.dir); err != nil {
		return fmt.Errorf("failed to stat watch directory %s: %w", w.dir, err)
	}
	if err := w.fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", w.dir, err)
	}

	w.logger.Debug("watching %s for changes", w.path)

	go w.loop(ctx)

	return nil
}

// Events returns the change notification channel. It is closed by Close.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the watcher error channel. It is closed by Close.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops delivery and releases the underlying watcher. It is safe
// to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if w.running {
		close(w.stopChan)
		w.running = false
	}
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}

	close(w.events)
	close(w.errors)

	if err := w.fsw.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("watch loop stopped: %v", ctx.Err())
			return

		case <-w.stopChan:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.forwardError(err)
		}
	}
}

// handleEvent filters directory noise down to the watched file and arms
// the debounce timer.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Base(event.Name) != w.base {
		return
	}

	var op Op
	switch {
	case event.Op.Has(fsnotify.Create):
		op = OpCreate
	case event.Op.Has(fsnotify.Write):
		op = OpWrite
	case event.Op.Has(fsnotify.Remove):
		op = OpRemove
	case event.Op.Has(fsnotify.Rename):
		op = OpRename
	case event.Op.Has(fsnotify.Chmod):
		op = OpChmod
	default:
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	w.pending = Event{Path: w.path, Op: op, At: time.Now()}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

// fire delivers the pending event once the debounce window closes.
func (w *Watcher) fire() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.timer = nil

	select {
	case w.events <- w.pending:
	default:
		w.logger.Error("event channel full, dropping %s event", w.pending.Op)
	}
}

func (w *Watcher) forwardError(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	select {
	case w.errors <- err:
	default:
		w.logger.Error("error channel full, dropping: %v", err)
	}
}

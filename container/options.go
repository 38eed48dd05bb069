package container

import (
	"time"

	"github.com/krellware/rewind/locking"
	"github.com/krellware/rewind/notify"
)

// Defaults applied when no option overrides them. There is no process-wide
// mutable configuration; everything is fixed at construction.
const (
	DefaultHistoryLevels = 100
	DefaultLockTimeout   = 10 * time.Second
)

// Options configures a container core at construction time.
type Options struct {
	// HistoryLevels bounds both the undo and the redo stack. Zero
	// disables undo/redo for the instance.
	HistoryLevels int

	// CaptureSubItems enables automatic ownership capture of contained
	// items that implement the Undoable capability.
	CaptureSubItems bool

	// LockTimeout bounds every lock acquisition. Non-positive waits
	// indefinitely.
	LockTimeout time.Duration

	// Lock is the strategy serializing all operations. Container
	// constructors default it: Unguarded for plain variants, Upgradeable
	// for concurrent ones.
	Lock locking.Strategy

	// Dispatcher marshals notification delivery. Nil delivers
	// synchronously on the mutating goroutine.
	Dispatcher notify.Dispatcher
}

// Option overrides one configuration value.
type Option func(*Options)

// WithHistoryLevels bounds the undo/redo stacks. Zero disables history.
func WithHistoryLevels(levels int) Option {
	return func(o *Options) {
		if levels >= 0 {
			o.HistoryLevels = levels
		}
	}
}

// WithCaptureSubItems toggles automatic ownership capture of contained
// undoable items.
func WithCaptureSubItems(capture bool) Option {
	return func(o *Options) {
		o.CaptureSubItems = capture
	}
}

// WithLockTimeout bounds lock acquisition.
func WithLockTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.LockTimeout = d
	}
}

// WithLock plugs in a specific lock strategy.
func WithLock(s locking.Strategy) Option {
	return func(o *Options) {
		if s != nil {
			o.Lock = s
		}
	}
}

// WithDispatcher marshals notifications onto a specific execution context.
func WithDispatcher(d notify.Dispatcher) Option {
	return func(o *Options) {
		o.Dispatcher = d
	}
}

func buildOptions(lock locking.Strategy, opts []Option) Options {
	o := Options{
		HistoryLevels: DefaultHistoryLevels,
		LockTimeout:   DefaultLockTimeout,
		Lock:          lock,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

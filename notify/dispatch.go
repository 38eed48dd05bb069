package notify

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// Dispatcher errors.
var (
	// ErrNotRunning is returned when Stop is called on a stopped dispatcher.
	ErrNotRunning = errors.New("dispatcher is not running")

	// ErrAlreadyRunning is returned when Start is called twice.
	ErrAlreadyRunning = errors.New("dispatcher is already running")

	// ErrShutdownTimeout is returned when graceful shutdown exceeds the
	// context deadline.
	ErrShutdownTimeout = errors.New("dispatcher shutdown timed out")
)

// Dispatcher marshals notification delivery onto an execution context.
type Dispatcher interface {
	Dispatch(fn func())
}

// PanicHandler is invoked when a dispatched handler panics.
type PanicHandler func(value any, stack []byte)

// Sync invokes handlers inline on the publishing goroutine. Panics are
// recovered so a misbehaving observer cannot take down the mutating caller;
// set OnPanic to observe them.
type Sync struct {
	OnPanic PanicHandler
}

// Dispatch runs fn inline.
func (s Sync) Dispatch(fn func()) {
	defer func() {
		if r := recover(); r != nil && s.OnPanic != nil {
			s.OnPanic(r, debug.Stack())
		}
	}()
	fn()
}

// Async delivers notifications through a bounded worker pool. When the
// queue is full the notification is dropped and counted rather than
// blocking the publisher.
type Async struct {
	queueSize   int
	workerCount int
	onPanic     PanicHandler

	mu      sync.Mutex
	queue   chan func()
	running atomic.Bool
	wg      sync.WaitGroup

	dispatched atomic.Uint64
	dropped    atomic.Uint64
	panicked   atomic.Uint64
}

// AsyncOption configures an Async dispatcher.
type AsyncOption func(*Async)

// WithQueueSize sets the pending notification queue size.
func WithQueueSize(size int) AsyncOption {
	return func(a *Async) {
		if size > 0 {
			a.queueSize = size
		}
	}
}

// WithWorkerCount sets the number of delivery goroutines.
func WithWorkerCount(count int) AsyncOption {
	return func(a *Async) {
		if count > 0 {
			a.workerCount = count
		}
	}
}

// WithPanicHandler sets the handler invoked when a delivery panics.
func WithPanicHandler(h PanicHandler) AsyncOption {
	return func(a *Async) {
		if h != nil {
			a.onPanic = h
		}
	}
}

// NewAsync creates an async dispatcher. Call Start before use.
func NewAsync(opts ...AsyncOption) *Async {
	a := &Async{
		queueSize:   1024,
		workerCount: 4,
		onPanic:     func(any, []byte) {},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start launches the worker pool.
func (a *Async) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.running.Load() {
		return ErrAlreadyRunning
	}
	a.queue = make(chan func(), a.queueSize)
	a.running.Store(true)

	for i := 0; i < a.workerCount; i++ {
		a.wg.Add(1)
		go a.worker(a.queue)
	}
	return nil
}

func (a *Async) worker(queue <-chan func()) {
	defer a.wg.Done()
	for fn := range queue {
		a.run(fn)
	}
}

func (a *Async) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			a.panicked.Add(1)
			a.onPanic(r, debug.Stack())
		}
	}()
	a.dispatched.Add(1)
	fn()
}

// Dispatch enqueues fn for delivery. Dispatch on a stopped dispatcher or
// with a full queue drops the notification. The enqueue happens under the
// dispatcher mutex so it cannot race a concurrent Stop closing the queue.
func (a *Async) Dispatch(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.running.Load() {
		a.dropped.Add(1)
		return
	}
	select {
	case a.queue <- fn:
	default:
		a.dropped.Add(1)
	}
}

// Stop drains queued notifications and stops the workers, bounded by ctx.
func (a *Async) Stop(ctx context.Context) error {
	a.mu.Lock()
	if !a.running.Load() {
		a.mu.Unlock()
		return ErrNotRunning
	}
	a.running.Store(false)
	close(a.queue)
	a.mu.Unlock()

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ErrShutdownTimeout
	}
}

// IsRunning reports whether the worker pool is active.
func (a *Async) IsRunning() bool {
	return a.running.Load()
}

// Stats reports delivery counters: dispatched, dropped, panicked.
func (a *Async) Stats() (dispatched, dropped, panicked uint64) {
	return a.dispatched.Load(), a.dropped.Load(), a.panicked.Load()
}

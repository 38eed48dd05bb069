// Package locking provides the lock discipline layer for undoable
// containers.
//
// Every container wraps its operations in a Strategy: an upgradeable
// reader/writer lock with timeout-bounded acquisition. Mutating operations
// take an upgradeable read lock first so bounds checks and "already absent"
// prechecks can short-circuit without ever blocking readers behind a write
// lock; only when the mutation will proceed is the hold promoted to a write
// lock, without releasing in between.
//
// Concurrent and non-concurrent container variants share identical
// orchestration and differ only in the Strategy plugged in at construction:
// Upgradeable for shared use, Unguarded when single-threaded use is
// guaranteed.
package locking

import (
	"errors"
	"sync"
	"time"
)

// ErrTimeout is returned when a lock cannot be acquired within its bound.
// The failed acquisition has no effect on lock state.
var ErrTimeout = errors.New("lock acquisition timed out")

// Strategy is the lock contract containers operate through. A non-positive
// timeout means wait indefinitely. Hold transitions are the caller's
// responsibility: Upgrade requires a held upgradeable read lock, Downgrade
// requires a completed Upgrade, and UpgradeableRUnlock requires the hold to
// be back in (or still in) upgradeable-read state.
type Strategy interface {
	// Lock acquires the write lock.
	Lock(timeout time.Duration) error
	// Unlock releases the write lock.
	Unlock()

	// RLock acquires a shared read lock.
	RLock(timeout time.Duration) error
	// RUnlock releases a shared read lock.
	RUnlock()

	// UpgradeableRLock acquires the single upgradeable read lock. It
	// excludes writers and other upgradeable readers but admits plain
	// readers.
	UpgradeableRLock(timeout time.Duration) error
	// Upgrade promotes a held upgradeable read lock to a write lock
	// without releasing it. On timeout the hold remains a valid
	// upgradeable read lock.
	Upgrade(timeout time.Duration) error
	// Downgrade demotes a write lock acquired via Upgrade back to an
	// upgradeable read lock.
	Downgrade()
	// UpgradeableRUnlock releases the upgradeable read lock.
	UpgradeableRUnlock()
}

// Upgradeable is a timeout-bounded upgradeable reader/writer lock.
//
// Internally it is built from two single-token channels and a reader count:
// excl is held by the active writer or the upgradeable reader for the whole
// hold, and gate is taken briefly by incoming readers, so a writer draining
// the lock takes gate to block new readers while existing ones finish.
// A waiting writer therefore has preference over new readers.
type Upgradeable struct {
	excl chan struct{} // writer / upgradeable-reader exclusion token
	gate chan struct{} // reader admission token

	mu      sync.Mutex
	readers int
	drained chan struct{} // closed on reader release; lazily recreated
}

// NewUpgradeable creates an unlocked Upgradeable.
func NewUpgradeable() *Upgradeable {
	return &Upgradeable{
		excl: newToken(),
		gate: newToken(),
	}
}

func newToken() chan struct{} {
	c := make(chan struct{}, 1)
	c <- struct{}{}
	return c
}

// acquire takes the token or fails at the deadline. A zero deadline waits
// indefinitely.
func (l *Upgradeable) acquire(tok chan struct{}, deadline time.Time) error {
	select {
	case <-tok:
		return nil
	default:
	}

	if deadline.IsZero() {
		<-tok
		return nil
	}

	remaining := time.Until(deadline)
	if remaining <= 0 {
		return ErrTimeout
	}
	timer := time.NewTimer(remaining)
	defer timer.Stop()

	select {
	case <-tok:
		return nil
	case <-timer.C:
		return ErrTimeout
	}
}

func release(tok chan struct{}) {
	tok <- struct{}{}
}

func deadlineFor(timeout time.Duration) time.Time {
	if timeout <= 0 {
		return time.Time{}
	}
	return time.Now().Add(timeout)
}

// waitReaders blocks until at most target readers remain. The caller must
// hold gate so the reader count cannot grow while waiting.
func (l *Upgradeable) waitReaders(target int, deadline time.Time) error {
	for {
		l.mu.Lock()
		if l.readers <= target {
			l.mu.Unlock()
			return nil
		}
		if l.drained == nil {
			l.drained = make(chan struct{})
		}
		ch := l.drained
		l.mu.Unlock()

		if deadline.IsZero() {
			<-ch
			continue
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return ErrTimeout
		}
		timer := time.NewTimer(remaining)
		select {
		case <-ch:
			timer.Stop()
		case <-timer.C:
			return ErrTimeout
		}
	}
}

// Lock acquires the write lock: take exclusion, close the reader gate, then
// drain existing readers. Both tokens stay held for the duration of the
// write.
func (l *Upgradeable) Lock(timeout time.Duration) error {
	deadline := deadlineFor(timeout)
	if err := l.acquire(l.excl, deadline); err != nil {
		return err
	}
	if err := l.acquire(l.gate, deadline); err != nil {
		release(l.excl)
		return err
	}
	if err := l.waitReaders(0, deadline); err != nil {
		release(l.gate)
		release(l.excl)
		return err
	}
	return nil
}

// Unlock releases the write lock.
func (l *Upgradeable) Unlock() {
	release(l.gate)
	release(l.excl)
}

// RLock acquires a shared read lock. Readers pass through the gate one at a
// time so a draining writer can shut new readers out.
func (l *Upgradeable) RLock(timeout time.Duration) error {
	deadline := deadlineFor(timeout)
	if err := l.acquire(l.gate, deadline); err != nil {
		return err
	}
	l.mu.Lock()
	l.readers++
	l.mu.Unlock()
	release(l.gate)
	return nil
}

// RUnlock releases a shared read lock.
func (l *Upgradeable) RUnlock() {
	l.mu.Lock()
	l.readers--
	if l.drained != nil {
		close(l.drained)
		l.drained = nil
	}
	l.mu.Unlock()
}

// UpgradeableRLock acquires the upgradeable read lock: the exclusion token
// for the whole hold plus an ordinary read slot.
func (l *Upgradeable) UpgradeableRLock(timeout time.Duration) error {
	deadline := deadlineFor(timeout)
	if err := l.acquire(l.excl, deadline); err != nil {
		return err
	}
	if err := l.acquire(l.gate, deadline); err != nil {
		release(l.excl)
		return err
	}
	l.mu.Lock()
	l.readers++
	l.mu.Unlock()
	release(l.gate)
	return nil
}

// Upgrade promotes the upgradeable read lock to a write lock. The holder's
// own read slot stays counted; draining waits for every other reader.
func (l *Upgradeable) Upgrade(timeout time.Duration) error {
	deadline := deadlineFor(timeout)
	if err := l.acquire(l.gate, deadline); err != nil {
		return err
	}
	if err := l.waitReaders(1, deadline); err != nil {
		release(l.gate)
		return err
	}
	return nil
}

// Downgrade demotes an upgraded hold back to upgradeable-read state.
func (l *Upgradeable) Downgrade() {
	release(l.gate)
}

// UpgradeableRUnlock releases the upgradeable read lock.
func (l *Upgradeable) UpgradeableRUnlock() {
	l.RUnlock()
	release(l.excl)
}

// Unguarded is a no-op Strategy for containers with guaranteed
// single-threaded use. It satisfies the same contract surface; every
// acquisition succeeds immediately.
type Unguarded struct{}

// NewUnguarded returns the no-op strategy.
func NewUnguarded() Unguarded { return Unguarded{} }

func (Unguarded) Lock(time.Duration) error             { return nil }
func (Unguarded) Unlock()                              {}
func (Unguarded) RLock(time.Duration) error            { return nil }
func (Unguarded) RUnlock()                             {}
func (Unguarded) UpgradeableRLock(time.Duration) error { return nil }
func (Unguarded) Upgrade(time.Duration) error          { return nil }
func (Unguarded) Downgrade()                           {}
func (Unguarded) UpgradeableRUnlock()                  {}

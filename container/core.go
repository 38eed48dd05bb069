package container

import (
	"errors"
	"time"

	"github.com/krellware/rewind/change"
	"github.com/krellware/rewind/history"
	"github.com/krellware/rewind/locking"
	"github.com/krellware/rewind/notify"
)

// errSkip short-circuits a mutation during precheck without reporting an
// error to the caller.
var errSkip = errors.New("mutation precheck short-circuit")

// Core orchestrates every mutating operation of an undoable container:
// lock acquisition, speculative ownership transfer, backing-store mutation,
// history recording and deferred notification. Container types (List,
// Stack, Queue, Dict) are thin shells over a Core parameterized with the
// right backing adapter and lock strategy.
//
// Mutations are linearized by the write side of the lock strategy; readers
// proceed concurrently with each other but never with a writer. Every
// notification fires after the lock is released, so an observer may
// re-enter the container synchronously from its handler.
type Core[T any] struct {
	lock       locking.Strategy
	store      Backing[T]
	timeout    time.Duration
	capture    bool
	positional bool
	hub        *notify.Hub[T]

	// Guarded by lock.
	levels       int
	hist         *history.Context[change.Batch[T]]
	blockOpen    bool
	blockChanges []change.Change[T]
	parent       Owner
	disposed     bool
}

// NewCore creates a core over store with the given options. Container
// constructors are the usual entry point; NewCore is exported so custom
// backing adapters can participate.
func NewCore[T any](store Backing[T], o Options) *Core[T] {
	if o.Lock == nil {
		o.Lock = locking.NewUnguarded()
	}
	if o.HistoryLevels < 0 {
		o.HistoryLevels = 0
	}
	return &Core[T]{
		lock:       o.Lock,
		store:      store,
		timeout:    o.LockTimeout,
		capture:    o.CaptureSubItems,
		positional: store.Positional(),
		hub:        notify.NewHub[T](o.Dispatcher),
		levels:     o.HistoryLevels,
	}
}

// seed replaces the contents from a seed sequence without recording history
// or firing notifications. Seeded undoable items are captured when capture
// is enabled; a capture failure partway reverts the captures already made,
// since the caller never gets a reference to release them with.
func (c *Core[T]) seed(items []T) error {
	c.store.ReplaceAll(items)
	g := c.newGuard()
	for _, item := range items {
		if err := g.capture(item); err != nil {
			g.close()
			return err
		}
	}
	g.Success()
	return nil
}

// OnChange registers a structural change handler.
func (c *Core[T]) OnChange(fn notify.Handler[T]) notify.Subscription {
	return c.hub.OnChange(fn)
}

// OnProperty registers a named-property change handler.
func (c *Core[T]) OnProperty(fn notify.PropertyHandler) notify.Subscription {
	return c.hub.OnProperty(fn)
}

// pending accumulates everything a mutation must do after its lock is
// released: notifications to publish and, for captured containers, the
// committed batch to hand to the owner. A tagged value instead of a deferred
// closure, so the payload is exactly what the notification needs.
type pending[T any] struct {
	events       []notify.Event[T]
	countChanged bool
	forward      change.Batch[T]
	forwardTo    Owner
}

func (p *pending[T]) event(action notify.Action, items []T, indexes []int) {
	p.events = append(p.events, notify.Event[T]{Action: action, Items: items, Indexes: indexes})
}

// deliver publishes pending notifications and forwards a committed batch to
// the owner. Runs strictly outside this container's lock; the owner
// acquires its own lock on its own path, so the two locks are never held
// together.
func (c *Core[T]) deliver(p pending[T]) error {
	for _, ev := range p.events {
		c.hub.Publish(ev)
	}
	if p.countChanged {
		c.hub.PublishProperty(notify.Property{Name: notify.PropertyCount})
	}
	if p.forwardTo != nil {
		return p.forwardTo.ChildEditCommitted(c, p.forward)
	}
	return nil
}

// commitLocked routes freshly recorded changes: into the open block
// transaction, to the capturing owner (returned for post-unlock
// forwarding), or onto the own history stack.
func (c *Core[T]) commitLocked(chs ...change.Change[T]) (change.Batch[T], Owner) {
	if len(chs) == 0 {
		return nil, nil
	}
	if c.blockOpen {
		c.blockChanges = append(c.blockChanges, chs...)
		return nil, nil
	}
	batch := change.Batch[T](chs)
	if c.parent != nil {
		return batch, c.parent
	}
	c.pushLocked(batch)
	return nil, nil
}

// pushLocked records a batch on the lazily created history context.
func (c *Core[T]) pushLocked(batch change.Batch[T]) {
	if c.levels == 0 {
		return
	}
	if c.hist == nil {
		c.hist = history.NewContext[change.Batch[T]](c.levels)
	}
	c.hist.Push(batch)
}

// mutate runs one structural mutation through the lock protocol: an
// upgradeable read lock for the precheck, so bounds and "already absent"
// checks short-circuit without ever taking the write lock, then an upgrade
// for the mutation itself. The guard reverts ownership side-effects if
// apply fails. Notifications deliver after both locks are released.
func (c *Core[T]) mutate(precheck func() error, apply func(g *txGuard[T]) (pending[T], error)) error {
	if err := c.lock.UpgradeableRLock(c.timeout); err != nil {
		return err
	}
	if c.disposed {
		c.lock.UpgradeableRUnlock()
		return ErrDisposed
	}
	if precheck != nil {
		if err := precheck(); err != nil {
			c.lock.UpgradeableRUnlock()
			if err == errSkip {
				return nil
			}
			return err
		}
	}
	if err := c.lock.Upgrade(c.timeout); err != nil {
		c.lock.UpgradeableRUnlock()
		return err
	}

	g := c.newGuard()
	p, err := apply(g)
	if err == nil {
		g.Success()
	}
	g.close()

	c.lock.Downgrade()
	c.lock.UpgradeableRUnlock()

	if err != nil {
		return err
	}
	return c.deliver(p)
}

// resetLocked applies an unindexed mutation on a non-positional adapter,
// recording it as a full snapshot swap.
func (c *Core[T]) resetLocked(g *txGuard[T], captures, releases []T, apply func()) (pending[T], error) {
	var p pending[T]
	before := c.store.Items()
	for _, item := range releases {
		if err := g.release(item); err != nil {
			return p, err
		}
	}
	for _, item := range captures {
		if err := g.capture(item); err != nil {
			return p, err
		}
	}
	apply()
	after := c.store.Items()

	p.forward, p.forwardTo = c.commitLocked(change.Reset(before, after))
	p.event(notify.ActionReset, nil, nil)
	p.countChanged = true
	return p, nil
}

// Add appends item. On positional adapters the item lands at the end; on
// indexless adapters the mutation is recorded as a snapshot reset.
func (c *Core[T]) Add(item T) error {
	return c.mutate(nil, func(g *txGuard[T]) (pending[T], error) {
		if !c.positional {
			return c.resetLocked(g, []T{item}, nil, func() { c.store.Add(item) })
		}
		var p pending[T]
		if err := g.capture(item); err != nil {
			return p, err
		}
		idx := c.store.Add(item)
		p.forward, p.forwardTo = c.commitLocked(change.Add(item, idx))
		p.event(notify.ActionAdd, []T{item}, []int{idx})
		p.countChanged = true
		return p, nil
	})
}

// AddRange appends items as one history entry.
func (c *Core[T]) AddRange(items []T) error {
	return c.mutate(func() error {
		if len(items) == 0 {
			return errSkip
		}
		return nil
	}, func(g *txGuard[T]) (pending[T], error) {
		if !c.positional {
			return c.resetLocked(g, items, nil, func() {
				for _, item := range items {
					c.store.Add(item)
				}
			})
		}
		var p pending[T]
		for _, item := range items {
			if err := g.capture(item); err != nil {
				return p, err
			}
		}
		indexes := make([]int, len(items))
		for i, item := range items {
			indexes[i] = c.store.Add(item)
		}
		added := make([]T, len(items))
		copy(added, items)
		p.forward, p.forwardTo = c.commitLocked(change.AddRange(added, indexes))
		p.event(notify.ActionAdd, added, indexes)
		p.countChanged = true
		return p, nil
	})
}

// Insert places item at index, shifting later items.
func (c *Core[T]) Insert(index int, item T) error {
	return c.mutate(func() error {
		if index < 0 || index > c.store.Len() {
			return indexErr(index, c.store.Len())
		}
		return nil
	}, func(g *txGuard[T]) (pending[T], error) {
		var p pending[T]
		if err := g.capture(item); err != nil {
			return p, err
		}
		c.store.Insert(index, item)
		p.forward, p.forwardTo = c.commitLocked(change.Add(item, index))
		p.event(notify.ActionAdd, []T{item}, []int{index})
		p.countChanged = true
		return p, nil
	})
}

// Remove removes the first occurrence of item, reporting whether anything
// was removed. An absent item short-circuits on the read lock.
func (c *Core[T]) Remove(item T) (bool, error) {
	removed := false
	err := c.mutate(func() error {
		if !c.store.Contains(item) {
			return errSkip
		}
		return nil
	}, func(g *txGuard[T]) (pending[T], error) {
		if !c.positional {
			p, err := c.resetLocked(g, nil, []T{item}, func() { c.store.Remove(item) })
			if err == nil {
				removed = true
			}
			return p, err
		}
		var p pending[T]
		if err := g.release(item); err != nil {
			return p, err
		}
		idx := c.store.Remove(item)
		p.forward, p.forwardTo = c.commitLocked(change.Remove(item, idx))
		p.event(notify.ActionRemove, []T{item}, []int{idx})
		p.countChanged = true
		removed = true
		return p, nil
	})
	return removed, err
}

// RemoveAt removes and returns the item at index.
func (c *Core[T]) RemoveAt(index int) (T, error) {
	var removed T
	err := c.mutate(func() error {
		if index < 0 || index >= c.store.Len() {
			return indexErr(index, c.store.Len())
		}
		return nil
	}, func(g *txGuard[T]) (pending[T], error) {
		var p pending[T]
		item := c.store.Get(index)
		if err := g.release(item); err != nil {
			return p, err
		}
		c.store.RemoveAt(index)
		removed = item
		p.forward, p.forwardTo = c.commitLocked(change.Remove(item, index))
		p.event(notify.ActionRemove, []T{item}, []int{index})
		p.countChanged = true
		return p, nil
	})
	return removed, err
}

// RemoveRange removes count items starting at index as one history entry.
func (c *Core[T]) RemoveRange(index, count int) error {
	return c.mutate(func() error {
		if index < 0 || index > c.store.Len() {
			return indexErr(index, c.store.Len())
		}
		if count < 0 || index+count > c.store.Len() {
			return indexErr(index+count, c.store.Len())
		}
		if count == 0 {
			return errSkip
		}
		return nil
	}, func(g *txGuard[T]) (pending[T], error) {
		var p pending[T]
		// Removal indexes recorded descending so replay keeps earlier
		// indexes valid.
		items := make([]T, 0, count)
		indexes := make([]int, 0, count)
		for i := index + count - 1; i >= index; i-- {
			item := c.store.Get(i)
			if err := g.release(item); err != nil {
				return p, err
			}
			items = append(items, item)
			indexes = append(indexes, i)
		}
		for _, i := range indexes {
			c.store.RemoveAt(i)
		}
		p.forward, p.forwardTo = c.commitLocked(change.RemoveRange(items, indexes))
		p.event(notify.ActionRemove, items, indexes)
		p.countChanged = true
		return p, nil
	})
}

// removeEnd pops from either end, for stack and queue shells. A precheck
// under the read lock short-circuits the empty case.
func (c *Core[T]) removeEnd(first bool) (T, bool, error) {
	var removed T
	popped := false
	err := c.mutate(func() error {
		if c.store.Len() == 0 {
			return errSkip
		}
		return nil
	}, func(g *txGuard[T]) (pending[T], error) {
		var p pending[T]
		index := 0
		if !first {
			index = c.store.Len() - 1
		}
		item := c.store.Get(index)
		if err := g.release(item); err != nil {
			return p, err
		}
		c.store.RemoveAt(index)
		removed = item
		popped = true
		p.forward, p.forwardTo = c.commitLocked(change.Remove(item, index))
		p.event(notify.ActionRemove, []T{item}, []int{index})
		p.countChanged = true
		return p, nil
	})
	return removed, popped, err
}

// RemoveFirst removes and returns the first item, reporting false when
// empty.
func (c *Core[T]) RemoveFirst() (T, bool, error) {
	return c.removeEnd(true)
}

// RemoveLast removes and returns the last item, reporting false when empty.
func (c *Core[T]) RemoveLast() (T, bool, error) {
	return c.removeEnd(false)
}

// Set replaces the item at index and returns the prior item. The new item
// is captured and the prior one released, both reverted if the mutation
// fails.
func (c *Core[T]) Set(index int, item T) (T, error) {
	var prior T
	err := c.mutate(func() error {
		if index < 0 || index >= c.store.Len() {
			return indexErr(index, c.store.Len())
		}
		return nil
	}, func(g *txGuard[T]) (pending[T], error) {
		var p pending[T]
		current := c.store.Get(index)
		if err := g.release(current); err != nil {
			return p, err
		}
		if err := g.capture(item); err != nil {
			return p, err
		}
		prior = c.store.Set(index, item)
		p.forward, p.forwardTo = c.commitLocked(change.Replace(prior, item, index))
		p.event(notify.ActionReplace, []T{item}, []int{index})
		return p, nil
	})
	return prior, err
}

// Clear removes all items as one history entry. An empty container
// short-circuits on the read lock.
func (c *Core[T]) Clear() error {
	return c.mutate(func() error {
		if c.store.Len() == 0 {
			return errSkip
		}
		return nil
	}, func(g *txGuard[T]) (pending[T], error) {
		if !c.positional {
			return c.resetLocked(g, nil, nil, func() { c.store.Clear() })
		}
		var p pending[T]
		snapshot := c.store.Items()
		for _, item := range snapshot {
			if err := g.release(item); err != nil {
				return p, err
			}
		}
		c.store.Clear()
		p.forward, p.forwardTo = c.commitLocked(change.Clear(snapshot))
		p.event(notify.ActionReset, nil, nil)
		p.countChanged = true
		return p, nil
	})
}

// read runs fn under the shared read lock.
func (c *Core[T]) read(fn func()) error {
	if err := c.lock.RLock(c.timeout); err != nil {
		return err
	}
	defer c.lock.RUnlock()
	if c.disposed {
		return ErrDisposed
	}
	fn()
	return nil
}

// Len returns the number of contained items.
func (c *Core[T]) Len() (int, error) {
	n := 0
	err := c.read(func() { n = c.store.Len() })
	return n, err
}

// Get returns the item at index.
func (c *Core[T]) Get(index int) (T, error) {
	var item T
	var rangeErr error
	err := c.read(func() {
		if index < 0 || index >= c.store.Len() {
			rangeErr = indexErr(index, c.store.Len())
			return
		}
		item = c.store.Get(index)
	})
	if err != nil {
		return item, err
	}
	return item, rangeErr
}

// Contains reports whether item is present.
func (c *Core[T]) Contains(item T) (bool, error) {
	found := false
	err := c.read(func() { found = c.store.Contains(item) })
	return found, err
}

// IndexOf returns the index of item, or -1.
func (c *Core[T]) IndexOf(item T) (int, error) {
	idx := -1
	err := c.read(func() { idx = c.store.IndexOf(item) })
	return idx, err
}

// Items returns a snapshot of the contents. A concurrent reader sees
// either the full pre-mutation or full post-mutation state, never a state
// mid-mutation.
func (c *Core[T]) Items() ([]T, error) {
	var items []T
	err := c.read(func() { items = c.store.Items() })
	return items, err
}

// CopyTo copies the contents into dst and returns the count copied.
func (c *Core[T]) CopyTo(dst []T) (int, error) {
	n := 0
	err := c.read(func() { n = c.store.CopyTo(dst) })
	return n, err
}

// peekEnd reads either end without removing, for stack and queue shells.
func (c *Core[T]) peekEnd(first bool) (T, bool, error) {
	var item T
	found := false
	err := c.read(func() {
		if c.store.Len() == 0 {
			return
		}
		index := 0
		if !first {
			index = c.store.Len() - 1
		}
		item = c.store.Get(index)
		found = true
	})
	return item, found, err
}

// PeekFirst returns the first item without removing it.
func (c *Core[T]) PeekFirst() (T, bool, error) {
	return c.peekEnd(true)
}

// PeekLast returns the last item without removing it.
func (c *Core[T]) PeekLast() (T, bool, error) {
	return c.peekEnd(false)
}

// Dispose tears the container down: the history stacks are released and
// every subsequent operation fails with ErrDisposed. Idempotent.
func (c *Core[T]) Dispose() error {
	if err := c.lock.Lock(c.timeout); err != nil {
		return err
	}
	defer c.lock.Unlock()
	if c.disposed {
		return nil
	}
	c.disposed = true
	c.blockOpen = false
	c.blockChanges = nil
	if c.hist != nil {
		c.hist.Dispose()
		c.hist = nil
	}
	return nil
}

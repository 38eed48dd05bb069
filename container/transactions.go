package container

import (
	"github.com/krellware/rewind/change"
)

// StartBlock opens an explicit block transaction: subsequent changes
// accumulate into one atomic undo unit instead of pushing independently.
// Only one block may be open per container; nesting is ErrInvalidContext.
func (c *Core[T]) StartBlock() error {
	if err := c.lock.Lock(c.timeout); err != nil {
		return err
	}
	defer c.lock.Unlock()
	if c.disposed {
		return ErrDisposed
	}
	if c.blockOpen {
		return ErrInvalidContext
	}
	c.blockOpen = true
	c.blockChanges = nil
	return nil
}

// CommitBlock closes the open block transaction and pushes its accumulated
// changes as one history entry. Committing an empty block records nothing.
func (c *Core[T]) CommitBlock() error {
	if err := c.lock.Lock(c.timeout); err != nil {
		return err
	}
	if c.disposed {
		c.lock.Unlock()
		return ErrDisposed
	}
	if !c.blockOpen {
		c.lock.Unlock()
		return ErrInvalidContext
	}
	c.blockOpen = false
	chs := c.blockChanges
	c.blockChanges = nil

	if len(chs) == 0 {
		c.lock.Unlock()
		return nil
	}
	forward, owner := c.commitLocked(change.Block(chs))
	c.lock.Unlock()

	if owner != nil {
		return owner.ChildEditCommitted(c, forward)
	}
	return nil
}

// AbandonBlock closes the open block transaction and discards its history
// record. Mutations applied inside the block stay applied; only the record
// is dropped.
func (c *Core[T]) AbandonBlock() error {
	if err := c.lock.Lock(c.timeout); err != nil {
		return err
	}
	defer c.lock.Unlock()
	if c.disposed {
		return ErrDisposed
	}
	if !c.blockOpen {
		return ErrInvalidContext
	}
	c.blockOpen = false
	c.blockChanges = nil
	return nil
}

// InBlock reports whether an explicit block transaction is open.
func (c *Core[T]) InBlock() bool {
	if err := c.lock.RLock(c.timeout); err != nil {
		return false
	}
	defer c.lock.RUnlock()
	return c.blockOpen
}

// Block runs fn inside an explicit block transaction, committing on success
// and abandoning the record when fn fails.
func (c *Core[T]) Block(fn func() error) error {
	if err := c.StartBlock(); err != nil {
		return err
	}
	if err := fn(); err != nil {
		_ = c.AbandonBlock()
		return err
	}
	return c.CommitBlock()
}

// CaptureInto transfers this container's undo delegation to parent. The
// parent back-reference is non-owning: it is consulted for delegation only
// and never manages the child's lifetime.
func (c *Core[T]) CaptureInto(parent Owner) error {
	if err := c.lock.Lock(c.timeout); err != nil {
		return err
	}
	defer c.lock.Unlock()
	if c.disposed {
		return ErrDisposed
	}
	if c.parent != nil {
		return ErrAlreadyCaptured
	}
	c.parent = parent
	return nil
}

// ReleaseFrom ends the capture held by parent. Capture and release are
// strictly symmetric: releasing from anyone but the current owner is
// ErrNotCaptured.
func (c *Core[T]) ReleaseFrom(parent Owner) error {
	if err := c.lock.Lock(c.timeout); err != nil {
		return err
	}
	defer c.lock.Unlock()
	if c.disposed {
		return ErrDisposed
	}
	if c.parent == nil || c.parent != parent {
		return ErrNotCaptured
	}
	c.parent = nil
	return nil
}

// IsCaptured reports whether this container is captured into an owner.
func (c *Core[T]) IsCaptured() bool {
	if err := c.lock.RLock(c.timeout); err != nil {
		return false
	}
	defer c.lock.RUnlock()
	return c.parent != nil
}

// Parent returns the current owner, or nil.
func (c *Core[T]) Parent() Owner {
	if err := c.lock.RLock(c.timeout); err != nil {
		return nil
	}
	defer c.lock.RUnlock()
	return c.parent
}

// ChildEditCommitted records a captured child's committed batch in this
// container's own history as a sub-item entry. The child calls this after
// releasing its own lock, so the two locks are never held together; when
// this container is itself captured the entry keeps bubbling up.
func (c *Core[T]) ChildEditCommitted(child Undoable, batch any) error {
	if err := c.lock.Lock(c.timeout); err != nil {
		return err
	}
	if c.disposed {
		c.lock.Unlock()
		return ErrDisposed
	}
	forward, owner := c.commitLocked(change.SubItem[T](child, batch))
	c.lock.Unlock()

	if owner != nil {
		return owner.ChildEditCommitted(c, forward)
	}
	return nil
}

// UndoBatch replays the inverse of a batch this container committed to an
// owner's history. Called by the owner during its own undo; the batch is
// applied directly against the backing adapter without touching this
// container's local history.
func (c *Core[T]) UndoBatch(batch any) error {
	return c.replayBatch(batch, true)
}

// RedoBatch replays a committed batch forward, the counterpart of
// UndoBatch.
func (c *Core[T]) RedoBatch(batch any) error {
	return c.replayBatch(batch, false)
}

func (c *Core[T]) replayBatch(batch any, undo bool) error {
	b, ok := batch.(change.Batch[T])
	if !ok {
		return ErrForeignBatch
	}
	if err := c.lock.Lock(c.timeout); err != nil {
		return err
	}
	if c.disposed {
		c.lock.Unlock()
		return ErrDisposed
	}
	var p pending[T]
	err := c.applyBatchLocked(b, undo, &p)
	c.lock.Unlock()
	if err != nil {
		return err
	}
	// Ownership of the record stays with the owner; only notifications
	// are delivered here.
	p.forward, p.forwardTo = nil, nil
	return c.deliver(p)
}

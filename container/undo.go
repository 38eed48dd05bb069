package container

import (
	"github.com/krellware/rewind/change"
	"github.com/krellware/rewind/notify"
)

// Local names for the notification actions used by replay.
const (
	notifyAdd     = notify.ActionAdd
	notifyRemove  = notify.ActionRemove
	notifyReplace = notify.ActionReplace
	notifyReset   = notify.ActionReset
)

// Undo reverts the most recent history entry. A captured container
// delegates unconditionally to its owner, bubbling to the outermost undo
// authority; the owner alone sequences composed histories. With nothing
// left to undo this is a silent no-op: callers discriminate through
// CanUndo. Undo while an explicit block transaction is open is
// ErrInvalidContext.
func (c *Core[T]) Undo() error {
	return c.travel(true)
}

// Redo re-applies the most recently undone entry, under the same
// delegation and transaction rules as Undo.
func (c *Core[T]) Redo() error {
	return c.travel(false)
}

// travel implements Undo and Redo symmetrically; the two directions share
// one dispatch path and differ only in which stack is popped and how each
// change variant is replayed.
func (c *Core[T]) travel(undo bool) error {
	// Delegation is decided outside the write lock: the owner acquires
	// its own lock, and holding the child lock across that call would
	// order the locks child-then-parent against every other path.
	if err := c.lock.RLock(c.timeout); err != nil {
		return err
	}
	disposed, parent, blockOpen := c.disposed, c.parent, c.blockOpen
	c.lock.RUnlock()

	if disposed {
		return ErrDisposed
	}
	if parent != nil {
		if undo {
			return parent.Undo()
		}
		return parent.Redo()
	}
	if blockOpen {
		return ErrInvalidContext
	}

	if err := c.lock.Lock(c.timeout); err != nil {
		return err
	}
	// The world may have moved between the read and the write lock.
	if c.disposed {
		c.lock.Unlock()
		return ErrDisposed
	}
	if c.parent != nil {
		parent := c.parent
		c.lock.Unlock()
		if undo {
			return parent.Undo()
		}
		return parent.Redo()
	}
	if c.blockOpen {
		c.lock.Unlock()
		return ErrInvalidContext
	}
	if c.hist == nil {
		c.lock.Unlock()
		return nil
	}

	var batch change.Batch[T]
	var ok bool
	if undo {
		batch, ok = c.hist.PopUndo()
	} else {
		batch, ok = c.hist.PopRedo()
	}
	if !ok {
		c.lock.Unlock()
		return nil
	}

	var p pending[T]
	if err := c.applyBatchLocked(batch, undo, &p); err != nil {
		// Put the entry back so the failed travel is retryable.
		if undo {
			c.hist.RestoreUndo(batch)
		} else {
			c.hist.PushRedo(batch)
		}
		c.lock.Unlock()
		return err
	}
	if undo {
		c.hist.PushRedo(batch)
	} else {
		c.hist.RestoreUndo(batch)
	}
	c.lock.Unlock()
	return c.deliver(p)
}

// applyBatchLocked replays a history batch against the backing adapter:
// reverse order for undo, original order for redo.
func (c *Core[T]) applyBatchLocked(batch change.Batch[T], undo bool, p *pending[T]) error {
	if undo {
		for i := len(batch) - 1; i >= 0; i-- {
			if err := c.applyChangeLocked(batch[i], true, p); err != nil {
				return err
			}
		}
		return nil
	}
	for _, ch := range batch {
		if err := c.applyChangeLocked(ch, false, p); err != nil {
			return err
		}
	}
	return nil
}

// applyChangeLocked replays one change variant. Undo applies the inverse
// mutation, redo the forward one; capture relationships are restored or
// reversed symmetrically with the original operation.
func (c *Core[T]) applyChangeLocked(ch change.Change[T], undo bool, p *pending[T]) error {
	switch ch.Kind {
	case change.KindAdd:
		if undo {
			c.store.RemoveAt(ch.Index)
			if err := c.releaseDirect(ch.Item); err != nil {
				return err
			}
			p.event(notifyRemove, []T{ch.Item}, []int{ch.Index})
		} else {
			if err := c.captureDirect(ch.Item); err != nil {
				return err
			}
			c.store.Insert(ch.Index, ch.Item)
			p.event(notifyAdd, []T{ch.Item}, []int{ch.Index})
		}
		p.countChanged = true

	case change.KindRemove:
		if undo {
			if err := c.captureDirect(ch.Item); err != nil {
				return err
			}
			c.store.Insert(ch.Index, ch.Item)
			p.event(notifyAdd, []T{ch.Item}, []int{ch.Index})
		} else {
			c.store.RemoveAt(ch.Index)
			if err := c.releaseDirect(ch.Item); err != nil {
				return err
			}
			p.event(notifyRemove, []T{ch.Item}, []int{ch.Index})
		}
		p.countChanged = true

	case change.KindReplace:
		if undo {
			if err := c.releaseDirect(ch.Item); err != nil {
				return err
			}
			if err := c.captureDirect(ch.Prior); err != nil {
				return err
			}
			c.store.Set(ch.Index, ch.Prior)
			p.event(notifyReplace, []T{ch.Prior}, []int{ch.Index})
		} else {
			if err := c.releaseDirect(ch.Prior); err != nil {
				return err
			}
			if err := c.captureDirect(ch.Item); err != nil {
				return err
			}
			c.store.Set(ch.Index, ch.Item)
			p.event(notifyReplace, []T{ch.Item}, []int{ch.Index})
		}

	case change.KindClear:
		if undo {
			for i, item := range ch.Items {
				if err := c.captureDirect(item); err != nil {
					return err
				}
				c.store.Insert(i, item)
			}
			p.event(notifyReset, nil, nil)
		} else {
			for _, item := range ch.Items {
				if err := c.releaseDirect(item); err != nil {
					return err
				}
			}
			c.store.Clear()
			p.event(notifyReset, nil, nil)
		}
		p.countChanged = true

	case change.KindAddRange:
		// Indexes are stored ascending: redo inserts low-to-high, undo
		// removes high-to-low so earlier indexes stay valid.
		if undo {
			for i := len(ch.Indexes) - 1; i >= 0; i-- {
				c.store.RemoveAt(ch.Indexes[i])
				if err := c.releaseDirect(ch.Items[i]); err != nil {
					return err
				}
			}
			p.event(notifyRemove, ch.Items, ch.Indexes)
		} else {
			for i, idx := range ch.Indexes {
				if err := c.captureDirect(ch.Items[i]); err != nil {
					return err
				}
				c.store.Insert(idx, ch.Items[i])
			}
			p.event(notifyAdd, ch.Items, ch.Indexes)
		}
		p.countChanged = true

	case change.KindRemoveRange:
		// Indexes are stored descending: redo removes high-to-low, undo
		// re-inserts low-to-high.
		if undo {
			for i := len(ch.Indexes) - 1; i >= 0; i-- {
				if err := c.captureDirect(ch.Items[i]); err != nil {
					return err
				}
				c.store.Insert(ch.Indexes[i], ch.Items[i])
			}
			p.event(notifyAdd, ch.Items, ch.Indexes)
		} else {
			for i, idx := range ch.Indexes {
				c.store.RemoveAt(idx)
				if err := c.releaseDirect(ch.Items[i]); err != nil {
					return err
				}
			}
			p.event(notifyRemove, ch.Items, ch.Indexes)
		}
		p.countChanged = true

	case change.KindReset:
		if undo {
			c.store.ReplaceAll(ch.Before)
		} else {
			c.store.ReplaceAll(ch.After)
		}
		p.event(notifyReset, nil, nil)
		p.countChanged = true

	case change.KindSubItem:
		// The child applies its own inverse under its own lock; this
		// container's store is untouched. Lock order stays
		// parent-then-child.
		if undo {
			return ch.Child.UndoBatch(ch.ChildBatch)
		}
		return ch.Child.RedoBatch(ch.ChildBatch)

	case change.KindBlock:
		if undo {
			for i := len(ch.Block) - 1; i >= 0; i-- {
				if err := c.applyChangeLocked(ch.Block[i], true, p); err != nil {
					return err
				}
			}
		} else {
			for _, inner := range ch.Block {
				if err := c.applyChangeLocked(inner, false, p); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// captureDirect captures item without guard registration, for replay paths
// where the capture itself is the reversal.
func (c *Core[T]) captureDirect(item T) error {
	if !c.capture {
		return nil
	}
	u, ok := asUndoable(any(item))
	if !ok {
		return nil
	}
	return u.CaptureInto(c)
}

// releaseDirect releases item without guard registration.
func (c *Core[T]) releaseDirect(item T) error {
	if !c.capture {
		return nil
	}
	u, ok := asUndoable(any(item))
	if !ok {
		return nil
	}
	return u.ReleaseFrom(c)
}

// CanUndo reports whether an undo entry is available, consulting the owner
// when captured. False on lock timeout or after disposal.
func (c *Core[T]) CanUndo() bool {
	if err := c.lock.RLock(c.timeout); err != nil {
		return false
	}
	parent, hist, disposed := c.parent, c.hist, c.disposed
	can := hist != nil && hist.CanUndo()
	c.lock.RUnlock()

	if disposed {
		return false
	}
	if parent != nil {
		return parent.CanUndo()
	}
	return can
}

// CanRedo reports whether a redo entry is available, consulting the owner
// when captured.
func (c *Core[T]) CanRedo() bool {
	if err := c.lock.RLock(c.timeout); err != nil {
		return false
	}
	parent, hist, disposed := c.parent, c.hist, c.disposed
	can := hist != nil && hist.CanRedo()
	c.lock.RUnlock()

	if disposed {
		return false
	}
	if parent != nil {
		return parent.CanRedo()
	}
	return can
}

// UndoCount returns the number of locally recorded undo entries.
func (c *Core[T]) UndoCount() int {
	if err := c.lock.RLock(c.timeout); err != nil {
		return 0
	}
	defer c.lock.RUnlock()
	if c.hist == nil {
		return 0
	}
	return c.hist.UndoCount()
}

// RedoCount returns the number of locally recorded redo entries.
func (c *Core[T]) RedoCount() int {
	if err := c.lock.RLock(c.timeout); err != nil {
		return 0
	}
	defer c.lock.RUnlock()
	if c.hist == nil {
		return 0
	}
	return c.hist.RedoCount()
}

// HistoryLevels returns the configured stack capacity.
func (c *Core[T]) HistoryLevels() int {
	if err := c.lock.RLock(c.timeout); err != nil {
		return 0
	}
	defer c.lock.RUnlock()
	return c.levels
}

// SetHistoryLevels changes the stack capacity. Zero disposes both stacks
// and disables undo/redo for the instance; growing from zero re-enables
// them; shrinking drops the oldest entries first.
func (c *Core[T]) SetHistoryLevels(levels int) error {
	if levels < 0 {
		levels = 0
	}
	if err := c.lock.Lock(c.timeout); err != nil {
		return err
	}
	defer c.lock.Unlock()
	if c.disposed {
		return ErrDisposed
	}
	c.levels = levels
	if c.hist != nil {
		c.hist.SetLevels(levels)
		if levels == 0 {
			c.hist = nil
		}
	}
	return nil
}

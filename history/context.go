// Package history provides the bounded undo/redo context owned by an
// undoable container.
//
// A Context holds two capacity-limited push-down stacks of history entries.
// The entry type is generic; containers store batches of state changes so a
// single entry can undo one or many edits together. The context is created
// lazily by its owner on the first recorded mutation and torn down entirely
// when the level count is set to zero.
//
// The Context does not lock: the owning container serializes all access
// through its own lock discipline.
package history

// Context manages bounded undo and redo stacks of entries E.
type Context[E any] struct {
	levels int
	undo   []E
	redo   []E
}

// NewContext creates a context bounded to levels entries per stack.
// A non-positive level count disables recording entirely.
func NewContext[E any](levels int) *Context[E] {
	if levels < 0 {
		levels = 0
	}
	return &Context[E]{levels: levels}
}

// Levels returns the current stack capacity.
func (c *Context[E]) Levels() int {
	return c.levels
}

// SetLevels changes the stack capacity. Setting zero clears and releases
// both stacks; growing from zero re-enables recording; shrinking drops the
// oldest undo entries beyond the new capacity first.
func (c *Context[E]) SetLevels(levels int) {
	if levels < 0 {
		levels = 0
	}
	c.levels = levels

	if levels == 0 {
		c.undo = nil
		c.redo = nil
		return
	}

	if excess := len(c.undo) - levels; excess > 0 {
		c.undo = append(c.undo[:0:0], c.undo[excess:]...)
	}
	if excess := len(c.redo) - levels; excess > 0 {
		c.redo = append(c.redo[:0:0], c.redo[excess:]...)
	}
}

// Push records a fresh entry on the undo stack and clears the redo stack,
// making previously undone states unreachable. With zero levels this is a
// no-op and does not allocate.
func (c *Context[E]) Push(entry E) {
	if c.levels == 0 {
		return
	}

	c.undo = append(c.undo, entry)
	c.redo = nil

	if len(c.undo) > c.levels {
		excess := len(c.undo) - c.levels
		c.undo = c.undo[excess:]
	}
}

// PopUndo removes and returns the most recent undo entry.
func (c *Context[E]) PopUndo() (E, bool) {
	var zero E
	if len(c.undo) == 0 {
		return zero, false
	}
	entry := c.undo[len(c.undo)-1]
	c.undo[len(c.undo)-1] = zero
	c.undo = c.undo[:len(c.undo)-1]
	return entry, true
}

// PopRedo removes and returns the most recent redo entry.
func (c *Context[E]) PopRedo() (E, bool) {
	var zero E
	if len(c.redo) == 0 {
		return zero, false
	}
	entry := c.redo[len(c.redo)-1]
	c.redo[len(c.redo)-1] = zero
	c.redo = c.redo[:len(c.redo)-1]
	return entry, true
}

// PushRedo places an entry popped during undo onto the redo stack. Unlike
// Push it never clears the opposite stack.
func (c *Context[E]) PushRedo(entry E) {
	if c.levels == 0 {
		return
	}
	c.redo = append(c.redo, entry)
	if len(c.redo) > c.levels {
		excess := len(c.redo) - c.levels
		c.redo = c.redo[excess:]
	}
}

// RestoreUndo places an entry popped during redo back onto the undo stack
// without clearing the redo stack.
func (c *Context[E]) RestoreUndo(entry E) {
	if c.levels == 0 {
		return
	}
	c.undo = append(c.undo, entry)
	if len(c.undo) > c.levels {
		excess := len(c.undo) - c.levels
		c.undo = c.undo[excess:]
	}
}

// CanUndo reports whether an undo entry is available.
func (c *Context[E]) CanUndo() bool {
	return len(c.undo) > 0
}

// CanRedo reports whether a redo entry is available.
func (c *Context[E]) CanRedo() bool {
	return len(c.redo) > 0
}

// UndoCount returns the number of undo entries available.
func (c *Context[E]) UndoCount() int {
	return len(c.undo)
}

// RedoCount returns the number of redo entries available.
func (c *Context[E]) RedoCount() int {
	return len(c.redo)
}

// Clear drops all recorded entries without changing the capacity.
func (c *Context[E]) Clear() {
	c.undo = nil
	c.redo = nil
}

// Dispose releases both stacks and disables further recording.
func (c *Context[E]) Dispose() {
	c.levels = 0
	c.undo = nil
	c.redo = nil
}

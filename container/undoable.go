package container

import "github.com/krellware/rewind/change"

// Owner is the undo authority a captured item delegates to. Every container
// core implements it; custom parent contexts can too.
type Owner interface {
	// Undo reverts the owner's most recent history entry.
	Undo() error
	// Redo re-applies the owner's most recently undone entry.
	Redo() error
	// CanUndo reports whether an undo entry is available.
	CanUndo() bool
	// CanRedo reports whether a redo entry is available.
	CanRedo() bool

	// ChildEditCommitted records that a captured child committed an edit
	// batch. Called by the child after its own lock is released; the
	// owner acquires its own lock to record the entry, so the two locks
	// are never held together.
	ChildEditCommitted(child Undoable, batch any) error
}

// Undoable is the capability a contained item exposes to participate in
// nested undo composition. Items that do not implement it are stored
// without composing histories. Every container core implements Undoable,
// so containers nest arbitrarily.
//
// Capture is exclusive: an item is captured into at most one owner at a
// time, and every successful capture must be matched by exactly one release
// before re-capture is legal.
type Undoable interface {
	change.SubEditor

	// CaptureInto transfers the item's undo delegation to parent.
	// Returns ErrAlreadyCaptured if the item is captured elsewhere.
	CaptureInto(parent Owner) error

	// ReleaseFrom ends the capture held by parent. Returns
	// ErrNotCaptured unless parent is the current owner.
	ReleaseFrom(parent Owner) error

	// IsCaptured reports whether the item is currently captured.
	IsCaptured() bool

	// Parent returns the current owner, or nil.
	Parent() Owner
}

// asUndoable reports the Undoable capability of an arbitrary item.
func asUndoable(item any) (Undoable, bool) {
	u, ok := item.(Undoable)
	return u, ok
}

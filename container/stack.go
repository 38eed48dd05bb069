package container

import "github.com/krellware/rewind/locking"

// Stack is an undoable LIFO stack over the same orchestration core as
// List, exposing only stack-shaped operations.
type Stack[T any] struct {
	core *Core[T]
}

// NewStack creates an empty single-threaded undoable stack.
func NewStack[T comparable](opts ...Option) *Stack[T] {
	o := buildOptions(locking.NewUnguarded(), opts)
	eq := func(a, b T) bool { return a == b }
	return &Stack[T]{core: NewCore[T](newSliceStore(eq), o)}
}

// NewConcurrentStack creates an empty stack safe for shared use.
func NewConcurrentStack[T comparable](opts ...Option) *Stack[T] {
	o := buildOptions(locking.NewUpgradeable(), opts)
	eq := func(a, b T) bool { return a == b }
	return &Stack[T]{core: NewCore[T](newSliceStore(eq), o)}
}

// Push places item on top of the stack.
func (s *Stack[T]) Push(item T) error {
	return s.core.Add(item)
}

// AddRange pushes items bottom-to-top as one history entry.
func (s *Stack[T]) AddRange(items []T) error {
	return s.core.AddRange(items)
}

// Pop removes and returns the top item, reporting false when empty.
func (s *Stack[T]) Pop() (T, bool, error) {
	return s.core.RemoveLast()
}

// Peek returns the top item without removing it.
func (s *Stack[T]) Peek() (T, bool, error) {
	return s.core.PeekLast()
}

// Len returns the number of stacked items.
func (s *Stack[T]) Len() (int, error) { return s.core.Len() }

// Items returns a bottom-to-top snapshot.
func (s *Stack[T]) Items() ([]T, error) { return s.core.Items() }

// Clear removes all items as one history entry.
func (s *Stack[T]) Clear() error { return s.core.Clear() }

// Undo reverts the most recent mutation.
func (s *Stack[T]) Undo() error { return s.core.Undo() }

// Redo re-applies the most recently undone mutation.
func (s *Stack[T]) Redo() error { return s.core.Redo() }

// CanUndo reports whether an undo entry is available.
func (s *Stack[T]) CanUndo() bool { return s.core.CanUndo() }

// CanRedo reports whether a redo entry is available.
func (s *Stack[T]) CanRedo() bool { return s.core.CanRedo() }

// SetHistoryLevels changes the undo/redo stack capacity.
func (s *Stack[T]) SetHistoryLevels(levels int) error {
	return s.core.SetHistoryLevels(levels)
}

// StartBlock opens an explicit block transaction.
func (s *Stack[T]) StartBlock() error { return s.core.StartBlock() }

// CommitBlock commits the open block transaction as one undo unit.
func (s *Stack[T]) CommitBlock() error { return s.core.CommitBlock() }

// AbandonBlock discards the open block transaction's history record.
func (s *Stack[T]) AbandonBlock() error { return s.core.AbandonBlock() }

// Block runs fn inside a block transaction, committing on success.
func (s *Stack[T]) Block(fn func() error) error { return s.core.Block(fn) }

// Dispose tears the stack down.
func (s *Stack[T]) Dispose() error { return s.core.Dispose() }

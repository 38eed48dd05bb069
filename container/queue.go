package container

import "github.com/krellware/rewind/locking"

// Queue is an undoable FIFO queue over the same orchestration core as
// List, exposing only queue-shaped operations.
type Queue[T any] struct {
	core *Core[T]
}

// NewQueue creates an empty single-threaded undoable queue.
func NewQueue[T comparable](opts ...Option) *Queue[T] {
	o := buildOptions(locking.NewUnguarded(), opts)
	eq := func(a, b T) bool { return a == b }
	return &Queue[T]{core: NewCore[T](newSliceStore(eq), o)}
}

// NewConcurrentQueue creates an empty queue safe for shared use.
func NewConcurrentQueue[T comparable](opts ...Option) *Queue[T] {
	o := buildOptions(locking.NewUpgradeable(), opts)
	eq := func(a, b T) bool { return a == b }
	return &Queue[T]{core: NewCore[T](newSliceStore(eq), o)}
}

// Enqueue appends item at the back of the queue.
func (q *Queue[T]) Enqueue(item T) error {
	return q.core.Add(item)
}

// AddRange enqueues items front-to-back as one history entry.
func (q *Queue[T]) AddRange(items []T) error {
	return q.core.AddRange(items)
}

// Dequeue removes and returns the front item, reporting false when empty.
func (q *Queue[T]) Dequeue() (T, bool, error) {
	return q.core.RemoveFirst()
}

// Peek returns the front item without removing it.
func (q *Queue[T]) Peek() (T, bool, error) {
	return q.core.PeekFirst()
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() (int, error) { return q.core.Len() }

// Items returns a front-to-back snapshot.
func (q *Queue[T]) Items() ([]T, error) { return q.core.Items() }

// Clear removes all items as one history entry.
func (q *Queue[T]) Clear() error { return q.core.Clear() }

// Undo reverts the most recent mutation.
func (q *Queue[T]) Undo() error { return q.core.Undo() }

// Redo re-applies the most recently undone mutation.
func (q *Queue[T]) Redo() error { return q.core.Redo() }

// CanUndo reports whether an undo entry is available.
func (q *Queue[T]) CanUndo() bool { return q.core.CanUndo() }

// CanRedo reports whether a redo entry is available.
func (q *Queue[T]) CanRedo() bool { return q.core.CanRedo() }

// SetHistoryLevels changes the undo/redo stack capacity.
func (q *Queue[T]) SetHistoryLevels(levels int) error {
	return q.core.SetHistoryLevels(levels)
}

// StartBlock opens an explicit block transaction.
func (q *Queue[T]) StartBlock() error { return q.core.StartBlock() }

// CommitBlock commits the open block transaction as one undo unit.
func (q *Queue[T]) CommitBlock() error { return q.core.CommitBlock() }

// AbandonBlock discards the open block transaction's history record.
func (q *Queue[T]) AbandonBlock() error { return q.core.AbandonBlock() }

// Block runs fn inside a block transaction, committing on success.
func (q *Queue[T]) Block(fn func() error) error { return q.core.Block(fn) }

// Dispose tears the queue down.
func (q *Queue[T]) Dispose() error { return q.core.Dispose() }

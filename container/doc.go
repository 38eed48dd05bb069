// Package container provides mutable container types whose structural
// mutations are thread-safe, reversible and composable.
//
// # Containers
//
// List, Stack, Queue and Dict wrap one orchestration Core each, selected
// by backing adapter and lock strategy at construction rather than by
// subclassing:
//
//	list := container.NewList[int]()                    // single-threaded
//	clist := container.NewConcurrentList[int]()         // shared use
//	dict := container.NewDict[string, int]()
//
// # Undo and redo
//
// Every structural mutation records an exactly-reversible state change on
// a bounded history stack:
//
//	list.Add(6)
//	list.Undo() // 6 is gone
//	list.Redo() // 6 is back
//
// The depth is bounded by the history levels (WithHistoryLevels); setting
// zero disables undo/redo for the instance. A fresh mutation clears the
// redo stack, matching conventional editor semantics. Undo past the
// recorded depth is a silent no-op; query CanUndo to discriminate.
//
// # Block transactions
//
// StartBlock groups subsequent changes into one atomic undo unit until
// CommitBlock pushes them as a single entry, or AbandonBlock discards the
// record (applied mutations stay applied). Undo and redo are illegal while
// a block is open.
//
// # Nested containers
//
// With WithCaptureSubItems enabled, adding an item that implements the
// Undoable capability captures it: the item's undo delegation transfers to
// the owning container, and edits committed by the item are recorded in
// the owner's history as sub-item entries. Undo on a captured item bubbles
// to the outermost owner. Capture is speculative inside each mutation: if
// the operation fails after ownership transferred, the transfer is
// reverted before the error propagates.
//
// # Concurrency
//
// All operations are synchronous and serialized by a per-instance
// upgradeable reader/writer lock; read-only prechecks never take the write
// lock. Acquisition is bounded by a timeout (WithLockTimeout) surfacing
// locking.ErrTimeout. Notifications always fire after the lock is
// released, so observers may re-enter the container from their handlers.
package container

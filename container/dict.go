package container

import "github.com/krellware/rewind/locking"

// Dict is an undoable dictionary over hash-backed storage. The backing
// adapter yields no determinate indexes, so every mutation is recorded as
// an unindexed structural reset: both undo and redo replay a full snapshot
// swap.
type Dict[K comparable, V any] struct {
	core  *Core[Entry[K, V]]
	store *mapStore[K, V]
}

// NewDict creates an empty single-threaded undoable dictionary.
func NewDict[K comparable, V any](opts ...Option) *Dict[K, V] {
	o := buildOptions(locking.NewUnguarded(), opts)
	store := newMapStore[K, V]()
	return &Dict[K, V]{core: NewCore[Entry[K, V]](store, o), store: store}
}

// NewConcurrentDict creates an empty dictionary safe for shared use.
func NewConcurrentDict[K comparable, V any](opts ...Option) *Dict[K, V] {
	o := buildOptions(locking.NewUpgradeable(), opts)
	store := newMapStore[K, V]()
	return &Dict[K, V]{core: NewCore[Entry[K, V]](store, o), store: store}
}

// Set stores value under key, overwriting any existing value.
func (d *Dict[K, V]) Set(key K, value V) error {
	return d.core.Add(Entry[K, V]{Key: key, Value: value})
}

// AddRange stores all entries as one history entry.
func (d *Dict[K, V]) AddRange(entries []Entry[K, V]) error {
	return d.core.AddRange(entries)
}

// Delete removes key, reporting whether it was present. An absent key
// short-circuits on the read lock.
func (d *Dict[K, V]) Delete(key K) (bool, error) {
	var zero V
	return d.core.Remove(Entry[K, V]{Key: key, Value: zero})
}

// Get returns the value stored under key.
func (d *Dict[K, V]) Get(key K) (V, bool, error) {
	var value V
	found := false
	err := d.core.read(func() {
		value, found = d.store.lookup(key)
	})
	return value, found, err
}

// Contains reports whether key is present.
func (d *Dict[K, V]) Contains(key K) (bool, error) {
	var zero V
	return d.core.Contains(Entry[K, V]{Key: key, Value: zero})
}

// Len returns the number of stored entries.
func (d *Dict[K, V]) Len() (int, error) { return d.core.Len() }

// Entries returns a snapshot of the stored entries in map iteration order.
func (d *Dict[K, V]) Entries() ([]Entry[K, V], error) { return d.core.Items() }

// Keys returns a snapshot of the stored keys in map iteration order.
func (d *Dict[K, V]) Keys() ([]K, error) {
	entries, err := d.core.Items()
	if err != nil {
		return nil, err
	}
	keys := make([]K, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	return keys, nil
}

// Clear removes all entries as one history entry.
func (d *Dict[K, V]) Clear() error { return d.core.Clear() }

// Undo reverts the most recent mutation by replaying its prior snapshot.
func (d *Dict[K, V]) Undo() error { return d.core.Undo() }

// Redo re-applies the most recently undone mutation.
func (d *Dict[K, V]) Redo() error { return d.core.Redo() }

// CanUndo reports whether an undo entry is available.
func (d *Dict[K, V]) CanUndo() bool { return d.core.CanUndo() }

// CanRedo reports whether a redo entry is available.
func (d *Dict[K, V]) CanRedo() bool { return d.core.CanRedo() }

// SetHistoryLevels changes the undo/redo stack capacity.
func (d *Dict[K, V]) SetHistoryLevels(levels int) error {
	return d.core.SetHistoryLevels(levels)
}

// StartBlock opens an explicit block transaction.
func (d *Dict[K, V]) StartBlock() error { return d.core.StartBlock() }

// CommitBlock commits the open block transaction as one undo unit.
func (d *Dict[K, V]) CommitBlock() error { return d.core.CommitBlock() }

// AbandonBlock discards the open block transaction's history record.
func (d *Dict[K, V]) AbandonBlock() error { return d.core.AbandonBlock() }

// Block runs fn inside a block transaction, committing on success.
func (d *Dict[K, V]) Block(fn func() error) error { return d.core.Block(fn) }

// Dispose tears the dictionary down.
func (d *Dict[K, V]) Dispose() error { return d.core.Dispose() }

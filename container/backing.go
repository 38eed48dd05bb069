package container

// Backing is the uniform capability surface the core operates through,
// abstracting the concrete storage structure. Positional methods are only
// invoked on adapters that report themselves positional; adapters without
// determinate positions (hashed storage) return -1 from Add and Remove and
// the core records their mutations as full-snapshot resets instead.
//
// A Backing is never locked on its own: the owning core serializes access.
type Backing[T any] interface {
	// Len returns the number of stored items.
	Len() int

	// Add appends or inserts item per the structure's natural placement
	// and returns the index it landed at, or -1 when the structure has
	// no determinate index.
	Add(item T) int

	// Remove removes the first occurrence of item and returns the index
	// it was removed from, or -1 when indexless. The caller checks
	// Contains first.
	Remove(item T) int

	// Insert places item at index, shifting later items.
	Insert(index int, item T)

	// RemoveAt removes and returns the item at index.
	RemoveAt(index int) T

	// Get returns the item at index.
	Get(index int) T

	// Set replaces the item at index and returns the prior item.
	Set(index int, item T) T

	// Clear removes all items.
	Clear()

	// Contains reports whether item is stored.
	Contains(item T) bool

	// IndexOf returns the index of item, or -1.
	IndexOf(item T) int

	// Items returns a snapshot copy of the contents in iteration order.
	Items() []T

	// CopyTo copies contents into dst and returns the count copied.
	CopyTo(dst []T) int

	// ReplaceAll swaps the full contents for items.
	ReplaceAll(items []T)

	// Positional reports whether Add and Remove yield determinate
	// indexes.
	Positional() bool
}

// sliceStore is the slice-backed adapter used by lists, stacks and queues.
type sliceStore[T any] struct {
	items []T
	eq    func(a, b T) bool
}

func newSliceStore[T any](eq func(a, b T) bool) *sliceStore[T] {
	return &sliceStore[T]{eq: eq}
}

func (s *sliceStore[T]) Len() int { return len(s.items) }

func (s *sliceStore[T]) Add(item T) int {
	s.items = append(s.items, item)
	return len(s.items) - 1
}

func (s *sliceStore[T]) Remove(item T) int {
	idx := s.IndexOf(item)
	if idx < 0 {
		return -1
	}
	s.RemoveAt(idx)
	return idx
}

func (s *sliceStore[T]) Insert(index int, item T) {
	var zero T
	s.items = append(s.items, zero)
	copy(s.items[index+1:], s.items[index:])
	s.items[index] = item
}

func (s *sliceStore[T]) RemoveAt(index int) T {
	item := s.items[index]
	var zero T
	copy(s.items[index:], s.items[index+1:])
	s.items[len(s.items)-1] = zero
	s.items = s.items[:len(s.items)-1]
	return item
}

func (s *sliceStore[T]) Get(index int) T { return s.items[index] }

func (s *sliceStore[T]) Set(index int, item T) T {
	prior := s.items[index]
	s.items[index] = item
	return prior
}

func (s *sliceStore[T]) Clear() { s.items = nil }

func (s *sliceStore[T]) Contains(item T) bool { return s.IndexOf(item) >= 0 }

func (s *sliceStore[T]) IndexOf(item T) int {
	for i, stored := range s.items {
		if s.eq(stored, item) {
			return i
		}
	}
	return -1
}

func (s *sliceStore[T]) Items() []T {
	if len(s.items) == 0 {
		return nil
	}
	snapshot := make([]T, len(s.items))
	copy(snapshot, s.items)
	return snapshot
}

func (s *sliceStore[T]) CopyTo(dst []T) int { return copy(dst, s.items) }

func (s *sliceStore[T]) ReplaceAll(items []T) {
	s.items = nil
	if len(items) > 0 {
		s.items = make([]T, len(items))
		copy(s.items, items)
	}
}

func (s *sliceStore[T]) Positional() bool { return true }

// Entry is one key/value pair stored by a Dict.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// mapStore is the hash-backed adapter used by dictionaries. It has no
// determinate indexes; Add and Remove return -1 and the core records every
// mutation as a snapshot reset. Entry identity is key identity.
type mapStore[K comparable, V any] struct {
	entries map[K]V
}

func newMapStore[K comparable, V any]() *mapStore[K, V] {
	return &mapStore[K, V]{entries: make(map[K]V)}
}

func (s *mapStore[K, V]) Len() int { return len(s.entries) }

func (s *mapStore[K, V]) Add(item Entry[K, V]) int {
	s.entries[item.Key] = item.Value
	return -1
}

func (s *mapStore[K, V]) Remove(item Entry[K, V]) int {
	if _, ok := s.entries[item.Key]; !ok {
		return -1
	}
	delete(s.entries, item.Key)
	return -1
}

func (s *mapStore[K, V]) Insert(index int, item Entry[K, V]) {
	s.entries[item.Key] = item.Value
}

func (s *mapStore[K, V]) RemoveAt(index int) Entry[K, V] {
	panic("mapStore: positional removal on indexless storage")
}

func (s *mapStore[K, V]) Get(index int) Entry[K, V] {
	panic("mapStore: positional access on indexless storage")
}

func (s *mapStore[K, V]) Set(index int, item Entry[K, V]) Entry[K, V] {
	panic("mapStore: positional access on indexless storage")
}

func (s *mapStore[K, V]) Clear() { s.entries = make(map[K]V) }

func (s *mapStore[K, V]) Contains(item Entry[K, V]) bool {
	_, ok := s.entries[item.Key]
	return ok
}

func (s *mapStore[K, V]) IndexOf(item Entry[K, V]) int { return -1 }

func (s *mapStore[K, V]) Items() []Entry[K, V] {
	if len(s.entries) == 0 {
		return nil
	}
	snapshot := make([]Entry[K, V], 0, len(s.entries))
	for k, v := range s.entries {
		snapshot = append(snapshot, Entry[K, V]{Key: k, Value: v})
	}
	return snapshot
}

func (s *mapStore[K, V]) CopyTo(dst []Entry[K, V]) int {
	return copy(dst, s.Items())
}

func (s *mapStore[K, V]) ReplaceAll(items []Entry[K, V]) {
	s.entries = make(map[K]V, len(items))
	for _, e := range items {
		s.entries[e.Key] = e.Value
	}
}

func (s *mapStore[K, V]) lookup(key K) (V, bool) {
	v, ok := s.entries[key]
	return v, ok
}

func (s *mapStore[K, V]) Positional() bool { return false }

package container

import "github.com/krellware/rewind/locking"

// List is an undoable list. The zero value is not usable; construct with
// NewList, NewListOf or their concurrent and custom-equality variants.
type List[T any] struct {
	*Core[T]
}

// NewList creates an empty single-threaded undoable list.
func NewList[T comparable](opts ...Option) *List[T] {
	return NewListFunc[T](func(a, b T) bool { return a == b }, opts...)
}

// NewListFunc creates an empty single-threaded list using eq for item
// equality, for element types that are not comparable.
func NewListFunc[T any](eq func(a, b T) bool, opts ...Option) *List[T] {
	o := buildOptions(locking.NewUnguarded(), opts)
	return &List[T]{Core: NewCore[T](newSliceStore(eq), o)}
}

// NewConcurrentList creates an empty list safe for shared use, guarded by
// an upgradeable reader/writer lock.
func NewConcurrentList[T comparable](opts ...Option) *List[T] {
	return NewConcurrentListFunc[T](func(a, b T) bool { return a == b }, opts...)
}

// NewConcurrentListFunc is NewConcurrentList with custom item equality.
func NewConcurrentListFunc[T any](eq func(a, b T) bool, opts ...Option) *List[T] {
	o := buildOptions(locking.NewUpgradeable(), opts)
	return &List[T]{Core: NewCore[T](newSliceStore(eq), o)}
}

// NewListOf creates a single-threaded list seeded with items. Seeding
// records no history and fires no notifications; seeded undoable items are
// captured when capture is enabled, which is the only error path.
func NewListOf[T comparable](items []T, opts ...Option) (*List[T], error) {
	l := NewList[T](opts...)
	if err := l.seed(items); err != nil {
		return nil, err
	}
	return l, nil
}

// NewConcurrentListOf creates a concurrent list seeded with items.
func NewConcurrentListOf[T comparable](items []T, opts ...Option) (*List[T], error) {
	l := NewConcurrentList[T](opts...)
	if err := l.seed(items); err != nil {
		return nil, err
	}
	return l, nil
}

// Package change defines the state-change taxonomy for undoable containers.
//
// A Change is an immutable, data-only record of one reversible edit. It
// carries exactly the literal data needed to reverse and re-apply the edit
// without recomputation: an add records the added item and its index, a clear
// records the full prior snapshot, and so on. The container core interprets
// each variant to produce both the inverse (undo) and the forward (redo)
// mutation; a Change itself has no behavior beyond carrying data.
//
// Two variants compose histories: SubItem wraps a nested container's own
// committed batch so an owner's history can record that a contained item
// changed, and Block groups an ordered list of changes into one atomic
// undo unit.
package change

// Kind identifies the variant of a Change.
type Kind uint8

const (
	// KindAdd records a single item added at a known index. Insertions at
	// arbitrary positions use the same variant; the index is literal.
	KindAdd Kind = iota

	// KindRemove records a single item removed from a known index.
	KindRemove

	// KindReplace records an in-place replacement at an index, carrying
	// both the prior and the new item.
	KindReplace

	// KindClear records removal of all items, carrying the full prior
	// snapshot in order.
	KindClear

	// KindAddRange records multiple items added with parallel index data,
	// indexes ascending.
	KindAddRange

	// KindRemoveRange records multiple items removed with parallel index
	// data, indexes descending so replay keeps earlier indexes valid.
	KindRemoveRange

	// KindReset records an unindexed structural change (for example a
	// hashed dictionary mutation, where the adapter yields no determinate
	// index). Both undo and redo replay a full snapshot swap; no synthetic
	// index is ever recorded.
	KindReset

	// KindSubItem records that a captured nested container committed an
	// edit batch of its own.
	KindSubItem

	// KindBlock groups an ordered list of changes committed as one
	// atomic undo unit.
	KindBlock
)

// String returns the variant name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "add"
	case KindRemove:
		return "remove"
	case KindReplace:
		return "replace"
	case KindClear:
		return "clear"
	case KindAddRange:
		return "add-range"
	case KindRemoveRange:
		return "remove-range"
	case KindReset:
		return "reset"
	case KindSubItem:
		return "sub-item"
	case KindBlock:
		return "block"
	default:
		return "unknown"
	}
}

// SubEditor is the minimal capability a nested container exposes for
// replaying one of its recorded batches from an owner's history. The batch
// value is opaque to the owner; only the child that produced it can
// interpret it.
type SubEditor interface {
	UndoBatch(batch any) error
	RedoBatch(batch any) error
}

// Change is an immutable record of one reversible edit. Which fields are
// meaningful depends on Kind; all slice fields are private copies made by
// the constructors and must not be mutated by consumers.
type Change[T any] struct {
	// Kind selects the variant.
	Kind Kind

	// Item is the affected item for Add, Remove and Replace.
	Item T

	// Prior is the replaced item for Replace.
	Prior T

	// Index is the affected position for Add, Remove and Replace.
	Index int

	// Items and Indexes are parallel data for AddRange and RemoveRange,
	// and Items alone is the prior snapshot for Clear.
	Items   []T
	Indexes []int

	// Before and After are full snapshots for Reset.
	Before []T
	After  []T

	// Child and ChildBatch identify a nested container's committed batch
	// for SubItem. ChildBatch is opaque to everyone but Child.
	Child      SubEditor
	ChildBatch any

	// Block is the ordered change list for Block.
	Block []Change[T]
}

// Batch is one history-stack entry: one or more changes that undo and redo
// together.
type Batch[T any] []Change[T]

// Add records a single item added at index.
func Add[T any](item T, index int) Change[T] {
	return Change[T]{Kind: KindAdd, Item: item, Index: index}
}

// Remove records a single item removed from index.
func Remove[T any](item T, index int) Change[T] {
	return Change[T]{Kind: KindRemove, Item: item, Index: index}
}

// Replace records prior being replaced by item at index.
func Replace[T any](prior, item T, index int) Change[T] {
	return Change[T]{Kind: KindReplace, Prior: prior, Item: item, Index: index}
}

// Clear records removal of all items; snapshot is the full prior contents
// in order.
func Clear[T any](snapshot []T) Change[T] {
	return Change[T]{Kind: KindClear, Items: copySlice(snapshot)}
}

// AddRange records items added at the parallel indexes, ascending.
func AddRange[T any](items []T, indexes []int) Change[T] {
	return Change[T]{Kind: KindAddRange, Items: copySlice(items), Indexes: copySlice(indexes)}
}

// RemoveRange records items removed from the parallel indexes, descending.
func RemoveRange[T any](items []T, indexes []int) Change[T] {
	return Change[T]{Kind: KindRemoveRange, Items: copySlice(items), Indexes: copySlice(indexes)}
}

// Reset records an unindexed structural change as a pair of full snapshots.
func Reset[T any](before, after []T) Change[T] {
	return Change[T]{Kind: KindReset, Before: copySlice(before), After: copySlice(after)}
}

// SubItem records that child committed batch while captured.
func SubItem[T any](child SubEditor, batch any) Change[T] {
	return Change[T]{Kind: KindSubItem, Child: child, ChildBatch: batch}
}

// Block groups changes into one atomic undo unit.
func Block[T any](changes []Change[T]) Change[T] {
	return Change[T]{Kind: KindBlock, Block: copySlice(changes)}
}

func copySlice[E any](src []E) []E {
	if len(src) == 0 {
		return nil
	}
	dst := make([]E, len(src))
	copy(dst, src)
	return dst
}

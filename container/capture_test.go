package container

import (
	"errors"
	"testing"
)

func newOwnerList(t *testing.T) *List[*List[int]] {
	t.Helper()
	return NewListFunc[*List[int]](
		func(a, b *List[int]) bool { return a == b },
		WithCaptureSubItems(true),
	)
}

func TestCaptureOnAddReleaseOnRemove(t *testing.T) {
	owner := newOwnerList(t)
	child := NewList[int]()

	if err := owner.Add(child); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if !child.IsCaptured() {
		t.Fatal("added child should be captured")
	}
	if child.Parent() == nil {
		t.Fatal("child parent reference should be set")
	}

	removed, err := owner.Remove(child)
	if err != nil || !removed {
		t.Fatalf("Remove = (%v, %v)", removed, err)
	}
	if child.IsCaptured() {
		t.Error("removed child should be released")
	}
	if child.Parent() != nil {
		t.Error("child parent reference should be cleared")
	}
}

func TestCaptureIsExclusive(t *testing.T) {
	first := newOwnerList(t)
	second := newOwnerList(t)
	child := NewList[int]()

	if err := first.Add(child); err != nil {
		t.Fatal(err)
	}
	if err := second.Add(child); !errors.Is(err, ErrAlreadyCaptured) {
		t.Fatalf("double capture = %v, want ErrAlreadyCaptured", err)
	}
	if n, _ := second.Len(); n != 0 {
		t.Error("failed capture must leave the second owner unchanged")
	}
}

func TestGuardRevertsPartialCapture(t *testing.T) {
	other := newOwnerList(t)
	owner := newOwnerList(t)
	free := NewList[int]()
	taken := NewList[int]()

	if err := other.Add(taken); err != nil {
		t.Fatal(err)
	}

	// The first capture succeeds speculatively, the second fails; the
	// guard must revert the first before the error propagates.
	err := owner.AddRange([]*List[int]{free, taken})
	if !errors.Is(err, ErrAlreadyCaptured) {
		t.Fatalf("AddRange = %v, want ErrAlreadyCaptured", err)
	}
	if free.IsCaptured() {
		t.Error("speculative capture must be reverted on failure")
	}
	if n, _ := owner.Len(); n != 0 {
		t.Error("failed range add must leave the owner unchanged")
	}
	if taken.Parent() == nil {
		t.Error("the original capture must be untouched")
	}
}

func TestSeedRevertsPartialCapture(t *testing.T) {
	other := newOwnerList(t)
	free := NewList[int]()
	taken := NewList[int]()

	if err := other.Add(taken); err != nil {
		t.Fatal(err)
	}

	// The failed constructor returns no list, so a capture left behind
	// would have no owner to release it with.
	l, err := NewListOf([]*List[int]{free, taken}, WithCaptureSubItems(true))
	if !errors.Is(err, ErrAlreadyCaptured) {
		t.Fatalf("NewListOf = %v, want ErrAlreadyCaptured", err)
	}
	if l != nil {
		t.Fatal("failed seeding must not return a list")
	}
	if free.IsCaptured() {
		t.Error("seed captures must be reverted on failure")
	}
	if taken.Parent() == nil {
		t.Error("the original capture must be untouched")
	}
}

func TestNestedEditRecordedInOwnerHistory(t *testing.T) {
	owner := newOwnerList(t)
	child := NewList[int]()

	if err := owner.Add(child); err != nil {
		t.Fatal(err)
	}
	ownerEntries := owner.UndoCount()

	if err := child.Add(42); err != nil {
		t.Fatalf("child Add failed: %v", err)
	}
	if got, _ := child.Contains(42); !got {
		t.Fatal("child should contain 42")
	}
	if got := owner.UndoCount(); got != ownerEntries+1 {
		t.Fatalf("owner entries = %d, want %d", got, ownerEntries+1)
	}
	if got := child.UndoCount(); got != 0 {
		t.Errorf("captured child must not record locally, got %d", got)
	}

	// Undo on the child bubbles to the owner and reverts the child edit.
	if err := child.Undo(); err != nil {
		t.Fatalf("delegated Undo failed: %v", err)
	}
	if got, _ := child.Contains(42); got {
		t.Error("owner undo should revert the child edit")
	}

	if err := owner.Redo(); err != nil {
		t.Fatalf("owner Redo failed: %v", err)
	}
	if got, _ := child.Contains(42); !got {
		t.Error("owner redo should re-apply the child edit")
	}
}

func TestUndoOfAddReleasesChild(t *testing.T) {
	owner := newOwnerList(t)
	child := NewList[int]()

	if err := owner.Add(child); err != nil {
		t.Fatal(err)
	}
	if err := owner.Undo(); err != nil {
		t.Fatal(err)
	}
	if child.IsCaptured() {
		t.Error("undoing the add should release the child")
	}
	if err := owner.Redo(); err != nil {
		t.Fatal(err)
	}
	if !child.IsCaptured() {
		t.Error("redoing the add should re-capture the child")
	}
}

func TestCanUndoDelegatesToOwner(t *testing.T) {
	owner := newOwnerList(t)
	child := NewList[int]()

	if err := owner.Add(child); err != nil {
		t.Fatal(err)
	}
	// The owner has history (the add of the child itself); the captured
	// child reports through the owner.
	if !child.CanUndo() {
		t.Error("captured child should report the owner's undo availability")
	}
}

func TestGrandparentChain(t *testing.T) {
	grandparent := NewListFunc[*List[*List[int]]](
		func(a, b *List[*List[int]]) bool { return a == b },
		WithCaptureSubItems(true),
	)
	parent := newOwnerList(t)
	child := NewList[int]()

	if err := grandparent.Add(parent); err != nil {
		t.Fatal(err)
	}
	if err := parent.Add(child); err != nil {
		t.Fatal(err)
	}
	entries := grandparent.UndoCount()

	if err := child.Add(7); err != nil {
		t.Fatal(err)
	}
	if got := grandparent.UndoCount(); got != entries+1 {
		t.Fatalf("grandparent entries = %d, want %d", got, entries+1)
	}
	if parent.UndoCount() != 0 {
		t.Error("captured middle container must not record locally")
	}

	if err := child.Undo(); err != nil {
		t.Fatalf("undo through the chain failed: %v", err)
	}
	if got, _ := child.Contains(7); got {
		t.Error("undo should bubble to the outermost authority and revert")
	}
}

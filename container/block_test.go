package container

import (
	"errors"
	"testing"
)

func TestBlockTransactionCommit(t *testing.T) {
	l := newSeededList(t)

	if err := l.StartBlock(); err != nil {
		t.Fatalf("StartBlock failed: %v", err)
	}
	for _, v := range []int{60, 61, 62} {
		if err := l.Add(v); err != nil {
			t.Fatalf("Add(%d) failed: %v", v, err)
		}
	}
	if l.CanUndo() {
		t.Error("changes inside an open block must not be undoable yet")
	}
	if err := l.CommitBlock(); err != nil {
		t.Fatalf("CommitBlock failed: %v", err)
	}

	if got := l.UndoCount(); got != 1 {
		t.Fatalf("committed block should be one entry, got %d", got)
	}
	if err := l.Undo(); err != nil {
		t.Fatal(err)
	}
	for _, v := range []int{60, 61, 62} {
		if mustContains(t, l, v) {
			t.Errorf("one undo should revert the whole block, %d still present", v)
		}
	}
	if err := l.Redo(); err != nil {
		t.Fatal(err)
	}
	for _, v := range []int{60, 61, 62} {
		if !mustContains(t, l, v) {
			t.Errorf("redo should re-apply the whole block, %d missing", v)
		}
	}
}

func TestBlockTransactionAbandon(t *testing.T) {
	l := newSeededList(t)

	if err := l.StartBlock(); err != nil {
		t.Fatal(err)
	}
	if err := l.Add(60); err != nil {
		t.Fatal(err)
	}
	if err := l.AbandonBlock(); err != nil {
		t.Fatalf("AbandonBlock failed: %v", err)
	}

	// Abandoning discards the record, not the mutation.
	if !mustContains(t, l, 60) {
		t.Error("abandoned block's mutations must stay applied")
	}
	if l.CanUndo() {
		t.Error("abandoned block must leave no history record")
	}
}

func TestBlockTransactionIllegalStates(t *testing.T) {
	l := newSeededList(t)

	if err := l.CommitBlock(); !errors.Is(err, ErrInvalidContext) {
		t.Errorf("commit without start = %v, want ErrInvalidContext", err)
	}
	if err := l.AbandonBlock(); !errors.Is(err, ErrInvalidContext) {
		t.Errorf("abandon without start = %v, want ErrInvalidContext", err)
	}

	if err := l.StartBlock(); err != nil {
		t.Fatal(err)
	}
	if err := l.StartBlock(); !errors.Is(err, ErrInvalidContext) {
		t.Errorf("nested block = %v, want ErrInvalidContext", err)
	}
	if err := l.Undo(); !errors.Is(err, ErrInvalidContext) {
		t.Errorf("undo inside open block = %v, want ErrInvalidContext", err)
	}
	if err := l.Redo(); !errors.Is(err, ErrInvalidContext) {
		t.Errorf("redo inside open block = %v, want ErrInvalidContext", err)
	}
	if !l.InBlock() {
		t.Error("block should still be open after rejected operations")
	}
	if err := l.CommitBlock(); err != nil {
		t.Fatalf("empty commit failed: %v", err)
	}
	if l.CanUndo() {
		t.Error("empty block must record nothing")
	}
}

func TestBlockHelper(t *testing.T) {
	l := newSeededList(t)

	err := l.Block(func() error {
		if err := l.Add(70); err != nil {
			return err
		}
		return l.Add(71)
	})
	if err != nil {
		t.Fatalf("Block failed: %v", err)
	}
	if got := l.UndoCount(); got != 1 {
		t.Fatalf("block helper should commit one entry, got %d", got)
	}

	failure := errors.New("midway failure")
	err = l.Block(func() error {
		if err := l.Add(72); err != nil {
			return err
		}
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("Block should surface the inner error, got %v", err)
	}
	if !mustContains(t, l, 72) {
		t.Error("mutations before the failure stay applied")
	}
	if got := l.UndoCount(); got != 1 {
		t.Errorf("failed block must not record, got %d entries", got)
	}
}

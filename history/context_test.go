package history

import "testing"

func TestPushPopLIFO(t *testing.T) {
	c := NewContext[int](10)
	for i := 1; i <= 3; i++ {
		c.Push(i)
	}

	if !c.CanUndo() || c.UndoCount() != 3 {
		t.Fatalf("UndoCount = %d, want 3", c.UndoCount())
	}
	for want := 3; want >= 1; want-- {
		got, ok := c.PopUndo()
		if !ok || got != want {
			t.Fatalf("PopUndo = (%d, %v), want %d", got, ok, want)
		}
	}
	if _, ok := c.PopUndo(); ok {
		t.Fatal("PopUndo on empty stack reported an entry")
	}
}

func TestPushEvictsOldest(t *testing.T) {
	c := NewContext[int](3)
	for i := 1; i <= 5; i++ {
		c.Push(i)
	}

	if c.UndoCount() != 3 {
		t.Fatalf("UndoCount = %d, want 3", c.UndoCount())
	}
	// 1 and 2 were evicted; 5, 4, 3 remain newest-first.
	for _, want := range []int{5, 4, 3} {
		got, _ := c.PopUndo()
		if got != want {
			t.Fatalf("PopUndo = %d, want %d", got, want)
		}
	}
}

func TestPushClearsRedo(t *testing.T) {
	c := NewContext[int](10)
	c.Push(1)
	c.Push(2)

	entry, _ := c.PopUndo()
	c.PushRedo(entry)
	if !c.CanRedo() {
		t.Fatal("redo stack should hold the undone entry")
	}

	c.Push(3)
	if c.CanRedo() {
		t.Fatal("a fresh push must clear the redo stack")
	}
}

func TestUndoRedoTransfersDoNotClear(t *testing.T) {
	c := NewContext[int](10)
	c.Push(1)
	c.Push(2)

	// Undo both.
	for i := 0; i < 2; i++ {
		entry, _ := c.PopUndo()
		c.PushRedo(entry)
	}
	if c.RedoCount() != 2 || c.UndoCount() != 0 {
		t.Fatalf("counts = (%d, %d)", c.UndoCount(), c.RedoCount())
	}

	// Redo one; the remaining redo entry survives.
	entry, _ := c.PopRedo()
	c.RestoreUndo(entry)
	if c.UndoCount() != 1 || c.RedoCount() != 1 {
		t.Fatalf("counts after redo = (%d, %d), want (1, 1)", c.UndoCount(), c.RedoCount())
	}
}

func TestZeroLevelsDisablesRecording(t *testing.T) {
	c := NewContext[int](0)
	c.Push(1)
	if c.CanUndo() {
		t.Fatal("zero-level context recorded an entry")
	}

	neg := NewContext[int](-5)
	if neg.Levels() != 0 {
		t.Fatalf("Levels = %d, want 0", neg.Levels())
	}
}

func TestSetLevelsShrinkDropsOldest(t *testing.T) {
	c := NewContext[int](10)
	for i := 1; i <= 5; i++ {
		c.Push(i)
	}

	c.SetLevels(2)
	if c.UndoCount() != 2 {
		t.Fatalf("UndoCount = %d, want 2", c.UndoCount())
	}
	got, _ := c.PopUndo()
	if got != 5 {
		t.Fatalf("newest entry = %d, want 5", got)
	}
}

func TestSetLevelsZeroReleases(t *testing.T) {
	c := NewContext[int](10)
	c.Push(1)
	entry, _ := c.PopUndo()
	c.PushRedo(entry)

	c.SetLevels(0)
	if c.CanUndo() || c.CanRedo() {
		t.Fatal("zeroing levels must release both stacks")
	}

	c.SetLevels(4)
	c.Push(7)
	if c.UndoCount() != 1 {
		t.Fatal("growing from zero must re-enable recording")
	}
}

func TestClearKeepsCapacity(t *testing.T) {
	c := NewContext[int](5)
	c.Push(1)
	c.Clear()
	if c.CanUndo() || c.Levels() != 5 {
		t.Fatalf("Clear changed capacity or kept entries")
	}
	c.Push(2)
	if c.UndoCount() != 1 {
		t.Fatal("recording after Clear failed")
	}
}

func TestDispose(t *testing.T) {
	c := NewContext[int](5)
	c.Push(1)
	c.Dispose()
	if c.Levels() != 0 || c.CanUndo() {
		t.Fatal("Dispose must zero capacity and release entries")
	}
	c.Push(2)
	if c.CanUndo() {
		t.Fatal("disposed context recorded an entry")
	}
}

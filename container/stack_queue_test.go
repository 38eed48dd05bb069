package container

import "testing"

func TestStackPushPopOrder(t *testing.T) {
	s := NewStack[string]()
	for _, item := range []string{"a", "b", "c"} {
		if err := s.Push(item); err != nil {
			t.Fatal(err)
		}
	}

	if top, ok, _ := s.Peek(); !ok || top != "c" {
		t.Fatalf("Peek = (%q, %v), want (c, true)", top, ok)
	}
	for _, want := range []string{"c", "b", "a"} {
		got, ok, err := s.Pop()
		if err != nil || !ok || got != want {
			t.Fatalf("Pop = (%q, %v, %v), want %q", got, ok, err, want)
		}
	}
	if _, ok, _ := s.Pop(); ok {
		t.Fatal("Pop on empty stack reported an item")
	}
}

func TestStackPopUndo(t *testing.T) {
	s := NewStack[int]()
	for _, v := range []int{1, 2, 3} {
		if err := s.Push(v); err != nil {
			t.Fatal(err)
		}
	}
	if _, _, err := s.Pop(); err != nil {
		t.Fatal(err)
	}

	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if top, _, _ := s.Peek(); top != 3 {
		t.Fatalf("after undo top = %d, want 3", top)
	}
	if err := s.Redo(); err != nil {
		t.Fatal(err)
	}
	if top, _, _ := s.Peek(); top != 2 {
		t.Fatalf("after redo top = %d, want 2", top)
	}
}

func TestStackEmptyPopRecordsNothing(t *testing.T) {
	s := NewStack[int]()
	if _, ok, err := s.Pop(); ok || err != nil {
		t.Fatalf("Pop = (_, %v, %v), want (false, nil)", ok, err)
	}
	if s.CanUndo() {
		t.Error("no-op pop must not record history")
	}
}

func TestQueueFIFOOrder(t *testing.T) {
	q := NewQueue[int]()
	for _, v := range []int{10, 20, 30} {
		if err := q.Enqueue(v); err != nil {
			t.Fatal(err)
		}
	}

	if front, ok, _ := q.Peek(); !ok || front != 10 {
		t.Fatalf("Peek = (%d, %v), want (10, true)", front, ok)
	}
	for _, want := range []int{10, 20, 30} {
		got, ok, err := q.Dequeue()
		if err != nil || !ok || got != want {
			t.Fatalf("Dequeue = (%d, %v, %v), want %d", got, ok, err, want)
		}
	}
	if _, ok, _ := q.Dequeue(); ok {
		t.Fatal("Dequeue on empty queue reported an item")
	}
}

func TestQueueDequeueUndoRestoresFront(t *testing.T) {
	q := NewQueue[int]()
	for _, v := range []int{10, 20, 30} {
		if err := q.Enqueue(v); err != nil {
			t.Fatal(err)
		}
	}
	got, _, err := q.Dequeue()
	if err != nil || got != 10 {
		t.Fatalf("Dequeue = (%d, %v)", got, err)
	}

	// The undone item returns to the front, not the back.
	if err := q.Undo(); err != nil {
		t.Fatal(err)
	}
	items, _ := q.Items()
	want := []int{10, 20, 30}
	if len(items) != len(want) {
		t.Fatalf("Items = %v, want %v", items, want)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("Items = %v, want %v", items, want)
		}
	}
}

func TestQueueClearUndo(t *testing.T) {
	q := NewQueue[int]()
	for _, v := range []int{1, 2} {
		if err := q.Enqueue(v); err != nil {
			t.Fatal(err)
		}
	}
	if err := q.Clear(); err != nil {
		t.Fatal(err)
	}
	if n, _ := q.Len(); n != 0 {
		t.Fatalf("Len after clear = %d", n)
	}
	if err := q.Undo(); err != nil {
		t.Fatal(err)
	}
	if n, _ := q.Len(); n != 2 {
		t.Fatalf("Len after undo = %d, want 2", n)
	}
	if front, _, _ := q.Peek(); front != 1 {
		t.Fatalf("front after undo = %d, want 1", front)
	}
}

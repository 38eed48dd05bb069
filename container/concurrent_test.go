package container

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/krellware/rewind/locking"
)

func TestConcurrentAdds(t *testing.T) {
	const (
		goroutines = 8
		perWorker  = 50
	)
	l := NewConcurrentList[int](WithHistoryLevels(goroutines * perWorker))

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if err := l.Add(base + i); err != nil {
					t.Errorf("Add failed: %v", err)
					return
				}
			}
		}(g * 1000)
	}
	wg.Wait()

	if n, _ := l.Len(); n != goroutines*perWorker {
		t.Fatalf("Len = %d, want %d", n, goroutines*perWorker)
	}
	if got := l.UndoCount(); got != goroutines*perWorker {
		t.Fatalf("UndoCount = %d, want %d", got, goroutines*perWorker)
	}

	// Every recorded entry must be individually reversible.
	for l.CanUndo() {
		if err := l.Undo(); err != nil {
			t.Fatalf("Undo failed: %v", err)
		}
	}
	if n, _ := l.Len(); n != 0 {
		t.Fatalf("Len after full unwind = %d, want 0", n)
	}
}

func TestConcurrentReadersSeeAtomicBatches(t *testing.T) {
	const batch = 10
	l := NewConcurrentList[int](WithHistoryLevels(0))
	done := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		items := make([]int, batch)
		for i := 0; i < 200; i++ {
			if err := l.AddRange(items); err != nil {
				t.Errorf("AddRange failed: %v", err)
				return
			}
			if err := l.Clear(); err != nil {
				t.Errorf("Clear failed: %v", err)
				return
			}
		}
		close(done)
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				n, err := l.Len()
				if err != nil {
					t.Errorf("Len failed: %v", err)
					return
				}
				// Range adds and clears are atomic; a reader never
				// observes a partially applied batch.
				if n%batch != 0 {
					t.Errorf("observed partial batch: Len = %d", n)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestLockTimeout(t *testing.T) {
	lock := locking.NewUpgradeable()
	l := NewConcurrentList[int](
		WithLock(lock),
		WithLockTimeout(20*time.Millisecond),
	)

	if err := lock.Lock(0); err != nil {
		t.Fatal(err)
	}

	if err := l.Add(1); !errors.Is(err, ErrTimeout) {
		t.Fatalf("Add under held lock = %v, want ErrTimeout", err)
	}
	if _, err := l.Len(); !errors.Is(err, ErrTimeout) {
		t.Fatalf("Len under held lock = %v, want ErrTimeout", err)
	}

	lock.Unlock()

	// The failed acquisitions must not have corrupted the lock.
	if err := l.Add(1); err != nil {
		t.Fatalf("Add after release failed: %v", err)
	}
	if n, _ := l.Len(); n != 1 {
		t.Fatalf("Len = %d, want 1", n)
	}
}

func TestConcurrentMutateAndTravel(t *testing.T) {
	l := NewConcurrentList[int]()
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			if err := l.Add(i); err != nil {
				t.Errorf("Add failed: %v", err)
				return
			}
		}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			// Racing an empty history is fine; Undo is a no-op then.
			if err := l.Undo(); err != nil {
				t.Errorf("Undo failed: %v", err)
				return
			}
		}
	}()
	wg.Wait()

	// Whatever interleaving happened, the survivors are exactly the
	// entries still on the undo stack.
	n, _ := l.Len()
	if n != l.UndoCount() {
		t.Fatalf("Len = %d, UndoCount = %d, want equal", n, l.UndoCount())
	}
}

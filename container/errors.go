package container

import (
	"errors"
	"fmt"

	"github.com/krellware/rewind/locking"
)

// Common errors for container operations.
var (
	// ErrTimeout is returned when the container lock cannot be acquired
	// within its bound. The operation had no effect.
	ErrTimeout = locking.ErrTimeout

	// ErrInvalidContext is returned for illegal history operations given
	// the current transaction state: undo or redo while an explicit block
	// transaction is open, opening a nested block transaction, or
	// committing a block that was never started.
	ErrInvalidContext = errors.New("invalid history operation for current transaction state")

	// ErrAlreadyCaptured is returned when capturing an item that is
	// already captured into a parent context.
	ErrAlreadyCaptured = errors.New("item is already captured into a parent context")

	// ErrNotCaptured is returned when releasing an item that is not
	// captured by the releasing container.
	ErrNotCaptured = errors.New("item is not captured by this container")

	// ErrIndexRange is returned for positional arguments outside current
	// bounds.
	ErrIndexRange = errors.New("index out of range")

	// ErrDisposed is returned for operations attempted after the
	// container was torn down.
	ErrDisposed = errors.New("container has been disposed")

	// ErrForeignBatch is returned when a container is asked to replay a
	// history batch it did not produce.
	ErrForeignBatch = errors.New("batch was not produced by this container")
)

// IndexError carries the offending index and the bounds it violated.
type IndexError struct {
	Index int
	Len   int
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range with length %d", e.Index, e.Len)
}

// Is allows errors.Is to match IndexError with ErrIndexRange.
func (e *IndexError) Is(target error) bool {
	return target == ErrIndexRange
}

func indexErr(index, length int) error {
	return &IndexError{Index: index, Len: length}
}

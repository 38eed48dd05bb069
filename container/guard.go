package container

// txGuard gives mutations two-phase semantics over ownership side-effects:
// capture and release are applied speculatively the moment they are
// requested, and every applied side-effect registers a revert step. Unless
// Success is called before the guard closes, the revert steps run in
// reverse order at scope exit, so a mutation that fails after transferring
// ownership restores the exact pre-operation capture state. A
// partially-captured container is never observable.
type txGuard[T any] struct {
	core    *Core[T]
	reverts []func()
	ok      bool
}

func (c *Core[T]) newGuard() *txGuard[T] {
	return &txGuard[T]{core: c}
}

// capture speculatively captures item into the guard's container, when
// sub-item capture is enabled and the item carries the Undoable capability.
func (g *txGuard[T]) capture(item T) error {
	if !g.core.capture {
		return nil
	}
	u, ok := asUndoable(any(item))
	if !ok {
		return nil
	}
	if err := u.CaptureInto(g.core); err != nil {
		return err
	}
	g.reverts = append(g.reverts, func() {
		_ = u.ReleaseFrom(g.core)
	})
	return nil
}

// release speculatively releases item from the guard's container.
func (g *txGuard[T]) release(item T) error {
	if !g.core.capture {
		return nil
	}
	u, ok := asUndoable(any(item))
	if !ok {
		return nil
	}
	if err := u.ReleaseFrom(g.core); err != nil {
		return err
	}
	g.reverts = append(g.reverts, func() {
		_ = u.CaptureInto(g.core)
	})
	return nil
}

// Success confirms the side-effects; the revert steps are suppressed.
func (g *txGuard[T]) Success() {
	g.ok = true
}

// close reverts all applied side-effects in reverse order unless Success
// was called.
func (g *txGuard[T]) close() {
	if g.ok {
		return
	}
	for i := len(g.reverts) - 1; i >= 0; i-- {
		g.reverts[i]()
	}
	g.reverts = nil
}

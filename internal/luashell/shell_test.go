package luashell

import (
	"strings"
	"testing"
)

func newShell(t *testing.T) *Shell {
	t.Helper()
	s := New(100)
	t.Cleanup(s.Close)
	return s
}

func mustDo(t *testing.T, s *Shell, src string) {
	t.Helper()
	if err := s.Do(src); err != nil {
		t.Fatalf("Do(%q) failed: %v", src, err)
	}
}

func TestAddCountGet(t *testing.T) {
	s := newShell(t)
	mustDo(t, s, `add(10) add(20) add(30)`)
	mustDo(t, s, `assert(count() == 3)`)
	mustDo(t, s, `assert(get(1) == 10)`)
	mustDo(t, s, `assert(get(3) == 30)`)
}

func TestUndoRedoFromLua(t *testing.T) {
	s := newShell(t)
	mustDo(t, s, `add("x") add("y")`)
	mustDo(t, s, `undo()`)
	mustDo(t, s, `assert(count() == 1)`)
	mustDo(t, s, `assert(canredo())`)
	mustDo(t, s, `redo()`)
	mustDo(t, s, `assert(get(2) == "y")`)
}

func TestInsertRemoveOneBased(t *testing.T) {
	s := newShell(t)
	mustDo(t, s, `add(1) add(3) insert(2, 2)`)
	mustDo(t, s, `assert(get(2) == 2)`)
	mustDo(t, s, `assert(remove(2) == true)`)
	mustDo(t, s, `assert(remove(99) == false)`)
	mustDo(t, s, `assert(removeat(1) == 1)`)
	mustDo(t, s, `assert(count() == 1)`)
}

func TestSetReturnsPrior(t *testing.T) {
	s := newShell(t)
	mustDo(t, s, `add("old")`)
	mustDo(t, s, `assert(set(1, "new") == "old")`)
	mustDo(t, s, `assert(get(1) == "new")`)
}

func TestItemsTable(t *testing.T) {
	s := newShell(t)
	mustDo(t, s, `add(5) add(6)`)
	mustDo(t, s, `local t = items() assert(#t == 2 and t[1] == 5 and t[2] == 6)`)
}

func TestBlockFromLua(t *testing.T) {
	s := newShell(t)
	mustDo(t, s, `begin() add(1) add(2) add(3) commit()`)
	mustDo(t, s, `undo()`)
	mustDo(t, s, `assert(count() == 0)`)

	mustDo(t, s, `begin() add(9) abandon()`)
	mustDo(t, s, `assert(count() == 1)`)
	mustDo(t, s, `assert(not canundo())`)
}

func TestLevels(t *testing.T) {
	s := newShell(t)
	mustDo(t, s, `assert(levels() == 100)`)
	mustDo(t, s, `assert(levels(3) == 3)`)
	mustDo(t, s, `for i = 1, 5 do add(i) end`)
	mustDo(t, s, `undo() undo() undo()`)
	mustDo(t, s, `assert(not canundo())`)
	mustDo(t, s, `assert(count() == 2)`)
}

func TestErrorsSurfaceAsLuaErrors(t *testing.T) {
	s := newShell(t)
	err := s.Do(`get(1)`)
	if err == nil {
		t.Fatal("out-of-range get should raise a Lua error")
	}
	if !strings.Contains(err.Error(), "get:") {
		t.Fatalf("error = %v, want get: prefix", err)
	}

	if err := s.Do(`commit()`); err == nil {
		t.Fatal("commit without begin should raise a Lua error")
	}
}

func TestSandboxExcludesOSAndIO(t *testing.T) {
	s := newShell(t)
	mustDo(t, s, `assert(os == nil)`)
	mustDo(t, s, `assert(io == nil)`)
	mustDo(t, s, `assert(string ~= nil and math ~= nil and table ~= nil)`)
}

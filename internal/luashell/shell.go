// Package luashell hosts an undoable list inside a sandboxed Lua state,
// exposing container operations as global Lua functions for the
// interactive REPL.
package luashell

import (
	"fmt"
	"reflect"

	lua "github.com/yuin/gopher-lua"

	"github.com/krellware/rewind/container"
)

// Shell binds a Lua state to one undoable list.
//
// gopher-lua's LState is not goroutine-safe; a Shell must be driven from a
// single goroutine. Lua indexes are 1-based and converted at the boundary.
type Shell struct {
	L    *lua.LState
	list *container.List[any]
}

// New creates a shell over a fresh list with the given history depth.
func New(historyLevels int) *Shell {
	list := container.NewListFunc[any](eqAny,
		container.WithHistoryLevels(historyLevels))

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)

	s := &Shell{L: L, list: list}
	s.register()
	return s
}

// openSafeLibraries opens the deterministic base libraries only; no os, io
// or debug access from shell scripts.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}

// Do executes one chunk of Lua source.
func (s *Shell) Do(src string) error {
	return s.L.DoString(src)
}

// Close releases the Lua state and the list.
func (s *Shell) Close() {
	s.L.Close()
	_ = s.list.Dispose()
}

// register installs the container API as Lua globals.
func (s *Shell) register() {
	funcs := map[string]lua.LGFunction{
		"add":      s.luaAdd,
		"insert":   s.luaInsert,
		"remove":   s.luaRemove,
		"removeat": s.luaRemoveAt,
		"set":      s.luaSet,
		"get":      s.luaGet,
		"items":    s.luaItems,
		"count":    s.luaCount,
		"clear":    s.luaClear,
		"undo":     s.luaUndo,
		"redo":     s.luaRedo,
		"canundo":  s.luaCanUndo,
		"canredo":  s.luaCanRedo,
		"levels":   s.luaLevels,
		"begin":    s.luaBegin,
		"commit":   s.luaCommit,
		"abandon":  s.luaAbandon,
	}
	for name, fn := range funcs {
		s.L.SetGlobal(name, s.L.NewFunction(fn))
	}
}

func (s *Shell) luaAdd(L *lua.LState) int {
	if err := s.list.Add(toGo(L.CheckAny(1))); err != nil {
		L.RaiseError("add: %v", err)
	}
	return 0
}

func (s *Shell) luaInsert(L *lua.LState) int {
	index := L.CheckInt(1) - 1
	if err := s.list.Insert(index, toGo(L.CheckAny(2))); err != nil {
		L.RaiseError("insert: %v", err)
	}
	return 0
}

func (s *Shell) luaRemove(L *lua.LState) int {
	removed, err := s.list.Remove(toGo(L.CheckAny(1)))
	if err != nil {
		L.RaiseError("remove: %v", err)
	}
	L.Push(lua.LBool(removed))
	return 1
}

func (s *Shell) luaRemoveAt(L *lua.LState) int {
	item, err := s.list.RemoveAt(L.CheckInt(1) - 1)
	if err != nil {
		L.RaiseError("removeat: %v", err)
	}
	L.Push(toLua(L, item))
	return 1
}

func (s *Shell) luaSet(L *lua.LState) int {
	prior, err := s.list.Set(L.CheckInt(1)-1, toGo(L.CheckAny(2)))
	if err != nil {
		L.RaiseError("set: %v", err)
	}
	L.Push(toLua(L, prior))
	return 1
}

func (s *Shell) luaGet(L *lua.LState) int {
	item, err := s.list.Get(L.CheckInt(1) - 1)
	if err != nil {
		L.RaiseError("get: %v", err)
	}
	L.Push(toLua(L, item))
	return 1
}

func (s *Shell) luaItems(L *lua.LState) int {
	items, err := s.list.Items()
	if err != nil {
		L.RaiseError("items: %v", err)
	}
	tbl := L.NewTable()
	for _, item := range items {
		tbl.Append(toLua(L, item))
	}
	L.Push(tbl)
	return 1
}

func (s *Shell) luaCount(L *lua.LState) int {
	n, err := s.list.Len()
	if err != nil {
		L.RaiseError("count: %v", err)
	}
	L.Push(lua.LNumber(n))
	return 1
}

func (s *Shell) luaClear(L *lua.LState) int {
	if err := s.list.Clear(); err != nil {
		L.RaiseError("clear: %v", err)
	}
	return 0
}

func (s *Shell) luaUndo(L *lua.LState) int {
	if err := s.list.Undo(); err != nil {
		L.RaiseError("undo: %v", err)
	}
	return 0
}

func (s *Shell) luaRedo(L *lua.LState) int {
	if err := s.list.Redo(); err != nil {
		L.RaiseError("redo: %v", err)
	}
	return 0
}

func (s *Shell) luaCanUndo(L *lua.LState) int {
	L.Push(lua.LBool(s.list.CanUndo()))
	return 1
}

func (s *Shell) luaCanRedo(L *lua.LState) int {
	L.Push(lua.LBool(s.list.CanRedo()))
	return 1
}

func (s *Shell) luaLevels(L *lua.LState) int {
	if L.GetTop() > 0 {
		if err := s.list.SetHistoryLevels(L.CheckInt(1)); err != nil {
			L.RaiseError("levels: %v", err)
		}
	}
	L.Push(lua.LNumber(s.list.HistoryLevels()))
	return 1
}

func (s *Shell) luaBegin(L *lua.LState) int {
	if err := s.list.StartBlock(); err != nil {
		L.RaiseError("begin: %v", err)
	}
	return 0
}

func (s *Shell) luaCommit(L *lua.LState) int {
	if err := s.list.CommitBlock(); err != nil {
		L.RaiseError("commit: %v", err)
	}
	return 0
}

func (s *Shell) luaAbandon(L *lua.LState) int {
	if err := s.list.AbandonBlock(); err != nil {
		L.RaiseError("abandon: %v", err)
	}
	return 0
}

// toGo converts a Lua value to its Go representation. Only scalar values
// round-trip; tables and functions are rendered as strings.
func toGo(lv lua.LValue) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LNilType:
		return nil
	default:
		return fmt.Sprintf("%v", lv)
	}
}

// toLua converts a Go value back to a Lua value.
func toLua(L *lua.LState, v any) lua.LValue {
	switch t := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(t)
	case int64:
		return lua.LNumber(t)
	case float64:
		return lua.LNumber(t)
	case string:
		return lua.LString(t)
	default:
		return lua.LString(fmt.Sprintf("%v", t))
	}
}

// eqAny compares shell values; distinct or uncomparable runtime types are
// never equal.
func eqAny(a, b any) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta != nil && !ta.Comparable() {
		return false
	}
	return a == b
}

// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package luabind

import (
	"github.com/btcsuite/lvldb/handle"
	lua "github.com/yuin/gopher-lua"
)

func (m *Module) iteratorMethods() map[string]lua.LGFunction {
	move := func(fn func(L *lua.LState, it handle.Handle) (bool, error)) lua.LGFunction {
		return func(L *lua.LState) int {
			it := checkHandle(L, 1, handle.KindIterator)
			ok, err := fn(L, it)
			L.Push(lua.LBool(!storageFailed(L, err) && ok))
			return 1
		}
	}
	return map[string]lua.LGFunction{
		"seekToFirst": move(func(_ *lua.LState, it handle.Handle) (bool, error) {
			return m.binding.SeekToFirst(it)
		}),
		"seekToLast": move(func(_ *lua.LState, it handle.Handle) (bool, error) {
			return m.binding.SeekToLast(it)
		}),
		"seek": move(func(L *lua.LState, it handle.Handle) (bool, error) {
			return m.binding.Seek(it, toSlice(L, 2))
		}),
		"next": move(func(_ *lua.LState, it handle.Handle) (bool, error) {
			return m.binding.Next(it)
		}),
		"prev": move(func(_ *lua.LState, it handle.Handle) (bool, error) {
			return m.binding.Prev(it)
		}),
		"valid": move(func(_ *lua.LState, it handle.Handle) (bool, error) {
			return m.binding.Valid(it)
		}),
		"key":     m.iterKey,
		"value":   m.iterValue,
		"release": m.iterRelease,
	}
}

// iterator:key() -> string
func (m *Module) iterKey(L *lua.LState) int {
	it := checkHandle(L, 1, handle.KindIterator)
	key, err := m.binding.Key(it)
	if err != nil {
		pushError(L, err)
		return 0
	}
	L.Push(fromSlice(key))
	return 1
}

// iterator:value() -> string
func (m *Module) iterValue(L *lua.LState) int {
	it := checkHandle(L, 1, handle.KindIterator)
	value, err := m.binding.Value(it)
	if err != nil {
		pushError(L, err)
		return 0
	}
	L.Push(fromSlice(value))
	return 1
}

// iterator:release()
func (m *Module) iterRelease(L *lua.LState) int {
	it := checkHandle(L, 1, handle.KindIterator)
	if err := m.binding.ReleaseIterator(it); err != nil {
		pushError(L, err)
	}
	return 0
}

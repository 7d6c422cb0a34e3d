// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package luabind

import (
	"github.com/btcsuite/lvldb/handle"
	lua "github.com/yuin/gopher-lua"
)

func (m *Module) batchMethods() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"put":     m.batchPut,
		"delete":  m.batchDelete,
		"clear":   m.batchClear,
		"count":   m.batchCount,
		"size":    m.batchSize,
		"release": m.batchRelease,
	}
}

func (m *Module) snapshotMethods() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"release": m.snapshotRelease,
	}
}

// batch:put(key, value)
func (m *Module) batchPut(L *lua.LState) int {
	b := checkHandle(L, 1, handle.KindBatch)
	key, value := toSlice(L, 2), toSlice(L, 3)
	if err := m.binding.BatchPut(b, key, value); err != nil {
		pushError(L, err)
	}
	return 0
}

// batch:delete(key)
func (m *Module) batchDelete(L *lua.LState) int {
	b := checkHandle(L, 1, handle.KindBatch)
	if err := m.binding.BatchDelete(b, toSlice(L, 2)); err != nil {
		pushError(L, err)
	}
	return 0
}

// batch:clear()
func (m *Module) batchClear(L *lua.LState) int {
	b := checkHandle(L, 1, handle.KindBatch)
	if err := m.binding.BatchClear(b); err != nil {
		pushError(L, err)
	}
	return 0
}

// batch:count() -> number
func (m *Module) batchCount(L *lua.LState) int {
	b := checkHandle(L, 1, handle.KindBatch)
	n, err := m.binding.BatchLen(b)
	if err != nil {
		pushError(L, err)
		return 0
	}
	L.Push(lua.LNumber(n))
	return 1
}

// batch:size() -> number
func (m *Module) batchSize(L *lua.LState) int {
	b := checkHandle(L, 1, handle.KindBatch)
	n, err := m.binding.BatchSize(b)
	if err != nil {
		pushError(L, err)
		return 0
	}
	L.Push(lua.LNumber(n))
	return 1
}

// batch:release()
func (m *Module) batchRelease(L *lua.LState) int {
	b := checkHandle(L, 1, handle.KindBatch)
	if err := m.binding.ReleaseBatch(b); err != nil {
		pushError(L, err)
	}
	return 0
}

// snapshot:release() -> true
func (m *Module) snapshotRelease(L *lua.LState) int {
	snap := checkHandle(L, 1, handle.KindSnapshot)
	db, err := m.binding.SnapshotDatabase(snap)
	if err == nil {
		err = m.binding.ReleaseSnapshot(db, snap)
	}
	if err != nil {
		pushError(L, err)
		return 0
	}
	L.Push(lua.LTrue)
	return 1
}

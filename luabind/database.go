// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package luabind

import (
	"github.com/btcsuite/lvldb/handle"
	"github.com/btcsuite/lvldb/lvldb"
	lua "github.com/yuin/gopher-lua"
)

func (m *Module) dbMethods() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"put":              m.dbPut,
		"get":              m.dbGet,
		"has":              m.dbHas,
		"delete":           m.dbDelete,
		"write":            m.dbWrite,
		"iterator":         m.dbIterator,
		"snapshot":         m.dbSnapshot,
		"releaseSnapshot":  m.dbReleaseSnapshot,
		"tostring":         m.dbToString,
		"close":            m.close,
		"id":               m.dbID,
		"debugFindOrStore": m.dbDebugFindOrStore,
	}
}

func pushResult(L *lua.LState, err error) int {
	L.Push(lua.LBool(!storageFailed(L, err)))
	return 1
}

// db:put(key, value, writeOptions?) -> bool
func (m *Module) dbPut(L *lua.LState) int {
	db := checkHandle(L, 1, handle.KindDatabase)
	key, value := toSlice(L, 2), toSlice(L, 3)
	return pushResult(L, m.binding.Put(db, key, value, writeOptions(L, 4)))
}

// db:get(key, readOptions?) -> value | false
func (m *Module) dbGet(L *lua.LState) int {
	db := checkHandle(L, 1, handle.KindDatabase)
	key := toSlice(L, 2)
	value, res, err := m.binding.Lookup(db, key, readOptions(L, 3))
	if storageFailed(L, err) || res != lvldb.LookupFound {
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(fromSlice(value))
	return 1
}

// db:has(key, readOptions?) -> bool
func (m *Module) dbHas(L *lua.LState) int {
	db := checkHandle(L, 1, handle.KindDatabase)
	key := toSlice(L, 2)
	has, err := m.binding.Has(db, key, readOptions(L, 3))
	L.Push(lua.LBool(!storageFailed(L, err) && has))
	return 1
}

// db:delete(key, writeOptions?) -> bool
func (m *Module) dbDelete(L *lua.LState) int {
	db := checkHandle(L, 1, handle.KindDatabase)
	key := toSlice(L, 2)
	return pushResult(L, m.binding.Delete(db, key, writeOptions(L, 3)))
}

// db:write(batch, writeOptions?) -> bool
func (m *Module) dbWrite(L *lua.LState) int {
	db := checkHandle(L, 1, handle.KindDatabase)
	batch := checkHandle(L, 2, handle.KindBatch)
	return pushResult(L, m.binding.Write(db, batch, writeOptions(L, 3)))
}

// db:iterator(readOptions?) -> iterator
func (m *Module) dbIterator(L *lua.LState) int {
	db := checkHandle(L, 1, handle.KindDatabase)
	it, err := m.binding.NewIterator(db, readOptions(L, 2))
	if err != nil {
		pushError(L, err)
		return 0
	}
	pushHandle(L, it)
	return 1
}

// db:snapshot() -> snapshot | false
func (m *Module) dbSnapshot(L *lua.LState) int {
	db := checkHandle(L, 1, handle.KindDatabase)
	snap, err := m.binding.GetSnapshot(db)
	if storageFailed(L, err) {
		L.Push(lua.LFalse)
		return 1
	}
	pushHandle(L, snap)
	return 1
}

// db:releaseSnapshot(snapshot) -> true
func (m *Module) dbReleaseSnapshot(L *lua.LState) int {
	db := checkHandle(L, 1, handle.KindDatabase)
	snap := checkHandle(L, 2, handle.KindSnapshot)
	if err := m.binding.ReleaseSnapshot(db, snap); err != nil {
		pushError(L, err)
		return 0
	}
	L.Push(lua.LTrue)
	return 1
}

// db:tostring() -> string, also the __tostring metamethod.
func (m *Module) dbToString(L *lua.LState) int {
	db := checkHandle(L, 1, handle.KindDatabase)
	out, err := m.binding.Dump(db)
	if err != nil {
		pushError(L, err)
		return 0
	}
	L.Push(lua.LString(out))
	return 1
}

// db:id() -> string
func (m *Module) dbID(L *lua.LState) int {
	db := checkHandle(L, 1, handle.KindDatabase)
	id, err := m.binding.ID(db)
	if err != nil {
		pushError(L, err)
		return 0
	}
	L.Push(lua.LString(id.String()))
	return 1
}

// db:debugFindOrStore(value, readOptions?) -> bool
//
// Diagnostic helper: scans newest-first for value and stores it under key
// "0" when it is missing.
func (m *Module) dbDebugFindOrStore(L *lua.LState) int {
	db := checkHandle(L, 1, handle.KindDatabase)
	value := toSlice(L, 2)
	found, err := m.binding.ScanStoreValue(db, value, readOptions(L, 3))
	L.Push(lua.LBool(!storageFailed(L, err) && found))
	return 1
}

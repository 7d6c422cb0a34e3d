// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package luabind

import (
	"fmt"

	"github.com/btcsuite/lvldb/handle"
	"github.com/btcsuite/lvldb/lvldb"
	lua "github.com/yuin/gopher-lua"
)

// Metatable names of the userdata types.
const (
	dbTypeName       = "leveldb.db"
	iteratorTypeName = "leveldb.iterator"
	snapshotTypeName = "leveldb.snapshot"
	batchTypeName    = "leveldb.batch"
)

var typeNames = map[handle.Kind]string{
	handle.KindDatabase: dbTypeName,
	handle.KindIterator: iteratorTypeName,
	handle.KindSnapshot: snapshotTypeName,
	handle.KindBatch:    batchTypeName,
}

// toSlice returns argument n as raw bytes.  Only strings are accepted;
// embedded zero bytes are preserved.
func toSlice(L *lua.LState, n int) []byte {
	v := L.Get(n)
	s, ok := v.(lua.LString)
	if !ok {
		L.ArgError(n, "string expected, got "+v.Type().String())
		return nil
	}
	return []byte(s)
}

// fromSlice converts b into a Lua string.
func fromSlice(b []byte) lua.LValue {
	return lua.LString(b)
}

// toBool returns argument n as a boolean.  nil and false are false, every
// other value is true.
func toBool(L *lua.LState, n int) bool {
	return lua.LVAsBool(L.Get(n))
}

// pushHandle pushes h as a userdata carrying the metatable of its kind.
func pushHandle(L *lua.LState, h handle.Handle) {
	ud := L.NewUserData()
	ud.Value = h
	L.SetMetatable(ud, L.GetTypeMetatable(typeNames[h.Kind()]))
	L.Push(ud)
}

// handleOf extracts the handle carried by v.
func handleOf(v lua.LValue) (handle.Handle, bool) {
	ud, ok := v.(*lua.LUserData)
	if !ok {
		return handle.Handle{}, false
	}
	h, ok := ud.Value.(handle.Handle)
	return h, ok
}

// checkHandle returns the handle carried by argument n.  Its kind is not
// checked here; the binding validates it against the registry on use.
func checkHandle(L *lua.LState, n int, kind handle.Kind) handle.Handle {
	v := L.Get(n)
	h, ok := handleOf(v)
	if !ok {
		L.ArgError(n, fmt.Sprintf("'%s' expected, got %s", kind,
			v.Type()))
	}
	return h
}

// pushError raises err in L.
func pushError(L *lua.LState, err error) {
	L.RaiseError("%s", err.Error())
}

// storageFailed reports whether err is a storage failure, which is returned
// to scripts as false.  Any other error is raised.
func storageFailed(L *lua.LState, err error) bool {
	if err == nil {
		return false
	}
	if lvldb.IsErrorCode(err, lvldb.ErrStorage) {
		log.Debugf("Returning false for storage failure: %v", err)
		return true
	}
	pushError(L, err)
	return true
}

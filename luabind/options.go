// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package luabind

import (
	"fmt"

	"github.com/btcsuite/lvldb/engine"
	"github.com/btcsuite/lvldb/handle"
	"github.com/btcsuite/lvldb/lvldb"
	lua "github.com/yuin/gopher-lua"
)

// Option table lookups.  Missing keys keep the default; a recognized key
// holding a value of the wrong type is an argument error.  Unrecognized keys
// are ignored.

func optBool(L *lua.LState, n int, tbl *lua.LTable, key string, def bool) bool {
	switch v := tbl.RawGetString(key).(type) {
	case *lua.LNilType:
		return def
	case lua.LBool:
		return bool(v)
	default:
		L.ArgError(n, fmt.Sprintf("option '%s' must be a boolean, got %s",
			key, v.Type()))
		return def
	}
}

func optInt(L *lua.LState, n int, tbl *lua.LTable, key string, def int) int {
	switch v := tbl.RawGetString(key).(type) {
	case *lua.LNilType:
		return def
	case lua.LNumber:
		return int(v)
	default:
		L.ArgError(n, fmt.Sprintf("option '%s' must be a number, got %s",
			key, v.Type()))
		return def
	}
}

func optString(L *lua.LState, n int, tbl *lua.LTable, key string, def string) string {
	switch v := tbl.RawGetString(key).(type) {
	case *lua.LNilType:
		return def
	case lua.LString:
		return string(v)
	default:
		L.ArgError(n, fmt.Sprintf("option '%s' must be a string, got %s",
			key, v.Type()))
		return def
	}
}

// readOptions builds read options from the optional table at argument n.
// The snapshot, when present, is validated by the binding on use.
func readOptions(L *lua.LState, n int) *lvldb.ReadOptions {
	tbl := L.OptTable(n, nil)
	if tbl == nil {
		return nil
	}
	ro := lvldb.DefaultReadOptions()
	ro.VerifyChecksums = optBool(L, n, tbl, "verifyChecksums", ro.VerifyChecksums)
	ro.FillCache = optBool(L, n, tbl, "fillCache", ro.FillCache)
	if v := tbl.RawGetString("snapshot"); v != lua.LNil {
		h, ok := handleOf(v)
		if !ok {
			L.ArgError(n, fmt.Sprintf("option 'snapshot' must be a %s, got %s",
				handle.KindSnapshot, v.Type()))
		}
		ro.Snapshot = h
	}
	return ro
}

// writeOptions builds write options from the optional table at argument n.
func writeOptions(L *lua.LState, n int) *lvldb.WriteOptions {
	tbl := L.OptTable(n, nil)
	if tbl == nil {
		return nil
	}
	wo := lvldb.DefaultWriteOptions()
	wo.Sync = optBool(L, n, tbl, "sync", wo.Sync)
	return wo
}

// openOptions builds the engine name and open options from the optional table
// at argument n, starting from the module configuration.
func (m *Module) openOptions(L *lua.LState, n int) (string, *engine.OpenOptions) {
	o := engine.DefaultOpenOptions()
	o.CreateIfMissing = m.cfg.Create
	o.CacheSize = m.cfg.Cache * 1024 * 1024
	o.MaxOpenFiles = m.cfg.Handles

	tbl := L.OptTable(n, nil)
	if tbl == nil {
		return m.cfg.Engine, o
	}
	dbType := optString(L, n, tbl, "engine", m.cfg.Engine)
	o.CreateIfMissing = optBool(L, n, tbl, "createIfMissing", o.CreateIfMissing)
	o.ErrorIfExists = optBool(L, n, tbl, "errorIfExists", o.ErrorIfExists)
	o.ParanoidChecks = optBool(L, n, tbl, "paranoidChecks", o.ParanoidChecks)
	o.WriteBufferSize = optInt(L, n, tbl, "writeBufferSize", o.WriteBufferSize)
	o.MaxOpenFiles = optInt(L, n, tbl, "maxOpenFiles", o.MaxOpenFiles)
	o.BlockSize = optInt(L, n, tbl, "blockSize", o.BlockSize)
	o.Compression = optBool(L, n, tbl, "compression", o.Compression)
	o.BloomFilterBits = optInt(L, n, tbl, "bloomFilterBits", o.BloomFilterBits)
	return dbType, o
}

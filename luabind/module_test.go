// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package luabind

import (
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/btcsuite/lvldb/engine/leveldb"
	"github.com/btcsuite/lvldb/engine/memdb"
	"github.com/btcsuite/lvldb/internal/version"
	"github.com/btcsuite/lvldb/lvldb"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
)

// newTestState returns a Lua state with the module preloaded and a memdb
// database bound to the global "db".
func newTestState(t *testing.T, cfg *lvldb.Config) (*lua.LState, *lvldb.Binding) {
	t.Helper()

	binding := lvldb.New(cfg)
	mod := NewModule(binding, &Config{Engine: "memdb", Create: true})
	L := lua.NewState()
	mod.Preload(L)

	db := binding.Attach(memdb.New(), "test")
	mod.PushDatabase(L, db)
	L.SetGlobal("db", L.Get(-1))
	L.Pop(1)
	require.NoError(t, L.DoString(`leveldb = require("leveldb")`))

	t.Cleanup(func() {
		mod.Close()
		for _, store := range binding.Close() {
			store.Close()
		}
		L.Close()
	})
	return L, binding
}

func TestDataOperations(t *testing.T) {
	L, _ := newTestState(t, nil)

	err := L.DoString(`
		assert(db:put("key", "value") == true)
		assert(db:get("key") == "value")
		assert(db:has("key") == true)

		assert(db:put("", "empty key"))
		assert(db:get("") == "empty key")
		assert(db:put("zeros", "a\0b\0"))
		assert(#db:get("zeros") == 4)

		assert(db:get("missing") == false)
		assert(db:has("missing") == false)

		assert(db:delete("key") == true)
		assert(db:get("key") == false)
		assert(db:delete("never") == true)

		assert(db:put("k", "v", { sync = true }))
		assert(db:get("k", { fillCache = false, verifyChecksums = true }) == "v")
	`)
	require.NoError(t, err)
}

func TestToString(t *testing.T) {
	L, _ := newTestState(t, nil)

	require.NoError(t, L.DoString(`empty = db:tostring()`))
	require.Equal(t, "DB output:\nDatabase is empty.\n",
		L.GetGlobal("empty").String())

	require.NoError(t, L.DoString(`
		db:put("b", "2")
		db:put("a", "1")
		full = tostring(db)
	`))
	require.Equal(t, "DB output:\na -> 1\nb -> 2\n",
		L.GetGlobal("full").String())
}

func TestBatch(t *testing.T) {
	L, _ := newTestState(t, nil)

	err := L.DoString(`
		db:put("stale", "x")
		local b = leveldb.batch()
		b:put("k1", "v1")
		b:put("k2", "v2")
		b:delete("k1")
		b:delete("stale")
		assert(b:count() == 4)
		assert(b:size() == 15)
		assert(db:write(b) == true)

		assert(db:get("k1") == false)
		assert(db:get("k2") == "v2")
		assert(db:get("stale") == false)

		-- The batch can be appended to and written again.
		b:put("k3", "v3")
		assert(db:write(b, { sync = false }))
		assert(db:get("k3") == "v3")

		b:clear()
		assert(b:count() == 0)
		assert(b:size() == 0)
		assert(string.find(tostring(b), "^leveldb.batch: batch#"))
		b:release()
	`)
	require.NoError(t, err)
}

func TestIterator(t *testing.T) {
	L, _ := newTestState(t, nil)

	err := L.DoString(`
		for _, k in ipairs({"c", "a", "b"}) do db:put(k, "v" .. k) end

		local it = db:iterator()
		assert(it:valid() == false)

		local keys = {}
		it:seekToFirst()
		while it:valid() do
			assert(it:value() == "v" .. it:key())
			table.insert(keys, it:key())
			it:next()
		end
		assert(table.concat(keys) == "abc")

		keys = {}
		it:seekToLast()
		while it:valid() do
			table.insert(keys, it:key())
			it:prev()
		end
		assert(table.concat(keys) == "cba")

		assert(it:seek("bb") == true)
		assert(it:key() == "c")
		assert(it:seek("d") == false)
		assert(string.find(tostring(it), "^leveldb.iterator: iterator#"))
		it:release()
		result = true
	`)
	require.NoError(t, err)
	require.Equal(t, lua.LTrue, L.GetGlobal("result"))
}

func TestSnapshot(t *testing.T) {
	L, binding := newTestState(t, nil)

	err := L.DoString(`
		db:put("key", "before")
		local snap = db:snapshot()
		db:put("key", "after")
		db:put("new", "x")

		local ro = { snapshot = snap }
		assert(db:get("key", ro) == "before")
		assert(db:has("new", ro) == false)

		local it = db:iterator(ro)
		it:seekToFirst()
		assert(it:key() == "key")
		assert(it:next() == false)
		it:release()

		assert(db:get("key") == "after")
		assert(db:releaseSnapshot(snap) == true)

		local snap2 = db:snapshot()
		assert(snap2:release() == true)
	`)
	require.NoError(t, err)
	require.Equal(t, 1, binding.Outstanding())
}

func TestScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{
			name:   "iterator as database",
			script: `local it = db:iterator(); db.put(it, "k", "v")`,
			want:   "'database' expected, got iterator handle",
		},
		{
			name:   "batch as database",
			script: `local b = leveldb.batch(); db.get(b, "k")`,
			want:   "'database' expected, got batch handle",
		},
		{
			name:   "plain table as database",
			script: `db.get({}, "k")`,
			want:   "'database' expected, got table",
		},
		{
			name:   "number key",
			script: `db:put(1, "v")`,
			want:   "string expected, got number",
		},
		{
			name:   "bad option type",
			script: `db:put("k", "v", { sync = "yes" })`,
			want:   "option 'sync' must be a boolean, got string",
		},
		{
			name:   "iterator as snapshot",
			script: `db:get("k", { snapshot = db:iterator() })`,
			want:   "'snapshot' expected, got iterator handle",
		},
		{
			name:   "released iterator",
			script: `local it = db:iterator(); it:release(); it:seekToFirst()`,
			want:   "has been released",
		},
		{
			name:   "double snapshot release",
			script: `local s = db:snapshot(); s:release(); s:release()`,
			want:   "resource error",
		},
		{
			name:   "key before seek",
			script: `db:iterator():key()`,
			want:   "key called on unpositioned iterator",
		},
		{
			name:   "next past end",
			script: `local it = db:iterator(); it:seekToFirst(); it:next()`,
			want:   "next called on invalid iterator",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			L, _ := newTestState(t, nil)
			err := L.DoString(test.script)
			require.Error(t, err)
			require.Contains(t, err.Error(), test.want)
		})
	}
}

func TestStrictClose(t *testing.T) {
	L, _ := newTestState(t, &lvldb.Config{StrictRelease: true})

	err := L.DoString(`
		local it = db:iterator()
		local ok, msg = pcall(leveldb.close, db)
		assert(not ok)
		assert(string.find(msg, "outstanding handles"))
		it:release()
		assert(db:close() == true)
	`)
	require.NoError(t, err)
}

func TestOpenAndRepair(t *testing.T) {
	L, _ := newTestState(t, nil)
	path := filepath.Join(t.TempDir(), "lua.db")
	L.SetGlobal("path", lua.LString(path))

	err := L.DoString(`
		local names = table.concat(leveldb.engines(), ",")
		assert(string.find(names, "leveldb"))
		assert(string.find(names, "memdb"))
		assert(leveldb.version ~= nil)

		local d = leveldb.open(path, {
			engine = "leveldb",
			createIfMissing = true,
			bloomFilterBits = 10,
			compression = false,
			unknownOption = "ignored",
		})
		assert(d:put("persisted", "yes"))
		assert(#d:id() == 36)
		assert(d:debugFindOrStore("yes") == true)
		assert(d:debugFindOrStore("no") == false)
		assert(d:get("0") == "no")
		assert(leveldb.close(d) == true)

		assert(leveldb.repair(path, "leveldb") == true)
		assert(leveldb.repair(path, "memdb") == false)

		d = leveldb.open(path, { engine = "leveldb", createIfMissing = false })
		assert(d:get("persisted") == "yes")
		d:close()

		local ok = pcall(leveldb.open, path, { engine = "leveldb", errorIfExists = true })
		assert(not ok)
	`)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(version.String(), "0."))
}

func TestModuleCloseClosesOpened(t *testing.T) {
	binding := lvldb.New(nil)
	mod := NewModule(binding, &Config{Engine: "memdb", Create: true})
	L := lua.NewState()
	defer L.Close()
	mod.Preload(L)

	require.NoError(t, L.DoString(`
		local leveldb = require("leveldb")
		leaked = leveldb.open("scratch")
		leaked:put("k", "v")
	`))
	require.Equal(t, 1, binding.Outstanding())

	mod.Close()
	require.Zero(t, binding.Outstanding())
	require.Error(t, L.DoString(`leaked:get("k")`))
}

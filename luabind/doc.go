// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package luabind exposes lvldb to Lua scripts run by gopher-lua.

Register the module in a state and load it with require:

	L := lua.NewState()
	mod := luabind.NewModule(lvldb.New(nil), nil)
	mod.Preload(L)
	defer mod.Close()

	L.DoString(`
		local leveldb = require("leveldb")
		local db = leveldb.open("test.db", { engine = "memdb" })
		db:put("key", "value")
		print(db:get("key"))
		leveldb.close(db)
	`)

Databases, iterators, snapshots and batches are userdata wrapping handles.
Passing the wrong kind of handle, a released handle or a non-string key
raises a Lua error.  Storage failures are logged and reported by returning
false.  db:get returns false both for missing keys and for failed reads.
*/
package luabind

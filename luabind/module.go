// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package luabind

import (
	"path/filepath"
	"sync"

	"github.com/btcsuite/lvldb/engine"
	"github.com/btcsuite/lvldb/handle"
	"github.com/btcsuite/lvldb/internal/version"
	"github.com/btcsuite/lvldb/lvldb"
	lua "github.com/yuin/gopher-lua"
)

// ModuleName is the name scripts pass to require.
const ModuleName = "leveldb"

// Config holds the defaults used by leveldb.open.
type Config struct {
	// Engine is the storage engine used when the open options do not
	// name one.
	Engine string

	// DataDir is the directory relative database paths are resolved
	// against.  Empty means the working directory.
	DataDir string

	// Create allows leveldb.open to create missing databases.
	Create bool

	// Cache is the block cache size in MiB and Handles the maximum number
	// of open files.  Zero selects the engine default.
	Cache   int
	Handles int
}

// DefaultConfig returns the configuration used when NewModule is passed nil.
func DefaultConfig() *Config {
	return &Config{
		Engine: "leveldb",
		Create: true,
	}
}

// Module is the "leveldb" Lua module.  It exposes the handles of a
// lvldb.Binding as userdata and closes the stores opened from scripts.
type Module struct {
	cfg     Config
	binding *lvldb.Binding

	mtx    sync.Mutex
	opened map[handle.Handle]engine.Store
}

// NewModule returns a module backed by binding.
func NewModule(binding *lvldb.Binding, cfg *Config) *Module {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Module{
		cfg:     *cfg,
		binding: binding,
		opened:  make(map[handle.Handle]engine.Store),
	}
}

// Preload registers the userdata types in L and makes the module available
// to require.
func (m *Module) Preload(L *lua.LState) {
	m.registerTypes(L)
	L.PreloadModule(ModuleName, m.loader)
}

// PushDatabase pushes db onto the stack of L as a database userdata.  It is
// used by hosts that open the store themselves.
func (m *Module) PushDatabase(L *lua.LState, db handle.Handle) {
	pushHandle(L, db)
}

func (m *Module) registerTypes(L *lua.LState) {
	types := []struct {
		name    string
		methods map[string]lua.LGFunction
		str     lua.LGFunction
	}{
		{dbTypeName, m.dbMethods(), m.dbToString},
		{iteratorTypeName, m.iteratorMethods(), handleToString},
		{snapshotTypeName, m.snapshotMethods(), handleToString},
		{batchTypeName, m.batchMethods(), handleToString},
	}
	for _, t := range types {
		mt := L.NewTypeMetatable(t.name)
		L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), t.methods))
		L.SetField(mt, "__tostring", L.NewFunction(t.str))
	}
}

func (m *Module) loader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"open":    m.open,
		"close":   m.close,
		"batch":   m.newBatch,
		"repair":  m.repair,
		"engines": engines,
	})
	L.SetField(mod, "version", lua.LString(version.String()))
	L.Push(mod)
	return 1
}

func (m *Module) resolve(path string) string {
	if m.cfg.DataDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.cfg.DataDir, path)
}

// open implements leveldb.open(path, options?) -> db.
func (m *Module) open(L *lua.LState) int {
	path := m.resolve(L.CheckString(1))
	dbType, opts := m.openOptions(L, 2)

	store, err := engine.Open(dbType, path, opts)
	if err != nil {
		L.RaiseError("unable to open %s database %q: %v", dbType, path, err)
		return 0
	}
	db := m.binding.Attach(store, path)

	m.mtx.Lock()
	m.opened[db] = store
	m.mtx.Unlock()

	log.Infof("Opened %s database %q", dbType, path)
	pushHandle(L, db)
	return 1
}

// close implements leveldb.close(db) and db:close().
func (m *Module) close(L *lua.LState) int {
	db := checkHandle(L, 1, handle.KindDatabase)
	if err := m.closeDatabase(db); err != nil {
		if storageFailed(L, err) {
			L.Push(lua.LFalse)
			return 1
		}
	}
	L.Push(lua.LTrue)
	return 1
}

// closeDatabase detaches db and closes its store when it was opened by the
// module.  Close failures are reported as storage errors.
func (m *Module) closeDatabase(db handle.Handle) error {
	store, err := m.binding.Detach(db)
	if err != nil {
		return err
	}

	m.mtx.Lock()
	_, owned := m.opened[db]
	delete(m.opened, db)
	m.mtx.Unlock()

	if !owned {
		return nil
	}
	if err := store.Close(); err != nil {
		log.Errorf("Error closing database: %v", err)
		return lvldb.Error{
			ErrorCode:   lvldb.ErrStorage,
			Description: "unable to close database",
			Err:         err,
		}
	}
	return nil
}

// Close closes every database opened through leveldb.open that scripts did
// not close.
func (m *Module) Close() {
	m.mtx.Lock()
	dbs := make([]handle.Handle, 0, len(m.opened))
	for db := range m.opened {
		dbs = append(dbs, db)
	}
	m.mtx.Unlock()

	for _, db := range dbs {
		if err := m.closeDatabase(db); err != nil {
			log.Errorf("Unable to close %s: %v", db, err)
		}
	}
}

// newBatch implements leveldb.batch() -> batch.
func (m *Module) newBatch(L *lua.LState) int {
	pushHandle(L, m.binding.NewBatch())
	return 1
}

// repair implements leveldb.repair(path, engine?) -> bool.
func (m *Module) repair(L *lua.LState) int {
	path := m.resolve(L.CheckString(1))
	dbType := L.OptString(2, m.cfg.Engine)
	if err := engine.Repair(dbType, path); err != nil {
		log.Errorf("Error repairing database %q: %v", path, err)
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LTrue)
	return 1
}

// engines implements leveldb.engines() -> {names}.
func engines(L *lua.LState) int {
	tbl := L.NewTable()
	for _, name := range engine.SupportedDrivers() {
		tbl.Append(lua.LString(name))
	}
	L.Push(tbl)
	return 1
}

func handleToString(L *lua.LState) int {
	h, _ := handleOf(L.Get(1))
	L.Push(lua.LString(typeNames[h.Kind()] + ": " + h.String()))
	return 1
}

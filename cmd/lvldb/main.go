// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/btcsuite/btclog"
	"github.com/btcsuite/lvldb/engine"
	_ "github.com/btcsuite/lvldb/engine/leveldb"
	_ "github.com/btcsuite/lvldb/engine/memdb"
	_ "github.com/btcsuite/lvldb/engine/pebbledb"
	"github.com/btcsuite/lvldb/internal/limits"
	lvlog "github.com/btcsuite/lvldb/internal/log"
	"github.com/btcsuite/lvldb/internal/version"
	"github.com/btcsuite/lvldb/luabind"
	"github.com/btcsuite/lvldb/lvldb"
	lua "github.com/yuin/gopher-lua"
)

var log btclog.Logger = lvlog.MainLog

// session is a Lua state with the leveldb module loaded.
type session struct {
	L       *lua.LState
	binding *lvldb.Binding
	module  *luabind.Module
	opened  engine.Store
}

func newSession(cfg *config) *session {
	binding := lvldb.New(&lvldb.Config{StrictRelease: cfg.StrictRelease})
	module := luabind.NewModule(binding, &luabind.Config{
		Engine:  cfg.DbType,
		DataDir: cfg.DataDir,
		Create:  !cfg.NoCreate,
		Cache:   cfg.Cache,
		Handles: cfg.Handles,
	})
	L := lua.NewState()
	module.Preload(L)
	return &session{L: L, binding: binding, module: module}
}

// openGlobal opens the database at path and binds it to the global "db".
func (s *session) openGlobal(cfg *config, path string) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.DataDir, path)
	}
	opts := engine.DefaultOpenOptions()
	opts.CreateIfMissing = !cfg.NoCreate
	opts.CacheSize = cfg.Cache * 1024 * 1024
	opts.MaxOpenFiles = cfg.Handles

	log.Infof("Loading %s database from '%s'", cfg.DbType, path)
	store, err := engine.Open(cfg.DbType, path, opts)
	if err != nil {
		return err
	}
	s.opened = store

	db := s.binding.Attach(store, path)
	s.module.PushDatabase(s.L, db)
	s.L.SetGlobal("db", s.L.Get(-1))
	s.L.Pop(1)
	return nil
}

// close releases everything the scripts left open and closes the stores.
func (s *session) close() {
	s.module.Close()
	for _, store := range s.binding.Close() {
		if err := store.Close(); err != nil {
			log.Errorf("Unable to close database: %v", err)
		}
	}
	if s.opened != nil {
		if err := s.opened.Close(); err != nil && !errors.Is(err, engine.ErrClosed) {
			log.Errorf("Unable to close database: %v", err)
		}
	}
	s.L.Close()
}

// realMain is the real main function for the utility.  It is necessary to work
// around the fact that deferred functions do not run when os.Exit() is called.
func realMain() error {
	cfg, scripts, err := loadConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, errShowSubsystems) {
			return nil
		}
		return err
	}
	if cfg.ShowVersion {
		appName := filepath.Base(os.Args[0])
		appName = strings.TrimSuffix(appName, filepath.Ext(appName))
		fmt.Println(appName, "version", version.String())
		return nil
	}

	// Setup logging.
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to create data directory: %v\n", err)
		return err
	}
	if err := lvlog.InitLogRotator(filepath.Join(cfg.LogDir, defaultLogFilename)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	defer lvlog.LogRotator.Close()

	s := newSession(cfg)
	defer s.close()

	if err := s.L.DoString(`leveldb = require("leveldb")`); err != nil {
		log.Errorf("Unable to load the leveldb module: %v", err)
		return err
	}
	if cfg.Open != "" {
		if err := s.openGlobal(cfg, cfg.Open); err != nil {
			log.Errorf("Failed to open database: %v", err)
			return err
		}
	}

	for _, chunk := range cfg.Exec {
		if err := s.L.DoString(chunk); err != nil {
			log.Errorf("%v", err)
			return err
		}
	}
	for _, script := range scripts {
		log.Debugf("Running %s", script)
		if err := s.L.DoFile(script); err != nil {
			log.Errorf("%v", err)
			return err
		}
	}
	if len(cfg.Exec) > 0 || len(scripts) > 0 {
		return nil
	}

	histPath := filepath.Join(cfg.DataDir, defaultHistoryFile)
	return newConsole(s.L, os.Stdout, histPath).Interactive()
}

func main() {
	// Use all processor cores and up some limits.
	runtime.GOMAXPROCS(runtime.NumCPU())
	if err := limits.SetLimits(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to set limits: %v\n", err)
		os.Exit(1)
	}

	// Work around defer not working after os.Exit()
	if err := realMain(); err != nil {
		os.Exit(1)
	}
}

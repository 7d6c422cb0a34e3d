// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "script.lua")
	require.NoError(t, os.WriteFile(script, []byte("return 1"), 0600))

	confFile := filepath.Join(dir, "lvldb.conf")
	conf := "[Application Options]\ndbtype=memdb\ncache=16\nstrictrelease=1\n"
	require.NoError(t, os.WriteFile(confFile, []byte(conf), 0600))

	base := []string{"-b", dir, "--logdir", dir}

	t.Run("defaults", func(t *testing.T) {
		cfg, scripts, err := loadConfig(base)
		require.NoError(t, err)
		require.Equal(t, defaultDbType, cfg.DbType)
		require.Equal(t, dir, cfg.DataDir)
		require.False(t, cfg.NoCreate)
		require.Empty(t, scripts)
	})

	t.Run("config file", func(t *testing.T) {
		cfg, _, err := loadConfig(append(base, "-C", confFile))
		require.NoError(t, err)
		require.Equal(t, "memdb", cfg.DbType)
		require.Equal(t, 16, cfg.Cache)
		require.True(t, cfg.StrictRelease)
	})

	t.Run("command line wins", func(t *testing.T) {
		args := append(base, "-C", confFile, "--dbtype=pebbledb",
			"-e", "x = 1", "-e", "y = 2", script)
		cfg, scripts, err := loadConfig(args)
		require.NoError(t, err)
		require.Equal(t, "pebbledb", cfg.DbType)
		require.Equal(t, []string{"x = 1", "y = 2"}, cfg.Exec)
		require.Equal(t, []string{script}, scripts)
	})

	t.Run("version", func(t *testing.T) {
		cfg, _, err := loadConfig([]string{"-V"})
		require.NoError(t, err)
		require.True(t, cfg.ShowVersion)
	})

	tests := []struct {
		name string
		args []string
	}{
		{"unknown dbtype", []string{"--dbtype=bolt"}},
		{"missing config file", []string{"-C", filepath.Join(dir, "nope.conf")}},
		{"missing script", []string{filepath.Join(dir, "nope.lua")}},
		{"bad debuglevel", []string{"-d", "loud"}},
		{"negative cache", []string{"--cache=-1"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			args := append(append([]string{}, base...), test.args...)
			_, _, err := loadConfig(args)
			require.Error(t, err)
		})
	}
}

func TestCleanAndExpandPath(t *testing.T) {
	t.Setenv("LVLDB_TEST_DIR", "/tmp/lvldb")
	require.Equal(t, "/tmp/lvldb/data", cleanAndExpandPath("$LVLDB_TEST_DIR/./data"))
	require.Equal(t, filepath.Join(filepath.Dir(lvldbHomeDir), "x"),
		cleanAndExpandPath("~/x"))
}

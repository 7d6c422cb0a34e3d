// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConsoleEvaluate(t *testing.T) {
	s := newSession(&config{DbType: "memdb", DataDir: t.TempDir()})
	defer s.close()
	require.NoError(t, s.L.DoString(`leveldb = require("leveldb")`))

	var out bytes.Buffer
	c := newConsole(s.L, &out, "")

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "1 + 1", want: "2\n"},
		{input: "x = 5", want: ""},
		{input: "x, x * 2", want: "5\t10\n"},
		{input: "leveldb.batch()", want: "leveldb.batch: batch#0.1\n"},
		{input: "error('boom')", wantErr: true},
	}
	for _, test := range tests {
		out.Reset()
		done, err := c.evaluate(test.input)
		require.True(t, done, test.input)
		if test.wantErr {
			require.Error(t, err, test.input)
			require.Contains(t, err.Error(), "boom")
			continue
		}
		require.NoError(t, err, test.input)
		require.Equal(t, test.want, out.String(), test.input)
	}
	require.Zero(t, s.L.GetTop())
}

func TestSessionOpenGlobal(t *testing.T) {
	cfg := &config{DbType: "memdb", DataDir: t.TempDir()}
	s := newSession(cfg)
	defer s.close()

	require.NoError(t, s.openGlobal(cfg, "scratch"))
	require.NoError(t, s.L.DoString(`
		assert(db:put("k", "v"))
		assert(db:get("k") == "v")
	`))
}

// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package log

import (
	"path/filepath"
	"testing"

	"github.com/btcsuite/btclog"
	"github.com/stretchr/testify/require"
)

func TestParseAndSetDebugLevels(t *testing.T) {
	defer SetLogLevels("info")

	tests := []struct {
		name    string
		level   string
		wantErr bool
		check   map[string]btclog.Level
	}{
		{"global", "debug", false, map[string]btclog.Level{
			"LVDB": btclog.LevelDebug, "MAIN": btclog.LevelDebug,
		}},
		{"per subsystem", "LVDB=trace,ENGN=warn", false, map[string]btclog.Level{
			"LVDB": btclog.LevelTrace, "ENGN": btclog.LevelWarn,
		}},
		{"bad level", "loud", true, nil},
		{"bad pair", "LVDB=debug,trace", true, nil},
		{"bad subsystem", "NOPE=debug", true, nil},
		{"bad subsystem level", "LUAB=loud", true, nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := ParseAndSetDebugLevels(test.level)
			if test.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			for subsys, want := range test.check {
				require.Equal(t, want, SubsystemLoggers[subsys].Level(), subsys)
			}
		})
	}
}

func TestSupportedSubsystems(t *testing.T) {
	require.Equal(t, []string{"ENGN", "LUAB", "LVDB", "MAIN"}, SupportedSubsystems())
}

func TestInitLogRotator(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "lvldb.log")
	require.NoError(t, InitLogRotator(logFile))
	defer func() {
		LogRotator.Close()
		LogRotator = nil
	}()

	MainLog.Infof("rotator test")
	require.FileExists(t, logFile)
}

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
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/lvldb/engine"
	lvlog "github.com/btcsuite/lvldb/internal/log"
	flags "github.com/jessevdk/go-flags"
)

const (
	defaultConfigFilename = "lvldb.conf"
	defaultDataDirname    = "data"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "lvldb.log"
	defaultHistoryFile    = "history"
	defaultLogLevel       = "info"
	defaultDbType         = "leveldb"
)

var (
	lvldbHomeDir      = btcutil.AppDataDir("lvldb", false)
	defaultConfigFile = filepath.Join(lvldbHomeDir, defaultConfigFilename)
	defaultDataDir    = filepath.Join(lvldbHomeDir, defaultDataDirname)
	defaultLogDir     = filepath.Join(lvldbHomeDir, defaultLogDirname)
)

// config defines the configuration options for lvldb.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ConfigFile    string   `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir       string   `short:"b" long:"datadir" description:"Directory relative database paths are resolved against"`
	DbType        string   `long:"dbtype" description:"Storage engine used when a script does not name one"`
	NoCreate      bool     `long:"nocreate" description:"Do not create missing databases unless a script asks for it"`
	Cache         int      `long:"cache" description:"Block cache size in MiB -- 0 selects the engine default"`
	Handles       int      `long:"handles" description:"Maximum number of open table files -- 0 selects the engine default"`
	LogDir        string   `long:"logdir" description:"Directory to log output"`
	DebugLevel    string   `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	StrictRelease bool     `long:"strictrelease" description:"Fail to close a database while iterators or snapshots created from it are outstanding"`
	Open          string   `short:"o" long:"open" description:"Open this database before running scripts and bind it to the global 'db'"`
	Exec          []string `short:"e" long:"exec" description:"Lua chunk to run before the script files -- may be repeated"`
	ShowVersion   bool     `short:"V" long:"version" description:"Display version information and exit"`
}

// errShowSubsystems is returned by loadConfig after the supported subsystems
// have been listed.
var errShowSubsystems = errors.New("subsystems listed")

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(lvldbHomeDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}
	return filepath.Clean(os.ExpandEnv(path))
}

// validDbType returns whether or not dbType is a supported database type.
func validDbType(dbType string) bool {
	for _, knownType := range engine.SupportedDrivers() {
		if dbType == knownType {
			return true
		}
	}
	return false
}

// loadConfig initializes and parses the config using a config file and the
// passed command line arguments:
//
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//
// The remaining arguments are the script files to run.
func loadConfig(args []string) (*config, []string, error) {
	cfg := config{
		ConfigFile: defaultConfigFile,
		DataDir:    defaultDataDir,
		DbType:     defaultDbType,
		LogDir:     defaultLogDir,
		DebugLevel: defaultLogLevel,
	}

	// Pre-parse the command line options to see if an alternative config
	// file or the version flag was specified.
	preCfg := cfg
	preParser := flags.NewParser(&preCfg, flags.Default)
	if _, err := preParser.ParseArgs(args); err != nil {
		return nil, nil, err
	}
	if preCfg.ShowVersion {
		return &preCfg, nil, nil
	}

	// Load additional config from file.  A missing file is only an error
	// when it was asked for explicitly.
	parser := flags.NewParser(&cfg, flags.Default)
	err := flags.NewIniParser(parser).ParseFile(preCfg.ConfigFile)
	if err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) || preCfg.ConfigFile != defaultConfigFile {
			fmt.Fprintln(os.Stderr, err)
			return nil, nil, err
		}
	}

	// Parse command line options again to ensure they take precedence.
	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		return nil, nil, err
	}

	cfg.DataDir = cleanAndExpandPath(cfg.DataDir)
	cfg.LogDir = cleanAndExpandPath(cfg.LogDir)
	cfg.Open = strings.TrimSpace(cfg.Open)

	if !validDbType(cfg.DbType) {
		str := "%s: The specified database type [%v] is invalid -- " +
			"supported types %v"
		err := fmt.Errorf(str, "loadConfig", cfg.DbType,
			engine.SupportedDrivers())
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}
	if cfg.Cache < 0 || cfg.Handles < 0 {
		err := fmt.Errorf("%s: cache and handles may not be negative",
			"loadConfig")
		fmt.Fprintln(os.Stderr, err)
		return nil, nil, err
	}

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", lvlog.SupportedSubsystems())
		return nil, nil, errShowSubsystems
	}
	if err := lvlog.ParseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		err := fmt.Errorf("%s: %v", "loadConfig", err.Error())
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	for _, script := range remainingArgs {
		if _, err := os.Stat(script); err != nil {
			str := "%s: The specified script [%v] can not be read: %v"
			err := fmt.Errorf(str, "loadConfig", script, err)
			fmt.Fprintln(os.Stderr, err)
			return nil, nil, err
		}
	}

	return &cfg, remainingArgs, nil
}

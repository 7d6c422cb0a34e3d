// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrDbUnknownType    = errors.New("engine: non-existent database type")
	ErrDbTypeRegistered = errors.New("engine: database type already registered")
	ErrRepairNotSupport = errors.New("engine: repair not supported by database type")
)

// OpenOptions are the tuning knobs accepted when opening a store.  Backends
// ignore fields that have no meaning for them.
type OpenOptions struct {
	CreateIfMissing bool
	ErrorIfExists   bool
	ParanoidChecks  bool

	// WriteBufferSize, BlockSize and CacheSize are in bytes, MaxOpenFiles
	// is a count.  Zero selects the backend default.
	WriteBufferSize int
	BlockSize       int
	CacheSize       int
	MaxOpenFiles    int

	Compression bool

	// BloomFilterBits is the number of bits per key of the bloom filter.
	// Zero disables the filter.
	BloomFilterBits int
}

// DefaultOpenOptions returns the options used when none are supplied.
func DefaultOpenOptions() *OpenOptions {
	return &OpenOptions{
		CreateIfMissing: true,
		Compression:     true,
	}
}

// Driver defines a structure for backend drivers to use when they register
// themselves as a backend which implements the Store interface.
type Driver struct {
	// DbType is the identifier used to uniquely identify a specific
	// database driver.
	DbType string

	// Open opens or creates the store at path.
	Open func(path string, opts *OpenOptions) (Store, error)

	// Repair attempts to recover the store at path.  It is nil for
	// drivers that do not support recovery.
	Repair func(path string) error
}

var (
	driversMtx sync.RWMutex
	drivers    = make(map[string]*Driver)
)

// RegisterDriver adds a backend database driver to available interfaces.
// ErrDbTypeRegistered is returned if the database type for the driver has
// already been registered.
func RegisterDriver(driver Driver) error {
	driversMtx.Lock()
	defer driversMtx.Unlock()

	if _, exists := drivers[driver.DbType]; exists {
		return fmt.Errorf("%w: %q", ErrDbTypeRegistered, driver.DbType)
	}
	drivers[driver.DbType] = &driver
	return nil
}

// SupportedDrivers returns a sorted slice of strings that represent the
// database drivers that have been registered and are therefore supported.
func SupportedDrivers() []string {
	driversMtx.RLock()
	defer driversMtx.RUnlock()

	supportedDBs := make([]string, 0, len(drivers))
	for dbType := range drivers {
		supportedDBs = append(supportedDBs, dbType)
	}
	sort.Strings(supportedDBs)
	return supportedDBs
}

func lookup(dbType string) (*Driver, error) {
	driversMtx.RLock()
	drv, exists := drivers[dbType]
	driversMtx.RUnlock()
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrDbUnknownType, dbType)
	}
	return drv, nil
}

// Open opens the store at path using the driver registered as dbType.  A nil
// opts selects DefaultOpenOptions.
func Open(dbType, path string, opts *OpenOptions) (Store, error) {
	drv, err := lookup(dbType)
	if err != nil {
		return nil, err
	}
	if opts == nil {
		opts = DefaultOpenOptions()
	}

	log.Debugf("Opening %s store at %q", dbType, path)
	return drv.Open(path, opts)
}

// Repair attempts to recover a damaged store at path using the driver
// registered as dbType.
func Repair(dbType, path string) error {
	drv, err := lookup(dbType)
	if err != nil {
		return err
	}
	if drv.Repair == nil {
		return fmt.Errorf("%w: %q", ErrRepairNotSupport, dbType)
	}

	log.Infof("Repairing %s store at %q", dbType, path)
	return drv.Repair(path)
}

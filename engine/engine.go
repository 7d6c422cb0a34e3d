// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"errors"
)

// Errors returned by Store implementations.
var (
	ErrNotFound         = errors.New("engine: key not found")
	ErrClosed           = errors.New("engine: store closed")
	ErrSnapshotReleased = errors.New("engine: snapshot released")
	ErrForeignSnapshot  = errors.New("engine: snapshot belongs to another store")
)

// Store is the ordered key-value store consumed by the binding.  Keys are
// compared bytewise.  Implementations must be safe for concurrent use; the
// binding performs no locking of its own around Store calls.
type Store interface {
	// Get returns the value stored under key.  It returns ErrNotFound when
	// the key does not exist in the view selected by ro.
	Get(key []byte, ro *ReadOptions) ([]byte, error)

	// Put stores value under key.
	Put(key, value []byte, wo *WriteOptions) error

	// Delete removes key.  Deleting a missing key is not an error.
	Delete(key []byte, wo *WriteOptions) error

	// Write applies every operation in batch atomically, in insertion
	// order.  Either all of them become visible or none do.  The batch is
	// not modified.
	Write(batch *Batch, wo *WriteOptions) error

	// NewIterator returns an unpositioned iterator over the view selected
	// by ro.  The iterator must be released by the caller.
	NewIterator(ro *ReadOptions) Iterator

	// GetSnapshot captures the currently visible state.
	GetSnapshot() (Snapshot, error)

	// ReleaseSnapshot releases a snapshot obtained from GetSnapshot.
	ReleaseSnapshot(snapshot Snapshot)

	Close() error
}

// Snapshot is an immutable point in time view of a Store.  It is passed back
// to the store that created it through ReadOptions.Snapshot.
type Snapshot interface {
	Get(key []byte, ro *ReadOptions) ([]byte, error)
	Has(key []byte, ro *ReadOptions) (bool, error)
	NewIterator(ro *ReadOptions) Iterator
	Releaser
}

// Releaser is the interface that wraps the Release method.
type Releaser interface {
	Release()
}

// ReadOptions controls a single read.  A nil *ReadOptions is equivalent to
// DefaultReadOptions.
type ReadOptions struct {
	// VerifyChecksums requests checksum verification of all data read
	// from underlying storage.
	VerifyChecksums bool

	// FillCache controls whether data read for this call is cached.
	FillCache bool

	// Snapshot, when non-nil, selects the view to read from.  When nil the
	// read operates on an implicit snapshot of the current state.
	Snapshot Snapshot
}

// WriteOptions controls a single write.
type WriteOptions struct {
	// Sync flushes the write from the operating system buffer cache
	// before the write is considered complete.
	Sync bool
}

// DefaultReadOptions are the options used when none are supplied.
var DefaultReadOptions = ReadOptions{FillCache: true}

// DefaultWriteOptions are the options used when none are supplied.
var DefaultWriteOptions = WriteOptions{}

// ReadOpts returns ro, or the defaults when ro is nil.
func ReadOpts(ro *ReadOptions) *ReadOptions {
	if ro == nil {
		o := DefaultReadOptions
		return &o
	}
	return ro
}

// WriteOpts returns wo, or the defaults when wo is nil.
func WriteOpts(wo *WriteOptions) *WriteOptions {
	if wo == nil {
		o := DefaultWriteOptions
		return &o
	}
	return wo
}

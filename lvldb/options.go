// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lvldb

import (
	"fmt"

	"github.com/btcsuite/lvldb/engine"
	"github.com/btcsuite/lvldb/handle"
)

// ReadOptions controls a single read.  A nil *ReadOptions selects
// DefaultReadOptions.
type ReadOptions struct {
	// VerifyChecksums requests checksum verification of the data read.
	// Defaults to false.
	VerifyChecksums bool

	// FillCache controls whether the data read is cached.  Defaults to
	// true.
	FillCache bool

	// Snapshot selects a snapshot handle to read from.  The zero Handle
	// reads the current state.  The snapshot must belong to the database
	// being read.
	Snapshot handle.Handle
}

// WriteOptions controls a single write.  A nil *WriteOptions selects
// DefaultWriteOptions.
type WriteOptions struct {
	// Sync flushes the write to stable storage before returning.
	// Defaults to false.
	Sync bool
}

// DefaultReadOptions returns the read options used when none are supplied.
func DefaultReadOptions() *ReadOptions {
	return &ReadOptions{FillCache: true}
}

// DefaultWriteOptions returns the write options used when none are supplied.
func DefaultWriteOptions() *WriteOptions {
	return &WriteOptions{}
}

// readOptions translates ro into engine options for a read against db.
func (b *Binding) readOptions(db handle.Handle, ro *ReadOptions) (*engine.ReadOptions, error) {
	if ro == nil {
		ro = DefaultReadOptions()
	}
	opts := &engine.ReadOptions{
		VerifyChecksums: ro.VerifyChecksums,
		FillCache:       ro.FillCache,
	}
	if ro.Snapshot.IsZero() {
		return opts, nil
	}

	s, err := b.snapshot(ro.Snapshot)
	if err != nil {
		return nil, err
	}
	if s.db != db {
		str := fmt.Sprintf("snapshot %s belongs to %s, not %s",
			ro.Snapshot, s.db, db)
		return nil, makeError(ErrType, str, nil)
	}
	opts.Snapshot = s.snap
	return opts, nil
}

func writeOptions(wo *WriteOptions) *engine.WriteOptions {
	if wo == nil {
		wo = DefaultWriteOptions()
	}
	return &engine.WriteOptions{Sync: wo.Sync}
}

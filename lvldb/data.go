// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lvldb

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/lvldb/engine"
	"github.com/btcsuite/lvldb/handle"
)

// LookupResult is the outcome of Lookup.
type LookupResult uint8

// Lookup outcomes.
const (
	LookupFailed LookupResult = iota
	LookupFound
	LookupNotFound
)

var lookupResultStrings = map[LookupResult]string{
	LookupFailed:   "failed",
	LookupFound:    "found",
	LookupNotFound: "not found",
}

// String returns the result as a human-readable name.
func (r LookupResult) String() string {
	if s, ok := lookupResultStrings[r]; ok {
		return s
	}
	return fmt.Sprintf("Unknown LookupResult (%d)", uint8(r))
}

// Put stores value under key in db.
func (b *Binding) Put(db handle.Handle, key, value []byte, wo *WriteOptions) error {
	d, err := b.database(db)
	if err != nil {
		return err
	}
	if err := d.store.Put(key, value, writeOptions(wo)); err != nil {
		log.Errorf("Error inserting key/value: %v", err)
		return makeError(ErrStorage, "unable to put", err)
	}
	return nil
}

// Lookup reads key from db.  The result distinguishes a missing key from a
// failed read; err is non-nil only for LookupFailed.
func (b *Binding) Lookup(db handle.Handle, key []byte, ro *ReadOptions) ([]byte, LookupResult, error) {
	d, err := b.database(db)
	if err != nil {
		return nil, LookupFailed, err
	}
	opts, err := b.readOptions(db, ro)
	if err != nil {
		return nil, LookupFailed, err
	}

	value, err := d.store.Get(key, opts)
	switch {
	case err == nil:
		return value, LookupFound, nil
	case errors.Is(err, engine.ErrNotFound):
		log.Tracef("Key %q not found in database %s", key, d.id)
		return nil, LookupNotFound, nil
	case errors.Is(err, engine.ErrSnapshotReleased):
		return nil, LookupFailed, makeError(ErrResource,
			"snapshot released during read", err)
	}
	log.Errorf("Error getting value: %v", err)
	return nil, LookupFailed, makeError(ErrStorage, "unable to get", err)
}

// Get returns the value stored under key in db, or nil when key does not
// exist.  Use Lookup to tell an empty value apart from a missing key.
func (b *Binding) Get(db handle.Handle, key []byte, ro *ReadOptions) ([]byte, error) {
	value, _, err := b.Lookup(db, key, ro)
	return value, err
}

// Has reports whether key exists in db.
func (b *Binding) Has(db handle.Handle, key []byte, ro *ReadOptions) (bool, error) {
	_, res, err := b.Lookup(db, key, ro)
	return res == LookupFound, err
}

// Delete removes key from db.  Deleting a missing key is not an error.
func (b *Binding) Delete(db handle.Handle, key []byte, wo *WriteOptions) error {
	d, err := b.database(db)
	if err != nil {
		return err
	}
	if err := d.store.Delete(key, writeOptions(wo)); err != nil {
		log.Errorf("Error deleting key/value entry: %v", err)
		return makeError(ErrStorage, "unable to delete", err)
	}
	return nil
}

// Write applies every operation of the batch bh to db atomically.  The batch
// is left untouched and may be written again or appended to.  The store sees
// the operations present when Write was called; the batch lock is not held
// across the store write.
func (b *Binding) Write(db, bh handle.Handle, wo *WriteOptions) error {
	d, err := b.database(db)
	if err != nil {
		return err
	}
	var ops *engine.Batch
	err = b.useBatch(bh, func(pending *engine.Batch) {
		ops = pending.Clone()
	})
	if err != nil {
		return err
	}
	if werr := d.store.Write(ops, writeOptions(wo)); werr != nil {
		log.Errorf("Error writing batch: %v", werr)
		return makeError(ErrStorage, "unable to write batch", werr)
	}
	return nil
}

// fatal turns a storage failure reported by an iterator into a failed
// consistency check.  Other errors are returned unchanged.
func fatal(op string, err error) error {
	if !IsErrorCode(err, ErrStorage) {
		return err
	}
	log.Criticalf("Iterator status check failed in %s: %v", op, err)
	return makeError(ErrFatalInvariant, op+": iterator status check failed", err)
}

// Dump returns every entry of db in ascending key order, one "key -> value"
// line per entry after a "DB output:" header.  It is a debugging aid that
// reads the whole database into memory.
func (b *Binding) Dump(db handle.Handle) (string, error) {
	var sb strings.Builder
	sb.WriteString("DB output:\n")

	err := b.WithIterator(db, nil, func(it handle.Handle) error {
		ok, err := b.SeekToFirst(it)
		if err != nil {
			return fatal("dump", err)
		}
		if !ok {
			sb.WriteString("Database is empty.\n")
			return nil
		}
		for ok {
			key, err := b.Key(it)
			if err != nil {
				return err
			}
			value, err := b.Value(it)
			if err != nil {
				return err
			}
			sb.Write(key)
			sb.WriteString(" -> ")
			sb.Write(value)
			sb.WriteByte('\n')

			ok, err = b.Next(it)
			if err != nil {
				return fatal("dump", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"errors"
)

var (
	ErrIterReleased = errors.New("engine: iterator released")
)

// Iterator is a cursor over the bytewise ordered keyspace of a Store or
// Snapshot.  A new iterator is unpositioned; one of the seek methods must be
// called before Key or Value return anything.
type Iterator interface {
	// First moves the iterator to the first key/value pair.
	// It returns whether such pair exist.
	First() bool

	// Last moves the iterator to the last key/value pair.
	// It returns whether such pair exist.
	Last() bool

	// Seek moves the iterator to the first key/value pair whose key is greater
	// than or equal to the given key.
	// It returns whether such pair exist.
	//
	// It is safe to modify the contents of the argument after Seek returns.
	Seek(key []byte) bool

	// Next moves the iterator to the next key/value pair.
	// It returns false if the iterator is exhausted.
	Next() bool

	// Prev moves the iterator to the previous key/value pair.
	// It returns false if the iterator is exhausted.
	Prev() bool

	// Valid reports whether the iterator is positioned at a key/value pair.
	Valid() bool

	// Error returns any accumulated error. Exhausting all the key/value pairs
	// is not considered to be an error.
	Error() error

	// Key returns the key of the current key/value pair, or nil if done.
	// The caller should not modify the contents of the returned slice, and
	// its contents may change on the next call to any 'seeks method'.
	Key() []byte

	// Value returns the value of the current key/value pair, or nil if done.
	// The caller should not modify the contents of the returned slice, and
	// its contents may change on the next call to any 'seeks method'.
	Value() []byte

	Releaser
}

// emptyIterator is returned when an iterator cannot be created, for example
// on a closed store.  It is never valid and reports err.
type emptyIterator struct {
	err      error
	released bool
}

// NewEmptyIterator returns an iterator that has no key/value pairs and
// reports err from Error.
func NewEmptyIterator(err error) Iterator {
	return &emptyIterator{err: err}
}

func (i *emptyIterator) rErr() {
	if i.err == nil && i.released {
		i.err = ErrIterReleased
	}
}

func (i *emptyIterator) First() bool          { i.rErr(); return false }
func (i *emptyIterator) Last() bool           { i.rErr(); return false }
func (i *emptyIterator) Seek(key []byte) bool { i.rErr(); return false }
func (i *emptyIterator) Next() bool           { i.rErr(); return false }
func (i *emptyIterator) Prev() bool           { i.rErr(); return false }
func (i *emptyIterator) Valid() bool          { return false }
func (i *emptyIterator) Key() []byte          { return nil }
func (i *emptyIterator) Value() []byte        { return nil }
func (i *emptyIterator) Error() error         { return i.err }
func (i *emptyIterator) Release()             { i.released = true }

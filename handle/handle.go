// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package handle implements a registry of kind-tagged, generation-checked
handles to native resources.

A Handle is a small value that can be stored by a dynamically typed host in
place of a pointer.  Every operation validates the handle against the registry
before touching the resource it refers to: the kind tag catches type confusion
(an iterator passed where a database is expected) and the generation catches
use after release, even when the slot has since been reused.

The registry does not own the resources it tracks.  Releasing a handle only
forgets it; tearing down the resource itself is left to the caller.
*/
package handle

import (
	"fmt"
)

// Kind tags the type of resource a handle refers to.
type Kind uint8

// Handle kinds.  KindInvalid is the kind of the zero Handle.
const (
	KindInvalid Kind = iota
	KindDatabase
	KindIterator
	KindSnapshot
	KindBatch
)

var kindStrings = map[Kind]string{
	KindInvalid:  "invalid",
	KindDatabase: "database",
	KindIterator: "iterator",
	KindSnapshot: "snapshot",
	KindBatch:    "batch",
}

// String returns the kind as a human-readable name.
func (k Kind) String() string {
	if s, ok := kindStrings[k]; ok {
		return s
	}
	return fmt.Sprintf("Unknown Kind (%d)", uint8(k))
}

// Handle refers to a resource tracked by a Registry.  The zero value is never
// valid.
type Handle struct {
	kind  Kind
	index uint32
	gen   uint32
}

// Kind returns the kind tag carried by the handle.
func (h Handle) Kind() Kind {
	return h.kind
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h == Handle{}
}

// String returns a short description such as "iterator#3.1".
func (h Handle) String() string {
	if h.IsZero() {
		return "nil"
	}
	return fmt.Sprintf("%s#%d.%d", h.kind, h.index, h.gen)
}

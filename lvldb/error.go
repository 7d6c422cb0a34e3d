// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lvldb

import (
	"errors"
	"fmt"

	"github.com/btcsuite/lvldb/handle"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrType indicates an argument of the wrong type, most commonly a
	// handle of the wrong kind or a value that is not a byte string.
	ErrType ErrorCode = iota

	// ErrStorage indicates the underlying store reported a failure.
	ErrStorage

	// ErrResource indicates an operation on an iterator, snapshot or
	// batch handle that has already been released.
	ErrResource

	// ErrFatalInvariant indicates an internal consistency check failed.
	// It signals a bug in the store rather than a caller error.
	ErrFatalInvariant

	// ErrHandleLeak indicates a database was detached while iterators or
	// snapshots created from it were still outstanding.
	ErrHandleLeak

	// ErrIteratorNotPositioned indicates a movement or accessor call on an
	// iterator that is not positioned at an entry.
	ErrIteratorNotPositioned

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrType:                  "ErrType",
	ErrStorage:               "ErrStorage",
	ErrResource:              "ErrResource",
	ErrFatalInvariant:        "ErrFatalInvariant",
	ErrHandleLeak:            "ErrHandleLeak",
	ErrIteratorNotPositioned: "ErrIteratorNotPositioned",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error provides a single type for errors that can happen during binding
// operation.  It is used to indicate several types of failures including
// type errors, storage failures and use of released resources.
//
// The caller can use type assertions or errors.As to determine the specific
// error and access the ErrorCode field.  Err holds the underlying error, if
// any, and is exposed through Unwrap.
type Error struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
	Err         error     // Underlying error
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

// Unwrap returns the underlying error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(c ErrorCode, desc string, err error) Error {
	return Error{ErrorCode: c, Description: desc, Err: err}
}

// IsErrorCode returns whether err is an Error with the given code.
func IsErrorCode(err error, c ErrorCode) bool {
	var e Error
	return errors.As(err, &e) && e.ErrorCode == c
}

// convertHandleErr maps a registry validation failure onto the error
// taxonomy of the binding.  Released handles are resource errors, every other
// validation failure is a type error.
func convertHandleErr(err error) error {
	var herr handle.Error
	if !errors.As(err, &herr) {
		return err
	}
	if herr.ErrorCode == handle.ErrReleased {
		return makeError(ErrResource, "resource error", err)
	}
	return makeError(ErrType, "type error", err)
}

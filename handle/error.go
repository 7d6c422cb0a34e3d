// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handle

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrNilHandle indicates the zero Handle was presented where a live
	// handle was required.
	ErrNilHandle ErrorCode = iota

	// ErrUnknownHandle indicates a handle that was never issued by the
	// registry it was presented to.
	ErrUnknownHandle

	// ErrWrongKind indicates a handle whose kind tag does not match the
	// kind the operation expects, for example an iterator passed where a
	// database is required.
	ErrWrongKind

	// ErrReleased indicates a handle that has already been released.
	ErrReleased

	// ErrNotOwner indicates a handle released through a database handle
	// other than the one that created it.
	ErrNotOwner

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrNilHandle:     "ErrNilHandle",
	ErrUnknownHandle: "ErrUnknownHandle",
	ErrWrongKind:     "ErrWrongKind",
	ErrReleased:      "ErrReleased",
	ErrNotOwner:      "ErrNotOwner",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error identifies a handle validation failure.  The caller can use
// errors.As or IsErrorCode to access the ErrorCode field.
type Error struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// handleError creates an Error given a set of arguments.
func handleError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// IsErrorCode returns whether err is an Error with the given code.
func IsErrorCode(err error, c ErrorCode) bool {
	var e Error
	return errors.As(err, &e) && e.ErrorCode == c
}

// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package lvldb exposes an ordered key-value store to a dynamically typed host
through opaque handles.

A Binding hands out handle.Handle values for databases, iterators, snapshots
and write batches.  Every operation validates the handles it receives before
touching the resource behind them, so a host that confuses one kind of handle
for another, or keeps using one after releasing it, gets an error instead of
undefined behaviour.

Errors

All failures are reported as Error values carrying an ErrorCode:

  - ErrType: wrong handle kind, nil handle, or a snapshot owned by another
    database
  - ErrResource: a handle that has already been released
  - ErrStorage: the store reported a failure
  - ErrFatalInvariant: an internal consistency check failed
  - ErrHandleLeak: a database was detached with outstanding handles
  - ErrIteratorNotPositioned: an iterator accessor was used while the
    iterator was not at an entry

Hosts that want the legacy behaviour of returning false on storage failures
should check for ErrStorage and collapse it themselves.  Lookup keeps the
three-way distinction between found, not found and failed.

Resource lifetimes

Databases are borrowed: Attach registers a store and Detach forgets it, but
neither opens nor closes it.  Iterators and snapshots belong to the database
they were created from and must be released explicitly.  WithIterator and
WithSnapshot release them on every exit path.  Detach reports iterators and
snapshots that are still outstanding.
*/
package lvldb

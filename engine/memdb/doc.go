// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package memdb implements an engine.Store that keeps all data in memory.

This is primarily used for testing and scratch work as nothing survives
closing the store.  Data lives in a copy-on-write B-tree, so snapshots and
iterators are cheap clones of the tree and batches are applied to a clone that
is swapped in only once every operation has been applied.
*/
package memdb

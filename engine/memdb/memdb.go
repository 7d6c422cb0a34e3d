// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package memdb

import (
	"bytes"
	"sync"

	"github.com/btcsuite/lvldb/engine"
	"github.com/google/btree"
)

const dbType = "memdb"

// degree is the B-tree degree used for every tree.
const degree = 32

func init() {
	driver := engine.Driver{
		DbType: dbType,
		Open: func(string, *engine.OpenOptions) (engine.Store, error) {
			return New(), nil
		},
	}
	if err := engine.RegisterDriver(driver); err != nil {
		panic(err)
	}
}

type item struct {
	key   []byte
	value []byte
}

func lessItem(a, b item) bool {
	return bytes.Compare(a.key, b.key) < 0
}

// DB is an in-memory engine.Store.
type DB struct {
	mtx    sync.RWMutex
	tree   *btree.BTreeG[item]
	closed bool
}

var _ engine.Store = (*DB)(nil)

// New returns an empty in-memory store.
func New() *DB {
	return &DB{tree: btree.NewG(degree, lessItem)}
}

// clone returns a lazily copied view of the current tree.  btree.Clone
// mutates shared state, so it needs the write lock.
func (d *DB) clone() (*btree.BTreeG[item], error) {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if d.closed {
		return nil, engine.ErrClosed
	}
	return d.tree.Clone(), nil
}

// snapshotOf returns the memdb snapshot selected by ro, if any.
func snapshotOf(ro *engine.ReadOptions) (*Snapshot, error) {
	if ro == nil || ro.Snapshot == nil {
		return nil, nil
	}
	s, ok := ro.Snapshot.(*Snapshot)
	if !ok {
		return nil, engine.ErrForeignSnapshot
	}
	return s, nil
}

func get(tree *btree.BTreeG[item], key []byte) ([]byte, error) {
	it, ok := tree.Get(item{key: key})
	if !ok {
		return nil, engine.ErrNotFound
	}
	return append([]byte{}, it.value...), nil
}

func (d *DB) Get(key []byte, ro *engine.ReadOptions) ([]byte, error) {
	snap, err := snapshotOf(ro)
	if err != nil {
		return nil, err
	}
	if snap != nil {
		return snap.Get(key, ro)
	}

	d.mtx.RLock()
	defer d.mtx.RUnlock()

	if d.closed {
		return nil, engine.ErrClosed
	}
	return get(d.tree, key)
}

func (d *DB) Put(key, value []byte, _ *engine.WriteOptions) error {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if d.closed {
		return engine.ErrClosed
	}
	d.tree.ReplaceOrInsert(item{
		key:   append([]byte{}, key...),
		value: append([]byte{}, value...),
	})
	return nil
}

func (d *DB) Delete(key []byte, _ *engine.WriteOptions) error {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if d.closed {
		return engine.ErrClosed
	}
	d.tree.Delete(item{key: key})
	return nil
}

// treeReplay applies batch operations to a tree.
type treeReplay struct {
	tree *btree.BTreeG[item]
}

func (r treeReplay) Put(key, value []byte) {
	r.tree.ReplaceOrInsert(item{key: key, value: value})
}

func (r treeReplay) Delete(key []byte) {
	r.tree.Delete(item{key: key})
}

// Write applies the batch to a clone of the tree and publishes the clone.
func (d *DB) Write(batch *engine.Batch, _ *engine.WriteOptions) error {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if d.closed {
		return engine.ErrClosed
	}
	next := d.tree.Clone()
	batch.Replay(treeReplay{next})
	d.tree = next
	return nil
}

func (d *DB) NewIterator(ro *engine.ReadOptions) engine.Iterator {
	snap, err := snapshotOf(ro)
	if err != nil {
		return engine.NewEmptyIterator(err)
	}
	if snap != nil {
		return snap.NewIterator(ro)
	}

	tree, err := d.clone()
	if err != nil {
		return engine.NewEmptyIterator(err)
	}
	return newIterator(tree)
}

func (d *DB) GetSnapshot() (engine.Snapshot, error) {
	tree, err := d.clone()
	if err != nil {
		return nil, err
	}
	return &Snapshot{tree: tree}, nil
}

func (d *DB) ReleaseSnapshot(snapshot engine.Snapshot) {
	if snapshot != nil {
		snapshot.Release()
	}
}

// Len returns the number of entries in the store.
func (d *DB) Len() int {
	d.mtx.RLock()
	defer d.mtx.RUnlock()
	return d.tree.Len()
}

func (d *DB) Close() error {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if d.closed {
		return engine.ErrClosed
	}
	d.closed = true
	d.tree = btree.NewG(degree, lessItem)
	return nil
}

// Snapshot is a frozen clone of the tree.
type Snapshot struct {
	mtx      sync.Mutex
	tree     *btree.BTreeG[item]
	released bool
}

// view returns the snapshot tree, or ErrSnapshotReleased once released.
func (s *Snapshot) view() (*btree.BTreeG[item], error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.released {
		return nil, engine.ErrSnapshotReleased
	}
	return s.tree, nil
}

func (s *Snapshot) Get(key []byte, _ *engine.ReadOptions) ([]byte, error) {
	tree, err := s.view()
	if err != nil {
		return nil, err
	}
	return get(tree, key)
}

func (s *Snapshot) Has(key []byte, ro *engine.ReadOptions) (bool, error) {
	_, err := s.Get(key, ro)
	switch err {
	case nil:
		return true, nil
	case engine.ErrNotFound:
		return false, nil
	}
	return false, err
}

func (s *Snapshot) NewIterator(_ *engine.ReadOptions) engine.Iterator {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.released {
		return engine.NewEmptyIterator(engine.ErrSnapshotReleased)
	}
	return newIterator(s.tree.Clone())
}

func (s *Snapshot) Release() {
	s.mtx.Lock()
	s.released = true
	s.tree = nil
	s.mtx.Unlock()
}

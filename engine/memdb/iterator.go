// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package memdb

import (
	"bytes"

	"github.com/btcsuite/lvldb/engine"
	"github.com/google/btree"
)

type dir int

const (
	dirReleased dir = iota - 1
	dirSOI
	dirEOI
	dirValid
)

// Iterator walks a private clone of the tree, so it observes the state of the
// store at the time it was created.
type Iterator struct {
	tree *btree.BTreeG[item]
	cur  item
	dir  dir
	err  error
}

var _ engine.Iterator = (*Iterator)(nil)

func newIterator(tree *btree.BTreeG[item]) *Iterator {
	return &Iterator{tree: tree, dir: dirSOI}
}

// released records use after release and reports whether the iterator is
// released.
func (i *Iterator) released() bool {
	if i.dir == dirReleased {
		i.err = engine.ErrIterReleased
		return true
	}
	return false
}

// set positions the iterator at it when ok, otherwise at the given end.
func (i *Iterator) set(it item, ok bool, end dir) bool {
	if !ok {
		i.cur = item{}
		i.dir = end
		return false
	}
	i.cur = it
	i.dir = dirValid
	return true
}

func (i *Iterator) First() bool {
	if i.released() {
		return false
	}
	it, ok := i.tree.Min()
	return i.set(it, ok, dirEOI)
}

func (i *Iterator) Last() bool {
	if i.released() {
		return false
	}
	it, ok := i.tree.Max()
	return i.set(it, ok, dirSOI)
}

func (i *Iterator) Seek(key []byte) bool {
	if i.released() {
		return false
	}
	var (
		found item
		ok    bool
	)
	i.tree.AscendGreaterOrEqual(item{key: key}, func(it item) bool {
		found, ok = it, true
		return false
	})
	return i.set(found, ok, dirEOI)
}

func (i *Iterator) Next() bool {
	if i.released() {
		return false
	}
	switch i.dir {
	case dirSOI:
		return i.First()
	case dirEOI:
		return false
	}

	var (
		found item
		ok    bool
	)
	i.tree.AscendGreaterOrEqual(i.cur, func(it item) bool {
		if bytes.Equal(it.key, i.cur.key) {
			return true
		}
		found, ok = it, true
		return false
	})
	return i.set(found, ok, dirEOI)
}

func (i *Iterator) Prev() bool {
	if i.released() {
		return false
	}
	switch i.dir {
	case dirEOI:
		return i.Last()
	case dirSOI:
		return false
	}

	var (
		found item
		ok    bool
	)
	i.tree.DescendLessOrEqual(i.cur, func(it item) bool {
		if bytes.Equal(it.key, i.cur.key) {
			return true
		}
		found, ok = it, true
		return false
	})
	return i.set(found, ok, dirSOI)
}

func (i *Iterator) Valid() bool {
	return i.dir == dirValid
}

func (i *Iterator) Key() []byte {
	if i.dir != dirValid {
		return nil
	}
	return i.cur.key
}

func (i *Iterator) Value() []byte {
	if i.dir != dirValid {
		return nil
	}
	return i.cur.value
}

func (i *Iterator) Error() error {
	return i.err
}

func (i *Iterator) Release() {
	if i.dir != dirReleased {
		i.dir = dirReleased
		i.tree = nil
		i.cur = item{}
	}
}

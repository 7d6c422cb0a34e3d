package pebbledb

import (
	"github.com/btcsuite/lvldb/engine"
	"github.com/cockroachdb/pebble"
)

func NewIterator(iter *pebble.Iterator) engine.Iterator {
	return &Iterator{Iterator: iter}
}

type Iterator struct {
	*pebble.Iterator
	released bool
}

func (i *Iterator) First() bool {
	if i.released {
		return false
	}
	return i.Iterator.First()
}

func (i *Iterator) Last() bool {
	if i.released {
		return false
	}
	return i.Iterator.Last()
}

func (i *Iterator) Seek(key []byte) bool {
	if i.released {
		return false
	}
	return i.Iterator.SeekGE(key)
}

func (i *Iterator) Next() bool {
	if i.released {
		return false
	}
	return i.Iterator.Next()
}

func (i *Iterator) Prev() bool {
	if i.released {
		return false
	}
	return i.Iterator.Prev()
}

func (i *Iterator) Valid() bool {
	return !i.released && i.Iterator.Valid()
}

func (i *Iterator) Key() []byte {
	if !i.Valid() { // return nil if the iterator is exhausted
		return nil
	}
	return i.Iterator.Key()
}

func (i *Iterator) Value() []byte {
	if !i.Valid() { // return nil if the iterator is exhausted
		return nil
	}
	return i.Iterator.Value()
}

func (i *Iterator) Release() {
	if !i.released {
		i.released = true
		i.Iterator.Close()
	}
}

func (i *Iterator) Error() error {
	if i.released {
		return engine.ErrIterReleased
	}
	return i.Iterator.Error()
}

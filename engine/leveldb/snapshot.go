package leveldb

import (
	"github.com/btcsuite/lvldb/engine"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
)

func NewSnapshot(snapshot *leveldb.Snapshot) engine.Snapshot {
	return &Snapshot{Snapshot: snapshot}
}

type Snapshot struct {
	*leveldb.Snapshot
}

func (s *Snapshot) Has(key []byte, ro *engine.ReadOptions) (bool, error) {
	has, err := s.Snapshot.Has(key, readOptions(ro))
	return has, convertErr(err)
}

func (s *Snapshot) Get(key []byte, ro *engine.ReadOptions) (val []byte, err error) {
	val, err = s.Snapshot.Get(key, readOptions(ro))
	return val, convertErr(err)
}

func (s *Snapshot) Release() {
	s.Snapshot.Release()
}

func (s *Snapshot) NewIterator(ro *engine.ReadOptions) engine.Iterator {
	return newIterator(s.Snapshot.NewIterator(nil, readOptions(ro)))
}

// Iterator adapts a goleveldb iterator, translating its errors.
type Iterator struct {
	iterator.Iterator
}

func newIterator(iter iterator.Iterator) engine.Iterator {
	return &Iterator{Iterator: iter}
}

func (i *Iterator) Error() error {
	err := i.Iterator.Error()
	if err == leveldb.ErrIterReleased {
		return engine.ErrIterReleased
	}
	return convertErr(err)
}

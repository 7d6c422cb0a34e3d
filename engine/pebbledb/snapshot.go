package pebbledb

import (
	"sync"

	"github.com/btcsuite/lvldb/engine"
	"github.com/cockroachdb/pebble"
)

func NewSnapshot(snapshot *pebble.Snapshot) engine.Snapshot {
	return &Snapshot{snapshot: snapshot}
}

// Snapshot wraps a pebble snapshot.  Reads hold mtx shared so Release cannot
// close the underlying snapshot while a read is in flight.
type Snapshot struct {
	mtx      sync.RWMutex
	snapshot *pebble.Snapshot
	released bool
}

func (s *Snapshot) Has(key []byte, ro *engine.ReadOptions) (bool, error) {
	_, err := s.Get(key, ro)
	if err == engine.ErrNotFound {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Snapshot) Get(key []byte, _ *engine.ReadOptions) ([]byte, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if s.released {
		return nil, engine.ErrSnapshotReleased
	}
	return get(s.snapshot, key)
}

func (s *Snapshot) Release() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if !s.released {
		s.released = true
		s.snapshot.Close()
	}
}

func (s *Snapshot) NewIterator(_ *engine.ReadOptions) engine.Iterator {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if s.released {
		return engine.NewEmptyIterator(engine.ErrSnapshotReleased)
	}
	return newIter(s.snapshot)
}

// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package memdb

import (
	"fmt"
	"sync"
	"testing"

	"github.com/btcsuite/lvldb/engine"
	"github.com/stretchr/testify/require"
)

func TestSuiteMemDB(t *testing.T) {
	engine.TestSuiteStore(t, func() engine.Store {
		return New()
	})
}

// TestIteratorIsolation ensures an iterator does not observe writes made after
// it was created.
func TestIteratorIsolation(t *testing.T) {
	db := New()
	defer db.Close()

	require.NoError(t, db.Put([]byte("a"), []byte("1"), nil))
	iter := db.NewIterator(nil)
	defer iter.Release()

	require.NoError(t, db.Put([]byte("b"), []byte("2"), nil))

	require.True(t, iter.First())
	require.Equal(t, []byte("a"), iter.Key())
	require.False(t, iter.Next())
	require.Equal(t, 2, db.Len())
}

// TestReleasedIterator ensures operations on a released iterator are refused
// rather than panicking.
func TestReleasedIterator(t *testing.T) {
	db := New()
	defer db.Close()

	require.NoError(t, db.Put([]byte("a"), []byte("1"), nil))
	iter := db.NewIterator(nil)
	require.True(t, iter.First())
	iter.Release()

	require.False(t, iter.Valid())
	require.False(t, iter.Next())
	require.Nil(t, iter.Key())
	require.ErrorIs(t, iter.Error(), engine.ErrIterReleased)
}

// TestConcurrentAccess exercises the store from several goroutines.  It is
// most useful when run with the race detector.
func TestConcurrentAccess(t *testing.T) {
	db := New()
	defer db.Close()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				key := []byte(fmt.Sprintf("g%d-%03d", g, i))
				if err := db.Put(key, key, nil); err != nil {
					t.Errorf("Put: %v", err)
					return
				}
				snap, err := db.GetSnapshot()
				if err != nil {
					t.Errorf("GetSnapshot: %v", err)
					return
				}
				if _, err := snap.Get(key, nil); err != nil {
					t.Errorf("snapshot Get %s: %v", key, err)
				}
				db.ReleaseSnapshot(snap)
			}
		}(g)
	}
	wg.Wait()

	require.Equal(t, 800, db.Len())
}

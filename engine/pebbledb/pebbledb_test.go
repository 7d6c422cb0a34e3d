package pebbledb

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/btcsuite/lvldb/engine"
	"github.com/stretchr/testify/require"
)

func TestSuitePebbleDB(t *testing.T) {
	engine.TestSuiteStore(t, func() engine.Store {
		dbPath := filepath.Join(t.TempDir(), "pebbledb-testsuite")

		pebbledb, err := NewDB(dbPath, nil)
		require.NoErrorf(t, err, "failed to create pebbledb")
		return pebbledb
	})
}

func TestCloseTwice(t *testing.T) {
	db, err := engine.Open(dbType, filepath.Join(t.TempDir(), "pebbledb-close"), &engine.OpenOptions{
		CreateIfMissing: true,
		BloomFilterBits: 10,
	})
	require.NoError(t, err)

	require.NoError(t, db.Close())
	require.ErrorIs(t, db.Close(), engine.ErrClosed)
	require.ErrorIs(t, db.Delete([]byte("k"), nil), engine.ErrClosed)
	require.ErrorIs(t, db.Write(new(engine.Batch), nil), engine.ErrClosed)
}

func TestErrorIfMissing(t *testing.T) {
	_, err := NewDB(filepath.Join(t.TempDir(), "missing"), &engine.OpenOptions{})
	require.Error(t, err)
}

func TestSnapshotConcurrentRelease(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "pebbledb-snaprelease"), nil)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Put([]byte("k"), []byte("v"), nil))

	snap, err := db.GetSnapshot()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				_, err := snap.Get([]byte("k"), nil)
				if errors.Is(err, engine.ErrSnapshotReleased) {
					return
				}
				if err != nil {
					t.Errorf("unexpected error: %v", err)
					return
				}
			}
		}()
	}
	db.ReleaseSnapshot(snap)
	wg.Wait()

	_, err = snap.Get([]byte("k"), nil)
	require.ErrorIs(t, err, engine.ErrSnapshotReleased)
	iter := snap.NewIterator(nil)
	require.False(t, iter.First())
	require.ErrorIs(t, iter.Error(), engine.ErrSnapshotReleased)
	iter.Release()
}

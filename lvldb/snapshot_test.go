// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lvldb

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/btcsuite/lvldb/engine/pebbledb"
	"github.com/stretchr/testify/require"
)

// TestSnapshotReleaseDuringReads releases a pebble backed snapshot while
// another goroutine keeps reading through it.  Every read must either see the
// snapshot value or fail with a resource error.
func TestSnapshotReleaseDuringReads(t *testing.T) {
	store, err := pebbledb.NewDB(filepath.Join(t.TempDir(), "snaprace"), nil)
	require.NoError(t, err)
	defer store.Close()

	b := New(nil)
	db := b.Attach(store, t.Name())
	defer b.Close()

	key := []byte("k")
	require.NoError(t, b.Put(db, key, []byte("v"), nil))

	for i := 0; i < 20; i++ {
		snap, err := b.GetSnapshot(db)
		require.NoError(t, err)
		ro := &ReadOptions{Snapshot: snap}

		var wg sync.WaitGroup
		errs := make(chan error, 1)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				value, err := b.Get(db, key, ro)
				if err != nil {
					if !IsErrorCode(err, ErrResource) {
						errs <- err
					}
					return
				}
				if string(value) != "v" {
					errs <- fmt.Errorf("unexpected value %q", value)
					return
				}
			}
		}()

		require.NoError(t, b.ReleaseSnapshot(db, snap))
		wg.Wait()
		close(errs)
		require.NoError(t, <-errs)
	}
}

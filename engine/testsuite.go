package engine

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSuiteStore runs the behaviour every Store backend must share.  newStore
// must return a freshly created, empty store each time it is called.
func TestSuiteStore(t *testing.T, newStore func() Store) {
	t.Run("PutGetDelete", func(t *testing.T) {
		store := newStore()
		defer store.Close()

		for _, kv := range [][2][]byte{
			{[]byte("key1"), []byte("value1")},
			{[]byte(""), []byte("empty key")},
			{[]byte("empty value"), []byte("")},
			{[]byte("a\x00b"), []byte("c\x00\x00d")},
		} {
			err := store.Put(kv[0], kv[1], nil)
			require.NoErrorf(t, err, "failed to put %q", kv[0])

			got, err := store.Get(kv[0], nil)
			require.NoErrorf(t, err, "failed to get %q", kv[0])
			require.Truef(t, bytes.Equal(kv[1], got), "value mismatch for %q: got %q", kv[0], got)
		}

		_, err := store.Get([]byte("missing"), nil)
		require.ErrorIs(t, err, ErrNotFound)

		err = store.Delete([]byte("key1"), &WriteOptions{Sync: true})
		require.NoErrorf(t, err, "failed to delete")
		_, err = store.Get([]byte("key1"), nil)
		require.ErrorIs(t, err, ErrNotFound)

		// Deleting a key that never existed is not an error.
		err = store.Delete([]byte("never"), nil)
		require.NoError(t, err)
	})

	t.Run("WriteBatch", func(t *testing.T) {
		store := newStore()
		defer store.Close()

		require.NoError(t, store.Put([]byte("stale"), []byte("x"), nil))

		batch := new(Batch)
		batch.Put([]byte("k1"), []byte("v1"))
		batch.Put([]byte("k2"), []byte("v2"))
		batch.Delete([]byte("k1"))
		batch.Delete([]byte("stale"))
		batch.Put([]byte("k3"), []byte("v3"))
		batch.Put([]byte("k3"), []byte("v3b"))

		require.NoError(t, store.Write(batch, nil))
		require.Equal(t, 6, batch.Len(), "write must not consume the batch")

		_, err := store.Get([]byte("k1"), nil)
		require.ErrorIs(t, err, ErrNotFound)
		_, err = store.Get([]byte("stale"), nil)
		require.ErrorIs(t, err, ErrNotFound)

		got, err := store.Get([]byte("k2"), nil)
		require.NoError(t, err)
		require.Equal(t, []byte("v2"), got)

		got, err = store.Get([]byte("k3"), nil)
		require.NoError(t, err)
		require.Equal(t, []byte("v3b"), got)

		// An empty batch is a no-op.
		require.NoError(t, store.Write(new(Batch), nil))
	})

	t.Run("SnapshotIsolation", func(t *testing.T) {
		store := newStore()
		defer store.Close()

		require.NoError(t, store.Put([]byte("key"), []byte("before"), nil))
		require.NoError(t, store.Put([]byte("gone"), []byte("here"), nil))

		snapshot, err := store.GetSnapshot()
		require.NoErrorf(t, err, "failed to create snapshot")

		require.NoError(t, store.Put([]byte("key"), []byte("after"), nil))
		require.NoError(t, store.Delete([]byte("gone"), nil))
		require.NoError(t, store.Put([]byte("new"), []byte("value"), nil))

		ro := &ReadOptions{FillCache: true, Snapshot: snapshot}
		got, err := store.Get([]byte("key"), ro)
		require.NoError(t, err)
		require.Equal(t, []byte("before"), got)

		got, err = store.Get([]byte("gone"), ro)
		require.NoError(t, err)
		require.Equal(t, []byte("here"), got)

		_, err = store.Get([]byte("new"), ro)
		require.ErrorIs(t, err, ErrNotFound)

		has, err := snapshot.Has([]byte("new"), nil)
		require.NoError(t, err)
		require.False(t, has)

		iter := store.NewIterator(ro)
		var keys []string
		for ok := iter.First(); ok; ok = iter.Next() {
			keys = append(keys, string(iter.Key()))
		}
		require.NoError(t, iter.Error())
		iter.Release()
		require.Equal(t, []string{"gone", "key"}, keys)

		got, err = store.Get([]byte("key"), nil)
		require.NoError(t, err)
		require.Equal(t, []byte("after"), got)

		store.ReleaseSnapshot(snapshot)
		store.ReleaseSnapshot(snapshot) // multiple calls to release should be safe
		_, err = snapshot.Get([]byte("key"), nil)
		require.Errorf(t, err, "expected to get error when getting value from released snapshot")
	})

	t.Run("IteratorOrder", func(t *testing.T) {
		store := newStore()
		defer store.Close()

		// Inserted out of order on purpose.
		for _, k := range []string{"b", "a\xff", "c", "a", "ab", "\x00"} {
			require.NoError(t, store.Put([]byte(k), []byte("v"+k), nil))
		}
		want := []string{"\x00", "a", "ab", "a\xff", "b", "c"}

		iter := store.NewIterator(nil)
		defer iter.Release()

		require.False(t, iter.Valid(), "new iterator must be unpositioned")

		var forward []string
		for ok := iter.First(); ok; ok = iter.Next() {
			forward = append(forward, string(iter.Key()))
			require.Equal(t, "v"+string(iter.Key()), string(iter.Value()))
		}
		require.Equal(t, want, forward)
		require.False(t, iter.Valid())

		var backward []string
		for ok := iter.Last(); ok; ok = iter.Prev() {
			backward = append(backward, string(iter.Key()))
		}
		require.Len(t, backward, len(want))
		for i := range want {
			require.Equal(t, want[len(want)-1-i], backward[i])
		}

		require.True(t, iter.Seek([]byte("aa")))
		require.Equal(t, []byte("ab"), iter.Key())
		require.True(t, iter.Prev())
		require.Equal(t, []byte("a"), iter.Key())
		require.True(t, iter.Next())
		require.True(t, iter.Next())
		require.Equal(t, []byte("a\xff"), iter.Key())

		require.False(t, iter.Seek([]byte("d")))
		require.False(t, iter.Valid())
		require.Nil(t, iter.Key())
		require.NoError(t, iter.Error())
	})

	t.Run("EmptyIterator", func(t *testing.T) {
		store := newStore()
		defer store.Close()

		iter := store.NewIterator(nil)
		require.False(t, iter.First())
		require.False(t, iter.Last())
		require.False(t, iter.Seek(nil))
		require.NoError(t, iter.Error())
		iter.Release()
		iter.Release() // multiple calls to release should be safe
	})

	t.Run("StoreClose", func(t *testing.T) {
		store := newStore()

		require.NoError(t, store.Put([]byte("key"), []byte("value"), nil))
		require.NoErrorf(t, store.Close(), "failed to close store")

		_, err := store.Get([]byte("key"), nil)
		require.Errorf(t, err, "expected error reading a closed store")
		err = store.Put([]byte("key"), []byte("value"), nil)
		require.Errorf(t, err, "expected error writing a closed store")
		_, err = store.GetSnapshot()
		require.Errorf(t, err, "expected error creating snapshot from closed store")

		iter := store.NewIterator(nil)
		require.False(t, iter.First())
		require.Error(t, iter.Error())
		iter.Release()
	})
}

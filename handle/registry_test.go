// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handle

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryValidate(t *testing.T) {
	r := NewRegistry()
	db := r.Register(KindDatabase, Handle{}, "db")
	it := r.Register(KindIterator, db, "it")

	v, err := r.Validate(db, KindDatabase)
	require.NoError(t, err)
	require.Equal(t, "db", v)

	tests := []struct {
		name string
		h    Handle
		kind Kind
		code ErrorCode
	}{
		{"zero handle", Handle{}, KindDatabase, ErrNilHandle},
		{"iterator as database", it, KindDatabase, ErrWrongKind},
		{"database as batch", db, KindBatch, ErrWrongKind},
		{"out of range", Handle{kind: KindSnapshot, index: 99, gen: 1}, KindSnapshot, ErrUnknownHandle},
		{"forged kind tag", Handle{kind: KindSnapshot, index: db.index, gen: db.gen}, KindSnapshot, ErrWrongKind},
		{"wrong generation", Handle{kind: KindIterator, index: it.index, gen: it.gen + 1}, KindIterator, ErrReleased},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := r.Validate(test.h, test.kind)
			require.Truef(t, IsErrorCode(err, test.code), "got %v, want %v", err, test.code)
		})
	}
}

func TestRegistryRelease(t *testing.T) {
	r := NewRegistry()
	db := r.Register(KindDatabase, Handle{}, "db")
	snap := r.Register(KindSnapshot, db, "snap")
	require.Equal(t, 2, r.Len())

	owner, err := r.Owner(snap, KindSnapshot)
	require.NoError(t, err)
	require.Equal(t, db, owner)

	other := r.Register(KindDatabase, Handle{}, "other")
	_, err = r.ReleaseOwned(snap, KindSnapshot, other)
	require.True(t, IsErrorCode(err, ErrNotOwner), "got %v", err)

	v, err := r.ReleaseOwned(snap, KindSnapshot, db)
	require.NoError(t, err)
	require.Equal(t, "snap", v)

	// Double release and use after release are validation errors.
	_, err = r.Release(snap, KindSnapshot)
	require.True(t, IsErrorCode(err, ErrReleased), "got %v", err)
	_, err = r.Validate(snap, KindSnapshot)
	require.True(t, IsErrorCode(err, ErrReleased), "got %v", err)

	// The freed slot is reused, but the stale handle stays invalid.
	reused := r.Register(KindSnapshot, db, "reused")
	require.Equal(t, snap.index, reused.index)
	require.NotEqual(t, snap, reused)
	_, err = r.Validate(snap, KindSnapshot)
	require.True(t, IsErrorCode(err, ErrReleased), "got %v", err)

	v, err = r.Validate(reused, KindSnapshot)
	require.NoError(t, err)
	require.Equal(t, "reused", v)
}

func TestRegistryOwned(t *testing.T) {
	r := NewRegistry()
	db1 := r.Register(KindDatabase, Handle{}, nil)
	db2 := r.Register(KindDatabase, Handle{}, nil)
	it1 := r.Register(KindIterator, db1, nil)
	r.Register(KindIterator, db2, nil)
	snap1 := r.Register(KindSnapshot, db1, nil)

	require.Equal(t, []Handle{it1, snap1}, r.Owned(db1))

	_, err := r.Release(it1, KindIterator)
	require.NoError(t, err)
	require.Equal(t, []Handle{snap1}, r.Owned(db1))
}

func TestHandleString(t *testing.T) {
	r := NewRegistry()
	h := r.Register(KindBatch, Handle{}, nil)
	require.Equal(t, "batch#0.1", h.String())
	require.Equal(t, "nil", Handle{}.String())
	require.True(t, Handle{}.IsZero())
	require.Equal(t, KindBatch, h.Kind())
}

func TestRegistryConcurrent(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				h := r.Register(KindIterator, Handle{}, i)
				if _, err := r.Validate(h, KindIterator); err != nil {
					t.Errorf("Validate: %v", err)
					return
				}
				if _, err := r.Release(h, KindIterator); err != nil {
					t.Errorf("Release: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 0, r.Len())
}

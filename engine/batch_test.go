// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type recorder []string

func (r *recorder) Put(key, value []byte) { *r = append(*r, "put "+string(key)+"="+string(value)) }
func (r *recorder) Delete(key []byte) { *r = append(*r, "del "+string(key)) }

func TestBatchClone(t *testing.T) {
	b := new(Batch)
	b.Put([]byte("a"), []byte("1"))
	b.Delete([]byte("b"))
	require.Equal(t, 3, b.Size())

	c := b.Clone()
	require.Equal(t, b.Len(), c.Len())
	require.Equal(t, b.Size(), c.Size())

	// Reusing the original's storage must not leak into the clone.
	b.Reset()
	b.Put([]byte("x"), []byte("yz"))
	require.Equal(t, 3, b.Size())

	var got recorder
	c.Replay(&got)
	require.Equal(t, recorder{"put a=1", "del b"}, got)

	got = nil
	b.Replay(&got)
	require.Equal(t, recorder{"put x=yz"}, got)
}

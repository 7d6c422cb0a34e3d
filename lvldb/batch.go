// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lvldb

import (
	"sync"

	"github.com/btcsuite/lvldb/engine"
	"github.com/btcsuite/lvldb/handle"
)

type batch struct {
	mtx sync.Mutex
	ops engine.Batch
}

func (b *Binding) useBatch(h handle.Handle, fn func(ops *engine.Batch)) error {
	v, err := b.reg.Validate(h, handle.KindBatch)
	if err != nil {
		return convertHandleErr(err)
	}
	bt := v.(*batch)

	bt.mtx.Lock()
	defer bt.mtx.Unlock()
	fn(&bt.ops)
	return nil
}

// NewBatch returns a handle to an empty write batch.  Batches are not tied to
// a database and may be written to any number of them.
func (b *Binding) NewBatch() handle.Handle {
	return b.reg.Register(handle.KindBatch, handle.Handle{}, new(batch))
}

// BatchPut appends a put of key/value to h.
func (b *Binding) BatchPut(h handle.Handle, key, value []byte) error {
	return b.useBatch(h, func(ops *engine.Batch) {
		ops.Put(key, value)
	})
}

// BatchDelete appends a delete of key to h.
func (b *Binding) BatchDelete(h handle.Handle, key []byte) error {
	return b.useBatch(h, func(ops *engine.Batch) {
		ops.Delete(key)
	})
}

// BatchClear removes every operation from h.
func (b *Binding) BatchClear(h handle.Handle) error {
	return b.useBatch(h, func(ops *engine.Batch) {
		ops.Reset()
	})
}

// BatchLen returns the number of operations in h.
func (b *Binding) BatchLen(h handle.Handle) (n int, err error) {
	err = b.useBatch(h, func(ops *engine.Batch) {
		n = ops.Len()
	})
	return n, err
}

// BatchSize returns the number of key and value bytes queued in h.
func (b *Binding) BatchSize(h handle.Handle) (n int, err error) {
	err = b.useBatch(h, func(ops *engine.Batch) {
		n = ops.Size()
	})
	return n, err
}

// ReleaseBatch releases h.
func (b *Binding) ReleaseBatch(h handle.Handle) error {
	if _, err := b.reg.Release(h, handle.KindBatch); err != nil {
		return convertHandleErr(err)
	}
	return nil
}

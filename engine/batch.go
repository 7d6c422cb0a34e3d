// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

// BatchReplay is the interface used to replay the contents of a Batch in
// insertion order.
type BatchReplay interface {
	Put(key, value []byte)
	Delete(key []byte)
}

type batchOp struct {
	del   bool
	key   []byte
	value []byte
}

// Batch is an ordered sequence of put and delete operations that is applied
// atomically by Store.Write.  A Batch is built outside of any store and is
// never modified by one, so it may be written several times and appended to
// after a write.
//
// A Batch is not safe for concurrent use.
type Batch struct {
	ops  []batchOp
	size int
}

// Put appends a put of key/value.  The arguments are copied.
func (b *Batch) Put(key, value []byte) {
	b.ops = append(b.ops, batchOp{
		key:   append([]byte{}, key...),
		value: append([]byte{}, value...),
	})
	b.size += len(key) + len(value)
}

// Delete appends a delete of key.  The argument is copied.
func (b *Batch) Delete(key []byte) {
	b.ops = append(b.ops, batchOp{del: true, key: append([]byte{}, key...)})
	b.size += len(key)
}

// Len returns the number of operations in the batch.
func (b *Batch) Len() int {
	return len(b.ops)
}

// Size returns the total number of key and value bytes in the batch.
func (b *Batch) Size() int {
	return b.size
}

// Reset removes every operation from the batch.
func (b *Batch) Reset() {
	b.ops = b.ops[:0]
	b.size = 0
}

// Replay calls r for every operation in insertion order.
func (b *Batch) Replay(r BatchReplay) {
	for _, op := range b.ops {
		if op.del {
			r.Delete(op.key)
		} else {
			r.Put(op.key, op.value)
		}
	}
}

// Clone returns an independent copy of the batch.  Operation payloads are
// shared since they are never mutated after being appended.
func (b *Batch) Clone() *Batch {
	ops := make([]batchOp, len(b.ops))
	copy(ops, b.ops)
	return &Batch{ops: ops, size: b.size}
}

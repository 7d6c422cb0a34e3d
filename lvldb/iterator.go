// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lvldb

import (
	"fmt"
	"sync"

	"github.com/btcsuite/lvldb/engine"
	"github.com/btcsuite/lvldb/handle"
)

// IteratorState is the position of an iterator.
type IteratorState uint8

// Iterator states.  Released iterators have no state since their handle no
// longer validates.
const (
	// IterUnpositioned is the state of a new iterator.
	IterUnpositioned IteratorState = iota

	// IterValid means the iterator is at an entry.
	IterValid

	// IterInvalid means the iterator moved past either end of the
	// keyspace or hit an error.
	IterInvalid
)

var iterStateStrings = map[IteratorState]string{
	IterUnpositioned: "unpositioned",
	IterValid:        "valid",
	IterInvalid:      "invalid",
}

// String returns the state as a human-readable name.
func (s IteratorState) String() string {
	if str, ok := iterStateStrings[s]; ok {
		return str
	}
	return fmt.Sprintf("Unknown IteratorState (%d)", uint8(s))
}

type iterator struct {
	mtx      sync.Mutex
	db       handle.Handle
	iter     engine.Iterator
	state    IteratorState
	released bool
}

// NewIterator returns a handle to an unpositioned iterator over db.  The
// iterator reads the snapshot selected by ro, or an implicit snapshot of the
// current state.  It must be released with ReleaseIterator.
func (b *Binding) NewIterator(db handle.Handle, ro *ReadOptions) (handle.Handle, error) {
	d, err := b.database(db)
	if err != nil {
		return handle.Handle{}, err
	}
	opts, err := b.readOptions(db, ro)
	if err != nil {
		return handle.Handle{}, err
	}
	it := &iterator{db: db, iter: d.store.NewIterator(opts)}
	h := b.reg.Register(handle.KindIterator, db, it)
	log.Tracef("Created %s of database %s", h, d.id)
	return h, nil
}

// useIterator validates h and calls fn with the iterator locked.
func (b *Binding) useIterator(h handle.Handle, fn func(it *iterator) error) error {
	v, err := b.reg.Validate(h, handle.KindIterator)
	if err != nil {
		return convertHandleErr(err)
	}
	it := v.(*iterator)

	it.mtx.Lock()
	defer it.mtx.Unlock()
	if it.released {
		str := fmt.Sprintf("iterator handle %s has been released", h)
		return makeError(ErrResource, str, nil)
	}
	return fn(it)
}

// move records the outcome of a positioning call.
func (it *iterator) move(op string, ok bool) (bool, error) {
	if ok {
		it.state = IterValid
		return true, nil
	}
	it.state = IterInvalid
	if err := it.iter.Error(); err != nil {
		log.Errorf("Error positioning iterator (%s): %v", op, err)
		return false, makeError(ErrStorage, "iterator "+op+" failed", err)
	}
	return false, nil
}

// positioned returns an error unless the iterator is at an entry.
func (it *iterator) positioned(h handle.Handle, op string) error {
	if it.state == IterValid {
		return nil
	}
	str := fmt.Sprintf("%s called on %s iterator %s", op, it.state, h)
	return makeError(ErrIteratorNotPositioned, str, nil)
}

// SeekToFirst moves h to the first entry and reports whether there is one.
func (b *Binding) SeekToFirst(h handle.Handle) (ok bool, err error) {
	err = b.useIterator(h, func(it *iterator) error {
		ok, err = it.move("seekToFirst", it.iter.First())
		return err
	})
	return ok, err
}

// SeekToLast moves h to the last entry and reports whether there is one.
func (b *Binding) SeekToLast(h handle.Handle) (ok bool, err error) {
	err = b.useIterator(h, func(it *iterator) error {
		ok, err = it.move("seekToLast", it.iter.Last())
		return err
	})
	return ok, err
}

// Seek moves h to the first entry with a key greater than or equal to key
// and reports whether there is one.
func (b *Binding) Seek(h handle.Handle, key []byte) (ok bool, err error) {
	err = b.useIterator(h, func(it *iterator) error {
		ok, err = it.move("seek", it.iter.Seek(key))
		return err
	})
	return ok, err
}

// Next moves h to the following entry.  It is only legal while h is valid.
func (b *Binding) Next(h handle.Handle) (ok bool, err error) {
	err = b.useIterator(h, func(it *iterator) error {
		if err := it.positioned(h, "next"); err != nil {
			return err
		}
		ok, err = it.move("next", it.iter.Next())
		return err
	})
	return ok, err
}

// Prev moves h to the preceding entry.  It is only legal while h is valid.
func (b *Binding) Prev(h handle.Handle) (ok bool, err error) {
	err = b.useIterator(h, func(it *iterator) error {
		if err := it.positioned(h, "prev"); err != nil {
			return err
		}
		ok, err = it.move("prev", it.iter.Prev())
		return err
	})
	return ok, err
}

// Valid reports whether h is positioned at an entry.
func (b *Binding) Valid(h handle.Handle) (valid bool, err error) {
	err = b.useIterator(h, func(it *iterator) error {
		valid = it.state == IterValid
		return nil
	})
	return valid, err
}

// IteratorState returns the current state of h.
func (b *Binding) IteratorState(h handle.Handle) (state IteratorState, err error) {
	err = b.useIterator(h, func(it *iterator) error {
		state = it.state
		return nil
	})
	return state, err
}

// Key returns a copy of the key at the current position of h.
func (b *Binding) Key(h handle.Handle) (key []byte, err error) {
	err = b.useIterator(h, func(it *iterator) error {
		if err := it.positioned(h, "key"); err != nil {
			return err
		}
		key = append([]byte{}, it.iter.Key()...)
		return nil
	})
	return key, err
}

// Value returns a copy of the value at the current position of h.
func (b *Binding) Value(h handle.Handle) (value []byte, err error) {
	err = b.useIterator(h, func(it *iterator) error {
		if err := it.positioned(h, "value"); err != nil {
			return err
		}
		value = append([]byte{}, it.iter.Value()...)
		return nil
	})
	return value, err
}

// ReleaseIterator releases h and the cursor behind it.  Any later use of h,
// including a second release, fails with ErrResource.
func (b *Binding) ReleaseIterator(h handle.Handle) error {
	v, err := b.reg.Release(h, handle.KindIterator)
	if err != nil {
		return convertHandleErr(err)
	}
	it := v.(*iterator)

	it.mtx.Lock()
	it.released = true
	it.iter.Release()
	it.mtx.Unlock()
	log.Tracef("Released %s", h)
	return nil
}

// WithIterator calls fn with a new iterator over db and releases the
// iterator when fn returns or panics.
func (b *Binding) WithIterator(db handle.Handle, ro *ReadOptions, fn func(it handle.Handle) error) (err error) {
	it, err := b.NewIterator(db, ro)
	if err != nil {
		return err
	}
	defer func() {
		rerr := b.ReleaseIterator(it)
		if err == nil {
			err = rerr
		}
	}()
	return fn(it)
}

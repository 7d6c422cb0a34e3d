// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handle

import (
	"fmt"
	"sync"
)

type slot struct {
	gen   uint32
	kind  Kind
	live  bool
	owner Handle
	value interface{}
}

// Registry maps handles to the values they were registered with.  It is safe
// for concurrent use.
type Registry struct {
	mtx   sync.Mutex
	slots []slot
	free  []uint32
	live  int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register records value under a new handle of the given kind.  owner is the
// handle of the resource the new one depends on, typically the database an
// iterator or snapshot was created from, or the zero Handle.
func (r *Registry) Register(kind Kind, owner Handle, value interface{}) Handle {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	var index uint32
	if n := len(r.free); n > 0 {
		index = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		r.slots = append(r.slots, slot{})
		index = uint32(len(r.slots) - 1)
	}

	s := &r.slots[index]
	s.gen++
	s.kind = kind
	s.live = true
	s.owner = owner
	s.value = value
	r.live++

	return Handle{kind: kind, index: index, gen: s.gen}
}

// lookup returns the live slot for h.  The registry lock must be held.
func (r *Registry) lookup(h Handle, kind Kind) (*slot, error) {
	if h.IsZero() {
		str := fmt.Sprintf("'%s' expected, got nil handle", kind)
		return nil, handleError(ErrNilHandle, str)
	}
	if h.kind != kind {
		str := fmt.Sprintf("'%s' expected, got %s handle", kind, h.kind)
		return nil, handleError(ErrWrongKind, str)
	}
	if int(h.index) >= len(r.slots) {
		str := fmt.Sprintf("unknown %s handle %s", kind, h)
		return nil, handleError(ErrUnknownHandle, str)
	}

	s := &r.slots[h.index]
	if s.gen != h.gen || !s.live {
		str := fmt.Sprintf("%s handle %s has been released", kind, h)
		return nil, handleError(ErrReleased, str)
	}
	if s.kind != kind {
		str := fmt.Sprintf("'%s' expected, slot of %s holds %s", kind,
			h, s.kind)
		return nil, handleError(ErrWrongKind, str)
	}
	return s, nil
}

// Validate returns the value registered under h after checking that h is live
// and tagged with the expected kind.  It never takes ownership of the value.
func (r *Registry) Validate(h Handle, kind Kind) (interface{}, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	s, err := r.lookup(h, kind)
	if err != nil {
		return nil, err
	}
	return s.value, nil
}

// Owner returns the owner h was registered with.
func (r *Registry) Owner(h Handle, kind Kind) (Handle, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	s, err := r.lookup(h, kind)
	if err != nil {
		return Handle{}, err
	}
	return s.owner, nil
}

// Release forgets h and returns the value it was registered with.  Any later
// use of h, including a second Release, fails with ErrReleased.
func (r *Registry) Release(h Handle, kind Kind) (interface{}, error) {
	return r.release(h, kind, nil)
}

// ReleaseOwned is like Release but additionally requires h to have been
// registered with the given owner.
func (r *Registry) ReleaseOwned(h Handle, kind Kind, owner Handle) (interface{}, error) {
	return r.release(h, kind, &owner)
}

func (r *Registry) release(h Handle, kind Kind, owner *Handle) (interface{}, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	s, err := r.lookup(h, kind)
	if err != nil {
		return nil, err
	}
	if owner != nil && s.owner != *owner {
		str := fmt.Sprintf("%s handle %s is not owned by %s", kind, h,
			*owner)
		return nil, handleError(ErrNotOwner, str)
	}

	value := s.value
	s.live = false
	s.value = nil
	s.owner = Handle{}
	r.free = append(r.free, h.index)
	r.live--
	return value, nil
}

// Owned returns the live handles registered with the given owner, in slot
// order.
func (r *Registry) Owned(owner Handle) []Handle {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	var owned []Handle
	for i := range r.slots {
		s := &r.slots[i]
		if s.live && s.owner == owner {
			owned = append(owned, Handle{kind: s.kind, index: uint32(i), gen: s.gen})
		}
	}
	return owned
}

// Len returns the number of live handles.
func (r *Registry) Len() int {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return r.live
}

// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lvldb

import (
	"github.com/btcsuite/lvldb/engine"
	"github.com/btcsuite/lvldb/handle"
)

type snapshot struct {
	db   handle.Handle
	snap engine.Snapshot
}

func (b *Binding) snapshot(h handle.Handle) (*snapshot, error) {
	v, err := b.reg.Validate(h, handle.KindSnapshot)
	if err != nil {
		return nil, convertHandleErr(err)
	}
	return v.(*snapshot), nil
}

// GetSnapshot captures the current state of db and returns a snapshot handle
// that can be placed in ReadOptions.Snapshot.  The snapshot must be released
// with ReleaseSnapshot.
func (b *Binding) GetSnapshot(db handle.Handle) (handle.Handle, error) {
	d, err := b.database(db)
	if err != nil {
		return handle.Handle{}, err
	}
	snap, err := d.store.GetSnapshot()
	if err != nil {
		log.Errorf("Error creating snapshot: %v", err)
		return handle.Handle{}, makeError(ErrStorage,
			"unable to create snapshot", err)
	}
	h := b.reg.Register(handle.KindSnapshot, db, &snapshot{db: db, snap: snap})
	log.Tracef("Created %s of database %s", h, d.id)
	return h, nil
}

// ReleaseSnapshot releases snap, which must have been created from db.
// Releasing a snapshot twice, or through another database, is an error.
func (b *Binding) ReleaseSnapshot(db, snap handle.Handle) error {
	d, err := b.database(db)
	if err != nil {
		return err
	}
	v, err := b.reg.ReleaseOwned(snap, handle.KindSnapshot, db)
	if err != nil {
		return convertHandleErr(err)
	}
	d.store.ReleaseSnapshot(v.(*snapshot).snap)
	log.Tracef("Released %s of database %s", snap, d.id)
	return nil
}

// SnapshotDatabase returns the database snap was created from.
func (b *Binding) SnapshotDatabase(snap handle.Handle) (handle.Handle, error) {
	s, err := b.snapshot(snap)
	if err != nil {
		return handle.Handle{}, err
	}
	return s.db, nil
}

// WithSnapshot calls fn with a snapshot of db and releases the snapshot when
// fn returns or panics.
func (b *Binding) WithSnapshot(db handle.Handle, fn func(snap handle.Handle) error) (err error) {
	snap, err := b.GetSnapshot(db)
	if err != nil {
		return err
	}
	defer func() {
		rerr := b.ReleaseSnapshot(db, snap)
		if err == nil {
			err = rerr
		}
	}()
	return fn(snap)
}

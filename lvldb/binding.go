// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lvldb

import (
	"fmt"
	"strings"

	"github.com/btcsuite/lvldb/engine"
	"github.com/btcsuite/lvldb/handle"
	"github.com/google/uuid"
)

// Config holds the settings of a Binding.
type Config struct {
	// StrictRelease makes Detach fail with ErrHandleLeak when iterators
	// or snapshots created from the database are still outstanding.  When
	// false the leaks are logged and released.
	StrictRelease bool
}

// DefaultConfig returns the configuration used when New is passed nil.
func DefaultConfig() *Config {
	return &Config{}
}

// database is the value registered under a database handle.
type database struct {
	id    uuid.UUID
	name  string
	store engine.Store
}

// Binding tracks the handles given out to a host.  It is safe for concurrent
// use.
type Binding struct {
	reg *handle.Registry
	cfg Config
}

// New returns a Binding with no attached databases.
func New(cfg *Config) *Binding {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Binding{
		reg: handle.NewRegistry(),
		cfg: *cfg,
	}
}

// Attach registers store and returns the database handle used to reach it.
// name is only used for diagnostics.  The binding does not take ownership of
// the store.
func (b *Binding) Attach(store engine.Store, name string) handle.Handle {
	d := &database{id: uuid.New(), name: name, store: store}
	h := b.reg.Register(handle.KindDatabase, handle.Handle{}, d)
	log.Debugf("Attached database %s (%s) as %s", name, d.id, h)
	return h
}

func (b *Binding) database(db handle.Handle) (*database, error) {
	v, err := b.reg.Validate(db, handle.KindDatabase)
	if err != nil {
		return nil, convertHandleErr(err)
	}
	return v.(*database), nil
}

// ID returns the instance identifier assigned to db when it was attached.
func (b *Binding) ID(db handle.Handle) (uuid.UUID, error) {
	d, err := b.database(db)
	if err != nil {
		return uuid.Nil, err
	}
	return d.id, nil
}

// Detach forgets db and returns the store it referred to so the caller can
// close it.  Iterators and snapshots created from db that are still
// outstanding are leaks.  With StrictRelease, Detach fails with ErrHandleLeak
// and leaves everything registered; otherwise each leak is logged and
// released before db is forgotten.
func (b *Binding) Detach(db handle.Handle) (engine.Store, error) {
	return b.detach(db, b.cfg.StrictRelease)
}

func (b *Binding) detach(db handle.Handle, strict bool) (engine.Store, error) {
	d, err := b.database(db)
	if err != nil {
		return nil, err
	}

	leaks := b.reg.Owned(db)
	if len(leaks) > 0 && strict {
		names := make([]string, 0, len(leaks))
		for _, h := range leaks {
			names = append(names, h.String())
		}
		str := fmt.Sprintf("database %s has %d outstanding handles: %s",
			d.id, len(leaks), strings.Join(names, ", "))
		return nil, makeError(ErrHandleLeak, str, nil)
	}
	for _, h := range leaks {
		log.Warnf("Releasing leaked %s handle %s of database %s", h.Kind(),
			h, d.id)
		switch h.Kind() {
		case handle.KindIterator:
			err = b.ReleaseIterator(h)
		case handle.KindSnapshot:
			err = b.ReleaseSnapshot(db, h)
		}
		if err != nil {
			log.Errorf("Unable to release %s: %v", h, err)
		}
	}

	if _, err := b.reg.Release(db, handle.KindDatabase); err != nil {
		return nil, convertHandleErr(err)
	}
	log.Debugf("Detached database %s (%s)", d.name, d.id)
	return d.store, nil
}

// Close releases every batch and detaches every database still registered,
// releasing their outstanding iterators and snapshots regardless of
// StrictRelease.  The detached stores are returned so the caller can close
// them.
func (b *Binding) Close() []engine.Store {
	var stores []engine.Store
	for _, h := range b.reg.Owned(handle.Handle{}) {
		switch h.Kind() {
		case handle.KindDatabase:
			store, err := b.detach(h, false)
			if err != nil {
				log.Errorf("Unable to detach %s: %v", h, err)
				continue
			}
			stores = append(stores, store)
		case handle.KindBatch:
			if err := b.ReleaseBatch(h); err != nil {
				log.Errorf("Unable to release %s: %v", h, err)
			}
		}
	}
	return stores
}

// Outstanding returns the number of live handles of every kind.
func (b *Binding) Outstanding() int {
	return b.reg.Len()
}

// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package leveldb

import (
	"errors"

	"github.com/btcsuite/lvldb/engine"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

const dbType = "leveldb"

func init() {
	driver := engine.Driver{
		DbType: dbType,
		Open:   NewDB,
		Repair: Repair,
	}
	if err := engine.RegisterDriver(driver); err != nil {
		panic(err)
	}
}

// NewDB opens the goleveldb database at dbPath.
func NewDB(dbPath string, o *engine.OpenOptions) (engine.Store, error) {
	if o == nil {
		o = engine.DefaultOpenOptions()
	}
	opts := opt.Options{
		ErrorIfMissing:         !o.CreateIfMissing,
		ErrorIfExist:           o.ErrorIfExists,
		WriteBuffer:            o.WriteBufferSize,
		BlockSize:              o.BlockSize,
		BlockCacheCapacity:     o.CacheSize,
		OpenFilesCacheCapacity: o.MaxOpenFiles,
		Compression:            opt.SnappyCompression,
	}
	if !o.Compression {
		opts.Compression = opt.NoCompression
	}
	if o.ParanoidChecks {
		opts.Strict = opt.StrictAll
	} else {
		opts.Strict = opt.DefaultStrict
	}
	if o.BloomFilterBits > 0 {
		opts.Filter = filter.NewBloomFilter(o.BloomFilterBits)
	}

	ldb, err := leveldb.OpenFile(dbPath, &opts)
	if err != nil {
		return nil, err
	}
	return &DB{DB: ldb}, nil
}

// Repair recovers a corrupted database at dbPath by rebuilding its manifest
// from the table files present.
func Repair(dbPath string) error {
	ldb, err := leveldb.RecoverFile(dbPath, nil)
	if err != nil {
		return err
	}
	return ldb.Close()
}

// DB is an engine.Store backed by goleveldb.
type DB struct {
	*leveldb.DB
}

// convertErr maps goleveldb sentinel errors onto the engine ones.
func convertErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, leveldb.ErrNotFound):
		return engine.ErrNotFound
	case errors.Is(err, leveldb.ErrClosed):
		return engine.ErrClosed
	case errors.Is(err, leveldb.ErrSnapshotReleased):
		return engine.ErrSnapshotReleased
	}
	return err
}

func readOptions(ro *engine.ReadOptions) *opt.ReadOptions {
	ro = engine.ReadOpts(ro)
	o := &opt.ReadOptions{DontFillCache: !ro.FillCache}
	if ro.VerifyChecksums {
		o.Strict = opt.StrictBlockChecksum
	}
	return o
}

func writeOptions(wo *engine.WriteOptions) *opt.WriteOptions {
	return &opt.WriteOptions{Sync: engine.WriteOpts(wo).Sync}
}

// snapshotOf returns the goleveldb snapshot selected by ro, if any.
func snapshotOf(ro *engine.ReadOptions) (*Snapshot, error) {
	if ro == nil || ro.Snapshot == nil {
		return nil, nil
	}
	s, ok := ro.Snapshot.(*Snapshot)
	if !ok {
		return nil, engine.ErrForeignSnapshot
	}
	return s, nil
}

func (d *DB) Get(key []byte, ro *engine.ReadOptions) ([]byte, error) {
	snap, err := snapshotOf(ro)
	if err != nil {
		return nil, err
	}
	if snap != nil {
		return snap.Get(key, ro)
	}
	val, err := d.DB.Get(key, readOptions(ro))
	return val, convertErr(err)
}

func (d *DB) Put(key, value []byte, wo *engine.WriteOptions) error {
	return convertErr(d.DB.Put(key, value, writeOptions(wo)))
}

func (d *DB) Delete(key []byte, wo *engine.WriteOptions) error {
	return convertErr(d.DB.Delete(key, writeOptions(wo)))
}

func (d *DB) Write(batch *engine.Batch, wo *engine.WriteOptions) error {
	b := new(leveldb.Batch)
	batch.Replay(b)
	return convertErr(d.DB.Write(b, writeOptions(wo)))
}

func (d *DB) NewIterator(ro *engine.ReadOptions) engine.Iterator {
	snap, err := snapshotOf(ro)
	if err != nil {
		return engine.NewEmptyIterator(err)
	}
	if snap != nil {
		return snap.NewIterator(ro)
	}
	return newIterator(d.DB.NewIterator(nil, readOptions(ro)))
}

func (d *DB) GetSnapshot() (engine.Snapshot, error) {
	snapshot, err := d.DB.GetSnapshot()
	if err != nil {
		return nil, convertErr(err)
	}
	return NewSnapshot(snapshot), nil
}

func (d *DB) ReleaseSnapshot(snapshot engine.Snapshot) {
	if snapshot != nil {
		snapshot.Release()
	}
}

func (d *DB) Close() error {
	return convertErr(d.DB.Close())
}

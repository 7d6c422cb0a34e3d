package pebbledb

import (
	"errors"
	"io"
	"runtime"
	"sync/atomic"

	"github.com/btcsuite/lvldb/engine"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"
)

const dbType = "pebbledb"

const (
	DefaultCache   = 64
	DefaultHandles = 16
)

func init() {
	driver := engine.Driver{
		DbType: dbType,
		Open:   NewDB,
	}
	if err := engine.RegisterDriver(driver); err != nil {
		panic(err)
	}
}

// NewDB opens the pebble database at dbPath.  CacheSize and MaxOpenFiles
// default to DefaultCache MiB and DefaultHandles.  ParanoidChecks has no pebble
// equivalent and is ignored.
func NewDB(dbPath string, o *engine.OpenOptions) (engine.Store, error) {
	if o == nil {
		o = engine.DefaultOpenOptions()
	}
	cache := int64(o.CacheSize)
	if cache <= 0 {
		cache = DefaultCache * 1024 * 1024
	}
	handles := o.MaxOpenFiles
	if handles <= 0 {
		handles = DefaultHandles
	}

	compression := pebble.SnappyCompression
	if !o.Compression {
		compression = pebble.NoCompression
	}
	var filter pebble.FilterPolicy
	if o.BloomFilterBits > 0 {
		filter = bloom.FilterPolicy(o.BloomFilterBits)
	}
	levels := make([]pebble.LevelOptions, 7)
	for i := range levels {
		levels[i] = pebble.LevelOptions{
			BlockSize:      o.BlockSize,
			Compression:    compression,
			FilterPolicy:   filter,
			TargetFileSize: int64(2*1024*1024) << i,
		}
	}

	c := pebble.NewCache(cache)
	defer c.Unref()

	opts := &pebble.Options{
		Cache:                    c,
		ErrorIfExists:            o.ErrorIfExists,
		ErrorIfNotExists:         !o.CreateIfMissing,
		MaxOpenFiles:             handles,
		MaxConcurrentCompactions: runtime.NumCPU,
		Levels:                   levels,
	}
	if o.WriteBufferSize > 0 {
		opts.MemTableSize = uint64(o.WriteBufferSize)
	}
	opts.Experimental.ReadSamplingMultiplier = -1

	dbEngine, err := pebble.Open(dbPath, opts)
	if err != nil {
		return nil, err
	}

	return &DB{db: dbEngine}, nil
}

// DB is an engine.Store backed by pebble.
type DB struct {
	db *pebble.DB

	closed atomic.Bool
}

// Set closed flag; return true if not already closed.
func (d *DB) setClosed() bool {
	return !d.closed.Swap(true)
}

// Check whether DB was closed.
func (d *DB) isClosed() bool {
	return d.closed.Load()
}

func writeOptions(wo *engine.WriteOptions) *pebble.WriteOptions {
	if engine.WriteOpts(wo).Sync {
		return pebble.Sync
	}
	return pebble.NoSync
}

// snapshotOf returns the pebble snapshot selected by ro, if any.
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

// reader is satisfied by both *pebble.DB and *pebble.Snapshot.
type reader interface {
	Get(key []byte) ([]byte, io.Closer, error)
	NewIter(o *pebble.IterOptions) (*pebble.Iterator, error)
}

func get(r reader, key []byte) ([]byte, error) {
	ori, closer, err := r.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, engine.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	defer closer.Close()

	val := make([]byte, len(ori))
	copy(val, ori)
	return val, nil
}

func newIter(r reader) engine.Iterator {
	iter, err := r.NewIter(nil)
	if err != nil {
		return engine.NewEmptyIterator(err)
	}
	return NewIterator(iter)
}

func (d *DB) Get(key []byte, ro *engine.ReadOptions) ([]byte, error) {
	if d.isClosed() {
		return nil, engine.ErrClosed
	}
	snap, err := snapshotOf(ro)
	if err != nil {
		return nil, err
	}
	if snap != nil {
		return snap.Get(key, ro)
	}
	return get(d.db, key)
}

func (d *DB) Put(key, value []byte, wo *engine.WriteOptions) error {
	if d.isClosed() {
		return engine.ErrClosed
	}
	return d.db.Set(key, value, writeOptions(wo))
}

func (d *DB) Delete(key []byte, wo *engine.WriteOptions) error {
	if d.isClosed() {
		return engine.ErrClosed
	}
	return d.db.Delete(key, writeOptions(wo))
}

// batchReplay copies an engine.Batch into a pebble batch, keeping the first
// error.
type batchReplay struct {
	batch *pebble.Batch
	err   error
}

func (r *batchReplay) Put(key, value []byte) {
	if r.err == nil {
		r.err = r.batch.Set(key, value, nil)
	}
}

func (r *batchReplay) Delete(key []byte) {
	if r.err == nil {
		r.err = r.batch.Delete(key, nil)
	}
}

func (d *DB) Write(batch *engine.Batch, wo *engine.WriteOptions) error {
	if d.isClosed() {
		return engine.ErrClosed
	}
	b := d.db.NewBatch()
	defer b.Close()

	replay := &batchReplay{batch: b}
	batch.Replay(replay)
	if replay.err != nil {
		return replay.err
	}
	return d.db.Apply(b, writeOptions(wo))
}

func (d *DB) NewIterator(ro *engine.ReadOptions) engine.Iterator {
	if d.isClosed() {
		return engine.NewEmptyIterator(engine.ErrClosed)
	}
	snap, err := snapshotOf(ro)
	if err != nil {
		return engine.NewEmptyIterator(err)
	}
	if snap != nil {
		return snap.NewIterator(ro)
	}
	return newIter(d.db)
}

func (d *DB) GetSnapshot() (engine.Snapshot, error) {
	if d.isClosed() {
		return nil, engine.ErrClosed
	}
	return NewSnapshot(d.db.NewSnapshot()), nil
}

func (d *DB) ReleaseSnapshot(snapshot engine.Snapshot) {
	if snapshot != nil {
		snapshot.Release()
	}
}

func (d *DB) Close() error {
	if !d.setClosed() {
		return engine.ErrClosed
	}
	return d.db.Close()
}

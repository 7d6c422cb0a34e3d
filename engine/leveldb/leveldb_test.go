package leveldb

import (
	"path/filepath"
	"testing"

	"github.com/btcsuite/lvldb/engine"
	"github.com/stretchr/testify/require"
)

func TestSuiteLevelDB(t *testing.T) {
	engine.TestSuiteStore(t, func() engine.Store {
		dbPath := filepath.Join(t.TempDir(), "leveldb-testsuite")

		leveldb, err := NewDB(dbPath, nil)
		require.NoErrorf(t, err, "failed to create leveldb")
		return leveldb
	})
}

func TestOpenOptions(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "leveldb-options")

	// Opening without CreateIfMissing must not create the database.
	_, err := NewDB(dbPath, &engine.OpenOptions{CreateIfMissing: false})
	require.Error(t, err, "expected error opening a missing database")

	db, err := engine.Open(dbType, dbPath, &engine.OpenOptions{
		CreateIfMissing: true,
		BloomFilterBits: 10,
		ParanoidChecks:  true,
	})
	require.NoError(t, err)
	require.NoError(t, db.Put([]byte("k"), []byte("v"), &engine.WriteOptions{Sync: true}))
	require.NoError(t, db.Close())

	_, err = NewDB(dbPath, &engine.OpenOptions{CreateIfMissing: true, ErrorIfExists: true})
	require.Error(t, err, "expected error opening an existing database with errorIfExists")

	require.NoError(t, engine.Repair(dbType, dbPath))

	db, err = NewDB(dbPath, nil)
	require.NoError(t, err)
	defer db.Close()

	got, err := db.Get([]byte("k"), &engine.ReadOptions{VerifyChecksums: true})
	require.NoError(t, err)
	require.Equal(t, []byte("v"), got)
}

func TestForeignSnapshot(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "leveldb-foreign"), nil)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Get([]byte("k"), &engine.ReadOptions{Snapshot: foreignSnapshot{}})
	require.ErrorIs(t, err, engine.ErrForeignSnapshot)
}

type foreignSnapshot struct{}

func (foreignSnapshot) Get([]byte, *engine.ReadOptions) ([]byte, error)  { return nil, nil }
func (foreignSnapshot) Has([]byte, *engine.ReadOptions) (bool, error)    { return false, nil }
func (foreignSnapshot) NewIterator(*engine.ReadOptions) engine.Iterator { return nil }
func (foreignSnapshot) Release()                                        {}

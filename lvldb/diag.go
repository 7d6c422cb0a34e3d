// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lvldb

import (
	"bytes"

	"github.com/btcsuite/lvldb/handle"
)

// scanMissKey is the key ScanStoreValue writes to on a miss.
var scanMissKey = []byte("0")

// ScanStoreValue is a diagnostic helper.  It walks db from the last entry
// backwards looking for an entry whose value equals value and reports whether
// one was found.  On a miss it stores value under the key "0", overwriting
// whatever was there.  It is not meant for use outside of debugging.
func (b *Binding) ScanStoreValue(db handle.Handle, value []byte, ro *ReadOptions) (bool, error) {
	found := false
	var scanned int
	err := b.WithIterator(db, ro, func(it handle.Handle) error {
		ok, err := b.SeekToLast(it)
		for ; ok && err == nil; ok, err = b.Prev(it) {
			v, verr := b.Value(it)
			if verr != nil {
				return verr
			}
			if bytes.Equal(v, value) {
				found = true
				return nil
			}
			scanned++
		}
		if err != nil {
			return fatal("scan", err)
		}
		return nil
	})
	if err != nil || found {
		return found, err
	}

	log.Warnf("Value not found after scanning %d entries, overwriting "+
		"key %q", scanned, scanMissKey)
	if err := b.Put(db, scanMissKey, value, nil); err != nil {
		return false, err
	}
	return false, nil
}

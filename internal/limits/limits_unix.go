// Copyright (c) 2013-2014 Conformal Systems LLC.
// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:build !windows && !plan9

package limits

import (
	"fmt"
	"syscall"
)

// goleveldb keeps up to 500 table files open by default and pebble grows its
// table cache on demand, so ask for headroom above that.
const (
	fileLimitWant = 2048
	fileLimitMin  = 1024
)

// SetLimits raises the open file limit of the process so the storage engines
// can keep their table files open.
func SetLimits() error {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		return err
	}
	if rLimit.Cur > fileLimitWant {
		return nil
	}
	if rLimit.Max < fileLimitMin {
		return fmt.Errorf("need at least %v file descriptors",
			fileLimitMin)
	}

	rLimit.Cur = fileLimitWant
	if rLimit.Max < fileLimitWant {
		rLimit.Cur = rLimit.Max
	}
	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		rLimit.Cur = fileLimitMin
		return syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	}
	return nil
}

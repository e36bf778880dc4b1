// Copyright 2026 The Aligned Memory Battle Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

//go:build !cgo && unix

package manual

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

const sysAllocEnabled = true

func sysAlloc(n uintptr) Buf {
	b, err := unix.Mmap(-1, 0, int(n),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return Buf{}
	}
	return Buf{data: unsafe.Pointer(&b[0]), n: n}
}

func sysFree(b Buf) {
	// Munmap only looks at the slice's address and length; Slice reproduces
	// exactly the mapping returned by sysAlloc.
	_ = unix.Munmap(b.Slice())
}

// Copyright 2026 The Aligned Memory Battle Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

//go:build !cgo

package aligned

import (
	"sync"
	"unsafe"
)

// Provides versions of PlatformAlloc and PlatformFree when cgo is not
// available (e.g. cross compilation). An aligned region is carved out of an
// over-allocated Go slice, and the slice is pinned until PlatformFree so the
// garbage collector does not reclaim it.

var platformAllocs struct {
	sync.Mutex
	m map[unsafe.Pointer][]byte
}

// PlatformAlloc allocates size bytes aligned to alignment. alignment must be
// a non-zero power of two. The returned pointer MUST be released with
// PlatformFree.
func PlatformAlloc(size, alignment uintptr) (unsafe.Pointer, error) {
	if err := checkRequest(size, alignment); err != nil {
		return nil, err
	}
	buf := ByteSlice(int(size + alignment))
	base := uintptr(unsafe.Pointer(&buf[0]))
	off := (base+alignment-1)&^(alignment-1) - base
	p := unsafe.Pointer(&buf[off])

	platformAllocs.Lock()
	if platformAllocs.m == nil {
		platformAllocs.m = make(map[unsafe.Pointer][]byte)
	}
	platformAllocs.m[p] = buf
	platformAllocs.Unlock()
	return p, nil
}

// PlatformFree releases a pointer returned by PlatformAlloc. Free of a nil
// pointer is a no-op.
func PlatformFree(p unsafe.Pointer) {
	if p == nil {
		return
	}
	platformAllocs.Lock()
	delete(platformAllocs.m, p)
	platformAllocs.Unlock()
}

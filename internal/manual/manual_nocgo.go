// Copyright 2026 The Aligned Memory Battle Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

//go:build !cgo

package manual

import (
	"math/bits"
	"sync"
	"unsafe"

	"github.com/adelcor/aligned-memory-battle/internal/invariants"
)

// Provides versions of New and Free when cgo is not available (e.g. cross
// compilation). Small allocations are served from size-classed pools; large
// allocations are mapped directly from the OS where supported, so that Free
// returns the memory immediately instead of parking megabyte buffers in a
// sync.Pool.

const sysAllocThreshold = 1 << 20

// New allocates a buffer of size n. The returned buffer MUST be released by
// calling Free. A zero Buf is returned if the underlying allocation fails or
// n exceeds MaxArrayLen.
func New(purpose Purpose, n uintptr) Buf {
	if n == 0 || n > MaxArrayLen {
		return Buf{}
	}
	if sysAllocEnabled && n >= sysAllocThreshold {
		b := sysAlloc(n)
		if b.data != nil {
			recordAlloc(purpose, n)
		}
		return b
	}
	recordAlloc(purpose, n)
	return Buf{
		data: pools[sizeClass(n)].Get().(unsafe.Pointer),
		n:    n,
	}
}

// Free frees the specified buffer. It has to be exactly the buffer that was
// returned by New.
func Free(purpose Purpose, b Buf) {
	if b.data == nil {
		return
	}
	invariants.MaybeMangle(b.Slice())
	recordFree(purpose, b.n)
	if sysAllocEnabled && b.n >= sysAllocThreshold {
		sysFree(b)
		return
	}
	pools[sizeClass(b.n)].Put(b.data)
}

var pools = mkPools() // pools[n] is for allocs of size 1 << n

func mkPools() [bits.UintSize]sync.Pool {
	var pools [bits.UintSize]sync.Pool
	for i := range pools {
		pools[i].New = func() any {
			return unsafe.Pointer(unsafe.SliceData(make([]byte, 1<<i)))
		}
	}
	return pools
}

// sizeClass determines the smallest n such that 1 << n >= size
func sizeClass(size uintptr) int {
	return bits.UintSize - bits.LeadingZeros(uint(size-1))
}

// Copyright 2026 The Aligned Memory Battle Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package aligned implements an aligned allocator on top of manually managed
// memory. An allocation reserves extra bytes from the manual allocator,
// rounds the raw address up to the requested alignment, and hides a header
// immediately before the aligned address so that Free can recover the raw
// buffer.
package aligned

import (
	"fmt"
	"unsafe"

	"github.com/adelcor/aligned-memory-battle/internal/invariants"
	"github.com/adelcor/aligned-memory-battle/internal/manual"
	"github.com/cockroachdb/errors"
)

// ErrOutOfMemory is returned by Alloc and PlatformAlloc when the underlying
// allocator cannot satisfy the request.
var ErrOutOfMemory = errors.New("aligned: out of memory")

// The header occupies the two words immediately preceding the address
// returned by Alloc: the raw allocation's address and its length. The length
// word is what lets Free hand the exact buffer back to the manual allocator.
const headerSize = 2 * unsafe.Sizeof(uintptr(0))

// Alloc returns a pointer to size bytes whose address is a multiple of
// alignment. alignment must be a non-zero power of two. The returned pointer
// MUST be released with Free; failing to do so leaks manually managed
// memory. The size bytes available to the caller never overlap the header.
func Alloc(size, alignment uintptr) (unsafe.Pointer, error) {
	if err := checkRequest(size, alignment); err != nil {
		return nil, err
	}
	// Alignments smaller than a word are widened so the header words are
	// themselves word-aligned. Any multiple of the widened alignment is still
	// a multiple of the requested one.
	a := max(alignment, unsafe.Sizeof(uintptr(0)))

	// Reserving a+headerSize extra bytes guarantees that an aligned address
	// with room for the header exists strictly inside the raw buffer, no
	// matter how the raw buffer itself is aligned.
	raw := manual.New(manual.AlignedBlock, size+a+headerSize)
	if raw.Data() == nil {
		return nil, ErrOutOfMemory
	}
	addr := (uintptr(raw.Data()) + a + headerSize) &^ (a - 1)
	if invariants.Sometimes(10) {
		if addr%alignment != 0 || addr-headerSize < uintptr(raw.Data()) {
			panic(errors.AssertionFailedf(
				"aligned: address %#x does not fit raw block %#x (alignment %d)",
				addr, uintptr(raw.Data()), alignment))
		}
	}
	hdr := (*[2]uintptr)(unsafe.Pointer(addr - headerSize))
	hdr[0] = uintptr(raw.Data())
	hdr[1] = raw.Len()
	return unsafe.Pointer(addr), nil
}

// Free releases a pointer returned by Alloc. Free of a nil pointer is a
// no-op. Passing any other pointer corrupts the allocator and is likely to
// crash the process.
func Free(p unsafe.Pointer) {
	if p == nil {
		return
	}
	// p is an interior pointer into the raw buffer, so the buffer stays live
	// while the header words are decoded.
	hdr := (*[2]uintptr)(unsafe.Pointer(uintptr(p) - headerSize))
	manual.Free(manual.AlignedBlock, manual.MakeBuf(unsafe.Pointer(hdr[0]), hdr[1]))
}

func checkRequest(size, alignment uintptr) error {
	if size == 0 {
		return errors.New("aligned: zero size")
	}
	if alignment == 0 || alignment&(alignment-1) != 0 {
		return errors.Newf("aligned: alignment %d is not a power of two", alignment)
	}
	return nil
}

// ByteSlice allocates a new byte slice of length n, ensuring the address of
// the beginning of the slice is word aligned. Go does not guarantee that a
// simple make([]byte, n) is aligned. In practice it often is, especially for
// larger n, but small n can often be misaligned.
func ByteSlice(n int) []byte {
	a := make([]uint64, (n+7)/8)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&a[0])), n)

	// Verify alignment.
	ptr := uintptr(unsafe.Pointer(&b[0]))
	if ptr%unsafe.Sizeof(int(0)) != 0 {
		panic(fmt.Sprintf("allocated []uint64 slice not %d-aligned: pointer %p", unsafe.Sizeof(int(0)), &b[0]))
	}
	return b
}

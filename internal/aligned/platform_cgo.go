// Copyright 2026 The Aligned Memory Battle Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

//go:build cgo

package aligned

// #include <stdlib.h>
import "C"
import "unsafe"

// PlatformAlloc allocates size bytes aligned to alignment using the C
// library's aligned_alloc. alignment must be a non-zero power of two. C11
// requires the size to be a multiple of the alignment, so it is rounded up
// before the call. The returned pointer MUST be released with PlatformFree.
func PlatformAlloc(size, alignment uintptr) (unsafe.Pointer, error) {
	if err := checkRequest(size, alignment); err != nil {
		return nil, err
	}
	n := (size + alignment - 1) &^ (alignment - 1)
	ptr := C.aligned_alloc(C.size_t(alignment), C.size_t(n))
	if ptr == nil {
		return nil, ErrOutOfMemory
	}
	return ptr, nil
}

// PlatformFree releases a pointer returned by PlatformAlloc. Free of a nil
// pointer is a no-op.
func PlatformFree(p unsafe.Pointer) {
	if p != nil {
		C.free(p)
	}
}

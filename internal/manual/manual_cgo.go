// Copyright 2026 The Aligned Memory Battle Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

//go:build cgo

package manual

// #include <stdlib.h>
import "C"
import (
	"github.com/adelcor/aligned-memory-battle/internal/invariants"
)

// New allocates a buffer of size n. The returned buffer is from manually
// managed memory and MUST be released by calling Free. Failure to do so will
// result in a memory leak. A zero Buf is returned if the underlying
// allocation fails or n exceeds MaxArrayLen.
func New(purpose Purpose, n uintptr) Buf {
	if n == 0 || n > MaxArrayLen {
		return Buf{}
	}
	// We need to be conscious of the Cgo pointer passing rules:
	//
	//   https://golang.org/cmd/cgo/#hdr-Passing_pointers
	//
	// Writing Go pointers into uninitialized C memory can trip the runtime's
	// pointer checks, so the memory is zeroed in C before it becomes visible
	// to Go.
	ptr := C.calloc(C.size_t(n), 1)
	if ptr == nil {
		return Buf{}
	}
	recordAlloc(purpose, n)
	return Buf{data: ptr, n: n}
}

// Free frees the specified buffer. It has to be exactly the buffer that was
// returned by New.
func Free(purpose Purpose, b Buf) {
	if b.data == nil {
		return
	}
	invariants.MaybeMangle(b.Slice())
	recordFree(purpose, b.n)
	C.free(b.data)
}

// Copyright 2026 The Aligned Memory Battle Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package manual provides a generic byte allocator whose memory is not
// managed by the Go garbage collector. On cgo builds the memory comes from
// the C heap; otherwise it is served from size-classed pools.
package manual

import (
	"sync/atomic"
	"unsafe"
)

// Purpose identifies the use-case for an allocation.
type Purpose uint8

const (
	_ Purpose = iota

	AlignedBlock
	BenchScratch

	NumPurposes
)

// Buf is a chunk of manually managed memory. The zero Buf represents a
// failed or empty allocation.
type Buf struct {
	data unsafe.Pointer
	n    uintptr
}

// MakeBuf reconstitutes a Buf from a pointer and length previously obtained
// through Data and Len. The pair must describe exactly one allocation
// returned by New.
func MakeBuf(data unsafe.Pointer, n uintptr) Buf {
	return Buf{data: data, n: n}
}

// Data returns the start of the buffer, or nil for the zero Buf.
func (b Buf) Data() unsafe.Pointer { return b.data }

// Len returns the length of the buffer in bytes.
func (b Buf) Len() uintptr { return b.n }

// Slice returns the buffer's contents as a byte slice.
func (b Buf) Slice() []byte {
	if b.data == nil {
		return nil
	}
	return unsafe.Slice((*byte)(b.data), b.n)
}

// Metrics contains memory statistics by purpose.
type Metrics [NumPurposes]struct {
	// InUseBytes is the total number of bytes currently allocated. This is just
	// the sum of the lengths of the allocations and does not include any
	// overhead or fragmentation.
	InUseBytes uint64

	// TotalBytes is the total cumulative number of bytes allocated since the
	// process started. This is just the sum of the lengths of the allocations
	// and does not include any overhead or fragmentation.
	TotalBytes uint64
}

var counters [NumPurposes]struct {
	TotalAllocated atomic.Uint64
	TotalFreed     atomic.Uint64
	// Pad to separate counters into cache lines. This reduces the overhead when
	// multiple purposes are used frequently. We assume 64 byte cache line size
	// which is the case for ARM64 servers and AMD64.
	_ [6]uint64
}

func recordAlloc(purpose Purpose, n uintptr) {
	counters[purpose].TotalAllocated.Add(uint64(n))
}

func recordFree(purpose Purpose, n uintptr) {
	counters[purpose].TotalFreed.Add(uint64(n))
}

// GetMetrics returns manual memory usage statistics.
func GetMetrics() Metrics {
	var res Metrics
	for i := range res {
		res[i].TotalBytes = counters[i].TotalAllocated.Load()
		res[i].InUseBytes = res[i].TotalBytes - counters[i].TotalFreed.Load()
	}
	return res
}

// Copyright 2026 The Aligned Memory Battle Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package aligned

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"unsafe"

	"github.com/adelcor/aligned-memory-battle/internal/manual"
	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"
)

func TestAllocAlignment(t *testing.T) {
	sizes := []uintptr{1, 8, 64, 128, 256, 1024, 1 << 20}
	alignments := []uintptr{2, 8, 16, 32, 64, 4096}
	for _, size := range sizes {
		for _, alignment := range alignments {
			t.Run(fmt.Sprintf("size=%d,align=%d", size, alignment), func(t *testing.T) {
				p, err := Alloc(size, alignment)
				require.NoError(t, err)
				require.Zero(t, uintptr(p)%alignment)

				// The caller may use all size bytes.
				s := unsafe.Slice((*byte)(p), size)
				for i := range s {
					s[i] = byte(i)
				}
				Free(p)
			})
		}
	}
}

func TestAllocMinimal(t *testing.T) {
	p, err := Alloc(1, 2)
	require.NoError(t, err)
	require.Zero(t, uintptr(p)%2)
	*(*byte)(p) = 0xFF
	Free(p)
}

func TestAllocInvalid(t *testing.T) {
	_, err := Alloc(0, 16)
	require.Error(t, err)

	for _, alignment := range []uintptr{0, 3, 24, 100} {
		_, err := Alloc(64, alignment)
		require.Error(t, err, "alignment %d", alignment)
	}
}

func TestFreeNil(t *testing.T) {
	Free(nil)
	PlatformFree(nil)
}

func TestHeaderIsolation(t *testing.T) {
	const size = 64
	p, err := Alloc(size, 16)
	require.NoError(t, err)

	hdr := (*[2]uintptr)(unsafe.Pointer(uintptr(p) - headerSize))
	raw, rawLen := hdr[0], hdr[1]
	require.NotZero(t, raw)
	require.EqualValues(t, size+16+headerSize, rawLen)

	// Writing all size bytes must not touch the header.
	s := unsafe.Slice((*byte)(p), size)
	for i := range s {
		s[i] = 0xFF
	}
	require.Equal(t, raw, hdr[0])
	require.Equal(t, rawLen, hdr[1])
	Free(p)
}

// TestRoundTrip checks that releasing one allocation leaves the contents of
// every other outstanding allocation untouched.
func TestRoundTrip(t *testing.T) {
	const n = 32
	const size = 1024

	rng := rand.New(rand.NewPCG(0, uint64(n)))
	ptrs := make([]unsafe.Pointer, n)
	sums := make([]uint64, n)
	for i := range ptrs {
		p, err := Alloc(size, 64)
		require.NoError(t, err)
		s := unsafe.Slice((*byte)(p), size)
		for j := range s {
			s[j] = byte(rng.Uint32())
		}
		ptrs[i] = p
		sums[i] = xxhash.Sum64(s)
	}

	// Free every other allocation, then verify the fingerprints of the
	// survivors.
	for i := 0; i < n; i += 2 {
		Free(ptrs[i])
	}
	for i := 1; i < n; i += 2 {
		s := unsafe.Slice((*byte)(ptrs[i]), size)
		require.Equal(t, sums[i], xxhash.Sum64(s), "allocation %d corrupted", i)
		Free(ptrs[i])
	}
}

func TestNoLeaks(t *testing.T) {
	before := manual.GetMetrics()
	for i := 0; i < 1000; i++ {
		p, err := Alloc(1024, 64)
		require.NoError(t, err)
		Free(p)
	}
	after := manual.GetMetrics()
	require.Equal(t, before[manual.AlignedBlock].InUseBytes, after[manual.AlignedBlock].InUseBytes)
}

func TestPlatformAlloc(t *testing.T) {
	for _, alignment := range []uintptr{16, 64, 4096} {
		p, err := PlatformAlloc(256, alignment)
		require.NoError(t, err)
		require.Zero(t, uintptr(p)%alignment)

		s := unsafe.Slice((*byte)(p), 256)
		for i := range s {
			s[i] = byte(i)
		}
		PlatformFree(p)
	}

	_, err := PlatformAlloc(256, 24)
	require.Error(t, err)
}

func TestByteSlice(t *testing.T) {
	for _, n := range []int{1, 7, 8, 63, 1024} {
		b := ByteSlice(n)
		require.Len(t, b, n)
		require.Zero(t, uintptr(unsafe.Pointer(&b[0]))%unsafe.Sizeof(int(0)))
	}
}

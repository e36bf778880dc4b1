// Copyright 2026 The Aligned Memory Battle Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package manual

import (
	"testing"

	"github.com/adelcor/aligned-memory-battle/internal/buildtags"
	"github.com/stretchr/testify/require"
)

func TestNewAndFreeAccounting(t *testing.T) {
	before := GetMetrics()

	b := New(BenchScratch, 4096)
	require.NotNil(t, b.Data())
	require.EqualValues(t, 4096, b.Len())

	s := b.Slice()
	require.Len(t, s, 4096)
	for i := range s {
		s[i] = byte(i)
	}

	m := GetMetrics()
	require.Equal(t, before[BenchScratch].InUseBytes+4096, m[BenchScratch].InUseBytes)
	require.Equal(t, before[BenchScratch].TotalBytes+4096, m[BenchScratch].TotalBytes)

	Free(BenchScratch, b)
	m = GetMetrics()
	require.Equal(t, before[BenchScratch].InUseBytes, m[BenchScratch].InUseBytes)
	require.Equal(t, before[BenchScratch].TotalBytes+4096, m[BenchScratch].TotalBytes)
}

func TestNewOverMaxArrayLen(t *testing.T) {
	b := New(BenchScratch, uintptr(MaxArrayLen)+1)
	require.Nil(t, b.Data())
	Free(BenchScratch, b)
}

func TestNewZeroedOnCgo(t *testing.T) {
	if !buildtags.Cgo {
		t.Skip("C heap allocations only; pooled memory may be dirty")
	}
	b := New(BenchScratch, 1024)
	require.NotNil(t, b.Data())
	for i, v := range b.Slice() {
		require.Zero(t, v, "byte %d", i)
	}
	Free(BenchScratch, b)
}

func TestNewZeroSize(t *testing.T) {
	b := New(BenchScratch, 0)
	require.Nil(t, b.Data())
	require.Nil(t, b.Slice())
	// Free of the zero Buf is a no-op.
	Free(BenchScratch, b)
}

func TestLargeAlloc(t *testing.T) {
	before := GetMetrics()

	b := New(BenchScratch, 1<<20)
	require.NotNil(t, b.Data())
	s := b.Slice()
	s[0] = 0xAB
	s[len(s)-1] = 0xCD
	require.Equal(t, byte(0xAB), s[0])
	require.Equal(t, byte(0xCD), s[len(s)-1])

	Free(BenchScratch, b)
	m := GetMetrics()
	require.Equal(t, before[BenchScratch].InUseBytes, m[BenchScratch].InUseBytes)
}

func TestPurposesAreIsolated(t *testing.T) {
	before := GetMetrics()

	b := New(AlignedBlock, 512)
	require.NotNil(t, b.Data())

	m := GetMetrics()
	require.Equal(t, before[BenchScratch].InUseBytes, m[BenchScratch].InUseBytes)
	require.Equal(t, before[AlignedBlock].InUseBytes+512, m[AlignedBlock].InUseBytes)

	Free(AlignedBlock, b)
}

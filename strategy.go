// Copyright 2026 The Aligned Memory Battle Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package bench

import (
	"unsafe"

	"github.com/adelcor/aligned-memory-battle/internal/aligned"
)

// Strategy is an aligned-allocation implementation under measurement.
type Strategy interface {
	// Name identifies the strategy in benchmark reports.
	Name() string
	// Alloc returns a pointer to size bytes aligned to alignment, which must
	// be a non-zero power of two.
	Alloc(size, alignment uintptr) (unsafe.Pointer, error)
	// Free releases a pointer returned by Alloc. Free of nil is a no-op.
	Free(p unsafe.Pointer)
}

// PlatformStrategy measures the platform's own aligned allocator.
type PlatformStrategy struct{}

// Name implements Strategy.
func (PlatformStrategy) Name() string { return "platform allocator" }

// Alloc implements Strategy.
func (PlatformStrategy) Alloc(size, alignment uintptr) (unsafe.Pointer, error) {
	return aligned.PlatformAlloc(size, alignment)
}

// Free implements Strategy.
func (PlatformStrategy) Free(p unsafe.Pointer) { aligned.PlatformFree(p) }

// CustomStrategy measures the header-slot allocator layered on manually
// managed memory.
type CustomStrategy struct{}

// Name implements Strategy.
func (CustomStrategy) Name() string { return "custom allocator" }

// Alloc implements Strategy.
func (CustomStrategy) Alloc(size, alignment uintptr) (unsafe.Pointer, error) {
	return aligned.Alloc(size, alignment)
}

// Free implements Strategy.
func (CustomStrategy) Free(p unsafe.Pointer) { aligned.Free(p) }

// DefaultStrategies returns the strategies in report order: the platform
// allocator first, then the custom allocator.
func DefaultStrategies() []Strategy {
	return []Strategy{PlatformStrategy{}, CustomStrategy{}}
}

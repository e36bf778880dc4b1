// Copyright 2026 The Aligned Memory Battle Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package invariants provides assertion helpers that are compiled away
// outside of invariant builds.
package invariants

import (
	"math/rand/v2"

	"github.com/adelcor/aligned-memory-battle/internal/buildtags"
)

// Enabled is true if we were built with the "invariants" or "race" build
// tags.
const Enabled = buildtags.Invariants || buildtags.Race

// RaceEnabled is true if we were built with the "race" build tag.
const RaceEnabled = buildtags.Race

// Sometimes returns true percent% of the time if we were built with the
// "invariants" or "race" build tags. Otherwise, always returns false.
func Sometimes(percent int) bool {
	return Enabled && rand.Uint32N(100) < uint32(percent)
}

// MaybeMangle overwrites the buffer with garbage in invariant builds.
// Manually managed memory is mangled right before it is released so that
// use-after-free bugs surface as corrupted data instead of silent reads of
// stale contents.
func MaybeMangle(b []byte) {
	if Enabled {
		for i := range b {
			b[i] = 0xCC
		}
	}
}

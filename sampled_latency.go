// Copyright 2026 The Aligned Memory Battle Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package bench

import (
	"time"

	"github.com/guptarohit/asciigraph"
)

// sampledLatency holds the per-cycle latencies observed over one strategy's
// benchmark loop.
type sampledLatency struct {
	samples []time.Duration
}

func newSampledLatency(n int) *sampledLatency {
	return &sampledLatency{samples: make([]time.Duration, 0, n)}
}

func (m *sampledLatency) record(d time.Duration) {
	m.samples = append(m.samples, d)
}

// values buckets the samples down to at most width points, averaging within
// each bucket, with each point expressed in nanoseconds.
func (m *sampledLatency) values(width int) []float64 {
	if len(m.samples) == 0 {
		return make([]float64, width)
	}
	per := (len(m.samples) + width - 1) / width
	values := make([]float64, 0, width)
	for lo := 0; lo < len(m.samples); lo += per {
		hi := min(lo+per, len(m.samples))
		var sum time.Duration
		for _, s := range m.samples[lo:hi] {
			sum += s
		}
		values = append(values, float64(sum.Nanoseconds())/float64(hi-lo))
	}
	return values
}

// plot returns an ascii graph of the sampled latencies, with the provided
// width and height determining the number of representable discrete x and y
// points.
func (m *sampledLatency) plot(width, height int) string {
	return asciigraph.Plot(m.values(width), asciigraph.Height(height))
}

// Copyright 2026 The Aligned Memory Battle Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package bench times repeated allocate/release cycles of aligned-memory
// allocation strategies and reports the elapsed microseconds per strategy.
package bench

import (
	"fmt"
	"io"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/cockroachdb/crlib/crtime"
	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"
)

const (
	minLatency = time.Nanosecond
	maxLatency = time.Second
)

// Options configure optional harness output. All options default to off, in
// which case Run emits exactly one line per strategy per configuration.
type Options struct {
	// Histogram records the latency of each allocate/release cycle in an HDR
	// histogram and prints quantiles after each strategy's elapsed-time line.
	// Taking two extra timestamps per cycle inflates the elapsed time, so the
	// quantiles are not comparable to runs without the histogram.
	Histogram bool
	// Plot prints an ascii plot of the per-cycle latencies over the course of
	// each strategy's loop. Implies the same per-cycle timestamp overhead as
	// Histogram.
	Plot bool
	// Verbose prints a header line per configuration.
	Verbose bool
	// Summary prints a table of all results after the run.
	Summary bool
}

// Harness runs allocate/release benchmark loops and writes per-strategy
// timings to w. A Harness is single-use: Run may only be called once.
type Harness struct {
	w    io.Writer
	opts Options
	now  func() crtime.Mono

	results []result
}

type result struct {
	config  Config
	name    string
	elapsed time.Duration
}

// NewHarness returns a Harness writing its report to w.
func NewHarness(w io.Writer, opts Options) *Harness {
	return &Harness{w: w, opts: opts, now: crtime.NowMono}
}

// Run times every configuration in order against every strategy, emitting
// one line per strategy of the form "<name>: <elapsed-microseconds> us".
// With no strategies, DefaultStrategies is used. A failed allocation aborts
// the run.
func (h *Harness) Run(configs []Config, strategies ...Strategy) error {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	for _, c := range configs {
		if err := c.validate(); err != nil {
			return errors.Wrapf(err, "bench: invalid config %s", c)
		}
		if h.opts.Verbose {
			fmt.Fprintf(h.w, "%s\n", c)
		}
		for _, s := range strategies {
			res, err := h.runLoop(c, s)
			if err != nil {
				return errors.Wrapf(err, "bench: %s failed on %s", s.Name(), c)
			}
			fmt.Fprintf(h.w, "%s: %d us\n", s.Name(), res.elapsed.Microseconds())
			if res.hist != nil {
				h.writeQuantiles(s.Name(), res.hist)
			}
			if res.samples != nil {
				h.writePlot(s.Name(), res.samples)
			}
			h.results = append(h.results, result{config: c, name: s.Name(), elapsed: res.elapsed})
		}
	}
	if h.opts.Summary {
		h.writeSummary()
	}
	return nil
}

type loopResult struct {
	elapsed time.Duration
	hist    *hdrhistogram.Histogram
	samples *sampledLatency
}

func (h *Harness) runLoop(c Config, s Strategy) (loopResult, error) {
	var res loopResult
	if h.opts.Histogram {
		res.hist = hdrhistogram.New(minLatency.Nanoseconds(), maxLatency.Nanoseconds(), 3)
	}
	if h.opts.Plot {
		res.samples = newSampledLatency(c.Iters)
	}

	start := h.now()
	if res.hist == nil && res.samples == nil {
		// The common case takes timestamps only around the whole loop.
		for i := 0; i < c.Iters; i++ {
			p, err := s.Alloc(c.Size, c.Alignment)
			if err != nil {
				return loopResult{}, err
			}
			s.Free(p)
		}
		res.elapsed = time.Duration(h.now() - start)
		return res, nil
	}

	for i := 0; i < c.Iters; i++ {
		cycleStart := h.now()
		p, err := s.Alloc(c.Size, c.Alignment)
		if err != nil {
			return loopResult{}, err
		}
		s.Free(p)
		d := time.Duration(h.now() - cycleStart)
		if res.hist != nil {
			// The histogram drops values outside its range; clamp instead.
			_ = res.hist.RecordValue(int64(min(max(d, minLatency), maxLatency)))
		}
		if res.samples != nil {
			res.samples.record(d)
		}
	}
	res.elapsed = time.Duration(h.now() - start)
	return res, nil
}

func (h *Harness) writeQuantiles(name string, hist *hdrhistogram.Histogram) {
	fmt.Fprintf(h.w, "%s: p50=%s p95=%s p99=%s max=%s\n", name,
		time.Duration(hist.ValueAtQuantile(50)),
		time.Duration(hist.ValueAtQuantile(95)),
		time.Duration(hist.ValueAtQuantile(99)),
		time.Duration(hist.Max()))
}

func (h *Harness) writePlot(name string, samples *sampledLatency) {
	fmt.Fprintf(h.w, "%s latency (ns):\n%s\n", name, samples.plot(80, 10))
}

func (h *Harness) writeSummary() {
	tbl := tablewriter.NewWriter(h.w)
	tbl.SetHeader([]string{"Config", "Strategy", "Elapsed (us)"})
	for _, r := range h.results {
		tbl.Append([]string{
			r.config.String(),
			r.name,
			fmt.Sprintf("%d", r.elapsed.Microseconds()),
		})
	}
	tbl.Render()
}

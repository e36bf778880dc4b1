// Copyright 2026 The Aligned Memory Battle Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package bench

import (
	"strconv"
	"strings"

	"github.com/adelcor/aligned-memory-battle/internal/humanize"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// Config is a single benchmark configuration: the allocation size and
// alignment to exercise, and how many allocate/release cycles to time.
type Config struct {
	Size      uintptr
	Alignment uintptr
	Iters     int
}

// DefaultConfigs returns the configurations run when none are specified:
// small allocations around typical cache line sizes, a 1KB allocation, and a
// 1MB allocation that large-allocation code paths of the underlying
// allocators kick in for.
func DefaultConfigs() []Config {
	return []Config{
		{Size: 64, Alignment: 16, Iters: 100000},
		{Size: 128, Alignment: 32, Iters: 100000},
		{Size: 256, Alignment: 64, Iters: 100000},
		{Size: 1024, Alignment: 64, Iters: 100000},
		{Size: 1 << 20, Alignment: 64, Iters: 1000},
	}
}

// ParseConfig parses a configuration of the form
// "size=64,align=16,iters=100000". Size and alignment values accept a K or M
// suffix.
func ParseConfig(s string) (Config, error) {
	var c Config
	for _, field := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return Config{}, errors.Newf("bench: malformed field %q in %q", field, s)
		}
		var err error
		switch key {
		case "size":
			c.Size, err = parseSize(value)
		case "align":
			c.Alignment, err = parseSize(value)
		case "iters":
			c.Iters, err = strconv.Atoi(value)
		default:
			return Config{}, errors.Newf("bench: unknown field %q in %q", key, s)
		}
		if err != nil {
			return Config{}, errors.Wrapf(err, "bench: parsing %q", s)
		}
	}
	if err := c.validate(); err != nil {
		return Config{}, errors.Wrapf(err, "bench: invalid config %q", s)
	}
	return c, nil
}

func (c Config) validate() error {
	if c.Size == 0 {
		return errors.New("size must be positive")
	}
	if c.Alignment == 0 || c.Alignment&(c.Alignment-1) != 0 {
		return errors.Newf("alignment %d is not a power of two", c.Alignment)
	}
	if c.Iters <= 0 {
		return errors.New("iters must be positive")
	}
	return nil
}

func parseSize(s string) (uintptr, error) {
	mult := uintptr(1)
	switch {
	case strings.HasSuffix(s, "K"):
		mult = 1 << 10
		s = strings.TrimSuffix(s, "K")
	case strings.HasSuffix(s, "M"):
		mult = 1 << 20
		s = strings.TrimSuffix(s, "M")
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "size %q", s)
	}
	return uintptr(v) * mult, nil
}

// String implements fmt.Stringer.
func (c Config) String() string {
	return redact.StringWithoutMarkers(c)
}

// SafeFormat implements redact.SafeFormatter.
func (c Config) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("size=%s align=%s iters=%s",
		humanize.Bytes.Uint64(uint64(c.Size)),
		humanize.Bytes.Uint64(uint64(c.Alignment)),
		humanize.Count.Uint64(uint64(c.Iters)))
}

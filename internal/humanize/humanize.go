// Copyright 2026 The Aligned Memory Battle Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package humanize provides human readable formatting of byte values and
// counts.
package humanize

import (
	"fmt"

	"github.com/cockroachdb/redact"
)

// FormattedString is the type of the formatted strings produced by this
// package. It implements redact.SafeValue.
type FormattedString string

var _ redact.SafeValue = FormattedString("")

// SafeValue implements redact.SafeValue.
func (fs FormattedString) SafeValue() {}

// String implements fmt.Stringer.
func (fs FormattedString) String() string { return string(fs) }

type config struct {
	factor float64
	units  []string
}

// Bytes produces human readable representations of byte values, e.g. 512B,
// 1.0KB, 16.0MB.
var Bytes = config{1024, []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}}

// Count produces human readable representations of unitless counts, e.g.
// 999, 1.0K, 100.0K.
var Count = config{1000, []string{"", "K", "M", "G", "T", "P", "E"}}

// Int64 produces a human readable representation of the value.
func (c config) Int64(value int64) FormattedString {
	if value < 0 {
		return "-" + c.Uint64(uint64(-value))
	}
	return c.Uint64(uint64(value))
}

// Uint64 produces a human readable representation of the value.
func (c config) Uint64(value uint64) FormattedString {
	v := float64(value)
	i := 0
	for v >= c.factor && i+1 < len(c.units) {
		v /= c.factor
		i++
	}
	if i == 0 {
		return FormattedString(fmt.Sprintf("%d%s", value, c.units[0]))
	}
	return FormattedString(fmt.Sprintf("%.1f%s", v, c.units[i]))
}

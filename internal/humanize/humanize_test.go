// Copyright 2026 The Aligned Memory Battle Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package humanize

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/crlib/crstrings"
	"github.com/cockroachdb/datadriven"
	"github.com/stretchr/testify/require"
)

func TestHumanize(t *testing.T) {
	configs := map[string]config{
		"bytes": Bytes,
		"count": Count,
	}
	datadriven.RunTest(t, "testdata/humanize", func(t *testing.T, td *datadriven.TestData) string {
		c, ok := configs[td.Cmd]
		if !ok {
			td.Fatalf(t, "unknown command %q", td.Cmd)
		}
		var sb strings.Builder
		for row := range crstrings.LinesSeq(td.Input) {
			v, err := strconv.ParseInt(row, 10, 64)
			if err != nil {
				td.Fatalf(t, "parsing %q: %v", row, err)
			}
			fmt.Fprintf(&sb, "%s\n", c.Int64(v))
		}
		return sb.String()
	})
}

func TestUint64(t *testing.T) {
	require.Equal(t, "64B", Bytes.Uint64(64).String())
	require.Equal(t, "1.0KB", Bytes.Uint64(1<<10).String())
	require.Equal(t, "1.0MB", Bytes.Uint64(1<<20).String())
	require.Equal(t, "100.0K", Count.Uint64(100000).String())
}

// Copyright 2026 The Aligned Memory Battle Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"log"
	"os"

	bench "github.com/adelcor/aligned-memory-battle"
	"github.com/spf13/cobra"
)

var (
	benchConfigs []string
	histogram    bool
	plot         bool
	summary      bool
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "membench (flags)",
	Short: "aligned allocation latency benchmark",
	Long: `Times repeated allocate/release cycles of the platform aligned allocator
and a custom aligned allocator layered on manually managed memory, printing
the elapsed microseconds per strategy for each configuration.`,
	RunE: runBench,
}

func runBench(cmd *cobra.Command, _ []string) error {
	configs := bench.DefaultConfigs()
	if len(benchConfigs) > 0 {
		configs = make([]bench.Config, 0, len(benchConfigs))
		for _, s := range benchConfigs {
			c, err := bench.ParseConfig(s)
			if err != nil {
				return err
			}
			configs = append(configs, c)
		}
	}
	h := bench.NewHarness(cmd.OutOrStdout(), bench.Options{
		Histogram: histogram,
		Plot:      plot,
		Summary:   summary,
		Verbose:   verbose,
	})
	return h.Run(configs)
}

func main() {
	log.SetFlags(0)

	rootCmd.SilenceUsage = true
	rootCmd.Flags().StringArrayVarP(
		&benchConfigs, "bench", "b", nil,
		"benchmark configuration as size=N,align=N,iters=N (repeatable; default runs the built-in set)")
	rootCmd.Flags().BoolVar(
		&histogram, "hist", false, "record per-cycle latencies and print quantiles")
	rootCmd.Flags().BoolVar(
		&plot, "plot", false, "print an ascii plot of per-cycle latencies")
	rootCmd.Flags().BoolVar(
		&summary, "summary", false, "print a table of all results after the run")
	rootCmd.Flags().BoolVarP(
		&verbose, "verbose", "v", false, "print a header line per configuration")

	if err := rootCmd.Execute(); err != nil {
		// Cobra has already printed the error message.
		os.Exit(1)
	}
}

// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Command make-expect regenerates the expected outputs of the fixture corpus.
//
// Usage:
//
//	make-expect [--data testdata/data] [--expect testdata/expect] [-j N]
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/albertocavalcante/shaclgen/internal/cli"
	"github.com/albertocavalcante/shaclgen/internal/config"
	"github.com/albertocavalcante/shaclgen/internal/expect"
	"github.com/albertocavalcante/shaclgen/internal/fetch"
	"github.com/albertocavalcante/shaclgen/renderers"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var (
		dataDir   string
		expectDir string
		jobs      int
		verbose   bool
	)
	cmd := &cobra.Command{
		Use:           "make-expect",
		Short:         "Regenerate expected fixture outputs",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := cfg.Logger(os.Stderr, verbose)

			res := &fetch.Resolver{Client: cfg.HTTPClient(), UserAgent: cfg.Agent("make-expect")}
			reg, err := renderers.Registry(res)
			if err != nil {
				return err
			}

			tasks, err := expect.Plan(dataDir, expectDir)
			if err != nil {
				return err
			}
			runner := &expect.Runner{
				App:  &cli.App{Registry: reg, Resolver: res, HTTPClient: cfg.HTTPClient(), Config: cfg},
				Jobs: jobs,
				Log:  log,
			}
			if err := runner.Run(cmd.Context(), tasks); err != nil {
				return err
			}
			log.Debug("done", "tasks", len(tasks))
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data", "testdata/data", "directory of *.jsonld fixtures and templates")
	cmd.Flags().StringVar(&expectDir, "expect", "testdata/expect", "directory the expected outputs are written to")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "number of fixtures generated in parallel")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log every generated file")
	return cmd
}

// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package cli implements the shaclgen command line.
//
// Usage:
//
//	shaclgen generate --input <path|url|-> <renderer> [renderer options]
//	shaclgen list [--short]
//
// Each renderer is a subcommand of generate and owns its options.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/albertocavalcante/shaclgen/internal/config"
	"github.com/albertocavalcante/shaclgen/internal/dispatch"
	"github.com/albertocavalcante/shaclgen/internal/fetch"
	"github.com/albertocavalcante/shaclgen/model"
	"github.com/albertocavalcante/shaclgen/render"
)

// Exit codes.
const (
	ExitOK               = 0
	ExitError            = 1
	ExitInputUnavailable = 2
	ExitMalformedInput   = 3
	ExitInvalidModel     = 4
	ExitUnknownRenderer  = 5
	ExitRenderFailure    = 6
)

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, render.ErrRenderFailure):
		// Checked first: renderer failures may wrap resolver errors.
		return ExitRenderFailure
	case errors.Is(err, render.ErrUnknownRenderer):
		return ExitUnknownRenderer
	case errors.Is(err, model.ErrInvalidModel):
		return ExitInvalidModel
	case errors.Is(err, fetch.ErrMalformedDocument):
		return ExitMalformedInput
	case errors.Is(err, fetch.ErrInputUnavailable):
		return ExitInputUnavailable
	}
	return ExitError
}

// App holds what every command needs. An App may run any number of
// invocations, concurrently; each builds its own command tree.
type App struct {
	Registry *render.Registry
	Resolver dispatch.Resolver

	// HTTPClient loads remote JSON-LD contexts.
	HTTPClient *http.Client

	// Config supplies the log settings. Nil uses the defaults.
	Config *config.Config

	Version string
}

// Run executes one invocation and returns its exit code. Errors are reported
// on stderr as "error: <message>".
func (a *App) Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := a.Command(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
	}
	return ExitCode(err)
}

// Command builds the root command.
func (a *App) Command(stdout, stderr io.Writer) *cobra.Command {
	cfg := a.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	d := &dispatch.Dispatcher{
		Registry:   a.Registry,
		Resolver:   a.Resolver,
		HTTPClient: a.HTTPClient,
	}

	var verbose bool
	root := &cobra.Command{
		Use:           "shaclgen",
		Short:         "Generate bindings from SHACL shape documents",
		Version:       a.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			d.Log = cfg.Logger(stderr, verbose)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "log pipeline progress to stderr")

	root.AddCommand(a.generateCommand(d, stdout), listCommand(d, stdout))
	return root
}

func (a *App) generateCommand(d *dispatch.Dispatcher, stdout io.Writer) *cobra.Command {
	var input string
	gen := &cobra.Command{
		Use:   "generate <renderer> [options]",
		Short: "Render a shape document",
		Long: "Render a shape document with one of the registered renderers.\n\n" +
			"Renderers: " + strings.Join(a.Registry.List(), ", "),
		Args: cobra.ArbitraryArgs,
		// Unknown names and their options reach RunE and are reported as an
		// unknown renderer instead of a usage error.
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("missing renderer (available: %s)", strings.Join(a.Registry.List(), ", "))
			}
			return d.Generate(cmd.Context(), dispatch.Request{
				Input:    input,
				Renderer: args[0],
				Args:     args[1:],
				Stdout:   stdout,
			})
		},
	}
	gen.PersistentFlags().StringVarP(&input, "input", "i", "", `shape document: path, URL or "-" for stdin`)

	for _, r := range a.Registry.All() {
		meta := r.Metadata()
		name := meta.Name
		sub := &cobra.Command{
			Use:   name + " [options]",
			Short: meta.Description,
			Args:  cobra.NoArgs,
		}
		job := r.Bind(sub.Flags())
		sub.RunE = func(cmd *cobra.Command, _ []string) error {
			return d.Generate(cmd.Context(), dispatch.Request{
				Input:    input,
				Renderer: name,
				Job:      job,
				Stdout:   stdout,
			})
		}
		gen.AddCommand(sub)
	}
	return gen
}

func listCommand(d *dispatch.Dispatcher, stdout io.Writer) *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available renderers",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return d.List(stdout, short)
		},
	}
	cmd.Flags().BoolVarP(&short, "short", "s", false, "print identifiers only")
	return cmd
}

// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Command shaclgen generates language bindings, schemas and arbitrary text
// from SHACL shape documents in JSON-LD.
//
// Usage:
//
//	shaclgen generate --input <path|url|-> <renderer> [renderer options]
//	shaclgen list [--short]
//
// Renderers:
//
//	golang      Go structs (--output, --package, --class)
//	jsonschema  JSON Schema 2020-12 (--output, --schema-id, --title, --format)
//	python      Python dataclasses (--output, --class)
//	template    Go text/template (--template, --output, --context, --context-url)
//
// Environment:
//
//	SHACLGEN_HTTP_TIMEOUT  timeout of URL fetches (default: none)
//	SHACLGEN_USER_AGENT    User-Agent of URL fetches
//	SHACLGEN_LOG_LEVEL     debug, info, warn or error (default: warn)
//	SHACLGEN_LOG_FORMAT    text or json (default: text)
//
// Exit status is 2 when the input cannot be read, 3 when it is not JSON, 4
// when it is not a valid model, 5 for an unknown renderer, 6 when rendering
// fails and 1 for any other error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/albertocavalcante/shaclgen/internal/cli"
	"github.com/albertocavalcante/shaclgen/internal/config"
	"github.com/albertocavalcante/shaclgen/internal/fetch"
	"github.com/albertocavalcante/shaclgen/renderers"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return cli.ExitError
	}

	client := cfg.HTTPClient()
	res := &fetch.Resolver{
		Client:    client,
		Stdin:     os.Stdin,
		UserAgent: cfg.Agent(version),
	}
	reg, err := renderers.Registry(res)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return cli.ExitError
	}

	app := &cli.App{
		Registry:   reg,
		Resolver:   res,
		HTTPClient: client,
		Config:     cfg,
		Version:    fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return app.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package dispatch runs the generate pipeline: renderer lookup, input
// resolution, model building, rendering and writing.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/spf13/pflag"

	"github.com/albertocavalcante/shaclgen/internal/fetch"
	"github.com/albertocavalcante/shaclgen/model"
	"github.com/albertocavalcante/shaclgen/render"
)

// ErrNoInput is returned when a request names no input.
var ErrNoInput = errors.New("no input given (use --input <path|url|->)")

// Resolver turns an input locator into a decoded document.
type Resolver interface {
	Resolve(ctx context.Context, locator string) (fetch.Document, error)
}

// Dispatcher runs requests against a registry. It holds no per-request
// state and may be shared by concurrent callers.
type Dispatcher struct {
	Registry *render.Registry
	Resolver Resolver

	// HTTPClient loads remote JSON-LD contexts referenced by documents.
	HTTPClient *http.Client

	// Log receives debug events. Nil discards them.
	Log *slog.Logger
}

// Request is one generate invocation.
type Request struct {
	// Input is the shape document locator.
	Input string

	// Renderer is the renderer identifier.
	Renderer string

	// Job is the renderer bound to its options. When nil the renderer is
	// bound after lookup and Args are parsed as its options.
	Job  render.Job
	Args []string

	// Stdout receives artifacts without a destination file.
	Stdout io.Writer
}

func (d *Dispatcher) logger() *slog.Logger {
	if d.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Log
}

// Generate runs req. The renderer is looked up before anything is read, so
// an unknown identifier never touches the input. The first failing stage
// ends the run; nothing is retried.
func (d *Dispatcher) Generate(ctx context.Context, req Request) error {
	r, err := d.Registry.Lookup(req.Renderer)
	if err != nil {
		return err
	}

	job := req.Job
	if job == nil {
		fs := pflag.NewFlagSet(req.Renderer, pflag.ContinueOnError)
		fs.SetOutput(io.Discard)
		job = r.Bind(fs)
		if err := fs.Parse(req.Args); err != nil {
			return fmt.Errorf("%s options: %w", req.Renderer, err)
		}
	}

	if req.Input == "" {
		return ErrNoInput
	}

	log := d.logger().With("renderer", req.Renderer)
	log.Debug("resolving input", "input", req.Input, "medium", fetch.Kind(req.Input))
	doc, err := d.Resolver.Resolve(ctx, req.Input)
	if err != nil {
		return err
	}

	m, err := model.Build(ctx, doc, model.Options{HTTPClient: d.HTTPClient})
	if err != nil {
		return err
	}
	log.Debug("built model",
		"classes", len(m.Classes),
		"enums", len(m.Enums),
		"properties", len(m.Properties))

	out, err := job.Render(ctx, m)
	if err != nil {
		return err
	}

	stdout := req.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	if err := out.Write(stdout); err != nil {
		return render.Fail(req.Renderer, err)
	}
	for _, a := range out.Artifacts {
		dest := a.Path
		if render.IsStdout(dest) {
			dest = "stdout"
		}
		log.Debug("wrote artifact", "path", dest, "bytes", len(a.Content))
	}
	return nil
}

// List writes the registered renderer identifiers to w, one per line. Unless
// short is set each identifier is followed by its description.
func (d *Dispatcher) List(w io.Writer, short bool) error {
	for _, r := range d.Registry.All() {
		meta := r.Metadata()
		var err error
		if short {
			_, err = fmt.Fprintln(w, meta.Name)
		} else {
			_, err = fmt.Fprintf(w, "%s: %s\n", meta.Name, meta.Description)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

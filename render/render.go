// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package render defines the interface for shaclgen renderers.
//
// A renderer owns a strongly typed configuration struct. It implements
// [Backend] for that type and is turned into a [Renderer] with [Adapt], which
// hides the configuration type from the registry and the dispatcher:
//
//	reg, err := render.NewRegistry(render.Adapt[python.Config](python.New()))
//	r, err := reg.Lookup("python")
//	job := r.Bind(flags) // declares --output, --class, ...
//	flags.Parse(args)
//	out, err := job.Render(ctx, m)
package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/albertocavalcante/shaclgen/model"
)

// Renderer is the interface that all registered renderers satisfy.
type Renderer interface {
	// Metadata returns information about this renderer.
	Metadata() Metadata

	// Bind declares the renderer's options on fs and returns a job that
	// renders with whatever values are parsed into fs afterwards.
	Bind(fs *pflag.FlagSet) Job
}

// Job is a renderer bound to one configuration.
type Job interface {
	// Render produces artifacts from the model. Errors are [*Failure].
	Render(ctx context.Context, m *model.Model) (*Output, error)
}

// Backend is implemented by each renderer for its configuration type C.
type Backend[C any] interface {
	Metadata() Metadata

	// DefaultConfig returns the configuration before any option is applied.
	DefaultConfig() C

	// DeclareFlags registers the command-line options that fill cfg.
	DeclareFlags(fs *pflag.FlagSet, cfg *C)

	// Render produces output files from the model.
	Render(ctx context.Context, cfg C, m *model.Model) (*Output, error)
}

// Metadata describes a renderer.
type Metadata struct {
	// Name is the short identifier (e.g., "python", "jsonschema").
	Name string

	// Version is the renderer version (semver).
	Version string

	// Description is a one-line human-readable description.
	Description string

	// FileExtensions lists typical output extensions (e.g., [".py"]).
	FileExtensions []string
}

// Adapt wraps a backend as a [Renderer].
func Adapt[C any](b Backend[C]) Renderer {
	return &adapter[C]{b: b}
}

type adapter[C any] struct {
	b Backend[C]
}

func (a *adapter[C]) Metadata() Metadata {
	return a.b.Metadata()
}

func (a *adapter[C]) Bind(fs *pflag.FlagSet) Job {
	j := &job[C]{b: a.b, cfg: a.b.DefaultConfig()}
	a.b.DeclareFlags(fs, &j.cfg)
	return j
}

type job[C any] struct {
	b   Backend[C]
	cfg C
}

func (j *job[C]) Render(ctx context.Context, m *model.Model) (*Output, error) {
	out, err := j.b.Render(ctx, j.cfg, m)
	if err != nil {
		return nil, Fail(j.b.Metadata().Name, err)
	}
	if out == nil {
		out = NewOutput()
	}
	return out, nil
}

// ErrRenderFailure is matched by every [*Failure].
var ErrRenderFailure = errors.New("render failure")

// Failure is a renderer-internal error.
type Failure struct {
	// Renderer is the identifier of the failing renderer.
	Renderer string

	// Err is the reason.
	Err error
}

func (e *Failure) Error() string {
	return fmt.Sprintf("renderer %s: %v", e.Renderer, e.Err)
}

func (e *Failure) Unwrap() []error {
	return []error{ErrRenderFailure, e.Err}
}

// Fail wraps err as a [*Failure] of the named renderer. An error that already
// is a Failure is returned unchanged.
func Fail(renderer string, err error) error {
	var f *Failure
	if errors.As(err, &f) {
		return err
	}
	return &Failure{Renderer: renderer, Err: err}
}

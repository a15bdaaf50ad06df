// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package golang

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/albertocavalcante/shaclgen/model"
	"github.com/albertocavalcante/shaclgen/render"
)

// Renderer implements [render.Backend] for Go bindings.
type Renderer struct{}

// NewRenderer creates a new Go renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Metadata returns information about this renderer.
func (r *Renderer) Metadata() render.Metadata {
	return render.Metadata{
		Name:           "golang",
		Version:        "1.0.0",
		Description:    "Go struct bindings",
		FileExtensions: []string{".go"},
	}
}

// DefaultConfig returns the configuration used when no option is given.
func (r *Renderer) DefaultConfig() Config {
	return DefaultConfig()
}

// DeclareFlags registers the Go options.
func (r *Renderer) DeclareFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.Output, "output", "o", cfg.Output, `output file ("-" for stdout)`)
	fs.StringVar(&cfg.PackageName, "package", cfg.PackageName, "Go package name of the generated file")
	fs.StringSliceVar(&cfg.Classes, "class", cfg.Classes, "only render these classes and their dependencies")
}

// Render produces the Go source file.
func (r *Renderer) Render(ctx context.Context, cfg Config, m *model.Model) (*render.Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src, err := New(m, cfg).Generate()
	if err != nil {
		return nil, err
	}
	return render.Single(cfg.Output, src), nil
}

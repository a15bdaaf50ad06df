// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package python

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/albertocavalcante/shaclgen/model"
	"github.com/albertocavalcante/shaclgen/render"
)

// Renderer implements [render.Backend] for Python bindings.
type Renderer struct{}

// NewRenderer creates a new Python renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Metadata returns information about this renderer.
func (r *Renderer) Metadata() render.Metadata {
	return render.Metadata{
		Name:           "python",
		Version:        "1.0.0",
		Description:    "Python dataclass bindings",
		FileExtensions: []string{".py"},
	}
}

// DefaultConfig returns the configuration used when no option is given.
func (r *Renderer) DefaultConfig() Config {
	return DefaultConfig()
}

// DeclareFlags registers the Python options.
func (r *Renderer) DeclareFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.Output, "output", "o", cfg.Output, `output file ("-" for stdout)`)
	fs.StringSliceVar(&cfg.Classes, "class", cfg.Classes, "only render these classes and their dependencies")
}

// Render produces the Python module.
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

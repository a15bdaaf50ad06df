// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package jsonschema

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/albertocavalcante/shaclgen/model"
	"github.com/albertocavalcante/shaclgen/render"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config controls JSON Schema rendering.
type Config struct {
	// Output is the destination file; "-" writes to stdout.
	Output string

	// SchemaID is the "$id" of the document, omitted when empty.
	SchemaID string

	// Title is the "title" of the document.
	Title string

	// Format is FormatJSON or FormatYAML.
	Format string
}

// DefaultConfig returns the defaults: JSON to stdout.
func DefaultConfig() Config {
	return Config{
		Output: "-",
		Format: FormatJSON,
	}
}

// Renderer implements [render.Backend] for JSON Schema.
type Renderer struct{}

// NewRenderer creates a new JSON Schema renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Metadata returns information about this renderer.
func (r *Renderer) Metadata() render.Metadata {
	return render.Metadata{
		Name:           "jsonschema",
		Version:        "1.0.0",
		Description:    "JSON Schema (draft 2020-12) document",
		FileExtensions: []string{".json", ".yaml"},
	}
}

// DefaultConfig returns the configuration used when no option is given.
func (r *Renderer) DefaultConfig() Config {
	return DefaultConfig()
}

// DeclareFlags registers the JSON Schema options.
func (r *Renderer) DeclareFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.Output, "output", "o", cfg.Output, `output file ("-" for stdout)`)
	fs.StringVar(&cfg.SchemaID, "schema-id", cfg.SchemaID, `"$id" of the generated schema`)
	fs.StringVar(&cfg.Title, "title", cfg.Title, `"title" of the generated schema`)
	fs.StringVar(&cfg.Format, "format", cfg.Format, "output format: json or yaml")
}

// Render produces the schema document.
func (r *Renderer) Render(ctx context.Context, cfg Config, m *model.Model) (*render.Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc := Build(m, cfg)

	data, err := encodeJSON(doc)
	if err != nil {
		return nil, err
	}
	if err := Check(data); err != nil {
		return nil, err
	}

	switch cfg.Format {
	case FormatJSON:
	case FormatYAML:
		if data, err = encodeYAML(doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown format %q (want %s or %s)", cfg.Format, FormatJSON, FormatYAML)
	}
	return render.Single(cfg.Output, data), nil
}

// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package template renders a SHACL model through a user supplied Go
// text/template.
//
// The template receives a [Data] value and may call the helpers in
// [Funcs]. With a JSON-LD context document, "compact" yields the short names
// the context assigns to IRIs.
package template

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"text/template"

	"github.com/spf13/pflag"

	"github.com/albertocavalcante/shaclgen/internal/fetch"
	"github.com/albertocavalcante/shaclgen/internal/shaclbase"
	"github.com/albertocavalcante/shaclgen/model"
	"github.com/albertocavalcante/shaclgen/render"
)

// Config controls template rendering.
type Config struct {
	// Output is the destination file; "-" writes to stdout.
	Output string

	// Template locates the template: a path, URL or "-".
	Template string

	// Context optionally locates a JSON-LD context document.
	Context string

	// ContextURL is the published URL of the context, exposed to templates.
	ContextURL string
}

// DefaultConfig returns the defaults: stdout, no template.
func DefaultConfig() Config {
	return Config{Output: "-"}
}

// Loader reads templates and context documents.
type Loader interface {
	ReadAll(ctx context.Context, locator string) ([]byte, error)
	Resolve(ctx context.Context, locator string) (fetch.Document, error)
}

// Data is the value templates are executed with.
type Data struct {
	Model      *model.Model
	Classes    []*model.Class
	Enums      []*model.Enum
	Properties []*model.Property

	// ContextURL is the --context-url value.
	ContextURL string

	// Context is the parsed --context document, or nil.
	Context *model.Context
}

// Renderer implements [render.Backend] for templates.
type Renderer struct {
	loader Loader
}

// NewRenderer creates a template renderer that reads through loader.
func NewRenderer(loader Loader) *Renderer {
	return &Renderer{loader: loader}
}

// Metadata returns information about this renderer.
func (r *Renderer) Metadata() render.Metadata {
	return render.Metadata{
		Name:        "template",
		Version:     "1.0.0",
		Description: "Any text through a Go text/template",
	}
}

// DefaultConfig returns the configuration used when no option is given.
func (r *Renderer) DefaultConfig() Config {
	return DefaultConfig()
}

// DeclareFlags registers the template options.
func (r *Renderer) DeclareFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.Output, "output", "o", cfg.Output, `output file ("-" for stdout)`)
	fs.StringVarP(&cfg.Template, "template", "t", cfg.Template, "template path or URL (required)")
	fs.StringVar(&cfg.Context, "context", cfg.Context, "JSON-LD context document used to compact IRIs")
	fs.StringVar(&cfg.ContextURL, "context-url", cfg.ContextURL, "URL the context is published at")
}

// Render executes the template.
func (r *Renderer) Render(ctx context.Context, cfg Config, m *model.Model) (*render.Output, error) {
	if cfg.Template == "" {
		return nil, errors.New("--template is required")
	}

	src, err := r.loader.ReadAll(ctx, cfg.Template)
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}

	data := &Data{
		Model:      m,
		Classes:    m.Classes,
		Enums:      m.Enums,
		Properties: m.Properties,
		ContextURL: cfg.ContextURL,
	}
	if cfg.Context != "" {
		doc, err := r.loader.Resolve(ctx, cfg.Context)
		if err != nil {
			return nil, fmt.Errorf("load context: %w", err)
		}
		if data.Context, err = model.ParseContext(doc); err != nil {
			return nil, fmt.Errorf("load context: %s: %w", cfg.Context, err)
		}
	}

	tmpl, err := template.New(path.Base(cfg.Template)).
		Option("missingkey=error").
		Funcs(Funcs(m, data.Context)).
		Parse(string(src))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return render.Single(cfg.Output, buf.Bytes()), nil
}

// Funcs returns the helpers available to templates.
//
//	compact IRI        short name from the context (IRI unchanged without one)
//	localName IRI      last IRI segment
//	export name        exported Go-style identifier
//	snake name         snake_case
//	screaming name     SCREAMING_SNAKE_CASE
//	upper, lower s     case conversion
//	join sep list      strings.Join
//	properties class   inherited then own property constraints
//	ancestors class    superclasses, nearest first
//	class IRI          class by IRI, or nil
func Funcs(m *model.Model, c *model.Context) template.FuncMap {
	return template.FuncMap{
		"compact":   c.Compact,
		"localName": shaclbase.LocalName,
		"export":    shaclbase.ExportName,
		"snake":     shaclbase.CamelToSnake,
		"screaming": shaclbase.CamelToScreamingSnake,
		"upper":     strings.ToUpper,
		"lower":     strings.ToLower,
		"join": func(sep string, elems []string) string {
			return strings.Join(elems, sep)
		},
		"properties": m.AllProperties,
		"ancestors":  m.Ancestors,
		"class": func(iri string) *model.Class {
			cls, _ := m.Class(iri)
			return cls
		},
	}
}

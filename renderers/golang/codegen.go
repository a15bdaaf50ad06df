// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package golang generates Go source code from a SHACL model.
//
// Each class becomes a struct that embeds its superclasses. Properties map to
// fields by cardinality: a required single value is T, an optional one *T and
// a multi-valued one []T. References to other classes are always pointers.
// Enumerations become string types with one constant per individual.
package golang

import (
	"bytes"
	"fmt"
	"go/token"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/albertocavalcante/shaclgen/internal/shaclbase"
	"github.com/albertocavalcante/shaclgen/model"
	"github.com/albertocavalcante/shaclgen/render"
)

// Config controls code generation behavior.
type Config struct {
	// Output is the destination file; "-" writes to stdout.
	Output string

	// PackageName is the Go package name for generated code.
	PackageName string

	// Classes limits generation to these class names and their
	// dependencies. If empty, everything is generated.
	Classes []string
}

// DefaultConfig returns sensible defaults for code generation.
func DefaultConfig() Config {
	return Config{
		Output:      "-",
		PackageName: "model",
	}
}

// Generator produces Go code from a model.
type Generator struct {
	model  *model.Model
	config Config

	// Type filter (nil = all types)
	typeFilter map[string]bool
}

// New creates a new Generator.
func New(m *model.Model, cfg Config) *Generator {
	g := &Generator{model: m, config: cfg}
	if len(cfg.Classes) > 0 {
		g.typeFilter = make(map[string]bool, len(cfg.Classes))
		for _, name := range cfg.Classes {
			g.typeFilter[name] = true
		}
		g.typeFilter = render.ResolveDeps(m, g.typeFilter)
	}
	return g
}

func (g *Generator) shouldInclude(name string) bool {
	return g.typeFilter == nil || g.typeFilter[name]
}

// Generate returns the gofmt-formatted source file.
func (g *Generator) Generate() ([]byte, error) {
	if !token.IsIdentifier(g.config.PackageName) {
		return nil, fmt.Errorf("invalid package name %q", g.config.PackageName)
	}

	if err := g.checkDeclarations(); err != nil {
		return nil, err
	}

	f := jen.NewFile(g.config.PackageName)
	f.HeaderComment("Code generated by shaclgen. DO NOT EDIT.")

	for _, e := range g.model.Enums {
		if g.shouldInclude(e.Name) {
			g.generateEnum(f, e)
		}
	}
	for _, c := range g.model.Classes {
		if !g.shouldInclude(c.Name) {
			continue
		}
		if err := g.generateClass(f, c); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return buf.Bytes(), nil
}

// ── Enumeration → string type ───────────────────────────────────────

func (g *Generator) generateEnum(f *jen.File, e *model.Enum) {
	name := typeName(e.Name)
	writeDoc(f, e.Comment)
	f.Type().Id(name).String()

	if len(e.Values) == 0 {
		return
	}
	defs := make([]jen.Code, 0, len(e.Values))
	for _, v := range e.Values {
		defs = append(defs, commented(v.Comment).Id(constName(e, v)).Id(name).Op("=").Lit(v.IRI))
	}
	f.Const().Defs(defs...)
}

func constName(e *model.Enum, v *model.EnumValue) string {
	return typeName(e.Name) + shaclbase.ExportName(v.Name)
}

// checkDeclarations rejects models whose types and constants would share a
// package-level identifier.
func (g *Generator) checkDeclarations() error {
	declared := make(map[string]string)
	declare := func(ident, iri string) error {
		if other, ok := declared[ident]; ok {
			return fmt.Errorf("%s and %s both map to Go identifier %s", other, iri, ident)
		}
		declared[ident] = iri
		return nil
	}
	for _, e := range g.model.Enums {
		if !g.shouldInclude(e.Name) {
			continue
		}
		if err := declare(typeName(e.Name), e.IRI); err != nil {
			return err
		}
		for _, v := range e.Values {
			if err := declare(constName(e, v), v.IRI); err != nil {
				return err
			}
		}
	}
	for _, c := range g.model.Classes {
		if !g.shouldInclude(c.Name) {
			continue
		}
		if err := declare(typeName(c.Name), c.IRI); err != nil {
			return err
		}
	}
	return nil
}

// ── Class → struct ──────────────────────────────────────────────────

func (g *Generator) generateClass(f *jen.File, c *model.Class) error {
	name := typeName(c.Name)

	var (
		fields   []jen.Code
		embedded []string
	)
	for _, iri := range c.Parents {
		if parent, ok := g.model.Class(iri); ok {
			embedded = append(embedded, typeName(parent.Name))
			fields = append(fields, jen.Id(typeName(parent.Name)))
		}
	}
	names, err := fieldNames(c, embedded)
	if err != nil {
		return err
	}
	if len(fields) > 0 && len(c.Properties) > 0 {
		fields = append(fields, jen.Line())
	}
	for i, ref := range c.Properties {
		fields = append(fields, g.field(names[i], ref))
	}

	writeDoc(f, c.Comment)
	f.Type().Id(name).Struct(fields...)

	f.Comment("TypeIRI returns the IRI of the " + name + " class.")
	f.Func().Params(jen.Id(name)).Id("TypeIRI").Params().String().Block(
		jen.Return(jen.Lit(c.IRI)),
	)
	f.Comment("Abstract reports whether " + name + " may only be instantiated through a subclass.")
	f.Func().Params(jen.Id(name)).Id("Abstract").Params().Bool().Block(
		jen.Return(jen.Lit(c.Abstract)),
	)
	return nil
}

func (g *Generator) field(name string, ref *model.PropertyRef) jen.Code {
	key := ref.Name
	if !ref.Required() || ref.IsList() {
		key += ",omitempty"
	}

	stmt := commented(ref.Comment()).Id(name)
	typ := g.valueType(ref)
	isClass := g.isClass(ref.Class)
	switch {
	case ref.IsList() && isClass:
		stmt.Index().Op("*").Add(typ)
	case ref.IsList():
		stmt.Index().Add(typ)
	case isClass || !ref.Required():
		stmt.Op("*").Add(typ)
	default:
		stmt.Add(typ)
	}
	return stmt.Tag(map[string]string{"json": key})
}

func (g *Generator) isClass(iri string) bool {
	if iri == "" {
		return false
	}
	_, ok := g.model.Class(iri)
	return ok
}

func (g *Generator) valueType(ref *model.PropertyRef) jen.Code {
	if ref.Class != "" {
		if c, ok := g.model.Class(ref.Class); ok {
			return jen.Id(typeName(c.Name))
		}
		if e, ok := g.model.Enum(ref.Class); ok {
			return jen.Id(typeName(e.Name))
		}
		return jen.String() // IRI of something outside the model
	}
	switch shaclbase.Classify(ref.Datatype) {
	case shaclbase.KindInteger:
		return jen.Int64()
	case shaclbase.KindNumber:
		return jen.Float64()
	case shaclbase.KindBoolean:
		return jen.Bool()
	case shaclbase.KindDateTime:
		return jen.Qual("time", "Time")
	}
	return jen.String()
}

// ── Helpers ─────────────────────────────────────────────────────────

func typeName(name string) string {
	if out := shaclbase.ExportName(name); out != "" {
		return out
	}
	return "X"
}

// fieldNames returns the Go field name of each property of c. Names taken by
// the embedded parents or by the methods every struct carries get a "Value"
// suffix.
func fieldNames(c *model.Class, embedded []string) ([]string, error) {
	reserved := map[string]bool{"TypeIRI": true, "Abstract": true}
	for _, name := range embedded {
		reserved[name] = true
	}
	seen := make(map[string]string, len(c.Properties))
	names := make([]string, len(c.Properties))
	for i, ref := range c.Properties {
		name := typeName(ref.Name)
		if reserved[name] {
			name += "Value"
		}
		if other, ok := seen[name]; ok {
			return nil, fmt.Errorf("class %s: properties %s and %s both map to field %s", c.IRI, other, ref.Name, name)
		}
		seen[name] = ref.Name
		names[i] = name
	}
	return names, nil
}

func writeDoc(f *jen.File, doc string) {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return
	}
	for line := range strings.SplitSeq(doc, "\n") {
		f.Comment(strings.TrimRight(line, " "))
	}
}

// commented starts a statement with doc as line comments.
func commented(doc string) *jen.Statement {
	stmt := &jen.Statement{}
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return stmt
	}
	for line := range strings.SplitSeq(doc, "\n") {
		stmt.Comment(strings.TrimRight(line, " ")).Line()
	}
	return stmt
}

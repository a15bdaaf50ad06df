// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package python renders Python bindings from a SHACL model.
//
// The generated module uses only the standard library:
//   - an Enum per enumeration, valued by the individual IRIs
//   - a keyword-only dataclass per class, subclassing its superclasses
//   - a TYPE_IRI class variable naming the class IRI
package python

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/albertocavalcante/shaclgen/internal/shaclbase"
	"github.com/albertocavalcante/shaclgen/model"
	"github.com/albertocavalcante/shaclgen/render"
)

// Config controls Python rendering.
type Config struct {
	// Output is the destination file; "-" writes to stdout.
	Output string

	// Classes limits rendering to these class names and their dependencies.
	// If empty, everything is rendered.
	Classes []string
}

// DefaultConfig returns the defaults: everything to stdout.
func DefaultConfig() Config {
	return Config{Output: "-"}
}

// Codegen renders one Python module.
type Codegen struct {
	model  *model.Model
	config Config

	filter map[string]bool
}

// New creates a new Codegen.
func New(m *model.Model, cfg Config) *Codegen {
	g := &Codegen{model: m, config: cfg}
	if len(cfg.Classes) > 0 {
		g.filter = make(map[string]bool, len(cfg.Classes))
		for _, name := range cfg.Classes {
			g.filter[name] = true
		}
		g.filter = render.ResolveDeps(m, g.filter)
	}
	return g
}

func (g *Codegen) include(name string) bool {
	return g.filter == nil || g.filter[name]
}

// Generate returns the module source.
func (g *Codegen) Generate() ([]byte, error) {
	if err := g.checkDeclarations(); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	usesOptional := false
	usesField := false

	for _, e := range g.model.Enums {
		if !g.include(e.Name) {
			continue
		}
		g.generateEnum(&body, e)
	}

	for _, c := range g.model.TopoClasses() {
		if !g.include(c.Name) {
			continue
		}
		for _, ref := range c.Properties {
			switch {
			case ref.IsList():
				usesField = true
			case !ref.Required():
				usesOptional = true
			}
		}
		g.generateClass(&body, c)
	}

	var buf bytes.Buffer
	buf.WriteString("# Code generated by shaclgen. DO NOT EDIT.\n\n")
	buf.WriteString("from __future__ import annotations\n\n")
	if usesField {
		buf.WriteString("from dataclasses import dataclass, field\n")
	} else {
		buf.WriteString("from dataclasses import dataclass\n")
	}
	buf.WriteString("from enum import Enum\n")
	if usesOptional {
		buf.WriteString("from typing import ClassVar, Optional\n")
	} else {
		buf.WriteString("from typing import ClassVar\n")
	}
	buf.Write(body.Bytes())
	return buf.Bytes(), nil
}

// imported names the module imports at top level; a class may not shadow them.
var imported = map[string]bool{"Enum": true, "ClassVar": true, "Optional": true}

// checkDeclarations rejects models whose classes, enum members or fields
// would share a Python identifier in the same scope.
func (g *Codegen) checkDeclarations() error {
	declared := make(map[string]string)
	declare := func(ident, iri string) error {
		if imported[ident] {
			return fmt.Errorf("%s maps to Python identifier %s, which the module imports", iri, ident)
		}
		if other, ok := declared[ident]; ok {
			return fmt.Errorf("%s and %s both map to Python class %s", other, iri, ident)
		}
		declared[ident] = iri
		return nil
	}

	for _, e := range g.model.Enums {
		if !g.include(e.Name) {
			continue
		}
		if err := declare(className(e.Name), e.IRI); err != nil {
			return err
		}
		members := make(map[string]string, len(e.Values))
		for _, v := range e.Values {
			name := memberName(v.Name)
			if other, ok := members[name]; ok {
				return fmt.Errorf("enum %s: %s and %s both map to member %s", e.IRI, other, v.IRI, name)
			}
			members[name] = v.IRI
		}
	}

	for _, c := range g.model.Classes {
		if !g.include(c.Name) {
			continue
		}
		if err := declare(className(c.Name), c.IRI); err != nil {
			return err
		}
		fields := make(map[string]string, len(c.Properties))
		for _, ref := range c.Properties {
			name := shaclbase.PythonName(ref.Name)
			if other, ok := fields[name]; ok {
				return fmt.Errorf("class %s: properties %s and %s both map to field %s", c.IRI, other, ref.Name, name)
			}
			fields[name] = ref.Name
		}
	}
	return nil
}

// ── Enum ────────────────────────────────────────────────────────────

func (g *Codegen) generateEnum(buf *bytes.Buffer, e *model.Enum) {
	fmt.Fprintf(buf, "\n\nclass %s(Enum):\n", className(e.Name))
	writeDocstring(buf, e.Comment, "    ")
	if len(e.Values) == 0 {
		buf.WriteString("    pass\n")
		return
	}
	if e.Comment != "" {
		buf.WriteString("\n")
	}
	for _, v := range e.Values {
		fmt.Fprintf(buf, "    %s = %s\n", memberName(v.Name), strconv.Quote(v.IRI))
	}
}

// ── Class → dataclass ───────────────────────────────────────────────

func (g *Codegen) generateClass(buf *bytes.Buffer, c *model.Class) {
	bases := g.bases(c)

	buf.WriteString("\n\n@dataclass(kw_only=True)\n")
	if len(bases) > 0 {
		fmt.Fprintf(buf, "class %s(%s):\n", className(c.Name), strings.Join(bases, ", "))
	} else {
		fmt.Fprintf(buf, "class %s:\n", className(c.Name))
	}
	if writeDocstring(buf, c.Comment, "    ") {
		buf.WriteString("\n")
	}

	fmt.Fprintf(buf, "    TYPE_IRI: ClassVar[str] = %s\n", strconv.Quote(c.IRI))
	// Set on every class so subclasses of an abstract class are concrete.
	if c.Abstract {
		buf.WriteString("    ABSTRACT: ClassVar[bool] = True\n")
	} else {
		buf.WriteString("    ABSTRACT: ClassVar[bool] = False\n")
	}

	for _, ref := range c.Properties {
		if comment := ref.Comment(); comment != "" {
			for line := range strings.SplitSeq(comment, "\n") {
				fmt.Fprintf(buf, "    # %s\n", strings.TrimRight(line, " "))
			}
		}
		fmt.Fprintf(buf, "    %s\n", g.field(ref))
	}
}

// bases returns the Python base classes of c. A parent that is already an
// ancestor of another parent is left out, since Python cannot linearize
// class D(A, B) when B derives from A.
func (g *Codegen) bases(c *model.Class) []string {
	inherited := make(map[string]bool)
	for _, iri := range c.Parents {
		if parent, ok := g.model.Class(iri); ok {
			for _, a := range g.model.Ancestors(parent) {
				inherited[a.IRI] = true
			}
		}
	}

	var out []string
	seen := make(map[string]bool, len(c.Parents))
	for _, iri := range c.Parents {
		if inherited[iri] || seen[iri] {
			continue
		}
		seen[iri] = true
		if parent, ok := g.model.Class(iri); ok {
			out = append(out, className(parent.Name))
		}
	}
	return out
}

func (g *Codegen) field(ref *model.PropertyRef) string {
	name := shaclbase.PythonName(ref.Name)
	typ := g.valueType(ref)
	switch {
	case ref.IsList():
		return fmt.Sprintf("%s: list[%s] = field(default_factory=list)", name, typ)
	case ref.Required():
		return fmt.Sprintf("%s: %s", name, typ)
	default:
		return fmt.Sprintf("%s: Optional[%s] = None", name, typ)
	}
}

func (g *Codegen) valueType(ref *model.PropertyRef) string {
	if ref.Class != "" {
		if c, ok := g.model.Class(ref.Class); ok {
			return className(c.Name)
		}
		if e, ok := g.model.Enum(ref.Class); ok {
			return className(e.Name)
		}
		return "str" // IRI of something outside the model
	}
	switch shaclbase.Classify(ref.Datatype) {
	case shaclbase.KindInteger:
		return "int"
	case shaclbase.KindNumber:
		return "float"
	case shaclbase.KindBoolean:
		return "bool"
	}
	return "str"
}

// ── Helpers ─────────────────────────────────────────────────────────

func className(name string) string {
	out := shaclbase.ExportName(name)
	if out == "" {
		return "_"
	}
	return out
}

func memberName(name string) string {
	out := shaclbase.CamelToScreamingSnake(name)
	if out == "" || (out[0] >= '0' && out[0] <= '9') {
		out = "_" + out
	}
	return out
}

// writeDocstring writes doc as a docstring and reports whether it wrote one.
func writeDocstring(buf *bytes.Buffer, doc, indent string) bool {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return false
	}
	doc = strings.ReplaceAll(doc, `\`, `\\`)
	doc = strings.ReplaceAll(doc, `"""`, `\"\"\"`)
	if !strings.Contains(doc, "\n") {
		fmt.Fprintf(buf, "%s\"\"\"%s\"\"\"\n", indent, doc)
		return true
	}
	fmt.Fprintf(buf, "%s\"\"\"\n", indent)
	for line := range strings.SplitSeq(doc, "\n") {
		if line = strings.TrimRight(line, " "); line == "" {
			buf.WriteString("\n")
			continue
		}
		fmt.Fprintf(buf, "%s%s\n", indent, line)
	}
	fmt.Fprintf(buf, "%s\"\"\"\n", indent)
	return true
}

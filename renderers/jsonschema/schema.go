// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package jsonschema renders a SHACL model as a JSON Schema document.
//
// Every class and enumeration is a "$defs" entry. Subclasses extend their
// superclasses with "allOf"; the document root accepts any concrete class.
// A reference to a class accepts an inline object or an IRI string.
package jsonschema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/albertocavalcante/shaclgen/internal/shaclbase"
	"github.com/albertocavalcante/shaclgen/model"
)

// Draft is the "$schema" of every generated document.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is the subset of JSON Schema the renderer emits.
type Schema struct {
	Schema      string             `json:"$schema,omitempty" yaml:"$schema,omitempty"`
	ID          string             `json:"$id,omitempty" yaml:"$id,omitempty"`
	Title       string             `json:"title,omitempty" yaml:"title,omitempty"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Ref         string             `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Type        string             `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string             `json:"format,omitempty" yaml:"format,omitempty"`
	Pattern     string             `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Minimum     *int               `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Enum        []string           `json:"enum,omitempty" yaml:"enum,omitempty"`
	Items       *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
	MinItems    *int               `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems    *int               `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required    []string           `json:"required,omitempty" yaml:"required,omitempty"`
	AllOf       []*Schema          `json:"allOf,omitempty" yaml:"allOf,omitempty"`
	AnyOf       []*Schema          `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`
	Defs        map[string]*Schema `json:"$defs,omitempty" yaml:"$defs,omitempty"`
}

// Build converts the model into a schema document.
func Build(m *model.Model, cfg Config) *Schema {
	doc := &Schema{
		Schema: Draft,
		ID:     cfg.SchemaID,
		Title:  cfg.Title,
		Defs:   make(map[string]*Schema, len(m.Classes)+len(m.Enums)),
	}

	for _, e := range m.Enums {
		values := make([]string, 0, len(e.Values))
		for _, v := range e.Values {
			values = append(values, v.IRI)
		}
		doc.Defs[e.Name] = &Schema{
			Description: e.Comment,
			Type:        "string",
			Enum:        values,
		}
	}

	for _, c := range m.Classes {
		doc.Defs[c.Name] = classSchema(m, c)
		if !c.Abstract {
			doc.AnyOf = append(doc.AnyOf, defRef(c.Name))
		}
	}
	return doc
}

func classSchema(m *model.Model, c *model.Class) *Schema {
	own := &Schema{Type: "object"}
	for _, ref := range c.Properties {
		if own.Properties == nil {
			own.Properties = make(map[string]*Schema, len(c.Properties))
		}
		own.Properties[ref.Name] = propertySchema(m, ref)
		if ref.Required() {
			own.Required = append(own.Required, ref.Name)
		}
	}

	var parents []*Schema
	for _, iri := range c.Parents {
		if parent, ok := m.Class(iri); ok {
			parents = append(parents, defRef(parent.Name))
		}
	}
	if len(parents) == 0 {
		own.Description = c.Comment
		return own
	}
	return &Schema{
		Description: c.Comment,
		AllOf:       append(parents, own),
	}
}

func propertySchema(m *model.Model, ref *model.PropertyRef) *Schema {
	value := valueSchema(m, ref)
	if !ref.IsList() {
		value.Description = ref.Comment()
		return value
	}
	s := &Schema{
		Description: ref.Comment(),
		Type:        "array",
		Items:       value,
	}
	if ref.MinCount > 0 {
		n := ref.MinCount
		s.MinItems = &n
	}
	if ref.MaxCount != nil {
		n := *ref.MaxCount
		s.MaxItems = &n
	}
	return s
}

func valueSchema(m *model.Model, ref *model.PropertyRef) *Schema {
	if ref.Class != "" {
		if c, ok := m.Class(ref.Class); ok {
			return &Schema{AnyOf: []*Schema{
				defRef(c.Name),
				{Type: "string", Format: "iri-reference"},
			}}
		}
		if e, ok := m.Enum(ref.Class); ok {
			return defRef(e.Name)
		}
		return &Schema{Type: "string", Format: "iri-reference"}
	}

	s := &Schema{}
	switch shaclbase.Classify(ref.Datatype) {
	case shaclbase.KindInteger:
		s.Type = "integer"
		if lo, ok := shaclbase.MinInclusive(ref.Datatype); ok {
			s.Minimum = &lo
		}
	case shaclbase.KindNumber:
		s.Type = "number"
	case shaclbase.KindBoolean:
		s.Type = "boolean"
	case shaclbase.KindDateTime:
		s.Type = "string"
		s.Format = "date-time"
	default:
		s.Type = "string"
		if ref.Datatype == shaclbase.TypeAnyURI {
			s.Format = "uri"
		}
		s.Pattern = ref.Pattern
	}
	return s
}

func defRef(name string) *Schema {
	return &Schema{Ref: "#/$defs/" + name}
}

func encodeJSON(doc *Schema) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeYAML(doc *Schema) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	return buf.Bytes(), nil
}

// Check compiles a JSON-encoded schema, reporting any document that is not
// a valid draft 2020-12 schema.
func Check(data []byte) error {
	const url = "shaclgen.schema.json"
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("invalid schema: %w", err)
	}
	if _, err := compiler.Compile(url); err != nil {
		return fmt.Errorf("invalid schema: %w", err)
	}
	return nil
}

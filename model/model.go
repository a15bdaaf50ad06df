// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package model defines the renderer-agnostic semantic model built from a
// SHACL shape document.
//
// A shape document is a JSON-LD graph of OWL/RDFS classes, RDF properties and
// SHACL node shapes. [Build] expands it and resolves every reference, so a
// [Model] handed to a renderer is always internally consistent: property
// constraints point at defined properties, superclasses at defined classes,
// and the inheritance graph has no cycles.
//
// A Model is immutable once built and may be shared read-only.
package model

// Model is the semantic model of one shape document.
type Model struct {
	// Classes are the non-enumeration classes, sorted by name.
	Classes []*Class

	// Enums are the classes that enumerate named individuals, sorted by name.
	Enums []*Enum

	// Properties are the declared RDF properties, sorted by name.
	Properties []*Property

	classes    map[string]*Class
	enums      map[string]*Enum
	properties map[string]*Property
}

// Class is a class definition with its property constraints.
type Class struct {
	// IRI is the absolute class IRI.
	IRI string

	// Name is the local name of the IRI.
	Name string

	// Comment is the rdfs:comment, if any.
	Comment string

	// Parents lists superclass IRIs in document order.
	Parents []string

	// Properties lists the class's own property constraints in document order.
	Properties []*PropertyRef

	// Abstract marks classes that cannot be instantiated directly.
	Abstract bool
}

// Property is a declared RDF property.
type Property struct {
	IRI     string
	Name    string
	Comment string

	// Range is the rdfs:range IRI, if declared.
	Range string
}

// PropertyRef is one sh:property constraint of a class.
type PropertyRef struct {
	// Property is the resolved sh:path.
	Property *Property

	// Name is sh:name, or the local name of the path.
	Name string

	// Datatype is the XSD datatype IRI for literal values.
	Datatype string

	// Class is the class or enumeration IRI for object values.
	Class string

	// MinCount is sh:minCount (0 when absent).
	MinCount int

	// MaxCount is sh:maxCount; nil means unbounded.
	MaxCount *int

	// Pattern is sh:pattern, if any.
	Pattern string
}

// Comment returns the documentation of the underlying property.
func (p *PropertyRef) Comment() string {
	if p.Property == nil {
		return ""
	}
	return p.Property.Comment
}

// Required reports whether at least one value must be present.
func (p *PropertyRef) Required() bool {
	return p.MinCount > 0
}

// IsList reports whether more than one value is permitted.
func (p *PropertyRef) IsList() bool {
	return p.MaxCount == nil || *p.MaxCount > 1
}

// IsReference reports whether the value is a class or enumeration.
func (p *PropertyRef) IsReference() bool {
	return p.Class != ""
}

// Enum is a class whose instances are a fixed set of named individuals.
type Enum struct {
	IRI     string
	Name    string
	Comment string

	// Values lists the permitted individuals in document order.
	Values []*EnumValue
}

// EnumValue is one named individual of an enumeration.
type EnumValue struct {
	IRI     string
	Name    string
	Comment string
}

// Class returns the class with the given IRI.
func (m *Model) Class(iri string) (*Class, bool) {
	c, ok := m.classes[iri]
	return c, ok
}

// Enum returns the enumeration with the given IRI.
func (m *Model) Enum(iri string) (*Enum, bool) {
	e, ok := m.enums[iri]
	return e, ok
}

// Property returns the property with the given IRI.
func (m *Model) Property(iri string) (*Property, bool) {
	p, ok := m.properties[iri]
	return p, ok
}

// Ancestors returns all superclasses of c, nearest first, without duplicates.
func (m *Model) Ancestors(c *Class) []*Class {
	var out []*Class
	seen := map[string]bool{c.IRI: true}
	queue := append([]string(nil), c.Parents...)
	for len(queue) > 0 {
		iri := queue[0]
		queue = queue[1:]
		if seen[iri] {
			continue
		}
		seen[iri] = true
		parent, ok := m.classes[iri]
		if !ok {
			continue
		}
		out = append(out, parent)
		queue = append(queue, parent.Parents...)
	}
	return out
}

// AllProperties returns inherited constraints followed by c's own, with the
// most distant ancestor first.
func (m *Model) AllProperties(c *Class) []*PropertyRef {
	ancestors := m.Ancestors(c)
	var out []*PropertyRef
	for i := len(ancestors) - 1; i >= 0; i-- {
		out = append(out, ancestors[i].Properties...)
	}
	return append(out, c.Properties...)
}

// TopoClasses returns the classes ordered so that every class follows its
// superclasses. Among unrelated classes the name order is kept.
func (m *Model) TopoClasses() []*Class {
	out := make([]*Class, 0, len(m.Classes))
	done := make(map[string]bool, len(m.Classes))
	var visit func(c *Class)
	visit = func(c *Class) {
		if done[c.IRI] {
			return
		}
		done[c.IRI] = true
		for _, p := range c.Parents {
			if parent, ok := m.classes[p]; ok {
				visit(parent)
			}
		}
		out = append(out, c)
	}
	for _, c := range m.Classes {
		visit(c)
	}
	return out
}

// New assembles a model from already validated definitions. It is used by
// [Build] and by tests that construct models directly.
func New(classes []*Class, enums []*Enum, properties []*Property) *Model {
	m := &Model{
		Classes:    classes,
		Enums:      enums,
		Properties: properties,
		classes:    make(map[string]*Class, len(classes)),
		enums:      make(map[string]*Enum, len(enums)),
		properties: make(map[string]*Property, len(properties)),
	}
	for _, c := range classes {
		m.classes[c.IRI] = c
	}
	for _, e := range enums {
		m.enums[e.IRI] = e
	}
	for _, p := range properties {
		m.properties[p.IRI] = p
	}
	return m
}

// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package model

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/piprate/json-gold/ld"

	"github.com/albertocavalcante/shaclgen/internal/shaclbase"
)

// ErrInvalidModel is matched by every error returned from [Build] for a
// document that is well-formed JSON but not a valid shape document.
var ErrInvalidModel = errors.New("invalid model")

// InvalidModelError describes why a shape document was rejected.
type InvalidModelError struct {
	Reason string
}

func (e *InvalidModelError) Error() string {
	return "invalid model: " + e.Reason
}

// Is reports whether target is [ErrInvalidModel].
func (e *InvalidModelError) Is(target error) bool {
	return target == ErrInvalidModel
}

func invalidf(format string, args ...any) error {
	return &InvalidModelError{Reason: fmt.Sprintf(format, args...)}
}

// Options configures [Build].
type Options struct {
	// HTTPClient loads remote JSON-LD contexts. Defaults to [http.DefaultClient].
	HTTPClient *http.Client
}

// node is one expanded JSON-LD node, merged across every occurrence of its @id.
type node struct {
	id    string
	types map[string]bool
	props map[string][]any
}

func (n *node) is(types ...string) bool {
	for _, t := range types {
		if n.types[t] {
			return true
		}
	}
	return false
}

// Build expands doc as JSON-LD and constructs the semantic model.
func Build(ctx context.Context, doc any, opts Options) (*Model, error) {
	switch doc.(type) {
	case map[string]any, []any:
	default:
		return nil, invalidf("top-level value must be an object or an array, got %T", doc)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	ldOpts := ld.NewJsonLdOptions("")
	ldOpts.DocumentLoader = ld.NewDefaultDocumentLoader(client)

	expanded, err := ld.NewJsonLdProcessor().Expand(doc, ldOpts)
	if err != nil {
		return nil, invalidf("expand JSON-LD: %v", err)
	}

	b := &builder{nodes: make(map[string]*node)}
	b.collect(expanded)
	return b.build()
}

type builder struct {
	nodes map[string]*node
	order []string
}

// collect indexes top-level nodes by @id, descending into @graph containers.
func (b *builder) collect(items []any) {
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if graph, ok := obj["@graph"].([]any); ok {
			b.collect(graph)
		}
		id, _ := obj["@id"].(string)
		if id == "" {
			continue
		}
		n := b.nodes[id]
		if n == nil {
			n = &node{id: id, types: make(map[string]bool), props: make(map[string][]any)}
			b.nodes[id] = n
			b.order = append(b.order, id)
		}
		mergeNode(n, obj)
	}
}

func mergeNode(n *node, obj map[string]any) {
	if types, ok := obj["@type"].([]any); ok {
		for _, t := range types {
			if s, ok := t.(string); ok {
				n.types[s] = true
			}
		}
	}
	for k, v := range obj {
		if strings.HasPrefix(k, "@") {
			continue
		}
		if vals, ok := v.([]any); ok {
			n.props[k] = append(n.props[k], vals...)
		}
	}
}

func (b *builder) build() (*Model, error) {
	classNodes := make(map[string]*node)
	var (
		classOrder []string
		shapes     []*node
		properties []*Property
		propIndex  = make(map[string]*Property)
	)

	for _, id := range b.order {
		n := b.nodes[id]
		switch {
		case n.is(owlClass, rdfsClass) || (n.is(shNodeShape) && len(n.props[shTargetClass]) == 0):
			classNodes[id] = n
			classOrder = append(classOrder, id)
		case n.is(shNodeShape):
			shapes = append(shapes, n)
		case n.is(rdfProperty, owlObjectProperty, owlDatatypeProperty):
			p := &Property{
				IRI:     id,
				Name:    shaclbase.LocalName(id),
				Comment: stringValue(n.props[rdfsComment]),
				Range:   firstID(n.props[rdfsRange]),
			}
			properties = append(properties, p)
			propIndex[id] = p
		}
	}

	// Shapes that target a class contribute their constraints to it.
	targeted := make(map[string][]*node)
	for _, s := range shapes {
		for _, target := range ids(s.props[shTargetClass]) {
			if classNodes[target] == nil {
				return nil, invalidf("shape %s: target class %s is not defined", s.id, target)
			}
			targeted[target] = append(targeted[target], s)
		}
	}

	classes := make(map[string]*Class, len(classOrder))
	for _, id := range classOrder {
		n := classNodes[id]
		c := &Class{
			IRI:     id,
			Name:    shaclbase.LocalName(id),
			Comment: stringValue(n.props[rdfsComment]),
		}
		for _, parent := range ids(n.props[rdfsSubClassOf]) {
			if parent == owlThing {
				continue
			}
			if classNodes[parent] == nil {
				return nil, invalidf("class %s: superclass %s is not defined", id, parent)
			}
			c.Parents = append(c.Parents, parent)
		}
		abstract, err := boolValue(n.props[s2cIsAbstract])
		if err != nil {
			return nil, invalidf("class %s: isAbstract: %v", id, err)
		}
		c.Abstract = abstract
		classes[id] = c
	}

	if err := checkCycles(classOrder, classes); err != nil {
		return nil, err
	}

	// Named individuals turn their class into an enumeration.
	enumValues := make(map[string][]*EnumValue)
	for _, id := range b.order {
		n := b.nodes[id]
		if !n.is(owlNamedIndividual) {
			continue
		}
		for _, t := range sortedKeys(n.types) {
			if classNodes[t] == nil {
				continue
			}
			enumValues[t] = append(enumValues[t], &EnumValue{
				IRI:     id,
				Name:    shaclbase.LocalName(id),
				Comment: stringValue(n.props[rdfsComment]),
			})
		}
	}

	for _, id := range classOrder {
		c := classes[id]
		sources := append([]*node{classNodes[id]}, targeted[id]...)
		paths := make(map[string]bool)
		names := make(map[string]string)
		for _, src := range sources {
			for _, raw := range src.props[shProperty] {
				ref, err := b.propertyRef(c, raw, propIndex, classNodes)
				if err != nil {
					return nil, err
				}
				if paths[ref.Property.IRI] {
					return nil, invalidf("class %s: property %s is constrained twice", id, ref.Property.IRI)
				}
				if other, ok := names[ref.Name]; ok {
					return nil, invalidf("class %s: properties %s and %s are both named %q", id, other, ref.Property.IRI, ref.Name)
				}
				paths[ref.Property.IRI] = true
				names[ref.Name] = ref.Property.IRI
				c.Properties = append(c.Properties, ref)
			}
		}
	}

	// Enumerations have no fields to inherit.
	for _, id := range classOrder {
		for _, parent := range classes[id].Parents {
			if _, ok := enumValues[parent]; ok {
				return nil, invalidf("class %s: superclass %s is an enumeration", id, parent)
			}
		}
	}

	var (
		classList []*Class
		enumList  []*Enum
	)
	for _, id := range classOrder {
		c := classes[id]
		if values, ok := enumValues[id]; ok {
			enumList = append(enumList, &Enum{IRI: c.IRI, Name: c.Name, Comment: c.Comment, Values: values})
			continue
		}
		classList = append(classList, c)
	}

	if err := checkNames(classList, enumList); err != nil {
		return nil, err
	}

	slices.SortFunc(classList, func(x, y *Class) int { return byName(x.Name, x.IRI, y.Name, y.IRI) })
	slices.SortFunc(enumList, func(x, y *Enum) int { return byName(x.Name, x.IRI, y.Name, y.IRI) })
	slices.SortFunc(properties, func(x, y *Property) int { return byName(x.Name, x.IRI, y.Name, y.IRI) })

	return New(classList, enumList, properties), nil
}

// propertyRef resolves one sh:property value of class c.
func (b *builder) propertyRef(c *Class, raw any, props map[string]*Property, classNodes map[string]*node) (*PropertyRef, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, invalidf("class %s: sh:property must be a node", c.IRI)
	}
	values := make(map[string][]any)
	// A bare reference points at a shape defined elsewhere in the graph.
	if id, _ := obj["@id"].(string); id != "" && len(obj) == 1 {
		n := b.nodes[id]
		if n == nil {
			return nil, invalidf("class %s: property shape %s is not defined", c.IRI, id)
		}
		values = n.props
	} else {
		for k, v := range obj {
			if vals, ok := v.([]any); ok && !strings.HasPrefix(k, "@") {
				values[k] = vals
			}
		}
	}

	path := firstID(values[shPath])
	if path == "" {
		return nil, invalidf("class %s: property shape has no sh:path", c.IRI)
	}
	prop, ok := props[path]
	if !ok {
		return nil, invalidf("class %s: property %s is not defined", c.IRI, path)
	}

	ref := &PropertyRef{
		Property: prop,
		Name:     stringValue(values[shName]),
		Datatype: firstID(values[shDatatype]),
		Class:    firstID(values[shClass]),
		Pattern:  stringValue(values[shPattern]),
	}
	if ref.Name == "" {
		ref.Name = prop.Name
	}
	if ref.Datatype != "" {
		ref.Class = ""
	}
	if ref.Datatype == "" && ref.Class == "" && prop.Range != "" {
		if classNodes[prop.Range] != nil {
			ref.Class = prop.Range
		} else {
			ref.Datatype = prop.Range
		}
	}
	if ref.Datatype == "" && ref.Class == "" {
		return nil, invalidf("class %s: property %s has no value type", c.IRI, path)
	}
	if ref.Class != "" && classNodes[ref.Class] == nil {
		return nil, invalidf("class %s: property %s references undefined class %s", c.IRI, path, ref.Class)
	}

	minCount, hasMin, err := countValue(values[shMinCount])
	if err != nil {
		return nil, invalidf("class %s: property %s: sh:minCount %v", c.IRI, path, err)
	}
	maxCount, hasMax, err := countValue(values[shMaxCount])
	if err != nil {
		return nil, invalidf("class %s: property %s: sh:maxCount %v", c.IRI, path, err)
	}
	if hasMin {
		ref.MinCount = minCount
	}
	if hasMax {
		if hasMin && minCount > maxCount {
			return nil, invalidf("class %s: property %s: sh:minCount %d exceeds sh:maxCount %d", c.IRI, path, minCount, maxCount)
		}
		ref.MaxCount = &maxCount
	}
	return ref, nil
}

// checkCycles rejects cyclic rdfs:subClassOf chains.
func checkCycles(order []string, classes map[string]*Class) error {
	const (
		unvisited = iota
		visiting
		visited
	)
	state := make(map[string]int, len(classes))
	var visit func(id string, path []string) error
	visit = func(id string, path []string) error {
		switch state[id] {
		case visiting:
			return invalidf("cyclic inheritance: %s", strings.Join(append(path, id), " -> "))
		case visited:
			return nil
		}
		state[id] = visiting
		for _, parent := range classes[id].Parents {
			if err := visit(parent, append(path, id)); err != nil {
				return err
			}
		}
		state[id] = visited
		return nil
	}
	for _, id := range order {
		if err := visit(id, nil); err != nil {
			return err
		}
	}
	return nil
}

// checkNames rejects classes and enumerations that share a local name, since
// every renderer derives identifiers from it.
func checkNames(classes []*Class, enums []*Enum) error {
	seen := make(map[string]string)
	check := func(name, iri string) error {
		if name == "" {
			return invalidf("%s has an empty local name", iri)
		}
		if other, ok := seen[name]; ok {
			return invalidf("name %q is used by both %s and %s", name, other, iri)
		}
		seen[name] = iri
		return nil
	}
	for _, c := range classes {
		if err := check(c.Name, c.IRI); err != nil {
			return err
		}
	}
	for _, e := range enums {
		if err := check(e.Name, e.IRI); err != nil {
			return err
		}
	}
	return nil
}

func byName(aName, aIRI, bName, bIRI string) int {
	if c := cmp.Compare(aName, bName); c != 0 {
		return c
	}
	return cmp.Compare(aIRI, bIRI)
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ids returns the @id of every node reference in vals.
func ids(vals []any) []string {
	var out []string
	for _, v := range vals {
		if obj, ok := v.(map[string]any); ok {
			if id, ok := obj["@id"].(string); ok {
				out = append(out, id)
			}
		}
	}
	return out
}

func firstID(vals []any) string {
	if all := ids(vals); len(all) > 0 {
		return all[0]
	}
	return ""
}

// literal returns the first @value in vals.
func literal(vals []any) (any, bool) {
	for _, v := range vals {
		if obj, ok := v.(map[string]any); ok {
			if lit, ok := obj["@value"]; ok {
				return lit, true
			}
		}
	}
	return nil, false
}

func stringValue(vals []any) string {
	v, ok := literal(vals)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func boolValue(vals []any) (bool, error) {
	v, ok := literal(vals)
	if !ok {
		return false, nil
	}
	switch v := v.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(v)
	}
	return false, fmt.Errorf("expected a boolean, got %v", v)
}

// countValue parses a cardinality literal. It must be a non-negative integer.
func countValue(vals []any) (int, bool, error) {
	v, ok := literal(vals)
	if !ok {
		return 0, false, nil
	}
	var n float64
	switch v := v.(type) {
	case float64:
		n = v
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false, fmt.Errorf("is not a number: %q", v)
		}
		n = f
	case string:
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, false, fmt.Errorf("is not an integer: %q", v)
		}
		n = float64(i)
	default:
		return 0, false, fmt.Errorf("is not an integer: %v", v)
	}
	if n < 0 || n != math.Trunc(n) || n > math.MaxInt32 {
		return 0, false, fmt.Errorf("must be a non-negative integer, got %v", v)
	}
	return int(n), true, nil
}

// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package model

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Context is a JSON-LD context overlay used to give IRIs the short names a
// published context assigns to them.
//
// A nil *Context is valid and leaves every IRI unchanged.
type Context struct {
	terms    map[string]string // term -> IRI
	reverse  map[string]string // IRI -> term
	prefixes []prefix          // longest IRI first
	vocab    string
}

type prefix struct {
	term string
	iri  string
}

// ParseContext reads the "@context" member of a context document. The member
// may be an object or an array of objects; remote context references (strings)
// are skipped.
func ParseContext(doc any) (*Context, error) {
	root, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("context document must be an object, got %T", doc)
	}
	raw, ok := root["@context"]
	if !ok {
		return nil, errors.New(`context document has no "@context" member`)
	}

	var objs []map[string]any
	switch v := raw.(type) {
	case map[string]any:
		objs = append(objs, v)
	case []any:
		for _, item := range v {
			if obj, ok := item.(map[string]any); ok {
				objs = append(objs, obj)
			}
		}
	case string:
	default:
		return nil, fmt.Errorf(`"@context" must be an object or an array, got %T`, raw)
	}

	c := &Context{
		terms:   make(map[string]string),
		reverse: make(map[string]string),
	}
	for _, obj := range objs {
		for term, def := range obj {
			if term == "@vocab" {
				if s, ok := def.(string); ok {
					c.vocab = s
				}
				continue
			}
			if strings.HasPrefix(term, "@") {
				continue
			}
			switch def := def.(type) {
			case string:
				c.terms[term] = def
			case map[string]any:
				if id, ok := def["@id"].(string); ok {
					c.terms[term] = id
				}
			}
		}
	}

	// Term values may themselves be compact IRIs using another term as prefix.
	resolved := make(map[string]string, len(c.terms))
	for term, iri := range c.terms {
		resolved[term] = c.expandWith(iri)
	}
	c.terms = resolved
	if c.vocab != "" {
		c.vocab = c.expandWith(c.vocab)
	}

	terms := make([]string, 0, len(c.terms))
	for term := range c.terms {
		terms = append(terms, term)
	}
	// Shorter terms win on reverse lookup, then lexical order.
	slices.SortFunc(terms, func(a, b string) int {
		if n := cmp.Compare(len(a), len(b)); n != 0 {
			return n
		}
		return cmp.Compare(a, b)
	})
	for _, term := range terms {
		iri := c.terms[term]
		if _, ok := c.reverse[iri]; !ok {
			c.reverse[iri] = term
		}
		if strings.HasSuffix(iri, "/") || strings.HasSuffix(iri, "#") {
			c.prefixes = append(c.prefixes, prefix{term: term, iri: iri})
		}
	}
	slices.SortStableFunc(c.prefixes, func(a, b prefix) int {
		return cmp.Compare(len(b.iri), len(a.iri))
	})
	return c, nil
}

func (c *Context) expandWith(value string) string {
	p, rest, ok := strings.Cut(value, ":")
	if !ok || strings.HasPrefix(rest, "//") {
		return value
	}
	if base, ok := c.terms[p]; ok {
		return base + rest
	}
	return value
}

// Compact returns the shortest name the context gives iri: an exact term,
// then a prefixed name using the longest matching prefix, then a name
// relative to @vocab. Unknown IRIs are returned unchanged.
func (c *Context) Compact(iri string) string {
	if c == nil {
		return iri
	}
	if term, ok := c.reverse[iri]; ok {
		return term
	}
	for _, p := range c.prefixes {
		if rest, ok := strings.CutPrefix(iri, p.iri); ok && rest != "" {
			return p.term + ":" + rest
		}
	}
	if c.vocab != "" {
		if rest, ok := strings.CutPrefix(iri, c.vocab); ok && rest != "" {
			return rest
		}
	}
	return iri
}

// Expand is the inverse of [Context.Compact].
func (c *Context) Expand(name string) string {
	if c == nil {
		return name
	}
	if iri, ok := c.terms[name]; ok {
		return iri
	}
	if expanded := c.expandWith(name); expanded != name {
		return expanded
	}
	if c.vocab != "" && !strings.Contains(name, ":") {
		return c.vocab + name
	}
	return name
}

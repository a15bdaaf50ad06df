// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package render

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownRenderer is matched by [*UnknownRendererError].
var ErrUnknownRenderer = errors.New("unknown renderer")

// UnknownRendererError reports a lookup of an identifier that is not registered.
type UnknownRendererError struct {
	Name  string
	Known []string
}

func (e *UnknownRendererError) Error() string {
	return fmt.Sprintf("unknown renderer %q (available: %s)", e.Name, strings.Join(e.Known, ", "))
}

// Is reports whether target is [ErrUnknownRenderer].
func (e *UnknownRendererError) Is(target error) bool {
	return target == ErrUnknownRenderer
}

// Registry maps identifiers to renderers. It is immutable after
// [NewRegistry] returns and safe for concurrent use.
type Registry struct {
	byName map[string]Renderer
	names  []string
}

// NewRegistry builds a registry from rs. Identifiers must be non-empty and
// unique.
func NewRegistry(rs ...Renderer) (*Registry, error) {
	reg := &Registry{byName: make(map[string]Renderer, len(rs))}
	for _, r := range rs {
		name := r.Metadata().Name
		if name == "" {
			return nil, errors.New("renderer has an empty name")
		}
		if _, exists := reg.byName[name]; exists {
			return nil, fmt.Errorf("renderer %q already registered", name)
		}
		reg.byName[name] = r
		reg.names = append(reg.names, name)
	}
	slices.Sort(reg.names)
	return reg, nil
}

// MustRegistry is like [NewRegistry] but panics on error.
func MustRegistry(rs ...Renderer) *Registry {
	reg, err := NewRegistry(rs...)
	if err != nil {
		panic(err)
	}
	return reg
}

// Lookup returns a renderer by name.
func (r *Registry) Lookup(name string) (Renderer, error) {
	if g, ok := r.byName[name]; ok {
		return g, nil
	}
	return nil, &UnknownRendererError{Name: name, Known: r.List()}
}

// List returns all registered renderer names, sorted.
func (r *Registry) List() []string {
	return slices.Clone(r.names)
}

// All returns all registered renderers in [Registry.List] order.
func (r *Registry) All() []Renderer {
	out := make([]Renderer, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.byName[name])
	}
	return out
}

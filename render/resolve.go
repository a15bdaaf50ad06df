// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package render

import "github.com/albertocavalcante/shaclgen/model"

// ResolveDeps expands a filter of class names to include every class and
// enumeration they transitively depend on through superclasses or property
// value types. Returns nil if filter is nil (meaning "render everything").
//
// Names that match nothing in the model are kept in the result.
func ResolveDeps(m *model.Model, filter map[string]bool) map[string]bool {
	if filter == nil {
		return nil
	}

	byName := make(map[string]*model.Class, len(m.Classes))
	for _, c := range m.Classes {
		byName[c.Name] = c
	}

	expanded := make(map[string]bool)
	var collect func(name string)
	collect = func(name string) {
		if expanded[name] {
			return // cycle or already done
		}
		expanded[name] = true

		c, ok := byName[name]
		if !ok {
			return // enums have no dependencies
		}
		for _, iri := range c.Parents {
			if p, ok := m.Class(iri); ok {
				collect(p.Name)
			}
		}
		for _, ref := range c.Properties {
			if ref.Class == "" {
				continue
			}
			if dep, ok := m.Class(ref.Class); ok {
				collect(dep.Name)
			} else if e, ok := m.Enum(ref.Class); ok {
				collect(e.Name)
			}
		}
	}
	for name := range filter {
		collect(name)
	}
	return expanded
}

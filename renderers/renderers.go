// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package renderers assembles the built-in renderers into a registry.
package renderers

import (
	"github.com/albertocavalcante/shaclgen/render"
	"github.com/albertocavalcante/shaclgen/renderers/golang"
	"github.com/albertocavalcante/shaclgen/renderers/jsonschema"
	"github.com/albertocavalcante/shaclgen/renderers/python"
	"github.com/albertocavalcante/shaclgen/renderers/template"
)

// Registry returns a registry of every built-in renderer. The template
// renderer reads templates and contexts through loader.
func Registry(loader template.Loader) (*render.Registry, error) {
	return render.NewRegistry(
		render.Adapt[golang.Config](golang.NewRenderer()),
		render.Adapt[jsonschema.Config](jsonschema.NewRenderer()),
		render.Adapt[python.Config](python.NewRenderer()),
		render.Adapt[template.Config](template.NewRenderer(loader)),
	)
}

// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package python

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"github.com/albertocavalcante/shaclgen/internal/testutil"
	"github.com/albertocavalcante/shaclgen/model"
	"github.com/albertocavalcante/shaclgen/render"
)

const wantSample = `# Code generated by shaclgen. DO NOT EDIT.

from __future__ import annotations

from dataclasses import dataclass, field
from enum import Enum
from typing import ClassVar, Optional


class Color(Enum):
    """A color."""

    DARK_BLUE = "http://example.org/Color/darkBlue"
    RED = "http://example.org/Color/red"


@dataclass(kw_only=True)
class Element:
    """Base class."""

    TYPE_IRI: ClassVar[str] = "http://example.org/Element"
    ABSTRACT: ClassVar[bool] = True
    # The name.
    name: str


@dataclass(kw_only=True)
class Person(Element):
    TYPE_IRI: ClassVar[str] = "http://example.org/Person"
    ABSTRACT: ClassVar[bool] = False
    age: Optional[int] = None
    color: Optional[Color] = None
    email: list[str] = field(default_factory=list)
    friend: list[Person] = field(default_factory=list)
`

func generate(t *testing.T, m *model.Model, cfg Config) string {
	t.Helper()
	src, err := New(m, cfg).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return string(src)
}

func TestGenerate(t *testing.T) {
	got := generate(t, testutil.SampleModel(), DefaultConfig())
	if diff := cmp.Diff(wantSample, got); diff != "" {
		t.Errorf("Generate mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_ClassFilter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Classes = []string{"Element"}
	got := generate(t, testutil.SampleModel(), cfg)

	if !strings.Contains(got, "class Element:") {
		t.Error("filtered class missing")
	}
	for _, absent := range []string{"class Person", "class Color", "Optional", "field("} {
		if strings.Contains(got, absent) {
			t.Errorf("output should not contain %q:\n%s", absent, got)
		}
	}
}

func TestGenerate_FilterPullsDependencies(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Classes = []string{"Person"}
	got := generate(t, testutil.SampleModel(), cfg)

	for _, want := range []string{"class Color(Enum):", "class Element:", "class Person(Element):"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestGenerate_Names(t *testing.T) {
	one := 1
	m := model.New([]*model.Class{{
		IRI:  "http://example.org/thing",
		Name: "thing",
		Properties: []*model.PropertyRef{
			{Name: "type", Datatype: "http://www.w3.org/2001/XMLSchema#boolean", MinCount: 1, MaxCount: &one},
			{Name: "spdxId", Datatype: "http://www.w3.org/2001/XMLSchema#anyURI", MinCount: 1, MaxCount: &one},
		},
	}}, []*model.Enum{{
		IRI:    "http://example.org/Level",
		Name:   "Level",
		Values: []*model.EnumValue{{IRI: "http://example.org/Level/3d", Name: "3d"}},
	}}, nil)

	got := generate(t, m, DefaultConfig())
	for _, want := range []string{
		"class Thing:",
		"    type_: bool\n",
		"    spdx_id: str\n",
		`    _3D = "http://example.org/Level/3d"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestGenerate_RedundantBases(t *testing.T) {
	a := &model.Class{IRI: "http://example.org/A", Name: "A"}
	b := &model.Class{IRI: "http://example.org/B", Name: "B", Parents: []string{a.IRI}}
	c := &model.Class{IRI: "http://example.org/C", Name: "C"}
	d := &model.Class{IRI: "http://example.org/D", Name: "D", Parents: []string{a.IRI, b.IRI, c.IRI, c.IRI}}

	got := generate(t, model.New([]*model.Class{a, b, c, d}, nil, nil), DefaultConfig())
	if !strings.Contains(got, "class D(B, C):\n") {
		t.Errorf("D should only list the bases not inherited through another base:\n%s", got)
	}
	if !strings.Contains(got, "class B(A):\n") {
		t.Errorf("B lost its base:\n%s", got)
	}
}

func TestGenerate_IdentifierCollisions(t *testing.T) {
	one := 1
	str := "http://www.w3.org/2001/XMLSchema#string"
	color := func(values ...string) *model.Enum {
		e := &model.Enum{IRI: "http://example.org/Color", Name: "Color"}
		for _, v := range values {
			e.Values = append(e.Values, &model.EnumValue{IRI: "http://example.org/Color/" + v, Name: v})
		}
		return e
	}

	tests := []struct {
		name    string
		model   *model.Model
		wantErr string
	}{
		{
			name:    "enum members with one identifier",
			model:   model.New(nil, []*model.Enum{color("fooBar", "foo-bar")}, nil),
			wantErr: "both map to member FOO_BAR",
		},
		{
			name: "fields with one identifier",
			model: model.New([]*model.Class{{
				IRI:  "http://example.org/A",
				Name: "A",
				Properties: []*model.PropertyRef{
					{Name: "fooBar", Datatype: str, MinCount: 1, MaxCount: &one},
					{Name: "foo_bar", Datatype: str, MaxCount: &one},
				},
			}}, nil, nil),
			wantErr: "both map to field foo_bar",
		},
		{
			name: "class and enum with one identifier",
			model: model.New(
				[]*model.Class{{IRI: "http://example.org/color", Name: "color"}},
				[]*model.Enum{color("red")},
				nil,
			),
			wantErr: "both map to Python class Color",
		},
		{
			name:    "class shadowing an import",
			model:   model.New([]*model.Class{{IRI: "http://example.org/optional", Name: "optional"}}, nil, nil),
			wantErr: "which the module imports",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.model, DefaultConfig()).Generate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestRender_CollisionIsRenderFailure(t *testing.T) {
	m := model.New(nil, []*model.Enum{{IRI: "http://example.org/Color", Name: "Color", Values: []*model.EnumValue{
		{IRI: "http://example.org/Color/fooBar", Name: "fooBar"},
		{IRI: "http://example.org/Color/foo-bar", Name: "foo-bar"},
	}}}, nil)
	job := render.Adapt[Config](NewRenderer()).Bind(pflag.NewFlagSet("python", pflag.ContinueOnError))
	_, err := job.Render(context.Background(), m)
	if !errors.Is(err, render.ErrRenderFailure) {
		t.Errorf("error %v does not match ErrRenderFailure", err)
	}
}

func TestRender(t *testing.T) {
	r := NewRenderer()
	cfg := DefaultConfig()
	cfg.Output = "model.py"

	out, err := r.Render(context.Background(), cfg, testutil.SampleModel())
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Artifacts) != 1 || out.Artifacts[0].Path != "model.py" {
		t.Fatalf("unexpected artifacts: %+v", out.Artifacts)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Render(ctx, cfg, testutil.SampleModel()); err == nil {
		t.Error("expected error for canceled context")
	}
}

// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package golang

import (
	"bytes"
	"context"
	"errors"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/printer"
	"go/token"
	"go/types"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"github.com/albertocavalcante/shaclgen/internal/testutil"
	"github.com/albertocavalcante/shaclgen/model"
	"github.com/albertocavalcante/shaclgen/render"
)

// parsed is a summary of a generated file.
type parsed struct {
	pkg     string
	structs map[string][]string // type name -> "Name Type json-tag" per field
	consts  map[string]string   // const name -> value literal
	methods map[string][]string // receiver -> method names
	named   map[string]string   // non-struct type name -> underlying type
}

func parse(t *testing.T, src []byte) parsed {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "generated.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, src)
	}

	expr := func(e ast.Expr) string {
		var buf bytes.Buffer
		if err := printer.Fprint(&buf, fset, e); err != nil {
			t.Fatal(err)
		}
		return buf.String()
	}

	p := parsed{
		pkg:     file.Name.Name,
		structs: map[string][]string{},
		consts:  map[string]string{},
		methods: map[string][]string{},
		named:   map[string]string{},
	}
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					st, ok := s.Type.(*ast.StructType)
					if !ok {
						p.named[s.Name.Name] = expr(s.Type)
						continue
					}
					fields := []string{}
					for _, f := range st.Fields.List {
						tag := ""
						if f.Tag != nil {
							tag = reflect.StructTag(strings.Trim(f.Tag.Value, "`")).Get("json")
						}
						name := ""
						if len(f.Names) > 0 {
							name = f.Names[0].Name
						}
						fields = append(fields, strings.TrimSpace(name+" "+expr(f.Type)+" "+tag))
					}
					p.structs[s.Name.Name] = fields
				case *ast.ValueSpec:
					for i, n := range s.Names {
						p.consts[n.Name] = expr(s.Values[i])
					}
				}
			}
		case *ast.FuncDecl:
			recv := expr(d.Recv.List[0].Type)
			p.methods[recv] = append(p.methods[recv], d.Name.Name)
		}
	}
	return p
}

// typeCheck fails the test unless src is a valid Go package.
func typeCheck(t *testing.T, src []byte) {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "generated.go", src, 0)
	if err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, src)
	}
	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	if _, err := conf.Check(file.Name.Name, fset, []*ast.File{file}, nil); err != nil {
		t.Fatalf("generated code does not type-check: %v\n%s", err, src)
	}
}

func TestGenerate(t *testing.T) {
	src, err := New(testutil.SampleModel(), DefaultConfig()).Generate()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(src, []byte("// Code generated by shaclgen. DO NOT EDIT.")) {
		t.Errorf("missing generated header:\n%s", src)
	}

	typeCheck(t, src)
	got := parse(t, src)

	if got.pkg != "model" {
		t.Errorf("package = %q, want model", got.pkg)
	}

	wantStructs := map[string][]string{
		"Element": {"Name string name"},
		"Person": {
			"Element",
			"Age *int64 age,omitempty",
			"Color *Color color,omitempty",
			"Email []string email,omitempty",
			"Friend []*Person friend,omitempty",
		},
	}
	if diff := cmp.Diff(wantStructs, got.structs); diff != "" {
		t.Errorf("structs mismatch (-want +got):\n%s", diff)
	}

	wantConsts := map[string]string{
		"ColorDarkBlue": `"http://example.org/Color/darkBlue"`,
		"ColorRed":      `"http://example.org/Color/red"`,
	}
	if diff := cmp.Diff(wantConsts, got.consts); diff != "" {
		t.Errorf("consts mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(map[string]string{"Color": "string"}, got.named); diff != "" {
		t.Errorf("named types mismatch (-want +got):\n%s", diff)
	}

	for _, typ := range []string{"Element", "Person"} {
		if diff := cmp.Diff([]string{"TypeIRI", "Abstract"}, got.methods[typ]); diff != "" {
			t.Errorf("%s methods mismatch (-want +got):\n%s", typ, diff)
		}
	}

	for _, want := range []string{
		"// Base class.\ntype Element struct",
		"// The name.\n\tName string",
		`return "http://example.org/Person"`,
	} {
		if !strings.Contains(string(src), want) {
			t.Errorf("output missing %q:\n%s", want, src)
		}
	}
}

func TestGenerate_Datatypes(t *testing.T) {
	one := 1
	ref := func(name, datatype string, minCount int) *model.PropertyRef {
		return &model.PropertyRef{Name: name, Datatype: datatype, MinCount: minCount, MaxCount: &one}
	}
	m := model.New([]*model.Class{{
		IRI:  "http://example.org/Record",
		Name: "record",
		Properties: []*model.PropertyRef{
			ref("created", "http://www.w3.org/2001/XMLSchema#dateTime", 1),
			ref("score", "http://www.w3.org/2001/XMLSchema#double", 1),
			ref("enabled", "http://www.w3.org/2001/XMLSchema#boolean", 0),
			ref("typeIRI", "http://www.w3.org/2001/XMLSchema#string", 1),
			{Name: "owner", Class: "http://elsewhere.org/Agent", MinCount: 1, MaxCount: &one},
		},
	}}, nil, nil)

	cfg := DefaultConfig()
	cfg.PackageName = "records"
	src, err := New(m, cfg).Generate()
	if err != nil {
		t.Fatal(err)
	}
	got := parse(t, src)

	want := []string{
		"Created time.Time created",
		"Score float64 score",
		"Enabled *bool enabled,omitempty",
		"TypeIRIValue string typeIRI",
		"Owner string owner",
	}
	if diff := cmp.Diff(want, got.structs["Record"]); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(string(src), `import "time"`) {
		t.Errorf("missing time import:\n%s", src)
	}
}

func TestGenerate_ClassFilter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Classes = []string{"Element"}
	src, err := New(testutil.SampleModel(), cfg).Generate()
	if err != nil {
		t.Fatal(err)
	}
	got := parse(t, src)
	if _, ok := got.structs["Person"]; ok {
		t.Error("Person should be filtered out")
	}
	if _, ok := got.named["Color"]; ok {
		t.Error("Color should be filtered out")
	}
	if _, ok := got.structs["Element"]; !ok {
		t.Error("Element missing")
	}
}

func TestGenerate_InvalidPackage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PackageName = "not-a-package"
	if _, err := New(testutil.SampleModel(), cfg).Generate(); err == nil {
		t.Error("expected error for invalid package name")
	}
}

func TestRender_Deterministic(t *testing.T) {
	r := NewRenderer()
	ctx := context.Background()

	first, err := r.Render(ctx, DefaultConfig(), testutil.SampleModel())
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Render(ctx, DefaultConfig(), testutil.SampleModel())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first.Artifacts, second.Artifacts); diff != "" {
		t.Errorf("output differs between runs (-first +second):\n%s", diff)
	}
}

func TestGenerate_FieldNamedAfterParent(t *testing.T) {
	one := 1
	str := "http://www.w3.org/2001/XMLSchema#string"
	m := model.New([]*model.Class{
		{IRI: "http://example.org/Tool", Name: "Tool"},
		{
			IRI:     "http://example.org/Build",
			Name:    "Build",
			Parents: []string{"http://example.org/Tool"},
			Properties: []*model.PropertyRef{
				{Name: "tool", Datatype: str, MaxCount: &one},
				{Name: "abstract", Datatype: str, MinCount: 1, MaxCount: &one},
			},
		},
	}, nil, nil)

	src, err := New(m, DefaultConfig()).Generate()
	if err != nil {
		t.Fatal(err)
	}
	typeCheck(t, src)

	want := []string{
		"Tool",
		"ToolValue *string tool,omitempty",
		"AbstractValue string abstract",
	}
	if diff := cmp.Diff(want, parse(t, src).structs["Build"]); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
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
			name:    "enum values with one identifier",
			model:   model.New(nil, []*model.Enum{color("foo-bar", "fooBar")}, nil),
			wantErr: "both map to Go identifier ColorFooBar",
		},
		{
			name: "enum constant and class type",
			model: model.New(
				[]*model.Class{{IRI: "http://example.org/ColorRed", Name: "ColorRed"}},
				[]*model.Enum{color("red")},
				nil,
			),
			wantErr: "both map to Go identifier ColorRed",
		},
		{
			name: "fields with one name",
			model: model.New([]*model.Class{{
				IRI:  "http://example.org/Record",
				Name: "Record",
				Properties: []*model.PropertyRef{
					{Name: "typeIRI", Datatype: str, MaxCount: &one},
					{Name: "typeIRIValue", Datatype: str, MaxCount: &one},
				},
			}}, nil, nil),
			wantErr: "both map to field TypeIRIValue",
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
	m := model.New(
		[]*model.Class{{IRI: "http://example.org/ColorRed", Name: "ColorRed"}},
		[]*model.Enum{{IRI: "http://example.org/Color", Name: "Color", Values: []*model.EnumValue{
			{IRI: "http://example.org/Color/red", Name: "red"},
		}}},
		nil,
	)
	job := render.Adapt[Config](NewRenderer()).Bind(pflag.NewFlagSet("golang", pflag.ContinueOnError))
	_, err := job.Render(context.Background(), m)
	if !errors.Is(err, render.ErrRenderFailure) {
		t.Errorf("error %v does not match ErrRenderFailure", err)
	}
}

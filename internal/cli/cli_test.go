// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertocavalcante/shaclgen/internal/config"
	"github.com/albertocavalcante/shaclgen/internal/fetch"
	"github.com/albertocavalcante/shaclgen/model"
	"github.com/albertocavalcante/shaclgen/render"
	"github.com/albertocavalcante/shaclgen/renderers/golang"
	"github.com/albertocavalcante/shaclgen/renderers/python"
	"github.com/albertocavalcante/shaclgen/renderers/template"
)

var basicInput = filepath.Join("..", "..", "testdata", "data", "basic.jsonld")

func newApp(stdin string) *App {
	res := &fetch.Resolver{Stdin: strings.NewReader(stdin)}
	return &App{
		Registry: render.MustRegistry(
			render.Adapt[golang.Config](golang.NewRenderer()),
			render.Adapt[python.Config](python.NewRenderer()),
			render.Adapt[template.Config](template.NewRenderer(res)),
		),
		Resolver: res,
		Version:  "1.2.3",
	}
}

type result struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, app *App, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := app.Run(context.Background(), args, &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestList(t *testing.T) {
	got := run(t, newApp(""), "list", "--short")
	assert.Equal(t, ExitOK, got.code)
	assert.Equal(t, "golang\npython\ntemplate\n", got.stdout)

	got = run(t, newApp(""), "list")
	assert.Equal(t, ExitOK, got.code)
	assert.Contains(t, got.stdout, "python: Python dataclass bindings\n")
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "model.go")

	got := run(t, newApp(""), "generate", "--input", basicInput, "golang", "--output", out, "--package", "basic")
	require.Equal(t, ExitOK, got.code, got.stderr)
	assert.Empty(t, got.stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "package basic")
}

func TestGenerate_Stdin(t *testing.T) {
	doc, err := os.ReadFile(basicInput)
	require.NoError(t, err)

	got := run(t, newApp(string(doc)), "generate", "python", "-i", "-")
	require.Equal(t, ExitOK, got.code, got.stderr)
	assert.Contains(t, got.stdout, "class Person(Element):")
}

func TestGenerate_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	malformed := filepath.Join(dir, "malformed.jsonld")
	require.NoError(t, os.WriteFile(malformed, []byte(`{"@graph": [`), 0o644))
	invalid := filepath.Join(dir, "invalid.jsonld")
	require.NoError(t, os.WriteFile(invalid, []byte(`"just a string"`), 0o644))

	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "unknown renderer", args: []string{"generate", "--input=" + basicInput, "cobol"}, want: ExitUnknownRenderer},
		{name: "unknown renderer with options", args: []string{"generate", "-i", basicInput, "cobol", "--fancy"}, want: ExitUnknownRenderer},
		{name: "unknown renderer without input", args: []string{"generate", "cobol"}, want: ExitUnknownRenderer},
		{name: "missing input file", args: []string{"generate", "--input", filepath.Join(dir, "nope.jsonld"), "python"}, want: ExitInputUnavailable},
		{name: "malformed input", args: []string{"generate", "--input", malformed, "python"}, want: ExitMalformedInput},
		{name: "invalid model", args: []string{"generate", "--input", invalid, "python"}, want: ExitInvalidModel},
		{name: "render failure", args: []string{"generate", "--input", basicInput, "template"}, want: ExitRenderFailure},
		{name: "missing renderer", args: []string{"generate", "--input", basicInput}, want: ExitError},
		{name: "missing input", args: []string{"generate", "python"}, want: ExitError},
		{name: "unknown renderer option", args: []string{"generate", "--input", basicInput, "python", "--fancy"}, want: ExitError},
		{name: "unknown command", args: []string{"frobnicate"}, want: ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := run(t, newApp(""), tt.args...)
			assert.Equal(t, tt.want, got.code, "stderr: %s", got.stderr)
			assert.True(t, strings.HasPrefix(got.stderr, "error: "), "stderr: %q", got.stderr)
			assert.Empty(t, got.stdout)
		})
	}
}

func TestVersion(t *testing.T) {
	got := run(t, newApp(""), "--version")
	assert.Equal(t, ExitOK, got.code)
	assert.Contains(t, got.stdout, "1.2.3")
}

func TestVerbose(t *testing.T) {
	app := newApp("")
	app.Config = &config.Config{LogFormat: "json"}

	got := run(t, app, "--verbose", "generate", "--input", basicInput, "python")
	require.Equal(t, ExitOK, got.code, got.stderr)
	assert.Contains(t, got.stderr, `"msg":"built model"`)
	assert.Contains(t, got.stderr, `"renderer":"python"`)

	quiet := run(t, newApp(""), "generate", "--input", basicInput, "python")
	assert.Empty(t, quiet.stderr)
}

func TestExitCode(t *testing.T) {
	unavailable := &fetch.Error{Kind: fetch.ErrInputUnavailable, Locator: "x", Err: errors.New("gone")}

	tests := []struct {
		err  error
		want int
	}{
		{err: nil, want: ExitOK},
		{err: errors.New("boom"), want: ExitError},
		{err: unavailable, want: ExitInputUnavailable},
		{err: &fetch.Error{Kind: fetch.ErrMalformedDocument, Locator: "x", Err: errors.New("eof")}, want: ExitMalformedInput},
		{err: fmt.Errorf("build: %w", model.ErrInvalidModel), want: ExitInvalidModel},
		{err: &render.UnknownRendererError{Name: "cobol"}, want: ExitUnknownRenderer},
		{err: render.Fail("template", unavailable), want: ExitRenderFailure},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.err), func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

//go:build e2e

// Compile verification tests: generated code must be accepted by the
// target toolchain.
//
// Run with: go test -tags e2e ./e2e/... -v
package e2e

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

// Tool installation instructions
var installInstructions = map[string]string{
	"go":      "Go is required. Install from https://go.dev/dl/",
	"python3": "Python 3.10+ is required. Install from https://www.python.org/downloads/",
}

// requireTool fails the test if the tool is not available.
func requireTool(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		instruction := installInstructions[name]
		if instruction == "" {
			instruction = fmt.Sprintf("Install %s and ensure it's in PATH", name)
		}
		t.Fatalf("%s not found in PATH.\n%s", name, instruction)
	}
}

func basicFixture(t *testing.T) string {
	t.Helper()
	moduleRoot, err := findModuleRoot()
	if err != nil {
		t.Fatalf("find module root: %v", err)
	}
	return filepath.Join(moduleRoot, "testdata", "data", "basic.jsonld")
}

func generate(ctx context.Context, t *testing.T, args ...string) {
	t.Helper()
	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("shaclgen %v: %v\n%s", args, err, stderr.String())
	}
}

// TestGoOutputCompiles verifies that generated Go code compiles and passes vet.
func TestGoOutputCompiles(t *testing.T) {
	requireTool(t, "go")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Create isolated Go module
	goModDir := filepath.Join(t.TempDir(), "gotest")
	if err := os.MkdirAll(goModDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	goModContent := `module shacltest

go 1.22
`
	if err := os.WriteFile(filepath.Join(goModDir, "go.mod"), []byte(goModContent), 0o644); err != nil {
		t.Fatalf("write go.mod: %v", err)
	}

	generate(ctx, t, "generate", "--input", basicFixture(t), "golang",
		"--output", filepath.Join(goModDir, "model.go"),
		"--package", "shacltest")

	for _, step := range [][]string{{"build", "./..."}, {"vet", "./..."}} {
		t.Run("go_"+step[0], func(t *testing.T) {
			start := time.Now()
			cmd := exec.CommandContext(ctx, "go", step...)
			cmd.Dir = goModDir
			output, err := cmd.CombinedOutput()
			if err != nil {
				t.Fatalf("go %s failed: %v\n%s", step[0], err, output)
			}
			t.Logf("go %s: %v", step[0], time.Since(start))
		})
	}
}

// TestPythonOutputCompiles verifies that generated Python code byte-compiles
// and its dataclasses can be instantiated.
func TestPythonOutputCompiles(t *testing.T) {
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not installed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dir := t.TempDir()
	generate(ctx, t, "generate", "--input", basicFixture(t), "python",
		"--output", filepath.Join(dir, "basic.py"))

	smoke := `import basic
p = basic.Person(name="Ada", age=36, color=basic.Color.RED, email=["ada@example.org"])
assert p.TYPE_IRI == "http://example.org/Person"
assert not p.ABSTRACT and basic.Element.ABSTRACT
`
	cmd := exec.CommandContext(ctx, "python3", "-c", smoke)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("python smoke test failed: %v\n%s", err, output)
	}
}

// SPDX-License-Identifier: MIT

// Package testutil provides testing utilities for shaclgen.
package testutil

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
)

// Work is replaced by the case's working directory in arguments, and the
// working directory by Work in captured output.
const Work = "$WORK"

// Case represents a parsed test case from a txtar archive.
type Case struct {
	// Name is the test case name (typically the filename without extension).
	Name string

	// Description is the first comment block before any files.
	Description string

	// Args is the command line from the "Args: ..." line of the description.
	Args []string

	// Exit is the expected exit code from an optional "Exit: N" line.
	Exit int

	// Files maps relative paths to input files written before the run.
	Files map[string][]byte

	// Want maps "stdout", "stderr" or a relative path of a written file to
	// expected content.
	Want map[string][]byte
}

// ParseCase parses a txtar archive into a test Case.
// The archive should contain:
//   - A description comment with an "Args: ..." line and, for failing
//     invocations, an "Exit: N" line
//   - Input files (shape documents, templates, contexts) under any name
//   - One or more "want/<name>" files with expected output
func ParseCase(name string, ar *txtar.Archive) (*Case, error) {
	c := &Case{
		Name:        name,
		Description: string(ar.Comment),
		Files:       make(map[string][]byte),
		Want:        make(map[string][]byte),
	}

	if err := c.parseDescription(); err != nil {
		return nil, err
	}

	for _, f := range ar.Files {
		if rel, ok := strings.CutPrefix(f.Name, "want/"); ok {
			c.Want[rel] = f.Data
			continue
		}
		if filepath.IsAbs(f.Name) || strings.HasPrefix(filepath.Clean(f.Name), "..") {
			return nil, fmt.Errorf("input file %q must be relative to the working directory", f.Name)
		}
		c.Files[f.Name] = f.Data
	}

	if len(c.Args) == 0 {
		return nil, fmt.Errorf("missing Args: line in description")
	}
	if len(c.Want) == 0 {
		return nil, fmt.Errorf("missing want/* files in archive")
	}
	return c, nil
}

// parseDescription extracts the "Args:" and "Exit:" lines.
// Args are space-separated to match CLI conventions.
func (c *Case) parseDescription() error {
	for line := range strings.SplitSeq(c.Description, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Args:"):
			c.Args = strings.Fields(strings.TrimPrefix(line, "Args:"))
		case strings.HasPrefix(line, "Exit:"):
			code, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Exit:")))
			if err != nil {
				return fmt.Errorf("bad Exit: line: %w", err)
			}
			c.Exit = code
		}
	}
	return nil
}

// Result is the outcome of one invocation.
type Result struct {
	Exit   int
	Stdout []byte
	Stderr []byte
}

// RunFunc executes args with dir as the working directory.
type RunFunc func(dir string, args []string) (Result, error)

// Run executes the test case in a fresh directory and returns the collected
// outputs: "stdout" and "stderr" when non-empty, and every file the
// invocation wrote. It reports differences from the expected output unless
// update is set.
func (c *Case) Run(t *testing.T, run RunFunc, update bool) map[string][]byte {
	t.Helper()

	dir := t.TempDir()
	for name, data := range c.Files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = strings.ReplaceAll(a, Work, dir)
	}

	res, err := run(dir, args)
	if err != nil {
		t.Fatalf("run %v: %v", c.Args, err)
	}
	if res.Exit != c.Exit && !update {
		t.Errorf("exit code = %d, want %d\nstderr: %s", res.Exit, c.Exit, res.Stderr)
	}

	got := make(map[string][]byte)
	if len(res.Stdout) > 0 {
		got["stdout"] = bytes.ReplaceAll(res.Stdout, []byte(dir), []byte(Work))
	}
	if len(res.Stderr) > 0 {
		got["stderr"] = bytes.ReplaceAll(res.Stderr, []byte(dir), []byte(Work))
	}
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if _, input := c.Files[rel]; input {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		got[rel] = data
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if !update {
		Compare(t, c.Want, got)
	}
	return got
}

// Compare reports missing, unexpected and differing outputs.
func Compare(t *testing.T, want, got map[string][]byte) {
	t.Helper()

	// Check for missing expected files
	for wantFile := range want {
		if _, ok := got[wantFile]; !ok {
			t.Errorf("missing output: %q", wantFile)
		}
	}

	// Check for unexpected files
	for gotFile := range got {
		if _, ok := want[gotFile]; !ok {
			t.Errorf("unexpected output: %q", gotFile)
		}
	}

	// Compare contents
	for wantFile, wantContent := range want {
		gotContent, ok := got[wantFile]
		if !ok {
			continue // Already reported as missing
		}

		// Normalize line endings and trailing whitespace
		wantNorm := normalizeContent(wantContent)
		gotNorm := normalizeContent(gotContent)

		if diff := cmp.Diff(wantNorm, gotNorm); diff != "" {
			t.Errorf("output %q mismatch (-want +got):\n%s", wantFile, diff)
		}
	}
}

// normalizeContent normalizes content for comparison:
// - Trims trailing whitespace from each line
// - Ensures consistent line endings
// - Trims trailing newlines
func normalizeContent(content []byte) string {
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	result := strings.Join(lines, "\n")
	return strings.TrimRight(result, "\n")
}

// UpdateArchive replaces the want/* files of an archive with new outputs.
// Used for golden file updates with -update flag.
func UpdateArchive(ar *txtar.Archive, got map[string][]byte) *txtar.Archive {
	// Keep comment and input files
	result := &txtar.Archive{
		Comment: ar.Comment,
	}

	for _, f := range ar.Files {
		if !strings.HasPrefix(f.Name, "want/") {
			result.Files = append(result.Files, f)
		}
	}

	// Add want/* files in sorted order for determinism
	var wantFiles []string
	for name := range got {
		wantFiles = append(wantFiles, name)
	}
	sort.Strings(wantFiles)

	for _, name := range wantFiles {
		content := got[name]
		// Ensure trailing newline
		if len(content) > 0 && content[len(content)-1] != '\n' {
			content = append(content, '\n')
		}
		result.Files = append(result.Files, txtar.File{
			Name: "want/" + name,
			Data: content,
		})
	}

	return result
}

// LoadTestCases loads all txtar test cases from a directory.
// The returned paths are the archive files, in case order.
func LoadTestCases(t *testing.T, dir string) ([]*Case, []string) {
	t.Helper()

	pattern := filepath.Join(dir, "*.txtar")
	files, err := filepath.Glob(pattern)
	if err != nil {
		t.Fatalf("glob %q: %v", pattern, err)
	}

	if len(files) == 0 {
		t.Fatalf("no txtar files found in %q", dir)
	}
	sort.Strings(files)

	cases := make([]*Case, 0, len(files))
	for _, file := range files {
		ar, err := txtar.ParseFile(file)
		if err != nil {
			t.Fatalf("parse %q: %v", file, err)
		}

		name := strings.TrimSuffix(filepath.Base(file), ".txtar")
		c, err := ParseCase(name, ar)
		if err != nil {
			t.Fatalf("parse case %q: %v", name, err)
		}

		cases = append(cases, c)
	}
	return cases, files
}

// Update rewrites the archive at file with got as its expected outputs.
func Update(t *testing.T, file string, got map[string][]byte) {
	t.Helper()
	ar, err := txtar.ParseFile(file)
	if err != nil {
		t.Fatalf("parse %q: %v", file, err)
	}
	if err := os.WriteFile(file, txtar.Format(UpdateArchive(ar, got)), 0o644); err != nil {
		t.Fatalf("write %q: %v", file, err)
	}
	t.Logf("updated %s", file)
}

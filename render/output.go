// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Artifact is one generated unit of output.
type Artifact struct {
	// Path is the destination file. Empty or "-" means standard output.
	Path string

	// Content is the generated text.
	Content []byte
}

// Output contains generated artifacts in emission order.
type Output struct {
	Artifacts []Artifact
}

// NewOutput creates a new Output.
func NewOutput() *Output {
	return &Output{}
}

// Add appends an artifact to the output.
func (o *Output) Add(path string, content []byte) {
	o.Artifacts = append(o.Artifacts, Artifact{Path: path, Content: content})
}

// Single returns an Output with a single artifact.
func Single(path string, content []byte) *Output {
	return &Output{Artifacts: []Artifact{{Path: path, Content: content}}}
}

// IsStdout reports whether path designates the standard output stream.
func IsStdout(path string) bool {
	return path == "" || path == "-"
}

// Write persists every artifact: stdout artifacts go to stdout, the rest to
// their files, creating parent directories as needed. It stops at the first
// error; artifacts already written stay in place.
func (o *Output) Write(stdout io.Writer) error {
	for _, a := range o.Artifacts {
		if IsStdout(a.Path) {
			if _, err := stdout.Write(a.Content); err != nil {
				return fmt.Errorf("write stdout: %w", err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(a.Path), 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		if err := os.WriteFile(a.Path, a.Content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", a.Path, err)
		}
	}
	return nil
}

// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package expect regenerates the expected outputs of the fixture corpus by
// running the generate command in-process for every fixture and renderer.
//
// For a data directory holding <stem>.jsonld fixtures it writes:
//
//	<expect>/python/<stem>.py
//	<expect>/jsonschema/<stem>.json
//	<expect>/golang/<stem>.go
//	<expect>/raw/<stem>.txt          (template renderer, raw.tmpl)
//	<expect>/raw/<stem>-context.txt  (context.tmpl, when <stem>-context.json exists)
package expect

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/albertocavalcante/shaclgen/internal/cli"
)

// ContextURL is passed as --context-url to context fixtures.
const ContextURL = "https://spdx.github.io/spdx-3-model/context.json"

// Template files looked up in the data directory.
const (
	RawTemplate     = "raw.tmpl"
	ContextTemplate = "context.tmpl"
)

// Task is one generate invocation.
type Task struct {
	// Fixture is the input document.
	Fixture string

	// Output is the file the invocation writes.
	Output string

	// Args is the complete command line, without the program name.
	Args []string
}

// languages maps renderers run on every fixture to their output extension.
var languages = []struct {
	renderer string
	ext      string
}{
	{renderer: "python", ext: ".py"},
	{renderer: "jsonschema", ext: ".json"},
	{renderer: "golang", ext: ".go"},
}

// Plan lists the tasks for every fixture in dataDir, sorted by output path.
func Plan(dataDir, expectDir string) ([]Task, error) {
	fixtures, err := filepath.Glob(filepath.Join(dataDir, "*.jsonld"))
	if err != nil {
		return nil, err
	}
	if len(fixtures) == 0 {
		return nil, fmt.Errorf("no *.jsonld fixtures in %s", dataDir)
	}

	var tasks []Task
	for _, fixture := range fixtures {
		stem := strings.TrimSuffix(filepath.Base(fixture), ".jsonld")

		for _, lang := range languages {
			out := filepath.Join(expectDir, lang.renderer, stem+lang.ext)
			tasks = append(tasks, Task{
				Fixture: fixture,
				Output:  out,
				Args:    []string{"generate", "--input", fixture, lang.renderer, "--output", out},
			})
		}

		out := filepath.Join(expectDir, "raw", stem+".txt")
		tasks = append(tasks, Task{
			Fixture: fixture,
			Output:  out,
			Args: []string{"generate", "--input", fixture, "template",
				"--template", filepath.Join(dataDir, RawTemplate),
				"--output", out},
		})

		contextDoc := filepath.Join(dataDir, stem+"-context.json")
		if _, err := os.Stat(contextDoc); errors.Is(err, os.ErrNotExist) {
			continue
		} else if err != nil {
			return nil, err
		}
		out = filepath.Join(expectDir, "raw", stem+"-context.txt")
		tasks = append(tasks, Task{
			Fixture: fixture,
			Output:  out,
			Args: []string{"generate", "--input", fixture, "template",
				"--template", filepath.Join(dataDir, ContextTemplate),
				"--context", contextDoc,
				"--context-url", ContextURL,
				"--output", out},
		})
	}

	slices.SortFunc(tasks, func(a, b Task) int { return strings.Compare(a.Output, b.Output) })
	return tasks, nil
}

// Runner executes tasks against one application.
type Runner struct {
	App *cli.App

	// Jobs bounds the number of concurrent invocations; below 1 means one.
	Jobs int

	// Log receives one event per task. Nil discards them.
	Log *slog.Logger
}

// Run executes every task and returns the first failure. Tasks share only
// the application, whose registry is read-only.
func (r *Runner) Run(ctx context.Context, tasks []Task) error {
	log := r.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Jobs, 1))
	for _, task := range tasks {
		g.Go(func() error {
			var stderr bytes.Buffer
			if code := r.App.Run(ctx, task.Args, io.Discard, &stderr); code != cli.ExitOK {
				return fmt.Errorf("%s: exit status %d: %s", task.Output, code, strings.TrimSpace(stderr.String()))
			}
			log.Info("generated", "fixture", task.Fixture, "output", task.Output)
			return nil
		})
	}
	return g.Wait()
}

// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package fetch resolves an input locator (file path, URL or "-") to a decoded
// JSON document.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Stdin is the locator that selects the standard input stream.
const Stdin = "-"

// Error kinds. Every [Error] matches exactly one of them with [errors.Is].
var (
	ErrInputUnavailable  = errors.New("input unavailable")
	ErrMalformedDocument = errors.New("malformed document")
)

// Error reports a failure to resolve a locator.
type Error struct {
	// Kind is ErrInputUnavailable or ErrMalformedDocument.
	Kind error

	// Locator is the input as given by the caller.
	Locator string

	// Err is the underlying cause.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Locator, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Document is a decoded JSON value: a map[string]any or []any for any input
// a shape document can come from, nesting arbitrarily.
type Document = any

// Medium is the kind of resource a locator names.
type Medium string

const (
	MediumFile  Medium = "file"
	MediumURL   Medium = "url"
	MediumStdin Medium = "stdin"
)

// Kind reports which medium locator refers to.
func Kind(locator string) Medium {
	switch {
	case strings.Contains(locator, "://"):
		return MediumURL
	case locator == Stdin:
		return MediumStdin
	default:
		return MediumFile
	}
}

// Resolver reads documents. The zero value reads URLs with
// [http.DefaultClient] and "-" from [os.Stdin].
type Resolver struct {
	// Client performs URL fetches.
	Client *http.Client

	// Stdin is read for the "-" locator.
	Stdin io.Reader

	// UserAgent is sent with URL fetches when set.
	UserAgent string
}

// Resolve reads the resource named by locator exactly once and decodes it.
// No retries are attempted.
func (r *Resolver) Resolve(ctx context.Context, locator string) (Document, error) {
	data, err := r.read(ctx, locator)
	if err != nil {
		return nil, &Error{Kind: ErrInputUnavailable, Locator: locator, Err: err}
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, &Error{Kind: ErrMalformedDocument, Locator: locator, Err: err}
	}
	return doc, nil
}

// ReadAll returns the raw bytes named by locator, for callers that need the
// content rather than a decoded document (templates, for instance).
func (r *Resolver) ReadAll(ctx context.Context, locator string) ([]byte, error) {
	data, err := r.read(ctx, locator)
	if err != nil {
		return nil, &Error{Kind: ErrInputUnavailable, Locator: locator, Err: err}
	}
	return data, nil
}

func (r *Resolver) read(ctx context.Context, locator string) ([]byte, error) {
	switch Kind(locator) {
	case MediumURL:
		return r.fetchURL(ctx, locator)
	case MediumStdin:
		in := r.Stdin
		if in == nil {
			in = os.Stdin
		}
		return io.ReadAll(in)
	default:
		return os.ReadFile(locator)
	}
}

// fetchURL performs a single GET. Non-2xx responses are errors.
func (r *Resolver) fetchURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/ld+json, application/json;q=0.9, */*;q=0.1")
	if r.UserAgent != "" {
		req.Header.Set("User-Agent", r.UserAgent)
	}

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// Decode parses data as exactly one JSON value.
func Decode(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var doc any
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return doc, nil
}

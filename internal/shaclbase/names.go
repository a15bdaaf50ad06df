// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package shaclbase

import (
	"strings"
	"unicode"
)

// LocalName returns the part of an IRI after the last '#' or '/'.
// An IRI ending in a separator yields an empty string.
func LocalName(iri string) string {
	if i := strings.LastIndexAny(iri, "#/"); i >= 0 {
		return iri[i+1:]
	}
	return iri
}

// Capitalize returns name with the first letter uppercased.
// Returns empty string for empty input.
func Capitalize(name string) string {
	if name == "" {
		return ""
	}
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Words splits an identifier into words. Separators are any
// non-alphanumeric runes; case changes start a new word, and a run of
// capitals stays one word ("HTTPServer" -> "HTTP", "Server").
func Words(name string) []string {
	var (
		words []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// ExportName returns an exported Go identifier for name.
// Words are capitalized and joined; a leading digit gets an "X" prefix.
func ExportName(name string) string {
	var b strings.Builder
	for _, w := range Words(name) {
		b.WriteString(Capitalize(w))
	}
	out := b.String()
	if out != "" && unicode.IsDigit([]rune(out)[0]) {
		return "X" + out
	}
	return out
}

// CamelToSnake converts a CamelCase name to snake_case.
// Fully uppercase names (like "URI") are lowered as a single word.
func CamelToSnake(name string) string {
	words := Words(name)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

// CamelToScreamingSnake converts a CamelCase name to SCREAMING_SNAKE_CASE.
func CamelToScreamingSnake(name string) string {
	words := Words(name)
	for i, w := range words {
		words[i] = strings.ToUpper(w)
	}
	return strings.Join(words, "_")
}

var pythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
	"type": true, "id": true,
}

// PythonName returns a snake_case Python identifier for name.
// Keywords (and the builtins "id" and "type") get a trailing underscore.
func PythonName(name string) string {
	out := CamelToSnake(name)
	if out == "" {
		return "_"
	}
	if unicode.IsDigit([]rune(out)[0]) {
		out = "_" + out
	}
	if pythonKeywords[out] {
		out += "_"
	}
	return out
}

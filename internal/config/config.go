// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	env "github.com/caarlos0/env/v11"
)

// Prefix is prepended to every environment variable name.
const Prefix = "SHACLGEN_"

// Config holds settings that are not renderer options.
type Config struct {
	// HTTPTimeout bounds URL fetches. Zero means no timeout.
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"0s"`

	// UserAgent is sent with URL fetches. Empty selects "shaclgen/<version>".
	UserAgent string `env:"USER_AGENT"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`

	// LogFormat is text or json.
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return parse(env.Options{Prefix: Prefix})
}

// LoadFrom reads the configuration from the given variables instead of the
// process environment.
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Prefix: Prefix, Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("%sLOG_FORMAT: unknown format %q (want text or json)", Prefix, cfg.LogFormat)
	}
	return &cfg, nil
}

// HTTPClient returns a client honoring HTTPTimeout.
func (c *Config) HTTPClient() *http.Client {
	return &http.Client{Timeout: c.HTTPTimeout}
}

// Agent returns the User-Agent for URL fetches.
func (c *Config) Agent(version string) string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return "shaclgen/" + version
}

// ParseLevel converts a level name to a [slog.Level].
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return 0, fmt.Errorf("%sLOG_LEVEL: %w", Prefix, err)
	}
	return level, nil
}

// Logger builds the process logger writing to w. verbose forces debug level.
func (c *Config) Logger(w io.Writer, verbose bool) *slog.Logger {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelWarn
	}
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

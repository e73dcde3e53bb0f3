// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the fieldsync
// client. It aggregates all sub-configurations and is populated by merging
// values from environment variables and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Remote holds the data-collection server endpoint and the transport
	// timeouts used by the remote session client.
	Remote Remote `envPrefix:"REMOTE_"`

	// Storage holds the local persistence settings: the directory that
	// contains the per-account SQLite stores and the preference files.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables.
	// Populated via the CONFIG environment variable or the --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Remote holds network settings for the remote session client.
type Remote struct {
	// BaseURL is the data-collection server endpoint, e.g.
	// "https://play.example.org/demo".
	// Env: REMOTE_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// ConnectTimeout bounds TCP connection establishment.
	// Env: REMOTE_CONNECT_TIMEOUT
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT"`

	// ReadTimeout bounds a whole download request. Downloads are
	// long-running by nature, so this is generous.
	// Env: REMOTE_READ_TIMEOUT
	ReadTimeout time.Duration `env:"READ_TIMEOUT"`

	// WriteTimeout bounds a whole upload request.
	// Env: REMOTE_WRITE_TIMEOUT
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT"`
}

// Storage holds local persistence settings.
type Storage struct {
	// Dir is the directory holding per-account store files and the
	// preference namespaces. Created on first use when missing.
	// Env: STORAGE_DIR
	Dir string `env:"DIR"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// ResyncInterval defines how often the resident sync worker re-runs a
	// background sync while a session is active.
	// Env: WORKERS_RESYNC_INTERVAL
	ResyncInterval time.Duration `env:"RESYNC_INTERVAL"`
}

// getStructuredConfig loads and merges the raw configuration from all
// available sources (env first, then the JSON file it may point to).
func getStructuredConfig(jsonOverride string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withJSON(jsonOverride).
		build()
}

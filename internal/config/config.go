// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the vault
// relay. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Auth holds the access password hash, the dashboard token, and the
	// password rate-limit parameters.
	Auth Auth `envPrefix:"AUTH_"`

	// Storage holds configuration for the change/session database and the
	// encrypted blob directory.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and protocol timing settings.
	Server Server `envPrefix:"SERVER_"`

	// Discovery holds the LAN discovery responder settings.
	Discovery Discovery `envPrefix:"DISCOVERY_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged after environment
	// variables and flags. Populated via the CONFIG environment variable or
	// the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Auth holds authentication settings for sync clients and the dashboard.
type Auth struct {
	// PasswordHash is the hex-encoded Argon2id hash every sync client must
	// present in AUTH. Derive it with `relayctl hash`. Must be kept
	// confidential. The server is uninitialized while it is empty.
	// Env: AUTH_PASSWORD_HASH
	PasswordHash string `env:"PASSWORD_HASH"`

	// DashboardToken grants read-only dashboard access and guards the reset
	// endpoint. Supplied by dashboard pages as a query parameter.
	// Env: AUTH_DASHBOARD_TOKEN
	DashboardToken string `env:"DASHBOARD_TOKEN"`

	// RateLimitMax is the number of failed password attempts allowed per
	// source IP within RateLimitWindow before further attempts fail fast.
	// Env: AUTH_RATE_LIMIT_MAX
	RateLimitMax int `env:"RATE_LIMIT_MAX"`

	// RateLimitWindow is the sliding window for password failure counting
	// (e.g. "15m").
	// Env: AUTH_RATE_LIMIT_WINDOW
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW"`
}

// Storage groups the configuration for all persistence backends.
type Storage struct {
	// DB holds the change-log and session database connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the file-system storage settings for encrypted blobs.
	Files Files `envPrefix:"FILES_"`
}

// DB holds connection settings for the relational backend.
type DB struct {
	// DSN selects and configures the database driver. A "postgres://" URI
	// opens PostgreSQL via pgx; any other value is treated as a SQLite file
	// path (created on first start).
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds file-system settings for the encrypted blob store.
type Files struct {
	// BlobDir is the directory holding encrypted file blobs, sharded by
	// file-identifier prefix.
	// Env: STORAGE_FILES_BLOB_DIR
	BlobDir string `env:"BLOB_DIR"`
}

// Server holds network and protocol timing settings for the relay.
type Server struct {
	// HTTPAddress is the TCP address on which the relay listens, in
	// "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// AuthTimeout is how long an accepted sync connection may stay silent
	// before sending AUTH. Connections exceeding it are closed.
	// Env: SERVER_AUTH_TIMEOUT
	AuthTimeout time.Duration `env:"AUTH_TIMEOUT"`

	// HeartbeatInterval is the period between server-initiated pings probing
	// half-open sockets.
	// Env: SERVER_HEARTBEAT_INTERVAL
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL"`
}

// Discovery holds the LAN discovery responder settings.
type Discovery struct {
	// Address is the UDP address the responder binds (e.g. ":18080").
	// Discovery is disabled while it is empty.
	// Env: DISCOVERY_ADDRESS
	Address string `env:"ADDRESS"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (earlier sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}

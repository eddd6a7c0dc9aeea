// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// startup invariants.
//
// An empty access password hash is deliberately allowed: the server starts
// uninitialized and rejects every AUTH with server_not_initialized until an
// operator configures the hash (see relayctl hash).
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Storage.DB.DSN == "" || cfg.Storage.Files.BlobDir == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}

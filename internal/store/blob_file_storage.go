// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MKhiriev/vault-relay/internal/config"
	"github.com/MKhiriev/vault-relay/internal/logger"
)

// blobFileStorage is the filesystem implementation of [BlobFileStorage].
//
// File identifiers are client-chosen opaque strings, so they are never used
// as path components directly: each blob lives under the SHA-256 hex digest
// of its identifier, sharded into a two-character prefix directory to bound
// directory size (blobs/ab/ab34…ef).
type blobFileStorage struct {
	baseDir string
	logger  *logger.Logger
}

// NewBlobFileStorage constructs a [BlobFileStorage] rooted at
// cfg.BlobDir, creating the directory if needed.
func NewBlobFileStorage(cfg config.Files, logger *logger.Logger) (BlobFileStorage, error) {
	logger.Debug().Str("dir", cfg.BlobDir).Msg("creating blob file storage")

	if err := os.MkdirAll(cfg.BlobDir, 0o700); err != nil {
		return nil, fmt.Errorf("error creating blob directory: %w", err)
	}

	return &blobFileStorage{
		baseDir: cfg.BlobDir,
		logger:  logger,
	}, nil
}

// Write implements [BlobFileStorage].
func (s *blobFileStorage) Write(ctx context.Context, fileID string, data []byte) error {
	log := logger.FromContext(ctx)

	path := s.blobPath(fileID)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		log.Err(err).Str("func", "*blobFileStorage.Write").Str("fileId", fileID).Msg("error creating shard directory")
		return fmt.Errorf("error creating shard directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		log.Err(err).Str("func", "*blobFileStorage.Write").Str("fileId", fileID).Msg("error writing blob")
		return fmt.Errorf("error writing blob: %w", err)
	}

	return nil
}

// Read implements [BlobFileStorage].
func (s *blobFileStorage) Read(ctx context.Context, fileID string) ([]byte, error) {
	log := logger.FromContext(ctx)

	data, err := os.ReadFile(s.blobPath(fileID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		log.Err(err).Str("func", "*blobFileStorage.Read").Str("fileId", fileID).Msg("error reading blob")
		return nil, fmt.Errorf("error reading blob: %w", err)
	}

	return data, nil
}

// Delete implements [BlobFileStorage].
func (s *blobFileStorage) Delete(ctx context.Context, fileID string) error {
	log := logger.FromContext(ctx)

	if err := os.Remove(s.blobPath(fileID)); err != nil && !os.IsNotExist(err) {
		log.Err(err).Str("func", "*blobFileStorage.Delete").Str("fileId", fileID).Msg("error removing blob")
		return fmt.Errorf("error removing blob: %w", err)
	}

	return nil
}

// Reset implements [BlobFileStorage].
func (s *blobFileStorage) Reset(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if err := os.RemoveAll(s.baseDir); err != nil {
		log.Err(err).Str("func", "*blobFileStorage.Reset").Msg("error removing blob directory")
		return fmt.Errorf("error removing blob directory: %w", err)
	}

	if err := os.MkdirAll(s.baseDir, 0o700); err != nil {
		return fmt.Errorf("error recreating blob directory: %w", err)
	}

	return nil
}

func (s *blobFileStorage) blobPath(fileID string) string {
	digest := sha256.Sum256([]byte(fileID))
	name := hex.EncodeToString(digest[:])

	return filepath.Join(s.baseDir, name[:2], name)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/vault-relay/internal/logger"
	"github.com/MKhiriev/vault-relay/internal/store"
	"github.com/MKhiriev/vault-relay/models"
)

// changeService is the concrete implementation of ChangeService.
//
// mu is the single mutual-exclusion domain for all sequence-assigning
// mutations. Connections are handled concurrently, so without it two uploads
// could read the same MAX(sequence) and commit duplicate sequence numbers.
type changeService struct {
	changeRepository store.ChangeRepository
	blobStorage      store.BlobFileStorage

	mu sync.Mutex

	logger *logger.Logger
}

// NewChangeService constructs a ChangeService over the given change
// repository and blob storage.
func NewChangeService(changeRepository store.ChangeRepository, blobStorage store.BlobFileStorage, logger *logger.Logger) ChangeService {
	logger.Debug().Msg("creating change service")

	return &changeService{
		changeRepository: changeRepository,
		blobStorage:      blobStorage,
		logger:           logger,
	}
}

// CurrentSequence implements [ChangeService].
func (c *changeService) CurrentSequence(ctx context.Context) (int64, error) {
	return c.changeRepository.CurrentSequence(ctx)
}

// CountFiles implements [ChangeService].
func (c *changeService) CountFiles(ctx context.Context) (int64, error) {
	return c.changeRepository.CountFiles(ctx)
}

// Manifest implements [ChangeService].
func (c *changeService) Manifest(ctx context.Context) (models.Manifest, error) {
	return c.changeRepository.Manifest(ctx)
}

// ChangesSince implements [ChangeService].
func (c *changeService) ChangesSince(ctx context.Context, seq int64) ([]models.FileRecord, error) {
	return c.changeRepository.ChangesSince(ctx, seq)
}

// Upload implements [ChangeService].
//
// The record row is committed before the blob is written, so a crash between
// the two leaves a row pointing at a missing blob. Download treats that state
// as "not found" and clients recover by re-uploading.
func (c *changeService) Upload(ctx context.Context, record models.FileRecord, blob []byte) (models.PutResult, error) {
	log := logger.FromContext(ctx)

	if record.FileID == "" {
		log.Error().Msg("upload without file identifier")
		return models.PutResult{}, ErrInvalidDataProvided
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	result, err := c.changeRepository.Put(ctx, record)
	if err != nil {
		log.Err(err).Str("func", "*changeService.Upload").Str("fileId", record.FileID).Msg("error storing file record")
		return models.PutResult{}, fmt.Errorf("error storing file record: %w", err)
	}

	if err := c.blobStorage.Write(ctx, record.FileID, blob); err != nil {
		log.Err(err).Str("func", "*changeService.Upload").Str("fileId", record.FileID).Msg("error writing blob")
		return models.PutResult{}, fmt.Errorf("error writing blob: %w", err)
	}

	return result, nil
}

// Download implements [ChangeService].
func (c *changeService) Download(ctx context.Context, fileID string) (models.FileRecord, []byte, error) {
	record, err := c.changeRepository.Get(ctx, fileID)
	if err != nil {
		return models.FileRecord{}, nil, fmt.Errorf("error loading file record: %w", err)
	}

	if record.Deleted {
		return models.FileRecord{}, nil, store.ErrNotFound
	}

	blob, err := c.blobStorage.Read(ctx, fileID)
	if err != nil {
		return models.FileRecord{}, nil, fmt.Errorf("error reading blob: %w", err)
	}

	return record, blob, nil
}

// Delete implements [ChangeService].
func (c *changeService) Delete(ctx context.Context, fileID string) (int64, error) {
	log := logger.FromContext(ctx)

	if fileID == "" {
		return 0, ErrInvalidDataProvided
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	sequence, err := c.changeRepository.Tombstone(ctx, fileID)
	if err != nil {
		return 0, fmt.Errorf("error tombstoning file record: %w", err)
	}

	// best effort: the tombstone is authoritative, a leftover blob is garbage
	if err := c.blobStorage.Delete(ctx, fileID); err != nil {
		log.Err(err).Str("func", "*changeService.Delete").Str("fileId", fileID).Msg("error removing blob")
	}

	return sequence, nil
}

// Reset implements [ChangeService].
func (c *changeService) Reset(ctx context.Context) error {
	log := logger.FromContext(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.changeRepository.Reset(ctx); err != nil {
		log.Err(err).Str("func", "*changeService.Reset").Msg("error truncating change log")
		return fmt.Errorf("error truncating change log: %w", err)
	}

	if err := c.blobStorage.Reset(ctx); err != nil {
		log.Err(err).Str("func", "*changeService.Reset").Msg("error clearing blob storage")
		return fmt.Errorf("error clearing blob storage: %w", err)
	}

	return nil
}

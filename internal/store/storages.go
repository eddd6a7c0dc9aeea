package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/vault-relay/internal/config"
	"github.com/MKhiriev/vault-relay/internal/logger"
)

// Storages aggregates every persistence component of the relay.
type Storages struct {
	ChangeRepository  ChangeRepository
	SessionRepository SessionRepository
	BlobStorage       BlobFileStorage

	db *DB
}

// NewStorages opens the database selected by the DSN ("postgres://" URIs go
// to pgx, everything else is a SQLite file path), applies migrations, and
// wires the repositories and the blob store.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating storages...")

	db, err := connect(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	blobStorage, err := NewBlobFileStorage(cfg.Files, log)
	if err != nil {
		return nil, err
	}

	return &Storages{
		ChangeRepository:  NewChangeRepository(db, log),
		SessionRepository: NewSessionRepository(db, log),
		BlobStorage:       blobStorage,
		db:                db,
	}, nil
}

// Close releases the underlying database handle.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}

	return s.db.Close()
}

func connect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch {
	case strings.HasPrefix(cfg.DSN, "postgres://"), strings.HasPrefix(cfg.DSN, "postgresql://"):
		return NewConnectPostgres(ctx, cfg, log)
	case cfg.DSN != "":
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, ErrUnsupportedDSN
	}
}

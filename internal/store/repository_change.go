// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/vault-relay/internal/logger"
	"github.com/MKhiriev/vault-relay/models"
)

// changeRepository is the SQL-backed implementation of [ChangeRepository].
// It owns the "files" table: one row per file identifier, each carrying the
// sequence number of its latest mutation.
//
// Sequence assignment happens inside a transaction together with the row
// write, so a reader can never observe a sequence number whose row is not
// yet visible. The repository itself does not serialize mutations; the
// service layer calls Put and Tombstone under a single mutation lock.
type changeRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewChangeRepository constructs a [ChangeRepository] backed by the provided
// database connection and logger.
func NewChangeRepository(db *DB, logger *logger.Logger) ChangeRepository {
	logger.Debug().Msg("creating change repository")
	return &changeRepository{
		db:     db,
		logger: logger,
	}
}

// CurrentSequence implements [ChangeRepository].
func (r *changeRepository) CurrentSequence(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select("COALESCE(MAX(sequence), 0)").
		From("files").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building sequence query: %w", err)
	}

	var sequence int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&sequence); err != nil {
		log.Err(err).Str("func", "*changeRepository.CurrentSequence").Msg("error reading current sequence")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return sequence, nil
}

// Manifest implements [ChangeRepository]. Both queries run in one read
// transaction so the returned sequence is consistent with the entries.
func (r *changeRepository) Manifest(ctx context.Context) (models.Manifest, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		log.Err(err).Str("func", "*changeRepository.Manifest").Msg("error starting manifest transaction")
		return models.Manifest{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	entriesQuery, entriesArgs, err := r.db.builder.
		Select(fileColumns...).
		From("files").
		Where(sq.Eq{"deleted": false}).
		OrderBy("sequence ASC").
		ToSql()
	if err != nil {
		return models.Manifest{}, fmt.Errorf("error building manifest query: %w", err)
	}

	rows, err := tx.QueryContext(ctx, entriesQuery, entriesArgs...)
	if err != nil {
		log.Err(err).Str("func", "*changeRepository.Manifest").Msg("error querying manifest entries")
		return models.Manifest{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	entries, err := scanFileRecords(rows)
	if err != nil {
		log.Err(err).Str("func", "*changeRepository.Manifest").Msg("error scanning manifest entries")
		return models.Manifest{}, err
	}

	sequenceQuery, sequenceArgs, err := r.db.builder.
		Select("COALESCE(MAX(sequence), 0)").
		From("files").
		ToSql()
	if err != nil {
		return models.Manifest{}, fmt.Errorf("error building sequence query: %w", err)
	}

	var sequence int64
	if err := tx.QueryRowContext(ctx, sequenceQuery, sequenceArgs...).Scan(&sequence); err != nil {
		log.Err(err).Str("func", "*changeRepository.Manifest").Msg("error reading current sequence")
		return models.Manifest{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Manifest{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return models.Manifest{Entries: entries, Sequence: sequence}, nil
}

// ChangesSince implements [ChangeRepository].
func (r *changeRepository) ChangesSince(ctx context.Context, seq int64) ([]models.FileRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(fileColumns...).
		From("files").
		Where(sq.Gt{"sequence": seq}).
		OrderBy("sequence ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building changes query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*changeRepository.ChangesSince").Msg("error querying changes")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	records, err := scanFileRecords(rows)
	if err != nil {
		log.Err(err).Str("func", "*changeRepository.ChangesSince").Msg("error scanning changes")
		return nil, err
	}

	return records, nil
}

// Get implements [ChangeRepository].
func (r *changeRepository) Get(ctx context.Context, fileID string) (models.FileRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(fileColumns...).
		From("files").
		Where(sq.Eq{"file_id": fileID}).
		ToSql()
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("error building get query: %w", err)
	}

	var record models.FileRecord
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(
		&record.FileID,
		&record.EncryptedMeta,
		&record.MTime,
		&record.Size,
		&record.Deleted,
		&record.Sequence,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.FileRecord{}, ErrNotFound
		}
		log.Err(err).Str("func", "*changeRepository.Get").Str("fileId", fileID).Msg("error reading file record")
		return models.FileRecord{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return record, nil
}

// Put implements [ChangeRepository]. Transient driver errors are retried;
// each attempt runs its own transaction.
func (r *changeRepository) Put(ctx context.Context, record models.FileRecord) (models.PutResult, error) {
	var result models.PutResult
	err := r.db.withRetry(ctx, func() error {
		var opErr error
		result, opErr = r.put(ctx, record)
		return opErr
	})
	return result, err
}

// put runs one attempt: the existence check, sequence assignment, and row
// write share one transaction.
func (r *changeRepository) put(ctx context.Context, record models.FileRecord) (models.PutResult, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*changeRepository.put").Msg("error starting put transaction")
		return models.PutResult{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	exists := true
	wasDeleted := false

	existsQuery, existsArgs, err := r.db.builder.
		Select("deleted").
		From("files").
		Where(sq.Eq{"file_id": record.FileID}).
		ToSql()
	if err != nil {
		return models.PutResult{}, fmt.Errorf("error building existence query: %w", err)
	}

	if err := tx.QueryRowContext(ctx, existsQuery, existsArgs...).Scan(&wasDeleted); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", "*changeRepository.put").Str("fileId", record.FileID).Msg("error checking file existence")
			return models.PutResult{}, fmt.Errorf("unexpected DB error: %w", err)
		}
		exists = false
	}

	next, err := nextSequence(ctx, tx, r.db.builder)
	if err != nil {
		log.Err(err).Str("func", "*changeRepository.put").Msg("error assigning sequence")
		return models.PutResult{}, err
	}

	if exists {
		updateQuery, updateArgs, err := r.db.builder.
			Update("files").
			Set("encrypted_meta", record.EncryptedMeta).
			Set("mtime", record.MTime).
			Set("size", record.Size).
			Set("deleted", false).
			Set("sequence", next).
			Where(sq.Eq{"file_id": record.FileID}).
			ToSql()
		if err != nil {
			return models.PutResult{}, fmt.Errorf("error building update query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
			log.Err(err).Str("func", "*changeRepository.put").Str("fileId", record.FileID).Msg("error updating file record")
			return models.PutResult{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	} else {
		insertQuery, insertArgs, err := r.db.builder.
			Insert("files").
			Columns(fileColumns...).
			Values(record.FileID, record.EncryptedMeta, record.MTime, record.Size, false, next).
			ToSql()
		if err != nil {
			return models.PutResult{}, fmt.Errorf("error building insert query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			log.Err(err).Str("func", "*changeRepository.put").Str("fileId", record.FileID).Msg("error inserting file record")
			return models.PutResult{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.PutResult{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return models.PutResult{Sequence: next, IsNew: !exists || wasDeleted}, nil
}

// Tombstone implements [ChangeRepository]. Transient driver errors are
// retried the same way as in Put.
func (r *changeRepository) Tombstone(ctx context.Context, fileID string) (int64, error) {
	var sequence int64
	err := r.db.withRetry(ctx, func() error {
		var opErr error
		sequence, opErr = r.tombstone(ctx, fileID)
		return opErr
	})
	return sequence, err
}

func (r *changeRepository) tombstone(ctx context.Context, fileID string) (int64, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*changeRepository.tombstone").Msg("error starting tombstone transaction")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	existsQuery, existsArgs, err := r.db.builder.
		Select("deleted").
		From("files").
		Where(sq.Eq{"file_id": fileID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building existence query: %w", err)
	}

	var deleted bool
	if err := tx.QueryRowContext(ctx, existsQuery, existsArgs...).Scan(&deleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		log.Err(err).Str("func", "*changeRepository.tombstone").Str("fileId", fileID).Msg("error checking file existence")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	next, err := nextSequence(ctx, tx, r.db.builder)
	if err != nil {
		log.Err(err).Str("func", "*changeRepository.tombstone").Msg("error assigning sequence")
		return 0, err
	}

	updateQuery, updateArgs, err := r.db.builder.
		Update("files").
		Set("deleted", true).
		Set("sequence", next).
		Where(sq.Eq{"file_id": fileID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building tombstone query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
		log.Err(err).Str("func", "*changeRepository.tombstone").Str("fileId", fileID).Msg("error tombstoning file record")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return next, nil
}

// CountFiles implements [ChangeRepository].
func (r *changeRepository) CountFiles(ctx context.Context) (int64, error) {
	query, args, err := r.db.builder.
		Select("COUNT(*)").
		From("files").
		Where(sq.Eq{"deleted": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building count query: %w", err)
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return count, nil
}

// Reset implements [ChangeRepository].
func (r *changeRepository) Reset(ctx context.Context) error {
	query, args, err := r.db.builder.Delete("files").ToSql()
	if err != nil {
		return fmt.Errorf("error building reset query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// nextSequence reads MAX(sequence)+1 inside the caller's transaction.
func nextSequence(ctx context.Context, tx *sql.Tx, builder sq.StatementBuilderType) (int64, error) {
	query, args, err := builder.
		Select("COALESCE(MAX(sequence), 0)").
		From("files").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building sequence query: %w", err)
	}

	var current int64
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&current); err != nil {
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return current + 1, nil
}

func scanFileRecords(rows *sql.Rows) ([]models.FileRecord, error) {
	defer rows.Close()

	records := make([]models.FileRecord, 0)
	for rows.Next() {
		var record models.FileRecord
		if err := rows.Scan(
			&record.FileID,
			&record.EncryptedMeta,
			&record.MTime,
			&record.Size,
			&record.Deleted,
			&record.Sequence,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return records, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/vault-relay/internal/logger"
	"github.com/MKhiriev/vault-relay/models"
)

// sessionRepository is the SQL-backed implementation of [SessionRepository].
// It owns the "sessions", "auth_tokens", and "activity_log" tables.
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// UpsertSession implements [SessionRepository]. An UPDATE is attempted
// first; a zero row count means the device is new and an INSERT follows.
// FirstSeen is only written on insert.
func (r *sessionRepository) UpsertSession(ctx context.Context, session models.ClientSession) error {
	log := logger.FromContext(ctx)

	updateQuery, updateArgs, err := r.db.builder.
		Update("sessions").
		Set("device_name", session.DeviceName).
		Set("ip", session.IP).
		Set("last_seen", session.LastSeen).
		Set("is_online", session.IsOnline).
		Where(sq.Eq{"client_id": session.ClientID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building session update query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, updateQuery, updateArgs...)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.UpsertSession").Str("clientId", session.ClientID).Msg("error updating session")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected > 0 {
		return nil
	}

	insertQuery, insertArgs, err := r.db.builder.
		Insert("sessions").
		Columns(sessionColumns...).
		Values(session.ClientID, session.DeviceName, session.IP, session.FirstSeen, session.LastSeen, session.IsOnline).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building session insert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		log.Err(err).Str("func", "*sessionRepository.UpsertSession").Str("clientId", session.ClientID).Msg("error inserting session")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// SetOnline implements [SessionRepository].
func (r *sessionRepository) SetOnline(ctx context.Context, clientID string, online bool) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Update("sessions").
		Set("is_online", online).
		Set("last_seen", time.Now()).
		Where(sq.Eq{"client_id": clientID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building online flag query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*sessionRepository.SetOnline").Str("clientId", clientID).Msg("error updating online flag")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// SetAllOffline implements [SessionRepository].
func (r *sessionRepository) SetAllOffline(ctx context.Context) error {
	query, args, err := r.db.builder.
		Update("sessions").
		Set("is_online", false).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building offline sweep query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// DeleteSession implements [SessionRepository].
func (r *sessionRepository) DeleteSession(ctx context.Context, clientID string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Delete("sessions").
		Where(sq.Eq{"client_id": clientID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building session delete query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteSession").Str("clientId", clientID).Msg("error deleting session")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// ListSessions implements [SessionRepository].
func (r *sessionRepository) ListSessions(ctx context.Context) ([]models.ClientSession, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(sessionColumns...).
		From("sessions").
		OrderBy("last_seen DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building session list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.ListSessions").Msg("error querying sessions")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	sessions := make([]models.ClientSession, 0)
	for rows.Next() {
		var session models.ClientSession
		if err := rows.Scan(
			&session.ClientID,
			&session.DeviceName,
			&session.IP,
			&session.FirstSeen,
			&session.LastSeen,
			&session.IsOnline,
		); err != nil {
			log.Err(err).Str("func", "*sessionRepository.ListSessions").Msg("error scanning session")
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return sessions, nil
}

// SaveToken implements [SessionRepository]. The delete and insert share a
// transaction so the client never briefly holds two valid tokens.
func (r *sessionRepository) SaveToken(ctx context.Context, token models.AuthToken) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.SaveToken").Msg("error starting token transaction")
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	deleteQuery, deleteArgs, err := r.db.builder.
		Delete("auth_tokens").
		Where(sq.Eq{"client_id": token.ClientID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building token delete query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		log.Err(err).Str("func", "*sessionRepository.SaveToken").Str("clientId", token.ClientID).Msg("error revoking previous tokens")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	insertQuery, insertArgs, err := r.db.builder.
		Insert("auth_tokens").
		Columns(tokenColumns...).
		Values(token.Token, token.ClientID, token.DeviceName, token.IP, token.CreatedAt, token.LastUsed).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building token insert query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		log.Err(err).Str("func", "*sessionRepository.SaveToken").Str("clientId", token.ClientID).Msg("error saving token")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// FindToken implements [SessionRepository].
func (r *sessionRepository) FindToken(ctx context.Context, token string) (models.AuthToken, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(tokenColumns...).
		From("auth_tokens").
		Where(sq.Eq{"token": token}).
		ToSql()
	if err != nil {
		return models.AuthToken{}, fmt.Errorf("error building token lookup query: %w", err)
	}

	var found models.AuthToken
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(
		&found.Token,
		&found.ClientID,
		&found.DeviceName,
		&found.IP,
		&found.CreatedAt,
		&found.LastUsed,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.AuthToken{}, ErrNotFound
		}
		log.Err(err).Str("func", "*sessionRepository.FindToken").Msg("error looking up token")
		return models.AuthToken{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	touchQuery, touchArgs, err := r.db.builder.
		Update("auth_tokens").
		Set("last_used", time.Now()).
		Where(sq.Eq{"token": token}).
		ToSql()
	if err != nil {
		return models.AuthToken{}, fmt.Errorf("error building token touch query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, touchQuery, touchArgs...); err != nil {
		// the lookup already succeeded; a failed touch only skews last_used
		log.Err(err).Str("func", "*sessionRepository.FindToken").Msg("error touching token last_used")
	}

	return found, nil
}

// RevokeTokens implements [SessionRepository].
func (r *sessionRepository) RevokeTokens(ctx context.Context, clientID string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Delete("auth_tokens").
		Where(sq.Eq{"client_id": clientID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building token revoke query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*sessionRepository.RevokeTokens").Str("clientId", clientID).Msg("error revoking tokens")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// AppendActivity implements [SessionRepository]. The id is assigned with a
// scalar subquery so the statement works identically on SQLite and
// PostgreSQL; appends are low-rate so the extra scan is irrelevant.
func (r *sessionRepository) AppendActivity(ctx context.Context, entry models.ActivityLogEntry) error {
	log := logger.FromContext(ctx)

	insertQuery, insertArgs, err := r.db.builder.
		Insert("activity_log").
		Columns("id", "type", "text", "created_at").
		Values(
			sq.Expr("(SELECT COALESCE(MAX(a.id), 0) + 1 FROM activity_log a)"),
			string(entry.Type),
			entry.Text,
			entry.Timestamp,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building activity insert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		log.Err(err).Str("func", "*sessionRepository.AppendActivity").Msg("error appending activity entry")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	trimQuery, trimArgs, err := r.db.builder.
		Delete("activity_log").
		Where(sq.Expr(
			"id NOT IN (SELECT id FROM activity_log ORDER BY id DESC LIMIT ?)",
			activityLogBound,
		)).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building activity trim query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, trimQuery, trimArgs...); err != nil {
		// trimming is best-effort; the next append retries it
		log.Err(err).Str("func", "*sessionRepository.AppendActivity").Msg("error trimming activity log")
	}

	return nil
}

// RecentActivity implements [SessionRepository].
func (r *sessionRepository) RecentActivity(ctx context.Context, limit int) ([]models.ActivityLogEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select("type", "text", "created_at").
		From("activity_log").
		OrderBy("id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building activity query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.RecentActivity").Msg("error querying activity log")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	entries := make([]models.ActivityLogEntry, 0, limit)
	for rows.Next() {
		var entry models.ActivityLogEntry
		var entryType string
		if err := rows.Scan(&entryType, &entry.Text, &entry.Timestamp); err != nil {
			log.Err(err).Str("func", "*sessionRepository.RecentActivity").Msg("error scanning activity entry")
			return nil, err
		}
		entry.Type = models.ActivityType(entryType)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return entries, nil
}

// ResetActivity implements [SessionRepository].
func (r *sessionRepository) ResetActivity(ctx context.Context) error {
	query, args, err := r.db.builder.Delete("activity_log").ToSql()
	if err != nil {
		return fmt.Errorf("error building activity reset query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

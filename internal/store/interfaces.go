// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the persistence layer of the vault relay: the
// change log and session tables (SQLite or PostgreSQL behind database/sql)
// and the sharded filesystem blob store.
package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mocks.go -package=mock

import (
	"context"

	"github.com/MKhiriev/vault-relay/models"
)

// ChangeRepository is the durable change log of file records.
//
// Put and Tombstone assign sequence numbers and are the only mutating
// operations; callers must serialize them relative to each other (the
// service layer holds a single mutation lock) so no two mutations ever
// receive the same sequence.
type ChangeRepository interface {
	// CurrentSequence returns the highest assigned sequence number, zero for
	// an empty log.
	CurrentSequence(ctx context.Context) (int64, error)

	// Manifest returns all non-deleted records plus the current sequence.
	Manifest(ctx context.Context) (models.Manifest, error)

	// ChangesSince returns every record with sequence > seq, tombstones
	// included, in ascending sequence order.
	ChangesSince(ctx context.Context, seq int64) ([]models.FileRecord, error)

	// Get returns the record for fileID or ErrNotFound. Tombstoned records
	// are returned with Deleted set.
	Get(ctx context.Context, fileID string) (models.FileRecord, error)

	// Put creates or updates the record for record.FileID, assigning it the
	// next sequence number. IsNew reports whether the identifier had no live
	// row before (absent or tombstoned).
	Put(ctx context.Context, record models.FileRecord) (models.PutResult, error)

	// Tombstone marks fileID deleted under a fresh sequence number and
	// returns it. Returns ErrNotFound if the identifier has no row.
	Tombstone(ctx context.Context, fileID string) (int64, error)

	// CountFiles returns the number of non-deleted records.
	CountFiles(ctx context.Context) (int64, error)

	// Reset truncates the change log. Used only by the server-wide reset.
	Reset(ctx context.Context) error
}

// SessionRepository persists client sessions, reusable auth tokens, and the
// bounded activity log.
type SessionRepository interface {
	// UpsertSession creates the session row on first authentication and
	// refreshes device name, IP, last-seen, and online flag on reconnects.
	// FirstSeen is preserved on update.
	UpsertSession(ctx context.Context, session models.ClientSession) error

	// SetOnline flips the online flag for clientID.
	SetOnline(ctx context.Context, clientID string, online bool) error

	// SetAllOffline clears every online flag. Run at startup, since rows
	// left online by a crash would otherwise show ghost devices.
	SetAllOffline(ctx context.Context) error

	// DeleteSession removes the session row for a kicked client.
	DeleteSession(ctx context.Context, clientID string) error

	// ListSessions returns all known sessions, most recently seen first.
	ListSessions(ctx context.Context) ([]models.ClientSession, error)

	// SaveToken stores token as the client's only active token, revoking any
	// previously issued ones.
	SaveToken(ctx context.Context, token models.AuthToken) error

	// FindToken resolves a presented token and touches its last-used
	// timestamp. Returns ErrNotFound for revoked or never-issued tokens.
	FindToken(ctx context.Context, token string) (models.AuthToken, error)

	// RevokeTokens removes every token owned by clientID.
	RevokeTokens(ctx context.Context, clientID string) error

	// AppendActivity appends one activity entry and opportunistically trims
	// the log to its bound.
	AppendActivity(ctx context.Context, entry models.ActivityLogEntry) error

	// RecentActivity returns up to limit newest entries, newest first.
	RecentActivity(ctx context.Context, limit int) ([]models.ActivityLogEntry, error)

	// ResetActivity truncates the activity log. Used by the server-wide reset.
	ResetActivity(ctx context.Context) error
}

// BlobFileStorage stores one encrypted blob per file identifier on the
// filesystem, sharded by identifier prefix.
//
// Blob writes are not transactional with ChangeRepository rows: a crash
// between the two leaves a row pointing at a missing blob, which readers
// must treat as "not found".
type BlobFileStorage interface {
	// Write stores the blob for fileID, replacing any previous content.
	Write(ctx context.Context, fileID string, data []byte) error

	// Read returns the blob for fileID or ErrNotFound.
	Read(ctx context.Context, fileID string) ([]byte, error)

	// Delete removes the blob for fileID. A missing blob is not an error.
	Delete(ctx context.Context, fileID string) error

	// Reset removes every stored blob. Used by the server-wide reset.
	Reset(ctx context.Context) error
}

// ErrorClassificator maps driver-level errors to a retry classification.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the relay's business logic between the protocol
// engine and the store layer: password and token authentication with per-IP
// rate limiting, and the serialized change-log mutations.
package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mocks.go -package=mock

import (
	"context"

	"github.com/MKhiriev/vault-relay/models"
)

// AuthService verifies client credentials and manages reusable auth tokens
// and the vault salt. Persistence is delegated to store.SessionRepository.
type AuthService interface {
	// VerifyPassword compares a client-submitted password hash against the
	// configured access hash in constant time. Failed attempts are counted
	// per source IP; once the window threshold is exceeded every further
	// attempt from that IP returns ErrRateLimited regardless of the hash.
	//
	// Returns nil on success, or ErrServerNotInitialized, ErrRateLimited,
	// ErrWrongPassword.
	VerifyPassword(ctx context.Context, candidateHash, sourceIP string) error

	// CheckHash compares candidate against the dashboard token in constant
	// time, without rate limiting. Dashboard tokens are high-entropy and not
	// guessable, unlike the access password.
	CheckHash(candidate string) bool

	// Initialized reports whether an access password hash is configured.
	Initialized() bool

	// IssueToken generates a fresh reconnect token for the client and
	// persists it as the client's only active token.
	IssueToken(ctx context.Context, clientID, deviceName, ip string) (models.AuthToken, error)

	// ValidateToken resolves a presented token by exact lookup. Returns
	// ErrTokenRevoked when the token was revoked or never issued.
	ValidateToken(ctx context.Context, token string) (models.AuthToken, error)

	// RevokeClient invalidates every token issued to clientID, so its next
	// token authentication fails.
	RevokeClient(ctx context.Context, clientID string) error

	// VaultSalt returns the server-lifetime salt shared with every
	// authenticated client, generating it on first use.
	VaultSalt() (string, error)
}

// SessionService keeps the per-client session bookkeeping and the bounded
// activity log.
type SessionService interface {
	// TouchSession creates or refreshes the client's session row on
	// successful authentication.
	TouchSession(ctx context.Context, session models.ClientSession) error

	// MarkOffline clears the online flag when the client disconnects.
	MarkOffline(ctx context.Context, clientID string) error

	// MarkAllOffline clears every online flag; run once at startup.
	MarkAllOffline(ctx context.Context) error

	// RemoveSession deletes the session row of a kicked client.
	RemoveSession(ctx context.Context, clientID string) error

	// ListSessions returns all known sessions, most recently seen first.
	ListSessions(ctx context.Context) ([]models.ClientSession, error)

	// LogActivity appends a timestamped entry to the bounded activity log.
	LogActivity(ctx context.Context, activityType models.ActivityType, text string) error

	// RecentActivity returns up to limit newest activity entries.
	RecentActivity(ctx context.Context, limit int) ([]models.ActivityLogEntry, error)

	// ResetActivity truncates the activity log during a server reset.
	ResetActivity(ctx context.Context) error
}

// ChangeService is the single mutation domain over the change log and the
// blob store. Upload, Delete, and Reset run under one mutex, so sequence
// numbers are assigned strictly one at a time; reads run concurrently.
type ChangeService interface {
	// CurrentSequence returns the highest assigned sequence number.
	CurrentSequence(ctx context.Context) (int64, error)

	// CountFiles returns the number of non-deleted file records.
	CountFiles(ctx context.Context) (int64, error)

	// Manifest returns every non-deleted record plus the current sequence.
	Manifest(ctx context.Context) (models.Manifest, error)

	// ChangesSince returns every record with sequence > seq, tombstones
	// included, ascending.
	ChangesSince(ctx context.Context, seq int64) ([]models.FileRecord, error)

	// Upload commits the record under the next sequence number and stores
	// its blob. IsNew reports create vs update.
	Upload(ctx context.Context, record models.FileRecord, blob []byte) (models.PutResult, error)

	// Download returns the record and its blob. A tombstoned record or a
	// record whose blob is missing both come back as store.ErrNotFound.
	Download(ctx context.Context, fileID string) (models.FileRecord, []byte, error)

	// Delete tombstones the record under a fresh sequence number and removes
	// its blob best-effort. Returns the new sequence.
	Delete(ctx context.Context, fileID string) (int64, error)

	// Reset truncates the change log and the blob store.
	Reset(ctx context.Context) error
}

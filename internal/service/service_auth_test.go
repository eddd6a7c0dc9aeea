// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/vault-relay/internal/config"
	"github.com/MKhiriev/vault-relay/internal/logger"
	"github.com/MKhiriev/vault-relay/internal/store"
	"github.com/MKhiriev/vault-relay/models"
)

// ─────────────────────────────────────────────
// Mock: store.SessionRepository
// ─────────────────────────────────────────────

type mockSessionRepository struct {
	store.SessionRepository

	saveTokenFn    func(ctx context.Context, token models.AuthToken) error
	findTokenFn    func(ctx context.Context, token string) (models.AuthToken, error)
	revokeTokensFn func(ctx context.Context, clientID string) error
}

func (m *mockSessionRepository) SaveToken(ctx context.Context, token models.AuthToken) error {
	if m.saveTokenFn != nil {
		return m.saveTokenFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepository) FindToken(ctx context.Context, token string) (models.AuthToken, error) {
	if m.findTokenFn != nil {
		return m.findTokenFn(ctx, token)
	}
	return models.AuthToken{}, store.ErrNotFound
}

func (m *mockSessionRepository) RevokeTokens(ctx context.Context, clientID string) error {
	if m.revokeTokensFn != nil {
		return m.revokeTokensFn(ctx, clientID)
	}
	return nil
}

func newTestAuthService(t *testing.T, repo store.SessionRepository, cfg config.Auth) *authService {
	t.Helper()

	if cfg.RateLimitMax == 0 {
		cfg.RateLimitMax = 5
	}
	if cfg.RateLimitWindow == 0 {
		cfg.RateLimitWindow = 15 * time.Minute
	}

	return NewAuthService(repo, cfg, logger.Nop()).(*authService)
}

// ── VerifyPassword ───────────────────────────────────────────────────────────

func TestVerifyPassword_Success(t *testing.T) {
	svc := newTestAuthService(t, &mockSessionRepository{}, config.Auth{PasswordHash: "correct-hash"})

	err := svc.VerifyPassword(context.Background(), "correct-hash", "10.0.0.5")
	assert.NoError(t, err)
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	svc := newTestAuthService(t, &mockSessionRepository{}, config.Auth{PasswordHash: "correct-hash"})

	err := svc.VerifyPassword(context.Background(), "wrong-hash", "10.0.0.5")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestVerifyPassword_Uninitialized(t *testing.T) {
	svc := newTestAuthService(t, &mockSessionRepository{}, config.Auth{})

	err := svc.VerifyPassword(context.Background(), "anything", "10.0.0.5")
	assert.ErrorIs(t, err, ErrServerNotInitialized)
}

func TestVerifyPassword_RateLimitBlocksCorrectPassword(t *testing.T) {
	svc := newTestAuthService(t, &mockSessionRepository{}, config.Auth{
		PasswordHash: "correct-hash",
		RateLimitMax: 3,
	})
	ctx := context.Background()

	for range 3 {
		err := svc.VerifyPassword(ctx, "wrong-hash", "10.0.0.5")
		require.ErrorIs(t, err, ErrWrongPassword)
	}

	// the fourth attempt is rejected even with the correct hash
	err := svc.VerifyPassword(ctx, "correct-hash", "10.0.0.5")
	assert.ErrorIs(t, err, ErrRateLimited)

	// a different IP is unaffected
	err = svc.VerifyPassword(ctx, "correct-hash", "10.0.0.6")
	assert.NoError(t, err)
}

func TestVerifyPassword_RateLimitWindowElapses(t *testing.T) {
	svc := newTestAuthService(t, &mockSessionRepository{}, config.Auth{
		PasswordHash:    "correct-hash",
		RateLimitMax:    2,
		RateLimitWindow: 15 * time.Minute,
	})
	ctx := context.Background()

	now := time.Now()
	svc.limiter.now = func() time.Time { return now }

	require.ErrorIs(t, svc.VerifyPassword(ctx, "wrong", "10.0.0.5"), ErrWrongPassword)
	require.ErrorIs(t, svc.VerifyPassword(ctx, "wrong", "10.0.0.5"), ErrWrongPassword)
	require.ErrorIs(t, svc.VerifyPassword(ctx, "correct-hash", "10.0.0.5"), ErrRateLimited)

	svc.limiter.now = func() time.Time { return now.Add(16 * time.Minute) }

	assert.NoError(t, svc.VerifyPassword(ctx, "correct-hash", "10.0.0.5"))
}

// ── CheckHash ────────────────────────────────────────────────────────────────

func TestCheckHash(t *testing.T) {
	svc := newTestAuthService(t, &mockSessionRepository{}, config.Auth{DashboardToken: "dash-token"})

	assert.True(t, svc.CheckHash("dash-token"))
	assert.False(t, svc.CheckHash("other"))
	assert.False(t, svc.CheckHash(""))
}

func TestCheckHash_NoTokenConfigured(t *testing.T) {
	svc := newTestAuthService(t, &mockSessionRepository{}, config.Auth{})

	assert.False(t, svc.CheckHash(""))
}

// ── Tokens ───────────────────────────────────────────────────────────────────

func TestIssueToken_PersistsHexToken(t *testing.T) {
	var saved models.AuthToken
	repo := &mockSessionRepository{
		saveTokenFn: func(_ context.Context, token models.AuthToken) error {
			saved = token
			return nil
		},
	}
	svc := newTestAuthService(t, repo, config.Auth{PasswordHash: "h"})

	token, err := svc.IssueToken(context.Background(), "c1", "laptop", "10.0.0.5")
	require.NoError(t, err)

	assert.Len(t, token.Token, 64)
	assert.Equal(t, "c1", saved.ClientID)
	assert.Equal(t, token.Token, saved.Token)
	assert.False(t, saved.CreatedAt.IsZero())
}

func TestIssueToken_NoClientID(t *testing.T) {
	svc := newTestAuthService(t, &mockSessionRepository{}, config.Auth{PasswordHash: "h"})

	_, err := svc.IssueToken(context.Background(), "", "laptop", "10.0.0.5")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestValidateToken_Revoked(t *testing.T) {
	svc := newTestAuthService(t, &mockSessionRepository{}, config.Auth{PasswordHash: "h"})

	_, err := svc.ValidateToken(context.Background(), "never-issued")
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestValidateToken_Success(t *testing.T) {
	repo := &mockSessionRepository{
		findTokenFn: func(_ context.Context, token string) (models.AuthToken, error) {
			return models.AuthToken{Token: token, ClientID: "c1"}, nil
		},
	}
	svc := newTestAuthService(t, repo, config.Auth{PasswordHash: "h"})

	found, err := svc.ValidateToken(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "c1", found.ClientID)
}

func TestRevokeClient_DelegatesToRepository(t *testing.T) {
	var revoked string
	repo := &mockSessionRepository{
		revokeTokensFn: func(_ context.Context, clientID string) error {
			revoked = clientID
			return nil
		},
	}
	svc := newTestAuthService(t, repo, config.Auth{PasswordHash: "h"})

	require.NoError(t, svc.RevokeClient(context.Background(), "c1"))
	assert.Equal(t, "c1", revoked)
}

// ── VaultSalt ────────────────────────────────────────────────────────────────

func TestVaultSalt_StableAcrossCalls(t *testing.T) {
	svc := newTestAuthService(t, &mockSessionRepository{}, config.Auth{PasswordHash: "h"})

	first, err := svc.VaultSalt()
	require.NoError(t, err)
	second, err := svc.VaultSalt()
	require.NoError(t, err)

	assert.Equal(t, first, second)

	raw, err := base64.StdEncoding.DecodeString(first)
	require.NoError(t, err)
	assert.Len(t, raw, vaultSaltBytes)
}

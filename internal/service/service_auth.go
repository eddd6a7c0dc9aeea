// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/vault-relay/internal/config"
	"github.com/MKhiriev/vault-relay/internal/logger"
	"github.com/MKhiriev/vault-relay/internal/store"
	"github.com/MKhiriev/vault-relay/models"
)

const (
	// tokenBytes is the entropy of a reconnect token; hex-encoded to 64 chars.
	tokenBytes = 32

	// vaultSaltBytes is the size of the server-lifetime vault salt.
	vaultSaltBytes = 32
)

// authService is the concrete implementation of AuthService.
//
// The access password hash is guessable and therefore rate limited per
// source IP; reconnect tokens are high-entropy random values validated by
// exact lookup, so they carry no rate limit but support instant revocation.
type authService struct {
	sessionRepository store.SessionRepository

	// passwordHash is the configured access hash every sync client must
	// present. Empty means the server is not initialized yet.
	passwordHash string

	// dashboardToken guards the read-only dashboard and the reset endpoint.
	dashboardToken string

	limiter *rateLimiter

	// vaultSalt is generated on first use and kept for the process lifetime.
	saltMu    sync.Mutex
	vaultSalt string

	logger *logger.Logger
}

// NewAuthService constructs an AuthService backed by the given session
// repository and populated with the access credentials from cfg.
func NewAuthService(sessionRepository store.SessionRepository, cfg config.Auth, logger *logger.Logger) AuthService {
	logger.Debug().
		Bool("initialized", cfg.PasswordHash != "").
		Int("rateLimitMax", cfg.RateLimitMax).
		Dur("rateLimitWindow", cfg.RateLimitWindow).
		Msg("creating auth service")

	return &authService{
		sessionRepository: sessionRepository,
		passwordHash:      cfg.PasswordHash,
		dashboardToken:    cfg.DashboardToken,
		limiter:           newRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow),
		logger:            logger,
	}
}

// VerifyPassword implements [AuthService]. The rate limit is checked before
// the comparison, so a limited IP fails fast even with the correct hash.
func (a *authService) VerifyPassword(ctx context.Context, candidateHash, sourceIP string) error {
	log := logger.FromContext(ctx)

	if a.passwordHash == "" {
		log.Warn().Str("ip", sourceIP).Msg("auth attempt against uninitialized server")
		return ErrServerNotInitialized
	}

	if a.limiter.limited(sourceIP) {
		log.Warn().Str("ip", sourceIP).Msg("auth attempt rate limited")
		return ErrRateLimited
	}

	if subtle.ConstantTimeCompare([]byte(candidateHash), []byte(a.passwordHash)) != 1 {
		a.limiter.fail(sourceIP)
		log.Warn().Str("ip", sourceIP).Msg("wrong password")
		return ErrWrongPassword
	}

	return nil
}

// CheckHash implements [AuthService].
func (a *authService) CheckHash(candidate string) bool {
	if a.dashboardToken == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(candidate), []byte(a.dashboardToken)) == 1
}

// Initialized implements [AuthService].
func (a *authService) Initialized() bool {
	return a.passwordHash != ""
}

// IssueToken implements [AuthService].
func (a *authService) IssueToken(ctx context.Context, clientID, deviceName, ip string) (models.AuthToken, error) {
	log := logger.FromContext(ctx)

	if clientID == "" {
		return models.AuthToken{}, ErrInvalidDataProvided
	}

	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		log.Err(err).Str("func", "*authService.IssueToken").Msg("error generating token")
		return models.AuthToken{}, fmt.Errorf("error generating token: %w", err)
	}

	now := time.Now()
	token := models.AuthToken{
		Token:      hex.EncodeToString(raw),
		ClientID:   clientID,
		DeviceName: deviceName,
		IP:         ip,
		CreatedAt:  now,
		LastUsed:   now,
	}

	if err := a.sessionRepository.SaveToken(ctx, token); err != nil {
		log.Err(err).Str("func", "*authService.IssueToken").Str("clientId", clientID).Msg("error saving token")
		return models.AuthToken{}, fmt.Errorf("error saving token: %w", err)
	}

	return token, nil
}

// ValidateToken implements [AuthService].
func (a *authService) ValidateToken(ctx context.Context, token string) (models.AuthToken, error) {
	found, err := a.sessionRepository.FindToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.AuthToken{}, ErrTokenRevoked
		}
		return models.AuthToken{}, fmt.Errorf("error resolving token: %w", err)
	}

	return found, nil
}

// RevokeClient implements [AuthService].
func (a *authService) RevokeClient(ctx context.Context, clientID string) error {
	log := logger.FromContext(ctx)

	if err := a.sessionRepository.RevokeTokens(ctx, clientID); err != nil {
		log.Err(err).Str("func", "*authService.RevokeClient").Str("clientId", clientID).Msg("error revoking tokens")
		return fmt.Errorf("error revoking tokens: %w", err)
	}

	return nil
}

// VaultSalt implements [AuthService].
func (a *authService) VaultSalt() (string, error) {
	a.saltMu.Lock()
	defer a.saltMu.Unlock()

	if a.vaultSalt == "" {
		raw := make([]byte, vaultSaltBytes)
		if _, err := rand.Read(raw); err != nil {
			return "", fmt.Errorf("error generating vault salt: %w", err)
		}
		a.vaultSalt = base64.StdEncoding.EncodeToString(raw)
	}

	return a.vaultSalt, nil
}

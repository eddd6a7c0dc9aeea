// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/vault-relay/internal/logger"
	"github.com/MKhiriev/vault-relay/internal/store"
	"github.com/MKhiriev/vault-relay/models"
)

// sessionService is the concrete implementation of SessionService.
type sessionService struct {
	sessionRepository store.SessionRepository
	logger            *logger.Logger
}

// NewSessionService constructs a SessionService over the given repository.
func NewSessionService(sessionRepository store.SessionRepository, logger *logger.Logger) SessionService {
	logger.Debug().Msg("creating session service")

	return &sessionService{
		sessionRepository: sessionRepository,
		logger:            logger,
	}
}

// TouchSession implements [SessionService].
func (s *sessionService) TouchSession(ctx context.Context, session models.ClientSession) error {
	log := logger.FromContext(ctx)

	if session.ClientID == "" {
		log.Error().Msg("session without client identifier")
		return ErrInvalidDataProvided
	}

	now := time.Now()
	if session.FirstSeen.IsZero() {
		session.FirstSeen = now
	}
	if session.LastSeen.IsZero() {
		session.LastSeen = now
	}

	if err := s.sessionRepository.UpsertSession(ctx, session); err != nil {
		log.Err(err).Str("func", "*sessionService.TouchSession").Str("clientId", session.ClientID).Msg("error upserting session")
		return fmt.Errorf("error upserting session: %w", err)
	}

	return nil
}

// MarkOffline implements [SessionService].
func (s *sessionService) MarkOffline(ctx context.Context, clientID string) error {
	if err := s.sessionRepository.SetOnline(ctx, clientID, false); err != nil {
		return fmt.Errorf("error marking session offline: %w", err)
	}

	return nil
}

// MarkAllOffline implements [SessionService].
func (s *sessionService) MarkAllOffline(ctx context.Context) error {
	if err := s.sessionRepository.SetAllOffline(ctx); err != nil {
		return fmt.Errorf("error marking sessions offline: %w", err)
	}

	return nil
}

// RemoveSession implements [SessionService].
func (s *sessionService) RemoveSession(ctx context.Context, clientID string) error {
	if err := s.sessionRepository.DeleteSession(ctx, clientID); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}

	return nil
}

// ListSessions implements [SessionService].
func (s *sessionService) ListSessions(ctx context.Context) ([]models.ClientSession, error) {
	sessions, err := s.sessionRepository.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing sessions: %w", err)
	}

	return sessions, nil
}

// LogActivity implements [SessionService]. Append failures are logged and
// swallowed: the activity log is informational and must never fail a
// protocol operation.
func (s *sessionService) LogActivity(ctx context.Context, activityType models.ActivityType, text string) error {
	log := logger.FromContext(ctx)

	entry := models.ActivityLogEntry{
		Type:      activityType,
		Text:      text,
		Timestamp: time.Now(),
	}

	if err := s.sessionRepository.AppendActivity(ctx, entry); err != nil {
		log.Err(err).Str("func", "*sessionService.LogActivity").Str("type", string(activityType)).Msg("error appending activity entry")
	}

	return nil
}

// RecentActivity implements [SessionService].
func (s *sessionService) RecentActivity(ctx context.Context, limit int) ([]models.ActivityLogEntry, error) {
	entries, err := s.sessionRepository.RecentActivity(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("error loading recent activity: %w", err)
	}

	return entries, nil
}

// ResetActivity implements [SessionService].
func (s *sessionService) ResetActivity(ctx context.Context) error {
	if err := s.sessionRepository.ResetActivity(ctx); err != nil {
		return fmt.Errorf("error truncating activity log: %w", err)
	}

	return nil
}

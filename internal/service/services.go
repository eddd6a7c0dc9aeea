package service

import (
	"github.com/MKhiriev/vault-relay/internal/config"
	"github.com/MKhiriev/vault-relay/internal/logger"
	"github.com/MKhiriev/vault-relay/internal/store"
)

type Services struct {
	AuthService    AuthService
	SessionService SessionService
	ChangeService  ChangeService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:    NewAuthService(storages.SessionRepository, cfg.Auth, logger),
		SessionService: NewSessionService(storages.SessionRepository, logger),
		ChangeService:  NewChangeService(storages.ChangeRepository, storages.BlobStorage, logger),
	}
}

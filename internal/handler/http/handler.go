package http

import (
	"github.com/MKhiriev/vault-relay/internal/hub"
	"github.com/MKhiriev/vault-relay/internal/logger"
	"github.com/MKhiriev/vault-relay/internal/service"
)

type Handler struct {
	services *service.Services
	hub      *hub.Hub

	// version is the build version string served by /api/version.
	version string

	logger *logger.Logger
}

func NewHandler(services *service.Services, h *hub.Hub, version string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		hub:      h,
		version:  version,
		logger:   logger,
	}
}

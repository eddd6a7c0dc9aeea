package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/vault-relay/internal/config"
	myHTTP "github.com/MKhiriev/vault-relay/internal/handler/http"
	"github.com/MKhiriev/vault-relay/internal/hub"
	"github.com/MKhiriev/vault-relay/internal/logger"
)

type server struct {
	httpServer *httpServer
	hub        *hub.Hub
	logger     *logger.Logger
}

func NewServer(handler *myHTTP.Handler, h *hub.Hub, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if cfg.HTTPAddress == "" {
		return nil, errNoAddressConfigured
	}

	return &server{
		httpServer: newHTTPServer(handler.Init(), cfg, logger),
		hub:        h,
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	if err := s.run(); err != nil {
		s.logger.Info().Msgf("Error running server: %v \n", err)
	}
}

func (s *server) Shutdown() {
	// close live WebSocket connections before the listener stops accepting
	s.hub.Shutdown()
	s.httpServer.Shutdown()
}

func (s *server) run() error {
	idleConnectionsClosed := make(chan struct{})
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// listen for stop signals
	go func() {
		<-ctx.Done()

		s.Shutdown()

		close(idleConnectionsClosed)
	}()

	s.logger.Info().Msg("Launching HTTP server")
	go s.httpServer.RunServer()

	<-idleConnectionsClosed
	s.logger.Info().Msg("server Shutdown gracefully")

	return nil
}

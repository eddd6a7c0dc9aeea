package main

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/MKhiriev/vault-relay/internal/config"
	"github.com/MKhiriev/vault-relay/internal/discovery"
	myHTTP "github.com/MKhiriev/vault-relay/internal/handler/http"
	"github.com/MKhiriev/vault-relay/internal/hub"
	"github.com/MKhiriev/vault-relay/internal/logger"
	"github.com/MKhiriev/vault-relay/internal/server"
	"github.com/MKhiriev/vault-relay/internal/service"
	"github.com/MKhiriev/vault-relay/internal/store"
	"github.com/MKhiriev/vault-relay/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("vault-relay")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := log.WithContext(context.Background())

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	services := service.NewServices(storages, cfg, log)

	// sessions left online by a previous run are stale after a restart
	if err := services.SessionService.MarkAllOffline(ctx); err != nil {
		log.Err(err).Msg("error marking stale sessions offline")
	}

	h := hub.NewHub(services, cfg.Server, log)

	backgroundWorkers := []workers.Worker{
		hub.NewHeartbeatWorker(h, cfg.Server.HeartbeatInterval, log),
	}
	if cfg.Discovery.Address != "" {
		port, err := listenPort(cfg.Server.HTTPAddress)
		if err != nil {
			log.Fatal().Err(err).Msg("error resolving advertised port")
		}
		backgroundWorkers = append(backgroundWorkers, discovery.NewResponder(cfg.Discovery, h.ServerID(), port, log))
	}

	handler := myHTTP.NewHandler(services, h, buildVersion, log)

	srv, err := server.NewServer(handler, h, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workers.NewWorkers(backgroundWorkers...).Run()
	srv.RunServer()
}

// listenPort extracts the TCP port advertised in discovery replies from the
// configured listen address.
func listenPort(address string) (int, error) {
	_, portString, err := net.SplitHostPort(address)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(portString)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}

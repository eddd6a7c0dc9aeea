// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package discovery implements the LAN discovery responder.
//
// Clients on the local network locate a relay by broadcasting a probe
// datagram; the responder answers with a small JSON payload carrying the
// server identifier and the TCP port the relay listens on.
package discovery

import (
	"encoding/json"
	"net"

	"github.com/MKhiriev/vault-relay/internal/config"
	"github.com/MKhiriev/vault-relay/internal/logger"
	"github.com/MKhiriev/vault-relay/internal/workers"
)

// probePayload is the exact datagram clients broadcast to find a relay.
const probePayload = "VAULT_RELAY_PROBE"

// maxProbeBytes bounds a received datagram; the probe itself is tiny and
// anything longer is not a probe.
const maxProbeBytes = 64

// reply is the discovery answer datagram.
type reply struct {
	ServerID string `json:"serverId"`
	Port     int    `json:"port"`
}

type responder struct {
	addr     string
	serverID string
	port     int

	logger *logger.Logger
}

// NewResponder constructs the discovery background worker. serverID is the
// hub's instance identifier and port the TCP port advertised to probing
// clients.
func NewResponder(cfg config.Discovery, serverID string, port int, logger *logger.Logger) workers.Worker {
	logger.Debug().Str("address", cfg.Address).Int("port", port).Msg("creating discovery responder")

	return &responder{
		addr:     cfg.Address,
		serverID: serverID,
		port:     port,
		logger:   logger,
	}
}

// Run implements [workers.Worker]. It binds the UDP socket and serves probes
// in a background goroutine.
func (r *responder) Run() {
	conn, err := r.listen()
	if err != nil {
		r.logger.Err(err).Str("func", "*responder.Run").Msg("error binding discovery socket")
		return
	}

	go r.serve(conn)
}

func (r *responder) listen() (net.PacketConn, error) {
	return net.ListenPacket("udp", r.addr)
}

func (r *responder) serve(conn net.PacketConn) {
	r.logger.Info().Str("address", conn.LocalAddr().String()).Msg("discovery responder listening")

	answer, err := json.Marshal(reply{ServerID: r.serverID, Port: r.port})
	if err != nil {
		r.logger.Err(err).Str("func", "*responder.serve").Msg("error marshalling discovery reply")
		return
	}

	buf := make([]byte, maxProbeBytes)
	for {
		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			r.logger.Err(err).Str("func", "*responder.serve").Msg("discovery socket read failed")
			return
		}

		if string(buf[:n]) != probePayload {
			continue
		}

		if _, err := conn.WriteTo(answer, addr); err != nil {
			r.logger.Err(err).Str("func", "*responder.serve").Str("peer", addr.String()).Msg("error answering probe")
		}
	}
}

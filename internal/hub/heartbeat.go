// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package hub

import (
	"context"
	"time"

	"github.com/coder/websocket"

	"github.com/MKhiriev/vault-relay/internal/logger"
	"github.com/MKhiriev/vault-relay/internal/workers"
	"github.com/MKhiriev/vault-relay/models"
)

// heartbeatWorker periodically pings every authenticated connection to
// detect half-open sockets, and discards upload headers whose binary frame
// never arrived.
type heartbeatWorker struct {
	hub      *Hub
	interval time.Duration
	logger   *logger.Logger
}

// NewHeartbeatWorker constructs the heartbeat background worker.
func NewHeartbeatWorker(hub *Hub, interval time.Duration, logger *logger.Logger) workers.Worker {
	logger.Debug().Dur("interval", interval).Msg("creating heartbeat worker")

	return &heartbeatWorker{
		hub:      hub,
		interval: interval,
		logger:   logger,
	}
}

// Run implements [workers.Worker]. It spawns the ticker loop and returns.
func (w *heartbeatWorker) Run() {
	go w.loop()
}

func (w *heartbeatWorker) loop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	ctx := w.logger.WithContext(context.Background())

	for range ticker.C {
		w.tick(ctx)
	}
}

func (w *heartbeatWorker) tick(ctx context.Context) {
	ping := models.PingMessage{
		Envelope:  models.Envelope{Type: models.MessagePing},
		Timestamp: time.Now().UnixMilli(),
	}

	for _, c := range w.hub.authenticatedConns() {
		c.discardStalePending(pendingUploadMaxAge)

		if err := c.send(ctx, ping); err != nil {
			// a failed write is the liveness signal; the read loop cleans up
			c.close(websocket.StatusAbnormalClosure, "heartbeat write failed")
		}
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package hub is the protocol engine of the vault relay. It owns the two
// connection registries (sync clients and read-only dashboard subscribers),
// the per-connection state machine, message dispatch, upload header/blob
// pairing, and the multicast fan-out of changes and presence events.
package hub

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/MKhiriev/vault-relay/internal/config"
	"github.com/MKhiriev/vault-relay/internal/logger"
	"github.com/MKhiriev/vault-relay/internal/service"
	"github.com/MKhiriev/vault-relay/models"
)

const (
	// writeTimeout bounds a single frame write so one dead socket cannot
	// stall a broadcast. Sized for blob frames, not just JSON.
	writeTimeout = 30 * time.Second

	// recentActivityLimit is how many activity entries a dashboard snapshot
	// carries.
	recentActivityLimit = 50
)

// Status is the read-only server snapshot served to dashboards and /api/status.
type Status struct {
	ServerID        string `json:"serverId"`
	UptimeSeconds   int64  `json:"uptimeSeconds"`
	CurrentSequence int64  `json:"currentSequence"`
	FileCount       int64  `json:"fileCount"`
	ClientsOnline   int    `json:"clientsOnline"`
	ClientsTotal    int    `json:"clientsTotal"`
}

// snapshot is the first frame a dashboard subscriber receives.
type snapshot struct {
	Status
	Clients  []models.ClientSession    `json:"clients"`
	Activity []models.ActivityLogEntry `json:"activity"`
}

// Hub owns all process-wide protocol state: the sync and dashboard
// registries, the theme cache, and the reset quiesce flag. All of it is
// initialized at server start and torn down on shutdown or reset.
type Hub struct {
	services *service.Services
	cfg      config.Server

	// serverID identifies this relay instance to clients; regenerated on
	// every start.
	serverID  string
	startedAt time.Time

	mu          sync.RWMutex
	syncClients map[*connection]bool
	dashboards  map[*websocket.Conn]bool

	themeMu sync.RWMutex
	theme   json.RawMessage

	// resetting quiesces the hub: new upgrades are refused and mutations
	// rejected while a server-wide reset truncates storage.
	resetting atomic.Bool

	logger *logger.Logger
}

// NewHub constructs the protocol engine over the given services.
func NewHub(services *service.Services, cfg config.Server, logger *logger.Logger) *Hub {
	serverID := uuid.NewString()
	logger.Info().Str("serverId", serverID).Msg("creating hub")

	return &Hub{
		services:    services,
		cfg:         cfg,
		serverID:    serverID,
		startedAt:   time.Now(),
		syncClients: make(map[*connection]bool),
		dashboards:  make(map[*websocket.Conn]bool),
		logger:      logger,
	}
}

// ServerID returns the instance identifier shared in AUTH_OK and discovery
// replies.
func (h *Hub) ServerID() string { return h.serverID }

// HandleSync upgrades a sync-client connection and runs its state machine
// until the socket closes. Blocks for the connection lifetime.
func (h *Hub) HandleSync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if h.resetting.Load() {
		http.Error(w, "server reset in progress", http.StatusServiceUnavailable)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// payloads are encrypted and incompressible
		CompressionMode: websocket.CompressionDisabled,
	})
	if err != nil {
		log.Err(err).Str("func", "*Hub.HandleSync").Msg("websocket upgrade failed")
		return
	}
	conn.SetReadLimit(models.MaxMessageBytes)

	c := newConnection(h, conn, remoteIP(r), h.logger.GetChildLogger())

	h.mu.Lock()
	h.syncClients[c] = true
	h.mu.Unlock()

	c.run(h.logger.WithContext(r.Context()))
}

// HandleDashboard upgrades a read-only dashboard subscriber. The dashboard
// token travels as a query parameter because the upgrade handshake cannot
// carry custom headers from a browser.
func (h *Hub) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if !h.services.AuthService.CheckHash(r.URL.Query().Get("token")) {
		http.Error(w, "invalid dashboard token", http.StatusUnauthorized)
		return
	}
	if h.resetting.Load() {
		http.Error(w, "server reset in progress", http.StatusServiceUnavailable)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		CompressionMode: websocket.CompressionDisabled,
	})
	if err != nil {
		log.Err(err).Str("func", "*Hub.HandleDashboard").Msg("websocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.dashboards[conn] = true
	h.mu.Unlock()

	ctx := h.logger.WithContext(r.Context())
	h.sendDashboardSnapshot(ctx, conn)

	// dashboards never send protocol mutations; read only to notice closure
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.dashboards, conn)
	h.mu.Unlock()
	_ = conn.Close(websocket.StatusNormalClosure, "")
}

// Status assembles the read-only server snapshot.
func (h *Hub) Status(ctx context.Context) (Status, error) {
	sequence, err := h.services.ChangeService.CurrentSequence(ctx)
	if err != nil {
		return Status{}, err
	}

	fileCount, err := h.services.ChangeService.CountFiles(ctx)
	if err != nil {
		return Status{}, err
	}

	sessions, err := h.services.SessionService.ListSessions(ctx)
	if err != nil {
		return Status{}, err
	}

	online := 0
	for _, s := range sessions {
		if s.IsOnline {
			online++
		}
	}

	return Status{
		ServerID:        h.serverID,
		UptimeSeconds:   int64(time.Since(h.startedAt).Seconds()),
		CurrentSequence: sequence,
		FileCount:       fileCount,
		ClientsOnline:   online,
		ClientsTotal:    len(sessions),
	}, nil
}

// SetTheme caches the dashboard theme payload and forwards it to all
// dashboard subscribers. The payload is opaque to the server.
func (h *Hub) SetTheme(ctx context.Context, theme json.RawMessage) {
	h.themeMu.Lock()
	h.theme = theme
	h.themeMu.Unlock()

	h.broadcastDashboards(ctx, models.UITheme, theme)
}

// Theme returns the cached theme payload, nil when none was pushed yet.
func (h *Hub) Theme() json.RawMessage {
	h.themeMu.RLock()
	defer h.themeMu.RUnlock()

	return h.theme
}

// Reset performs the server-wide wipe: it stops accepting new connections
// and mutations, closes every live sync connection, truncates the change
// log, blob store, and activity log, then resumes.
func (h *Hub) Reset(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Warn().Msg("server reset requested")

	h.resetting.Store(true)
	defer h.resetting.Store(false)

	h.mu.Lock()
	conns := make([]*connection, 0, len(h.syncClients))
	for c := range h.syncClients {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		c.close(StatusServerReset, "server reset in progress")
	}

	if err := h.services.ChangeService.Reset(ctx); err != nil {
		return err
	}
	if err := h.services.SessionService.ResetActivity(ctx); err != nil {
		return err
	}

	h.broadcastStatus(ctx)
	log.Warn().Msg("server reset complete")

	return nil
}

// Shutdown closes every live connection with a going-away status.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	for c := range h.syncClients {
		c.close(websocket.StatusGoingAway, "server shutting down")
	}
	for conn := range h.dashboards {
		_ = conn.Close(websocket.StatusGoingAway, "server shutting down")
		delete(h.dashboards, conn)
	}
	h.mu.Unlock()
}

// dropConnection removes c from the registry and, for authenticated
// connections, updates presence and fans the departure out.
func (h *Hub) dropConnection(c *connection) {
	h.mu.Lock()
	if !h.syncClients[c] {
		h.mu.Unlock()
		return
	}
	delete(h.syncClients, c)
	h.mu.Unlock()

	_ = c.conn.Close(websocket.StatusNormalClosure, "")

	clientID, deviceName, authenticated := c.identity()
	if !authenticated {
		return
	}

	ctx := h.logger.WithContext(context.Background())
	log := logger.FromContext(ctx)
	log.Info().Str("clientId", clientID).Str("device", deviceName).Msg("client disconnected")

	if err := h.services.SessionService.MarkOffline(ctx, clientID); err != nil {
		log.Err(err).Str("func", "*Hub.dropConnection").Str("clientId", clientID).Msg("error marking session offline")
	}
	_ = h.services.SessionService.LogActivity(ctx, models.ActivityDisconnect, deviceName+" disconnected")

	h.broadcastClientList(ctx)
	h.broadcastDashboards(ctx, models.UIClientDisconnected, struct {
		ClientID   string `json:"clientId"`
		DeviceName string `json:"deviceName"`
	}{clientID, deviceName})
}

// broadcastToPeers sends msg to every authenticated sync connection except
// the sender. Best effort: write failures close the target connection.
func (h *Hub) broadcastToPeers(ctx context.Context, sender *connection, msg models.Message) {
	for _, c := range h.authenticatedConns() {
		if c == sender {
			continue
		}
		if err := c.send(ctx, msg); err != nil {
			c.close(websocket.StatusAbnormalClosure, "write failed")
		}
	}
}

// broadcastClientList pushes the refreshed device list to every
// authenticated connection, sender included.
func (h *Hub) broadcastClientList(ctx context.Context) {
	sessions, err := h.services.SessionService.ListSessions(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*Hub.broadcastClientList").Msg("error listing sessions")
		return
	}

	msg := models.NewClientList(sessions)
	for _, c := range h.authenticatedConns() {
		if err := c.send(ctx, msg); err != nil {
			c.close(websocket.StatusAbnormalClosure, "write failed")
		}
	}
}

// broadcastDashboards fans one UI event out to all dashboard subscribers,
// pruning subscribers whose socket write fails.
func (h *Hub) broadcastDashboards(ctx context.Context, event models.UIEventName, data any) {
	frame, err := json.Marshal(models.NewUIEvent(event, data))
	if err != nil {
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.dashboards))
	for conn := range h.dashboards {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		wctx, cancel := context.WithTimeout(ctx, writeTimeout)
		err := conn.Write(wctx, websocket.MessageText, frame)
		cancel()

		if err != nil {
			h.mu.Lock()
			delete(h.dashboards, conn)
			h.mu.Unlock()
			_ = conn.Close(websocket.StatusAbnormalClosure, "write failed")
		}
	}
}

// broadcastStatus pushes a fresh status snapshot to dashboard subscribers.
func (h *Hub) broadcastStatus(ctx context.Context) {
	status, err := h.Status(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*Hub.broadcastStatus").Msg("error assembling status")
		return
	}

	h.broadcastDashboards(ctx, models.UIStatus, status)
}

func (h *Hub) sendDashboardSnapshot(ctx context.Context, conn *websocket.Conn) {
	log := logger.FromContext(ctx)

	status, err := h.Status(ctx)
	if err != nil {
		log.Err(err).Str("func", "*Hub.sendDashboardSnapshot").Msg("error assembling status")
		return
	}

	sessions, err := h.services.SessionService.ListSessions(ctx)
	if err != nil {
		log.Err(err).Str("func", "*Hub.sendDashboardSnapshot").Msg("error listing sessions")
		return
	}

	activity, err := h.services.SessionService.RecentActivity(ctx, recentActivityLimit)
	if err != nil {
		log.Err(err).Str("func", "*Hub.sendDashboardSnapshot").Msg("error loading activity")
		return
	}

	frames := []models.Message{
		models.NewUIEvent(models.UIStatus, snapshot{Status: status, Clients: sessions, Activity: activity}),
	}
	if theme := h.Theme(); theme != nil {
		frames = append(frames, models.NewUIEvent(models.UITheme, theme))
	}

	for _, msg := range frames {
		frame, err := json.Marshal(msg)
		if err != nil {
			continue
		}

		wctx, cancel := context.WithTimeout(ctx, writeTimeout)
		err = conn.Write(wctx, websocket.MessageText, frame)
		cancel()
		if err != nil {
			return
		}
	}
}

// authenticatedConns snapshots the registry so sends happen outside the lock.
func (h *Hub) authenticatedConns() []*connection {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns := make([]*connection, 0, len(h.syncClients))
	for c := range h.syncClients {
		if c.isAuthenticated() {
			conns = append(conns, c)
		}
	}

	return conns
}

// connsForClient returns the live connections owned by clientID.
func (h *Hub) connsForClient(clientID string) []*connection {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var conns []*connection
	for c := range h.syncClients {
		if id, _, authenticated := c.identity(); authenticated && id == clientID {
			conns = append(conns, c)
		}
	}

	return conns
}

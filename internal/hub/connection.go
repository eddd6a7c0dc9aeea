// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/MKhiriev/vault-relay/internal/logger"
	"github.com/MKhiriev/vault-relay/internal/service"
	"github.com/MKhiriev/vault-relay/internal/store"
	"github.com/MKhiriev/vault-relay/models"
)

// pendingUploadMaxAge bounds how long an upload header may wait for its
// binary frame. The next header always replaces a pending one; this timeout
// additionally lets the heartbeat tick discard a header whose uploader
// stalled without sending anything else.
const pendingUploadMaxAge = 60 * time.Second

// pendingUpload is the header half of an in-flight upload awaiting its
// binary frame. At most one exists per connection.
type pendingUpload struct {
	header     models.FileUploadMessage
	receivedAt time.Time
}

// connection is the runtime state of one live sync socket. It exists in two
// states, unauthenticated and authenticated; the client fields are only
// meaningful in the latter. Destroyed on disconnect, never persisted.
type connection struct {
	hub  *Hub
	conn *websocket.Conn

	// writeMu serializes frame writes; a download's header and blob frames
	// must not interleave with broadcasts.
	writeMu sync.Mutex

	mu            sync.Mutex
	authenticated bool
	clientID      string
	deviceName    string
	ip            string
	connectedAt   time.Time
	lastActivity  time.Time
	pending       *pendingUpload

	logger *logger.Logger
}

func newConnection(h *Hub, conn *websocket.Conn, ip string, logger *logger.Logger) *connection {
	now := time.Now()

	return &connection{
		hub:          h,
		conn:         conn,
		ip:           ip,
		connectedAt:  now,
		lastActivity: now,
		logger:       logger,
	}
}

// run processes frames until the socket closes. It is the single dispatch
// context for this connection: all state transitions happen here or under
// the connection mutex.
func (c *connection) run(ctx context.Context) {
	defer c.hub.dropConnection(c)

	authTimer := time.AfterFunc(c.hub.cfg.AuthTimeout, func() {
		if !c.isAuthenticated() {
			c.close(StatusAuthTimeout, "authentication timeout")
		}
	})
	defer authTimer.Stop()

	for {
		kind, data, err := c.conn.Read(ctx)
		if err != nil {
			return
		}
		c.touch()

		switch kind {
		case websocket.MessageText:
			if fatal := c.handleText(ctx, data); fatal {
				return
			}
		case websocket.MessageBinary:
			c.handleBinary(ctx, data)
		}
	}
}

// handleText decodes and dispatches one text frame. The switch is
// exhaustive over the closed message set; server-to-client frame types
// arriving from a client are protocol violations.
func (c *connection) handleText(ctx context.Context, data []byte) (fatal bool) {
	log := logger.FromContext(ctx)

	msg, err := models.DecodeMessage(data)
	if err != nil {
		log.Warn().Err(err).Msg("malformed frame")
		c.close(StatusInvalidMessage, "malformed message")
		return true
	}

	if !c.isAuthenticated() && msg.Kind() != models.MessageAuth {
		c.close(StatusNotAuthenticated, "authenticate first")
		return true
	}

	switch m := msg.(type) {
	case models.AuthMessage:
		return c.handleAuth(ctx, m)
	case models.SyncRequestMessage:
		c.handleSyncRequest(ctx, m)
	case models.FileUploadMessage:
		c.handleUploadHeader(m)
	case models.FileDownloadMessage:
		c.handleDownload(ctx, m)
	case models.FileDeleteMessage:
		c.handleDelete(ctx, m)
	case models.ClientKickMessage:
		c.handleKick(ctx, m)
	case models.PingMessage:
		c.reply(ctx, models.NewPong(m.Timestamp))
	case models.PongMessage:
		// answer to a server-initiated heartbeat; activity already touched
	case models.AuthOKMessage, models.AuthFailMessage, models.SyncResponseMessage,
		models.FileUploadAckMessage, models.FileDownloadResponseMessage,
		models.FileChangedMessage, models.FileRemovedMessage,
		models.ClientListMessage, models.UIEventMessage:
		// server-to-client frames are never valid from a client
		c.close(StatusInvalidMessage, "unexpected message direction")
		return true
	}

	return false
}

// handleAuth runs the authenticator. Wrong-password and rate-limited
// failures leave the connection open for a retry; version mismatch, revoked
// session, and an uninitialized server are fatal.
func (c *connection) handleAuth(ctx context.Context, msg models.AuthMessage) (fatal bool) {
	log := logger.FromContext(ctx)

	if c.isAuthenticated() {
		c.close(StatusInvalidMessage, "already authenticated")
		return true
	}

	if msg.ProtocolVersion != models.ProtocolVersion {
		log.Warn().Int("version", msg.ProtocolVersion).Str("ip", c.ip).Msg("protocol version mismatch")
		c.reply(ctx, models.NewAuthFail(models.ReasonVersionMismatch))
		c.close(StatusVersionMismatch, fmt.Sprintf("protocol version %d required", models.ProtocolVersion))
		return true
	}

	var token models.AuthToken
	if msg.AuthToken != "" {
		found, err := c.hub.services.AuthService.ValidateToken(ctx, msg.AuthToken)
		if err != nil {
			log.Warn().Err(err).Str("ip", c.ip).Msg("token authentication failed")
			c.reply(ctx, models.NewAuthFail(models.ReasonSessionRevoked))
			c.close(StatusSessionRevoked, "session revoked")
			return true
		}
		token = found
	} else {
		if err := c.hub.services.AuthService.VerifyPassword(ctx, msg.PasswordHash, c.ip); err != nil {
			return c.failPasswordAuth(ctx, err)
		}

		issued, err := c.hub.services.AuthService.IssueToken(ctx, msg.ClientID, msg.DeviceName, c.ip)
		if err != nil {
			log.Err(err).Str("func", "*connection.handleAuth").Msg("error issuing token")
			c.close(websocket.StatusInternalError, "token issue failed")
			return true
		}
		token = issued
	}

	clientID := token.ClientID
	deviceName := msg.DeviceName
	if deviceName == "" {
		deviceName = token.DeviceName
	}

	c.mu.Lock()
	c.authenticated = true
	c.clientID = clientID
	c.deviceName = deviceName
	c.mu.Unlock()

	session := models.ClientSession{
		ClientID:   clientID,
		DeviceName: deviceName,
		IP:         c.ip,
		LastSeen:   time.Now(),
		IsOnline:   true,
	}
	if err := c.hub.services.SessionService.TouchSession(ctx, session); err != nil {
		log.Err(err).Str("func", "*connection.handleAuth").Str("clientId", clientID).Msg("error persisting session")
	}

	salt, err := c.hub.services.AuthService.VaultSalt()
	if err != nil {
		log.Err(err).Str("func", "*connection.handleAuth").Msg("error generating vault salt")
		c.close(websocket.StatusInternalError, "salt generation failed")
		return true
	}

	c.reply(ctx, models.NewAuthOK(c.hub.serverID, salt, token.Token))

	log.Info().Str("clientId", clientID).Str("device", deviceName).Str("ip", c.ip).Msg("client authenticated")
	_ = c.hub.services.SessionService.LogActivity(ctx, models.ActivityConnect, deviceName+" connected")

	c.hub.broadcastClientList(ctx)
	c.hub.broadcastDashboards(ctx, models.UIClientConnected, session)

	return false
}

func (c *connection) failPasswordAuth(ctx context.Context, err error) (fatal bool) {
	switch {
	case errors.Is(err, service.ErrServerNotInitialized):
		c.reply(ctx, models.NewAuthFail(models.ReasonServerNotInitialized))
		c.close(websocket.StatusPolicyViolation, "server not initialized")
		return true
	case errors.Is(err, service.ErrRateLimited):
		c.reply(ctx, models.NewAuthFail(models.ReasonRateLimited))
	case errors.Is(err, service.ErrWrongPassword):
		c.reply(ctx, models.NewAuthFail(models.ReasonWrongPassword))
	default:
		logger.FromContext(ctx).Err(err).Str("func", "*connection.failPasswordAuth").Msg("error verifying password")
		c.close(websocket.StatusInternalError, "authentication failed")
		return true
	}

	// retryable failure, connection stays open
	return false
}

// handleSyncRequest is the reconciliation primitive: lastSequence zero gets
// the full manifest, anything else gets the incremental change list.
func (c *connection) handleSyncRequest(ctx context.Context, msg models.SyncRequestMessage) {
	log := logger.FromContext(ctx)

	if msg.LastSequence == 0 {
		manifest, err := c.hub.services.ChangeService.Manifest(ctx)
		if err != nil {
			log.Err(err).Str("func", "*connection.handleSyncRequest").Msg("error loading manifest")
			return
		}
		c.reply(ctx, models.NewSyncResponse(manifest.Entries, manifest.Sequence, true))
		return
	}

	// Read the watermark before the change list. A mutation that commits
	// between the two reads then shows up in the entries instead of being
	// counted in the watermark; a stale watermark only costs the client a
	// redundant fetch, a watermark above the entries would hide the change
	// from it forever.
	sequence, err := c.hub.services.ChangeService.CurrentSequence(ctx)
	if err != nil {
		log.Err(err).Str("func", "*connection.handleSyncRequest").Msg("error loading current sequence")
		return
	}

	changes, err := c.hub.services.ChangeService.ChangesSince(ctx, msg.LastSequence)
	if err != nil {
		log.Err(err).Str("func", "*connection.handleSyncRequest").Int64("since", msg.LastSequence).Msg("error loading changes")
		return
	}

	c.reply(ctx, models.NewSyncResponse(changes, sequence, false))
}

// handleUploadHeader stores the header until its binary frame arrives.
// Last header wins: a new header silently replaces an unconsumed one.
func (c *connection) handleUploadHeader(msg models.FileUploadMessage) {
	c.mu.Lock()
	c.pending = &pendingUpload{header: msg, receivedAt: time.Now()}
	c.mu.Unlock()
}

// handleBinary commits a pending upload. A binary frame with no pending
// header is ignored.
func (c *connection) handleBinary(ctx context.Context, blob []byte) {
	log := logger.FromContext(ctx)

	c.mu.Lock()
	pending := c.pending
	c.pending = nil
	clientID := c.clientID
	deviceName := c.deviceName
	authenticated := c.authenticated
	c.mu.Unlock()

	if !authenticated || pending == nil {
		return
	}

	header := pending.header
	record := models.FileRecord{
		FileID:        header.FileID,
		EncryptedMeta: header.EncryptedMeta,
		MTime:         header.MTime,
		Size:          header.Size,
	}

	result, err := c.hub.services.ChangeService.Upload(ctx, record, blob)
	if err != nil {
		log.Err(err).Str("func", "*connection.handleBinary").Str("fileId", header.FileID).Msg("error committing upload")
		return
	}
	record.Sequence = result.Sequence

	c.reply(ctx, models.NewFileUploadAck(header.FileID, result.Sequence))
	c.hub.broadcastToPeers(ctx, c, models.NewFileChanged(record, clientID))

	activityType := models.ActivityUpload
	verb := "updated"
	if result.IsNew {
		activityType = models.ActivityCreate
		verb = "added"
	}
	_ = c.hub.services.SessionService.LogActivity(ctx, activityType, fmt.Sprintf("%s %s %s", deviceName, verb, header.FileID))

	c.hub.broadcastDashboards(ctx, models.UIFileChanged, struct {
		FileID         string `json:"fileId"`
		Size           int64  `json:"size"`
		Sequence       int64  `json:"sequence"`
		SourceClientID string `json:"sourceClientId"`
	}{header.FileID, header.Size, result.Sequence, clientID})
}

// handleDownload answers with a metadata frame immediately followed by the
// blob frame. Absence of either row or blob is a silent no-op: the client
// recovers by falling back to a full sync.
func (c *connection) handleDownload(ctx context.Context, msg models.FileDownloadMessage) {
	log := logger.FromContext(ctx)

	record, blob, err := c.hub.services.ChangeService.Download(ctx, msg.FileID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Err(err).Str("func", "*connection.handleDownload").Str("fileId", msg.FileID).Msg("error loading file")
		}
		return
	}

	header := models.NewFileDownloadResponse(record, int64(len(blob)))
	if err := c.sendWithBlob(ctx, header, blob); err != nil {
		log.Warn().Err(err).Str("fileId", msg.FileID).Msg("download write failed")
	}
}

// handleDelete tombstones the record, acks the sender, and fans the removal
// out to the other clients. Deleting an unknown identifier is a no-op.
func (c *connection) handleDelete(ctx context.Context, msg models.FileDeleteMessage) {
	log := logger.FromContext(ctx)

	clientID, deviceName, _ := c.identity()

	sequence, err := c.hub.services.ChangeService.Delete(ctx, msg.FileID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Err(err).Str("func", "*connection.handleDelete").Str("fileId", msg.FileID).Msg("error deleting file")
		}
		return
	}

	c.reply(ctx, models.NewFileUploadAck(msg.FileID, sequence))
	c.hub.broadcastToPeers(ctx, c, models.NewFileRemoved(msg.FileID, sequence, clientID))

	_ = c.hub.services.SessionService.LogActivity(ctx, models.ActivityRemove, fmt.Sprintf("%s removed %s", deviceName, msg.FileID))
	c.hub.broadcastDashboards(ctx, models.UIFileRemoved, struct {
		FileID         string `json:"fileId"`
		Sequence       int64  `json:"sequence"`
		SourceClientID string `json:"sourceClientId"`
	}{msg.FileID, sequence, clientID})
}

// handleKick revokes the target's token, deletes its session row, and closes
// its live connections, then pushes the refreshed client list to everyone.
func (c *connection) handleKick(ctx context.Context, msg models.ClientKickMessage) {
	log := logger.FromContext(ctx)

	_, deviceName, _ := c.identity()

	if err := c.hub.services.AuthService.RevokeClient(ctx, msg.TargetClientID); err != nil {
		log.Err(err).Str("func", "*connection.handleKick").Str("targetId", msg.TargetClientID).Msg("error revoking client")
		return
	}
	if err := c.hub.services.SessionService.RemoveSession(ctx, msg.TargetClientID); err != nil {
		log.Err(err).Str("func", "*connection.handleKick").Str("targetId", msg.TargetClientID).Msg("error removing session")
	}

	for _, target := range c.hub.connsForClient(msg.TargetClientID) {
		target.close(StatusSessionRevoked, "kicked by another device")
	}

	log.Info().Str("targetId", msg.TargetClientID).Msg("client kicked")
	_ = c.hub.services.SessionService.LogActivity(ctx, models.ActivityKick, fmt.Sprintf("%s revoked device %s", deviceName, msg.TargetClientID))

	c.hub.broadcastClientList(ctx)
}

// send marshals msg and writes one text frame under the write mutex.
func (c *connection) send(ctx context.Context, msg models.Message) error {
	frame, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("error marshalling %s frame: %w", msg.Kind(), err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	return c.conn.Write(wctx, websocket.MessageText, frame)
}

// sendWithBlob writes a header frame and its binary frame back to back,
// holding the write mutex across both so no broadcast lands between them.
func (c *connection) sendWithBlob(ctx context.Context, header models.Message, blob []byte) error {
	frame, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("error marshalling %s frame: %w", header.Kind(), err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := c.conn.Write(wctx, websocket.MessageText, frame); err != nil {
		return err
	}

	return c.conn.Write(wctx, websocket.MessageBinary, blob)
}

// reply is send with the error logged instead of returned; the read loop
// notices a dead socket on its next Read.
func (c *connection) reply(ctx context.Context, msg models.Message) {
	if err := c.send(ctx, msg); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("type", string(msg.Kind())).Msg("reply write failed")
	}
}

func (c *connection) close(code websocket.StatusCode, reason string) {
	_ = c.conn.Close(code, reason)
}

func (c *connection) isAuthenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.authenticated
}

func (c *connection) identity() (clientID, deviceName string, authenticated bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.clientID, c.deviceName, c.authenticated
}

func (c *connection) touch() {
	c.mu.Lock()
	c.lastActivity = time.Now()
	c.mu.Unlock()
}

// discardStalePending drops a pending upload header that has waited longer
// than maxAge for its binary frame.
func (c *connection) discardStalePending(maxAge time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil && time.Since(c.pending.receivedAt) > maxAge {
		c.pending = nil
	}
}

// remoteIP extracts the peer address without the port.
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

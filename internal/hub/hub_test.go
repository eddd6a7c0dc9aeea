// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package hub

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/vault-relay/internal/config"
	"github.com/MKhiriev/vault-relay/internal/logger"
	"github.com/MKhiriev/vault-relay/internal/service"
	"github.com/MKhiriev/vault-relay/internal/store"
	"github.com/MKhiriev/vault-relay/models"
)

const (
	testPasswordHash   = "correct-hash"
	testDashboardToken = "dash-token"
)

// ─────────────────────────────────────────────
// In-memory stores backing the protocol tests
// ─────────────────────────────────────────────

type memChangeRepo struct {
	mu      sync.Mutex
	records map[string]models.FileRecord
	seq     int64
}

func newMemChangeRepo() *memChangeRepo {
	return &memChangeRepo{records: make(map[string]models.FileRecord)}
}

func (r *memChangeRepo) CurrentSequence(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq, nil
}

func (r *memChangeRepo) Manifest(_ context.Context) (models.Manifest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	manifest := models.Manifest{Sequence: r.seq}
	for _, record := range r.records {
		if !record.Deleted {
			manifest.Entries = append(manifest.Entries, record)
		}
	}
	sort.Slice(manifest.Entries, func(i, j int) bool {
		return manifest.Entries[i].Sequence < manifest.Entries[j].Sequence
	})
	return manifest, nil
}

func (r *memChangeRepo) ChangesSince(_ context.Context, seq int64) ([]models.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var changes []models.FileRecord
	for _, record := range r.records {
		if record.Sequence > seq {
			changes = append(changes, record)
		}
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Sequence < changes[j].Sequence })
	return changes, nil
}

func (r *memChangeRepo) Get(_ context.Context, fileID string) (models.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[fileID]
	if !ok {
		return models.FileRecord{}, store.ErrNotFound
	}
	return record, nil
}

func (r *memChangeRepo) Put(_ context.Context, record models.FileRecord) (models.PutResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, exists := r.records[record.FileID]
	r.seq++
	record.Deleted = false
	record.Sequence = r.seq
	r.records[record.FileID] = record

	return models.PutResult{Sequence: r.seq, IsNew: !exists || previous.Deleted}, nil
}

func (r *memChangeRepo) Tombstone(_ context.Context, fileID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[fileID]
	if !ok {
		return 0, store.ErrNotFound
	}
	r.seq++
	record.Deleted = true
	record.Sequence = r.seq
	r.records[fileID] = record
	return r.seq, nil
}

func (r *memChangeRepo) CountFiles(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, record := range r.records {
		if !record.Deleted {
			n++
		}
	}
	return n, nil
}

func (r *memChangeRepo) Reset(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = make(map[string]models.FileRecord)
	r.seq = 0
	return nil
}

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]models.ClientSession
	tokens   map[string]models.AuthToken
	activity []models.ActivityLogEntry
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{
		sessions: make(map[string]models.ClientSession),
		tokens:   make(map[string]models.AuthToken),
	}
}

func (r *memSessionRepo) UpsertSession(_ context.Context, session models.ClientSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.sessions[session.ClientID]; ok {
		session.FirstSeen = existing.FirstSeen
	}
	r.sessions[session.ClientID] = session
	return nil
}

func (r *memSessionRepo) SetOnline(_ context.Context, clientID string, online bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[clientID]; ok {
		session.IsOnline = online
		r.sessions[clientID] = session
	}
	return nil
}

func (r *memSessionRepo) SetAllOffline(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, session := range r.sessions {
		session.IsOnline = false
		r.sessions[id] = session
	}
	return nil
}

func (r *memSessionRepo) DeleteSession(_ context.Context, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, clientID)
	return nil
}

func (r *memSessionRepo) ListSessions(_ context.Context) ([]models.ClientSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions := make([]models.ClientSession, 0, len(r.sessions))
	for _, session := range r.sessions {
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ClientID < sessions[j].ClientID })
	return sessions, nil
}

func (r *memSessionRepo) SaveToken(_ context.Context, token models.AuthToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for value, existing := range r.tokens {
		if existing.ClientID == token.ClientID {
			delete(r.tokens, value)
		}
	}
	r.tokens[token.Token] = token
	return nil
}

func (r *memSessionRepo) FindToken(_ context.Context, token string) (models.AuthToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	found, ok := r.tokens[token]
	if !ok {
		return models.AuthToken{}, store.ErrNotFound
	}
	return found, nil
}

func (r *memSessionRepo) RevokeTokens(_ context.Context, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for value, token := range r.tokens {
		if token.ClientID == clientID {
			delete(r.tokens, value)
		}
	}
	return nil
}

func (r *memSessionRepo) AppendActivity(_ context.Context, entry models.ActivityLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.activity = append(r.activity, entry)
	return nil
}

func (r *memSessionRepo) RecentActivity(_ context.Context, limit int) ([]models.ActivityLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]models.ActivityLogEntry, len(r.activity))
	copy(entries, r.activity)
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (r *memSessionRepo) ResetActivity(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.activity = nil
	return nil
}

type memBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{blobs: make(map[string][]byte)}
}

func (s *memBlobStore) Write(_ context.Context, fileID string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[fileID] = append([]byte(nil), data...)
	return nil
}

func (s *memBlobStore) Read(_ context.Context, fileID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, ok := s.blobs[fileID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return blob, nil
}

func (s *memBlobStore) Delete(_ context.Context, fileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.blobs, fileID)
	return nil
}

func (s *memBlobStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs = make(map[string][]byte)
	return nil
}

// ─────────────────────────────────────────────
// Test relay and websocket helpers
// ─────────────────────────────────────────────

type testRelay struct {
	server   *httptest.Server
	hub      *Hub
	services *service.Services
}

func newTestRelay(t *testing.T) *testRelay {
	return newTestRelayWithServices(t, nil)
}

// newTestRelayWithServices lets a test swap service implementations before
// the hub starts, so no goroutine ever observes the replacement happening.
func newTestRelayWithServices(t *testing.T, wrap func(*service.Services)) *testRelay {
	t.Helper()

	log := logger.Nop()
	services := &service.Services{}

	sessionRepo := newMemSessionRepo()
	services.AuthService = service.NewAuthService(sessionRepo, config.Auth{
		PasswordHash:    testPasswordHash,
		DashboardToken:  testDashboardToken,
		RateLimitMax:    5,
		RateLimitWindow: time.Minute,
	}, log)
	services.SessionService = service.NewSessionService(sessionRepo, log)
	services.ChangeService = service.NewChangeService(newMemChangeRepo(), newMemBlobStore(), log)

	if wrap != nil {
		wrap(services)
	}

	h := NewHub(services, config.Server{
		AuthTimeout:       2 * time.Second,
		HeartbeatInterval: time.Minute,
	}, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/sync", h.HandleSync)
	mux.HandleFunc("/ui", h.HandleDashboard)

	ts := httptest.NewServer(mux)
	t.Cleanup(func() {
		h.Shutdown()
		ts.Close()
	})

	return &testRelay{server: ts, hub: h, services: services}
}

func (tr *testRelay) wsURL(path string) string {
	return "ws" + strings.TrimPrefix(tr.server.URL, "http") + path
}

func dialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	conn.SetReadLimit(models.MaxMessageBytes)
	t.Cleanup(func() { _ = conn.Close(websocket.StatusNormalClosure, "") })

	return conn
}

func sendJSON(t *testing.T, conn *websocket.Conn, msg models.Message) {
	t.Helper()

	frame, err := json.Marshal(msg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, conn.Write(ctx, websocket.MessageText, frame))
}

func sendBinary(t *testing.T, conn *websocket.Conn, blob []byte) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, conn.Write(ctx, websocket.MessageBinary, blob))
}

// expectMessage reads frames until one decodes to T, skipping interleaved
// broadcasts such as CLIENT_LIST.
func expectMessage[T models.Message](t *testing.T, conn *websocket.Conn) T {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for {
		ctx, cancel := context.WithDeadline(context.Background(), deadline)
		kind, data, err := conn.Read(ctx)
		cancel()
		require.NoError(t, err, "connection closed while waiting for message")

		if kind != websocket.MessageText {
			continue
		}

		msg, err := models.DecodeMessage(data)
		require.NoError(t, err)

		if typed, ok := msg.(T); ok {
			return typed
		}
	}
}

// expectBinary reads until a binary frame arrives.
func expectBinary(t *testing.T, conn *websocket.Conn) []byte {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for {
		ctx, cancel := context.WithDeadline(context.Background(), deadline)
		kind, data, err := conn.Read(ctx)
		cancel()
		require.NoError(t, err)

		if kind == websocket.MessageBinary {
			return data
		}
	}
}

// expectSilence asserts no frame arrives within the grace period, draining
// any CLIENT_LIST broadcasts (such as the one that deterministically follows
// AUTH_OK) before asserting quiet.
func expectSilence(t *testing.T, conn *websocket.Conn) {
	t.Helper()

	for {
		ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
		kind, data, err := conn.Read(ctx)
		cancel()
		if err != nil {
			return
		}

		if kind == websocket.MessageText {
			if msg, decodeErr := models.DecodeMessage(data); decodeErr == nil {
				if _, ok := msg.(models.ClientListMessage); ok {
					continue
				}
			}
		}

		require.Fail(t, "expected no frame", "got: %s", data)
	}
}

// expectClosed asserts the connection is closed with the given status code.
func expectClosed(t *testing.T, conn *websocket.Conn, code websocket.StatusCode) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for {
		ctx, cancel := context.WithDeadline(context.Background(), deadline)
		_, _, err := conn.Read(ctx)
		cancel()
		if err == nil {
			continue
		}
		require.Equal(t, code, websocket.CloseStatus(err), "unexpected close: %v", err)
		return
	}
}

func newAuthMessage(clientID, deviceName string) models.AuthMessage {
	return models.AuthMessage{
		Envelope:        models.Envelope{Type: models.MessageAuth},
		ClientID:        clientID,
		DeviceName:      deviceName,
		PasswordHash:    testPasswordHash,
		ProtocolVersion: models.ProtocolVersion,
	}
}

// authenticate performs the password AUTH handshake and returns AUTH_OK.
func authenticate(t *testing.T, conn *websocket.Conn, clientID, deviceName string) models.AuthOKMessage {
	t.Helper()

	sendJSON(t, conn, newAuthMessage(clientID, deviceName))
	return expectMessage[models.AuthOKMessage](t, conn)
}

func uploadFile(t *testing.T, conn *websocket.Conn, fileID, meta string, mtime, size int64, blob []byte) models.FileUploadAckMessage {
	t.Helper()

	sendJSON(t, conn, models.FileUploadMessage{
		Envelope:      models.Envelope{Type: models.MessageFileUpload},
		FileID:        fileID,
		EncryptedMeta: meta,
		MTime:         mtime,
		Size:          size,
	})
	sendBinary(t, conn, blob)
	return expectMessage[models.FileUploadAckMessage](t, conn)
}

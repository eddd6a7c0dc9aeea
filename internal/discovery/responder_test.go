// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package discovery

import (
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/vault-relay/internal/config"
	"github.com/MKhiriev/vault-relay/internal/logger"
)

func startResponder(t *testing.T, serverID string, port int) net.Addr {
	t.Helper()

	r := NewResponder(config.Discovery{Address: "127.0.0.1:0"}, serverID, port, logger.Nop()).(*responder)

	conn, err := r.listen()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	go r.serve(conn)

	return conn.LocalAddr()
}

func probe(t *testing.T, addr net.Addr, payload string) ([]byte, error) {
	t.Helper()

	conn, err := net.Dial("udp", addr.String())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte(payload))
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(300*time.Millisecond)))

	buf := make([]byte, 512)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

func TestResponder_AnswersProbe(t *testing.T) {
	addr := startResponder(t, "server-123", 8080)

	answer, err := probe(t, addr, probePayload)
	require.NoError(t, err)

	var r reply
	require.NoError(t, json.Unmarshal(answer, &r))
	assert.Equal(t, "server-123", r.ServerID)
	assert.Equal(t, 8080, r.Port)
}

func TestResponder_IgnoresOtherDatagrams(t *testing.T) {
	addr := startResponder(t, "server-123", 8080)

	_, err := probe(t, addr, "NOT_A_PROBE")
	assert.Error(t, err, "non-probe datagrams must get no answer")
}

func TestResponder_AnswersEveryProbe(t *testing.T) {
	addr := startResponder(t, "server-123", 8080)

	for i := 0; i < 3; i++ {
		_, err := probe(t, addr, probePayload)
		require.NoError(t, err)
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package hub

import "github.com/coder/websocket"

// Application close codes, carried in the close frame (RFC 6455 private-use
// range). Clients distinguish retryable conditions from fatal ones by code.
const (
	// StatusAuthTimeout closes connections that never sent AUTH.
	StatusAuthTimeout websocket.StatusCode = 4001

	// StatusInvalidMessage closes connections after a malformed frame or a
	// message that is not valid in the current state.
	StatusInvalidMessage websocket.StatusCode = 4002

	// StatusNotAuthenticated closes connections that sent a protocol message
	// before authenticating.
	StatusNotAuthenticated websocket.StatusCode = 4003

	// StatusVersionMismatch closes connections presenting a protocol version
	// other than models.ProtocolVersion.
	StatusVersionMismatch websocket.StatusCode = 4004

	// StatusSessionRevoked closes connections whose session was kicked or
	// whose token was revoked.
	StatusSessionRevoked websocket.StatusCode = 4005

	// StatusServerReset closes every live connection while a server-wide
	// reset is in progress.
	StatusServerReset websocket.StatusCode = 4006
)

// Package http implements the HTTP transport layer of the relay.
//
// It exposes route wiring, the WebSocket upgrade endpoints for sync clients
// and dashboard subscribers, and the small JSON side-channel used by the
// operator CLI. Cross-cutting concerns such as request tracing, access
// logging, and dashboard-token authorization are handled in this package
// before requests are delegated to the hub.
package http

// Package server wires and runs the relay's HTTP transport.
//
// It provides orchestration for the server lifecycle, including startup,
// signal handling, and graceful shutdown of live WebSocket connections via
// the hub.
package server

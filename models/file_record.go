// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package models defines the shared data structures of the vault relay:
// change-log records, client sessions, and the WebSocket wire protocol.
//
// The server is content-oblivious: EncryptedMeta and blob payloads are opaque
// client-encrypted values that are stored, ordered, and forwarded verbatim.
package models

// FileRecord is one row of the relay change log.
//
// FileID is an opaque, client-chosen identifier assumed unique per vault.
// Every mutation (create, update, delete) assigns the record a fresh Sequence
// from the global monotonic counter; sequence numbers are never reused or
// decremented. Deletions keep the row as a tombstone (Deleted=true) so that
// incremental sync can inform peers of removals.
type FileRecord struct {
	// FileID identifies the file across all connected clients.
	FileID string `json:"fileId"`

	// EncryptedMeta is the client-encrypted filename/path/attribute blob,
	// typically base64. Never inspected by the server.
	EncryptedMeta string `json:"encryptedMeta"`

	// MTime is the modification timestamp reported by the producing client.
	MTime int64 `json:"mtime"`

	// Size is the plaintext size in bytes. Used by UIs only; the encrypted
	// blob on disk may be larger.
	Size int64 `json:"size"`

	// Deleted marks the record as a tombstone.
	Deleted bool `json:"deleted"`

	// Sequence is the global change-log position of this mutation.
	Sequence int64 `json:"sequence"`
}

// Manifest is the full set of currently non-deleted file records plus the
// sequence number they are consistent with. Returned to clients performing a
// full synchronization (lastSequence == 0).
type Manifest struct {
	Entries  []FileRecord `json:"entries"`
	Sequence int64        `json:"sequence"`
}

// PutResult reports the outcome of a change-log mutation.
//
// IsNew is true when the file identifier had no row before, or its row was a
// tombstone. It disambiguates "create" from "update" for logging and the
// dashboard only; the wire protocol treats both identically.
type PutResult struct {
	Sequence int64
	IsNew    bool
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ProtocolVersion is the wire protocol revision. Clients must present an
// exactly matching version in AUTH; a mismatch is fatal to the connection.
const ProtocolVersion = 1

// MaxMessageBytes is the ceiling for a single WebSocket frame. It is sized
// for large encrypted files; compression is disabled because the payloads
// are encrypted and therefore incompressible.
const MaxMessageBytes = 512 << 20 // 512 MiB

// MessageType discriminates protocol frames. The set is closed: DecodeMessage
// rejects anything not listed here, and the hub dispatch switch covers every
// member so new kinds cannot be silently dropped.
type MessageType string

// Protocol message types.
const (
	MessageAuth                 MessageType = "AUTH"
	MessageAuthOK               MessageType = "AUTH_OK"
	MessageAuthFail             MessageType = "AUTH_FAIL"
	MessageSyncRequest          MessageType = "SYNC_REQUEST"
	MessageSyncResponse         MessageType = "SYNC_RESPONSE"
	MessageFileUpload           MessageType = "FILE_UPLOAD"
	MessageFileUploadAck        MessageType = "FILE_UPLOAD_ACK"
	MessageFileDownload         MessageType = "FILE_DOWNLOAD"
	MessageFileDownloadResponse MessageType = "FILE_DOWNLOAD_RESPONSE"
	MessageFileChanged          MessageType = "FILE_CHANGED"
	MessageFileRemoved          MessageType = "FILE_REMOVED"
	MessageFileDelete           MessageType = "FILE_DELETE"
	MessagePing                 MessageType = "PING"
	MessagePong                 MessageType = "PONG"
	MessageClientList           MessageType = "CLIENT_LIST"
	MessageClientKick           MessageType = "CLIENT_KICK"
	MessageUIEvent              MessageType = "UI_EVENT"
)

// AuthFailReason is the typed failure reason carried by AUTH_FAIL.
type AuthFailReason string

// Authentication failure reasons. WrongPassword and RateLimited leave the
// connection open so the client may retry; the rest are fatal and are
// followed by a close frame.
const (
	ReasonWrongPassword        AuthFailReason = "wrong_password"
	ReasonRateLimited          AuthFailReason = "rate_limited"
	ReasonServerNotInitialized AuthFailReason = "server_not_initialized"
	ReasonVersionMismatch      AuthFailReason = "protocol_version_mismatch"
	ReasonSessionRevoked       AuthFailReason = "session_revoked"
)

// UIEventName identifies a dashboard stream event.
type UIEventName string

// Dashboard event names.
const (
	UIClientConnected    UIEventName = "client_connected"
	UIClientDisconnected UIEventName = "client_disconnected"
	UIFileChanged        UIEventName = "file_changed"
	UIFileRemoved        UIEventName = "file_removed"
	UIStatus             UIEventName = "status"
	UITheme              UIEventName = "theme"
)

// ErrUnknownMessageType is returned by DecodeMessage for a frame whose type
// discriminator is not part of the protocol.
var ErrUnknownMessageType = errors.New("unknown message type")

// Envelope carries the type discriminator shared by every text frame.
// Concrete messages embed it so the "type" field marshals in place.
type Envelope struct {
	Type MessageType `json:"type"`
}

// Kind returns the frame discriminator. It makes every embedding struct
// satisfy [Message].
func (e Envelope) Kind() MessageType { return e.Type }

// Message is implemented by all protocol frames via [Envelope].
type Message interface {
	Kind() MessageType
}

// AuthMessage opens a sync connection. Exactly one of PasswordHash or
// AuthToken is expected; when both are present the token path wins.
type AuthMessage struct {
	Envelope
	ClientID        string `json:"clientId"`
	DeviceName      string `json:"deviceName"`
	PasswordHash    string `json:"passwordHash,omitempty"`
	AuthToken       string `json:"authToken,omitempty"`
	ProtocolVersion int    `json:"protocolVersion"`
}

// AuthOKMessage acknowledges a successful AUTH. VaultSalt is the
// server-lifetime-stable base64 salt clients feed into key derivation;
// AuthToken replaces any previously issued token for the client.
type AuthOKMessage struct {
	Envelope
	ServerID  string `json:"serverId"`
	VaultSalt string `json:"vaultSalt"`
	AuthToken string `json:"authToken"`
}

// AuthFailMessage reports a failed AUTH attempt.
type AuthFailMessage struct {
	Envelope
	Reason AuthFailReason `json:"reason"`
}

// SyncRequestMessage asks for every change after LastSequence.
// LastSequence zero requests a full manifest instead.
type SyncRequestMessage struct {
	Envelope
	LastSequence int64 `json:"lastSequence"`
}

// SyncResponseMessage answers SYNC_REQUEST. FullSync reports whether Entries
// is a complete manifest (tombstones excluded) or an incremental change list
// (tombstones included).
type SyncResponseMessage struct {
	Envelope
	Entries         []FileRecord `json:"entries"`
	CurrentSequence int64        `json:"currentSequence"`
	FullSync        bool         `json:"fullSync"`
}

// FileUploadMessage is the header half of an upload. The encrypted blob
// follows in the next binary frame from the same connection.
type FileUploadMessage struct {
	Envelope
	FileID        string `json:"fileId"`
	EncryptedMeta string `json:"encryptedMeta"`
	MTime         int64  `json:"mtime"`
	Size          int64  `json:"size"`
}

// FileUploadAckMessage confirms a committed upload to its sender.
type FileUploadAckMessage struct {
	Envelope
	FileID   string `json:"fileId"`
	Sequence int64  `json:"sequence"`
}

// FileDownloadMessage requests a file's metadata and blob.
type FileDownloadMessage struct {
	Envelope
	FileID string `json:"fileId"`
}

// FileDownloadResponseMessage is the header half of a download; the blob
// follows in the next binary frame. EncryptedSize is the on-wire blob size,
// Size the plaintext size reported at upload time.
type FileDownloadResponseMessage struct {
	Envelope
	FileID        string `json:"fileId"`
	EncryptedMeta string `json:"encryptedMeta"`
	MTime         int64  `json:"mtime"`
	Size          int64  `json:"size"`
	EncryptedSize int64  `json:"encryptedSize"`
}

// FileChangedMessage fans a committed upload out to the other authenticated
// connections. Metadata only; peers pull the blob on demand.
type FileChangedMessage struct {
	Envelope
	FileID         string `json:"fileId"`
	EncryptedMeta  string `json:"encryptedMeta"`
	MTime          int64  `json:"mtime"`
	Size           int64  `json:"size"`
	Sequence       int64  `json:"sequence"`
	SourceClientID string `json:"sourceClientId"`
}

// FileRemovedMessage fans a deletion out to the other authenticated
// connections.
type FileRemovedMessage struct {
	Envelope
	FileID         string `json:"fileId"`
	Sequence       int64  `json:"sequence"`
	SourceClientID string `json:"sourceClientId"`
}

// FileDeleteMessage requests a tombstone for FileID.
type FileDeleteMessage struct {
	Envelope
	FileID string `json:"fileId"`
}

// PingMessage is a heartbeat probe; Timestamp is echoed back in PONG.
type PingMessage struct {
	Envelope
	Timestamp int64 `json:"timestamp"`
}

// PongMessage answers PING.
type PongMessage struct {
	Envelope
	Timestamp int64 `json:"timestamp"`
}

// ClientListMessage pushes the refreshed device list to every authenticated
// connection after a connect, disconnect, or kick.
type ClientListMessage struct {
	Envelope
	Clients []ClientSession `json:"clients"`
}

// ClientKickMessage revokes another device's session and token.
type ClientKickMessage struct {
	Envelope
	TargetClientID string `json:"targetClientId"`
}

// UIEventMessage is the dashboard-only event frame.
type UIEventMessage struct {
	Envelope
	Event UIEventName     `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// NewAuthOK builds an AUTH_OK frame.
func NewAuthOK(serverID, vaultSalt, authToken string) AuthOKMessage {
	return AuthOKMessage{
		Envelope:  Envelope{Type: MessageAuthOK},
		ServerID:  serverID,
		VaultSalt: vaultSalt,
		AuthToken: authToken,
	}
}

// NewAuthFail builds an AUTH_FAIL frame.
func NewAuthFail(reason AuthFailReason) AuthFailMessage {
	return AuthFailMessage{Envelope: Envelope{Type: MessageAuthFail}, Reason: reason}
}

// NewSyncResponse builds a SYNC_RESPONSE frame.
func NewSyncResponse(entries []FileRecord, currentSequence int64, fullSync bool) SyncResponseMessage {
	return SyncResponseMessage{
		Envelope:        Envelope{Type: MessageSyncResponse},
		Entries:         entries,
		CurrentSequence: currentSequence,
		FullSync:        fullSync,
	}
}

// NewFileUploadAck builds a FILE_UPLOAD_ACK frame.
func NewFileUploadAck(fileID string, sequence int64) FileUploadAckMessage {
	return FileUploadAckMessage{
		Envelope: Envelope{Type: MessageFileUploadAck},
		FileID:   fileID,
		Sequence: sequence,
	}
}

// NewFileDownloadResponse builds the download header frame.
func NewFileDownloadResponse(record FileRecord, encryptedSize int64) FileDownloadResponseMessage {
	return FileDownloadResponseMessage{
		Envelope:      Envelope{Type: MessageFileDownloadResponse},
		FileID:        record.FileID,
		EncryptedMeta: record.EncryptedMeta,
		MTime:         record.MTime,
		Size:          record.Size,
		EncryptedSize: encryptedSize,
	}
}

// NewFileChanged builds the upload fan-out frame.
func NewFileChanged(record FileRecord, sourceClientID string) FileChangedMessage {
	return FileChangedMessage{
		Envelope:       Envelope{Type: MessageFileChanged},
		FileID:         record.FileID,
		EncryptedMeta:  record.EncryptedMeta,
		MTime:          record.MTime,
		Size:           record.Size,
		Sequence:       record.Sequence,
		SourceClientID: sourceClientID,
	}
}

// NewFileRemoved builds the deletion fan-out frame.
func NewFileRemoved(fileID string, sequence int64, sourceClientID string) FileRemovedMessage {
	return FileRemovedMessage{
		Envelope:       Envelope{Type: MessageFileRemoved},
		FileID:         fileID,
		Sequence:       sequence,
		SourceClientID: sourceClientID,
	}
}

// NewPong builds a PONG frame echoing the probe timestamp.
func NewPong(timestamp int64) PongMessage {
	return PongMessage{Envelope: Envelope{Type: MessagePong}, Timestamp: timestamp}
}

// NewClientList builds a CLIENT_LIST frame.
func NewClientList(clients []ClientSession) ClientListMessage {
	return ClientListMessage{Envelope: Envelope{Type: MessageClientList}, Clients: clients}
}

// NewUIEvent builds a dashboard UI_EVENT frame. data is marshalled here so
// broadcast sites stay one-liners; a marshal failure degrades to an event
// without payload.
func NewUIEvent(event UIEventName, data any) UIEventMessage {
	msg := UIEventMessage{Envelope: Envelope{Type: MessageUIEvent}, Event: event}
	if data != nil {
		if raw, err := json.Marshal(data); err == nil {
			msg.Data = raw
		}
	}
	return msg
}

// DecodeMessage parses one text frame into its concrete message type.
//
// The switch below is the single decode point of the protocol: every
// [MessageType] constant has a case, and unlisted discriminators fail with
// [ErrUnknownMessageType].
func DecodeMessage(data []byte) (Message, error) {
	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("malformed message frame: %w", err)
	}

	var (
		msg Message
		err error
	)

	switch envelope.Type {
	case MessageAuth:
		msg, err = decodeAs[AuthMessage](data)
	case MessageAuthOK:
		msg, err = decodeAs[AuthOKMessage](data)
	case MessageAuthFail:
		msg, err = decodeAs[AuthFailMessage](data)
	case MessageSyncRequest:
		msg, err = decodeAs[SyncRequestMessage](data)
	case MessageSyncResponse:
		msg, err = decodeAs[SyncResponseMessage](data)
	case MessageFileUpload:
		msg, err = decodeAs[FileUploadMessage](data)
	case MessageFileUploadAck:
		msg, err = decodeAs[FileUploadAckMessage](data)
	case MessageFileDownload:
		msg, err = decodeAs[FileDownloadMessage](data)
	case MessageFileDownloadResponse:
		msg, err = decodeAs[FileDownloadResponseMessage](data)
	case MessageFileChanged:
		msg, err = decodeAs[FileChangedMessage](data)
	case MessageFileRemoved:
		msg, err = decodeAs[FileRemovedMessage](data)
	case MessageFileDelete:
		msg, err = decodeAs[FileDeleteMessage](data)
	case MessagePing:
		msg, err = decodeAs[PingMessage](data)
	case MessagePong:
		msg, err = decodeAs[PongMessage](data)
	case MessageClientList:
		msg, err = decodeAs[ClientListMessage](data)
	case MessageClientKick:
		msg, err = decodeAs[ClientKickMessage](data)
	case MessageUIEvent:
		msg, err = decodeAs[UIEventMessage](data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessageType, envelope.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("malformed %s frame: %w", envelope.Type, err)
	}

	return msg, nil
}

func decodeAs[T Message](data []byte) (Message, error) {
	var msg T
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ClientSession is the persisted bookkeeping row for one device.
//
// ClientID is opaque, generated by the client once, and stable across
// reconnects. The row is created on first successful authentication, updated
// on every reconnect, and removed when the device is kicked.
type ClientSession struct {
	ClientID   string    `json:"clientId"`
	DeviceName string    `json:"deviceName"`
	IP         string    `json:"ip"`
	FirstSeen  time.Time `json:"firstSeen"`
	LastSeen   time.Time `json:"lastSeen"`
	IsOnline   bool      `json:"isOnline"`
}

// AuthToken is a reusable authentication token letting a known device skip
// password entry on reconnect. At most one active token exists per client;
// issuing a new one revokes all previous tokens for that client.
//
// Tokens are high-entropy random values validated by exact lookup, so they
// need no rate limiting but must support instant revocation.
type AuthToken struct {
	Token      string    `json:"-"`
	ClientID   string    `json:"clientId"`
	DeviceName string    `json:"deviceName"`
	IP         string    `json:"ip"`
	CreatedAt  time.Time `json:"createdAt"`
	LastUsed   time.Time `json:"lastUsed"`
}

// ActivityType classifies an activity log entry.
type ActivityType string

// Activity log entry types.
const (
	ActivityConnect    ActivityType = "connect"
	ActivityDisconnect ActivityType = "disconnect"
	ActivityUpload     ActivityType = "upload"
	ActivityCreate     ActivityType = "create"
	ActivityRemove     ActivityType = "remove"
	ActivityKick       ActivityType = "kick"
)

// ActivityLogEntry is one append-only activity record. The log is bounded:
// the store trims it to the newest entries opportunistically on append.
type ActivityLogEntry struct {
	Type      ActivityType `json:"type"`
	Text      string       `json:"text"`
	Timestamp time.Time    `json:"timestamp"`
}

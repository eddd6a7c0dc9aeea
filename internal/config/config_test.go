// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_EarlierSourcesWin(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Server: Server{HTTPAddress: "127.0.0.1:9999"}},
		&StructuredConfig{Server: Server{HTTPAddress: "0.0.0.0:8080", AuthTimeout: 5 * time.Second}},
		defaultConfig(),
	)

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", cfg.Server.HTTPAddress, "first non-zero source wins")
	assert.Equal(t, 5*time.Second, cfg.Server.AuthTimeout, "later sources fill zero fields")
	assert.Equal(t, defaultHeartbeatInterval, cfg.Server.HeartbeatInterval, "defaults fill the rest")
	assert.Equal(t, defaultRateLimitMax, cfg.Auth.RateLimitMax)
}

func TestBuild_DefaultsAloneAreValid(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, defaultConfig())

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, defaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, defaultDSN, cfg.Storage.DB.DSN)
	assert.Equal(t, defaultBlobDir, cfg.Storage.Files.BlobDir)
	assert.Equal(t, defaultRateLimitWindow, cfg.Auth.RateLimitWindow)
	assert.Empty(t, cfg.Auth.PasswordHash, "server starts uninitialized without a configured hash")
}

func TestBuild_PropagatesSourceError(t *testing.T) {
	b := newConfigBuilder()
	b.err = os.ErrNotExist
	b.configs = append(b.configs, defaultConfig())

	_, err := b.build()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:   "defaults pass",
			mutate: func(cfg *StructuredConfig) {},
		},
		{
			name:    "missing listen address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "missing DSN",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "missing blob dir",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.Files.BlobDir = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "10.0.0.1:9090")
	t.Setenv("SERVER_AUTH_TIMEOUT", "7s")
	t.Setenv("AUTH_PASSWORD_HASH", "deadbeef")
	t.Setenv("AUTH_RATE_LIMIT_MAX", "9")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://relay@localhost/relay")
	t.Setenv("STORAGE_FILES_BLOB_DIR", "/var/lib/relay/blobs")
	t.Setenv("DISCOVERY_ADDRESS", ":18080")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "10.0.0.1:9090", cfg.Server.HTTPAddress)
	assert.Equal(t, 7*time.Second, cfg.Server.AuthTimeout)
	assert.Equal(t, "deadbeef", cfg.Auth.PasswordHash)
	assert.Equal(t, 9, cfg.Auth.RateLimitMax)
	assert.Equal(t, "postgres://relay@localhost/relay", cfg.Storage.DB.DSN)
	assert.Equal(t, "/var/lib/relay/blobs", cfg.Storage.Files.BlobDir)
	assert.Equal(t, ":18080", cfg.Discovery.Address)
}

func TestParseJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"auth": {
			"password_hash": "cafebabe",
			"dashboard_token": "dash",
			"rate_limit_max": 3,
			"rate_limit_window": "5m"
		},
		"storage": {
			"db": {"dsn": "relay.db"},
			"files": {"blob_dir": "data/blobs"}
		},
		"server": {
			"http_address": "localhost:8088",
			"auth_timeout": "12s",
			"heartbeat_interval": "45s"
		},
		"discovery": {"address": ":18080"}
	}`), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "cafebabe", cfg.Auth.PasswordHash)
	assert.Equal(t, "dash", cfg.Auth.DashboardToken)
	assert.Equal(t, 3, cfg.Auth.RateLimitMax)
	assert.Equal(t, 5*time.Minute, cfg.Auth.RateLimitWindow)
	assert.Equal(t, "relay.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "data/blobs", cfg.Storage.Files.BlobDir)
	assert.Equal(t, "localhost:8088", cfg.Server.HTTPAddress)
	assert.Equal(t, 12*time.Second, cfg.Server.AuthTimeout)
	assert.Equal(t, 45*time.Second, cfg.Server.HeartbeatInterval)
	assert.Equal(t, ":18080", cfg.Discovery.Address)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestNetAddressSet(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "localhost:8080", want: "localhost:8080"},
		{input: ":8080", want: ":8080"},
		{input: "192.168.1.10:9000", want: "192.168.1.10:9000"},
		{input: "no-port", wantErr: true},
		{input: "host:notanumber", wantErr: true},
		{input: "host:0", wantErr: true},
		{input: "999.999.0.1:8080", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, addr.String())
		})
	}
}

func TestDurationUnmarshalJSON(t *testing.T) {
	var d Duration

	require.NoError(t, d.UnmarshalJSON([]byte(`"90s"`)))
	assert.Equal(t, 90*time.Second, time.Duration(d))

	require.NoError(t, d.UnmarshalJSON([]byte(`1000000000`)))
	assert.Equal(t, time.Second, time.Duration(d))

	assert.Error(t, d.UnmarshalJSON([]byte(`"not-a-duration"`)))
}

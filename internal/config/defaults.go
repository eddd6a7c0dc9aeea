package config

import "time"

// Protocol timing and rate-limit defaults. Applied as the lowest-priority
// configuration source.
const (
	defaultHTTPAddress       = "0.0.0.0:8080"
	defaultDSN               = "vault-relay.db"
	defaultBlobDir           = "blobs"
	defaultAuthTimeout       = 10 * time.Second
	defaultHeartbeatInterval = 30 * time.Second
	defaultRateLimitMax      = 5
	defaultRateLimitWindow   = 15 * time.Minute
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Auth: Auth{
			RateLimitMax:    defaultRateLimitMax,
			RateLimitWindow: defaultRateLimitWindow,
		},
		Storage: Storage{
			DB: DB{
				DSN: defaultDSN,
			},
			Files: Files{
				BlobDir: defaultBlobDir,
			},
		},
		Server: Server{
			HTTPAddress:       defaultHTTPAddress,
			AuthTimeout:       defaultAuthTimeout,
			HeartbeatInterval: defaultHeartbeatInterval,
		},
	}
}

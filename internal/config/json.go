package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations for the optional config file.
type StructuredJSONConfig struct {
	Auth struct {
		PasswordHash    string   `json:"password_hash"`
		DashboardToken  string   `json:"dashboard_token"`
		RateLimitMax    int      `json:"rate_limit_max"`
		RateLimitWindow Duration `json:"rate_limit_window"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			BlobDir string `json:"blob_dir"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress       string   `json:"http_address"`
		AuthTimeout       Duration `json:"auth_timeout"`
		HeartbeatInterval Duration `json:"heartbeat_interval"`
	} `json:"server,omitempty"`

	Discovery struct {
		Address string `json:"address"`
	} `json:"discovery,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Auth: Auth{
			PasswordHash:    jsonCfg.Auth.PasswordHash,
			DashboardToken:  jsonCfg.Auth.DashboardToken,
			RateLimitMax:    jsonCfg.Auth.RateLimitMax,
			RateLimitWindow: time.Duration(jsonCfg.Auth.RateLimitWindow),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				BlobDir: jsonCfg.Storage.Files.BlobDir,
			},
		},
		Server: Server{
			HTTPAddress:       jsonCfg.Server.HTTPAddress,
			AuthTimeout:       time.Duration(jsonCfg.Server.AuthTimeout),
			HeartbeatInterval: time.Duration(jsonCfg.Server.HeartbeatInterval),
		},
		Discovery: Discovery{
			Address: jsonCfg.Discovery.Address,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

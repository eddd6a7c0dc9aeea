package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN (postgres:// URI or SQLite file path)
//	-f blob storage directory
//	-c/-config json file path with configs
//	-password-hash hex Argon2id hash sync clients must present
//	-dashboard-token dashboard access token
//	-auth-timeout time allowed before a connection must AUTH (e.g., "10s")
//	-heartbeat-interval server ping period (e.g., "30s")
//	-discovery-address UDP address for LAN discovery (empty disables)
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var blobDir string
	var databaseDSN string
	var jsonConfigPath string
	var passwordHash string
	var dashboardToken string
	var authTimeout time.Duration
	var heartbeatInterval time.Duration
	var discoveryAddress string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&blobDir, "f", "", "Blob storage directory")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&passwordHash, "password-hash", "", "Access password hash (hex)")
	flag.StringVar(&dashboardToken, "dashboard-token", "", "Dashboard access token")
	flag.DurationVar(&authTimeout, "auth-timeout", 0, "Auth timeout (e.g., 10s)")
	flag.DurationVar(&heartbeatInterval, "heartbeat-interval", 0, "Heartbeat interval (e.g., 30s)")
	flag.StringVar(&discoveryAddress, "discovery-address", "", "LAN discovery UDP address")

	flag.Parse()

	return &StructuredConfig{
		Auth: Auth{
			PasswordHash:   passwordHash,
			DashboardToken: dashboardToken,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Files: Files{
				BlobDir: blobDir,
			},
		},
		Server: Server{
			HTTPAddress:       serverAddress.String(),
			AuthTimeout:       authTimeout,
			HeartbeatInterval: heartbeatInterval,
		},
		Discovery: Discovery{
			Address: discoveryAddress,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port

	return nil
}

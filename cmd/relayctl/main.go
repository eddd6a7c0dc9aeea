// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// relayctl is the operator CLI for a running vault relay.
//
// Subcommands:
//
//	relayctl hash <password>            derive the access password hash for the server config
//	relayctl status [-addr URL]         print the server status snapshot
//	relayctl theme [-addr URL] <file.json>   push a dashboard theme payload
//	relayctl reset [-addr URL] [-token T]               wipe the server's synced state
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"golang.org/x/crypto/argon2"
)

const dashboardTokenHeader = "X-Dashboard-Token"

// accessHashSalt is the fixed application salt for deriving the access
// password hash. It must match the salt sync clients use, so the derived hex
// strings compare equal on the server.
const accessHashSalt = "vault-relay-access-v1"

// Argon2id parameters for the access hash derivation.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "hash":
		err = runHash(os.Args[2:])
	case "status":
		err = runStatus(os.Args[2:])
	case "theme":
		err = runTheme(os.Args[2:])
	case "reset":
		err = runReset(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "relayctl: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: relayctl <hash|status|theme|reset> [flags]")
}

// runHash derives the hex-encoded Argon2id hash of the access password.
func runHash(args []string) error {
	fs := flag.NewFlagSet("hash", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: relayctl hash <password>")
	}

	key := argon2.IDKey([]byte(fs.Arg(0)), []byte(accessHashSalt), argonTime, argonMemory, argonThreads, argonKeyLen)
	fmt.Println(hex.EncodeToString(key))

	return nil
}

func runStatus(args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	addr := fs.String("addr", "http://localhost:8080", "relay base URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := resty.New().R().Get(*addr + "/api/status")
	if err != nil {
		return fmt.Errorf("error requesting status: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("server answered %s: %s", resp.Status(), resp.String())
	}

	fmt.Println(resp.String())
	return nil
}

func runTheme(args []string) error {
	fs := flag.NewFlagSet("theme", flag.ExitOnError)
	addr := fs.String("addr", "http://localhost:8080", "relay base URL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: relayctl theme [flags] <file.json>")
	}

	payload, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("error reading theme file: %w", err)
	}

	resp, err := resty.New().R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(*addr + "/api/theme")
	if err != nil {
		return fmt.Errorf("error pushing theme: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("server answered %s: %s", resp.Status(), resp.String())
	}

	fmt.Println("theme pushed")
	return nil
}

func runReset(args []string) error {
	fs := flag.NewFlagSet("reset", flag.ExitOnError)
	addr := fs.String("addr", "http://localhost:8080", "relay base URL")
	token := fs.String("token", os.Getenv("RELAY_DASHBOARD_TOKEN"), "dashboard token")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := resty.New().R().
		SetHeader(dashboardTokenHeader, *token).
		Post(*addr + "/api/reset")
	if err != nil {
		return fmt.Errorf("error requesting reset: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("server answered %s: %s", resp.Status(), resp.String())
	}

	fmt.Println("server state wiped")
	return nil
}

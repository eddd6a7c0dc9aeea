package store

import "errors"

var (
	// ErrNotFound is a sentinel error used when a queried record, token, or
	// blob does not exist.
	ErrNotFound = errors.New("record is not found")

	// ErrUnsupportedDSN indicates that the configured DSN matched no known
	// database driver.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")
)

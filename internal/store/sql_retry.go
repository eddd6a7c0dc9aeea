package store

import (
	"context"
	"time"
)

const (
	maxMutationAttempts = 3
	retryBaseDelay      = 25 * time.Millisecond
)

// withRetry runs op, repeating it when the dialect's error classifier
// reports the failure as transient (SQLITE_BUSY and SQLITE_LOCKED from
// another process holding the file lock, connection and serialization
// classes on postgres). Each attempt must be self-contained: op opens and
// finishes its own transaction, so a failed attempt leaves nothing behind.
func (db *DB) withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 1; ; attempt++ {
		err = op()
		if err == nil || db.errorClassificator.Classify(err) == NonRetryable {
			return err
		}
		if attempt == maxMutationAttempts {
			return err
		}

		db.logger.Warn().Err(err).Int("attempt", attempt).Msg("retrying transient DB error")

		select {
		case <-ctx.Done():
			return err
		case <-time.After(retryBaseDelay * time.Duration(attempt)):
		}
	}
}

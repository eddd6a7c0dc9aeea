package store

// Column lists shared by the repositories. Queries themselves are assembled
// with squirrel so the same code serves both placeholder formats ($N for
// PostgreSQL, ? for SQLite).
var (
	fileColumns = []string{
		"file_id",
		"encrypted_meta",
		"mtime",
		"size",
		"deleted",
		"sequence",
	}

	sessionColumns = []string{
		"client_id",
		"device_name",
		"ip",
		"first_seen",
		"last_seen",
		"is_online",
	}

	tokenColumns = []string{
		"token",
		"client_id",
		"device_name",
		"ip",
		"created_at",
		"last_used",
	}
)

// activityLogBound is the maximum number of retained activity entries.
// AppendActivity trims older rows past this bound opportunistically.
const activityLogBound = 2000

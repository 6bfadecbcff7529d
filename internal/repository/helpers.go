package repository

import (
	"time"
)

// timestampLayout keeps sub-second precision so updated_at orders writes
// made in quick succession.
const timestampLayout = time.RFC3339Nano

// nowUTC returns the current UTC time formatted for storage.
func nowUTC() string {
	return time.Now().UTC().Format(timestampLayout)
}

// parseTimestamp parses a stored timestamp, returning the zero time when the
// value is empty or malformed.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

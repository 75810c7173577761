package sqlite

import (
	"fmt"
	"time"
)

// parseTime parses an RFC3339 timestamp stored as TEXT.
func parseTime(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// formatTime formats a timestamp for TEXT storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

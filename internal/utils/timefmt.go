package utils

import (
	"time"
)

const journalTimestampLayout = "2006-01-02 15:04:05"

// FormatJournalTimestamp renders value in the local time zone for journal entries.
// The zero time renders as an empty string.
func FormatJournalTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.In(time.Local).Format(journalTimestampLayout)
}

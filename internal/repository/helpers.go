package repository

import (
	"time"

	"github.com/andy/garagebill/internal/domain"
)

// timeLayout is the format for storing timestamps in SQLite
const timeLayout = time.RFC3339Nano

// parseTime parses a stored timestamp
func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// parseDate parses a stored invoice date; "" is the zero date
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(domain.DateLayout, s)
}

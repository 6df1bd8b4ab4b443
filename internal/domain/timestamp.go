package domain

import (
	"strings"
	"time"
)

// Timestamp is a parsed record store date.
type Timestamp struct {
	Time time.Time
	// DateOnly is set when the source carried no time of day.
	DateOnly bool
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

const dateOnlyLayout = "2006-01-02"

// ParseTimestamp parses the date formats the record store emits.
// Date-only values are interpreted as UTC midnight.
func ParseTimestamp(raw string) (Timestamp, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Timestamp{}, false
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return Timestamp{Time: t}, true
		}
	}
	if t, err := time.Parse(dateOnlyLayout, raw); err == nil {
		return Timestamp{Time: t, DateOnly: true}, true
	}
	return Timestamp{}, false
}

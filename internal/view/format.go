package view

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

const (
	dateLayout     = "Jan 2, 2006"
	dateTimeLayout = "Jan 2, 2006, 15:04"
)

// Formatter renders record store dates for display.
type Formatter struct {
	loc *time.Location
	now func() time.Time
}

// NewFormatter returns a formatter presenting times in loc.
func NewFormatter(loc *time.Location) Formatter {
	if loc == nil {
		loc = time.UTC
	}
	return Formatter{loc: loc, now: time.Now}
}

// Date formats raw as a calendar date. Empty input gives an empty string;
// unparsable input is returned unchanged.
func (f Formatter) Date(raw string) string {
	return f.format(raw, dateLayout)
}

// DateTime formats raw as a date with a 24-hour time of day.
func (f Formatter) DateTime(raw string) string {
	return f.format(raw, dateTimeLayout)
}

// Relative describes raw relative to now, e.g. "3 days ago".
func (f Formatter) Relative(raw string) string {
	ts, ok := domain.ParseTimestamp(raw)
	if !ok {
		return ""
	}
	return humanize.RelTime(ts.Time, f.clock(), "ago", "from now")
}

func (f Formatter) format(raw, layout string) string {
	if raw == "" {
		return ""
	}
	ts, ok := domain.ParseTimestamp(raw)
	if !ok {
		return raw
	}
	// Date-only values name a calendar day; shifting them would change the day.
	if ts.DateOnly {
		return ts.Time.Format(layout)
	}
	return ts.Time.In(f.location()).Format(layout)
}

func (f Formatter) location() *time.Location {
	if f.loc == nil {
		return time.UTC
	}
	return f.loc
}

func (f Formatter) clock() time.Time {
	if f.now == nil {
		return time.Now()
	}
	return f.now()
}

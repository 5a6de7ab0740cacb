// Package calendar renders events as iCalendar and expands recurring
// events into concrete dates.
package calendar

import (
	"errors"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var ErrInvalidDate = errors.New("calendar: planned date does not parse")

// plannedDate parses an event's opaque date field as a UTC day.
func plannedDate(date string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// plannedAt combines a day with an "HH:MM" time of day. ok is false when
// the time does not parse.
func plannedAt(day time.Time, clock string) (time.Time, bool) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(clock))
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), true
}

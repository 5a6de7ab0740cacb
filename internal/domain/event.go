package domain

import "time"

// Defaults applied to planned fields when the client leaves them out.
const (
	DefaultRecurrenceDays  = 7
	DefaultReminderMinutes = 15
	DefaultColor           = "#3B82F6"
)

// Event is a user-owned scheduled task with planned and actual timing.
//
// Planned fields are opaque to the timer: StartTime, EndTime and Date are
// stored exactly as the client sent them.
type Event struct {
	ID     string
	UserID string

	Title           string
	StartTime       string
	EndTime         string
	Date            string
	IsRange         bool
	IsRecurring     bool
	RecurrenceDays  int
	Reminder        bool
	ReminderMinutes int
	Color           string
	Description     *string
	Tags            []string
	CreatedAt       time.Time

	ActualStart *time.Time
	ActualEnd   *time.Time
	Completed   bool
	Notes       *string
}

// DurationSeconds returns actualEnd - actualStart rounded to whole seconds.
// ok is false unless both actual timestamps are set. The value is negative
// when an update left the end before the start.
func (e Event) DurationSeconds() (seconds int64, ok bool) {
	if e.ActualStart == nil || e.ActualEnd == nil {
		return 0, false
	}
	d := e.ActualEnd.Sub(*e.ActualStart).Round(time.Second)
	return int64(d / time.Second), true
}

// InvertedRange reports whether both actual timestamps are set and the end
// precedes the start.
func (e Event) InvertedRange() bool {
	return e.ActualStart != nil && e.ActualEnd != nil && e.ActualEnd.Before(*e.ActualStart)
}

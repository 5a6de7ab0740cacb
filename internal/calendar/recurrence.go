package calendar

import (
	"errors"
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/domain"
)

// MaxOccurrencesPerEvent caps expansion of a single recurring event.
const MaxOccurrencesPerEvent = 1000

var ErrInvalidRange = errors.New("calendar: range end is before range start")

// Occurrence is one dated instance of an event.
type Occurrence struct {
	EventID string
	Title   string
	Date    time.Time
}

// Occurrences returns the days in [from, to] on which e takes place.
// Recurring events repeat every RecurrenceDays days starting at Date.
func Occurrences(e domain.Event, from, to time.Time) ([]time.Time, error) {
	if to.Before(from) {
		return nil, ErrInvalidRange
	}
	start, err := plannedDate(e.Date)
	if err != nil {
		return nil, err
	}
	from, to = from.UTC(), to.UTC()

	if !e.IsRecurring {
		if start.Before(from) || start.After(to) {
			return []time.Time{}, nil
		}
		return []time.Time{start}, nil
	}

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:     rrule.DAILY,
		Interval: interval(e.RecurrenceDays),
		Dtstart:  start,
	})
	if err != nil {
		return nil, err
	}
	days := r.Between(from, to, true)
	if len(days) > MaxOccurrencesPerEvent {
		days = days[:MaxOccurrencesPerEvent]
	}
	return days, nil
}

// Expand lists occurrences of all events in [from, to], ordered by date
// then title. Events whose date does not parse are skipped.
func Expand(events []domain.Event, from, to time.Time) ([]Occurrence, error) {
	if to.Before(from) {
		return nil, ErrInvalidRange
	}
	out := make([]Occurrence, 0)
	for _, e := range events {
		days, err := Occurrences(e, from, to)
		if errors.Is(err, ErrInvalidDate) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, d := range days {
			out = append(out, Occurrence{EventID: e.ID, Title: e.Title, Date: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}

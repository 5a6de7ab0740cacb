package calendar

import (
	"strconv"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/domain"
)

// ExportICS renders events as a VCALENDAR. Actual timestamps win over
// planned ones. Events with neither usable timing nor a parseable date are
// left out.
func ExportICS(events []domain.Event, now time.Time) string {
	cal := ical.NewCalendarFor("LyfeStyler")
	cal.SetMethod(ical.MethodPublish)

	for _, e := range events {
		addEvent(cal, e, now.UTC())
	}
	return cal.Serialize()
}

func addEvent(cal *ical.Calendar, e domain.Event, now time.Time) {
	day, dateErr := plannedDate(e.Date)
	if dateErr != nil && e.ActualStart == nil {
		return
	}

	ve := cal.AddEvent(e.ID)
	ve.SetDtStampTime(now)
	if !e.CreatedAt.IsZero() {
		ve.SetCreatedTime(e.CreatedAt.UTC())
	}
	ve.SetSummary(e.Title)
	if e.Description != nil && *e.Description != "" {
		ve.SetDescription(*e.Description)
	}
	for _, tag := range e.Tags {
		ve.AddCategory(tag)
	}
	if e.Color != "" {
		ve.SetColor(e.Color)
	}

	switch {
	case e.ActualStart != nil:
		ve.SetStartAt(e.ActualStart.UTC())
		if e.ActualEnd != nil && !e.ActualEnd.Before(*e.ActualStart) {
			ve.SetEndAt(e.ActualEnd.UTC())
		}
	default:
		start, okStart := plannedAt(day, e.StartTime)
		end, okEnd := plannedAt(day, e.EndTime)
		if okStart {
			ve.SetStartAt(start)
			if e.IsRange && okEnd && end.After(start) {
				ve.SetEndAt(end)
			}
		} else {
			ve.SetAllDayStartAt(day)
			ve.SetAllDayEndAt(day.AddDate(0, 0, 1))
		}
	}

	if e.IsRecurring {
		ve.AddRrule("FREQ=DAILY;INTERVAL=" + strconv.Itoa(interval(e.RecurrenceDays)))
	}
	if e.Completed {
		ve.SetStatus(ical.ObjectStatusCompleted)
	}
}

func interval(days int) int {
	if days <= 0 {
		return 1
	}
	return days
}

package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOccurrences_NonRecurring(t *testing.T) {
	e := domain.Event{ID: "e1", Title: "Run", Date: "2025-06-10"}

	got, err := Occurrences(e, day(2025, 6, 1), day(2025, 6, 30))
	require.NoError(t, err)
	assert.Equal(t, []time.Time{day(2025, 6, 10)}, got)

	got, err = Occurrences(e, day(2025, 7, 1), day(2025, 7, 31))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOccurrences_Recurring(t *testing.T) {
	e := domain.Event{ID: "e1", Title: "Run", Date: "2025-06-01", IsRecurring: true, RecurrenceDays: 7}

	got, err := Occurrences(e, day(2025, 6, 1), day(2025, 6, 30))
	require.NoError(t, err)
	assert.Equal(t, []time.Time{
		day(2025, 6, 1), day(2025, 6, 8), day(2025, 6, 15), day(2025, 6, 22), day(2025, 6, 29),
	}, got)
}

func TestOccurrences_ZeroIntervalIsDaily(t *testing.T) {
	e := domain.Event{Date: "2025-06-01", IsRecurring: true, RecurrenceDays: 0}

	got, err := Occurrences(e, day(2025, 6, 1), day(2025, 6, 3))
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestOccurrences_Errors(t *testing.T) {
	_, err := Occurrences(domain.Event{Date: "tomorrow"}, day(2025, 6, 1), day(2025, 6, 2))
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = Occurrences(domain.Event{Date: "2025-06-01"}, day(2025, 6, 2), day(2025, 6, 1))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestExpand_SortsAndSkipsBadDates(t *testing.T) {
	events := []domain.Event{
		{ID: "b", Title: "Stretch", Date: "2025-06-02", IsRecurring: true, RecurrenceDays: 2},
		{ID: "a", Title: "Read", Date: "2025-06-02"},
		{ID: "x", Title: "Broken", Date: "n/a"},
	}

	got, err := Expand(events, day(2025, 6, 1), day(2025, 6, 4))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, Occurrence{EventID: "a", Title: "Read", Date: day(2025, 6, 2)}, got[0])
	assert.Equal(t, Occurrence{EventID: "b", Title: "Stretch", Date: day(2025, 6, 2)}, got[1])
	assert.Equal(t, Occurrence{EventID: "b", Title: "Stretch", Date: day(2025, 6, 4)}, got[2])
}

func TestExportICS(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Second)
	desc := "morning"

	events := []domain.Event{
		{
			ID: "planned", Title: "Run", Date: "2025-06-02", StartTime: "07:30", EndTime: "08:15",
			IsRange: true, IsRecurring: true, RecurrenceDays: 7, Color: "#3B82F6",
			Description: &desc, Tags: []string{"sport", "outdoor"},
		},
		{ID: "done", Title: "Read", Date: "2025-06-01", ActualStart: &start, ActualEnd: &end, Completed: true},
		{ID: "allday", Title: "Rest", Date: "2025-06-03", StartTime: "whenever"},
		{ID: "skipped", Title: "Nope", Date: "someday"},
	}

	out := ExportICS(events, now)

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Contains(t, out, "METHOD:PUBLISH")
	assert.Contains(t, out, "UID:planned")
	assert.Contains(t, out, "DTSTART:20250602T073000Z")
	assert.Contains(t, out, "DTEND:20250602T081500Z")
	assert.Contains(t, out, "RRULE:FREQ=DAILY;INTERVAL=7")
	assert.Contains(t, out, "CATEGORIES:sport")
	assert.Contains(t, out, "SUMMARY:Run")

	assert.Contains(t, out, "UID:done")
	assert.Contains(t, out, "DTSTART:20250601T080000Z")
	assert.Contains(t, out, "DTEND:20250601T080045Z")
	assert.Contains(t, out, "STATUS:COMPLETED")

	assert.Contains(t, out, "UID:allday")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20250603")

	assert.NotContains(t, out, "UID:skipped")
}

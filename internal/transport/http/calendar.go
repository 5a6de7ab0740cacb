package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/calendar"
	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/domain"
)

// maxOccurrenceWindow bounds /events/occurrences requests.
const maxOccurrenceWindow = 366 * 24 * time.Hour

// StatsProvider aggregates a user's completed events.
type StatsProvider interface {
	Stats(ctx context.Context, userID string) (map[string]domain.Stats, error)
}

// CalendarSource returns every event of a user and the service clock.
type CalendarSource interface {
	Calendar(ctx context.Context, userID string) ([]domain.Event, error)
	Now() time.Time
}

type statsResponse struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
	Count int     `json:"count"`
}

type occurrenceResponse struct {
	EventID string `json:"event_id"`
	Title   string `json:"title"`
	Date    string `json:"date"`
}

// HandleStats returns min/max/avg/count of durations grouped by title.
func HandleStats(svc StatsProvider) http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, u domain.User) {
		stats, err := svc.Stats(r.Context(), u.ID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		out := make(map[string]statsResponse, len(stats))
		for title, s := range stats {
			out[title] = statsResponse{Min: s.Min, Max: s.Max, Avg: s.Avg, Count: s.Count}
		}
		writeJSON(w, http.StatusOK, out)
	})
}

// HandleCalendarICS exports the user's events as an iCalendar feed.
func HandleCalendarICS(svc CalendarSource) http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, u domain.User) {
		events, err := svc.Calendar(r.Context(), u.ID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		body := calendar.ExportICS(events, svc.Now())
		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="lyfestyler.ics"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	})
}

// HandleOccurrences expands events into dated occurrences in [from, to].
func HandleOccurrences(svc CalendarSource) http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, u domain.User) {
		q := r.URL.Query()
		from, errFrom := time.Parse(calendar.DateLayout, strings.TrimSpace(q.Get("from")))
		to, errTo := time.Parse(calendar.DateLayout, strings.TrimSpace(q.Get("to")))
		if errFrom != nil || errTo != nil {
			writeError(w, http.StatusBadRequest, codeInvalidDate, "from and to must be dates formatted as YYYY-MM-DD")
			return
		}
		if to.Sub(from) > maxOccurrenceWindow {
			writeError(w, http.StatusBadRequest, codeInvalidRange, "range must not exceed 366 days")
			return
		}

		events, err := svc.Calendar(r.Context(), u.ID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		occ, err := calendar.Expand(events, from, to)
		if err != nil {
			if errors.Is(err, calendar.ErrInvalidRange) {
				writeError(w, http.StatusBadRequest, codeInvalidRange, "to must not be before from")
				return
			}
			writeServiceError(w, r, err)
			return
		}

		out := make([]occurrenceResponse, 0, len(occ))
		for _, o := range occ {
			out = append(out, occurrenceResponse{
				EventID: o.EventID,
				Title:   o.Title,
				Date:    o.Date.Format(calendar.DateLayout),
			})
		}
		writeJSON(w, http.StatusOK, out)
	})
}

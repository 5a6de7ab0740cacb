package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/app"
	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/domain"
)

// EventService is everything the event routes need.
type EventService interface {
	CreateEvent(ctx context.Context, userID string, in app.CreateEventInput) (domain.Event, error)
	GetEvent(ctx context.Context, userID, eventID string) (domain.EventView, error)
	ListEvents(ctx context.Context, userID, date string) ([]domain.EventView, error)
	UpdateEvent(ctx context.Context, userID, eventID string, patch domain.TimingPatch) (domain.EventView, error)
	DeleteEvent(ctx context.Context, userID, eventID string) error
	StartTimer(ctx context.Context, userID, eventID string) (time.Time, error)
	StopTimer(ctx context.Context, userID, eventID string) (domain.StopResult, error)
	StatsProvider
	CalendarSource
}

type createEventRequest struct {
	Title           string   `json:"title" validate:"required,max=200"`
	StartTime       string   `json:"startTime" validate:"max=32"`
	EndTime         string   `json:"endTime" validate:"max=32"`
	Date            string   `json:"date" validate:"max=32"`
	IsRange         *bool    `json:"isRange"`
	IsRecurring     bool     `json:"isRecurring"`
	RecurrenceDays  *int     `json:"recurrenceDays" validate:"omitempty,min=1,max=365"`
	Reminder        bool     `json:"reminder"`
	ReminderMinutes *int     `json:"reminderMinutes" validate:"omitempty,min=0,max=10080"`
	Color           *string  `json:"color" validate:"omitempty,max=32"`
	Description     *string  `json:"description" validate:"omitempty,max=2000"`
	Tags            []string `json:"tags" validate:"omitempty,max=32,dive,max=64"`
}

// updateEventRequest mirrors the timing patch. Completed must be present;
// empty notes leave the stored notes untouched.
type updateEventRequest struct {
	ActualStartTime *time.Time `json:"actual_start_time"`
	ActualEndTime   *time.Time `json:"actual_end_time"`
	Completed       *bool      `json:"completed" validate:"required"`
	Notes           *string    `json:"notes" validate:"omitempty,max=2000"`
}

type eventResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	StartTime       string     `json:"startTime"`
	EndTime         string     `json:"endTime"`
	Date            string     `json:"date"`
	IsRange         bool       `json:"isRange"`
	IsRecurring     bool       `json:"isRecurring"`
	RecurrenceDays  int        `json:"recurrenceDays"`
	Reminder        bool       `json:"reminder"`
	ReminderMinutes int        `json:"reminderMinutes"`
	Color           string     `json:"color"`
	Description     *string    `json:"description"`
	Tags            []string   `json:"tags"`
	CreatedAt       time.Time  `json:"created_at"`
	ActualStartTime *time.Time `json:"actual_start_time"`
	ActualEndTime   *time.Time `json:"actual_end_time"`
	Completed       bool       `json:"completed"`
	Notes           *string    `json:"notes"`
	DurationSeconds *int64     `json:"duration_seconds"`
}

type startResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

type stopResponse struct {
	Status          string `json:"status"`
	DurationSeconds int64  `json:"duration_seconds"`
	WorldRecord     bool   `json:"world_record"`
}

func toEventResponse(v domain.EventView) eventResponse {
	tags := v.Tags
	if tags == nil {
		tags = []string{}
	}
	return eventResponse{
		ID:              v.ID,
		Title:           v.Title,
		StartTime:       v.StartTime,
		EndTime:         v.EndTime,
		Date:            v.Date,
		IsRange:         v.IsRange,
		IsRecurring:     v.IsRecurring,
		RecurrenceDays:  v.RecurrenceDays,
		Reminder:        v.Reminder,
		ReminderMinutes: v.ReminderMinutes,
		Color:           v.Color,
		Description:     v.Description,
		Tags:            tags,
		CreatedAt:       v.CreatedAt.UTC(),
		ActualStartTime: utcPtr(v.ActualStart),
		ActualEndTime:   utcPtr(v.ActualEnd),
		Completed:       v.Completed,
		Notes:           v.Notes,
		DurationSeconds: v.DurationSeconds,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func eventID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, codeInvalidID, "invalid event id")
		return "", false
	}
	return id, true
}

// withUser resolves the authenticated user for handlers mounted behind
// RequireAuth.
func withUser(fn func(w http.ResponseWriter, r *http.Request, user domain.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := userFromContext(r.Context())
		if !ok {
			writeUnauthorized(w)
			return
		}
		fn(w, r, u)
	}
}

func HandleCreateEvent(svc EventService) http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, u domain.User) {
		var req createEventRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		e, err := svc.CreateEvent(r.Context(), u.ID, app.CreateEventInput{
			Title:           req.Title,
			StartTime:       req.StartTime,
			EndTime:         req.EndTime,
			Date:            req.Date,
			IsRange:         req.IsRange,
			IsRecurring:     req.IsRecurring,
			RecurrenceDays:  req.RecurrenceDays,
			Reminder:        req.Reminder,
			ReminderMinutes: req.ReminderMinutes,
			Color:           req.Color,
			Description:     req.Description,
			Tags:            req.Tags,
		})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, toEventResponse(domain.View(e)))
	})
}

// HandleListEvents lists the user's events planned on ?date=.
func HandleListEvents(svc EventService) http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, u domain.User) {
		views, err := svc.ListEvents(r.Context(), u.ID, strings.TrimSpace(r.URL.Query().Get("date")))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		out := make([]eventResponse, 0, len(views))
		for _, v := range views {
			out = append(out, toEventResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	})
}

func HandleGetEvent(svc EventService) http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, u domain.User) {
		id, ok := eventID(w, r)
		if !ok {
			return
		}
		v, err := svc.GetEvent(r.Context(), u.ID, id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponse(v))
	})
}

// HandleUpdateEvent applies a timing patch to an event.
func HandleUpdateEvent(svc EventService) http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, u domain.User) {
		id, ok := eventID(w, r)
		if !ok {
			return
		}
		var req updateEventRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		patch := domain.TimingPatch{
			ActualStart: req.ActualStartTime,
			ActualEnd:   req.ActualEndTime,
			Completed:   *req.Completed,
		}
		if req.Notes != nil && *req.Notes != "" {
			patch.Notes = req.Notes
		}

		v, err := svc.UpdateEvent(r.Context(), u.ID, id, patch)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponse(v))
	})
}

func HandleDeleteEvent(svc EventService) http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, u domain.User) {
		id, ok := eventID(w, r)
		if !ok {
			return
		}
		if err := svc.DeleteEvent(r.Context(), u.ID, id); err != nil {
			writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func HandleStartTimer(svc EventService) http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, u domain.User) {
		id, ok := eventID(w, r)
		if !ok {
			return
		}
		started, err := svc.StartTimer(r.Context(), u.ID, id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, startResponse{Status: "started", Time: started.UTC().Format(time.RFC3339Nano)})
	})
}

func HandleStopTimer(svc EventService) http.HandlerFunc {
	return withUser(func(w http.ResponseWriter, r *http.Request, u domain.User) {
		id, ok := eventID(w, r)
		if !ok {
			return
		}
		res, err := svc.StopTimer(r.Context(), u.ID, id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, stopResponse{
			Status:          "completed",
			DurationSeconds: res.DurationSeconds,
			WorldRecord:     res.WorldRecord,
		})
	})
}

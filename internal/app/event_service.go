package app

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/clock"
	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/domain"
	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/metrics"
)

// EventRepository persists events. Every read and write is scoped to the
// owning user; a foreign or unknown id yields domain.ErrEventNotFound.
type EventRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateEvent(ctx context.Context, e domain.Event) error
	GetEvent(ctx context.Context, userID, eventID string) (domain.Event, error)
	GetEventForUpdate(ctx context.Context, userID, eventID string) (domain.Event, error)
	UpdateTiming(ctx context.Context, e domain.Event) error
	ListEventsByDate(ctx context.Context, userID, date string) ([]domain.Event, error)
	ListCompletedEvents(ctx context.Context, userID string) ([]domain.Event, error)
	ListEvents(ctx context.Context, userID string) ([]domain.Event, error)
	DeleteEvent(ctx context.Context, userID, eventID string) error
}

type EventService struct {
	repo   EventRepository
	clock  clock.Clock
	logger zerolog.Logger
}

func NewEventService(repo EventRepository, clk clock.Clock, opts ...EventServiceOption) *EventService {
	svc := &EventService{
		repo:   repo,
		clock:  clk,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type EventServiceOption func(*EventService)

// WithEventLogger sets the logger used for warnings about accepted but
// suspicious updates.
func WithEventLogger(l zerolog.Logger) EventServiceOption {
	return func(s *EventService) {
		s.logger = l
	}
}

// CreateEventInput carries planned fields. Nil pointers take the schema
// default.
type CreateEventInput struct {
	Title           string
	StartTime       string
	EndTime         string
	Date            string
	IsRange         *bool
	IsRecurring     bool
	RecurrenceDays  *int
	Reminder        bool
	ReminderMinutes *int
	Color           *string
	Description     *string
	Tags            []string
}

func (s *EventService) CreateEvent(ctx context.Context, userID string, in CreateEventInput) (domain.Event, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Event{}, domain.ErrTitleRequired
	}

	e := domain.Event{
		ID:              newUUID(),
		UserID:          userID,
		Title:           title,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		Date:            in.Date,
		IsRange:         true,
		IsRecurring:     in.IsRecurring,
		RecurrenceDays:  domain.DefaultRecurrenceDays,
		Reminder:        in.Reminder,
		ReminderMinutes: domain.DefaultReminderMinutes,
		Color:           domain.DefaultColor,
		Description:     in.Description,
		Tags:            in.Tags,
		CreatedAt:       s.clock.Now(),
	}
	if in.IsRange != nil {
		e.IsRange = *in.IsRange
	}
	if in.RecurrenceDays != nil {
		e.RecurrenceDays = *in.RecurrenceDays
	}
	if in.ReminderMinutes != nil {
		e.ReminderMinutes = *in.ReminderMinutes
	}
	if in.Color != nil && *in.Color != "" {
		e.Color = *in.Color
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}

	if err := s.repo.CreateEvent(ctx, e); err != nil {
		return domain.Event{}, err
	}
	return e, nil
}

func (s *EventService) GetEvent(ctx context.Context, userID, eventID string) (domain.EventView, error) {
	e, err := s.repo.GetEvent(ctx, userID, eventID)
	if err != nil {
		return domain.EventView{}, err
	}
	return domain.View(e), nil
}

// ListEvents returns the user's events planned for date.
func (s *EventService) ListEvents(ctx context.Context, userID, date string) ([]domain.EventView, error) {
	if strings.TrimSpace(date) == "" {
		return nil, domain.ErrDateRequired
	}
	events, err := s.repo.ListEventsByDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	return domain.ListWithDuration(events), nil
}

func (s *EventService) StartTimer(ctx context.Context, userID, eventID string) (time.Time, error) {
	var started time.Time
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		e, err := s.repo.GetEventForUpdate(txCtx, userID, eventID)
		if err != nil {
			return err
		}
		started = e.StartTimer(s.clock.Now())
		return s.repo.UpdateTiming(txCtx, e)
	})
	if err != nil {
		return time.Time{}, err
	}
	metrics.RecordTimerStarted()
	return started, nil
}

func (s *EventService) StopTimer(ctx context.Context, userID, eventID string) (domain.StopResult, error) {
	var result domain.StopResult
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		e, err := s.repo.GetEventForUpdate(txCtx, userID, eventID)
		if err != nil {
			return err
		}
		result, err = e.StopTimer(s.clock.Now())
		if err != nil {
			return err
		}
		return s.repo.UpdateTiming(txCtx, e)
	})
	if err != nil {
		return domain.StopResult{}, err
	}
	metrics.RecordTimerStopped(result.DurationSeconds)
	return result, nil
}

// UpdateEvent applies a timing patch. An end before the start is stored as
// given and only logged.
func (s *EventService) UpdateEvent(ctx context.Context, userID, eventID string, patch domain.TimingPatch) (domain.EventView, error) {
	var view domain.EventView
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		e, err := s.repo.GetEventForUpdate(txCtx, userID, eventID)
		if err != nil {
			return err
		}
		view = e.ApplyUpdate(patch)
		return s.repo.UpdateTiming(txCtx, e)
	})
	if err != nil {
		return domain.EventView{}, err
	}
	if view.InvertedRange() {
		s.logger.Warn().
			Str("event_id", eventID).
			Str("user_id", userID).
			Time("actual_start", *view.ActualStart).
			Time("actual_end", *view.ActualEnd).
			Msg("event updated with end before start")
	}
	return view, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, userID, eventID string) error {
	return s.repo.DeleteEvent(ctx, userID, eventID)
}

// Stats aggregates the user's completed events by title.
func (s *EventService) Stats(ctx context.Context, userID string) (map[string]domain.Stats, error) {
	events, err := s.repo.ListCompletedEvents(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.ComputeStats(events), nil
}

// Calendar returns every event the user owns.
func (s *EventService) Calendar(ctx context.Context, userID string) ([]domain.Event, error) {
	return s.repo.ListEvents(ctx, userID)
}

// Now exposes the service clock for callers rendering time-stamped output.
func (s *EventService) Now() time.Time {
	return s.clock.Now()
}

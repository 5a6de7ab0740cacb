package testutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/app"
	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/domain"
)

// Repos is one storage backend under test.
type Repos struct {
	Events app.EventRepository
	Users  app.UserRepository
}

// RunRepositoryContract checks behaviour every storage backend must share.
// fresh must return repositories over an empty schema.
func RunRepositoryContract(t *testing.T, fresh func(t *testing.T) Repos) {
	t.Helper()

	t.Run("users", func(t *testing.T) {
		ctx := context.Background()
		r := fresh(t)
		u := newUser("alice@example.com")

		if err := r.Users.CreateUser(ctx, u); err != nil {
			t.Fatalf("create user: %v", err)
		}
		dup := newUser("alice@example.com")
		if err := r.Users.CreateUser(ctx, dup); !errors.Is(err, domain.ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}

		got, err := r.Users.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("get by email: %v", err)
		}
		if got.ID != u.ID || got.HashedPassword != u.HashedPassword || got.IsVerified {
			t.Fatalf("unexpected user: %+v", got)
		}
		if !got.CreatedAt.Equal(u.CreatedAt) {
			t.Fatalf("expected created_at %v, got %v", u.CreatedAt, got.CreatedAt)
		}

		if err := r.Users.MarkVerified(ctx, u.ID); err != nil {
			t.Fatalf("mark verified: %v", err)
		}
		got, err = r.Users.GetUserByID(ctx, u.ID)
		if err != nil {
			t.Fatalf("get by id: %v", err)
		}
		if !got.IsVerified {
			t.Fatalf("expected verified user")
		}

		if _, err := r.Users.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
		if _, err := r.Users.GetUserByID(ctx, "not-a-uuid"); !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound for bad id, got %v", err)
		}
		if err := r.Users.MarkVerified(ctx, uuid.NewString()); !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound on verify, got %v", err)
		}
	})

	t.Run("event round trip", func(t *testing.T) {
		ctx := context.Background()
		r := fresh(t)
		owner := mustUser(t, r, "owner@example.com")

		desc := "morning loop"
		e := newEvent(owner, "Run", "2025-06-01")
		e.StartTime, e.EndTime = "07:00", "07:45"
		e.IsRecurring, e.RecurrenceDays = true, 3
		e.Reminder, e.ReminderMinutes = true, 5
		e.Description = &desc
		e.Tags = []string{"sport", "outdoor"}

		if err := r.Events.CreateEvent(ctx, e); err != nil {
			t.Fatalf("create event: %v", err)
		}
		got, err := r.Events.GetEvent(ctx, owner, e.ID)
		if err != nil {
			t.Fatalf("get event: %v", err)
		}
		if got.Title != "Run" || got.StartTime != "07:00" || got.EndTime != "07:45" || got.Date != "2025-06-01" {
			t.Fatalf("unexpected planned fields: %+v", got)
		}
		if !got.IsRange || !got.IsRecurring || got.RecurrenceDays != 3 || !got.Reminder || got.ReminderMinutes != 5 {
			t.Fatalf("unexpected flags: %+v", got)
		}
		if got.Description == nil || *got.Description != desc {
			t.Fatalf("expected description %q, got %v", desc, got.Description)
		}
		if len(got.Tags) != 2 || got.Tags[0] != "sport" || got.Tags[1] != "outdoor" {
			t.Fatalf("expected ordered tags, got %v", got.Tags)
		}
		if got.ActualStart != nil || got.ActualEnd != nil || got.Completed || got.Notes != nil {
			t.Fatalf("expected empty actual fields, got %+v", got)
		}

		bare := newEvent(owner, "Nap", "2025-06-01")
		bare.Tags = nil
		if err := r.Events.CreateEvent(ctx, bare); err != nil {
			t.Fatalf("create bare event: %v", err)
		}
		got, err = r.Events.GetEvent(ctx, owner, bare.ID)
		if err != nil {
			t.Fatalf("get bare event: %v", err)
		}
		if got.Tags == nil || len(got.Tags) != 0 || got.Description != nil {
			t.Fatalf("expected empty tags and nil description, got %+v", got)
		}
	})

	t.Run("ownership", func(t *testing.T) {
		ctx := context.Background()
		r := fresh(t)
		owner := mustUser(t, r, "owner@example.com")
		other := mustUser(t, r, "other@example.com")

		e := newEvent(owner, "Run", "2025-06-01")
		if err := r.Events.CreateEvent(ctx, e); err != nil {
			t.Fatalf("create event: %v", err)
		}

		if _, err := r.Events.GetEvent(ctx, other, e.ID); !errors.Is(err, domain.ErrEventNotFound) {
			t.Fatalf("expected ErrEventNotFound for foreign owner, got %v", err)
		}
		if _, err := r.Events.GetEvent(ctx, owner, "not-a-uuid"); !errors.Is(err, domain.ErrEventNotFound) {
			t.Fatalf("expected ErrEventNotFound for bad id, got %v", err)
		}
		foreign := e
		foreign.UserID = other
		if err := r.Events.UpdateTiming(ctx, foreign); !errors.Is(err, domain.ErrEventNotFound) {
			t.Fatalf("expected ErrEventNotFound on foreign update, got %v", err)
		}
		if err := r.Events.DeleteEvent(ctx, other, e.ID); !errors.Is(err, domain.ErrEventNotFound) {
			t.Fatalf("expected ErrEventNotFound on foreign delete, got %v", err)
		}
		list, err := r.Events.ListEvents(ctx, other)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 0 {
			t.Fatalf("expected no events for other user, got %d", len(list))
		}

		if err := r.Events.DeleteEvent(ctx, owner, e.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := r.Events.GetEvent(ctx, owner, e.ID); !errors.Is(err, domain.ErrEventNotFound) {
			t.Fatalf("expected deleted event to be gone, got %v", err)
		}
	})

	t.Run("timing updates and listings", func(t *testing.T) {
		ctx := context.Background()
		r := fresh(t)
		owner := mustUser(t, r, "owner@example.com")

		run := newEvent(owner, "Run", "2025-06-01")
		read := newEvent(owner, "Read", "2025-06-01")
		read.CreatedAt = run.CreatedAt.Add(time.Second)
		later := newEvent(owner, "Swim", "2025-06-02")
		for _, e := range []domain.Event{run, read, later} {
			if err := r.Events.CreateEvent(ctx, e); err != nil {
				t.Fatalf("create %s: %v", e.Title, err)
			}
		}

		start := time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)
		err := r.Events.WithTx(ctx, func(txCtx context.Context) error {
			e, err := r.Events.GetEventForUpdate(txCtx, owner, run.ID)
			if err != nil {
				return err
			}
			e.StartTimer(start)
			if _, err := e.StopTimer(start.Add(90 * time.Second)); err != nil {
				return err
			}
			notes := "felt good"
			e.Notes = &notes
			return r.Events.UpdateTiming(txCtx, e)
		})
		if err != nil {
			t.Fatalf("tx: %v", err)
		}

		got, err := r.Events.GetEvent(ctx, owner, run.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.ActualStart == nil || !got.ActualStart.Equal(start) {
			t.Fatalf("expected actual start %v, got %v", start, got.ActualStart)
		}
		if secs, ok := got.DurationSeconds(); !ok || secs != 90 {
			t.Fatalf("expected 90s, got %d (%v)", secs, ok)
		}
		if !got.Completed || got.Notes == nil || *got.Notes != "felt good" {
			t.Fatalf("unexpected timing fields: %+v", got)
		}

		byDate, err := r.Events.ListEventsByDate(ctx, owner, "2025-06-01")
		if err != nil {
			t.Fatalf("list by date: %v", err)
		}
		if len(byDate) != 2 || byDate[0].ID != run.ID || byDate[1].ID != read.ID {
			t.Fatalf("expected run then read, got %+v", byDate)
		}

		completed, err := r.Events.ListCompletedEvents(ctx, owner)
		if err != nil {
			t.Fatalf("list completed: %v", err)
		}
		if len(completed) != 1 || completed[0].ID != run.ID {
			t.Fatalf("expected only run to be completed, got %+v", completed)
		}

		all, err := r.Events.ListEvents(ctx, owner)
		if err != nil {
			t.Fatalf("list all: %v", err)
		}
		if len(all) != 3 || all[2].ID != later.ID {
			t.Fatalf("expected 3 events ordered by date, got %+v", all)
		}
	})

	t.Run("rollback", func(t *testing.T) {
		ctx := context.Background()
		r := fresh(t)
		owner := mustUser(t, r, "owner@example.com")
		e := newEvent(owner, "Run", "2025-06-01")
		if err := r.Events.CreateEvent(ctx, e); err != nil {
			t.Fatalf("create: %v", err)
		}

		boom := errors.New("boom")
		err := r.Events.WithTx(ctx, func(txCtx context.Context) error {
			locked, err := r.Events.GetEventForUpdate(txCtx, owner, e.ID)
			if err != nil {
				return err
			}
			locked.StartTimer(time.Now())
			if err := r.Events.UpdateTiming(txCtx, locked); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
		got, err := r.Events.GetEvent(ctx, owner, e.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.ActualStart != nil {
			t.Fatalf("expected rollback to discard start, got %v", got.ActualStart)
		}
	})
}

func newUser(email string) domain.User {
	return domain.User{
		ID:             uuid.NewString(),
		Email:          email,
		HashedPassword: "$2a$10$hash",
		CreatedAt:      time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC),
	}
}

func mustUser(t *testing.T, r Repos, email string) string {
	t.Helper()
	u := newUser(email)
	if err := r.Users.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u.ID
}

func newEvent(userID, title, date string) domain.Event {
	return domain.Event{
		ID:              uuid.NewString(),
		UserID:          userID,
		Title:           title,
		Date:            date,
		IsRange:         true,
		RecurrenceDays:  domain.DefaultRecurrenceDays,
		ReminderMinutes: domain.DefaultReminderMinutes,
		Color:           domain.DefaultColor,
		Tags:            []string{},
		CreatedAt:       time.Date(2025, 6, 1, 6, 30, 0, 0, time.UTC),
	}
}

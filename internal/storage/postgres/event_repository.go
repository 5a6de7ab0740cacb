package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/domain"
)

type EventRepository struct {
	q    querier
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{q: querier{pool: pool}, pool: pool}
}

const eventColumns = `
id, user_id, title, start_time, end_time, date, is_range, is_recurring,
recurrence_days, reminder, reminder_minutes, color, description, tags,
created_at, actual_start_time, actual_end_time, completed, notes`

func (r *EventRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *EventRepository) CreateEvent(ctx context.Context, e domain.Event) error {
	const stmt = `
INSERT INTO schedule_events (` + eventColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err := r.q.exec(ctx, stmt,
		e.ID,
		e.UserID,
		e.Title,
		e.StartTime,
		e.EndTime,
		e.Date,
		e.IsRange,
		e.IsRecurring,
		e.RecurrenceDays,
		e.Reminder,
		e.ReminderMinutes,
		e.Color,
		e.Description,
		domain.EncodeTags(e.Tags),
		e.CreatedAt,
		e.ActualStart,
		e.ActualEnd,
		e.Completed,
		e.Notes,
	)
	if err != nil {
		if isInvalidUUID(err) || isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepository) GetEvent(ctx context.Context, userID, eventID string) (domain.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM schedule_events WHERE id = $1 AND user_id = $2`
	return r.getOne(ctx, query, "get event", eventID, userID)
}

// GetEventForUpdate locks the row until the surrounding transaction ends.
func (r *EventRepository) GetEventForUpdate(ctx context.Context, userID, eventID string) (domain.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM schedule_events WHERE id = $1 AND user_id = $2 FOR UPDATE`
	return r.getOne(ctx, query, "get event for update", eventID, userID)
}

// UpdateTiming persists the actual-execution fields of e.
func (r *EventRepository) UpdateTiming(ctx context.Context, e domain.Event) error {
	const stmt = `
UPDATE schedule_events
SET actual_start_time = $3, actual_end_time = $4, completed = $5, notes = $6
WHERE id = $1 AND user_id = $2`

	tag, err := r.q.exec(ctx, stmt, e.ID, e.UserID, e.ActualStart, e.ActualEnd, e.Completed, e.Notes)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("update timing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) ListEventsByDate(ctx context.Context, userID, date string) ([]domain.Event, error) {
	const query = `SELECT ` + eventColumns + `
FROM schedule_events
WHERE user_id = $1 AND date = $2
ORDER BY created_at, id`
	return r.list(ctx, query, "list events by date", userID, date)
}

func (r *EventRepository) ListCompletedEvents(ctx context.Context, userID string) ([]domain.Event, error) {
	const query = `SELECT ` + eventColumns + `
FROM schedule_events
WHERE user_id = $1 AND completed AND actual_start_time IS NOT NULL AND actual_end_time IS NOT NULL
ORDER BY created_at, id`
	return r.list(ctx, query, "list completed events", userID)
}

func (r *EventRepository) ListEvents(ctx context.Context, userID string) ([]domain.Event, error) {
	const query = `SELECT ` + eventColumns + `
FROM schedule_events
WHERE user_id = $1
ORDER BY date, created_at, id`
	return r.list(ctx, query, "list events", userID)
}

func (r *EventRepository) DeleteEvent(ctx context.Context, userID, eventID string) error {
	tag, err := r.q.exec(ctx, `DELETE FROM schedule_events WHERE id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) getOne(ctx context.Context, query, op string, args ...any) (domain.Event, error) {
	e, err := scanEvent(r.q.queryRow(ctx, query, args...))
	if err != nil {
		if isInvalidUUID(err) || errors.Is(err, pgx.ErrNoRows) {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("%s: %w", op, err)
	}
	return e, nil
}

func (r *EventRepository) list(ctx context.Context, query, op string, args ...any) ([]domain.Event, error) {
	rows, err := r.q.query(ctx, query, args...)
	if err != nil {
		if isInvalidUUID(err) {
			return []domain.Event{}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		if isInvalidUUID(err) {
			return []domain.Event{}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func scanEvent(row pgx.Row) (domain.Event, error) {
	var (
		e    domain.Event
		tags *string
	)
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.Title,
		&e.StartTime,
		&e.EndTime,
		&e.Date,
		&e.IsRange,
		&e.IsRecurring,
		&e.RecurrenceDays,
		&e.Reminder,
		&e.ReminderMinutes,
		&e.Color,
		&e.Description,
		&tags,
		&e.CreatedAt,
		&e.ActualStart,
		&e.ActualEnd,
		&e.Completed,
		&e.Notes,
	)
	if err != nil {
		return domain.Event{}, err
	}
	payload := ""
	if tags != nil {
		payload = *tags
	}
	if e.Tags, err = domain.DecodeTags(payload); err != nil {
		return domain.Event{}, err
	}
	return e, nil
}

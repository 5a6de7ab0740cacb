package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/domain"
)

type EventRepository struct {
	db *DB
}

func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `
id, user_id, title, start_time, end_time, date, is_range, is_recurring,
recurrence_days, reminder, reminder_minutes, color, description, tags,
created_at, actual_start_time, actual_end_time, completed, notes`

// WithTx runs fn in a transaction. SQLite has no row locks; the single
// pooled connection serializes writers.
func (r *EventRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.withTx(ctx, fn)
}

func (r *EventRepository) CreateEvent(ctx context.Context, e domain.Event) error {
	const stmt = `
INSERT INTO schedule_events (` + eventColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.exec(ctx, stmt,
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
		nullString(e.Description),
		domain.EncodeTags(e.Tags),
		formatTime(e.CreatedAt),
		formatTimePtr(e.ActualStart),
		formatTimePtr(e.ActualEnd),
		e.Completed,
		nullString(e.Notes),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepository) GetEvent(ctx context.Context, userID, eventID string) (domain.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM schedule_events WHERE id = ? AND user_id = ?`
	return r.getOne(ctx, query, "get event", eventID, userID)
}

func (r *EventRepository) GetEventForUpdate(ctx context.Context, userID, eventID string) (domain.Event, error) {
	return r.GetEvent(ctx, userID, eventID)
}

func (r *EventRepository) UpdateTiming(ctx context.Context, e domain.Event) error {
	const stmt = `
UPDATE schedule_events
SET actual_start_time = ?, actual_end_time = ?, completed = ?, notes = ?
WHERE id = ? AND user_id = ?`

	res, err := r.db.exec(ctx, stmt,
		formatTimePtr(e.ActualStart),
		formatTimePtr(e.ActualEnd),
		e.Completed,
		nullString(e.Notes),
		e.ID,
		e.UserID,
	)
	if err != nil {
		return fmt.Errorf("update timing: %w", err)
	}
	return requireRow(res, domain.ErrEventNotFound)
}

func (r *EventRepository) ListEventsByDate(ctx context.Context, userID, date string) ([]domain.Event, error) {
	const query = `SELECT ` + eventColumns + `
FROM schedule_events
WHERE user_id = ? AND date = ?
ORDER BY created_at, id`
	return r.list(ctx, query, "list events by date", userID, date)
}

func (r *EventRepository) ListCompletedEvents(ctx context.Context, userID string) ([]domain.Event, error) {
	const query = `SELECT ` + eventColumns + `
FROM schedule_events
WHERE user_id = ? AND completed = 1 AND actual_start_time IS NOT NULL AND actual_end_time IS NOT NULL
ORDER BY created_at, id`
	return r.list(ctx, query, "list completed events", userID)
}

func (r *EventRepository) ListEvents(ctx context.Context, userID string) ([]domain.Event, error) {
	const query = `SELECT ` + eventColumns + `
FROM schedule_events
WHERE user_id = ?
ORDER BY date, created_at, id`
	return r.list(ctx, query, "list events", userID)
}

func (r *EventRepository) DeleteEvent(ctx context.Context, userID, eventID string) error {
	res, err := r.db.exec(ctx, `DELETE FROM schedule_events WHERE id = ? AND user_id = ?`, eventID, userID)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return requireRow(res, domain.ErrEventNotFound)
}

func (r *EventRepository) getOne(ctx context.Context, query, op string, args ...any) (domain.Event, error) {
	e, err := scanEvent(r.db.queryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("%s: %w", op, err)
	}
	return e, nil
}

func (r *EventRepository) list(ctx context.Context, query, op string, args ...any) ([]domain.Event, error) {
	rows, err := r.db.query(ctx, query, args...)
	if err != nil {
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
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (domain.Event, error) {
	var (
		e                        domain.Event
		description, tags, notes sql.NullString
		createdAt                string
		actualStart, actualEnd   sql.NullString
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
		&description,
		&tags,
		&createdAt,
		&actualStart,
		&actualEnd,
		&e.Completed,
		&notes,
	)
	if err != nil {
		return domain.Event{}, err
	}

	e.Description = stringPtr(description)
	e.Notes = stringPtr(notes)
	if e.Tags, err = domain.DecodeTags(tags.String); err != nil {
		return domain.Event{}, err
	}
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Event{}, err
	}
	if e.ActualStart, err = parseTimePtr(actualStart); err != nil {
		return domain.Event{}, err
	}
	if e.ActualEnd, err = parseTimePtr(actualEnd); err != nil {
		return domain.Event{}, err
	}
	return e, nil
}

func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

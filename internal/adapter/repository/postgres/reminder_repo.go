package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stefanv/moneta/internal/domain"
)

// ReminderRepository implements usecase.ReminderRepository.
type ReminderRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewReminderRepository creates a new ReminderRepository.
func NewReminderRepository(pool *pgxpool.Pool) *ReminderRepository {
	return &ReminderRepository{
		pool:    pool,
		retrier: NewRetrier(),
	}
}

// Create inserts a new reminder.
func (r *ReminderRepository) Create(ctx context.Context, reminder *domain.Reminder) error {
	const q = `
		INSERT INTO reminders (id, user_id, date, time, message, send_email, notified_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	return r.retrier.Retry(ctx, func() error {
		_, err := r.pool.Exec(ctx, q,
			reminder.ID,
			reminder.UserID,
			reminder.Date,
			stringToText(reminder.Time),
			reminder.Message,
			reminder.SendEmail,
			timePtrToPgTimestamptz(reminder.NotifiedAt),
			timeToPgTimestamptz(reminder.CreatedAt),
		)

		return err
	})
}

// GetByID retrieves a reminder by ID.
func (r *ReminderRepository) GetByID(ctx context.Context, id string) (*domain.Reminder, error) {
	const q = `
		SELECT id, user_id, date, time, message, send_email, notified_at, created_at
		FROM reminders
		WHERE id = $1`

	reminder, err := scanReminder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReminderNotFound
		}

		return nil, err
	}

	return reminder, nil
}

// Delete removes a reminder.
func (r *ReminderRepository) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM reminders WHERE id = $1`

	return r.retrier.Retry(ctx, func() error {
		tag, err := r.pool.Exec(ctx, q, id)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrReminderNotFound
		}

		return nil
	})
}

// ListByUser retrieves all of a user's reminders ordered by calendar date.
func (r *ReminderRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Reminder, error) {
	const q = `
		SELECT id, user_id, date, time, message, send_email, notified_at, created_at
		FROM reminders
		WHERE user_id = $1
		ORDER BY date ASC, time ASC NULLS FIRST, id ASC`

	return r.list(ctx, q, userID)
}

// ListDue retrieves email-flagged reminders that have not been notified,
// across all users. Whether each one is actually due is decided by the
// caller from the parsed date and time.
func (r *ReminderRepository) ListDue(ctx context.Context) ([]*domain.Reminder, error) {
	const q = `
		SELECT id, user_id, date, time, message, send_email, notified_at, created_at
		FROM reminders
		WHERE send_email = TRUE AND notified_at IS NULL
		ORDER BY date ASC, id ASC`

	return r.list(ctx, q)
}

// MarkNotified records that the reminder's email went out.
func (r *ReminderRepository) MarkNotified(ctx context.Context, id string, at time.Time) error {
	const q = `UPDATE reminders SET notified_at = $2 WHERE id = $1`

	return r.retrier.Retry(ctx, func() error {
		tag, err := r.pool.Exec(ctx, q, id, timeToPgTimestamptz(at))
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrReminderNotFound
		}

		return nil
	})
}

func (r *ReminderRepository) list(ctx context.Context, q string, args ...any) ([]*domain.Reminder, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*domain.Reminder
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}

	return reminders, rows.Err()
}

func scanReminder(row pgx.Row) (*domain.Reminder, error) {
	var (
		reminder   domain.Reminder
		remTime    pgtype.Text
		notifiedAt pgtype.Timestamptz
		createdAt  pgtype.Timestamptz
	)

	err := row.Scan(
		&reminder.ID,
		&reminder.UserID,
		&reminder.Date,
		&remTime,
		&reminder.Message,
		&reminder.SendEmail,
		&notifiedAt,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	reminder.Time = textToString(remTime)
	reminder.NotifiedAt = pgTimestamptzToTimePtr(notifiedAt)
	reminder.CreatedAt = createdAt.Time

	return &reminder, nil
}

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stefanv/moneta/internal/domain"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{
		pool:    pool,
		retrier: NewRetrier(),
	}
}

// Create inserts a new entry.
func (r *EntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	const q = `
		INSERT INTO entries (id, user_id, amount, type, currency, goal_id, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	return r.retrier.Retry(ctx, func() error {
		_, err := r.pool.Exec(ctx, q,
			entry.ID,
			entry.UserID,
			decimalToNumeric(entry.Amount),
			string(entry.Type),
			string(entry.Currency),
			stringToText(entry.GoalID),
			entry.Description,
			timeToPgTimestamptz(entry.CreatedAt),
		)

		return err
	})
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	const q = `
		SELECT id, user_id, amount, type, currency, goal_id, description, created_at
		FROM entries
		WHERE id = $1`

	entry, err := scanEntry(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return entry, nil
}

// Update rewrites the mutable fields of an entry.
func (r *EntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	const q = `
		UPDATE entries
		SET amount = $2, type = $3, currency = $4, goal_id = $5, description = $6
		WHERE id = $1`

	return r.retrier.Retry(ctx, func() error {
		tag, err := r.pool.Exec(ctx, q,
			entry.ID,
			decimalToNumeric(entry.Amount),
			string(entry.Type),
			string(entry.Currency),
			stringToText(entry.GoalID),
			entry.Description,
		)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrEntryNotFound
		}

		return nil
	})
}

// Delete removes an entry.
func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM entries WHERE id = $1`

	return r.retrier.Retry(ctx, func() error {
		tag, err := r.pool.Exec(ctx, q, id)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrEntryNotFound
		}

		return nil
	})
}

// ListByUser retrieves all of a user's entries, newest first.
func (r *EntryRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Entry, error) {
	const q = `
		SELECT id, user_id, amount, type, currency, goal_id, description, created_at
		FROM entries
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var (
		entry     domain.Entry
		amount    pgtype.Numeric
		entryType string
		currency  string
		goalID    pgtype.Text
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&amount,
		&entryType,
		&currency,
		&goalID,
		&entry.Description,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Amount = numericToDecimal(amount)
	entry.Type = domain.EntryType(entryType)
	entry.Currency = domain.CurrencyCode(currency)
	entry.GoalID = textToString(goalID)
	entry.CreatedAt = createdAt.Time

	return &entry, nil
}

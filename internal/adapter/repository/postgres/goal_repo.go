package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stefanv/moneta/internal/domain"
)

// GoalRepository implements usecase.GoalRepository.
type GoalRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewGoalRepository creates a new GoalRepository.
func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{
		pool:    pool,
		retrier: NewRetrier(),
	}
}

// Create inserts a new goal.
func (r *GoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	const q = `
		INSERT INTO goals (id, user_id, name, target, currency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	return r.retrier.Retry(ctx, func() error {
		_, err := r.pool.Exec(ctx, q,
			goal.ID,
			goal.UserID,
			goal.Name,
			decimalToNumeric(goal.Target),
			string(goal.Currency),
			timeToPgTimestamptz(goal.CreatedAt),
		)

		return err
	})
}

// GetByID retrieves a goal by ID.
func (r *GoalRepository) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	const q = `
		SELECT id, user_id, name, target, currency, created_at
		FROM goals
		WHERE id = $1`

	goal, err := scanGoal(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}

		return nil, err
	}

	return goal, nil
}

// Update rewrites the mutable fields of a goal.
func (r *GoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	const q = `
		UPDATE goals
		SET name = $2, target = $3, currency = $4
		WHERE id = $1`

	return r.retrier.Retry(ctx, func() error {
		tag, err := r.pool.Exec(ctx, q,
			goal.ID,
			goal.Name,
			decimalToNumeric(goal.Target),
			string(goal.Currency),
		)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrGoalNotFound
		}

		return nil
	})
}

// Delete removes a goal. Linked entries keep their rows; the foreign key
// clears their goal_id.
func (r *GoalRepository) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM goals WHERE id = $1`

	return r.retrier.Retry(ctx, func() error {
		tag, err := r.pool.Exec(ctx, q, id)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrGoalNotFound
		}

		return nil
	})
}

// ListByUser retrieves all of a user's goals, oldest first.
func (r *GoalRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Goal, error) {
	const q = `
		SELECT id, user_id, name, target, currency, created_at
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}

	return goals, rows.Err()
}

func scanGoal(row pgx.Row) (*domain.Goal, error) {
	var (
		goal      domain.Goal
		target    pgtype.Numeric
		currency  string
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Name,
		&target,
		&currency,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	goal.Target = numericToDecimal(target)
	goal.Currency = domain.CurrencyCode(currency)
	goal.CreatedAt = createdAt.Time

	return &goal, nil
}

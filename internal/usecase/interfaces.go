package usecase

import (
	"context"
	"time"

	"github.com/stefanv/moneta/internal/domain"
)

// EntryRepository defines data access for entries.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.Entry) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	Update(ctx context.Context, entry *domain.Entry) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Entry, error)
}

// GoalRepository defines data access for savings goals.
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) error
	GetByID(ctx context.Context, id string) (*domain.Goal, error)
	Update(ctx context.Context, goal *domain.Goal) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Goal, error)
}

// ReminderRepository defines data access for reminders.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *domain.Reminder) error
	GetByID(ctx context.Context, id string) (*domain.Reminder, error)
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Reminder, error)
	// ListDue returns reminders flagged for email that have not been
	// notified yet, across all users.
	ListDue(ctx context.Context) ([]*domain.Reminder, error)
	MarkNotified(ctx context.Context, id string, at time.Time) error
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// SettingsStore holds per-user display settings: the base currency and the
// conversion rate table. Implementations return the documented defaults for
// users that never saved anything.
type SettingsStore interface {
	BaseCurrency(ctx context.Context, userID string) (domain.CurrencyCode, error)
	SetBaseCurrency(ctx context.Context, userID string, code domain.CurrencyCode) error
	Rates(ctx context.Context, userID string) (domain.RateTable, error)
	SetRates(ctx context.Context, userID string, rates domain.RateTable) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Mailer sends reminder notifications.
type Mailer interface {
	SendReminder(ctx context.Context, to string, reminder *domain.Reminder) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

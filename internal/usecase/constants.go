package usecase

import "time"

const (
	// UpcomingReminderLimit caps how many upcoming reminders the dashboard
	// shows.
	UpcomingReminderLimit = 5

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)

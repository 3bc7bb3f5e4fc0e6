package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/stefanv/moneta/internal/domain"
	"github.com/stefanv/moneta/internal/infrastructure/metrics"
)

// ReminderUseCase handles reminder business logic.
type ReminderUseCase struct {
	reminderRepo ReminderRepository
	userRepo     UserRepository
	mailer       Mailer
	idGen        IDGenerator
	metrics      *metrics.Metrics
}

// NewReminderUseCase creates a new ReminderUseCase. metrics may be nil.
func NewReminderUseCase(
	reminderRepo ReminderRepository,
	userRepo UserRepository,
	mailer Mailer,
	idGen IDGenerator,
	m *metrics.Metrics,
) *ReminderUseCase {
	return &ReminderUseCase{
		reminderRepo: reminderRepo,
		userRepo:     userRepo,
		mailer:       mailer,
		idGen:        idGen,
		metrics:      m,
	}
}

// AddReminderInput represents input for creating a reminder.
type AddReminderInput struct {
	UserID    string
	Date      string
	Time      string
	Message   string
	SendEmail bool
}

// AddReminder creates a new reminder.
func (uc *ReminderUseCase) AddReminder(ctx context.Context, input AddReminderInput) (*domain.Reminder, error) {
	reminder := &domain.Reminder{
		ID:        uc.idGen.Generate(),
		UserID:    input.UserID,
		Date:      input.Date,
		Time:      input.Time,
		Message:   input.Message,
		SendEmail: input.SendEmail,
		CreatedAt: time.Now().UTC(),
	}

	if err := domain.ValidateReminder(reminder); err != nil {
		return nil, err
	}

	if err := uc.reminderRepo.Create(ctx, reminder); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.RemindersCreated.Inc()
	}

	return reminder, nil
}

// DeleteReminder removes a reminder owned by the user.
func (uc *ReminderUseCase) DeleteReminder(ctx context.Context, id, userID string) error {
	reminder, err := uc.reminderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if reminder.UserID != userID {
		return domain.ErrReminderNotFound
	}

	return uc.reminderRepo.Delete(ctx, id)
}

// ListReminders returns all of the user's reminders.
func (uc *ReminderUseCase) ListReminders(ctx context.Context, userID string) ([]*domain.Reminder, error) {
	return uc.reminderRepo.ListByUser(ctx, userID)
}

// UpcomingReminders returns the next reminders due at or after now, soonest
// first, capped at UpcomingReminderLimit. Reminders with an unparseable
// date are skipped.
func (uc *ReminderUseCase) UpcomingReminders(ctx context.Context, userID string, now time.Time) ([]*domain.Reminder, error) {
	reminders, err := uc.reminderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	type dated struct {
		reminder *domain.Reminder
		due      time.Time
	}

	upcoming := make([]dated, 0, len(reminders))
	for _, r := range reminders {
		due, err := r.DueAt()
		if err != nil {
			continue
		}
		if due.Before(now) {
			continue
		}
		upcoming = append(upcoming, dated{reminder: r, due: due})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].due.Before(upcoming[j].due)
	})

	if len(upcoming) > UpcomingReminderLimit {
		upcoming = upcoming[:UpcomingReminderLimit]
	}

	out := make([]*domain.Reminder, len(upcoming))
	for i, d := range upcoming {
		out[i] = d.reminder
	}

	return out, nil
}

// SendDue emails every due reminder that has not been notified yet and marks
// it as sent. Failures on one reminder do not block the rest; the first
// error is returned after the full pass.
func (uc *ReminderUseCase) SendDue(ctx context.Context, now time.Time) (int, error) {
	due, err := uc.reminderRepo.ListDue(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	var firstErr error

	for _, r := range due {
		at, err := r.DueAt()
		if err != nil || at.After(now) {
			continue
		}

		user, err := uc.userRepo.GetByID(ctx, r.UserID)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		if err := uc.mailer.SendReminder(ctx, user.Email, r); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		if err := uc.reminderRepo.MarkNotified(ctx, r.ID, now); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		sent++
	}

	return sent, firstErr
}

package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stefanv/moneta/internal/aggregate"
	"github.com/stefanv/moneta/internal/domain"
	"github.com/stefanv/moneta/internal/infrastructure/metrics"
)

// EntryUseCase handles income and expense entry business logic.
type EntryUseCase struct {
	entryRepo EntryRepository
	goalRepo  GoalRepository
	settings  SettingsStore
	idGen     IDGenerator
	hub       *StreamHub
	metrics   *metrics.Metrics
}

// NewEntryUseCase creates a new EntryUseCase. metrics may be nil.
func NewEntryUseCase(
	entryRepo EntryRepository,
	goalRepo GoalRepository,
	settings SettingsStore,
	idGen IDGenerator,
	hub *StreamHub,
	m *metrics.Metrics,
) *EntryUseCase {
	return &EntryUseCase{
		entryRepo: entryRepo,
		goalRepo:  goalRepo,
		settings:  settings,
		idGen:     idGen,
		hub:       hub,
		metrics:   m,
	}
}

// AddEntryInput represents input for recording an entry.
type AddEntryInput struct {
	UserID      string
	Amount      decimal.Decimal
	Type        domain.EntryType
	Currency    domain.CurrencyCode
	GoalID      string
	Description string
}

// AddEntry records a new income or expense entry.
func (uc *EntryUseCase) AddEntry(ctx context.Context, input AddEntryInput) (*domain.Entry, error) {
	entry := &domain.Entry{
		ID:          uc.idGen.Generate(),
		UserID:      input.UserID,
		Amount:      input.Amount,
		Type:        input.Type,
		Currency:    input.Currency,
		GoalID:      input.GoalID,
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := domain.ValidateEntry(entry); err != nil {
		return nil, err
	}

	if input.GoalID != "" {
		if err := uc.checkGoalLink(ctx, input.UserID, input.GoalID); err != nil {
			return nil, err
		}
	}

	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesCreated.Inc()
		amount, _ := entry.Amount.Float64()
		uc.metrics.EntryAmount.WithLabelValues(string(entry.Type), string(entry.Currency)).Observe(amount)
	}

	uc.republish(ctx, input.UserID)

	return entry, nil
}

// UpdateEntryInput represents input for updating an entry. Nil fields keep
// their current value.
type UpdateEntryInput struct {
	ID          string
	UserID      string
	Amount      *decimal.Decimal
	Type        *domain.EntryType
	Currency    *domain.CurrencyCode
	GoalID      *string
	Description *string
}

// UpdateEntry modifies an existing entry owned by the user.
func (uc *EntryUseCase) UpdateEntry(ctx context.Context, input UpdateEntryInput) (*domain.Entry, error) {
	entry, err := uc.getOwned(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		entry.Amount = *input.Amount
	}

	if input.Type != nil {
		entry.Type = *input.Type
	}

	if input.Currency != nil {
		entry.Currency = *input.Currency
	}

	if input.GoalID != nil {
		if *input.GoalID != "" {
			if err := uc.checkGoalLink(ctx, input.UserID, *input.GoalID); err != nil {
				return nil, err
			}
		}
		entry.GoalID = *input.GoalID
	}

	if input.Description != nil {
		entry.Description = *input.Description
	}

	if err := domain.ValidateEntry(entry); err != nil {
		return nil, err
	}

	if err := uc.entryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesUpdated.Inc()
	}

	uc.republish(ctx, input.UserID)

	return entry, nil
}

// DeleteEntry removes an entry owned by the user.
func (uc *EntryUseCase) DeleteEntry(ctx context.Context, id, userID string) error {
	if _, err := uc.getOwned(ctx, id, userID); err != nil {
		return err
	}

	if err := uc.entryRepo.Delete(ctx, id); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesDeleted.Inc()
	}

	uc.republish(ctx, userID)

	return nil
}

// ListEntries returns the user's entries matching the filter.
func (uc *EntryUseCase) ListEntries(ctx context.Context, userID string, filter aggregate.EntryFilter) ([]*domain.Entry, error) {
	entries, err := uc.entryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return aggregate.FilterEntries(entries, filter), nil
}

// Totals sums the user's entries in their base currency.
func (uc *EntryUseCase) Totals(ctx context.Context, userID string) (aggregate.Totals, error) {
	entries, rates, base, err := uc.loadConversionState(ctx, userID)
	if err != nil {
		return aggregate.Totals{}, err
	}

	return aggregate.ComputeTotals(entries, rates, base), nil
}

// MonthlyTotals sums the current calendar month's entries in the user's base
// currency.
func (uc *EntryUseCase) MonthlyTotals(ctx context.Context, userID string) (aggregate.Totals, error) {
	entries, rates, base, err := uc.loadConversionState(ctx, userID)
	if err != nil {
		return aggregate.Totals{}, err
	}

	return aggregate.MonthlyTotals(entries, rates, base, time.Now().UTC()), nil
}

func (uc *EntryUseCase) loadConversionState(ctx context.Context, userID string) ([]*domain.Entry, domain.RateTable, domain.CurrencyCode, error) {
	entries, err := uc.entryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, "", err
	}

	rates, err := uc.settings.Rates(ctx, userID)
	if err != nil {
		return nil, nil, "", err
	}

	base, err := uc.settings.BaseCurrency(ctx, userID)
	if err != nil {
		return nil, nil, "", err
	}

	return entries, rates, base, nil
}

func (uc *EntryUseCase) getOwned(ctx context.Context, id, userID string) (*domain.Entry, error) {
	entry, err := uc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Foreign entries are indistinguishable from missing ones.
	if entry.UserID != userID {
		return nil, domain.ErrEntryNotFound
	}

	return entry, nil
}

func (uc *EntryUseCase) checkGoalLink(ctx context.Context, userID, goalID string) error {
	goal, err := uc.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		return err
	}

	if goal.UserID != userID {
		return domain.ErrGoalNotFound
	}

	return nil
}

// republish refreshes the user's live entry sequence. The mutation has
// already committed, so a failed reload only delays stream consumers until
// the next write.
func (uc *EntryUseCase) republish(ctx context.Context, userID string) {
	entries, err := uc.entryRepo.ListByUser(ctx, userID)
	if err != nil {
		return
	}

	uc.hub.For(userID).Entries.Publish(entries)
}

package usecase

import (
	"context"
	"fmt"

	"github.com/stefanv/moneta/internal/domain"
	"github.com/stefanv/moneta/internal/infrastructure/metrics"
)

// SettingsUseCase handles base currency and conversion rate settings.
type SettingsUseCase struct {
	store   SettingsStore
	hub     *StreamHub
	metrics *metrics.Metrics
}

// NewSettingsUseCase creates a new SettingsUseCase. metrics may be nil.
func NewSettingsUseCase(store SettingsStore, hub *StreamHub, m *metrics.Metrics) *SettingsUseCase {
	return &SettingsUseCase{
		store:   store,
		hub:     hub,
		metrics: m,
	}
}

// BaseCurrency returns the user's base currency, defaulting when unset.
func (uc *SettingsUseCase) BaseCurrency(ctx context.Context, userID string) (domain.CurrencyCode, error) {
	return uc.store.BaseCurrency(ctx, userID)
}

// SetBaseCurrency stores the user's base currency and republishes it to the
// live streams.
func (uc *SettingsUseCase) SetBaseCurrency(ctx context.Context, userID string, code domain.CurrencyCode) error {
	if !code.IsValid() {
		return fmt.Errorf("%w: %s", domain.ErrInvalidCurrency, code)
	}

	if err := uc.store.SetBaseCurrency(ctx, userID, code); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.SettingsChanges.WithLabelValues("base_currency").Inc()
	}

	uc.hub.For(userID).Base.Publish(code)

	return nil
}

// Rates returns the user's conversion rate table, defaulting when unset.
func (uc *SettingsUseCase) Rates(ctx context.Context, userID string) (domain.RateTable, error) {
	return uc.store.Rates(ctx, userID)
}

// SetRates validates and stores the user's conversion rate table and
// republishes it to the live streams.
func (uc *SettingsUseCase) SetRates(ctx context.Context, userID string, rates domain.RateTable) error {
	if err := rates.Validate(); err != nil {
		return err
	}

	if err := uc.store.SetRates(ctx, userID, rates); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.SettingsChanges.WithLabelValues("rates").Inc()
	}

	uc.hub.For(userID).Rates.Publish(rates)

	return nil
}

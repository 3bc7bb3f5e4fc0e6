package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/stefanv/moneta/internal/domain"
)

// SettingsStore implements usecase.SettingsStore using Redis. Settings are
// tiny and read on every dashboard request, so they live here instead of
// Postgres. A user with no saved settings gets the documented defaults.
type SettingsStore struct {
	client *redis.Client
}

// NewSettingsStore creates a new SettingsStore.
func NewSettingsStore(client *redis.Client) *SettingsStore {
	return &SettingsStore{client: client}
}

func baseCurrencyKey(userID string) string {
	return fmt.Sprintf("settings:%s:base_currency", userID)
}

func ratesKey(userID string) string {
	return fmt.Sprintf("settings:%s:fx_rates", userID)
}

// BaseCurrency returns the user's saved base currency, or the default.
func (s *SettingsStore) BaseCurrency(ctx context.Context, userID string) (domain.CurrencyCode, error) {
	val, err := s.client.Get(ctx, baseCurrencyKey(userID)).Result()
	if err == redis.Nil {
		return domain.DefaultBaseCurrency, nil
	}
	if err != nil {
		return "", err
	}

	code := domain.CurrencyCode(val)
	if !code.IsValid() {
		// A stale or corrupted value must not break the dashboard.
		return domain.DefaultBaseCurrency, nil
	}

	return code, nil
}

// SetBaseCurrency saves the user's base currency. No TTL: settings live
// until overwritten.
func (s *SettingsStore) SetBaseCurrency(ctx context.Context, userID string, code domain.CurrencyCode) error {
	return s.client.Set(ctx, baseCurrencyKey(userID), string(code), 0).Err()
}

// Rates returns the user's saved rate table, or the defaults.
func (s *SettingsStore) Rates(ctx context.Context, userID string) (domain.RateTable, error) {
	val, err := s.client.Get(ctx, ratesKey(userID)).Bytes()
	if err == redis.Nil {
		return domain.DefaultRates(), nil
	}
	if err != nil {
		return nil, err
	}

	var raw map[domain.CurrencyCode]string
	if err := json.Unmarshal(val, &raw); err != nil {
		return domain.DefaultRates(), nil
	}

	rates := make(domain.RateTable, len(raw))
	for code, rate := range raw {
		d, err := decimal.NewFromString(rate)
		if err != nil {
			return domain.DefaultRates(), nil
		}
		rates[code] = d
	}

	if err := rates.Validate(); err != nil {
		return domain.DefaultRates(), nil
	}

	return rates, nil
}

// SetRates saves the user's rate table as a JSON object of decimal strings.
func (s *SettingsStore) SetRates(ctx context.Context, userID string, rates domain.RateTable) error {
	raw := make(map[domain.CurrencyCode]string, len(rates))
	for code, rate := range rates {
		raw[code] = rate.String()
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, ratesKey(userID), data, 0).Err()
}

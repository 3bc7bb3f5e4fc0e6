package redis

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/stefanv/moneta/internal/domain"
)

func TestSettingsStore_DefaultsWhenUnset(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewSettingsStore(client)
	ctx := context.Background()

	base, err := store.BaseCurrency(ctx, "user-1")
	if err != nil {
		t.Fatalf("BaseCurrency failed: %v", err)
	}
	if base != domain.DefaultBaseCurrency {
		t.Errorf("expected default base %s, got %s", domain.DefaultBaseCurrency, base)
	}

	rates, err := store.Rates(ctx, "user-1")
	if err != nil {
		t.Fatalf("Rates failed: %v", err)
	}
	if !rates[domain.USD].Equal(decimal.RequireFromString("1.08")) {
		t.Errorf("expected default USD rate 1.08, got %s", rates[domain.USD])
	}
}

func TestSettingsStore_BaseCurrencyRoundTrip(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewSettingsStore(client)
	ctx := context.Background()

	if err := store.SetBaseCurrency(ctx, "user-1", domain.EUR); err != nil {
		t.Fatalf("SetBaseCurrency failed: %v", err)
	}

	base, err := store.BaseCurrency(ctx, "user-1")
	if err != nil {
		t.Fatalf("BaseCurrency failed: %v", err)
	}
	if base != domain.EUR {
		t.Errorf("expected EUR, got %s", base)
	}

	// settings are per user
	other, err := store.BaseCurrency(ctx, "user-2")
	if err != nil {
		t.Fatalf("BaseCurrency failed: %v", err)
	}
	if other != domain.DefaultBaseCurrency {
		t.Errorf("expected user-2 untouched, got %s", other)
	}
}

func TestSettingsStore_RatesRoundTrip(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewSettingsStore(client)
	ctx := context.Background()

	saved := domain.RateTable{
		domain.EUR: decimal.NewFromInt(1),
		domain.USD: decimal.RequireFromString("1.12"),
		domain.RSD: decimal.RequireFromString("117.5"),
	}

	if err := store.SetRates(ctx, "user-1", saved); err != nil {
		t.Fatalf("SetRates failed: %v", err)
	}

	rates, err := store.Rates(ctx, "user-1")
	if err != nil {
		t.Fatalf("Rates failed: %v", err)
	}

	for code, want := range saved {
		if !rates[code].Equal(want) {
			t.Errorf("rate %s: expected %s, got %s", code, want, rates[code])
		}
	}
}

func TestSettingsStore_CorruptedValuesFallBack(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewSettingsStore(client)
	ctx := context.Background()

	mr.Set(baseCurrencyKey("user-1"), "DOGE")
	mr.Set(ratesKey("user-1"), "{not json")

	base, err := store.BaseCurrency(ctx, "user-1")
	if err != nil {
		t.Fatalf("BaseCurrency failed: %v", err)
	}
	if base != domain.DefaultBaseCurrency {
		t.Errorf("expected fallback to default base, got %s", base)
	}

	rates, err := store.Rates(ctx, "user-1")
	if err != nil {
		t.Fatalf("Rates failed: %v", err)
	}
	if err := rates.Validate(); err != nil {
		t.Errorf("expected valid fallback rates, got %v", err)
	}
}

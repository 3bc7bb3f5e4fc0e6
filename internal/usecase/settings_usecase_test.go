package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/stefanv/moneta/internal/domain"
	"github.com/stefanv/moneta/internal/usecase"
	"github.com/stefanv/moneta/internal/usecase/mocks"
)

func TestSettingsUseCase_SetBaseCurrency(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockSettingsStore(ctrl)
	hub := usecase.NewStreamHub()
	uc := usecase.NewSettingsUseCase(store, hub, nil)

	store.EXPECT().SetBaseCurrency(gomock.Any(), "user-1", domain.EUR).Return(nil)

	if err := uc.SetBaseCurrency(context.Background(), "user-1", domain.EUR); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	base, ok := hub.For("user-1").Base.Latest()
	if !ok || base != domain.EUR {
		t.Errorf("expected EUR published to base stream, got %v (ok=%v)", base, ok)
	}
}

func TestSettingsUseCase_SetBaseCurrencyRejectsUnknown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockSettingsStore(ctrl)
	uc := usecase.NewSettingsUseCase(store, usecase.NewStreamHub(), nil)

	err := uc.SetBaseCurrency(context.Background(), "user-1", "CHF")
	if !errors.Is(err, domain.ErrInvalidCurrency) {
		t.Errorf("expected ErrInvalidCurrency, got %v", err)
	}
}

func TestSettingsUseCase_SetRates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockSettingsStore(ctrl)
	hub := usecase.NewStreamHub()
	uc := usecase.NewSettingsUseCase(store, hub, nil)

	rates := domain.RateTable{
		domain.EUR: decimal.NewFromInt(1),
		domain.USD: decimal.NewFromFloat(1.1),
		domain.RSD: decimal.NewFromFloat(117.5),
	}

	store.EXPECT().SetRates(gomock.Any(), "user-1", rates).Return(nil)

	if err := uc.SetRates(context.Background(), "user-1", rates); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	published, ok := hub.For("user-1").Rates.Latest()
	if !ok {
		t.Fatal("expected rates published to stream")
	}
	if !published[domain.USD].Equal(decimal.NewFromFloat(1.1)) {
		t.Errorf("expected USD rate 1.1, got %s", published[domain.USD])
	}
}

func TestSettingsUseCase_SetRatesValidation(t *testing.T) {
	tests := []struct {
		name    string
		rates   domain.RateTable
		wantErr error
	}{
		{
			name: "reference rate not one",
			rates: domain.RateTable{
				domain.EUR: decimal.NewFromInt(2),
				domain.USD: decimal.NewFromFloat(1.1),
			},
			wantErr: domain.ErrReferenceRateNotOne,
		},
		{
			name: "non-positive rate",
			rates: domain.RateTable{
				domain.EUR: decimal.NewFromInt(1),
				domain.USD: decimal.Zero,
			},
			wantErr: domain.ErrNonPositiveRate,
		},
		{
			name: "unknown currency",
			rates: domain.RateTable{
				domain.EUR: decimal.NewFromInt(1),
				"CHF":      decimal.NewFromFloat(0.95),
			},
			wantErr: domain.ErrInvalidCurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := mocks.NewMockSettingsStore(ctrl)
			uc := usecase.NewSettingsUseCase(store, usecase.NewStreamHub(), nil)

			err := uc.SetRates(context.Background(), "user-1", tt.rates)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

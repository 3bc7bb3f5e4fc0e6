package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/stefanv/moneta/internal/aggregate"
	"github.com/stefanv/moneta/internal/domain"
	"github.com/stefanv/moneta/internal/usecase"
	"github.com/stefanv/moneta/internal/usecase/mocks"
)

func newGoalUseCase(ctrl *gomock.Controller) (*usecase.GoalUseCase, *mocks.MockGoalRepository, *mocks.MockEntryRepository, *mocks.MockSettingsStore) {
	goalRepo := mocks.NewMockGoalRepository(ctrl)
	entryRepo := mocks.NewMockEntryRepository(ctrl)
	settings := mocks.NewMockSettingsStore(ctrl)
	idGen := mocks.NewMockIDGenerator(ctrl)
	idGen.EXPECT().Generate().Return("goal-1").AnyTimes()

	uc := usecase.NewGoalUseCase(goalRepo, entryRepo, settings, idGen, usecase.NewStreamHub(), nil)
	return uc, goalRepo, entryRepo, settings
}

func TestGoalUseCase_CreateGoal(t *testing.T) {
	tests := []struct {
		name       string
		input      usecase.CreateGoalInput
		setupMocks func(*mocks.MockGoalRepository)
		wantErr    error
	}{
		{
			name: "successful creation",
			input: usecase.CreateGoalInput{
				UserID:   "user-1",
				Name:     "vacation",
				Target:   decimal.NewFromInt(1000),
				Currency: domain.EUR,
			},
			setupMocks: func(repo *mocks.MockGoalRepository) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
				repo.EXPECT().ListByUser(gomock.Any(), "user-1").Return(nil, nil)
			},
		},
		{
			name: "empty name",
			input: usecase.CreateGoalInput{
				UserID:   "user-1",
				Name:     "   ",
				Target:   decimal.NewFromInt(1000),
				Currency: domain.EUR,
			},
			setupMocks: func(*mocks.MockGoalRepository) {},
			wantErr:    domain.ErrInvalidGoalName,
		},
		{
			name: "zero target",
			input: usecase.CreateGoalInput{
				UserID:   "user-1",
				Name:     "vacation",
				Target:   decimal.Zero,
				Currency: domain.EUR,
			},
			setupMocks: func(*mocks.MockGoalRepository) {},
			wantErr:    domain.ErrInvalidTarget,
		},
		{
			name: "unknown currency",
			input: usecase.CreateGoalInput{
				UserID:   "user-1",
				Name:     "vacation",
				Target:   decimal.NewFromInt(1000),
				Currency: "CHF",
			},
			setupMocks: func(*mocks.MockGoalRepository) {},
			wantErr:    domain.ErrInvalidCurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			uc, goalRepo, _, _ := newGoalUseCase(ctrl)
			tt.setupMocks(goalRepo)

			goal, err := uc.CreateGoal(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if goal.ID != "goal-1" {
				t.Errorf("expected generated id, got %q", goal.ID)
			}
		})
	}
}

func TestGoalUseCase_DeleteGoalRejectsForeign(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, goalRepo, _, _ := newGoalUseCase(ctrl)

	goalRepo.EXPECT().GetByID(gomock.Any(), "goal-1").Return(&domain.Goal{
		ID:     "goal-1",
		UserID: "someone-else",
	}, nil)

	err := uc.DeleteGoal(context.Background(), "goal-1", "user-1")
	if !errors.Is(err, domain.ErrGoalNotFound) {
		t.Errorf("expected ErrGoalNotFound, got %v", err)
	}
}

func TestGoalUseCase_GoalsWithProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, goalRepo, entryRepo, settings := newGoalUseCase(ctrl)

	goalRepo.EXPECT().ListByUser(gomock.Any(), "user-1").Return([]*domain.Goal{
		{ID: "g1", UserID: "user-1", Name: "half", Target: decimal.NewFromInt(200), Currency: domain.EUR},
		{ID: "g2", UserID: "user-1", Name: "full", Target: decimal.NewFromInt(100), Currency: domain.EUR},
	}, nil)
	entryRepo.EXPECT().ListByUser(gomock.Any(), "user-1").Return([]*domain.Entry{
		{ID: "e1", Type: domain.EntryIncome, Amount: decimal.NewFromInt(100), Currency: domain.EUR, GoalID: "g1"},
		{ID: "e2", Type: domain.EntryIncome, Amount: decimal.NewFromInt(100), Currency: domain.EUR, GoalID: "g2"},
		{ID: "e3", Type: domain.EntryExpense, Amount: decimal.NewFromInt(50), Currency: domain.EUR, GoalID: "g1"},
	}, nil)
	settings.EXPECT().Rates(gomock.Any(), "user-1").Return(domain.DefaultRates(), nil)

	views, err := uc.GoalsWithProgress(context.Background(), usecase.GoalProgressInput{
		UserID: "user-1",
		Sort:   aggregate.SortByProgress,
		Desc:   true,
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}

	// descending by progress: the fully funded goal first
	if views[0].ID != "g2" {
		t.Errorf("expected g2 first, got %s", views[0].ID)
	}
	if !views[0].Percent.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected 100%%, got %s", views[0].Percent)
	}
	if !views[1].Percent.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected 50%%, got %s", views[1].Percent)
	}
}

func TestGoalUseCase_GoalsWithProgressStatusFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, goalRepo, entryRepo, settings := newGoalUseCase(ctrl)

	goalRepo.EXPECT().ListByUser(gomock.Any(), "user-1").Return([]*domain.Goal{
		{ID: "g1", UserID: "user-1", Name: "started", Target: decimal.NewFromInt(200), Currency: domain.EUR},
		{ID: "g2", UserID: "user-1", Name: "untouched", Target: decimal.NewFromInt(100), Currency: domain.EUR},
	}, nil)
	entryRepo.EXPECT().ListByUser(gomock.Any(), "user-1").Return([]*domain.Entry{
		{ID: "e1", Type: domain.EntryIncome, Amount: decimal.NewFromInt(10), Currency: domain.EUR, GoalID: "g1"},
	}, nil)
	settings.EXPECT().Rates(gomock.Any(), "user-1").Return(domain.DefaultRates(), nil)

	views, err := uc.GoalsWithProgress(context.Background(), usecase.GoalProgressInput{
		UserID: "user-1",
		Status: aggregate.StatusNotStarted,
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(views) != 1 || views[0].ID != "g2" {
		t.Errorf("expected only g2, got %v", views)
	}
}

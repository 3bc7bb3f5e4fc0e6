package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stefanv/moneta/internal/aggregate"
	"github.com/stefanv/moneta/internal/domain"
	"github.com/stefanv/moneta/internal/infrastructure/metrics"
)

// GoalUseCase handles savings goal business logic.
type GoalUseCase struct {
	goalRepo  GoalRepository
	entryRepo EntryRepository
	settings  SettingsStore
	idGen     IDGenerator
	hub       *StreamHub
	metrics   *metrics.Metrics
}

// NewGoalUseCase creates a new GoalUseCase. metrics may be nil.
func NewGoalUseCase(
	goalRepo GoalRepository,
	entryRepo EntryRepository,
	settings SettingsStore,
	idGen IDGenerator,
	hub *StreamHub,
	m *metrics.Metrics,
) *GoalUseCase {
	return &GoalUseCase{
		goalRepo:  goalRepo,
		entryRepo: entryRepo,
		settings:  settings,
		idGen:     idGen,
		hub:       hub,
		metrics:   m,
	}
}

// CreateGoalInput represents input for creating a goal.
type CreateGoalInput struct {
	UserID   string
	Name     string
	Target   decimal.Decimal
	Currency domain.CurrencyCode
}

// CreateGoal creates a new savings goal.
func (uc *GoalUseCase) CreateGoal(ctx context.Context, input CreateGoalInput) (*domain.Goal, error) {
	goal := &domain.Goal{
		ID:        uc.idGen.Generate(),
		UserID:    input.UserID,
		Name:      input.Name,
		Target:    input.Target,
		Currency:  input.Currency,
		CreatedAt: time.Now().UTC(),
	}

	if err := domain.ValidateGoal(goal); err != nil {
		return nil, err
	}

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.GoalsCreated.Inc()
	}

	uc.republish(ctx, input.UserID)

	return goal, nil
}

// UpdateGoalInput represents input for updating a goal. Nil fields keep
// their current value.
type UpdateGoalInput struct {
	ID       string
	UserID   string
	Name     *string
	Target   *decimal.Decimal
	Currency *domain.CurrencyCode
}

// UpdateGoal modifies an existing goal owned by the user.
func (uc *GoalUseCase) UpdateGoal(ctx context.Context, input UpdateGoalInput) (*domain.Goal, error) {
	goal, err := uc.getOwned(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		goal.Name = *input.Name
	}

	if input.Target != nil {
		goal.Target = *input.Target
	}

	if input.Currency != nil {
		goal.Currency = *input.Currency
	}

	if err := domain.ValidateGoal(goal); err != nil {
		return nil, err
	}

	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, err
	}

	uc.republish(ctx, input.UserID)

	return goal, nil
}

// DeleteGoal removes a goal owned by the user. Linked entries keep their
// amounts but stop counting toward any goal.
func (uc *GoalUseCase) DeleteGoal(ctx context.Context, id, userID string) error {
	if _, err := uc.getOwned(ctx, id, userID); err != nil {
		return err
	}

	if err := uc.goalRepo.Delete(ctx, id); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.GoalsDeleted.Inc()
	}

	uc.republish(ctx, userID)

	return nil
}

// GetGoal returns a goal owned by the user.
func (uc *GoalUseCase) GetGoal(ctx context.Context, id, userID string) (*domain.Goal, error) {
	return uc.getOwned(ctx, id, userID)
}

// GoalProgressInput selects how goal views are filtered and ordered.
type GoalProgressInput struct {
	UserID string
	Sort   aggregate.SortKey
	Desc   bool
	Status aggregate.StatusFilter
}

// GoalsWithProgress returns the user's goals with derived progress, filtered
// and sorted per the input.
func (uc *GoalUseCase) GoalsWithProgress(ctx context.Context, input GoalProgressInput) ([]*aggregate.GoalView, error) {
	goals, err := uc.goalRepo.ListByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.ListByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	rates, err := uc.settings.Rates(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	views := aggregate.GoalViews(goals, entries, rates)
	views = aggregate.FilterGoalViews(views, input.Status)

	return aggregate.SortGoalViews(views, input.Sort, input.Desc), nil
}

func (uc *GoalUseCase) getOwned(ctx context.Context, id, userID string) (*domain.Goal, error) {
	goal, err := uc.goalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if goal.UserID != userID {
		return nil, domain.ErrGoalNotFound
	}

	return goal, nil
}

func (uc *GoalUseCase) republish(ctx context.Context, userID string) {
	goals, err := uc.goalRepo.ListByUser(ctx, userID)
	if err != nil {
		return
	}

	uc.hub.For(userID).Goals.Publish(goals)
}

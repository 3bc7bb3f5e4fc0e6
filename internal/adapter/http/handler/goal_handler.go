package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stefanv/moneta/internal/adapter/http/dto"
	"github.com/stefanv/moneta/internal/adapter/http/middleware"
	"github.com/stefanv/moneta/internal/aggregate"
	"github.com/stefanv/moneta/internal/domain"
	"github.com/stefanv/moneta/internal/usecase"
)

// GoalService defines the goal operations the handler needs.
type GoalService interface {
	CreateGoal(ctx context.Context, input usecase.CreateGoalInput) (*domain.Goal, error)
	UpdateGoal(ctx context.Context, input usecase.UpdateGoalInput) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, id, userID string) error
	GetGoal(ctx context.Context, id, userID string) (*domain.Goal, error)
	GoalsWithProgress(ctx context.Context, input usecase.GoalProgressInput) ([]*aggregate.GoalView, error)
}

// GoalHandler handles goal-related HTTP requests.
type GoalHandler struct {
	goals GoalService
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goals GoalService) *GoalHandler {
	return &GoalHandler{goals: goals}
}

// Create creates a new savings goal.
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	goal, err := h.goals.CreateGoal(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create goal", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.GoalFromDomain(goal))
}

// Update modifies an existing goal.
func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing goal ID", "")
		return
	}

	var req dto.UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	goal, err := h.goals.UpdateGoal(r.Context(), req.ToUseCaseInput(id, userID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update goal", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GoalFromDomain(goal))
}

// Delete removes a goal. Entries that pointed at it stay, unlinked.
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing goal ID", "")
		return
	}

	if err := h.goals.DeleteGoal(r.Context(), id, userID); err != nil {
		writeError(w, mapDomainError(err), "failed to delete goal", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get returns a single goal.
func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing goal ID", "")
		return
	}

	goal, err := h.goals.GetGoal(r.Context(), id, userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get goal", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GoalFromDomain(goal))
}

// List returns the user's goals with derived progress. Sorting and status
// filtering come from the sort, order and status query parameters.
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	q := r.URL.Query()
	views, err := h.goals.GoalsWithProgress(r.Context(), usecase.GoalProgressInput{
		UserID: userID,
		Sort:   aggregate.SortKey(q.Get("sort")),
		Desc:   q.Get("order") == "desc",
		Status: aggregate.StatusFilter(q.Get("status")),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list goals", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GoalViewsFromAggregate(views))
}

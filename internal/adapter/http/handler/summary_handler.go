package handler

import (
	"net/http"

	"github.com/stefanv/moneta/internal/adapter/http/dto"
	"github.com/stefanv/moneta/internal/adapter/http/middleware"
	"github.com/stefanv/moneta/internal/usecase"
)

// SummaryHandler serves converted income, expense and savings totals.
type SummaryHandler struct {
	entryUC *usecase.EntryUseCase
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(entryUC *usecase.EntryUseCase) *SummaryHandler {
	return &SummaryHandler{entryUC: entryUC}
}

// Totals returns all-time totals in the user's base currency.
func (h *SummaryHandler) Totals(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	totals, err := h.entryUC.Totals(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute totals", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TotalsFromAggregate(totals))
}

// MonthlyTotals returns totals restricted to the current calendar month.
func (h *SummaryHandler) MonthlyTotals(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	totals, err := h.entryUC.MonthlyTotals(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute monthly totals", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TotalsFromAggregate(totals))
}

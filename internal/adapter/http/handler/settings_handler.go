package handler

import (
	"encoding/json"
	"net/http"

	"github.com/stefanv/moneta/internal/adapter/http/dto"
	"github.com/stefanv/moneta/internal/adapter/http/middleware"
	"github.com/stefanv/moneta/internal/domain"
	"github.com/stefanv/moneta/internal/usecase"
)

// SettingsHandler handles currency settings endpoints.
type SettingsHandler struct {
	settingsUC *usecase.SettingsUseCase
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsUC *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{settingsUC: settingsUC}
}

// Get returns the user's base currency and conversion rates.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	base, err := h.settingsUC.BaseCurrency(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get settings", err.Error())
		return
	}

	rates, err := h.settingsUC.Rates(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get settings", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SettingsFromDomain(base, rates))
}

// SetBaseCurrency changes the currency all aggregates are displayed in.
func (h *SettingsHandler) SetBaseCurrency(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.SetBaseCurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	code := domain.CurrencyCode(req.Currency)
	if err := h.settingsUC.SetBaseCurrency(r.Context(), userID, code); err != nil {
		writeError(w, mapDomainError(err), "failed to set base currency", err.Error())
		return
	}

	rates, err := h.settingsUC.Rates(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get settings", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SettingsFromDomain(code, rates))
}

// SetRates replaces the conversion rate table.
func (h *SettingsHandler) SetRates(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.SetRatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	rates := req.ToRateTable()
	if err := h.settingsUC.SetRates(r.Context(), userID, rates); err != nil {
		writeError(w, mapDomainError(err), "failed to set rates", err.Error())
		return
	}

	base, err := h.settingsUC.BaseCurrency(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get settings", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SettingsFromDomain(base, rates))
}

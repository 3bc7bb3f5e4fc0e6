package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stefanv/moneta/internal/adapter/http/dto"
	"github.com/stefanv/moneta/internal/adapter/http/middleware"
	"github.com/stefanv/moneta/internal/usecase"
)

// ReminderHandler handles reminder-related HTTP requests.
type ReminderHandler struct {
	reminderUC *usecase.ReminderUseCase
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(reminderUC *usecase.ReminderUseCase) *ReminderHandler {
	return &ReminderHandler{reminderUC: reminderUC}
}

// Create creates a new reminder.
func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.AddReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	reminder, err := h.reminderUC.AddReminder(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create reminder", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ReminderFromDomain(reminder))
}

// Delete removes a reminder.
func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing reminder ID", "")
		return
	}

	if err := h.reminderUC.DeleteReminder(r.Context(), id, userID); err != nil {
		writeError(w, mapDomainError(err), "failed to delete reminder", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List returns all of the user's reminders.
func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	reminders, err := h.reminderUC.ListReminders(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list reminders", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RemindersFromDomain(reminders))
}

// Upcoming returns the next few reminders that have not come due yet.
func (h *ReminderHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	reminders, err := h.reminderUC.UpcomingReminders(r.Context(), userID, time.Now())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list upcoming reminders", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RemindersFromDomain(reminders))
}

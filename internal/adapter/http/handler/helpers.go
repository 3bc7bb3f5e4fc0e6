package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stefanv/moneta/internal/adapter/http/dto"
	"github.com/stefanv/moneta/internal/aggregate"
	"github.com/stefanv/moneta/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrEntryNotFound),
		errors.Is(err, domain.ErrGoalNotFound),
		errors.Is(err, domain.ErrReminderNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidEntryType),
		errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, domain.ErrInvalidGoalName),
		errors.Is(err, domain.ErrInvalidTarget),
		errors.Is(err, domain.ErrInvalidReminderDate),
		errors.Is(err, domain.ErrInvalidReminderTime),
		errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrReferenceRateNotOne),
		errors.Is(err, domain.ErrNonPositiveRate),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrPasswordTooWeak):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseEntryFilter reads entry filter predicates from query parameters.
func parseEntryFilter(r *http.Request) aggregate.EntryFilter {
	q := r.URL.Query()

	return aggregate.EntryFilter{
		Type:   domain.EntryType(q.Get("type")),
		Date:   q.Get("date"),
		GoalID: q.Get("goal_id"),
	}
}

// parseSelection reads the full view selection (entry filter plus goal
// sorting and status) from query parameters.
func parseSelection(r *http.Request) aggregate.Selection {
	q := r.URL.Query()

	return aggregate.Selection{
		Entries: parseEntryFilter(r),
		Sort:    aggregate.SortKey(q.Get("sort")),
		Desc:    q.Get("order") == "desc",
		Status:  aggregate.StatusFilter(q.Get("status")),
	}
}

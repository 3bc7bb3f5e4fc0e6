package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/stefanv/moneta/internal/adapter/http/dto"
	"github.com/stefanv/moneta/internal/adapter/http/middleware"
	"github.com/stefanv/moneta/internal/aggregate"
)

// DashboardService defines the dashboard operations the handler needs.
type DashboardService interface {
	Snapshot(ctx context.Context, userID string, sel aggregate.Selection) (aggregate.Snapshot, error)
	Watch(ctx context.Context, userID string, sel aggregate.Selection) (<-chan aggregate.Snapshot, func(), error)
}

// DashboardHandler serves the combined dashboard view, either as a one-shot
// snapshot or as a server-sent event stream that pushes a fresh snapshot on
// every change.
type DashboardHandler struct {
	dashboard DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboard DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Get returns one consistent snapshot of goals, totals and filtered entries.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	snap, err := h.dashboard.Snapshot(r.Context(), userID, parseSelection(r))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute dashboard", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DashboardFromSnapshot(snap))
}

// Stream pushes dashboard snapshots over server-sent events until the client
// disconnects.
func (h *DashboardHandler) Stream(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported", "")
		return
	}

	snapshots, stop, err := h.dashboard.Watch(r.Context(), userID, parseSelection(r))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to start dashboard stream", err.Error())
		return
	}
	defer stop()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case snap, ok := <-snapshots:
			if !ok {
				return
			}

			payload, err := json.Marshal(dto.DashboardFromSnapshot(snap))
			if err != nil {
				continue
			}

			fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/stefanv/moneta/internal/adapter/http/dto"
	"github.com/stefanv/moneta/internal/adapter/http/middleware"
	"github.com/stefanv/moneta/internal/aggregate"
	"github.com/stefanv/moneta/internal/domain"
	"github.com/stefanv/moneta/internal/usecase"
)

type entryServiceStub struct {
	addFn    func(ctx context.Context, input usecase.AddEntryInput) (*domain.Entry, error)
	updateFn func(ctx context.Context, input usecase.UpdateEntryInput) (*domain.Entry, error)
	deleteFn func(ctx context.Context, id, userID string) error
	listFn   func(ctx context.Context, userID string, filter aggregate.EntryFilter) ([]*domain.Entry, error)
}

func (s *entryServiceStub) AddEntry(ctx context.Context, input usecase.AddEntryInput) (*domain.Entry, error) {
	return s.addFn(ctx, input)
}

func (s *entryServiceStub) UpdateEntry(ctx context.Context, input usecase.UpdateEntryInput) (*domain.Entry, error) {
	return s.updateFn(ctx, input)
}

func (s *entryServiceStub) DeleteEntry(ctx context.Context, id, userID string) error {
	return s.deleteFn(ctx, id, userID)
}

func (s *entryServiceStub) ListEntries(ctx context.Context, userID string, filter aggregate.EntryFilter) ([]*domain.Entry, error) {
	return s.listFn(ctx, userID, filter)
}

func authedRequest(method, target string, body *bytes.Reader) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, body)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(middleware.WithUserID(req.Context(), "user-1"))
}

func TestEntryHandler_Create_Success(t *testing.T) {
	entry := &domain.Entry{
		ID:       "entry-1",
		UserID:   "user-1",
		Amount:   decimal.NewFromInt(120),
		Type:     domain.EntryExpense,
		Currency: domain.EUR,
	}

	var captured usecase.AddEntryInput
	handler := NewEntryHandler(&entryServiceStub{
		addFn: func(ctx context.Context, input usecase.AddEntryInput) (*domain.Entry, error) {
			captured = input
			return entry, nil
		},
	})

	body, _ := json.Marshal(dto.AddEntryRequest{
		Amount:   decimal.NewFromInt(120),
		Type:     "expense",
		Currency: "EUR",
	})

	req := authedRequest(http.MethodPost, "/api/v1/entries", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.UserID != "user-1" {
		t.Fatalf("expected user from context, got %q", captured.UserID)
	}
	if captured.Type != domain.EntryExpense || captured.Currency != domain.EUR {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.EntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "entry-1" {
		t.Fatalf("expected entry ID entry-1, got %s", resp.ID)
	}
}

func TestEntryHandler_Create_Unauthenticated(t *testing.T) {
	handler := NewEntryHandler(&entryServiceStub{
		addFn: func(ctx context.Context, input usecase.AddEntryInput) (*domain.Entry, error) {
			t.Fatal("AddEntry should not be called without a user")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestEntryHandler_Create_InvalidJSON(t *testing.T) {
	handler := NewEntryHandler(&entryServiceStub{
		addFn: func(ctx context.Context, input usecase.AddEntryInput) (*domain.Entry, error) {
			t.Fatal("AddEntry should not be called for invalid payload")
			return nil, nil
		},
	})

	req := authedRequest(http.MethodPost, "/api/v1/entries", bytes.NewReader([]byte("{invalid json")))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEntryHandler_Create_ValidationError(t *testing.T) {
	handler := NewEntryHandler(&entryServiceStub{
		addFn: func(ctx context.Context, input usecase.AddEntryInput) (*domain.Entry, error) {
			return nil, domain.ErrInvalidAmount
		},
	})

	body, _ := json.Marshal(dto.AddEntryRequest{Type: "expense", Currency: "EUR"})
	req := authedRequest(http.MethodPost, "/api/v1/entries", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEntryHandler_Update_NotFound(t *testing.T) {
	handler := NewEntryHandler(&entryServiceStub{
		updateFn: func(ctx context.Context, input usecase.UpdateEntryInput) (*domain.Entry, error) {
			return nil, domain.ErrEntryNotFound
		},
	})

	body, _ := json.Marshal(dto.UpdateEntryRequest{})
	req := authedRequest(http.MethodPut, "/api/v1/entries/entry-404", bytes.NewReader(body))
	req = withURLParam(req, "id", "entry-404")
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestEntryHandler_Delete_Success(t *testing.T) {
	var deletedID, deletedUser string
	handler := NewEntryHandler(&entryServiceStub{
		deleteFn: func(ctx context.Context, id, userID string) error {
			deletedID = id
			deletedUser = userID
			return nil
		},
	})

	req := authedRequest(http.MethodDelete, "/api/v1/entries/entry-1", nil)
	req = withURLParam(req, "id", "entry-1")
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deletedID != "entry-1" || deletedUser != "user-1" {
		t.Fatalf("unexpected delete args: %s %s", deletedID, deletedUser)
	}
}

func TestEntryHandler_List_PassesFilter(t *testing.T) {
	var captured aggregate.EntryFilter
	handler := NewEntryHandler(&entryServiceStub{
		listFn: func(ctx context.Context, userID string, filter aggregate.EntryFilter) ([]*domain.Entry, error) {
			captured = filter
			return []*domain.Entry{}, nil
		},
	})

	req := authedRequest(http.MethodGet, "/api/v1/entries?type=income&date=2026-08&goal_id=goal-1", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.Type != domain.EntryIncome || captured.Date != "2026-08" || captured.GoalID != "goal-1" {
		t.Fatalf("unexpected filter: %+v", captured)
	}
}

// withURLParam injects a chi route parameter into the request context.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

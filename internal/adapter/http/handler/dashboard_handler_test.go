package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stefanv/moneta/internal/adapter/http/dto"
	"github.com/stefanv/moneta/internal/adapter/http/middleware"
	"github.com/stefanv/moneta/internal/aggregate"
	"github.com/stefanv/moneta/internal/domain"
)

type dashboardServiceStub struct {
	snapshotFn func(ctx context.Context, userID string, sel aggregate.Selection) (aggregate.Snapshot, error)
	watchFn    func(ctx context.Context, userID string, sel aggregate.Selection) (<-chan aggregate.Snapshot, func(), error)
}

func (s *dashboardServiceStub) Snapshot(ctx context.Context, userID string, sel aggregate.Selection) (aggregate.Snapshot, error) {
	return s.snapshotFn(ctx, userID, sel)
}

func (s *dashboardServiceStub) Watch(ctx context.Context, userID string, sel aggregate.Selection) (<-chan aggregate.Snapshot, func(), error) {
	return s.watchFn(ctx, userID, sel)
}

func testSnapshot() aggregate.Snapshot {
	return aggregate.Snapshot{
		Goals: []*aggregate.GoalView{},
		Totals: aggregate.Totals{
			Income:  decimal.NewFromInt(1000),
			Expense: decimal.NewFromInt(300),
			Savings: decimal.NewFromInt(700),
			Base:    domain.RSD,
		},
		Monthly: aggregate.Totals{Base: domain.RSD},
		Entries: []*domain.Entry{},
	}
}

func TestDashboardHandler_Get(t *testing.T) {
	var captured aggregate.Selection
	handler := NewDashboardHandler(&dashboardServiceStub{
		snapshotFn: func(ctx context.Context, userID string, sel aggregate.Selection) (aggregate.Snapshot, error) {
			captured = sel
			return testSnapshot(), nil
		},
	})

	req := authedRequest(http.MethodGet, "/api/v1/dashboard?type=expense&sort=progress&order=desc", nil)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Entries.Type != domain.EntryExpense || captured.Sort != aggregate.SortByProgress || !captured.Desc {
		t.Fatalf("unexpected selection: %+v", captured)
	}

	var resp dto.DashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Totals.Savings.Equal(decimal.NewFromInt(700)) {
		t.Fatalf("expected savings 700, got %s", resp.Totals.Savings)
	}
}

func TestDashboardHandler_Get_Unauthenticated(t *testing.T) {
	handler := NewDashboardHandler(&dashboardServiceStub{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestDashboardHandler_Stream(t *testing.T) {
	ch := make(chan aggregate.Snapshot, 2)
	ch <- testSnapshot()

	stopped := make(chan struct{})
	handler := NewDashboardHandler(&dashboardServiceStub{
		watchFn: func(ctx context.Context, userID string, sel aggregate.Selection) (<-chan aggregate.Snapshot, func(), error) {
			return ch, func() { close(stopped) }, nil
		},
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(middleware.WithUserID(r.Context(), "user-1"))
		handler.Stream(w, r)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/dashboard/stream", nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("expected event stream content type, got %s", ct)
	}

	reader := bufio.NewReader(resp.Body)
	event := readEvent(t, reader)
	if !strings.Contains(event, `"savings":"700"`) {
		t.Fatalf("expected savings in event, got %s", event)
	}

	// Cancelling the request must release the watch.
	cancel()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected stop to be called after disconnect")
	}
}

// readEvent reads lines until the blank line that terminates an SSE event.
func readEvent(t *testing.T, r *bufio.Reader) string {
	t.Helper()

	var b strings.Builder
	for {
		line, err := r.ReadString('\n')
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read event: %v", err)
		}
		if line == "\n" {
			break
		}
		b.WriteString(line)
	}
	return b.String()
}

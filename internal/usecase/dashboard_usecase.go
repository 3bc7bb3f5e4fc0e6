package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/stefanv/moneta/internal/aggregate"
	"github.com/stefanv/moneta/internal/domain"
	"github.com/stefanv/moneta/internal/infrastructure/metrics"
)

// DashboardUseCase combines the user's data into dashboard snapshots, either
// one-shot or as a live stream backed by the aggregation engine.
type DashboardUseCase struct {
	entryRepo EntryRepository
	goalRepo  GoalRepository
	settings  SettingsStore
	hub       *StreamHub
	now       func() time.Time
	metrics   *metrics.Metrics

	mu      sync.Mutex
	watches map[string]*watchState
}

// watchState is one user's shared engine plus its watcher count. The engine
// is torn down when the last watcher stops.
type watchState struct {
	engine *aggregate.Engine
	refs   int
}

// NewDashboardUseCase creates a new DashboardUseCase. now is injectable for
// tests; nil means time.Now. metrics may be nil.
func NewDashboardUseCase(
	entryRepo EntryRepository,
	goalRepo GoalRepository,
	settings SettingsStore,
	hub *StreamHub,
	now func() time.Time,
	m *metrics.Metrics,
) *DashboardUseCase {
	if now == nil {
		now = time.Now
	}

	return &DashboardUseCase{
		entryRepo: entryRepo,
		goalRepo:  goalRepo,
		settings:  settings,
		hub:       hub,
		now:       now,
		metrics:   m,
		watches:   make(map[string]*watchState),
	}
}

// Snapshot computes one dashboard snapshot from current data.
func (uc *DashboardUseCase) Snapshot(ctx context.Context, userID string, sel aggregate.Selection) (aggregate.Snapshot, error) {
	entries, goals, rates, base, err := uc.load(ctx, userID)
	if err != nil {
		return aggregate.Snapshot{}, err
	}

	views := aggregate.GoalViews(goals, entries, rates)
	views = aggregate.FilterGoalViews(views, sel.Status)
	views = aggregate.SortGoalViews(views, sel.Sort, sel.Desc)

	if uc.metrics != nil {
		uc.metrics.DashboardSnapshots.Inc()
	}

	now := uc.now()

	return aggregate.Snapshot{
		Goals:      views,
		Totals:     aggregate.ComputeTotals(entries, rates, base),
		Monthly:    aggregate.MonthlyTotals(entries, rates, base, now),
		Entries:    aggregate.FilterEntries(entries, sel.Entries),
		ComputedAt: now,
	}, nil
}

// Watch primes the user's live streams from storage and returns a channel of
// dashboard snapshots plus a stop function. The channel always carries the
// latest snapshot: slow consumers skip intermediate states instead of
// lagging. Stop is idempotent and must be called when done.
func (uc *DashboardUseCase) Watch(ctx context.Context, userID string, sel aggregate.Selection) (<-chan aggregate.Snapshot, func(), error) {
	entries, goals, rates, base, err := uc.load(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	streams := uc.hub.For(userID)
	streams.Entries.Publish(entries)
	streams.Goals.Publish(goals)
	streams.Rates.Publish(rates)
	streams.Base.Publish(base)
	streams.Selection.Publish(sel)

	engine := uc.acquire(userID, streams)

	if uc.metrics != nil {
		uc.metrics.DashboardWatchers.Inc()
	}

	ch := make(chan aggregate.Snapshot, 1)
	unsubscribe := engine.Output().Subscribe(func(s aggregate.Snapshot) {
		// Latest wins: drop the stale buffered snapshot if the consumer
		// has not drained it yet.
		select {
		case <-ch:
		default:
		}
		ch <- s
	})

	var once sync.Once
	stop := func() {
		once.Do(func() {
			unsubscribe()
			uc.release(userID)
			if uc.metrics != nil {
				uc.metrics.DashboardWatchers.Dec()
			}
		})
	}

	return ch, stop, nil
}

func (uc *DashboardUseCase) acquire(userID string, streams *Streams) *aggregate.Engine {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	w, ok := uc.watches[userID]
	if !ok {
		w = &watchState{engine: aggregate.NewEngine(streams.Inputs(), uc.now)}
		uc.watches[userID] = w
	}
	w.refs++

	return w.engine
}

func (uc *DashboardUseCase) release(userID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	w, ok := uc.watches[userID]
	if !ok {
		return
	}

	w.refs--
	if w.refs <= 0 {
		w.engine.Close()
		delete(uc.watches, userID)
	}
}

func (uc *DashboardUseCase) load(ctx context.Context, userID string) ([]*domain.Entry, []*domain.Goal, domain.RateTable, domain.CurrencyCode, error) {
	entries, err := uc.entryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, nil, "", err
	}

	goals, err := uc.goalRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, nil, "", err
	}

	rates, err := uc.settings.Rates(ctx, userID)
	if err != nil {
		return nil, nil, nil, "", err
	}

	base, err := uc.settings.BaseCurrency(ctx, userID)
	if err != nil {
		return nil, nil, nil, "", err
	}

	return entries, goals, rates, base, nil
}

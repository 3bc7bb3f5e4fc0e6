package aggregate

import (
	"time"

	"github.com/stefanv/moneta/internal/domain"
)

// Selection holds the user-tweakable view controls: the entry filter plus
// goal sorting and status filtering. Publishing a new Selection republishes
// the derived views without re-subscribing to anything.
type Selection struct {
	Entries EntryFilter
	Sort    SortKey
	Desc    bool
	Status  StatusFilter
}

// Snapshot is one consistent recomputation of every derived view.
type Snapshot struct {
	Goals      []*GoalView
	Totals     Totals
	Monthly    Totals
	Entries    []*domain.Entry
	ComputedAt time.Time
}

// Inputs are the live sequences the engine combines.
type Inputs struct {
	Entries   *Feed[[]*domain.Entry]
	Goals     *Feed[[]*domain.Goal]
	Rates     *Feed[domain.RateTable]
	Base      *Feed[domain.CurrencyCode]
	Selection *Feed[Selection]
}

// Engine recomputes the derived views whenever any input publishes. It is a
// stateless pipeline: the only thing it holds is the latest snapshot, which
// is an optimization, not a correctness requirement. No snapshot is emitted
// until both entries and goals have been observed at least once; rates and
// base currency fall back to their documented defaults.
type Engine struct {
	in      Inputs
	out     *Feed[Snapshot]
	cancels []func()
	now     func() time.Time
}

// NewEngine wires an engine to its inputs and starts recomputing. now is
// injectable so monthly boundaries are testable; nil means time.Now.
func NewEngine(in Inputs, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}

	e := &Engine{in: in, out: NewFeed[Snapshot](), now: now}

	e.cancels = append(e.cancels,
		in.Entries.Subscribe(func([]*domain.Entry) { e.recompute() }),
		in.Goals.Subscribe(func([]*domain.Goal) { e.recompute() }),
		in.Rates.Subscribe(func(domain.RateTable) { e.recompute() }),
		in.Base.Subscribe(func(domain.CurrencyCode) { e.recompute() }),
		in.Selection.Subscribe(func(Selection) { e.recompute() }),
	)

	return e
}

// Output is the derived snapshot feed.
func (e *Engine) Output() *Feed[Snapshot] {
	return e.out
}

// Close cancels every input subscription. No snapshots are published after
// Close returns.
func (e *Engine) Close() {
	for _, cancel := range e.cancels {
		cancel()
	}
	e.cancels = nil
}

func (e *Engine) recompute() {
	entries, ok := e.in.Entries.Latest()
	if !ok {
		return
	}

	goals, ok := e.in.Goals.Latest()
	if !ok {
		return
	}

	rates, ok := e.in.Rates.Latest()
	if !ok {
		rates = domain.DefaultRates()
	}

	base, ok := e.in.Base.Latest()
	if !ok {
		base = domain.DefaultBaseCurrency
	}

	sel, _ := e.in.Selection.Latest()

	views := GoalViews(goals, entries, rates)
	views = FilterGoalViews(views, sel.Status)
	views = SortGoalViews(views, sel.Sort, sel.Desc)

	now := e.now()
	e.out.Publish(Snapshot{
		Goals:      views,
		Totals:     ComputeTotals(entries, rates, base),
		Monthly:    MonthlyTotals(entries, rates, base, now),
		Entries:    FilterEntries(entries, sel.Entries),
		ComputedAt: now,
	})
}

// Package aggregate derives live finance views (goal progress, totals,
// filtered entry lists) from full snapshots of the underlying data. Per-user
// cardinality is small, so every input change triggers a full recompute
// instead of an incremental update.
//
// All rounded values use two decimal places with round-half-away-from-zero
// (decimal.Round), so 2.005 rounds to 2.01.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/stefanv/moneta/internal/domain"
)

// GoalView is a goal with its derived progress.
type GoalView struct {
	domain.Goal

	Contributed decimal.Decimal
	Percent     decimal.Decimal
	Remaining   decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// GoalViews derives progress for every goal. Only income entries explicitly
// linked to a goal contribute; each contribution is converted from the
// entry's currency to the goal's currency before summing. Expense entries
// never affect progress. A goal with a non-positive target reports 0%.
func GoalViews(goals []*domain.Goal, entries []*domain.Entry, rates domain.RateTable) []*GoalView {
	views := make([]*GoalView, 0, len(goals))

	for _, goal := range goals {
		contributed := decimal.Zero
		for _, e := range entries {
			if e.Type != domain.EntryIncome || e.GoalID == "" || e.GoalID != goal.ID {
				continue
			}
			contributed = contributed.Add(rates.Convert(e.Amount, e.Currency, goal.Currency))
		}

		percent := decimal.Zero
		if goal.Target.IsPositive() {
			percent = contributed.Div(goal.Target).Mul(hundred)
			if percent.GreaterThan(hundred) {
				percent = hundred
			}
		}

		remaining := goal.Target.Sub(contributed)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		views = append(views, &GoalView{
			Goal:        *goal,
			Contributed: contributed.Round(2),
			Percent:     percent.Round(2),
			Remaining:   remaining.Round(2),
		})
	}

	return views
}

// SortKey selects the goal view ordering.
type SortKey string

const (
	SortByProgress SortKey = "progress"
	SortByTarget   SortKey = "target"
	SortByCreated  SortKey = "created"
)

// StatusFilter narrows goal views by completion state.
type StatusFilter string

const (
	StatusAll        StatusFilter = "all"
	StatusCompleted  StatusFilter = "completed"
	StatusInProgress StatusFilter = "in-progress"
	StatusNotStarted StatusFilter = "not-started"
)

// SortGoalViews returns views ordered by key. The sort is stable: views with
// equal keys keep their original relative order, ascending or descending.
func SortGoalViews(views []*GoalView, key SortKey, desc bool) []*GoalView {
	sorted := make([]*GoalView, len(views))
	copy(sorted, views)

	less := func(a, b *GoalView) bool {
		switch key {
		case SortByTarget:
			return a.Target.LessThan(b.Target)
		case SortByCreated:
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return a.Percent.LessThan(b.Percent)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if desc {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})

	return sorted
}

// FilterGoalViews keeps views matching the status filter. An empty filter
// matches everything.
func FilterGoalViews(views []*GoalView, status StatusFilter) []*GoalView {
	if status == "" || status == StatusAll {
		return views
	}

	out := make([]*GoalView, 0, len(views))
	for _, v := range views {
		switch status {
		case StatusCompleted:
			if v.Percent.GreaterThanOrEqual(hundred) {
				out = append(out, v)
			}
		case StatusInProgress:
			if v.Percent.IsPositive() && v.Percent.LessThan(hundred) {
				out = append(out, v)
			}
		case StatusNotStarted:
			if v.Percent.IsZero() {
				out = append(out, v)
			}
		}
	}

	return out
}

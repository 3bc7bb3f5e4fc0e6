package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stefanv/moneta/internal/domain"
)

// Totals are aggregate sums expressed in a single base currency.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Savings decimal.Decimal
	Base    domain.CurrencyCode
}

// ComputeTotals converts every entry into base and sums income and expense
// separately. Savings is income minus expense, computed from the rounded
// figures so the identity holds exactly at two decimal places.
func ComputeTotals(entries []*domain.Entry, rates domain.RateTable, base domain.CurrencyCode) Totals {
	income := decimal.Zero
	expense := decimal.Zero

	for _, e := range entries {
		amount := rates.Convert(e.Amount, e.Currency, base)
		switch e.Type {
		case domain.EntryIncome:
			income = income.Add(amount)
		case domain.EntryExpense:
			expense = expense.Add(amount)
		}
	}

	income = income.Round(2)
	expense = expense.Round(2)

	return Totals{
		Income:  income,
		Expense: expense,
		Savings: income.Sub(expense),
		Base:    base,
	}
}

// MonthlyTotals is ComputeTotals restricted to entries created within now's
// calendar month and year. now is caller-supplied for testability.
func MonthlyTotals(entries []*domain.Entry, rates domain.RateTable, base domain.CurrencyCode, now time.Time) Totals {
	month := make([]*domain.Entry, 0, len(entries))
	for _, e := range entries {
		if e.CreatedAt.Year() == now.Year() && e.CreatedAt.Month() == now.Month() {
			month = append(month, e)
		}
	}

	return ComputeTotals(month, rates, base)
}

// TypeAll matches both entry types, same as leaving Type empty.
const TypeAll domain.EntryType = "all"

// EntryFilter is a conjunction of independent predicates. Zero values leave
// a predicate inactive.
type EntryFilter struct {
	Type   domain.EntryType // income, expense or all; empty matches both
	Date   string           // exact YYYY-MM-DD match on CreatedAt
	GoalID string
}

// FilterEntries keeps entries satisfying every active predicate.
func FilterEntries(entries []*domain.Entry, f EntryFilter) []*domain.Entry {
	out := make([]*domain.Entry, 0, len(entries))
	for _, e := range entries {
		if f.Type != "" && f.Type != TypeAll && e.Type != f.Type {
			continue
		}
		if f.Date != "" && e.CreatedAt.Format(domain.DateLayout) != f.Date {
			continue
		}
		if f.GoalID != "" && e.GoalID != f.GoalID {
			continue
		}
		out = append(out, e)
	}

	return out
}

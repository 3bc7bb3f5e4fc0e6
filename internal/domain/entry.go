package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType tells whether an entry adds to or subtracts from savings.
type EntryType string

const (
	EntryIncome  EntryType = "income"
	EntryExpense EntryType = "expense"
)

// IsValid checks if the type is income or expense.
func (t EntryType) IsValid() bool {
	return t == EntryIncome || t == EntryExpense
}

// Entry represents a single income or expense record. Amount is always
// non-negative; the sign of its effect comes from Type.
type Entry struct {
	ID          string
	UserID      string
	Amount      decimal.Decimal
	Type        EntryType
	Currency    CurrencyCode
	GoalID      string // optional link to a savings goal
	Description string
	CreatedAt   time.Time
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal represents a savings target. Progress is never stored; it is always
// derived from the income entries linked to the goal.
type Goal struct {
	ID        string
	UserID    string
	Name      string
	Target    decimal.Decimal
	Currency  CurrencyCode
	CreatedAt time.Time
}

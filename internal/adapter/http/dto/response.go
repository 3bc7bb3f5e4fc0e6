package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stefanv/moneta/internal/aggregate"
	"github.com/stefanv/moneta/internal/domain"
)

// EntryResponse represents an entry in API responses.
type EntryResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Currency    string          `json:"currency"`
	GoalID      string          `json:"goal_id,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:          e.ID,
		Amount:      e.Amount,
		Type:        string(e.Type),
		Currency:    string(e.Currency),
		GoalID:      e.GoalID,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// GoalResponse represents a goal in API responses.
type GoalResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Target    decimal.Decimal `json:"target"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"created_at"`
}

// GoalFromDomain converts a domain goal to a response.
func GoalFromDomain(g *domain.Goal) *GoalResponse {
	return &GoalResponse{
		ID:        g.ID,
		Name:      g.Name,
		Target:    g.Target,
		Currency:  string(g.Currency),
		CreatedAt: g.CreatedAt,
	}
}

// GoalViewResponse is a goal with its derived progress.
type GoalViewResponse struct {
	GoalResponse

	Contributed decimal.Decimal `json:"contributed"`
	Percent     decimal.Decimal `json:"percent"`
	Remaining   decimal.Decimal `json:"remaining"`
}

// GoalViewFromAggregate converts a goal view to a response.
func GoalViewFromAggregate(v *aggregate.GoalView) *GoalViewResponse {
	return &GoalViewResponse{
		GoalResponse: *GoalFromDomain(&v.Goal),
		Contributed:  v.Contributed,
		Percent:      v.Percent,
		Remaining:    v.Remaining,
	}
}

// GoalViewsFromAggregate converts goal views to responses.
func GoalViewsFromAggregate(views []*aggregate.GoalView) []*GoalViewResponse {
	result := make([]*GoalViewResponse, len(views))
	for i, v := range views {
		result[i] = GoalViewFromAggregate(v)
	}
	return result
}

// TotalsResponse represents converted totals in API responses.
type TotalsResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Savings decimal.Decimal `json:"savings"`
	Base    string          `json:"base_currency"`
}

// TotalsFromAggregate converts totals to a response.
func TotalsFromAggregate(t aggregate.Totals) TotalsResponse {
	return TotalsResponse{
		Income:  t.Income,
		Expense: t.Expense,
		Savings: t.Savings,
		Base:    string(t.Base),
	}
}

// ReminderResponse represents a reminder in API responses.
type ReminderResponse struct {
	ID         string     `json:"id"`
	Date       string     `json:"date"`
	Time       string     `json:"time,omitempty"`
	Message    string     `json:"message"`
	SendEmail  bool       `json:"send_email"`
	NotifiedAt *time.Time `json:"notified_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ReminderFromDomain converts a domain reminder to a response.
func ReminderFromDomain(r *domain.Reminder) *ReminderResponse {
	return &ReminderResponse{
		ID:         r.ID,
		Date:       r.Date,
		Time:       r.Time,
		Message:    r.Message,
		SendEmail:  r.SendEmail,
		NotifiedAt: r.NotifiedAt,
		CreatedAt:  r.CreatedAt,
	}
}

// RemindersFromDomain converts domain reminders to responses.
func RemindersFromDomain(reminders []*domain.Reminder) []*ReminderResponse {
	result := make([]*ReminderResponse, len(reminders))
	for i, r := range reminders {
		result[i] = ReminderFromDomain(r)
	}
	return result
}

// SettingsResponse represents the user's display settings.
type SettingsResponse struct {
	BaseCurrency string                     `json:"base_currency"`
	Rates        map[string]decimal.Decimal `json:"rates"`
}

// SettingsFromDomain converts settings to a response.
func SettingsFromDomain(base domain.CurrencyCode, rates domain.RateTable) SettingsResponse {
	out := make(map[string]decimal.Decimal, len(rates))
	for code, rate := range rates {
		out[string(code)] = rate
	}

	return SettingsResponse{
		BaseCurrency: string(base),
		Rates:        out,
	}
}

// DashboardResponse is one consistent snapshot of every derived view.
type DashboardResponse struct {
	Goals      []*GoalViewResponse `json:"goals"`
	Totals     TotalsResponse      `json:"totals"`
	Monthly    TotalsResponse      `json:"monthly"`
	Entries    []*EntryResponse    `json:"entries"`
	ComputedAt time.Time           `json:"computed_at"`
}

// DashboardFromSnapshot converts an aggregation snapshot to a response.
func DashboardFromSnapshot(s aggregate.Snapshot) DashboardResponse {
	return DashboardResponse{
		Goals:      GoalViewsFromAggregate(s.Goals),
		Totals:     TotalsFromAggregate(s.Totals),
		Monthly:    TotalsFromAggregate(s.Monthly),
		Entries:    EntriesFromDomain(s.Entries),
		ComputedAt: s.ComputedAt,
	}
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

package dto

import (
	"github.com/shopspring/decimal"

	"github.com/stefanv/moneta/internal/domain"
	"github.com/stefanv/moneta/internal/usecase"
)

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AddEntryRequest represents a request to record an entry.
type AddEntryRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Currency    string          `json:"currency"`
	GoalID      string          `json:"goal_id,omitempty"`
	Description string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input for the given user.
func (r *AddEntryRequest) ToUseCaseInput(userID string) usecase.AddEntryInput {
	return usecase.AddEntryInput{
		UserID:      userID,
		Amount:      r.Amount,
		Type:        domain.EntryType(r.Type),
		Currency:    domain.CurrencyCode(r.Currency),
		GoalID:      r.GoalID,
		Description: r.Description,
	}
}

// UpdateEntryRequest represents a partial entry update. Absent fields keep
// their stored value.
type UpdateEntryRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Type        *string          `json:"type,omitempty"`
	Currency    *string          `json:"currency,omitempty"`
	GoalID      *string          `json:"goal_id,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input for the given entry and user.
func (r *UpdateEntryRequest) ToUseCaseInput(id, userID string) usecase.UpdateEntryInput {
	input := usecase.UpdateEntryInput{
		ID:          id,
		UserID:      userID,
		Amount:      r.Amount,
		GoalID:      r.GoalID,
		Description: r.Description,
	}

	if r.Type != nil {
		t := domain.EntryType(*r.Type)
		input.Type = &t
	}

	if r.Currency != nil {
		c := domain.CurrencyCode(*r.Currency)
		input.Currency = &c
	}

	return input
}

// CreateGoalRequest represents a request to create a goal.
type CreateGoalRequest struct {
	Name     string          `json:"name"`
	Target   decimal.Decimal `json:"target"`
	Currency string          `json:"currency"`
}

// ToUseCaseInput converts to use case input for the given user.
func (r *CreateGoalRequest) ToUseCaseInput(userID string) usecase.CreateGoalInput {
	return usecase.CreateGoalInput{
		UserID:   userID,
		Name:     r.Name,
		Target:   r.Target,
		Currency: domain.CurrencyCode(r.Currency),
	}
}

// UpdateGoalRequest represents a partial goal update.
type UpdateGoalRequest struct {
	Name     *string          `json:"name,omitempty"`
	Target   *decimal.Decimal `json:"target,omitempty"`
	Currency *string          `json:"currency,omitempty"`
}

// ToUseCaseInput converts to use case input for the given goal and user.
func (r *UpdateGoalRequest) ToUseCaseInput(id, userID string) usecase.UpdateGoalInput {
	input := usecase.UpdateGoalInput{
		ID:     id,
		UserID: userID,
		Name:   r.Name,
		Target: r.Target,
	}

	if r.Currency != nil {
		c := domain.CurrencyCode(*r.Currency)
		input.Currency = &c
	}

	return input
}

// AddReminderRequest represents a request to create a reminder.
type AddReminderRequest struct {
	Date      string `json:"date"`
	Time      string `json:"time,omitempty"`
	Message   string `json:"message"`
	SendEmail bool   `json:"send_email"`
}

// ToUseCaseInput converts to use case input for the given user.
func (r *AddReminderRequest) ToUseCaseInput(userID string) usecase.AddReminderInput {
	return usecase.AddReminderInput{
		UserID:    userID,
		Date:      r.Date,
		Time:      r.Time,
		Message:   r.Message,
		SendEmail: r.SendEmail,
	}
}

// SetBaseCurrencyRequest represents a base currency change.
type SetBaseCurrencyRequest struct {
	Currency string `json:"currency"`
}

// SetRatesRequest represents a conversion rate table change. Rates are
// decimal strings keyed by currency code, relative to EUR.
type SetRatesRequest struct {
	Rates map[string]decimal.Decimal `json:"rates"`
}

// ToRateTable converts to a domain rate table.
func (r *SetRatesRequest) ToRateTable() domain.RateTable {
	rates := make(domain.RateTable, len(r.Rates))
	for code, rate := range r.Rates {
		rates[domain.CurrencyCode(code)] = rate
	}

	return rates
}

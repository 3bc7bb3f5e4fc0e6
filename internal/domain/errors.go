package domain

import "errors"

var (
	// Validation errors
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidEntryType    = errors.New("entry type must be income or expense")
	ErrInvalidCurrency     = errors.New("unsupported currency code")
	ErrInvalidGoalName     = errors.New("goal name cannot be empty")
	ErrInvalidTarget       = errors.New("goal target must be positive")
	ErrInvalidReminderDate = errors.New("reminder date must be YYYY-MM-DD")
	ErrInvalidReminderTime = errors.New("reminder time must be HH:MM")
	ErrEmptyMessage        = errors.New("reminder message cannot be empty")
	ErrReferenceRateNotOne = errors.New("reference currency rate must be exactly 1")
	ErrNonPositiveRate     = errors.New("rates must be positive")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrPasswordTooWeak     = errors.New("password does not meet requirements")
	ErrEmailTaken          = errors.New("user with this email already exists")

	// Not-found errors
	ErrEntryNotFound    = errors.New("entry not found")
	ErrGoalNotFound     = errors.New("goal not found")
	ErrReminderNotFound = errors.New("reminder not found")
	ErrUserNotFound     = errors.New("user not found")

	// Authentication errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

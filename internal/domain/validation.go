package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxGoalNameLength    = 255
	MaxDescriptionLength = 1024
	MaxMessageLength     = 2048
	MaxAmount            = "1000000000" // per-entry cap
	MinPasswordLength    = 8
	MaxPasswordLength    = 128

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEntry checks an entry before it reaches storage or aggregation.
// Everything past this point may assume well-formed fields.
func ValidateEntry(e *Entry) error {
	if !e.Type.IsValid() {
		return ErrInvalidEntryType
	}

	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxAmount)
	if e.Amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxAmount)
	}

	if !e.Currency.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidCurrency, e.Currency)
	}

	if len(e.Description) > MaxDescriptionLength {
		return fmt.Errorf("description exceeds %d characters", MaxDescriptionLength)
	}

	return nil
}

// ValidateGoal checks a goal before it reaches storage.
func ValidateGoal(g *Goal) error {
	name := strings.TrimSpace(g.Name)
	if name == "" {
		return ErrInvalidGoalName
	}

	if len(name) > MaxGoalNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidGoalName, MaxGoalNameLength)
	}

	if !g.Target.IsPositive() {
		return ErrInvalidTarget
	}

	if !g.Currency.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidCurrency, g.Currency)
	}

	return nil
}

// ValidateReminder checks a reminder before it reaches storage.
func ValidateReminder(r *Reminder) error {
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return ErrInvalidReminderDate
	}

	if r.Time != "" {
		if _, err := time.Parse(TimeLayout, r.Time); err != nil {
			return ErrInvalidReminderTime
		}
	}

	if strings.TrimSpace(r.Message) == "" {
		return ErrEmptyMessage
	}

	if len(r.Message) > MaxMessageLength {
		return fmt.Errorf("message exceeds %d characters", MaxMessageLength)
	}

	return nil
}

// ValidateEmail validates email format
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidatePassword validates password strength
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)

	if !hasUpper || !hasLower || !hasNumber {
		return fmt.Errorf("%w: must contain uppercase, lowercase, and numbers", ErrPasswordTooWeak)
	}

	return nil
}

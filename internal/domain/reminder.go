package domain

import "time"

// Reminder is a calendar note, optionally emailed once it comes due.
type Reminder struct {
	ID         string
	UserID     string
	Date       string // YYYY-MM-DD
	Time       string // HH:MM, optional
	Message    string
	SendEmail  bool
	NotifiedAt *time.Time
	CreatedAt  time.Time
}

// DueAt resolves the reminder's calendar date and optional time into a point
// in time (UTC). Reminders without a time are due at midnight.
func (r *Reminder) DueAt() (time.Time, error) {
	if r.Time != "" {
		return time.Parse(DateLayout+" "+TimeLayout, r.Date+" "+r.Time)
	}

	return time.Parse(DateLayout, r.Date)
}

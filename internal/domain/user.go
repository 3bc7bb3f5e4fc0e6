package domain

import "time"

// User represents an account holder. Every entry, goal and reminder belongs
// to exactly one user.
type User struct {
	ID             string
	Email          string
	Name           string
	HashedPassword string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

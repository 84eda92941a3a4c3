package domain

import "time"

// Client is a billing contact owned by exactly one user. UserID is set at
// creation and never changes.
type Client struct {
	ID        string
	UserID    string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

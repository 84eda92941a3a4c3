package domain

import "time"

// User represents an account that owns clients and invoices.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	Name         string
	CreatedAt    time.Time
}

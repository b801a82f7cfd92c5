package entity

import "time"

// PasswordHistory is an append-only snapshot of a user's password hash,
// written at registration and on every reset.
type PasswordHistory struct {
	ID           string
	UserID       string
	PasswordHash string
	CreatedAt    time.Time
}

package entity

import "time"

// Valid roles for User. The set is closed: the store seeds Admin and User,
// Manager unlocks the detailed sales views.
const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleUser    = "User"
)

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// MaxAccessFailures is the number of consecutive failed sign-ins that
// triggers a lockout; LockoutWindow is how long the lockout lasts.
const (
	MaxAccessFailures = 5
	LockoutWindow     = 15 * time.Minute
)

// User is an account in the identity store. Email is the login key,
// unique and immutable after creation.
type User struct {
	ID                string
	Username          string
	Email             string
	PasswordHash      string // bcrypt hash, never plaintext past registration
	EmailConfirmed    bool
	Role              string // Admin, Manager or User
	TwoFactorEnabled  bool
	AccessFailedCount int
	LockoutEnd        time.Time // zero value means not locked out
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// LockedOut reports whether the user is currently locked out.
func (u *User) LockedOut(now time.Time) bool {
	return !u.LockoutEnd.IsZero() && now.Before(u.LockoutEnd)
}

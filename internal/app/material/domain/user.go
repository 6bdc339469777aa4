package domain

import "time"

// User is the read-only view of an account used by the catalog.
type User struct {
	ID        string
	Username  string
	Email     string
	AvatarURL string
	Role      Role
	Status    AccountStatus
	CreatedAt time.Time
}

// IsBlocked reports whether the account is suspended.
func (u *User) IsBlocked() bool { return u.Status == AccountBlocked }

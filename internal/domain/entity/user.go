package entity

import "time"

// User is the identity-provider view of an account. It is read-only from
// this system's perspective; the admin gateway lists these but never
// mutates them.
type User struct {
	ID               string
	Email            string
	CreatedAt        time.Time
	LastSignInAt     *time.Time
	EmailConfirmedAt *time.Time
}

// IsVerified reports whether the user has confirmed their email address
func (u *User) IsVerified() bool {
	return u.EmailConfirmedAt != nil
}

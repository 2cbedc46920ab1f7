// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account identity. PasswordHash encodes the algorithm, salt, and
// derived key together. TwoFactorSecret must be present exactly when
// TwoFactorEnabled is set; a row violating that is treated as an auth
// failure, never repaired in place.
type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	TwoFactorEnabled bool      `json:"two_factor_enabled"`
	TwoFactorSecret  *string   `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
}

// TwoFactorConsistent reports whether the two-factor flag and secret agree.
func (u *User) TwoFactorConsistent() bool {
	hasSecret := u.TwoFactorSecret != nil && *u.TwoFactorSecret != ""
	return u.TwoFactorEnabled == hasSecret
}

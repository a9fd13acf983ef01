package model

import "time"

// User mirrors the `users` table. Accounts are created and refreshed by the
// identity sync: the subject is the identity provider's stable user id
// (e.g. "auth0|123456789") and the profile fields are overwritten on every
// login. DisplayName and Bio are app-owned and never touched by the sync.
type User struct {
	ID            uint64     `json:"id"`
	Subject       string     `json:"subject"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Picture       *string    `json:"picture,omitempty"`
	EmailVerified bool       `json:"email_verified"`
	DisplayName   *string    `json:"display_name,omitempty"`
	Bio           *string    `json:"bio,omitempty"`
	IsActive      bool       `json:"is_active"`
	IsAdmin       bool       `json:"is_admin"`
	Onboarded     bool       `json:"has_completed_onboarding"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

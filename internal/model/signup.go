package model

import "time"

// EmailSignup mirrors the `email_signups` table: a marketing opt-in record,
// independent of user accounts. Source tags where the signup came from.
type EmailSignup struct {
	ID        uint64    `json:"id"`
	Name      *string   `json:"name,omitempty"`
	Email     string    `json:"email"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import "time"

// UserVerification is the pending-verification state for one email address.
// Exactly one row exists per email while verification is pending; the row is
// deleted once the account is verified.
//
// BlockedExpiresAt is nil unless Blocked is true. MaxAttempts starts at 5 and
// shrinks toward 1 each time a 24h block cycle expires and is cleared.
type UserVerification struct {
	ID               int64      `json:"id"`
	Email            string     `json:"email"`
	Code             string     `json:"-"`
	CodeExpiresAt    time.Time  `json:"code_expires_at"`
	Attempts         int        `json:"attempts"`
	MaxAttempts      int        `json:"max_attempts"`
	Blocked          bool       `json:"blocked"`
	BlockedExpiresAt *time.Time `json:"blocked_expires_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

package models

import "time"

// RefreshToken is a ledger row for an issued refresh token. The signed token
// string carries its own claims; this row is the authority on validity.
// UserEmail is a lookup key only, not an ownership link.
type RefreshToken struct {
	ID        string
	UserEmail string
	Token     string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}

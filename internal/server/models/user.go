package models

import "time"

// User is an identity record. Email is the identity key; the password hash
// is opaque and must never be logged or returned to clients.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

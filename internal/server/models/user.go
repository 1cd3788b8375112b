// Package models defines the persistence-level records owned by the server
// repositories.
package models

import "time"

// User is a registered account. PasswordHash holds the bcrypt digest, never
// the plaintext, and must not leak into API responses or logs.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

package models

import "time"

// RevokedToken marks an access token as logged out before its natural expiry.
// Fingerprint is the SHA-256 of the token string; ExpiresAt mirrors the
// token's own expiry so the row can be purged once the token would have died
// anyway.
type RevokedToken struct {
	Fingerprint string
	ExpiresAt   time.Time
	RevokedAt   time.Time
}

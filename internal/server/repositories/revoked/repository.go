package revoked

import (
	"context"
	"time"
)

// Repository is the revocation set consulted on every token verification.
// Entries are keyed by token fingerprint (SHA-256 of the token string, see
// cryptox.TokenFingerprint); raw tokens are never handed to the store.
//
// Implementations must be safe for concurrent revokes and lookups.
type Repository interface {
	// Revoke adds a fingerprint to the set. Revoking a fingerprint that is
	// already present returns common.ErrAlreadyRevoked; the entry stays
	// revoked either way. expiresAt mirrors the token's own expiry so the
	// entry can be purged once the token would have died anyway.
	Revoke(ctx context.Context, fingerprint string, expiresAt time.Time) error

	// IsRevoked reports whether a fingerprint is in the set.
	IsRevoked(ctx context.Context, fingerprint string) (bool, error)

	// DeleteExpired removes entries whose expiry has passed and returns the
	// number of removed rows.
	DeleteExpired(ctx context.Context) (int64, error)
}

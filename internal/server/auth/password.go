package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultBCryptCost is the work factor used for new password digests unless
// overridden by config. Tests use bcrypt.MinCost to stay fast.
const DefaultBCryptCost = 12

// PasswordHasher produces and verifies salted bcrypt digests. Safe for
// concurrent use.
type PasswordHasher struct {
	cost  int
	dummy []byte
}

// NewPasswordHasher constructs a hasher with the given bcrypt cost.
// A cost outside bcrypt's valid range falls back to DefaultBCryptCost.
//
// The constructor precomputes a dummy digest at the same cost so that
// VerifyDummy burns the same CPU as a real verification.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBCryptCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("placemark-dummy-password"), cost)
	if err != nil {
		// Only reachable with an out-of-range cost, which is excluded above.
		panic(err)
	}
	return &PasswordHasher{cost: cost, dummy: dummy}
}

// Hash returns a salted one-way digest of the plaintext. The digest embeds
// its own salt and cost, so it is the only value that needs storing.
func (h *PasswordHasher) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plain matches the stored digest. A malformed digest
// is treated as a mismatch, never an error.
func (h *PasswordHasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

// VerifyDummy runs a comparison against a throwaway digest. The login flow
// calls it when the identifier lookup misses, so that response latency does
// not reveal whether the identifier or the password was wrong.
func (h *PasswordHasher) VerifyDummy(plain string) {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(plain))
}

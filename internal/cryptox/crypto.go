// Package cryptox contains small crypto helpers shared by server components.
package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
)

// TokenFingerprint returns a hex-encoded SHA-256 digest of a token string.
// The revocation store persists fingerprints instead of raw tokens, so a
// leaked table never yields replayable credentials.
func TokenFingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

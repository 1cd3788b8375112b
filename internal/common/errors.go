// Package common defines shared constants and sentinel errors used across
// Placemark components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Login errors. Missing user and wrong password both map here so the
	// caller cannot tell which field was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token lifecycle errors. Expired and malformed are distinct kinds:
	// an expired token had a valid signature and the client should simply
	// re-authenticate, a malformed one indicates tampering or a bug.
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenRevoked   = errors.New("token revoked")

	// Token verified but its subject no longer resolves to a user.
	ErrUnknownSubject = errors.New("unknown subject")

	// Revoking a token that is already in the revocation set.
	ErrAlreadyRevoked = errors.New("already revoked")
)

// Package auth implements the token codec and password hashing used by the
// authentication core: signed, time-bounded access tokens (JWT, HMAC) and
// salted one-way password digests (bcrypt).
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/andrejsk/placemark/internal/common"
)

// DefaultAudience is the audience claim stamped into every issued token and
// required on every verified one. Tokens minted for another consumer of the
// same signing secret do not pass verification here.
const DefaultAudience = "placemark-users"

// Claims is the verified content of an access token.
type Claims struct {
	jwt.RegisteredClaims
}

// Codec issues and verifies access tokens. Safe for concurrent use.
type Codec struct {
	secret   []byte
	method   jwt.SigningMethod
	audience string
	ttl      time.Duration
}

// SigningMethod resolves a configured algorithm name to a JWT signing method.
// Only the HMAC family is supported.
func SigningMethod(algorithm string) (jwt.SigningMethod, error) {
	switch algorithm {
	case "HS256":
		return jwt.SigningMethodHS256, nil
	case "HS384":
		return jwt.SigningMethodHS384, nil
	case "HS512":
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
}

// NewCodec constructs a Codec. The secret and algorithm are validated once
// here, at process start, not per request.
func NewCodec(secret string, algorithm string, audience string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("signing secret is not set")
	}
	method, err := SigningMethod(algorithm)
	if err != nil {
		return nil, err
	}
	if audience == "" {
		audience = DefaultAudience
	}
	return &Codec{secret: []byte(secret), method: method, audience: audience, ttl: ttl}, nil
}

// Issue mints a token for the given subject with expiry now+ttl. A zero ttl
// falls back to the codec default.
func (c *Codec) Issue(subject string, ttl time.Duration) (string, Claims, error) {
	if ttl == 0 {
		ttl = c.ttl
	}
	now := time.Now().UTC()

	cl := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Audience:  jwt.ClaimStrings{c.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	tokenString, err := jwt.NewWithClaims(c.method, cl).SignedString(c.secret)
	if err != nil {
		return "", Claims{}, err
	}

	return tokenString, cl, nil
}

// Parse verifies signature, expiry, and audience, and returns the claims.
//
// Failure kinds are distinct: common.ErrTokenExpired for a token whose
// signature checked out but whose lifetime has passed, common.ErrTokenMalformed
// for everything else (bad signature, unparsable structure, wrong audience,
// missing subject).
func (c *Codec) Parse(raw string) (Claims, error) {
	var cl Claims
	token, err := jwt.ParseWithClaims(raw, &cl, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithAudience(c.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, common.ErrTokenExpired
		}
		return Claims{}, common.ErrTokenMalformed
	}
	if !token.Valid || cl.Subject == "" {
		return Claims{}, common.ErrTokenMalformed
	}

	return cl, nil
}

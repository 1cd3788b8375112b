// Package services contains server-side business logic. This file implements
// UserService: registration, login, logout (token revocation), and the
// per-request identity resolution every protected endpoint depends on.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/andrejsk/placemark/internal/common"
	"github.com/andrejsk/placemark/internal/cryptox"
	"github.com/andrejsk/placemark/internal/dbx"
	"github.com/andrejsk/placemark/internal/server/auth"
	"github.com/andrejsk/placemark/internal/server/config"
	"github.com/andrejsk/placemark/internal/server/models"
	"github.com/andrejsk/placemark/internal/server/repositories/repomanager"
)

// AccessToken is the result of a successful login.
type AccessToken struct {
	Token string
	Type  string
}

// UserService provides authentication-related operations:
//   - Register: create accounts
//   - Login: verify credentials and mint an access token
//   - Logout: revoke a still-valid token ahead of its expiry
//   - Resolve: turn a bearer token into the authenticated user
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	codec       *auth.Codec
	hasher      *auth.PasswordHasher
	tokenTTL    time.Duration
}

// NewUserService constructs a UserService using repositories, the token
// codec, the password hasher, and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, codec *auth.Codec, hasher *auth.PasswordHasher, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		codec:       codec,
		hasher:      hasher,
		tokenTTL:    cfg.AccessTokenValidityDuration,
	}
}

// Register creates a new account. A taken username or email yields
// common.ErrorAlreadyExists.
//
// The pre-insert existence check is a fast path only; the authoritative
// conflict signal is the unique-violation error from the insert itself, so
// two concurrent registrations of the same name cannot both succeed.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", common.ErrorValidation)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{Username: username, Email: email, PasswordHash: digest}
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		exists, err := repo.Exists(ctx, username, email)
		if err != nil {
			return fmt.Errorf("checking existing user: %w", err)
		}
		if exists {
			return common.ErrorAlreadyExists
		}

		user, err = repo.Create(ctx, user)
		return err
	}); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the identifier (username or email) and password and, on
// success, returns a bearer access token.
//
// A missing user and a wrong password are indistinguishable to the caller:
// both return common.ErrInvalidCredentials, and the miss path still burns a
// digest comparison so response timing does not reveal which branch ran.
func (s *UserService) Login(ctx context.Context, identifier, password string) (*AccessToken, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.VerifyDummy(password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("credential lookup: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	token, _, err := s.codec.Issue(user.Username, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &AccessToken{Token: token, Type: common.TokenType}, nil
}

// Logout revokes the given token until its natural expiry. Logging out twice
// with the same token yields common.ErrAlreadyRevoked; the token stays
// revoked either way. A malformed or already-expired token is rejected with
// the corresponding token error.
func (s *UserService) Logout(ctx context.Context, token string) error {
	claims, err := s.codec.Parse(token)
	if err != nil {
		return err
	}

	repo := s.repomanager.RevokedTokens(s.db)
	return repo.Revoke(ctx, cryptox.TokenFingerprint(token), claims.ExpiresAt.Time)
}

// Resolve is the per-request identity gate. It verifies the token, checks
// the revocation set, and loads the subject's account.
//
// Failure kinds are distinct so the transport layer can map them:
// common.ErrTokenExpired, common.ErrTokenMalformed, common.ErrTokenRevoked,
// common.ErrUnknownSubject. Storage faults come back wrapped, not as one of
// the authentication outcomes.
func (s *UserService) Resolve(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.codec.Parse(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.repomanager.RevokedTokens(s.db).IsRevoked(ctx, cryptox.TokenFingerprint(token))
	if err != nil {
		return nil, fmt.Errorf("revocation lookup: %w", err)
	}
	if revoked {
		return nil, common.ErrTokenRevoked
	}

	user, err := s.repomanager.Users(s.db).GetByIdentifier(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnknownSubject
		}
		return nil, fmt.Errorf("subject lookup: %w", err)
	}

	return user, nil
}

// PurgeRevoked drops revocation entries for tokens that have expired on
// their own. Called periodically by the app.
func (s *UserService) PurgeRevoked(ctx context.Context) (int64, error) {
	return s.repomanager.RevokedTokens(s.db).DeleteExpired(ctx)
}

// Package revoked provides the token revocation set: a record of access
// tokens that were logged out before their natural expiry.
package revoked

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/andrejsk/placemark/internal/common"
	"github.com/andrejsk/placemark/internal/dbx"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint errors.
const uniqueViolation = "23505"

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx). The revocation set survives restarts,
// unlike an in-process set.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Revoke inserts a fingerprint. The primary key on fingerprint makes the
// second revoke of the same token fail, which maps to common.ErrAlreadyRevoked.
func (r *PostgresRepository) Revoke(ctx context.Context, fingerprint string, expiresAt time.Time) error {
	query := `
		INSERT INTO revoked_tokens (fingerprint, expires_at)
		VALUES ($1, $2)
	`
	if _, err := r.db.ExecContext(ctx, query, fingerprint, expiresAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrAlreadyRevoked
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// IsRevoked reports whether the fingerprint is present in the set.
func (r *PostgresRepository) IsRevoked(ctx context.Context, fingerprint string) (bool, error) {
	query := `
		SELECT EXISTS (
		  SELECT 1 FROM revoked_tokens WHERE fingerprint = $1
		)
	`
	var revoked bool
	if err := r.db.QueryRowContext(ctx, query, fingerprint).Scan(&revoked); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return revoked, nil
}

// DeleteExpired purges entries for tokens that have expired on their own.
// An expired token is rejected by the codec before the revocation check, so
// removing its entry does not change any verification outcome.
func (r *PostgresRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM revoked_tokens
		WHERE expires_at < now()
	`
	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

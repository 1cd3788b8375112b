package repomanager

import (
	"context"
	"database/sql"

	"github.com/andrejsk/placemark/internal/dbx"
	"github.com/andrejsk/placemark/internal/server/repositories/revoked"
	"github.com/andrejsk/placemark/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to an arbitrary DBTX, so the
// same constructors serve both plain connections and transactions.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RevokedTokens(db dbx.DBTX) revoked.Repository
}

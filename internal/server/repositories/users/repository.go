package users

import (
	"context"

	"github.com/andrejsk/placemark/internal/server/models"
)

// Repository is the credential store: it is the only component allowed to
// create or load user records.
type Repository interface {
	// Create inserts a new user. A username or email collision returns
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByIdentifier finds a user by username or email.
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)

	// GetByID finds a user by primary key.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// Exists reports whether a user with the given username or email is
	// already registered. Used as a fast-path pre-insert check only; the
	// database unique constraints stay authoritative.
	Exists(ctx context.Context, username, email string) (bool, error)
}

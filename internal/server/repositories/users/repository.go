// Package users declares the server-side repository contract for account
// records in persistent storage.
package users

import (
	"context"

	"github.com/dmitrijs2005/chirpy/internal/server/models"
	"github.com/google/uuid"
)

// Repository defines operations for creating, looking up, and mutating users.
type Repository interface {
	// Create inserts a new user and returns it with its generated id and
	// timestamps. A duplicate email must fail with common.ErrorConflict
	// without creating a partial record.
	Create(ctx context.Context, email string, hashedPassword string) (*models.User, error)

	// GetByEmail returns the user with the given (canonicalized) email,
	// or common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user with the given id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// UpdateCredentials replaces the user's email and password hash and
	// returns the updated record. Duplicate email yields common.ErrorConflict.
	UpdateCredentials(ctx context.Context, id uuid.UUID, email string, hashedPassword string) (*models.User, error)

	// Upgrade sets the premium-membership flag. Unknown id yields
	// common.ErrorNotFound; upgrading an already-upgraded user is a no-op.
	Upgrade(ctx context.Context, id uuid.UUID) error

	// DeleteAll removes every user; chirps and refresh tokens go with them
	// via foreign-key cascade.
	DeleteAll(ctx context.Context) error
}

// Package chirps declares the server-side repository contract for chirp
// posts in persistent storage.
package chirps

import (
	"context"

	"github.com/dmitrijs2005/chirpy/internal/server/models"
	"github.com/google/uuid"
)

// ListOptions narrows and orders a chirp listing.
type ListOptions struct {
	// AuthorID, when non-nil, restricts the listing to one owner.
	AuthorID *uuid.UUID
	// Descending orders by creation time newest-first; default is oldest-first.
	Descending bool
}

// Repository defines operations for creating, reading, and deleting chirps.
type Repository interface {
	// Create inserts a new chirp owned by userID. The owning user must
	// exist; a foreign-key violation surfaces as a db error, not a retry.
	Create(ctx context.Context, userID uuid.UUID, body string) (*models.Chirp, error)

	// GetByID returns the chirp with the given id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Chirp, error)

	// List returns chirps matching opts, ordered by creation time.
	List(ctx context.Context, opts ListOptions) ([]models.Chirp, error)

	// Delete removes a chirp by id. Unknown id yields common.ErrorNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}

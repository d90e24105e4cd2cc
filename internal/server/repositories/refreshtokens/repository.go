// Package refreshtokens declares the server-side repository contract for
// managing refresh tokens in persistent storage.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/chirpy/internal/server/models"
	"github.com/google/uuid"
)

// Repository defines operations for issuing, retrieving, and revoking
// refresh tokens. Tokens are opaque lookup keys, never updated except to
// set the revocation timestamp, and removed only via user-delete cascade.
type Repository interface {
	// Create stores a new refresh token for userID with an expiry of
	// now+validity. A missing owning user surfaces as a db error.
	Create(ctx context.Context, userID uuid.UUID, token string, validity time.Duration) error

	// Find looks up a refresh token by its opaque token string and returns
	// the full row, or common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Revoke sets the revocation timestamp on the matching row and bumps
	// its update timestamp. Revoking a non-existent or already-revoked
	// token is a no-op; revocation is idempotent by design.
	Revoke(ctx context.Context, token string) error

	// RevokeAllForUser revokes every active token owned by userID.
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
}

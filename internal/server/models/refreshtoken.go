package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// RefreshToken is an opaque session credential. The random token string is
// the primary key. A token grants new access tokens only while RevokedAt is
// null and ExpiresAt is in the future.
type RefreshToken struct {
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
	RevokedAt sql.NullTime
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Usable reports whether the token still grants new access tokens at the
// given instant: never revoked and not yet expired.
func (t *RefreshToken) Usable(now time.Time) bool {
	return !t.RevokedAt.Valid && now.Before(t.ExpiresAt)
}

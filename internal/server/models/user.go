// Package models defines server-side data models persisted in the database.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account record. Email is stored canonicalized (lowercased,
// trimmed) and is unique. HashedPassword is a bcrypt hash and must never
// appear in API responses or logs.
type User struct {
	ID             uuid.UUID
	Email          string
	HashedPassword string
	IsChirpyRed    bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

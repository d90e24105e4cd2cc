package models

import (
	"time"

	"github.com/google/uuid"
)

// Chirp is a short text post. UserID never changes after creation.
type Chirp struct {
	ID        uuid.UUID
	Body      string
	UserID    uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

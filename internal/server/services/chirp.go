package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/chirpy/internal/common"
	"github.com/dmitrijs2005/chirpy/internal/server/models"
	"github.com/dmitrijs2005/chirpy/internal/server/repositories/chirps"
	"github.com/dmitrijs2005/chirpy/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// maxChirpLength is the body limit applied after profanity filtering.
const maxChirpLength = 140

// profaneWords are replaced with **** when they appear as standalone
// lowercase-insensitive words. Tokens with attached punctuation pass through.
var profaneWords = map[string]struct{}{
	"kerfuffle": {},
	"sharbert":  {},
	"fornax":    {},
}

// ChirpService implements chirp creation, listing, and owner-only deletion.
type ChirpService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewChirpService constructs a ChirpService over the given repositories.
func NewChirpService(db *sql.DB, m repomanager.RepositoryManager) *ChirpService {
	return &ChirpService{db: db, repomanager: m}
}

// Create validates and stores a new chirp owned by userID. The body is
// profanity-filtered first; the cleaned text must not exceed 140 characters.
func (s *ChirpService) Create(ctx context.Context, userID uuid.UUID, body string) (*models.Chirp, error) {
	cleaned := cleanChirpBody(body)
	if cleaned == "" {
		return nil, common.ErrorBadRequest
	}
	if utf8.RuneCountInString(cleaned) > maxChirpLength {
		return nil, common.ErrorBadRequest
	}

	chirp, err := s.repomanager.Chirps(s.db).Create(ctx, userID, cleaned)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return chirp, nil
}

// GetByID returns a single chirp or common.ErrorNotFound.
func (s *ChirpService) GetByID(ctx context.Context, id uuid.UUID) (*models.Chirp, error) {
	chirp, err := s.repomanager.Chirps(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return chirp, nil
}

// List returns chirps, optionally narrowed to one author, ordered by
// creation time.
func (s *ChirpService) List(ctx context.Context, opts chirps.ListOptions) ([]models.Chirp, error) {
	listing, err := s.repomanager.Chirps(s.db).List(ctx, opts)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return listing, nil
}

// Delete removes a chirp on behalf of callerID. Existence is checked first
// and unconditionally, ownership second, so "doesn't exist" (NotFound) and
// "exists but not yours" (Forbidden) stay distinguishable.
func (s *ChirpService) Delete(ctx context.Context, chirpID, callerID uuid.UUID) error {
	repo := s.repomanager.Chirps(s.db)

	chirp, err := repo.GetByID(ctx, chirpID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	if chirp.UserID != callerID {
		return common.ErrorForbidden
	}

	if err := repo.Delete(ctx, chirpID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// deleted concurrently after the existence check; same end state
			return nil
		}
		return common.ErrorInternal
	}
	return nil
}

// cleanChirpBody replaces standalone profane words with **** and trims
// surrounding whitespace.
func cleanChirpBody(body string) string {
	words := strings.Split(strings.TrimSpace(body), " ")
	for i, word := range words {
		if _, ok := profaneWords[strings.ToLower(word)]; ok {
			words[i] = "****"
		}
	}
	return strings.Join(words, " ")
}

package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/chirpy/internal/common"
	"github.com/dmitrijs2005/chirpy/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// EventUserUpgraded is the only webhook event that triggers an action;
// everything else is acknowledged and ignored.
const EventUserUpgraded = "user.upgraded"

// WebhookService applies payment-provider events. The upgrade is
// at-most-once: repeated delivery of the identical event converges to the
// same end state and the same success response.
type WebhookService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewWebhookService constructs a WebhookService over the given repositories.
func NewWebhookService(db *sql.DB, m repomanager.RepositoryManager) *WebhookService {
	return &WebhookService{db: db, repomanager: m}
}

// UpgradeUser flips the premium-membership flag for userID. An unknown user
// yields common.ErrorNotFound; an already-upgraded user is a silent success.
// The single-row update is atomic at the store, so two concurrent deliveries
// for the same user converge without coordination here.
func (s *WebhookService) UpgradeUser(ctx context.Context, userID uuid.UUID) error {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	if user.IsChirpyRed {
		return nil
	}

	if err := repo.Upgrade(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	return nil
}

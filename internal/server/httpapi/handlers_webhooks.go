package httpapi

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/chirpy/internal/common"
	"github.com/dmitrijs2005/chirpy/internal/server/auth"
	"github.com/dmitrijs2005/chirpy/internal/server/services"
)

func (s *Server) handlePolkaWebhook(w http.ResponseWriter, r *http.Request) {
	key, err := auth.GetAPIKey(r.Header)
	if err != nil {
		respondError(w, err)
		return
	}
	if subtle.ConstantTimeCompare([]byte(key), []byte(s.polkaKey)) != 1 {
		respondError(w, common.ErrorUnauthorized)
		return
	}

	// Provider payloads gain fields over time, so this decode stays lenient.
	var req struct {
		Event string `json:"event"`
		Data  struct {
			UserID string `json:"user_id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, common.ErrorBadRequest)
		return
	}

	if req.Event != services.EventUserUpgraded {
		respondJSON(w, http.StatusNoContent, nil)
		return
	}

	userID, err := uuid.Parse(req.Data.UserID)
	if err != nil {
		respondError(w, common.ErrorBadRequest)
		return
	}

	if err := s.webhooks.UpgradeUser(r.Context(), userID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/chirpy/internal/server/auth"
)

type loginResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	IsChirpyRed  bool      `json:"is_chirpy_red"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email            string `json:"email"`
		Password         string `json:"password"`
		ExpiresInSeconds int64  `json:"expires_in_seconds"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	requestedTTL := time.Duration(req.ExpiresInSeconds) * time.Second
	user, pair, err := s.users.Login(r.Context(), req.Email, req.Password, requestedTTL)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{
		ID:           user.ID,
		Email:        user.Email,
		IsChirpyRed:  user.IsChirpyRed,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	refreshToken, err := auth.GetBearerToken(r.Header)
	if err != nil {
		respondError(w, err)
		return
	}

	accessToken, err := s.users.Refresh(r.Context(), refreshToken)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Token string `json:"token"`
	}{Token: accessToken})
}

func (s *Server) handleRevoke(w http.ResponseWriter, r *http.Request) {
	refreshToken, err := auth.GetBearerToken(r.Header)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := s.users.Revoke(r.Context(), refreshToken); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

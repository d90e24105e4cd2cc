package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/chirpy/internal/common"
	"github.com/dmitrijs2005/chirpy/internal/server/models"
	"github.com/dmitrijs2005/chirpy/internal/server/repositories/chirps"
)

type chirpResponse struct {
	ID        uuid.UUID `json:"id"`
	Body      string    `json:"body"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toChirpResponse(c *models.Chirp) chirpResponse {
	return chirpResponse{
		ID:        c.ID,
		Body:      c.Body,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func chirpIDFromURL(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "chirpID"))
	if err != nil {
		return uuid.Nil, common.ErrorBadRequest
	}
	return id, nil
}

func (s *Server) handleCreateChirp(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authenticate(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	chirp, err := s.chirps.Create(r.Context(), userID, req.Body)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toChirpResponse(chirp))
}

func (s *Server) handleListChirps(w http.ResponseWriter, r *http.Request) {
	var opts chirps.ListOptions

	if raw := r.URL.Query().Get("author_id"); raw != "" {
		authorID, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, common.ErrorBadRequest)
			return
		}
		opts.AuthorID = &authorID
	}
	opts.Descending = r.URL.Query().Get("sort") == "desc"

	list, err := s.chirps.List(r.Context(), opts)
	if err != nil {
		respondError(w, err)
		return
	}

	resp := make([]chirpResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toChirpResponse(&list[i]))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetChirp(w http.ResponseWriter, r *http.Request) {
	chirpID, err := chirpIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	chirp, err := s.chirps.GetByID(r.Context(), chirpID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toChirpResponse(chirp))
}

func (s *Server) handleDeleteChirp(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authenticate(r)
	if err != nil {
		respondError(w, err)
		return
	}

	chirpID, err := chirpIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := s.chirps.Delete(r.Context(), chirpID, userID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

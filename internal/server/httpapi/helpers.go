package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/chirpy/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

// decodeJSON decodes the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return common.ErrorBadRequest
	}
	return nil
}

// respondJSON writes payload as JSON with the given status code. A nil
// payload produces an empty body.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// respondError maps a domain error kind to an HTTP status code and writes a
// JSON error body. Unrecognized errors become a generic 500 so internal
// details never leak to clients.
func respondError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "something went wrong"
	}
	respondJSON(w, status, errorResponse{Error: msg})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, common.ErrorBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

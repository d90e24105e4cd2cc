package httpapi

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/chirpy/internal/common"
)

const metricsTemplate = `<html>
<body>
  <h1>Welcome, Chirpy Admin</h1>
  <p>Chirpy has been visited %d times!</p>
</body>
</html>`

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(http.StatusText(http.StatusOK)))
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, metricsTemplate, s.hits.Hits())
}

// handleReset wipes all users (and their chirps and tokens via cascade) and
// zeroes the hit counter. Only available when the server runs in dev mode.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if s.platform != "dev" {
		respondError(w, common.ErrorForbidden)
		return
	}

	if err := s.users.Reset(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	s.hits.Reset()

	s.logger.Info(r.Context(), "database and metrics reset")
	respondJSON(w, http.StatusOK, nil)
}

// Package httpapi exposes the application services over HTTP. Handlers own
// request decoding, credential extraction, and the mapping of domain error
// kinds to status codes; all business rules live in the services.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/chirpy/internal/logging"
	"github.com/dmitrijs2005/chirpy/internal/server/config"
	"github.com/dmitrijs2005/chirpy/internal/server/metrics"
	"github.com/dmitrijs2005/chirpy/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

// Server wires services, configuration, and the hit counter into HTTP handlers.
type Server struct {
	address   string
	logger    logging.Logger
	users     *services.UserService
	chirps    *services.ChirpService
	webhooks  *services.WebhookService
	hits      *metrics.Counter
	jwtSecret []byte
	polkaKey  string
	platform  string
}

// NewServer constructs the HTTP layer over the given services.
func NewServer(cfg *config.Config, l logging.Logger, us *services.UserService, cs *services.ChirpService, ws *services.WebhookService) *Server {
	return &Server{
		address:   cfg.EndpointAddr,
		logger:    l.With("module", "httpapi"),
		users:     us,
		chirps:    cs,
		webhooks:  ws,
		hits:      metrics.NewCounter(),
		jwtSecret: []byte(cfg.SecretKey),
		polkaKey:  cfg.PolkaKey,
		platform:  cfg.Platform,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "stopping HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Package httpapi is the thin HTTP transport over the auth core. Handlers
// decode JSON, call the session facade, and map the error taxonomy to
// status codes; no business rules live here.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/prathm201999/auth-service/internal/logging"
	"github.com/prathm201999/auth-service/internal/server/services"
)

const shutdownTimeout = 30 * time.Second

type Server struct {
	address string
	logger  logging.Logger
	auth    *services.AuthService
}

func NewServer(address string, l logging.Logger, authService *services.AuthService) *Server {
	return &Server{
		address: address,
		logger:  l.With("module", "http_server"),
		auth:    authService,
	}
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", s.handleSignUp)
		r.Post("/login", s.handleLogin)
		r.Post("/token/refresh", s.handleRefresh)
		r.Post("/token/revoke", s.handleRevoke)
		r.Get("/users/me", s.handleWhoAmI)
		r.Get("/users/me/sessions", s.handleSessions)
	})

	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.address, Handler: s.routes()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"francoggm/paygate-go-redis/internal/app/server/handlers"
	"francoggm/paygate-go-redis/internal/app/server/rawbody"
	"francoggm/paygate-go-redis/internal/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	glog "github.com/goliatone/go-logger/glog"
)

type Server struct {
	cfg      *config.Config
	router   *chi.Mux
	handlers *handlers.Handlers
	logger   glog.Logger
}

func NewServer(cfg *config.Config, h *handlers.Handlers, logger glog.Logger) *Server {
	srv := &Server{
		cfg:      cfg,
		router:   chi.NewRouter(),
		handlers: h,
		logger:   glog.Ensure(logger),
	}

	srv.registerRoutes()
	return srv
}

func (s *Server) registerRoutes() {
	s.router.Use(middleware.RequestID, middleware.Recoverer)

	s.router.Get("/", s.handlers.Root)
	s.router.Get("/privacy", s.handlers.Privacy)
	s.router.Get("/healthz", s.handlers.Health)
	s.router.Get("/getPaymentURL", s.handlers.GetPaymentURL)
	s.router.Get("/hasUserPaid", s.handlers.HasUserPaid)

	s.router.With(rawbody.Capture(s.cfg.Server.MaxBodyBytes, s.logger)).
		Post("/webhook/stripe", s.handlers.StripeWebhook)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most server.shutdown_timeout.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", s.cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", httpServer.Addr)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("http server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: listen: %w", err)
	}

	return nil
}

package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/davidbz/gamehost/internal/config"
	"github.com/davidbz/gamehost/internal/http/middleware"
	"github.com/davidbz/gamehost/internal/observability"
)

// Server represents the HTTP server.
type Server struct {
	config      config.ServerConfig
	handler     *Handler
	middlewares middleware.Middleware
	checkoutMW  middleware.Middleware
	srv         *http.Server
}

// NewServer creates a new HTTP server. Session creation routes are
// additionally rate limited per client address.
func NewServer(
	cfg *config.Config,
	handler *Handler,
	middlewares middleware.Middleware,
	limiter middleware.Limiter,
) *Server {
	window := time.Duration(cfg.RateLimit.Window) * time.Second

	return &Server{
		config:      cfg.Server,
		handler:     handler,
		middlewares: middlewares,
		checkoutMW:  middleware.RateLimit(limiter, window, cfg.RateLimit.Requests),
		srv:         nil,
	}
}

// Routes builds the request multiplexer with the middleware chain applied.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	checkout := s.checkoutMW(http.HandlerFunc(s.handler.HandleCreateSession))

	// Register routes. Only POSTs reach the rate limiter.
	mux.Handle("POST /v1/checkout/sessions", checkout)
	mux.Handle("POST /create-checkout", checkout)
	mux.HandleFunc("GET /v1/checkout/sessions/{id}", s.handler.HandleResolveSession)
	mux.HandleFunc("GET /sandbox/pay/{id}", s.handler.HandleSandboxPage)
	mux.HandleFunc("/v1/quotes", s.handler.HandleQuote)
	mux.HandleFunc("/v1/rules", s.handler.HandleRules)
	mux.HandleFunc("/health", s.handler.HandleHealth)
	mux.Handle("/metrics", observability.MetricsHandler())

	if s.middlewares == nil {
		return mux
	}
	return s.middlewares(mux)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	// Create server with timeouts.
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.Routes(),
		ReadTimeout:  time.Duration(s.config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.WriteTimeout) * time.Second,
	}

	ctx := context.Background()
	observability.FromContext(ctx).Info("starting HTTP server", observability.Int("port", s.config.Port))

	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	observability.FromContext(ctx).Info("shutting down HTTP server")

	if s.srv == nil {
		return nil
	}

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

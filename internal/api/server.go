package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/amaumene/cinescout/internal/api/handlers"
	"github.com/amaumene/cinescout/internal/api/middleware"
	"github.com/amaumene/cinescout/internal/config"
	"github.com/amaumene/cinescout/internal/models"
	"github.com/amaumene/cinescout/internal/state"
	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// bindRetries bounds how often a busy callback address is retried
const bindRetries = 3

// Server is the local callback server. It receives federated login
// completion messages and exposes health, status and metrics.
type Server struct {
	server   *http.Server
	store    *state.Store
	messages chan<- models.OAuthMessage
	gatherer prometheus.Gatherer
	logger   *logrus.Logger
}

// NewServer creates a new callback server. The OAuth routes are only
// served when messages is non-nil; gatherer may be nil to skip /metrics.
func NewServer(cfg *config.Config, store *state.Store, messages chan<- models.OAuthMessage, gatherer prometheus.Gatherer, logger *logrus.Logger) *Server {
	s := &Server{
		store:    store,
		messages: messages,
		gatherer: gatherer,
		logger:   logger,
	}

	mux := http.NewServeMux()
	s.setupRoutes(mux)

	s.server = &http.Server{
		Addr:         cfg.CallbackAddr,
		Handler:      middleware.Logging(mux, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(mux *http.ServeMux) {
	healthHandler := handlers.NewHealthHandler(s.logger)
	mux.HandleFunc("/health", healthHandler.ServeHTTP)

	statusHandler := handlers.NewStatusHandler(s.store, s.logger)
	mux.HandleFunc("/status", statusHandler.ServeHTTP)

	// Without a login waiting on messages there is nothing to deliver to
	if s.messages != nil {
		oauthHandler := handlers.NewOAuthHandler(s.store, s.messages, s.logger)
		mux.HandleFunc("/oauth/message", oauthHandler.ServeMessage)
		mux.HandleFunc("/oauth/complete", oauthHandler.ServeComplete)
	}

	if s.gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
}

// Handler returns the server's root handler
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// CompletionURL is the browser redirect target for federated login
func (s *Server) CompletionURL() string {
	return "http://" + s.server.Addr + "/oauth/complete"
}

// Start starts the HTTP server and blocks until ctx is done
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("addr", s.server.Addr).Info("Starting callback server")

	// A previous instance may still hold the address for a moment
	var listener net.Listener
	bind := func() error {
		var err error
		listener, err = net.Listen("tcp", s.server.Addr)
		return err
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), bindRetries), ctx)
	notify := func(err error, wait time.Duration) {
		s.logger.WithError(err).WithField("retry_in", wait).Warn("Callback address busy, retrying")
	}
	if err := backoff.RetryNotify(bind, policy, notify); err != nil {
		return fmt.Errorf("failed to bind callback server: %w", err)
	}

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down callback server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

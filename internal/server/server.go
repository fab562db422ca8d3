// Package server runs the relay's HTTP surface: the send endpoint plus
// health and metrics.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/remotenode/telegram-relay/internal/config"
	"github.com/remotenode/telegram-relay/internal/relay"
	"github.com/remotenode/telegram-relay/internal/telegram"
)

// Server owns the HTTP listener and routes.
type Server struct {
	settings *config.Settings
	logger   *slog.Logger
	handler  *relay.Handler
	server   *http.Server
}

// New builds a server from settings. The Telegram client is shared across
// requests; credentials are per-request.
func New(settings *config.Settings, logger *slog.Logger) *Server {
	client := telegram.NewClient(settings.TelegramAPIURL)
	return &Server{
		settings: settings,
		logger:   logger,
		handler:  relay.NewHandler(client, settings.ProjectsVar, logger),
	}
}

// buildRouter constructs the chi mux with all routes wired.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// The send endpoint owns its method dispatch (OPTIONS preflight, POST,
	// 405 for the rest), so it is mounted for all methods.
	r.Handle("/api/send", s.handler)

	r.Get("/health", s.handleHealth())
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Start binds the listener and serves in the background.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.settings.Bind,
		Handler:      s.buildRouter(),
		ReadTimeout:  s.settings.ReadTimeout,
		WriteTimeout: s.settings.WriteTimeout,
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(context.Background(), "tcp", s.settings.Bind)
	if err != nil {
		return errors.New("server: listen failed: " + err.Error())
	}

	go func() {
		s.logger.Info("relay listening", "addr", s.settings.Bind)
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("serve error", "error", err)
		}
	}()

	return nil
}

// Stop shuts the server down gracefully within the configured timeout.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, s.settings.ShutdownTimeout)
	defer cancel()

	s.logger.Info("relay shutting down")
	return s.server.Shutdown(shutdownCtx)
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hvaillant/cinewatch/internal/api/handlers"
	"github.com/hvaillant/cinewatch/internal/api/middleware"
	"github.com/hvaillant/cinewatch/internal/config"
	"github.com/hvaillant/cinewatch/internal/services/fileindex"
	"github.com/hvaillant/cinewatch/internal/services/tmdb"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server
type Server struct {
	server  *http.Server
	files   *fileindex.Client
	catalog *tmdb.Client
	limiter middleware.Limiter
	logger  *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, files *fileindex.Client, catalog *tmdb.Client, limiter middleware.Limiter, logger *logrus.Logger) *Server {
	s := &Server{
		files:   files,
		catalog: catalog,
		limiter: limiter,
		logger:  logger,
	}

	mux := http.NewServeMux()
	s.setupRoutes(mux)

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      middleware.Logging(mux, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes. API routes share the injected
// rate limiter; the health check stays unthrottled for probes.
func (s *Server) setupRoutes(mux *http.ServeMux) {
	limited := func(h http.Handler) http.Handler {
		return middleware.RateLimit(h, s.limiter)
	}

	healthHandler := handlers.NewHealthHandler(s.logger)
	mux.Handle("/health", healthHandler)

	downloadHandler := handlers.NewDownloadHandler(s.files, s.logger)
	mux.Handle("/api/download-check", limited(downloadHandler))

	catalogHandler := handlers.NewCatalogHandler(s.catalog, s.logger)
	mux.Handle("/api/trending", limited(http.HandlerFunc(catalogHandler.Trending)))
	mux.Handle("/api/search", limited(http.HandlerFunc(catalogHandler.Search)))
	mux.Handle("/api/genre", limited(http.HandlerFunc(catalogHandler.Genre)))
	mux.Handle("/api/top-rated-combined", limited(http.HandlerFunc(catalogHandler.TopRated)))
	mux.Handle("/api/kdramas", limited(http.HandlerFunc(catalogHandler.KDramas)))
	mux.Handle("/api/recently-added", limited(http.HandlerFunc(catalogHandler.Recent)))
	mux.Handle("/api/related", limited(http.HandlerFunc(catalogHandler.Related)))
	mux.Handle("/api/media", limited(http.HandlerFunc(catalogHandler.Details)))
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("addr", s.server.Addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

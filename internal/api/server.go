package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/docsplit"
	"github.com/dgallion1/docsplit/internal/config"
	"github.com/dgallion1/docsplit/internal/stats"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for docsplit.
type Server struct {
	router chi.Router
	stats  *stats.Latency
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(cfg config.Config, latency *stats.Latency, log *slog.Logger) *Server {
	s := &Server{
		stats: latency,
		log:   log,
		cfg:   cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/sections", s.handleSections)
		r.Post("/api/sections/find", s.handleFindSection)
		r.Post("/api/export", s.handleExport)
		r.Get("/api/stats/extract", s.handleExtractStats)
	})

	s.router = r
}

// sectionConfig maps server settings onto the library configuration.
func (s *Server) sectionConfig(log *slog.Logger) docsplit.Config {
	return docsplit.Config{
		PreambleTitle:     s.cfg.PreambleTitle,
		SkipDocumentTitle: s.cfg.SkipDocumentTitle,
		MaxFilenameLength: s.cfg.MaxFilenameLength,
		Manifest:          s.cfg.ExportManifest,
		Logger:            log,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

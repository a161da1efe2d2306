// Package api implements the HTTP API for the D-MRV service.
//
// The API exposes the same pipeline the CLI uses: photo compliance
// analysis, satellite evidence rendering, the farmer knowledge base, and
// stored verification reports. Handlers translate HTTP concerns at the
// boundary and delegate everything else to the library packages.
package api

import (
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/kisan-depin/dmrv/pkg/evidence"
	"github.com/kisan-depin/dmrv/pkg/kb"
	"github.com/kisan-depin/dmrv/pkg/report"
	"github.com/kisan-depin/dmrv/pkg/verify"
)

// Config assembles the server's collaborators.
type Config struct {
	// Runner renders evidence artifacts. Required.
	Runner *evidence.Runner

	// Reports stores verification reports. Required.
	Reports report.Store

	// Agent answers knowledge-base questions.
	Agent kb.Agent

	// OutputDir receives rendered artifacts.
	OutputDir string

	// QualifyNames coordinate-qualifies shared artifact filenames; the
	// server defaults this on so concurrent renders do not collide.
	QualifyNames bool

	// AllowedOrigins configures CORS. Empty means allow all.
	AllowedOrigins []string

	// Logger receives request and handler logs.
	Logger *log.Logger
}

// Server is the HTTP API server.
type Server struct {
	runner       *evidence.Runner
	reports      report.Store
	agent        kb.Agent
	classifier   verify.Classifier
	outputDir    string
	qualifyNames bool
	logger       *log.Logger
	router       chi.Router
}

// NewServer builds the server and mounts its routes.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s := &Server{
		runner:       cfg.Runner,
		reports:      cfg.Reports,
		agent:        cfg.Agent,
		classifier:   verify.NewClassifier(),
		outputDir:    cfg.OutputDir,
		qualifyNames: cfg.QualifyNames,
		logger:       logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/evidence", s.handleEvidence)
		r.Post("/ask", s.handleAsk)
		r.Get("/knowledge", s.handleKnowledge)
		r.Get("/reports", s.handleListReports)
		r.Get("/reports/{id}", s.handleGetReport)
	})
	s.router = r

	return s
}

// Handler returns the mounted router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// logRequests emits one structured line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

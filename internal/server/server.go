// Package server exposes the health check as a small JSON API.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/naka-gawa/repo-health/internal/domain"
	"github.com/naka-gawa/repo-health/internal/gateway"
	"github.com/naka-gawa/repo-health/internal/usecase"
)

// Server handles HTTP requests. Each request runs one full, stateless
// health check; nothing is cached between requests.
type Server struct {
	Router   *chi.Mux
	fetcher  gateway.Fetcher
	analyzer *usecase.Analyzer
	logger   *log.Logger
}

// New creates a web server around the given fetcher and analyzer.
func New(fetcher gateway.Fetcher, analyzer *usecase.Analyzer, logger *log.Logger) *Server {
	s := &Server{
		fetcher:  fetcher,
		analyzer: analyzer,
		logger:   logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))

	r.Get("/healthz", s.liveness)
	r.Route("/api", func(r chi.Router) {
		r.Get("/repos/{owner}/{repo}/health", s.getHealth)
	})

	s.Router = r
}

func (s *Server) liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "repo-health",
		"timestamp": time.Now().UTC(),
	})
}

// getHealth runs one health check for the repository in the URL. The two
// fetches are sequential: commits are mandatory and abort the request on
// failure, issues are best effort and silently fall back to zero stats.
func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner := chi.URLParam(r, "owner")
	repo := chi.URLParam(r, "repo")
	compare := r.URL.Query().Get("compare")

	commits, err := s.fetcher.FetchCommits(ctx, owner, repo)
	if err != nil {
		s.logger.Error("commit fetch failed", "owner", owner, "repo", repo, "err", err)
		writeError(w, err)
		return
	}

	issues := s.fetcher.FetchClosedIssues(ctx, owner, repo)

	report, err := s.analyzer.Analyze(owner, repo, commits, issues, compare)
	if err != nil && !errors.Is(err, domain.ErrAuthorNotFound) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}

	// An unknown comparison author is an inline notice, not a failure: the
	// report is complete and the comparison block carries found=false.
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "success",
		"data":      report,
		"timestamp": time.Now().UTC(),
	})
}

// writeError maps fetch failures onto response codes. A non-2xx from the
// commits endpoint keeps its upstream status so callers can tell a missing
// repository from an auth problem.
func writeError(w http.ResponseWriter, err error) {
	var fe *domain.FetchError
	switch {
	case errors.As(err, &fe):
		writeJSON(w, fe.StatusCode, map[string]any{"error": fe.Error()})
	case errors.Is(err, domain.ErrEmptyRepository):
		writeJSON(w, http.StatusNotFound, map[string]any{"error": err.Error()})
	default:
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck // headers already sent
}

// Start blocks serving HTTP on addr.
func (s *Server) Start(addr string) error {
	s.logger.Info("starting repo-health API", "addr", addr)
	return http.ListenAndServe(addr, s.Router)
}

package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/core"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/internal"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/internal/report"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/ports"
)

// Server exposes stored assessments over a read-only HTTP surface. It reads
// results purely as data; nothing here can reach back into the pipeline.
type Server struct {
	router *chi.Mux
	reader ports.RunReaderPort
	logger *internal.Logger
}

// NewServer creates the results API server.
func NewServer(reader ports.RunReaderPort, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	s := &Server{
		router: chi.NewRouter(),
		reader: reader,
		logger: logger,
	}

	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	s.router.Get("/health", s.handleHealth)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{runID}", s.handleGetRun)
		r.Get("/runs/{runID}/report", s.handleGetReport)
	})

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the server on the given port.
func (s *Server) ListenAndServe(port string) error {
	s.logger.Info("results API listening on :%s", port)
	return http.ListenAndServe(":"+port, s.router)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	summaries, err := s.reader.ListRuns(r.Context(), limit)
	if err != nil {
		s.logger.Error("list runs failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	if summaries == nil {
		summaries = []ports.RunSummary{}
	}
	s.writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	runID, err := core.ParseRunID(chi.URLParam(r, "runID"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid run id")
		return
	}

	assessment, err := s.reader.GetAssessment(r.Context(), runID)
	if err != nil {
		if core.IsNotFoundError(err) {
			s.writeError(w, http.StatusNotFound, "run not found")
			return
		}
		s.logger.Error("get run %s failed: %v", runID, err)
		s.writeError(w, http.StatusInternalServerError, "failed to load run")
		return
	}
	s.writeJSON(w, http.StatusOK, assessment)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	runID, err := core.ParseRunID(chi.URLParam(r, "runID"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid run id")
		return
	}

	assessment, err := s.reader.GetAssessment(r.Context(), runID)
	if err != nil {
		if core.IsNotFoundError(err) {
			s.writeError(w, http.StatusNotFound, "run not found")
			return
		}
		s.logger.Error("get run %s failed: %v", runID, err)
		s.writeError(w, http.StatusInternalServerError, "failed to load run")
		return
	}

	html, err := report.NewBuilder().HTML(assessment)
	if err != nil {
		s.logger.Error("render report for %s failed: %v", runID, err)
		s.writeError(w, http.StatusInternalServerError, "failed to render report")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(html)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

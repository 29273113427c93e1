// Package api exposes a finished run's report over HTTP for the support
// dashboard. It serves a snapshot: the batch completes first, then the
// server starts with the immutable report.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/suporteware/chatminer/internal/aggregate"
)

type Server struct {
	router *chi.Mux
	port   int
	report *aggregate.Report
}

func NewServer(port int, report *aggregate.Report) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router: router,
		port:   port,
		report: report,
	}

	router.Get("/healthz", s.health)
	router.Get("/api/v1/report", s.fullReport)
	router.Get("/api/v1/report/categories", s.categories)
	router.Get("/api/v1/report/refunds", s.refunds)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("report API starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

// Handler returns the underlying router, used by tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) fullReport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.report)
}

func (s *Server) categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.report.Categories)
}

func (s *Server) refunds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"cases":          s.report.RefundCases,
		"retained":       s.report.RefundRetained,
		"retention_rate": s.report.OverallRetentionRate,
		"reasons":        s.report.RefundReasons,
		"strategies":     s.report.Strategies,
		"transitions":    s.report.Transitions,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

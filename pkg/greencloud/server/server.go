// Package server exposes the advisor and report analysis over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/klog/v2"

	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/catalog"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/ccft"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/config"
	"github.com/elevated-systems/greencloud-advisor/pkg/greencloud/insights"
)

// ReadinessChecker reports whether the service is ready to serve traffic
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes recommendation, report, and model endpoints together with
// health and metrics routes
type Server struct {
	httpServer *http.Server
	advisor    *greencloud.Advisor
	catalog    *catalog.Catalog
	reports    *ccft.Store
	chatbot    *ccft.Chatbot
	insights   *insights.Generator
	ready      ReadinessChecker
}

// Option defines a function type for configuring the server
type Option func(*Server)

// WithChatbot enables the report chat and insight endpoints
func WithChatbot(chatbot *ccft.Chatbot) Option {
	return func(s *Server) {
		s.chatbot = chatbot
	}
}

// WithInsightsGenerator enables the workload insights endpoint
func WithInsightsGenerator(generator *insights.Generator) Option {
	return func(s *Server) {
		s.insights = generator
	}
}

// WithReadinessChecker installs a readiness probe backend. Without one the
// server always reports ready.
func WithReadinessChecker(ready ReadinessChecker) Option {
	return func(s *Server) {
		s.ready = ready
	}
}

// New creates an HTTP server serving the advisor API
func New(cfg config.ServerConfig, advisor *greencloud.Advisor, cat *catalog.Catalog, opts ...Option) *Server {
	s := &Server{
		advisor: advisor,
		catalog: cat,
		reports: ccft.NewStore(),
	}

	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/v1/recommendations", s.handleRecommend)
	mux.HandleFunc("GET /api/v1/regions", s.handleRegions)
	mux.HandleFunc("POST /api/v1/insights", s.handleWorkloadInsights)

	mux.HandleFunc("POST /api/v1/reports", s.handleUploadReport)
	mux.HandleFunc("GET /api/v1/reports", s.handleListReports)
	mux.HandleFunc("GET /api/v1/reports/{id}", s.handleGetReport)
	mux.HandleFunc("GET /api/v1/reports/{id}/summary", s.handleReportSummary)
	mux.HandleFunc("POST /api/v1/reports/{id}/chat", s.handleReportChat)
	mux.HandleFunc("GET /api/v1/reports/{id}/insights", s.handleReportInsights)
	mux.HandleFunc("DELETE /api/v1/reports/{id}", s.handleDeleteReport)

	s.httpServer = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	klog.InfoS("HTTP server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := s.ready.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// Package httpapi serves the exporter endpoints: Prometheus metrics
// refreshed from the latest snapshot, plus health and info.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"webmon/internal/metrics"
	"webmon/internal/repo"
)

type Server struct {
	Logger   *zap.Logger
	Snapshot repo.SnapshotStore
	Registry *prometheus.Registry
	Metrics  *metrics.Set

	promHandler http.Handler
}

func NewServer(l *zap.Logger, snapshot repo.SnapshotStore) *Server {
	if l == nil {
		l = zap.NewNop()
	}
	reg := prometheus.NewRegistry()
	return &Server{
		Logger:      l,
		Snapshot:    snapshot,
		Registry:    reg,
		Metrics:     metrics.New(reg),
		promHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/metrics", s.handleMetrics)
	r.Get("/healthz", s.handleHealth)
	r.Get("/", s.handleIndex)

	return r
}

// handleMetrics reloads the snapshot on every scrape so the exporter can
// run as a separate process from the cron-invoked monitor.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	batch, err := s.Snapshot.Load(r.Context())
	if err != nil {
		s.Logger.Warn("snapshot_load_error", zap.Error(err))
	}
	s.Metrics.Observe(batch)

	s.promHandler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"service": "webmon exporter",
		"endpoints": map[string]string{
			"/metrics": "Prometheus metrics",
			"/healthz": "Health check",
			"/":        "This page",
		},
	})
}

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nazgull08/fuelbench/config"
	"github.com/nazgull08/fuelbench/pkg/bench"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Server exposes benchmark state over HTTP while the runner loops in watch
// mode: prometheus metrics, a JSON health summary and a readiness probe.
type Server struct {
	cfg       *config.Config
	tracker   *bench.Tracker
	router    *chi.Mux
	startTime time.Time
	httpSrv   *http.Server
}

func NewServer(cfg *config.Config, tracker *bench.Tracker) *Server {
	return &Server{
		cfg:       cfg,
		tracker:   tracker,
		router:    chi.NewRouter(),
		startTime: time.Now(),
	}
}

func (s *Server) Start() error {
	s.setupMiddleware()
	s.setupRoutes()

	s.httpSrv = &http.Server{
		Addr:    ":" + strconv.Itoa(s.cfg.ServerPort),
		Handler: s.router,
	}

	log.Info().Msgf("Starting server on port %d", s.cfg.ServerPort)
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv != nil {
		return s.httpSrv.Shutdown(ctx)
	}
	return nil
}

// GetHandler returns the http.Handler for testing or custom usage
func (s *Server) GetHandler() http.Handler {
	s.setupMiddleware()
	s.setupRoutes()
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.cfg.RequestTimeout + 5*time.Second))
}

func (s *Server) setupRoutes() {
	s.router.Handle("/metrics", promhttp.Handler())
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/ready", s.handleReady)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if len(s.tracker.Endpoints()) > 0 {
		w.Write([]byte("READY"))
	} else {
		http.Error(w, "Not Ready", http.StatusServiceUnavailable)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	endpoints := s.tracker.Endpoints()
	healthyCount := 0
	for _, e := range endpoints {
		if e.Healthy {
			healthyCount++
		}
	}

	status := "unhealthy"
	if healthyCount > 0 {
		status = "healthy"
	}

	totalRuns := sum(endpoints, func(e *bench.Endpoint) int64 {
		if e.Stats != nil {
			return e.Stats.TotalRuns
		}
		return 0
	})

	totalErrors := sum(endpoints, func(e *bench.Endpoint) int64 {
		if e.Stats != nil {
			return e.Stats.TotalErrors
		}
		return 0
	})

	response := map[string]interface{}{
		"status":    status,
		"uptime":    time.Since(s.startTime).Seconds(),
		"endpoints": endpoints,
		"metrics": map[string]interface{}{
			"totalRuns":   totalRuns,
			"totalErrors": totalErrors,
			"errorRate":   safeDiv(totalErrors, totalRuns),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// Helper functions for metrics aggregation
func sum(endpoints []*bench.Endpoint, extractor func(*bench.Endpoint) int64) int64 {
	var total int64
	for _, e := range endpoints {
		total += extractor(e)
	}
	return total
}

func safeDiv(numerator, denominator int64) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}

package server

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nazgull08/fuelbench/config"
	"github.com/nazgull08/fuelbench/pkg/bench"
	"github.com/stretchr/testify/assert"
)

func TestHealthEndpoint(t *testing.T) {
	cfg := &config.Config{ProviderURLs: []string{"node1", "node2"}}
	tracker := bench.NewTracker(cfg.ProviderURLs)

	tracker.RecordSuccess("node1", &bench.NodeResult{
		Duration:    15 * time.Millisecond,
		BlockHeight: 12345,
		GasPrice:    1,
	})
	tracker.RecordFailure("node2", errors.New("timeout"))

	srv := NewServer(cfg, tracker)
	handler := srv.GetHandler()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)

	var body struct {
		Status    string            `json:"status"`
		Endpoints []*bench.Endpoint `json:"endpoints"`
		Metrics   struct {
			TotalRuns   int64   `json:"totalRuns"`
			TotalErrors int64   `json:"totalErrors"`
			ErrorRate   float64 `json:"errorRate"`
		} `json:"metrics"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "healthy", body.Status)
	assert.Len(t, body.Endpoints, 2)
	assert.True(t, body.Endpoints[0].Healthy)
	assert.Equal(t, uint64(12345), body.Endpoints[0].BlockHeight)
	assert.False(t, body.Endpoints[1].Healthy)
	assert.Equal(t, "timeout", body.Endpoints[1].LastError)
	assert.Equal(t, int64(2), body.Metrics.TotalRuns)
	assert.Equal(t, int64(1), body.Metrics.TotalErrors)
	assert.Equal(t, 0.5, body.Metrics.ErrorRate)
}

func TestReadyEndpoint(t *testing.T) {
	cfg := &config.Config{ProviderURLs: []string{"node1"}}
	srv := NewServer(cfg, bench.NewTracker(cfg.ProviderURLs))
	handler := srv.GetHandler()

	req := httptest.NewRequest("GET", "/ready", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "READY", w.Body.String())
}

func TestReadyEndpoint_NoEndpoints(t *testing.T) {
	cfg := &config.Config{}
	srv := NewServer(cfg, bench.NewTracker(nil))
	handler := srv.GetHandler()

	req := httptest.NewRequest("GET", "/ready", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, 503, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	cfg := &config.Config{ProviderURLs: []string{"node1"}}
	srv := NewServer(cfg, bench.NewTracker(cfg.ProviderURLs))
	handler := srv.GetHandler()

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
}

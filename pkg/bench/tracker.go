package bench

import (
	"sync"
	"time"

	"github.com/nazgull08/fuelbench/pkg/metrics"
)

const LatencyWindowSize = 100

type LatencyStats struct {
	AvgLatency     time.Duration   `json:"avgLatency"`
	MaxLatency     time.Duration   `json:"maxLatency"`
	MinLatency     time.Duration   `json:"minLatency"`
	TotalRuns      int64           `json:"totalRuns"`
	TotalErrors    int64           `json:"totalErrors"`
	LatencyHistory []time.Duration `json:"-"` // Hidden from JSON
}

type Endpoint struct {
	URL         string        `json:"url"`
	Healthy     bool          `json:"healthy"`
	BlockHeight uint64        `json:"blockHeight"`
	GasPrice    uint64        `json:"gasPrice"`
	LastChecked time.Time     `json:"lastCheck"`
	LastError   string        `json:"lastError,omitempty"`
	Stats       *LatencyStats `json:"stats"`
}

// Tracker keeps per-endpoint benchmark state across runs. It backs the
// health endpoint and the prometheus gauges.
type Tracker struct {
	endpoints []*Endpoint
	mu        sync.RWMutex
}

func NewTracker(urls []string) *Tracker {
	var endpoints []*Endpoint
	for _, url := range urls {
		endpoints = append(endpoints, &Endpoint{
			URL:   url,
			Stats: &LatencyStats{},
		})
	}
	return &Tracker{endpoints: endpoints}
}

func (t *Tracker) Endpoints() []*Endpoint {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.endpoints
}

func (t *Tracker) RecordSuccess(url string, res *NodeResult) {
	t.updateByURL(url, func(e *Endpoint) {
		e.Healthy = true
		e.BlockHeight = res.BlockHeight
		e.GasPrice = res.GasPrice
		e.LastChecked = time.Now()
		e.LastError = ""
		e.Stats.TotalRuns++
		e.Stats.recordLatency(res.Duration)
	})
}

func (t *Tracker) RecordFailure(url string, err error) {
	t.updateByURL(url, func(e *Endpoint) {
		e.Healthy = false
		e.LastChecked = time.Now()
		e.LastError = err.Error()
		e.Stats.TotalRuns++
		e.Stats.TotalErrors++
	})
}

func (t *Tracker) updateByURL(url string, updateOp func(*Endpoint)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, e := range t.endpoints {
		if e.URL == url {
			if e.Stats == nil {
				e.Stats = &LatencyStats{}
			}
			updateOp(e)
			t.updateMetrics(e)
			return
		}
	}
}

func (t *Tracker) updateMetrics(e *Endpoint) {
	metrics.SetEndpointHealth(e.URL, e.Healthy)
	metrics.SetEndpointBlockHeight(e.URL, e.BlockHeight)
	metrics.SetEndpointGasPrice(e.URL, e.GasPrice)
}

// recordLatency adds a new latency sample and recalculates stats
func (ls *LatencyStats) recordLatency(d time.Duration) {
	if ls.LatencyHistory == nil {
		ls.LatencyHistory = make([]time.Duration, 0, LatencyWindowSize)
	}

	if len(ls.LatencyHistory) < LatencyWindowSize {
		ls.LatencyHistory = append(ls.LatencyHistory, d)
	} else {
		ls.LatencyHistory = append(ls.LatencyHistory[1:], d)
	}

	var total time.Duration
	var min, max time.Duration
	if len(ls.LatencyHistory) > 0 {
		min = ls.LatencyHistory[0]
		max = ls.LatencyHistory[0]
	}

	for _, l := range ls.LatencyHistory {
		total += l
		if l < min {
			min = l
		}
		if l > max {
			max = l
		}
	}

	ls.AvgLatency = total / time.Duration(len(ls.LatencyHistory))
	ls.MinLatency = min
	ls.MaxLatency = max
}

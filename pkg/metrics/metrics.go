package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BenchmarkTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fuelbench_benchmark_runs_total",
		Help: "The total number of benchmark runs",
	}, []string{"routine", "endpoint", "outcome"})

	BenchmarkDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fuelbench_benchmark_duration_seconds",
		Help:    "The end-to-end duration of successful benchmark runs",
		Buckets: prometheus.DefBuckets,
	}, []string{"routine", "endpoint"})

	EndpointHealth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "fuelbench_endpoint_health",
		Help: "Whether the last benchmark against the endpoint succeeded (1 = yes, 0 = no)",
	}, []string{"url"})

	EndpointBlockHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "fuelbench_endpoint_block_height",
		Help: "Latest block height reported by the endpoint",
	}, []string{"url"})

	EndpointGasPrice = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "fuelbench_endpoint_gas_price",
		Help: "Latest gas price reported by the endpoint",
	}, []string{"url"})
)

func Register() {
	// promauto registers automatically to the DefaultRegisterer
}

// RecordBenchmark increments the run counter
func RecordBenchmark(routine, endpoint, outcome string) {
	BenchmarkTotal.WithLabelValues(routine, endpoint, outcome).Inc()
}

// ObserveBenchmarkDuration observes a successful run's duration
func ObserveBenchmarkDuration(routine, endpoint string, seconds float64) {
	BenchmarkDuration.WithLabelValues(routine, endpoint).Observe(seconds)
}

// SetEndpointHealth sets the health gauge for an endpoint
func SetEndpointHealth(url string, healthy bool) {
	val := 0.0
	if healthy {
		val = 1.0
	}
	EndpointHealth.WithLabelValues(url).Set(val)
}

// SetEndpointBlockHeight sets the block height gauge
func SetEndpointBlockHeight(url string, height uint64) {
	EndpointBlockHeight.WithLabelValues(url).Set(float64(height))
}

// SetEndpointGasPrice sets the gas price gauge
func SetEndpointGasPrice(url string, gasPrice uint64) {
	EndpointGasPrice.WithLabelValues(url).Set(float64(gasPrice))
}

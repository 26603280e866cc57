// Package metrics provides performance tracking and observability for
// searchlink using Prometheus metrics. It tracks connection-open attempts,
// classified failures, and open latency.
//
// # Basic Usage
//
//	collector := metrics.NewCollector("search")
//
//	start := time.Now()
//	handle, err := drv.Open(ctx, cs, opts)
//	collector.RecordOpen("search", err == nil, time.Since(start))
//
// # Metric Types
//
// Counter: Monotonically increasing values (e.g., open attempts)
// Gauge: Values that can go up or down (e.g., active handles)
// Histogram: Distribution of values (e.g., open latency percentiles)
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector provides a centralized metrics collection interface for the
// connector. It wraps the package-level Prometheus metrics and carries the
// component name used in labels.
type Collector struct {
	name      string    // Component name for labeling
	startTime time.Time // Collector creation time
	mu        sync.RWMutex
}

// NewCollector creates a new metrics collector for a component.
// The name parameter identifies the component in metrics labels.
func NewCollector(name string) *Collector {
	return &Collector{
		name:      name,
		startTime: time.Now(),
	}
}

// StartTime returns when the collector was created
func (c *Collector) StartTime() time.Time {
	return c.startTime
}

// RecordOpen records one connection-open attempt and its latency.
func (c *Collector) RecordOpen(driver string, success bool, elapsed time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	OpenAttempts.WithLabelValues(c.name, driver, status).Inc()
	OpenLatency.WithLabelValues(c.name, driver).Observe(elapsed.Seconds())
}

// RecordFailure records one classified open failure.
func (c *Collector) RecordFailure(driver, category string) {
	OpenFailures.WithLabelValues(c.name, driver, category).Inc()
}

// HandleOpened increments the active-handle gauge.
func (c *Collector) HandleOpened() {
	ActiveHandles.WithLabelValues(c.name).Inc()
}

// HandleClosed decrements the active-handle gauge.
func (c *Collector) HandleClosed() {
	ActiveHandles.WithLabelValues(c.name).Dec()
}

// GetAll returns all current metric values
func (c *Collector) GetAll() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return map[string]interface{}{
		"component":  c.name,
		"start_time": c.startTime,
		"uptime":     time.Since(c.startTime).Seconds(),
	}
}

var (
	// OpenAttempts tracks connection-open attempts.
	// Labels: component, driver, status (success/failure)
	OpenAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "searchlink_open_attempts_total",
			Help: "Total number of connection open attempts",
		},
		[]string{"component", "driver", "status"},
	)

	// OpenFailures tracks classified open failures.
	// Labels: component, driver, category (driver_not_installed/host_unreachable/...)
	OpenFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "searchlink_open_failures_total",
			Help: "Total number of classified connection failures",
		},
		[]string{"component", "driver", "category"},
	)

	// OpenLatency tracks the distribution of open latencies in seconds.
	// Labels: component, driver
	OpenLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "searchlink_open_latency_seconds",
			Help:    "Connection open latency in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"component", "driver"},
	)

	// ActiveHandles tracks currently open data-source handles.
	// Labels: component
	ActiveHandles = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "searchlink_active_handles",
			Help: "Number of open data source handles",
		},
		[]string{"component"},
	)
)

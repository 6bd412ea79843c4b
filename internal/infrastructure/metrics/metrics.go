// Package metrics records mapping activity with Prometheus collectors.
package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "salamander"

// Status label values.
const (
	StatusOK       = "ok"
	StatusFallback = "fallback"
)

// Recorder collects mapping metrics on a private registry.
type Recorder struct {
	mu       sync.Mutex
	registry *prometheus.Registry

	mappings  *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
	entities  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewRecorder creates a recorder with its collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		mappings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "mappings_total",
			Help:      "Total number of backend payloads mapped",
		}, []string{"domain", "status"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "mapping_fallbacks_total",
			Help:      "Total number of mappings that returned the unavailable view model",
		}, []string{"domain", "reason"}),
		entities: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "mapped_entities_total",
			Help:      "Total number of pages, backlinks or findings mapped",
		}, []string{"domain"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "mapping_duration_seconds",
			Help:      "Duration of a single mapping in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"domain"}),
	}

	r.registry.MustRegister(r.mappings, r.fallbacks, r.entities, r.duration)
	return r
}

// RecordMapping records one orchestrator run. reason is only used when
// fallback is true.
func (r *Recorder) RecordMapping(domain string, elapsed time.Duration, fallback bool, reason string, entities int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	status := StatusOK
	if fallback {
		status = StatusFallback
		if reason == "" {
			reason = "unknown"
		}
		r.fallbacks.WithLabelValues(domain, reason).Inc()
	}
	r.mappings.WithLabelValues(domain, status).Inc()
	r.duration.WithLabelValues(domain).Observe(elapsed.Seconds())
	if entities > 0 {
		r.entities.WithLabelValues(domain).Add(float64(entities))
	}
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the current metrics in the node-exporter textfile
// format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}

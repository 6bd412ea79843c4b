package ports

import (
	"time"

	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
)

// MapResult is the outcome of mapping one backend payload.
// Report is always a fully populated view model, even when Fallback is set.
type MapResult struct {
	Domain   seo.Domain
	Report   seo.Report
	Fallback bool
	// Reason names the stage that forced the fallback (decode, shape, panic).
	Reason   string
	Err      error
	Entities int
	Duration time.Duration
}

// OK returns true if the payload was mapped without falling back.
func (r MapResult) OK() bool {
	return !r.Fallback
}

// Mapper converts raw backend JSON of one domain into its view model.
// Implementations never fail: malformed input yields the domain's
// unavailable view model with Fallback set.
type Mapper interface {
	// Domain returns the analysis domain handled by this mapper.
	Domain() seo.Domain

	// Map parses data and builds the view model.
	Map(data []byte) MapResult

	// MapObject builds the view model from an already decoded payload.
	MapObject(payload map[string]any) MapResult
}

// MapperRegistry manages available mappers.
type MapperRegistry interface {
	// Register adds a mapper to the registry.
	Register(m Mapper)

	// Get returns the mapper for a domain.
	Get(domain seo.Domain) (Mapper, bool)

	// All returns all registered mappers in domain order.
	All() []Mapper
}

// MetricsRecorder records mapping activity.
type MetricsRecorder interface {
	RecordMapping(domain string, elapsed time.Duration, fallback bool, reason string, entities int)
}

// NopMetrics discards every measurement.
type NopMetrics struct{}

// RecordMapping does nothing.
func (NopMetrics) RecordMapping(string, time.Duration, bool, string, int) {}

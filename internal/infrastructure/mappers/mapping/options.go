// Package mapping holds the machinery shared by the per-domain mappers:
// options, the parse error type, payload shape checks and the guarded
// orchestrator boundary.
package mapping

import (
	"time"

	"github.com/felixgeelhaar/firesalamander/internal/domain/scoring"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/logging"
	"github.com/felixgeelhaar/firesalamander/pkg/coerce"
)

// Options configure a mapper.
type Options struct {
	Logger     logging.Logger
	Clock      func() time.Time
	Thresholds scoring.Thresholds
	Tool       string
	Version    string
}

// Option configures Options.
type Option func(*Options)

// WithLogger sets the logger used for fallback diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithClock sets the clock read once per mapping call.
func WithClock(clock func() time.Time) Option {
	return func(o *Options) {
		if clock != nil {
			o.Clock = clock
		}
	}
}

// WithThresholds overrides Core Web Vitals thresholds. Invalid entries
// keep their defaults.
func WithThresholds(t scoring.Thresholds) Option {
	return func(o *Options) {
		o.Thresholds = t.Merge()
	}
}

// WithTool sets the tool name and version stamped into metadata.
func WithTool(tool, version string) Option {
	return func(o *Options) {
		if tool != "" {
			o.Tool = tool
		}
		if version != "" {
			o.Version = version
		}
	}
}

// NewOptions applies opts over the defaults.
func NewOptions(opts ...Option) Options {
	o := Options{
		Logger:     logging.NewNop(),
		Clock:      time.Now,
		Thresholds: scoring.DefaultThresholds(),
		Tool:       seo.DefaultTool,
		Version:    seo.DefaultVersion,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Env is the per-call environment handed to a build function.
type Env struct {
	Now        time.Time
	Thresholds scoring.Thresholds
	Tool       string
	Version    string
}

// Date formats v as an ISO timestamp, defaulting to the call's now.
func (e Env) Date(v any) string {
	return coerce.ValidateISODate(v, e.Now)
}

// Metadata builds the metadata of an analysis from the payload's id and
// date keys. seed makes the derived id stable for a given target.
func (e Env) Metadata(domain seo.Domain, obj coerce.Object, seed string) seo.Metadata {
	md := seo.NewMetadata(
		obj.String("analysis_id", "id"),
		string(domain),
		seed,
		e.Date(obj.Value("analysis_date", "analyzed_at", "created_at", "timestamp")),
	)
	md.Tool = e.Tool
	md.Version = e.Version
	return md
}

// Stamp applies the tool and version to fallback metadata.
func (e Env) Stamp(md seo.Metadata) seo.Metadata {
	md.Tool = e.Tool
	md.Version = e.Version
	return md
}

// Package technical maps raw crawl payloads into the technical SEO view
// model.
package technical

import (
	"github.com/felixgeelhaar/firesalamander/internal/application/ports"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
	model "github.com/felixgeelhaar/firesalamander/internal/domain/technical"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/mappers/mapping"
	"github.com/felixgeelhaar/firesalamander/pkg/coerce"
)

var payloadShape = mapping.Shape{
	"pages":           mapping.KindArray,
	"redirect_chains": mapping.KindArray,
	"config":          mapping.KindObject,
}

// Mapper maps technical payloads. It implements ports.Mapper.
type Mapper struct {
	guard mapping.Guard
}

// NewMapper creates a technical mapper.
func NewMapper(opts ...mapping.Option) *Mapper {
	return &Mapper{guard: mapping.Guard{
		Domain:   seo.DomainTechnical,
		Shape:    payloadShape,
		Build:    build,
		Fallback: fallback,
		Options:  mapping.NewOptions(opts...),
	}}
}

// Domain returns seo.DomainTechnical.
func (m *Mapper) Domain() seo.Domain {
	return seo.DomainTechnical
}

// Map parses data and builds the technical analysis.
func (m *Mapper) Map(data []byte) ports.MapResult {
	return m.guard.Map(data)
}

// MapObject builds the technical analysis from a decoded payload.
func (m *Mapper) MapObject(payload map[string]any) ports.MapResult {
	return m.guard.MapObject(payload)
}

// MapBackendToTechnicalAnalysis maps raw technical JSON. The returned
// report is always a model.Analysis.
func MapBackendToTechnicalAnalysis(data []byte, opts ...mapping.Option) ports.MapResult {
	return NewMapper(opts...).Map(data)
}

func fallback(env mapping.Env) seo.Report {
	a := model.Unavailable(env.Now)
	a.Metadata = env.Stamp(a.Metadata)
	return a
}

func build(obj coerce.Object, env mapping.Env) (seo.Report, int) {
	pages := parsePages(obj.Slice("pages"), env)

	target := obj.String("url", "target_url", "domain")
	if target == "" && len(pages) > 0 {
		target = pages[0].URL
	}

	a := model.Build(target, pages, parseRedirectChains(obj.Slice("redirect_chains")), parseConfig(obj.Object("config")))
	a.Metadata = env.Metadata(seo.DomainTechnical, obj, target)
	return a, len(pages)
}

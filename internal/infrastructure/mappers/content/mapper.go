// Package content maps raw content analysis payloads into the content view
// model.
package content

import (
	"github.com/felixgeelhaar/firesalamander/internal/application/ports"
	model "github.com/felixgeelhaar/firesalamander/internal/domain/content"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/mappers/mapping"
	"github.com/felixgeelhaar/firesalamander/pkg/coerce"
)

var payloadShape = mapping.Shape{
	"pages":        mapping.KindArray,
	"results":      mapping.KindArray,
	"content_gaps": mapping.KindArray,
	"headings":     mapping.KindObject,
}

// Mapper maps content payloads. It implements ports.Mapper.
type Mapper struct {
	guard mapping.Guard
}

// NewMapper creates a content mapper.
func NewMapper(opts ...mapping.Option) *Mapper {
	return &Mapper{guard: mapping.Guard{
		Domain:   seo.DomainContent,
		Shape:    payloadShape,
		Build:    build,
		Fallback: fallback,
		Options:  mapping.NewOptions(opts...),
	}}
}

// Domain returns seo.DomainContent.
func (m *Mapper) Domain() seo.Domain {
	return seo.DomainContent
}

// Map parses data and builds the content analysis.
func (m *Mapper) Map(data []byte) ports.MapResult {
	return m.guard.Map(data)
}

// MapObject builds the content analysis from a decoded payload.
func (m *Mapper) MapObject(payload map[string]any) ports.MapResult {
	return m.guard.MapObject(payload)
}

// MapBackendToContentAnalysis maps raw content JSON. A payload without a
// pages array that carries page keys at the top level is read as a single
// page.
func MapBackendToContentAnalysis(data []byte, opts ...mapping.Option) ports.MapResult {
	return NewMapper(opts...).Map(data)
}

func fallback(env mapping.Env) seo.Report {
	a := model.Unavailable(env.Now)
	a.Metadata = env.Stamp(a.Metadata)
	return a
}

func build(obj coerce.Object, env mapping.Env) (seo.Report, int) {
	pages := parsePages(obj)

	target := obj.String("domain", "site")
	if target == "" {
		target = obj.String("url", "target_url")
	}
	if target == "" && len(pages) > 0 {
		target = pages[0].URL
	}

	a := model.Build(target, pages, parseGaps(obj.Slice("content_gaps", "gaps")))
	a.Metadata = env.Metadata(seo.DomainContent, obj, target)
	return a, len(pages)
}

// Package backlinks maps raw backlink profile payloads into the backlinks
// view model.
package backlinks

import (
	"github.com/felixgeelhaar/firesalamander/internal/application/ports"
	model "github.com/felixgeelhaar/firesalamander/internal/domain/backlinks"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/mappers/mapping"
	"github.com/felixgeelhaar/firesalamander/pkg/coerce"
)

var payloadShape = mapping.Shape{
	"backlinks":       mapping.KindArray,
	"links":           mapping.KindArray,
	"target_keywords": mapping.KindArray,
}

// Mapper maps backlink payloads. It implements ports.Mapper.
type Mapper struct {
	guard mapping.Guard
}

// NewMapper creates a backlinks mapper.
func NewMapper(opts ...mapping.Option) *Mapper {
	return &Mapper{guard: mapping.Guard{
		Domain:   seo.DomainBacklinks,
		Shape:    payloadShape,
		Build:    build,
		Fallback: fallback,
		Options:  mapping.NewOptions(opts...),
	}}
}

// Domain returns seo.DomainBacklinks.
func (m *Mapper) Domain() seo.Domain {
	return seo.DomainBacklinks
}

// Map parses data and builds the backlinks analysis.
func (m *Mapper) Map(data []byte) ports.MapResult {
	return m.guard.Map(data)
}

// MapObject builds the backlinks analysis from a decoded payload.
func (m *Mapper) MapObject(payload map[string]any) ports.MapResult {
	return m.guard.MapObject(payload)
}

// MapBackendToBacklinks maps raw backlink JSON.
func MapBackendToBacklinks(data []byte, opts ...mapping.Option) ports.MapResult {
	return NewMapper(opts...).Map(data)
}

func fallback(env mapping.Env) seo.Report {
	a := model.Unavailable(env.Now)
	a.Metadata = env.Stamp(a.Metadata)
	return a
}

func build(obj coerce.Object, env mapping.Env) (seo.Report, int) {
	raw := obj.Slice("backlinks", "links")

	domain := mapping.Host(obj.String("domain", "target", "url"))
	if domain == "" {
		domain = firstTargetHost(raw)
	}

	classifier := model.NewClassifier(domain, obj.Strings("target_keywords", "keywords"))
	links := make([]model.Backlink, 0, len(raw))
	for _, item := range raw {
		if link := coerce.AsObject(item); link != nil {
			links = append(links, parseBacklink(link, classifier))
		}
	}

	a := model.Build(domain, links)
	a.Metadata = env.Metadata(seo.DomainBacklinks, obj, domain)
	return a, len(links)
}

func firstTargetHost(raw []any) string {
	for _, item := range raw {
		if host := mapping.Host(coerce.AsObject(item).String("target_url", "to")); host != "" {
			return host
		}
	}
	return ""
}

func parseBacklink(obj coerce.Object, classifier *model.Classifier) model.Backlink {
	source := obj.String("source_url", "url", "from")
	sourceDomain := mapping.Host(obj.String("source_domain", "referring_domain"))
	if sourceDomain == "" {
		sourceDomain = mapping.Host(source)
	}
	anchor := obj.String("anchor_text", "anchor")
	spam := coerce.ValidatePercentage(obj.Value("spam_score", "spam"))

	return model.Backlink{
		SourceURL:       source,
		SourceDomain:    sourceDomain,
		TargetURL:       obj.String("target_url", "to"),
		AnchorText:      anchor,
		AnchorType:      classifier.Classify(anchor),
		DomainAuthority: coerce.ValidatePercentage(obj.Value("domain_authority", "authority", "da")),
		Follow:          isFollow(obj),
		FirstSeen:       mapping.OptionalDate(obj.Value("first_seen")),
		LastSeen:        mapping.OptionalDate(obj.Value("last_seen")),
		Status:          model.ClassifyStatus(obj.String("status")),
		SpamScore:       spam,
		Toxic:           spam >= model.ToxicSpamScore,
	}
}

// isFollow reads an explicit follow or nofollow flag before falling back
// to the rel attribute.
func isFollow(obj coerce.Object) bool {
	if b, ok := coerce.Bool(obj.Value("follow", "dofollow")); ok {
		return b
	}
	if b, ok := coerce.Bool(obj.Value("nofollow")); ok {
		return !b
	}
	return model.IsFollow(obj.String("rel"))
}

// Package security maps raw security scan payloads into the security view
// model.
package security

import (
	"github.com/felixgeelhaar/firesalamander/internal/application/ports"
	model "github.com/felixgeelhaar/firesalamander/internal/domain/security"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/mappers/mapping"
	"github.com/felixgeelhaar/firesalamander/pkg/coerce"
	"github.com/felixgeelhaar/firesalamander/pkg/redact"
)

// payloadShape lists the structural keys of a security payload. Headers
// arrive either as an object or as an array, and ssl may be a bare false.
var payloadShape = mapping.Shape{
	"cookies":         mapping.KindArray,
	"vulnerabilities": mapping.KindArray,
}

// Mapper maps security payloads. It implements ports.Mapper.
type Mapper struct {
	guard mapping.Guard
}

// NewMapper creates a security mapper.
func NewMapper(opts ...mapping.Option) *Mapper {
	return &Mapper{guard: mapping.Guard{
		Domain:   seo.DomainSecurity,
		Shape:    payloadShape,
		Build:    build,
		Fallback: fallback,
		Options:  mapping.NewOptions(opts...),
	}}
}

// Domain returns seo.DomainSecurity.
func (m *Mapper) Domain() seo.Domain {
	return seo.DomainSecurity
}

// Map parses data and builds the security analysis.
func (m *Mapper) Map(data []byte) ports.MapResult {
	return m.guard.Map(data)
}

// MapObject builds the security analysis from a decoded payload.
func (m *Mapper) MapObject(payload map[string]any) ports.MapResult {
	return m.guard.MapObject(payload)
}

// MapBackendToSecurityAnalysis maps raw security JSON. The returned report
// is always a model.Analysis. Cookie values never leave the mapper
// unredacted.
func MapBackendToSecurityAnalysis(data []byte, opts ...mapping.Option) ports.MapResult {
	return NewMapper(opts...).Map(data)
}

func fallback(env mapping.Env) seo.Report {
	a := model.Unavailable(env.Now)
	a.Metadata = env.Stamp(a.Metadata)
	return a
}

func build(obj coerce.Object, env mapping.Env) (seo.Report, int) {
	url := redact.RedactURL(obj.String("url", "target_url", "domain"))
	headers := parseHeaders(obj.Value("headers", "security_headers", "response_headers"))
	cookies := parseCookies(obj.Slice("cookies"))
	vulns := parseVulnerabilities(obj.Slice("vulnerabilities"))

	a := model.Analysis{
		URL:             url,
		SSL:             parseSSL(obj.Object("ssl", "ssl_info", "tls"), headers, env.Now),
		Headers:         model.EvaluateHeaders(headers),
		Cookies:         model.SummarizeCookies(cookies),
		Vulnerabilities: model.BucketVulnerabilities(vulns),
		Metadata:        env.Metadata(seo.DomainSecurity, obj, url),
	}
	return a.Finalize(), len(cookies) + len(vulns)
}

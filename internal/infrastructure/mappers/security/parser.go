package security

import (
	"math"
	"net/http"
	"sort"
	"strings"
	"time"

	model "github.com/felixgeelhaar/firesalamander/internal/domain/security"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/mappers/mapping"
	"github.com/felixgeelhaar/firesalamander/pkg/coerce"
	"github.com/felixgeelhaar/firesalamander/pkg/redact"
)

// weakCipherMarkers flag a cipher suite as weak when the backend does not
// report weak ciphers itself.
var weakCipherMarkers = []string{"RC4", "DES", "NULL", "EXPORT", "MD5", "ANON"}

func parseSSL(obj coerce.Object, headers map[string]string, now time.Time) model.SSL {
	if obj == nil || !obj.Bool("enabled", obj.Bool("has_ssl", true)) {
		return model.DisabledSSL()
	}

	raw := obj.String("protocol", "tls_version", "version")
	protocol := model.NormalizeProtocol(raw)
	if protocol == "" {
		protocol = strings.TrimSpace(raw)
	}

	suites := obj.Strings("cipher_suites", "ciphers")
	weak := obj.Strings("weak_ciphers")
	if !obj.Has("weak_ciphers") {
		weak = weakCiphers(suites)
	}

	hstsHeader := headers[http.CanonicalHeaderKey(model.HeaderHSTS)] != ""

	return model.EvaluateSSL(model.SSLConfiguration{
		Protocol:     protocol,
		Protocols:    model.ProtocolTable(raw),
		CipherSuites: suites,
		WeakCiphers:  weak,
		HSTS:         obj.Bool("hsts", hstsHeader),
		Certificate:  parseCertificate(obj.Object("certificate", "cert"), now),
	})
}

func weakCiphers(suites []string) []string {
	weak := []string{}
	for _, suite := range suites {
		upper := strings.ToUpper(suite)
		for _, marker := range weakCipherMarkers {
			if strings.Contains(upper, marker) {
				weak = append(weak, suite)
				break
			}
		}
	}
	return weak
}

// parseCertificate leaves the expiry flags unset when the backend reports
// neither days_remaining nor a parseable expiry date.
func parseCertificate(obj coerce.Object, now time.Time) model.Certificate {
	cert := model.Certificate{
		Subject:      obj.String("subject", "common_name"),
		Issuer:       obj.String("issuer"),
		ValidFrom:    mapping.OptionalDate(obj.Value("valid_from", "not_before")),
		ValidTo:      mapping.OptionalDate(obj.Value("valid_to", "not_after", "expires")),
		IsSelfSigned: obj.Bool("self_signed", obj.Bool("is_self_signed", false)),
		SANs:         obj.Strings("sans", "san", "subject_alt_names"),
	}

	if days, ok := coerce.Number(obj.Value("days_remaining", "days_until_expiry")); ok {
		cert.SetDaysRemaining(int(math.Floor(days)))
	} else if expiry, ok := coerce.ParseTime(obj.Value("valid_to", "not_after", "expires")); ok {
		cert.SetDaysRemaining(int(math.Floor(expiry.Sub(now).Hours() / 24)))
	}
	return cert
}

// parseHeaders accepts a name to value object, an array of {name, value}
// objects or an array of "Name: value" lines. Values reported as objects
// use their value key unless present is false.
func parseHeaders(v any) map[string]string {
	headers := map[string]string{}
	set := func(name string, value any) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if nested := coerce.AsObject(value); nested != nil {
			if !nested.Bool("present", true) {
				return
			}
			value = nested.Value("value")
		}
		if _, isBool := value.(bool); isBool {
			return
		}
		s, ok := coerce.String(value)
		if !ok {
			return
		}
		// A non-empty value beats an empty one; among non-empty values the
		// canonical spelling wins, then the first seen.
		canonical := http.CanonicalHeaderKey(name)
		if prev, seen := headers[canonical]; seen && prev != "" && (s == "" || name != canonical) {
			return
		}
		headers[canonical] = s
	}

	if obj := coerce.AsObject(v); obj != nil {
		names := make([]string, 0, len(obj))
		for name := range obj {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			set(name, obj[name])
		}
		return headers
	}

	for _, item := range coerce.Slice(v) {
		if obj := coerce.AsObject(item); obj != nil {
			set(obj.String("name", "header"), obj.Value("value"))
			continue
		}
		if line, ok := item.(string); ok {
			if name, value, found := strings.Cut(line, ":"); found {
				set(name, strings.TrimSpace(value))
			}
		}
	}
	return headers
}

func parseCookies(raw []any) []model.Cookie {
	cookies := make([]model.Cookie, 0, len(raw))
	for _, item := range raw {
		if obj := coerce.AsObject(item); obj != nil {
			cookies = append(cookies, parseCookieObject(obj).Check())
			continue
		}
		if line, ok := item.(string); ok {
			if c, ok := parseSetCookie(line); ok {
				cookies = append(cookies, c.Check())
			}
		}
	}
	return cookies
}

func parseCookieObject(obj coerce.Object) model.Cookie {
	value, _ := coerce.String(obj.Value("value"))
	return model.Cookie{
		Name:     obj.String("name"),
		Value:    redact.Redact(value),
		Domain:   obj.String("domain"),
		Path:     obj.String("path"),
		Secure:   flag(obj, "secure"),
		HTTPOnly: flag(obj, "http_only", "httponly", "httpOnly"),
		SameSite: model.NormalizeSameSite(obj.String("same_site", "samesite", "sameSite")),
	}
}

func flag(obj coerce.Object, keys ...string) bool {
	b, _ := coerce.Bool(obj.Value(keys...))
	return b
}

// parseSetCookie reads a raw Set-Cookie header line.
func parseSetCookie(line string) (model.Cookie, bool) {
	c, err := http.ParseSetCookie(line)
	if err != nil {
		return model.Cookie{}, false
	}

	sameSite := ""
	switch c.SameSite {
	case http.SameSiteStrictMode:
		sameSite = "Strict"
	case http.SameSiteLaxMode:
		sameSite = "Lax"
	case http.SameSiteNoneMode:
		sameSite = "None"
	}

	return model.Cookie{
		Name:     c.Name,
		Value:    redact.Redact(c.Value),
		Domain:   c.Domain,
		Path:     c.Path,
		Secure:   c.Secure,
		HTTPOnly: c.HttpOnly,
		SameSite: sameSite,
	}, true
}

func parseVulnerabilities(raw []any) []model.Vulnerability {
	vulns := make([]model.Vulnerability, 0, len(raw))
	for i, item := range raw {
		obj := coerce.AsObject(item)
		if obj == nil {
			continue
		}
		cvss, hasCVSS := coerce.Number(obj.Value("cvss", "cvss_score"))
		if hasCVSS {
			cvss = coerce.Clamp(cvss, 0, 10)
		}
		cve := obj.String("cve", "cve_id")
		title := obj.String("title", "name")
		if title == "" {
			title = cve
		}
		vulns = append(vulns, model.Vulnerability{
			ID:          mapping.ID(obj.String("id", "cve", "cve_id"), "vuln", i),
			Title:       title,
			Description: redact.RedactString(obj.String("description", "details")),
			Severity:    model.ClassifyVulnerability(obj.String("severity", "risk"), cvss, hasCVSS),
			CVSS:        cvss,
			CVE:         cve,
			Component:   obj.String("component", "package", "library"),
			Remediation: obj.String("remediation", "fix", "solution"),
		})
	}
	return vulns
}

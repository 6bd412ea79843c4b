package security

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/felixgeelhaar/firesalamander/internal/domain/security"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/mappers/mapping"
	"github.com/felixgeelhaar/firesalamander/pkg/redact"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func clock() mapping.Option {
	return mapping.WithClock(func() time.Time { return fixedNow })
}

const fullPayload = `{
	"analysis_id": "sec-1",
	"url":         "https://example.com/?session=abc123",
	"ssl": {
		"enabled":       true,
		"protocol":      "TLSv1.3",
		"hsts":          true,
		"cipher_suites": ["TLS_AES_128_GCM_SHA256", "TLS_RSA_WITH_RC4_128_SHA"],
		"certificate":   {"subject": "example.com", "issuer": "R3", "valid_to": "2025-03-21T12:00:00Z"}
	},
	"headers": {
		"content-security-policy":   "default-src 'self'",
		"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
		"X-Frame-Options":           "ALLOW-FROM https://other.test",
		"x-content-type-options":    "nosniff"
	},
	"cookies": [
		{"name": "sid", "value": "s3cr3t-session", "secure": true, "http_only": true, "same_site": "lax"},
		"tracker=xyz789; Path=/"
	],
	"vulnerabilities": [
		{"cve": "CVE-2020-0001", "severity": "critical", "component": "openssl"},
		{"title": "Outdated jQuery", "cvss": 5.3},
		{"title": "Server banner", "severity": "bogus"},
		"not an object"
	]
}`

func mapSecurity(t *testing.T, payload string) model.Analysis {
	t.Helper()
	result := MapBackendToSecurityAnalysis([]byte(payload), clock())
	require.False(t, result.Fallback, "unexpected fallback: %v", result.Err)
	a, ok := result.Report.(model.Analysis)
	require.True(t, ok, "report must be a security analysis")
	return a
}

func TestMapBackendToSecurityAnalysis_Full(t *testing.T) {
	result := MapBackendToSecurityAnalysis([]byte(fullPayload), clock())
	require.False(t, result.Fallback)
	assert.Equal(t, 5, result.Entities)

	a := result.Report.(model.Analysis)
	assert.NotContains(t, a.URL, "abc123")
	assert.Equal(t, "sec-1", a.Metadata.AnalysisID)

	t.Run("ssl", func(t *testing.T) {
		require.True(t, a.SSL.Enabled)
		cfg := a.SSL.Configuration
		require.NotNil(t, cfg)
		assert.Equal(t, "TLS 1.3", cfg.Protocol)
		assert.Equal(t, []string{"TLS_RSA_WITH_RC4_128_SHA"}, cfg.WeakCiphers)
		assert.Equal(t, 20, cfg.Certificate.DaysRemaining)
		assert.True(t, cfg.Certificate.IsExpiringSoon)
		assert.False(t, cfg.Certificate.IsExpired)
		assert.Equal(t, "2025-03-21T12:00:00.000Z", cfg.Certificate.ValidTo)

		enabled := 0
		for _, p := range cfg.Protocols {
			if p.Enabled {
				enabled++
				assert.Equal(t, "TLS 1.3", p.Name)
			}
		}
		assert.Len(t, cfg.Protocols, 6)
		assert.Equal(t, 1, enabled)
		assert.Equal(t, 85.0, a.SSL.Score)
	})

	t.Run("headers", func(t *testing.T) {
		assert.Equal(t, []string{model.HeaderCSP, model.HeaderHSTS, model.HeaderXContentTypeOptions}, a.Headers.Present)
		assert.Equal(t, []string{model.HeaderXFrameOptions}, a.Headers.Misconfigured)
		assert.Equal(t, []string{model.HeaderReferrerPolicy, model.HeaderPermissionsPolicy}, a.Headers.Missing)
		assert.Len(t, a.Headers.SecurityHeaders, len(model.RequiredHeaders()))
	})

	t.Run("cookies", func(t *testing.T) {
		require.Len(t, a.Cookies.Cookies, 2)
		for _, c := range a.Cookies.Cookies {
			assert.Equal(t, redact.Placeholder, c.Value)
		}
		assert.Equal(t, "Lax", a.Cookies.Cookies[0].SameSite)
		assert.Empty(t, a.Cookies.Cookies[0].Issues)
		assert.Equal(t, "tracker", a.Cookies.Cookies[1].Name)
		assert.Equal(t, []string{"tracker"}, a.Cookies.Insecure)
		assert.Equal(t, 50.0, a.Cookies.SecureRatio)

		data, err := json.Marshal(a)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "s3cr3t-session")
		assert.NotContains(t, string(data), "xyz789")
	})

	t.Run("vulnerabilities", func(t *testing.T) {
		v := a.Vulnerabilities
		assert.Equal(t, 3, v.Total)
		require.Len(t, v.Critical, 1)
		assert.Equal(t, "CVE-2020-0001", v.Critical[0].ID)
		assert.Equal(t, "CVE-2020-0001", v.Critical[0].Title)
		require.Len(t, v.Medium, 1)
		assert.Equal(t, "vuln-2", v.Medium[0].ID)
		assert.Len(t, v.Info, 1)
		assert.Equal(t, v.Total, len(v.Critical)+len(v.High)+len(v.Medium)+len(v.Low)+len(v.Info))
	})

	assert.Contains(t, a.Issues, "Missing "+model.HeaderReferrerPolicy+" header")
	assert.Contains(t, a.Strengths, "HSTS enabled")
}

func TestMapBackendToSecurityAnalysis_DisabledSSL(t *testing.T) {
	inputs := []string{
		`{"ssl": {"enabled": false, "protocol": "TLS 1.3"}}`,
		`{"ssl": false}`,
		`{}`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			a := mapSecurity(t, input)
			assert.Equal(t, model.DisabledSSL(), a.SSL)

			data, err := json.Marshal(a.SSL)
			require.NoError(t, err)
			assert.JSONEq(t,
				`{"enabled":false,"configuration":null,"score":0,"grade":"F","issues":["SSL/TLS not enabled"],"strengths":[]}`,
				string(data))
		})
	}
}

func TestMapBackendToSecurityAnalysis_MissingCSP(t *testing.T) {
	a := mapSecurity(t, `{"headers": {"X-Frame-Options": "DENY"}}`)

	var csp *model.Header
	for i := range a.Headers.SecurityHeaders {
		if a.Headers.SecurityHeaders[i].Name == model.HeaderCSP {
			csp = &a.Headers.SecurityHeaders[i]
		}
	}
	require.NotNil(t, csp)
	assert.Equal(t, model.HeaderMissing, csp.Status)
	assert.Equal(t, seo.RiskHigh, csp.Severity)
	assert.Nil(t, csp.Value)
	assert.Contains(t, a.Headers.Missing, model.HeaderCSP)
	assert.Contains(t, a.Headers.Present, model.HeaderXFrameOptions)
}

func TestMapBackendToSecurityAnalysis_HeaderForms(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		present []string
	}{
		{
			name:    "array of lines and objects",
			payload: `{"headers": ["X-Frame-Options: DENY", {"name": "x-content-type-options", "value": "nosniff"}, 7]}`,
			present: []string{model.HeaderXFrameOptions, model.HeaderXContentTypeOptions},
		},
		{
			name:    "nested value objects",
			payload: `{"headers": {"X-Frame-Options": {"present": true, "value": "SAMEORIGIN"}, "Referrer-Policy": {"present": false, "value": "no-referrer"}}}`,
			present: []string{model.HeaderXFrameOptions},
		},
		{
			name:    "booleans are ignored",
			payload: `{"security_headers": {"Content-Security-Policy": true}}`,
			present: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mapSecurity(t, tt.payload)
			assert.Equal(t, tt.present, a.Headers.Present)
		})
	}
}

func TestMapBackendToSecurityAnalysis_Certificate(t *testing.T) {
	a := mapSecurity(t, `{"ssl": {"protocol": "TLS 1.2", "certificate": {"days_remaining": -3, "self_signed": true}}}`)
	cert := a.SSL.Configuration.Certificate
	assert.True(t, cert.IsExpired)
	assert.True(t, cert.IsSelfSigned)
	assert.Contains(t, a.SSL.Issues, "Certificate has expired")

	unknown := mapSecurity(t, `{"ssl": {"protocol": "TLS 1.2"}}`).SSL.Configuration.Certificate
	assert.False(t, unknown.IsExpired)
	assert.False(t, unknown.IsExpiringSoon)

	empty := mapSecurity(t, `{"ssl": {}}`)
	assert.NotContains(t, empty.SSL.Strengths, "Certificate is valid")

	valid := mapSecurity(t, `{"ssl": {"protocol": "TLS 1.3", "certificate": {"days_remaining": 200}}}`)
	assert.Contains(t, valid.SSL.Strengths, "Certificate is valid")
}

func TestParseHeaders_CaseVariants(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]any
		want    string
	}{
		{
			name:    "non-empty beats empty",
			headers: map[string]any{"content-security-policy": "", "Content-Security-Policy": "default-src 'self'"},
			want:    "default-src 'self'",
		},
		{
			name:    "non-empty lowercase beats empty canonical",
			headers: map[string]any{"Content-Security-Policy": "", "content-security-policy": "default-src 'none'"},
			want:    "default-src 'none'",
		},
		{
			name:    "canonical spelling wins",
			headers: map[string]any{"CONTENT-SECURITY-POLICY": "script-src 'self'", "Content-Security-Policy": "default-src 'self'", "content-security-policy": "img-src *"},
			want:    "default-src 'self'",
		},
		{
			name:    "first sorted name wins otherwise",
			headers: map[string]any{"content-security-policy": "img-src *", "CONTENT-SECURITY-POLICY": "script-src 'self'"},
			want:    "script-src 'self'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				got := parseHeaders(tt.headers)
				require.Len(t, got, 1)
				assert.Equal(t, tt.want, got[model.HeaderCSP])
			}
		})
	}
}

func TestMapBackendToSecurityAnalysis_DuplicateHeaderStable(t *testing.T) {
	payload := `{"headers": {"content-security-policy": "", "Content-Security-Policy": "default-src 'self'"}}`
	for i := 0; i < 50; i++ {
		a := mapSecurity(t, payload)
		assert.Contains(t, a.Headers.Present, model.HeaderCSP)
		assert.NotContains(t, a.Headers.Missing, model.HeaderCSP)
	}
}

func TestMapBackendToSecurityAnalysis_HSTSFromHeaders(t *testing.T) {
	a := mapSecurity(t, `{"ssl": {"protocol": "TLS 1.3"}, "headers": {"Strict-Transport-Security": "max-age=63072000"}}`)
	assert.True(t, a.SSL.Configuration.HSTS)
}

func TestMapBackendToSecurityAnalysis_Totality(t *testing.T) {
	inputs := []string{
		``,
		`null`,
		`[]`,
		`"string"`,
		`{"cookies": {"a": 1}}`,
		`{"vulnerabilities": "none"}`,
		`{broken`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			result := MapBackendToSecurityAnalysis([]byte(input), clock())
			require.True(t, result.Fallback)
			require.Error(t, result.Err)

			a, ok := result.Report.(model.Analysis)
			require.True(t, ok)
			assert.Equal(t, model.Unavailable(fixedNow), a)
			assert.Equal(t, []string{seo.DataUnavailable}, a.Issues)
		})
	}
}

func TestMapBackendToSecurityAnalysis_Idempotent(t *testing.T) {
	first := MapBackendToSecurityAnalysis([]byte(fullPayload), clock())
	second := MapBackendToSecurityAnalysis([]byte(fullPayload), clock())
	assert.Equal(t, first.Report, second.Report)
}

func TestMapper_Port(t *testing.T) {
	m := NewMapper(clock())
	assert.Equal(t, seo.DomainSecurity, m.Domain())

	result := m.MapObject(map[string]any{"url": "https://a.test"})
	require.False(t, result.Fallback)
	assert.Equal(t, "https://a.test", result.Report.(model.Analysis).URL)
}

package security

import (
	"testing"

	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findHeader(t *testing.T, h Headers, name string) Header {
	t.Helper()
	for _, header := range h.SecurityHeaders {
		if header.Name == name {
			return header
		}
	}
	t.Fatalf("header %s not found", name)
	return Header{}
}

func TestEvaluateHeaders_Completeness(t *testing.T) {
	inputs := []map[string]string{
		nil,
		{},
		{"content-security-policy": "default-src 'self'"},
		{"X-Frame-Options": "ALLOW-FROM x", "Server": "nginx", "x-content-type-options": "nosniff"},
	}

	for _, input := range inputs {
		h := EvaluateHeaders(input)
		require.Len(t, h.SecurityHeaders, len(RequiredHeaders()))

		seen := make(map[string]int)
		for _, header := range h.SecurityHeaders {
			seen[header.Name]++
			assert.Contains(t, []HeaderStatus{HeaderPresent, HeaderMissing, HeaderMisconfigured}, header.Status)
		}
		for _, name := range RequiredHeaders() {
			assert.Equal(t, 1, seen[name], "header %s", name)
		}
		assert.Equal(t, len(RequiredHeaders()), len(h.Present)+len(h.Missing)+len(h.Misconfigured))
	}
}

func TestEvaluateHeaders_MissingCSP(t *testing.T) {
	h := EvaluateHeaders(map[string]string{"Strict-Transport-Security": "max-age=63072000"})

	csp := findHeader(t, h, HeaderCSP)
	assert.Equal(t, HeaderMissing, csp.Status)
	assert.Equal(t, seo.RiskHigh, csp.Severity)
	assert.Nil(t, csp.Value)
	assert.Contains(t, h.Missing, HeaderCSP)

	hsts := findHeader(t, h, HeaderHSTS)
	assert.Equal(t, HeaderPresent, hsts.Status)
	require.NotNil(t, hsts.Value)
	assert.Equal(t, "max-age=63072000", *hsts.Value)
}

func TestEvaluateHeaders_Misconfigurations(t *testing.T) {
	tests := []struct {
		name   string
		header string
		value  string
		want   HeaderStatus
	}{
		{"short hsts", HeaderHSTS, "max-age=3600", HeaderMisconfigured},
		{"hsts without max-age", HeaderHSTS, "includeSubDomains", HeaderMisconfigured},
		{"hsts one year", HeaderHSTS, "max-age=31536000; includeSubDomains", HeaderPresent},
		{"frame allow-from", HeaderXFrameOptions, "ALLOW-FROM https://x.com", HeaderMisconfigured},
		{"frame sameorigin", HeaderXFrameOptions, "sameorigin", HeaderPresent},
		{"nosniff", HeaderXContentTypeOptions, "nosniff", HeaderPresent},
		{"sniff", HeaderXContentTypeOptions, "yes", HeaderMisconfigured},
		{"csp unsafe-inline", HeaderCSP, "script-src 'self' 'unsafe-inline'", HeaderMisconfigured},
		{"csp unsafe-eval", HeaderCSP, "script-src 'unsafe-eval'", HeaderMisconfigured},
		{"csp wildcard", HeaderCSP, "default-src *", HeaderMisconfigured},
		{"csp strict", HeaderCSP, "default-src 'self'; img-src *.cdn.com", HeaderPresent},
		{"referrer unsafe", HeaderReferrerPolicy, "unsafe-url", HeaderMisconfigured},
		{"referrer downgrade", HeaderReferrerPolicy, "no-referrer-when-downgrade", HeaderMisconfigured},
		{"referrer strict", HeaderReferrerPolicy, "strict-origin-when-cross-origin", HeaderPresent},
		{"permissions", HeaderPermissionsPolicy, "camera=()", HeaderPresent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := EvaluateHeaders(map[string]string{tt.header: tt.value})
			header := findHeader(t, h, tt.header)
			assert.Equal(t, tt.want, header.Status)
			if tt.want == HeaderMisconfigured {
				assert.Contains(t, h.Misconfigured, tt.header)
			}
		})
	}
}

func TestEvaluateHeaders_MisconfiguredSeverityIsLowered(t *testing.T) {
	h := EvaluateHeaders(map[string]string{HeaderCSP: "default-src *"})
	assert.Equal(t, seo.RiskMedium, findHeader(t, h, HeaderCSP).Severity)
}

func TestEvaluateHeaders_Score(t *testing.T) {
	all := map[string]string{
		HeaderCSP:                 "default-src 'self'",
		HeaderHSTS:                "max-age=31536000",
		HeaderXFrameOptions:       "DENY",
		HeaderXContentTypeOptions: "nosniff",
		HeaderReferrerPolicy:      "no-referrer",
		HeaderPermissionsPolicy:   "geolocation=()",
	}
	h := EvaluateHeaders(all)
	assert.Equal(t, 100.0, h.Score)
	assert.Equal(t, "A+", string(h.Grade))

	none := EvaluateHeaders(nil)
	assert.Equal(t, 0.0, none.Score)
	assert.Equal(t, "F", string(none.Grade))
}

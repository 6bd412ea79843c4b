package security

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/firesalamander/internal/domain/scoring"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
)

// HeaderStatus is the state of one required header.
type HeaderStatus string

const (
	HeaderPresent       HeaderStatus = "present"
	HeaderMissing       HeaderStatus = "missing"
	HeaderMisconfigured HeaderStatus = "misconfigured"
)

// Required security header names.
const (
	HeaderCSP                 = "Content-Security-Policy"
	HeaderHSTS                = "Strict-Transport-Security"
	HeaderXFrameOptions       = "X-Frame-Options"
	HeaderXContentTypeOptions = "X-Content-Type-Options"
	HeaderReferrerPolicy      = "Referrer-Policy"
	HeaderPermissionsPolicy   = "Permissions-Policy"
)

// MinHSTSMaxAge is the shortest acceptable HSTS max-age, one year.
const MinHSTSMaxAge = 31536000

// requiredHeader is one entry of the required header catalog.
type requiredHeader struct {
	name           string
	severity       seo.Risk
	recommendation string
	// check returns a problem description when value is misconfigured.
	check func(value string) string
}

var requiredHeaders = []requiredHeader{
	{HeaderCSP, seo.RiskHigh, "Define a Content-Security-Policy that restricts script and style sources", checkCSP},
	{HeaderHSTS, seo.RiskHigh, "Send Strict-Transport-Security with max-age of at least one year", checkHSTS},
	{HeaderXFrameOptions, seo.RiskMedium, "Set X-Frame-Options to DENY or SAMEORIGIN", checkXFrameOptions},
	{HeaderXContentTypeOptions, seo.RiskMedium, "Set X-Content-Type-Options to nosniff", checkXContentTypeOptions},
	{HeaderReferrerPolicy, seo.RiskLow, "Set Referrer-Policy to strict-origin-when-cross-origin or stricter", checkReferrerPolicy},
	{HeaderPermissionsPolicy, seo.RiskLow, "Define a Permissions-Policy that disables unused browser features", nil},
}

// RequiredHeaders returns the names of the required headers in catalog
// order.
func RequiredHeaders() []string {
	names := make([]string, len(requiredHeaders))
	for i, h := range requiredHeaders {
		names[i] = h.name
	}
	return names
}

// Header is the evaluation of one required header.
type Header struct {
	Name           string       `json:"name"`
	Value          *string      `json:"value"`
	Status         HeaderStatus `json:"status"`
	Severity       seo.Risk     `json:"severity"`
	Recommendation string       `json:"recommendation"`
}

// Headers is the security header section of an analysis.
type Headers struct {
	SecurityHeaders []Header      `json:"securityHeaders"`
	Present         []string      `json:"present"`
	Missing         []string      `json:"missing"`
	Misconfigured   []string      `json:"misconfigured"`
	Score           float64       `json:"score"`
	Grade           scoring.Grade `json:"grade"`
}

// EvaluateHeaders checks the response headers against the required
// catalog. Header names are matched case-insensitively. Every required
// header appears exactly once in the result.
func EvaluateHeaders(values map[string]string) Headers {
	canonical := make(map[string]string, len(values))
	for name, value := range values {
		canonical[http.CanonicalHeaderKey(strings.TrimSpace(name))] = value
	}

	result := Headers{
		SecurityHeaders: make([]Header, 0, len(requiredHeaders)),
		Present:         []string{},
		Missing:         []string{},
		Misconfigured:   []string{},
	}

	for _, req := range requiredHeaders {
		h := Header{
			Name:           req.name,
			Severity:       req.severity,
			Recommendation: req.recommendation,
		}

		value, ok := canonical[http.CanonicalHeaderKey(req.name)]
		value = strings.TrimSpace(value)
		switch {
		case !ok || value == "":
			h.Status = HeaderMissing
			result.Missing = append(result.Missing, req.name)
		default:
			h.Value = &value
			problem := ""
			if req.check != nil {
				problem = req.check(value)
			}
			if problem != "" {
				h.Status = HeaderMisconfigured
				h.Severity = req.severity.Lower()
				h.Recommendation = problem + ". " + req.recommendation
				result.Misconfigured = append(result.Misconfigured, req.name)
			} else {
				h.Status = HeaderPresent
				result.Present = append(result.Present, req.name)
			}
		}
		result.SecurityHeaders = append(result.SecurityHeaders, h)
	}

	result.Score = scoring.HeaderScore(len(result.Present), len(result.Misconfigured), len(result.Missing))
	result.Grade = scoring.GradeFromScore(result.Score)
	return result
}

func checkCSP(value string) string {
	lower := strings.ToLower(value)
	switch {
	case strings.Contains(lower, "unsafe-inline"):
		return "Policy allows unsafe-inline"
	case strings.Contains(lower, "unsafe-eval"):
		return "Policy allows unsafe-eval"
	}
	for _, token := range strings.Fields(strings.ReplaceAll(lower, ";", " ")) {
		if token == "*" {
			return "Policy allows any source"
		}
	}
	return ""
}

func checkHSTS(value string) string {
	for _, directive := range strings.Split(value, ";") {
		directive = strings.ToLower(strings.TrimSpace(directive))
		if !strings.HasPrefix(directive, "max-age=") {
			continue
		}
		age, err := strconv.Atoi(strings.Trim(strings.TrimPrefix(directive, "max-age="), `"`))
		if err != nil || age < MinHSTSMaxAge {
			return "max-age is shorter than one year"
		}
		return ""
	}
	return "max-age directive is missing"
}

func checkXFrameOptions(value string) string {
	switch strings.ToUpper(value) {
	case "DENY", "SAMEORIGIN":
		return ""
	default:
		return "Value is neither DENY nor SAMEORIGIN"
	}
}

func checkXContentTypeOptions(value string) string {
	if strings.EqualFold(value, "nosniff") {
		return ""
	}
	return "Value is not nosniff"
}

func checkReferrerPolicy(value string) string {
	// The header may carry a fallback list; the last recognized token wins.
	tokens := strings.Split(value, ",")
	policy := strings.ToLower(strings.TrimSpace(tokens[len(tokens)-1]))
	switch policy {
	case "unsafe-url", "no-referrer-when-downgrade":
		return "Policy " + policy + " leaks full URLs"
	default:
		return ""
	}
}

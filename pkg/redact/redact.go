// Package redact masks secrets that backends echo back in analysis
// payloads: cookie values, tokens embedded in free text and credentials in
// URL query strings.
package redact

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	// Placeholder replaces a fully redacted value.
	Placeholder = "[REDACTED]"

	// DefaultPrefix is the number of leading characters kept by partial display.
	DefaultPrefix = 4

	// DefaultSuffix is the number of trailing characters kept by partial display.
	DefaultSuffix = 4
)

// Redactor masks values. The zero value is not usable; call New.
type Redactor struct {
	placeholder string
	showPartial bool
	prefixLen   int
	suffixLen   int
	patterns    []*regexp.Regexp
}

// Option configures a Redactor.
type Option func(*Redactor)

// WithPlaceholder sets the replacement text of a fully redacted value.
func WithPlaceholder(placeholder string) Option {
	return func(r *Redactor) {
		r.placeholder = placeholder
	}
}

// WithPartialDisplay keeps prefixLen leading and suffixLen trailing
// characters and stars out the rest.
func WithPartialDisplay(prefixLen, suffixLen int) Option {
	return func(r *Redactor) {
		r.showPartial = true
		r.prefixLen = prefixLen
		r.suffixLen = suffixLen
	}
}

// WithPatterns adds patterns that RedactString masks.
func WithPatterns(patterns ...*regexp.Regexp) Option {
	return func(r *Redactor) {
		r.patterns = append(r.patterns, patterns...)
	}
}

// New creates a Redactor that fully redacts by default.
func New(opts ...Option) *Redactor {
	r := &Redactor{
		placeholder: Placeholder,
		prefixLen:   DefaultPrefix,
		suffixLen:   DefaultSuffix,
		patterns:    defaultPatterns(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func defaultPatterns() []*regexp.Regexp {
	return []*regexp.Regexp{
		// JWT
		regexp.MustCompile(`eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*`),
		// Bearer and Basic credentials
		regexp.MustCompile(`(?i)(bearer|basic)\s+[A-Za-z0-9_.+/=-]{16,}`),
		// session identifiers in Set-Cookie style text
		regexp.MustCompile(`(?i)(phpsessid|jsessionid|asp\.net_sessionid|connect\.sid|sessionid)=[^;\s]+`),
		// api keys in key=value form
		regexp.MustCompile(`(?i)(api[_-]?key|access[_-]?token)['":\s]*[=:]\s*['"]?[A-Za-z0-9_-]{16,}['"]?`),
		// AWS access key ID
		regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	}
}

// sensitiveParams are query parameter names whose values are masked by
// RedactURL. Matching is by substring on the lower-cased name.
var sensitiveParams = []string{
	"token", "session", "sid", "auth", "key", "password", "passwd", "secret", "signature", "sig", "code",
}

// Redact masks secret. An empty secret stays empty.
func (r *Redactor) Redact(secret string) string {
	if secret == "" {
		return ""
	}
	if r.showPartial {
		return r.partial(secret)
	}
	return r.placeholder
}

func (r *Redactor) partial(secret string) string {
	runes := []rune(secret)
	if len(runes) <= r.prefixLen+r.suffixLen {
		return r.placeholder
	}
	return string(runes[:r.prefixLen]) +
		strings.Repeat("*", len(runes)-r.prefixLen-r.suffixLen) +
		string(runes[len(runes)-r.suffixLen:])
}

// RedactString masks every pattern match inside input.
func (r *Redactor) RedactString(input string) string {
	for _, pattern := range r.patterns {
		input = pattern.ReplaceAllStringFunc(input, r.Redact)
	}
	return input
}

// RedactURL masks the values of sensitive query parameters and any
// userinfo password. Strings that do not parse as URLs go through
// RedactString instead.
func (r *Redactor) RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme == "" && u.Host == "") {
		return r.RedactString(raw)
	}

	if u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), r.placeholder)
		}
	}

	if u.RawQuery == "" {
		return u.String()
	}
	query := u.Query()
	changed := false
	for name, values := range query {
		if !isSensitiveParam(name) {
			continue
		}
		for i, v := range values {
			values[i] = r.Redact(v)
		}
		changed = true
	}
	if changed {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func isSensitiveParam(name string) bool {
	lower := strings.ToLower(name)
	for _, word := range sensitiveParams {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// Default fully redacts.
var Default = New()

// Redact masks secret with the default redactor.
func Redact(secret string) string {
	return Default.Redact(secret)
}

// RedactString masks secrets in input with the default redactor.
func RedactString(input string) string {
	return Default.RedactString(input)
}

// RedactURL masks URL credentials with the default redactor.
func RedactURL(raw string) string {
	return Default.RedactURL(raw)
}

package seo

import (
	"encoding/json"
	"strings"
)

// Severity is the three-level severity used for SEO and content issues.
// It is a value object that is immutable and comparable.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityInfo:     "info",
	SeverityWarning:  "warning",
	SeverityCritical: "critical",
}

// severityAliases maps backend spellings onto the closed set. Keys are
// lower case.
var severityAliases = map[string]Severity{
	"critical": SeverityCritical,
	"error":    SeverityCritical,
	"high":     SeverityCritical,
	"severe":   SeverityCritical,
	"warning":  SeverityWarning,
	"warn":     SeverityWarning,
	"medium":   SeverityWarning,
	"moderate": SeverityWarning,
	"info":     SeverityInfo,
	"low":      SeverityInfo,
	"notice":   SeverityInfo,
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "info"
}

// ClassifySeverity maps a backend severity string onto Severity.
// Unrecognized values, including the empty string, resolve to SeverityInfo.
func ClassifySeverity(s string) Severity {
	sev, ok := severityAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return SeverityInfo
	}
	return sev
}

// Priority returns the 1-10 priority used to rank aggregated issues.
func (s Severity) Priority() int {
	switch s {
	case SeverityCritical:
		return 9
	case SeverityWarning:
		return 6
	default:
		return 3
	}
}

// Weight returns the per-page ROI weight of an issue of this severity.
func (s Severity) Weight() float64 {
	switch s {
	case SeverityCritical:
		return 5
	case SeverityWarning:
		return 2.5
	default:
		return 1
	}
}

// IsHigherThan returns true if this severity is strictly higher than the other.
func (s Severity) IsHigherThan(other Severity) bool {
	return s > other
}

// MarshalJSON implements json.Marshaler.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = ClassifySeverity(str)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s Severity) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// AllSeverities returns all severities in ascending order.
func AllSeverities() []Severity {
	return []Severity{SeverityInfo, SeverityWarning, SeverityCritical}
}

package seo

import (
	"encoding/json"
	"strings"
)

// Risk is the five-level severity used by the security analysis
// (headers, cookies and vulnerabilities).
type Risk int

const (
	RiskInfo Risk = iota
	RiskLow
	RiskMedium
	RiskHigh
	RiskCritical
)

var riskNames = map[Risk]string{
	RiskInfo:     "info",
	RiskLow:      "low",
	RiskMedium:   "medium",
	RiskHigh:     "high",
	RiskCritical: "critical",
}

var riskValues = map[string]Risk{
	"info":          RiskInfo,
	"informational": RiskInfo,
	"none":          RiskInfo,
	"low":           RiskLow,
	"minor":         RiskLow,
	"medium":        RiskMedium,
	"moderate":      RiskMedium,
	"warning":       RiskMedium,
	"high":          RiskHigh,
	"important":     RiskHigh,
	"major":         RiskHigh,
	"critical":      RiskCritical,
	"severe":        RiskCritical,
}

// String returns the string representation of the risk level.
func (r Risk) String() string {
	if name, ok := riskNames[r]; ok {
		return name
	}
	return "info"
}

// ParseRisk maps a backend string onto Risk. The second result is false
// when the string is not a recognized spelling.
func ParseRisk(s string) (Risk, bool) {
	r, ok := riskValues[strings.ToLower(strings.TrimSpace(s))]
	return r, ok
}

// ClassifyRisk is ParseRisk with RiskInfo as the fallback.
func ClassifyRisk(s string) Risk {
	if r, ok := ParseRisk(s); ok {
		return r
	}
	return RiskInfo
}

// RiskFromCVSS bands a CVSS base score using the CVSS v3 qualitative scale.
func RiskFromCVSS(score float64) Risk {
	switch {
	case score >= 9.0:
		return RiskCritical
	case score >= 7.0:
		return RiskHigh
	case score >= 4.0:
		return RiskMedium
	case score >= 0.1:
		return RiskLow
	default:
		return RiskInfo
	}
}

// Lower returns the next lower risk level, bottoming out at RiskLow.
func (r Risk) Lower() Risk {
	if r <= RiskLow {
		return RiskLow
	}
	return r - 1
}

// IsAtLeast returns true if this risk is at least as severe as the other.
func (r Risk) IsAtLeast(other Risk) bool {
	return r >= other
}

// MarshalJSON implements json.Marshaler.
func (r Risk) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Risk) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*r = ClassifyRisk(str)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (r Risk) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

// AllRisks returns all risk levels in descending order of severity.
func AllRisks() []Risk {
	return []Risk{RiskCritical, RiskHigh, RiskMedium, RiskLow, RiskInfo}
}

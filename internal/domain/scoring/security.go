package scoring

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
)

// Overall security score weights.
const (
	weightSSL             = 0.4
	weightHeaders         = 0.4
	weightVulnerabilities = 0.2
)

// HeaderScore rates security headers against the required catalog. A
// present header counts fully, a misconfigured one counts half.
func HeaderScore(present, misconfigured, missing int) float64 {
	total := present + misconfigured + missing
	if total <= 0 {
		return 0
	}
	return clampScore((float64(present) + 0.5*float64(misconfigured)) / float64(total) * 100)
}

// Protocol base scores for the negotiated protocol.
var protocolScores = map[string]float64{
	"TLS 1.3": 100,
	"TLS 1.2": 90,
	"TLS 1.1": 60,
	"TLS 1.0": 50,
	"SSL 3.0": 20,
	"SSL 2.0": 0,
}

// unknownProtocolScore is used when SSL is enabled but the protocol is
// not reported.
const unknownProtocolScore = 70

// SSLSignals are the normalized inputs of the SSL score.
type SSLSignals struct {
	Enabled        bool
	Protocol       string // canonical name, e.g. "TLS 1.3"
	IsExpired      bool
	IsExpiringSoon bool
	IsSelfSigned   bool
	HSTS           bool
	WeakCiphers    int
}

// SSLScore rates an SSL/TLS configuration. A disabled configuration always
// scores 0, independent of every other signal.
func SSLScore(s SSLSignals) float64 {
	if !s.Enabled {
		return 0
	}

	score, ok := protocolScores[s.Protocol]
	if !ok {
		score = unknownProtocolScore
	}

	switch {
	case s.IsExpired:
		score -= 50
	case s.IsExpiringSoon:
		score -= 10
	}
	if s.IsSelfSigned {
		score -= 30
	}
	if !s.HSTS {
		score -= 5
	}
	score -= float64(min(s.WeakCiphers*5, 20))

	return clampScore(score)
}

// SSLGrade grades an SSL score. Disabled SSL is always F.
func SSLGrade(enabled bool, score float64) Grade {
	if !enabled {
		return GradeF
	}
	return GradeFromScore(score)
}

// OverallSecurityScore combines the SSL, header and vulnerability scores.
func OverallSecurityScore(ssl, headers, vulnerabilities float64) float64 {
	return clampScore(ssl*weightSSL + headers*weightHeaders + vulnerabilities*weightVulnerabilities)
}

// ScoreFactor represents a factor that affects a score.
type ScoreFactor struct {
	Name   string `json:"name"`
	Points int    `json:"points"` // Positive = bonus, negative = deduction
	Reason string `json:"reason"`
}

// VulnerabilityScore is the vulnerability sub-score with its breakdown.
type VulnerabilityScore struct {
	Value   int           `json:"value"`
	Factors []ScoreFactor `json:"factors"`
}

// VulnerabilityScorer deducts points per vulnerability by risk level.
type VulnerabilityScorer struct {
	weights map[seo.Risk]int
	caps    map[seo.Risk]int
}

// NewVulnerabilityScorer creates a scorer with the default weights.
func NewVulnerabilityScorer() *VulnerabilityScorer {
	return &VulnerabilityScorer{
		weights: map[seo.Risk]int{
			seo.RiskCritical: 25,
			seo.RiskHigh:     15,
			seo.RiskMedium:   8,
			seo.RiskLow:      3,
			seo.RiskInfo:     1,
		},
		caps: map[seo.Risk]int{
			seo.RiskCritical: 100, // 4 critical findings max out
			seo.RiskHigh:     100, // 7 high findings max out
			seo.RiskMedium:   100, // 13 medium findings max out
			seo.RiskLow:      100, // 34 low findings max out
			seo.RiskInfo:     10,
		},
	}
}

// Calculate computes the score from counts per risk level.
func (s *VulnerabilityScorer) Calculate(counts map[seo.Risk]int) VulnerabilityScore {
	score := VulnerabilityScore{
		Value:   100,
		Factors: []ScoreFactor{},
	}

	for _, risk := range seo.AllRisks() {
		count := counts[risk]
		if count <= 0 {
			continue
		}
		deduction := min(count*s.weights[risk], s.caps[risk])
		score.Value -= deduction
		score.Factors = append(score.Factors, ScoreFactor{
			Name:   risk.String() + "_vulnerabilities",
			Points: -deduction,
			Reason: fmt.Sprintf("%d %s severity vulnerabilit%s", count, strings.ToUpper(risk.String()), plural(count)),
		})
	}

	if score.Value < 0 {
		score.Value = 0
	}
	return score
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

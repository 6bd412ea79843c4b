package scoring

import (
	"testing"

	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderScore(t *testing.T) {
	assert.Equal(t, 0.0, HeaderScore(0, 0, 0))
	assert.Equal(t, 100.0, HeaderScore(6, 0, 0))
	assert.Equal(t, 0.0, HeaderScore(0, 0, 6))
	assert.Equal(t, 50.0, HeaderScore(2, 2, 2))
	assert.Equal(t, 58.3, HeaderScore(3, 1, 2))
}

func TestSSLScore_DisabledIsZero(t *testing.T) {
	s := SSLSignals{
		Enabled:  false,
		Protocol: "TLS 1.3",
		HSTS:     true,
	}

	assert.Equal(t, 0.0, SSLScore(s))
	assert.Equal(t, GradeF, SSLGrade(false, 100))
}

func TestSSLScore(t *testing.T) {
	tests := []struct {
		name     string
		signals  SSLSignals
		expected float64
	}{
		{"modern with hsts", SSLSignals{Enabled: true, Protocol: "TLS 1.3", HSTS: true}, 100},
		{"tls 1.2 without hsts", SSLSignals{Enabled: true, Protocol: "TLS 1.2"}, 85},
		{"unknown protocol", SSLSignals{Enabled: true, HSTS: true}, 70},
		{"expired", SSLSignals{Enabled: true, Protocol: "TLS 1.3", HSTS: true, IsExpired: true}, 50},
		{"expiring soon", SSLSignals{Enabled: true, Protocol: "TLS 1.3", HSTS: true, IsExpiringSoon: true}, 90},
		{"self signed", SSLSignals{Enabled: true, Protocol: "TLS 1.2", HSTS: true, IsSelfSigned: true}, 60},
		{"weak ciphers capped", SSLSignals{Enabled: true, Protocol: "TLS 1.3", HSTS: true, WeakCiphers: 10}, 80},
		{"floor at zero", SSLSignals{Enabled: true, Protocol: "SSL 2.0", IsExpired: true, IsSelfSigned: true}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SSLScore(tt.signals))
		})
	}
}

func TestSSLGrade(t *testing.T) {
	assert.Equal(t, GradeAPlus, SSLGrade(true, 100))
	assert.Equal(t, GradeB, SSLGrade(true, 75))
}

func TestOverallSecurityScore(t *testing.T) {
	assert.Equal(t, 100.0, OverallSecurityScore(100, 100, 100))
	assert.Equal(t, 40.0, OverallSecurityScore(0, 50, 100))
	assert.Equal(t, 0.0, OverallSecurityScore(0, 0, 0))
}

func TestVulnerabilityScorer_NoFindings(t *testing.T) {
	score := NewVulnerabilityScorer().Calculate(nil)

	assert.Equal(t, 100, score.Value)
	assert.Empty(t, score.Factors)
}

func TestVulnerabilityScorer_Deductions(t *testing.T) {
	score := NewVulnerabilityScorer().Calculate(map[seo.Risk]int{
		seo.RiskCritical: 1,
		seo.RiskMedium:   2,
		seo.RiskInfo:     3,
	})

	assert.Equal(t, 56, score.Value) // 100 - 25 - 16 - 3
	require.Len(t, score.Factors, 3)
	assert.Equal(t, "critical_vulnerabilities", score.Factors[0].Name)
	assert.Equal(t, -25, score.Factors[0].Points)
	assert.Equal(t, "1 CRITICAL severity vulnerability", score.Factors[0].Reason)
	assert.Equal(t, "2 MEDIUM severity vulnerabilities", score.Factors[1].Reason)
}

func TestVulnerabilityScorer_Caps(t *testing.T) {
	score := NewVulnerabilityScorer().Calculate(map[seo.Risk]int{seo.RiskInfo: 50})
	assert.Equal(t, 90, score.Value)

	score = NewVulnerabilityScorer().Calculate(map[seo.Risk]int{seo.RiskCritical: 10, seo.RiskHigh: 3})
	assert.Equal(t, 0, score.Value)
}

func TestPosition(t *testing.T) {
	assert.Equal(t, PositionAbove, Position(80))
	assert.Equal(t, PositionAbove, Position(99))
	assert.Equal(t, PositionEqual, Position(70))
	assert.Equal(t, PositionEqual, Position(79.9))
	assert.Equal(t, PositionBelow, Position(69.9))
	assert.Equal(t, PositionBelow, Position(0))
}

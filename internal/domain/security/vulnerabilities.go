package security

import (
	"github.com/felixgeelhaar/firesalamander/internal/domain/scoring"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
)

// Vulnerability is one known weakness of the site.
type Vulnerability struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    seo.Risk `json:"severity"`
	CVSS        float64  `json:"cvss"`
	CVE         string   `json:"cve"`
	Component   string   `json:"component"`
	Remediation string   `json:"remediation"`
}

// ClassifyVulnerability resolves the risk of a vulnerability. A recognized
// severity string wins, then the CVSS score band, then RiskInfo.
func ClassifyVulnerability(severity string, cvss float64, hasCVSS bool) seo.Risk {
	if r, ok := seo.ParseRisk(severity); ok {
		return r
	}
	if hasCVSS {
		return seo.RiskFromCVSS(cvss)
	}
	return seo.RiskInfo
}

// Vulnerabilities buckets vulnerabilities by risk. Total is always the sum
// of the bucket lengths.
type Vulnerabilities struct {
	Critical []Vulnerability       `json:"critical"`
	High     []Vulnerability       `json:"high"`
	Medium   []Vulnerability       `json:"medium"`
	Low      []Vulnerability       `json:"low"`
	Info     []Vulnerability       `json:"info"`
	Total    int                   `json:"total"`
	Score    int                   `json:"score"`
	Factors  []scoring.ScoreFactor `json:"factors"`
}

// EmptyVulnerabilities returns a report without findings.
func EmptyVulnerabilities() Vulnerabilities {
	return BucketVulnerabilities(nil)
}

// BucketVulnerabilities sorts vulnerabilities into the five risk buckets
// and scores them.
func BucketVulnerabilities(vulns []Vulnerability) Vulnerabilities {
	v := Vulnerabilities{
		Critical: []Vulnerability{},
		High:     []Vulnerability{},
		Medium:   []Vulnerability{},
		Low:      []Vulnerability{},
		Info:     []Vulnerability{},
	}

	for _, vuln := range vulns {
		switch vuln.Severity {
		case seo.RiskCritical:
			v.Critical = append(v.Critical, vuln)
		case seo.RiskHigh:
			v.High = append(v.High, vuln)
		case seo.RiskMedium:
			v.Medium = append(v.Medium, vuln)
		case seo.RiskLow:
			v.Low = append(v.Low, vuln)
		default:
			v.Info = append(v.Info, vuln)
		}
	}
	v.Total = len(v.Critical) + len(v.High) + len(v.Medium) + len(v.Low) + len(v.Info)

	score := scoring.NewVulnerabilityScorer().Calculate(v.Counts())
	v.Score = score.Value
	v.Factors = score.Factors
	return v
}

// Counts returns the number of vulnerabilities per risk.
func (v Vulnerabilities) Counts() map[seo.Risk]int {
	return map[seo.Risk]int{
		seo.RiskCritical: len(v.Critical),
		seo.RiskHigh:     len(v.High),
		seo.RiskMedium:   len(v.Medium),
		seo.RiskLow:      len(v.Low),
		seo.RiskInfo:     len(v.Info),
	}
}

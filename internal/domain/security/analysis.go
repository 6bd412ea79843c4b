package security

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/firesalamander/internal/domain/scoring"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
)

// Analysis is the security view model.
type Analysis struct {
	URL             string          `json:"url"`
	SSL             SSL             `json:"ssl"`
	Headers         Headers         `json:"headers"`
	Cookies         Cookies         `json:"cookies"`
	Vulnerabilities Vulnerabilities `json:"vulnerabilities"`
	Score           float64         `json:"score"`
	Grade           scoring.Grade   `json:"grade"`
	Issues          []string        `json:"issues"`
	Strengths       []string        `json:"strengths"`
	Metadata        seo.Metadata    `json:"metadata"`
}

// Empty returns the canonical empty security analysis: SSL disabled, every
// required header missing, no cookies and no vulnerabilities.
func Empty(now time.Time) Analysis {
	a := Analysis{
		SSL:             DisabledSSL(),
		Headers:         EvaluateHeaders(nil),
		Cookies:         SummarizeCookies(nil),
		Vulnerabilities: EmptyVulnerabilities(),
		Issues:          []string{},
		Strengths:       []string{},
		Metadata:        seo.EmptyMetadata(string(seo.DomainSecurity), now),
	}
	return a.Finalize()
}

// Unavailable returns the fallback security analysis.
func Unavailable(now time.Time) Analysis {
	a := Empty(now)
	a.Score = 0
	a.Grade = scoring.GradeF
	a.Vulnerabilities.Score = 0
	a.Vulnerabilities.Factors = []scoring.ScoreFactor{}
	a.Issues = []string{seo.DataUnavailable}
	a.Strengths = []string{}
	return a
}

// Finalize computes the overall score and grade and collects the issues
// and strengths of every section.
func (a Analysis) Finalize() Analysis {
	a.Score = scoring.OverallSecurityScore(a.SSL.Score, a.Headers.Score, float64(a.Vulnerabilities.Score))
	a.Grade = scoring.GradeFromScore(a.Score)

	issues := make([]string, 0)
	strengths := make([]string, 0)

	issues = append(issues, a.SSL.Issues...)
	strengths = append(strengths, a.SSL.Strengths...)

	for _, h := range a.Headers.SecurityHeaders {
		switch h.Status {
		case HeaderMissing:
			issues = append(issues, "Missing "+h.Name+" header")
		case HeaderMisconfigured:
			issues = append(issues, "Misconfigured "+h.Name+" header")
		default:
			strengths = append(strengths, h.Name+" configured")
		}
	}

	issues = append(issues, a.Cookies.Issues...)
	if a.Cookies.Total > 0 && len(a.Cookies.Insecure) == 0 {
		strengths = append(strengths, "All cookies use Secure, HttpOnly and SameSite")
	}

	if n := len(a.Vulnerabilities.Critical) + len(a.Vulnerabilities.High); n > 0 {
		issues = append(issues, fmt.Sprintf("%d critical or high severity vulnerabilit%s", n, pluralY(n)))
	}
	if a.Vulnerabilities.Total == 0 {
		strengths = append(strengths, "No known vulnerabilities")
	}

	a.Issues = issues
	a.Strengths = strengths
	return a
}

// Summary implements seo.Report.
func (a Analysis) Summary() seo.Summary {
	v := a.Vulnerabilities
	return seo.Summary{
		Domain:   seo.DomainSecurity,
		Target:   a.URL,
		Score:    a.Score,
		Grade:    string(a.Grade),
		Critical: len(v.Critical) + len(v.High),
		Warnings: len(v.Medium) + len(a.Headers.Missing) + len(a.Headers.Misconfigured),
		Info:     len(v.Low) + len(v.Info),
		Lines: []seo.SummaryLine{
			{Label: "SSL", Value: fmt.Sprintf("%s (%.1f)", a.SSL.Grade, a.SSL.Score)},
			{Label: "Headers", Value: fmt.Sprintf("%s (%d present, %d missing, %d misconfigured)",
				a.Headers.Grade, len(a.Headers.Present), len(a.Headers.Missing), len(a.Headers.Misconfigured))},
			{Label: "Cookies", Value: fmt.Sprintf("%d (%d insecure)", a.Cookies.Total, len(a.Cookies.Insecure))},
			{Label: "Vulnerabilities", Value: fmt.Sprintf("%d", v.Total)},
		},
		TopIssues: a.Issues,
	}
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

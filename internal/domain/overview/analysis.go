// Package overview defines the overview analysis view model: the headline
// scores, top issues and recommendations of one site audit.
package overview

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/firesalamander/internal/domain/scoring"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
)

// MaxTopIssues caps the number of top issues in an overview.
const MaxTopIssues = 10

// Scores holds the per-area 0-100 scores.
type Scores struct {
	Technical   float64 `json:"technical"`
	Content     float64 `json:"content"`
	Security    float64 `json:"security"`
	Performance float64 `json:"performance"`
	Mobile      float64 `json:"mobile"`
}

// Stats summarizes the crawl and the issue counts.
type Stats struct {
	PagesAnalyzed  int `json:"pagesAnalyzed"`
	TotalPages     int `json:"totalPages"`
	TotalIssues    int `json:"totalIssues"`
	CriticalIssues int `json:"criticalIssues"`
	WarningIssues  int `json:"warningIssues"`
	InfoIssues     int `json:"infoIssues"`
}

// TopIssue is a site-wide issue surfaced on the overview.
type TopIssue struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Severity      seo.Severity `json:"severity"`
	Category      Category     `json:"category"`
	AffectedPages int          `json:"affectedPages"`
}

// Recommendation is an optimization suggestion.
type Recommendation struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Type        RecommendationType `json:"type"`
	Impact      ImpactLevel        `json:"impact"`
	Effort      ImpactLevel        `json:"effort"`
	Priority    int                `json:"priority"`
}

// Analysis is the overview view model.
type Analysis struct {
	URL                string             `json:"url"`
	Domain             string             `json:"domain"`
	Status             Status             `json:"status"`
	OverallScore       float64            `json:"overallScore"`
	Grade              scoring.Grade      `json:"grade"`
	Scores             Scores             `json:"scores"`
	Stats              Stats              `json:"summary"`
	TopIssues          []TopIssue         `json:"topIssues"`
	Recommendations    []Recommendation   `json:"recommendations"`
	CoreWebVitals      []scoring.WebVital `json:"coreWebVitals"`
	AnalysisDurationMs int64              `json:"analysisDurationMs"`
	Metadata           seo.Metadata       `json:"metadata"`
}

// Empty returns the canonical empty overview.
func Empty(now time.Time) Analysis {
	return Analysis{
		Status:          StatusPending,
		Grade:           scoring.GradeF,
		TopIssues:       []TopIssue{},
		Recommendations: []Recommendation{},
		CoreWebVitals:   []scoring.WebVital{},
		Metadata:        seo.EmptyMetadata(string(seo.DomainOverview), now),
	}
}

// Unavailable returns the fallback overview used when a payload cannot be
// mapped.
func Unavailable(now time.Time) Analysis {
	a := Empty(now)
	a.Status = StatusFailed
	a.TopIssues = []TopIssue{{
		ID:          "data-unavailable",
		Title:       seo.DataUnavailable,
		Description: seo.DataUnavailable,
		Severity:    seo.SeverityInfo,
		Category:    CategoryTechnical,
	}}
	return a
}

// Summary implements seo.Report.
func (a Analysis) Summary() seo.Summary {
	top := make([]string, 0, len(a.TopIssues))
	for _, issue := range a.TopIssues {
		top = append(top, issue.Title)
	}

	return seo.Summary{
		Domain:   seo.DomainOverview,
		Target:   a.URL,
		Score:    a.OverallScore,
		Grade:    string(a.Grade),
		Critical: a.Stats.CriticalIssues,
		Warnings: a.Stats.WarningIssues,
		Info:     a.Stats.InfoIssues,
		Lines: []seo.SummaryLine{
			{Label: "Status", Value: string(a.Status)},
			{Label: "Pages analyzed", Value: fmt.Sprintf("%d/%d", a.Stats.PagesAnalyzed, a.Stats.TotalPages)},
			{Label: "Technical", Value: formatScore(a.Scores.Technical)},
			{Label: "Content", Value: formatScore(a.Scores.Content)},
			{Label: "Security", Value: formatScore(a.Scores.Security)},
			{Label: "Performance", Value: formatScore(a.Scores.Performance)},
			{Label: "Mobile", Value: formatScore(a.Scores.Mobile)},
			{Label: "Recommendations", Value: fmt.Sprintf("%d", len(a.Recommendations))},
		},
		TopIssues: top,
	}
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

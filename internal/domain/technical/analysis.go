package technical

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/firesalamander/internal/domain/scoring"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
	"github.com/felixgeelhaar/firesalamander/internal/domain/visual"
)

// StatusClasses counts pages by HTTP status class.
type StatusClasses struct {
	Success     int `json:"success"`
	Redirect    int `json:"redirect"`
	ClientError int `json:"clientError"`
	ServerError int `json:"serverError"`
}

// Add counts one status code.
func (s *StatusClasses) Add(code int) {
	switch {
	case code >= 500:
		s.ServerError++
	case code >= 400:
		s.ClientError++
	case code >= 300:
		s.Redirect++
	default:
		s.Success++
	}
}

// Metrics are the crawl-wide figures of a technical analysis.
type Metrics struct {
	TotalPages          int           `json:"totalPages"`
	StatusCodes         StatusClasses `json:"statusCodes"`
	AverageLoadTimeMs   float64       `json:"averageLoadTimeMs"`
	AverageTitleLength  float64       `json:"averageTitleLength"`
	TotalImages         int           `json:"totalImages"`
	ImagesWithoutAlt    int           `json:"imagesWithoutAlt"`
	TotalInternalLinks  int           `json:"totalInternalLinks"`
	TotalExternalLinks  int           `json:"totalExternalLinks"`
	TotalBrokenLinks    int           `json:"totalBrokenLinks"`
	IndexablePages      int           `json:"indexablePages"`
	MobileFriendlyPages int           `json:"mobileFriendlyPages"`
	RedirectChains      int           `json:"redirectChains"`
	RedirectLoops       int           `json:"redirectLoops"`
	CriticalIssues      int           `json:"criticalIssues"`
	WarningIssues       int           `json:"warningIssues"`
	InfoIssues          int           `json:"infoIssues"`
	Score               float64       `json:"score"`
	Grade               scoring.Grade `json:"grade"`
}

// Visualization holds the chart payloads of a technical analysis.
type Visualization struct {
	StatusCodes   visual.Chart        `json:"statusCodes"`
	IssueSeverity visual.Chart        `json:"issueSeverity"`
	LinkGraph     visual.NetworkGraph `json:"linkGraph"`
}

// Crawl defaults reported when the backend omits its configuration.
const (
	DefaultMaxPages  = 100
	DefaultMaxDepth  = 3
	DefaultUserAgent = "FireSalamander/1.0"
)

// Config is the crawl configuration the analysis ran with.
type Config struct {
	MaxPages      int    `json:"maxPages"`
	MaxDepth      int    `json:"maxDepth"`
	UserAgent     string `json:"userAgent"`
	RespectRobots bool   `json:"respectRobots"`
}

// DefaultConfig returns the default crawl configuration.
func DefaultConfig() Config {
	return Config{
		MaxPages:      DefaultMaxPages,
		MaxDepth:      DefaultMaxDepth,
		UserAgent:     DefaultUserAgent,
		RespectRobots: true,
	}
}

// Analysis is the technical SEO view model.
type Analysis struct {
	URL            string            `json:"url"`
	Pages          []Page            `json:"pages"`
	GlobalIssues   []seo.GlobalIssue `json:"globalIssues"`
	Metrics        Metrics           `json:"metrics"`
	RedirectChains []RedirectChain   `json:"redirectChains"`
	Visualization  Visualization     `json:"visualization"`
	Config         Config            `json:"config"`
	Metadata       seo.Metadata      `json:"metadata"`
}

// Empty returns the canonical empty technical analysis.
func Empty(now time.Time) Analysis {
	return Analysis{
		Pages:          []Page{},
		GlobalIssues:   []seo.GlobalIssue{},
		Metrics:        Metrics{Grade: scoring.GradeF},
		RedirectChains: []RedirectChain{},
		Visualization: Visualization{
			StatusCodes:   visual.EmptyChart(),
			IssueSeverity: visual.EmptyChart(),
			LinkGraph:     visual.EmptyGraph(),
		},
		Config:   DefaultConfig(),
		Metadata: seo.EmptyMetadata(string(seo.DomainTechnical), now),
	}
}

// Unavailable returns the fallback technical analysis.
func Unavailable(now time.Time) Analysis {
	a := Empty(now)
	a.GlobalIssues = []seo.GlobalIssue{seo.UnavailableIssue()}
	return a
}

// Summary implements seo.Report.
func (a Analysis) Summary() seo.Summary {
	top := make([]string, 0, len(a.GlobalIssues))
	for _, issue := range a.GlobalIssues {
		top = append(top, fmt.Sprintf("%s (%d)", issue.Description, issue.Count))
	}

	m := a.Metrics
	return seo.Summary{
		Domain:   seo.DomainTechnical,
		Target:   a.URL,
		Score:    m.Score,
		Grade:    string(m.Grade),
		Critical: m.CriticalIssues,
		Warnings: m.WarningIssues,
		Info:     m.InfoIssues,
		Lines: []seo.SummaryLine{
			{Label: "Pages", Value: fmt.Sprintf("%d", m.TotalPages)},
			{Label: "Status 2xx/3xx/4xx/5xx", Value: fmt.Sprintf("%d/%d/%d/%d",
				m.StatusCodes.Success, m.StatusCodes.Redirect, m.StatusCodes.ClientError, m.StatusCodes.ServerError)},
			{Label: "Average load time", Value: fmt.Sprintf("%.0f ms", m.AverageLoadTimeMs)},
			{Label: "Broken links", Value: fmt.Sprintf("%d", m.TotalBrokenLinks)},
			{Label: "Images without alt", Value: fmt.Sprintf("%d", m.ImagesWithoutAlt)},
			{Label: "Redirect chains", Value: fmt.Sprintf("%d (%d loops)", m.RedirectChains, m.RedirectLoops)},
		},
		TopIssues: top,
	}
}

package technical

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/firesalamander/internal/domain/scoring"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
	"github.com/felixgeelhaar/firesalamander/internal/domain/services"
	"github.com/felixgeelhaar/firesalamander/pkg/coerce"
)

// DeriveIssues computes the issues implied by the page's own signals.
func (p Page) DeriveIssues() []seo.Issue {
	issues := make([]seo.Issue, 0)
	add := func(t seo.IssueType, affected ...string) {
		issues = append(issues, seo.NewIssue(t, t.DefaultSeverity(), "", affected...))
	}

	for _, t := range p.Title.Issues {
		add(t)
	}
	for _, t := range p.MetaDescription.Issues {
		add(t)
	}
	for _, t := range p.Headings.Issues {
		add(t)
	}

	var noAlt, large []string
	for _, img := range p.Images {
		if !img.HasAlt {
			noAlt = append(noAlt, img.Src)
		}
		if img.SizeBytes > LargeImageBytes {
			large = append(large, img.Src)
		}
	}
	if len(noAlt) > 0 {
		add(seo.IssueMissingAltText, noAlt...)
	}
	if len(large) > 0 {
		add(seo.IssueLargeImages, large...)
	}

	if len(p.Links.Broken) > 0 {
		urls := make([]string, 0, len(p.Links.Broken))
		for _, l := range p.Links.Broken {
			urls = append(urls, l.URL)
		}
		add(seo.IssueBrokenLinks, urls...)
	}

	switch {
	case p.StatusCode >= 400:
		add(seo.IssueHTTPError)
	case p.StatusCode >= 300:
		add(seo.IssueRedirect)
	}

	if p.Performance != nil && p.Performance.LoadTimeMs > SlowPageMs {
		add(seo.IssueSlowPage)
	}
	if p.Mobile != nil && !p.Mobile.Friendly {
		add(seo.IssueNotMobileFriendly)
	}
	if p.Canonical == "" {
		add(seo.IssueMissingCanonical)
	}
	if !p.Indexable {
		add(seo.IssueNoindex)
	}

	return issues
}

// MergeIssues returns the reported issues followed by the derived issues
// whose type was not reported.
func MergeIssues(reported, derived []seo.Issue) []seo.Issue {
	merged := make([]seo.Issue, 0, len(reported)+len(derived))
	seen := make(map[seo.IssueType]bool)
	for _, issue := range reported {
		seen[issue.Type] = true
		merged = append(merged, issue)
	}
	for _, issue := range derived {
		if !seen[issue.Type] {
			seen[issue.Type] = true
			merged = append(merged, issue)
		}
	}
	return merged
}

// MobileScore rates the mobile signals when the backend gives no score.
func MobileScore(m Mobile) float64 {
	score := 0.0
	for _, ok := range []bool{m.Viewport, m.Responsive, m.TapTargetsOK, m.FontSizeOK} {
		if ok {
			score += 25
		}
	}
	return score
}

// Build folds mapped pages and redirect chains into an analysis.
func Build(target string, pages []Page, chains []RedirectChain, cfg Config) Analysis {
	if pages == nil {
		pages = []Page{}
	}
	if chains == nil {
		chains = []RedirectChain{}
	}

	occurrences := make([]services.IssueOccurrence, 0)
	for _, p := range pages {
		for _, issue := range p.Issues {
			occurrences = append(occurrences, services.IssueOccurrence{
				Type:        string(issue.Type),
				Severity:    issue.Severity,
				Description: issue.Type.Description(),
				Entity:      p.URL,
			})
		}
	}
	for _, c := range chains {
		if c.IsLoop || c.TooLong() {
			occurrences = append(occurrences, services.IssueOccurrence{
				Type:        string(seo.IssueRedirect),
				Severity:    seo.SeverityWarning,
				Description: fmt.Sprintf("Redirect chain longer than %d hops or looping", MaxRedirectHops),
				Entity:      c.From,
			})
		}
	}

	return Analysis{
		URL:            target,
		Pages:          pages,
		GlobalIssues:   services.NewIssueAggregator().Aggregate(occurrences),
		Metrics:        BuildMetrics(pages, chains),
		RedirectChains: chains,
		Visualization:  BuildVisualization(pages),
		Config:         cfg,
	}
}

// BuildMetrics computes the crawl-wide figures.
func BuildMetrics(pages []Page, chains []RedirectChain) Metrics {
	m := Metrics{TotalPages: len(pages), RedirectChains: len(chains)}

	var loadTotal, titleTotal, scoreTotal float64
	loadCount := 0
	for _, p := range pages {
		m.StatusCodes.Add(p.StatusCode)
		titleTotal += float64(p.Title.Length)
		scoreTotal += p.Score()

		m.TotalImages += len(p.Images)
		for _, img := range p.Images {
			if !img.HasAlt {
				m.ImagesWithoutAlt++
			}
		}
		m.TotalInternalLinks += p.Links.InternalCount
		m.TotalExternalLinks += p.Links.ExternalCount
		m.TotalBrokenLinks += p.Links.BrokenCount

		if p.Indexable {
			m.IndexablePages++
		}
		if p.Mobile != nil && p.Mobile.Friendly {
			m.MobileFriendlyPages++
		}
		if p.Performance != nil {
			loadTotal += p.Performance.LoadTimeMs
			loadCount++
		}

		critical, warning, info := p.IssueCounts()
		m.CriticalIssues += critical
		m.WarningIssues += warning
		m.InfoIssues += info
	}

	for _, c := range chains {
		if c.IsLoop {
			m.RedirectLoops++
		}
	}

	if len(pages) > 0 {
		m.AverageTitleLength = coerce.Round(titleTotal/float64(len(pages)), 1)
		m.Score = coerce.Round(scoreTotal/float64(len(pages)), 1)
	}
	if loadCount > 0 {
		m.AverageLoadTimeMs = coerce.Round(loadTotal/float64(loadCount), 1)
	}
	m.Grade = scoring.GradeFromScore(m.Score)
	return m
}

// BuildVisualization builds the status and severity charts and the
// internal link graph between crawled pages.
func BuildVisualization(pages []Page) Visualization {
	var classes StatusClasses
	severities := make(map[string]int)
	graph := services.NewGraphBuilder()

	for _, p := range pages {
		classes.Add(p.StatusCode)
		for _, issue := range p.Issues {
			severities[issue.Severity.String()]++
		}
		graph.AddNode(p.URL, p.Title.Content, statusGroup(p.StatusCode))
	}
	for _, p := range pages {
		for _, target := range p.Links.Internal {
			graph.AddEdge(p.URL, strings.TrimSpace(target))
		}
	}

	return Visualization{
		StatusCodes: services.CountChart(map[string]int{
			"2xx": classes.Success,
			"3xx": classes.Redirect,
			"4xx": classes.ClientError,
			"5xx": classes.ServerError,
		}, []string{"2xx", "3xx", "4xx", "5xx"}),
		IssueSeverity: services.CountChart(severities, []string{
			seo.SeverityCritical.String(),
			seo.SeverityWarning.String(),
			seo.SeverityInfo.String(),
		}),
		LinkGraph: graph.Build(),
	}
}

func statusGroup(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}

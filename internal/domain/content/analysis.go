// Package content defines the content analysis view model: per-page
// quality and readability, site-wide metrics and the visualization
// payloads built from them.
package content

import (
	"fmt"
	"sort"
	"time"

	"github.com/felixgeelhaar/firesalamander/internal/domain/scoring"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
	"github.com/felixgeelhaar/firesalamander/internal/domain/services"
	"github.com/felixgeelhaar/firesalamander/internal/domain/visual"
	"github.com/felixgeelhaar/firesalamander/pkg/coerce"
)

// GlobalMetrics are the site-wide content figures.
type GlobalMetrics struct {
	TotalPages         int                 `json:"totalPages"`
	TotalWords         int                 `json:"totalWords"`
	AverageWordCount   float64             `json:"averageWordCount"`
	AverageQuality     float64             `json:"averageQuality"`
	AverageReadability float64             `json:"averageReadability"`
	AverageReadingTime float64             `json:"averageReadingTime"`
	ThinContentPages   int                 `json:"thinContentPages"`
	PagesWithIssues    int                 `json:"pagesWithIssues"`
	TotalIssues        int                 `json:"totalIssues"`
	ContentTypes       map[ContentType]int `json:"contentTypes"`
}

// Visualization holds the chart payloads of a content analysis.
type Visualization struct {
	QualityDistribution []visual.DistributionBucket `json:"qualityDistribution"`
	ContentTypes        visual.Chart                `json:"contentTypes"`
	ReadabilityHeatmap  visual.Heatmap              `json:"readabilityHeatmap"`
	TopicGraph          visual.NetworkGraph         `json:"topicGraph"`
}

// Benchmark places the site against competitors.
type Benchmark struct {
	AverageQuality float64                   `json:"averageQuality"`
	Position       scoring.BenchmarkPosition `json:"position"`
}

// ContentGap is a topic the site covers too thinly.
type ContentGap struct {
	Topic          string          `json:"topic"`
	Importance     TopicImportance `json:"importance"`
	Coverage       int             `json:"coverage"`
	Recommendation string          `json:"recommendation"`
}

// Analysis is the content view model.
type Analysis struct {
	URL           string            `json:"url"`
	Pages         []Page            `json:"pages"`
	GlobalMetrics GlobalMetrics     `json:"globalMetrics"`
	GlobalIssues  []seo.GlobalIssue `json:"globalIssues"`
	Visualization Visualization     `json:"visualization"`
	Benchmark     Benchmark         `json:"benchmark"`
	ContentGaps   []ContentGap      `json:"contentGaps"`
	Metadata      seo.Metadata      `json:"metadata"`
}

// Empty returns the canonical empty content analysis.
func Empty(now time.Time) Analysis {
	a := Build("", nil, nil)
	a.Metadata = seo.EmptyMetadata(string(seo.DomainContent), now)
	return a
}

// Unavailable returns the fallback content analysis.
func Unavailable(now time.Time) Analysis {
	a := Empty(now)
	a.GlobalIssues = []seo.GlobalIssue{seo.UnavailableIssue()}
	return a
}

// Build folds mapped pages into an analysis. Gaps reported by the backend
// take precedence over derived ones. Metadata is left to the caller.
func Build(target string, pages []Page, gaps []ContentGap) Analysis {
	if pages == nil {
		pages = []Page{}
	}
	if len(gaps) == 0 {
		gaps = DeriveGaps(pages)
	}

	metrics := BuildGlobalMetrics(pages)
	return Analysis{
		URL:           target,
		Pages:         pages,
		GlobalMetrics: metrics,
		GlobalIssues:  AggregateIssues(pages),
		Visualization: Visualization{
			QualityDistribution: services.ScoreDistribution(qualityScores(pages)),
			ContentTypes:        services.CountChart(contentTypeCounts(metrics.ContentTypes), contentTypeLabels()),
			ReadabilityHeatmap:  ReadabilityHeatmap(pages),
			TopicGraph:          TopicGraph(pages),
		},
		Benchmark: Benchmark{
			AverageQuality: metrics.AverageQuality,
			Position:       scoring.Position(metrics.AverageQuality),
		},
		ContentGaps: gaps,
	}
}

// BuildGlobalMetrics computes the site-wide figures. Averages of an empty
// page list are zero.
func BuildGlobalMetrics(pages []Page) GlobalMetrics {
	m := GlobalMetrics{
		TotalPages:   len(pages),
		ContentTypes: make(map[ContentType]int),
	}
	if len(pages) == 0 {
		return m
	}

	var quality, readability, readingTime float64
	for _, p := range pages {
		m.TotalWords += p.WordCount
		quality += p.QualityScore
		readability += p.Readability.FleschReadingEase
		readingTime += float64(p.ReadingTimeMinutes)
		m.ContentTypes[p.ContentType]++
		if p.WordCount < scoring.ThinContentWords {
			m.ThinContentPages++
		}
		if len(p.Issues) > 0 {
			m.PagesWithIssues++
		}
		m.TotalIssues += len(p.Issues)
	}

	n := float64(len(pages))
	m.AverageWordCount = coerce.Round(float64(m.TotalWords)/n, 1)
	m.AverageQuality = coerce.Round(quality/n, 1)
	m.AverageReadability = coerce.Round(readability/n, 1)
	m.AverageReadingTime = coerce.Round(readingTime/n, 1)
	return m
}

// AggregateIssues groups the page issues by type across the site.
func AggregateIssues(pages []Page) []seo.GlobalIssue {
	var occurrences []services.IssueOccurrence
	for _, p := range pages {
		for _, issue := range p.Issues {
			occurrences = append(occurrences, services.IssueOccurrence{
				Type:        string(issue.Type),
				Severity:    issue.Severity,
				Description: issue.Description,
				Entity:      p.URL,
			})
		}
	}
	return services.NewIssueAggregator().Aggregate(occurrences)
}

// ReadabilityHeatmap counts pages per content type and reading level.
// Rows are the content types present, columns every reading level.
func ReadabilityHeatmap(pages []Page) visual.Heatmap {
	levels := scoring.AllReadingLevels()
	hm := visual.EmptyHeatmap()
	for _, l := range levels {
		hm.XLabels = append(hm.XLabels, string(l))
	}

	rows := make(map[ContentType][]float64)
	for _, p := range pages {
		row, ok := rows[p.ContentType]
		if !ok {
			row = make([]float64, len(levels))
			rows[p.ContentType] = row
		}
		for i, l := range levels {
			if l == p.Readability.Level {
				row[i]++
				break
			}
		}
	}

	for _, t := range AllContentTypes() {
		if row, ok := rows[t]; ok {
			hm.YLabels = append(hm.YLabels, string(t))
			hm.Cells = append(hm.Cells, row)
		}
	}
	return hm
}

// TopicGraph links pages to the topics they cover. Topic node ids are
// prefixed with "topic:" so they never collide with page URLs.
func TopicGraph(pages []Page) visual.NetworkGraph {
	b := services.NewGraphBuilder()
	for _, p := range pages {
		if p.URL == "" {
			continue
		}
		b.AddNode(p.URL, p.Title, "page")
		for _, topic := range p.Topics {
			if topic.Name == "" {
				continue
			}
			id := "topic:" + topic.Name
			b.AddNode(id, topic.Name, "topic")
			b.AddEdge(p.URL, id)
		}
	}
	return b.Build()
}

// DeriveGaps reports high-importance topics covered by a single page.
func DeriveGaps(pages []Page) []ContentGap {
	coverage := make(map[string]int)
	important := make(map[string]bool)
	for _, p := range pages {
		seen := make(map[string]bool)
		for _, topic := range p.Topics {
			if topic.Name == "" || seen[topic.Name] {
				continue
			}
			seen[topic.Name] = true
			coverage[topic.Name]++
			if topic.Importance == ImportanceHigh {
				important[topic.Name] = true
			}
		}
	}

	gaps := []ContentGap{}
	for name := range important {
		if coverage[name] > 1 {
			continue
		}
		gaps = append(gaps, ContentGap{
			Topic:          name,
			Importance:     ImportanceHigh,
			Coverage:       coverage[name],
			Recommendation: fmt.Sprintf("Publish more content about %s", name),
		})
	}
	sort.Slice(gaps, func(i, j int) bool { return gaps[i].Topic < gaps[j].Topic })
	return gaps
}

// Summary implements seo.Report.
func (a Analysis) Summary() seo.Summary {
	counts := services.CountBySeverity(a.GlobalIssues)
	top := make([]string, 0, len(a.GlobalIssues))
	for _, issue := range a.GlobalIssues {
		top = append(top, fmt.Sprintf("%s (%d pages)", issue.Type, issue.Count))
	}

	m := a.GlobalMetrics
	return seo.Summary{
		Domain:   seo.DomainContent,
		Target:   a.URL,
		Score:    m.AverageQuality,
		Grade:    string(scoring.GradeFromScore(m.AverageQuality)),
		Critical: counts[seo.SeverityCritical],
		Warnings: counts[seo.SeverityWarning],
		Info:     counts[seo.SeverityInfo],
		Lines: []seo.SummaryLine{
			{Label: "Pages", Value: fmt.Sprintf("%d", m.TotalPages)},
			{Label: "Average words", Value: fmt.Sprintf("%.0f", m.AverageWordCount)},
			{Label: "Average readability", Value: fmt.Sprintf("%.1f", m.AverageReadability)},
			{Label: "Thin pages", Value: fmt.Sprintf("%d", m.ThinContentPages)},
			{Label: "Benchmark", Value: string(a.Benchmark.Position)},
			{Label: "Content gaps", Value: fmt.Sprintf("%d", len(a.ContentGaps))},
		},
		TopIssues: top,
	}
}

func qualityScores(pages []Page) []float64 {
	scores := make([]float64, len(pages))
	for i, p := range pages {
		scores[i] = p.QualityScore
	}
	return scores
}

func contentTypeCounts(counts map[ContentType]int) map[string]int {
	out := make(map[string]int, len(counts))
	for t, n := range counts {
		out[string(t)] = n
	}
	return out
}

func contentTypeLabels() []string {
	types := AllContentTypes()
	labels := make([]string, len(types))
	for i, t := range types {
		labels[i] = string(t)
	}
	return labels
}

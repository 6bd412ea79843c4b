// Package overview maps raw overview payloads into the overview view model.
package overview

import (
	"sort"

	"github.com/felixgeelhaar/firesalamander/internal/application/ports"
	model "github.com/felixgeelhaar/firesalamander/internal/domain/overview"
	"github.com/felixgeelhaar/firesalamander/internal/domain/scoring"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/mappers/mapping"
	"github.com/felixgeelhaar/firesalamander/pkg/coerce"
)

// payloadShape lists the structural keys of an overview payload.
var payloadShape = mapping.Shape{
	"scores":          mapping.KindObject,
	"issues":          mapping.KindArray,
	"recommendations": mapping.KindArray,
}

// Mapper maps overview payloads. It implements ports.Mapper.
type Mapper struct {
	guard mapping.Guard
}

// NewMapper creates an overview mapper.
func NewMapper(opts ...mapping.Option) *Mapper {
	return &Mapper{guard: mapping.Guard{
		Domain:   seo.DomainOverview,
		Shape:    payloadShape,
		Build:    build,
		Fallback: fallback,
		Options:  mapping.NewOptions(opts...),
	}}
}

// Domain returns seo.DomainOverview.
func (m *Mapper) Domain() seo.Domain {
	return seo.DomainOverview
}

// Map parses data and builds the overview.
func (m *Mapper) Map(data []byte) ports.MapResult {
	return m.guard.Map(data)
}

// MapObject builds the overview from a decoded payload.
func (m *Mapper) MapObject(payload map[string]any) ports.MapResult {
	return m.guard.MapObject(payload)
}

// MapBackendToOverview maps raw overview JSON. The returned report is
// always a model.Analysis.
func MapBackendToOverview(data []byte, opts ...mapping.Option) ports.MapResult {
	return NewMapper(opts...).Map(data)
}

func fallback(env mapping.Env) seo.Report {
	a := model.Unavailable(env.Now)
	a.Metadata = env.Stamp(a.Metadata)
	return a
}

func build(obj coerce.Object, env mapping.Env) (seo.Report, int) {
	url := obj.String("url", "target_url")
	domain := obj.String("domain")
	if domain == "" {
		domain = mapping.Host(url)
	}

	scores := mapScores(obj.Object("scores"))
	overall := overallScore(obj, scores)

	issues := mapIssues(obj.Slice("issues"))
	recs := mapRecommendations(obj.Slice("recommendations"))

	pagesAnalyzed := coerce.ValidatePositiveInt(obj.Value("pages_analyzed", "pages_crawled"), 0)
	stats := model.Stats{
		PagesAnalyzed: pagesAnalyzed,
		TotalPages:    coerce.ValidatePositiveInt(obj.Value("total_pages"), pagesAnalyzed),
		TotalIssues:   len(issues),
	}
	for _, issue := range issues {
		switch issue.Severity {
		case seo.SeverityCritical:
			stats.CriticalIssues++
		case seo.SeverityWarning:
			stats.WarningIssues++
		default:
			stats.InfoIssues++
		}
	}

	a := model.Analysis{
		URL:                url,
		Domain:             domain,
		Status:             model.ClassifyStatus(obj.String("status")),
		OverallScore:       overall,
		Grade:              scoring.GradeFromScore(overall),
		Scores:             scores,
		Stats:              stats,
		TopIssues:          topIssues(issues),
		Recommendations:    recs,
		CoreWebVitals:      env.Vitals(obj.Object("core_web_vitals", "performance")),
		AnalysisDurationMs: int64(coerce.ValidatePositiveNumber(obj.Value("analysis_duration_ms", "duration_ms"), 0)),
		Metadata:           env.Metadata(seo.DomainOverview, obj, url),
	}
	return a, len(issues) + len(recs)
}

func mapScores(obj coerce.Object) model.Scores {
	return model.Scores{
		Technical:   coerce.ValidatePercentage(obj.Value("technical", "technical_score")),
		Content:     coerce.ValidatePercentage(obj.Value("content", "content_score")),
		Security:    coerce.ValidatePercentage(obj.Value("security", "security_score")),
		Performance: coerce.ValidatePercentage(obj.Value("performance", "performance_score")),
		Mobile:      coerce.ValidatePercentage(obj.Value("mobile", "mobile_score")),
	}
}

// overallScore uses the backend's overall score when present, otherwise the
// mean of the area scores the backend did report.
func overallScore(obj coerce.Object, scores model.Scores) float64 {
	if obj.Has("overall_score") {
		return coerce.Round(coerce.ValidatePercentage(obj.Value("overall_score")), 1)
	}

	reported := obj.Object("scores")
	sum, n := 0.0, 0
	areas := []struct {
		key   string
		value float64
	}{
		{"technical", scores.Technical},
		{"content", scores.Content},
		{"security", scores.Security},
		{"performance", scores.Performance},
		{"mobile", scores.Mobile},
	}
	for _, area := range areas {
		if reported.Has(area.key) || reported.Has(area.key+"_score") {
			sum += area.value
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return coerce.Round(sum/float64(n), 1)
}

func mapIssues(raw []any) []model.TopIssue {
	issues := make([]model.TopIssue, 0, len(raw))
	for i, item := range raw {
		obj := coerce.AsObject(item)
		if obj == nil {
			continue
		}
		description := obj.String("description", "details")
		title := obj.String("title", "message", "name")
		if title == "" {
			title = description
		}
		if title == "" {
			title = "Untitled issue"
		}
		issues = append(issues, model.TopIssue{
			ID:            mapping.ID(obj.String("id"), "issue", i),
			Title:         title,
			Description:   description,
			Severity:      seo.ClassifySeverity(obj.String("severity", "level")),
			Category:      model.ClassifyCategory(obj.String("category", "type")),
			AffectedPages: mapping.Count(obj.Value("affected_pages", "count"), 0),
		})
	}
	return issues
}

// topIssues orders issues by severity then affected pages, keeping the
// first model.MaxTopIssues.
func topIssues(issues []model.TopIssue) []model.TopIssue {
	sorted := make([]model.TopIssue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Severity != sorted[j].Severity {
			return sorted[i].Severity > sorted[j].Severity
		}
		return sorted[i].AffectedPages > sorted[j].AffectedPages
	})
	if len(sorted) > model.MaxTopIssues {
		sorted = sorted[:model.MaxTopIssues]
	}
	return sorted
}

func mapRecommendations(raw []any) []model.Recommendation {
	recs := make([]model.Recommendation, 0, len(raw))
	for i, item := range raw {
		obj := coerce.AsObject(item)
		if obj == nil {
			continue
		}
		impact := model.ClassifyImpact(obj.String("impact"))
		priority := coerce.ValidatePositiveInt(obj.Value("priority"), 0)
		if priority < 1 || priority > 10 {
			priority = impact.Priority()
		}
		recs = append(recs, model.Recommendation{
			ID:          mapping.ID(obj.String("id"), "rec", i),
			Title:       obj.String("title", "message"),
			Description: obj.String("description"),
			Type:        model.ClassifyRecommendationType(obj.String("type", "category")),
			Impact:      impact,
			Effort:      model.ClassifyImpact(obj.String("effort")),
			Priority:    priority,
		})
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority > recs[j].Priority
	})
	return recs
}

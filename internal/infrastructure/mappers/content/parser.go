package content

import (
	"strings"

	model "github.com/felixgeelhaar/firesalamander/internal/domain/content"
	"github.com/felixgeelhaar/firesalamander/internal/domain/scoring"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/mappers/mapping"
	"github.com/felixgeelhaar/firesalamander/pkg/coerce"
)

// pageKeys mark a payload that describes a single page at the top level.
var pageKeys = []string{"word_count", "content", "readability_score"}

func parsePages(obj coerce.Object) []model.Page {
	raw := obj.Slice("pages", "results")
	if len(raw) == 0 && isSinglePage(obj) {
		return []model.Page{parsePage(obj)}
	}

	pages := make([]model.Page, 0, len(raw))
	for _, item := range raw {
		if page := coerce.AsObject(item); page != nil {
			pages = append(pages, parsePage(page))
		}
	}
	return pages
}

func isSinglePage(obj coerce.Object) bool {
	for _, key := range pageKeys {
		if obj.Has(key) {
			return true
		}
	}
	return false
}

func parsePage(obj coerce.Object) model.Page {
	url := obj.String("url", "page_url")
	words := wordCount(obj)

	contentType, ok := model.ParseContentType(obj.String("content_type", "type"))
	if !ok {
		contentType = model.ClassifyContentType(url, words)
	}

	keywords := obj.Strings("keywords")
	primary := obj.String("primary_keyword", "focus_keyword", "keyword")
	if primary == "" && len(keywords) > 0 {
		primary = keywords[0]
	}

	p := model.Page{
		URL:                url,
		Title:              strings.TrimSpace(obj.String("title")),
		ContentType:        contentType,
		WordCount:          words,
		ReadingTimeMinutes: model.ReadingTime(words),
		Readability:        scoring.Readability(readabilityScore(obj)),
		PrimaryKeyword:     primary,
		KeywordDensity:     coerce.ValidatePercentage(obj.Value("keyword_density", "density")),
		Keywords:           keywords,
		Headings:           parseHeadings(obj.Object("headings", "heading_structure")),
		ImageCount:         mapping.Count(obj.Value("image_count", "images"), 0),
		LastModified:       mapping.OptionalDate(obj.Value("last_modified", "updated_at")),
		Topics:             parseTopics(obj.Slice("topics")),
	}
	p.Issues = model.MergeIssues(parseIssues(obj.Slice("issues")), p.DeriveIssues())
	p.Quality = p.Score()
	p.QualityScore = p.Quality.Total
	return p
}

// wordCount prefers the reported count and falls back to counting the
// words of the raw content.
func wordCount(obj coerce.Object) int {
	if obj.Has("word_count") || obj.Has("words") {
		return coerce.ValidatePositiveInt(obj.Value("word_count", "words"), 0)
	}
	return len(strings.Fields(obj.String("content", "text")))
}

// readabilityScore reads the Flesch Reading Ease from a flat key or from a
// nested readability object.
func readabilityScore(obj coerce.Object) float64 {
	if nested := obj.Object("readability"); nested != nil {
		return coerce.ValidatePercentage(nested.Value("flesch_reading_ease", "score"))
	}
	return coerce.ValidatePercentage(obj.Value("readability_score", "flesch_reading_ease", "readability"))
}

// parseHeadings counts headings reported either as counts or as lists of
// heading texts.
func parseHeadings(obj coerce.Object) model.HeadingCounts {
	return model.HeadingCounts{
		H1: mapping.Count(obj.Value("h1"), 0),
		H2: mapping.Count(obj.Value("h2"), 0),
		H3: mapping.Count(obj.Value("h3"), 0),
	}
}

func parseIssues(raw []any) []model.Issue {
	issues := make([]model.Issue, 0, len(raw))
	for _, item := range raw {
		obj := coerce.AsObject(item)
		if obj == nil {
			if s, ok := item.(string); ok && s != "" {
				t := model.ClassifyIssueType(s)
				issues = append(issues, model.Issue{Type: t, Severity: t.DefaultSeverity(), Description: s})
			}
			continue
		}

		t := model.ClassifyIssueType(obj.String("type", "category"))
		severity := t.DefaultSeverity()
		if obj.Has("severity") {
			severity = seo.ClassifySeverity(obj.String("severity"))
		}
		description := obj.String("description", "message")
		if description == "" {
			description = string(t)
		}
		issues = append(issues, model.Issue{
			Type:           t,
			Severity:       severity,
			Description:    description,
			Recommendation: obj.String("recommendation", "suggestion"),
		})
	}
	return issues
}

func parseTopics(raw []any) []model.Topic {
	topics := make([]model.Topic, 0, len(raw))
	for _, item := range raw {
		obj := coerce.AsObject(item)
		if obj == nil {
			if name, ok := item.(string); ok && name != "" {
				topics = append(topics, model.Topic{Name: name, Importance: model.ImportanceMedium})
			}
			continue
		}

		relevance := coerce.ValidatePositiveNumber(obj.Value("relevance", "score"), 0)
		if relevance > 1 {
			relevance = coerce.Clamp(relevance, 0, 100) / 100
		}
		importance := model.ImportanceFromRelevance(relevance)
		if obj.Has("importance") {
			importance = model.ClassifyImportance(obj.String("importance"))
		}
		topics = append(topics, model.Topic{
			Name:       obj.String("name", "topic"),
			Relevance:  coerce.Round(relevance, 2),
			Importance: importance,
			Mentions:   coerce.ValidatePositiveInt(obj.Value("mentions", "count"), 0),
		})
	}
	return topics
}

func parseGaps(raw []any) []model.ContentGap {
	gaps := make([]model.ContentGap, 0, len(raw))
	for _, item := range raw {
		obj := coerce.AsObject(item)
		if obj == nil {
			continue
		}
		topic := obj.String("topic", "name")
		if topic == "" {
			continue
		}
		recommendation := obj.String("recommendation", "suggestion")
		if recommendation == "" {
			recommendation = "Publish more content about " + topic
		}
		gaps = append(gaps, model.ContentGap{
			Topic:          topic,
			Importance:     model.ClassifyImportance(obj.String("importance", "priority")),
			Coverage:       coerce.ValidatePositiveInt(obj.Value("coverage"), 0),
			Recommendation: recommendation,
		})
	}
	return gaps
}

package content

import (
	"github.com/felixgeelhaar/firesalamander/internal/domain/scoring"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
)

// WordsPerMinute is the reading speed used for reading time estimates.
const WordsPerMinute = 200

// Thresholds that raise derived content issues.
const (
	PoorReadabilityScore = 50
	StuffingDensity      = 3.0
	LowDensity           = 1.0
)

// Issue is a content issue on one page.
type Issue struct {
	Type           IssueType    `json:"type"`
	Severity       seo.Severity `json:"severity"`
	Description    string       `json:"description"`
	Recommendation string       `json:"recommendation"`
}

// Topic is a subject covered by a page.
type Topic struct {
	Name       string          `json:"name"`
	Relevance  float64         `json:"relevance"`
	Importance TopicImportance `json:"importance"`
	Mentions   int             `json:"mentions"`
}

// HeadingCounts counts the headings of a page by level.
type HeadingCounts struct {
	H1 int `json:"h1"`
	H2 int `json:"h2"`
	H3 int `json:"h3"`
}

// Page is the content analysis of one URL.
type Page struct {
	URL                string                     `json:"url"`
	Title              string                     `json:"title"`
	ContentType        ContentType                `json:"contentType"`
	WordCount          int                        `json:"wordCount"`
	ReadingTimeMinutes int                        `json:"readingTimeMinutes"`
	Readability        scoring.ReadabilityIndices `json:"readability"`
	PrimaryKeyword     string                     `json:"primaryKeyword"`
	KeywordDensity     float64                    `json:"keywordDensity"`
	Keywords           []string                   `json:"keywords"`
	Headings           HeadingCounts              `json:"headings"`
	ImageCount         int                        `json:"imageCount"`
	LastModified       string                     `json:"lastModified"`
	QualityScore       float64                    `json:"qualityScore"`
	Quality            scoring.QualityBreakdown   `json:"quality"`
	Issues             []Issue                    `json:"issues"`
	Topics             []Topic                    `json:"topics"`
}

// ReadingTime estimates the minutes needed to read words. Non-empty
// content takes at least one minute.
func ReadingTime(words int) int {
	if words <= 0 {
		return 0
	}
	return (words + WordsPerMinute - 1) / WordsPerMinute
}

// DeriveIssues returns the issues implied by the page signals.
func (p Page) DeriveIssues() []Issue {
	issues := []Issue{}
	add := func(t IssueType, description, recommendation string) {
		issues = append(issues, Issue{
			Type:           t,
			Severity:       t.DefaultSeverity(),
			Description:    description,
			Recommendation: recommendation,
		})
	}

	if p.WordCount < scoring.ThinContentWords {
		add(IssueThinContent, "Page has fewer than 300 words", "Expand the content to cover the topic in depth")
	}
	if p.Readability.FleschReadingEase < PoorReadabilityScore {
		add(IssuePoorReadability, "Text is hard to read", "Use shorter sentences and simpler words")
	}
	if p.Headings.H1 == 0 {
		add(IssueMissingHeadings, "Page has no H1 heading", "Add a single descriptive H1 heading")
	} else if p.Headings.H1 > 1 || p.Headings.H2 == 0 {
		add(IssuePoorStructure, "Heading outline is unbalanced", "Use one H1 and break the content into H2 sections")
	}
	if p.PrimaryKeyword != "" {
		switch {
		case p.KeywordDensity > StuffingDensity:
			add(IssueKeywordStuffing, "Primary keyword is overused", "Reduce keyword repetition below 3%")
		case p.KeywordDensity < LowDensity:
			add(IssueLowKeywordDensity, "Primary keyword is rarely used", "Mention the primary keyword more naturally")
		}
	}
	if p.ImageCount == 0 && p.WordCount >= scoring.ThinContentWords {
		add(IssueMissingImages, "Page has no images", "Illustrate the content with relevant images")
	}
	return issues
}

// MergeIssues appends derived issues whose type is not already reported.
func MergeIssues(reported, derived []Issue) []Issue {
	seen := make(map[IssueType]bool, len(reported))
	merged := make([]Issue, 0, len(reported)+len(derived))
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

// Score computes the quality breakdown of the page from its signals and
// issues.
func (p Page) Score() scoring.QualityBreakdown {
	in := scoring.QualityInput{
		WordCount:      p.WordCount,
		TargetWords:    p.ContentType.TargetWords(),
		Readability:    p.Readability.FleschReadingEase,
		KeywordDensity: p.KeywordDensity,
		H1Count:        p.Headings.H1,
		H2Count:        p.Headings.H2,
	}
	for _, issue := range p.Issues {
		switch issue.Severity {
		case seo.SeverityCritical:
			in.CriticalIssues++
		case seo.SeverityWarning:
			in.WarningIssues++
		default:
			in.InfoIssues++
		}
	}
	return scoring.ContentQuality(in)
}

package content

import (
	"testing"

	"github.com/felixgeelhaar/firesalamander/internal/domain/scoring"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
	"github.com/stretchr/testify/assert"
)

func TestReadingTime(t *testing.T) {
	assert.Equal(t, 0, ReadingTime(0))
	assert.Equal(t, 0, ReadingTime(-5))
	assert.Equal(t, 1, ReadingTime(1))
	assert.Equal(t, 1, ReadingTime(200))
	assert.Equal(t, 2, ReadingTime(201))
	assert.Equal(t, 8, ReadingTime(1500))
}

func TestPage_ThinBlogScenario(t *testing.T) {
	p := Page{
		URL:         "https://example.com/blog/short",
		WordCount:   250,
		ContentType: ClassifyContentType("https://example.com/blog/short", 250),
		Readability: scoring.Readability(95),
	}
	p.Issues = p.DeriveIssues()
	q := p.Score()

	assert.Equal(t, TypeBlog, p.ContentType)
	assert.Equal(t, 33.3, q.Length)
	assert.Equal(t, 95.0, q.Readability)
	assert.Less(t, q.Total, 80.0)
	assert.InDelta(t, 50.1, q.Total, 0.1)

	types := make([]IssueType, 0, len(p.Issues))
	for _, issue := range p.Issues {
		types = append(types, issue.Type)
	}
	assert.Contains(t, types, IssueThinContent)
}

func TestPage_DeriveIssues(t *testing.T) {
	p := Page{
		WordCount:      1200,
		Readability:    scoring.Readability(40),
		PrimaryKeyword: "seo",
		KeywordDensity: 4.5,
		Headings:       HeadingCounts{H1: 2, H2: 3},
	}

	types := map[IssueType]seo.Severity{}
	for _, issue := range p.DeriveIssues() {
		types[issue.Type] = issue.Severity
	}

	assert.Equal(t, seo.SeverityWarning, types[IssuePoorReadability])
	assert.Equal(t, seo.SeverityCritical, types[IssueKeywordStuffing])
	assert.Contains(t, types, IssuePoorStructure)
	assert.Contains(t, types, IssueMissingImages)
	assert.NotContains(t, types, IssueThinContent)
}

func TestPage_DeriveIssues_Clean(t *testing.T) {
	p := Page{
		WordCount:      1200,
		Readability:    scoring.Readability(70),
		PrimaryKeyword: "seo",
		KeywordDensity: 2,
		Headings:       HeadingCounts{H1: 1, H2: 4},
		ImageCount:     3,
	}
	issues := p.DeriveIssues()
	assert.NotNil(t, issues)
	assert.Empty(t, issues)
}

func TestMergeIssues(t *testing.T) {
	reported := []Issue{{Type: IssueThinContent, Severity: seo.SeverityCritical, Description: "backend"}}
	derived := []Issue{
		{Type: IssueThinContent, Severity: seo.SeverityWarning},
		{Type: IssueMissingImages, Severity: seo.SeverityInfo},
	}

	merged := MergeIssues(reported, derived)
	assert.Len(t, merged, 2)
	assert.Equal(t, "backend", merged[0].Description)
	assert.Equal(t, IssueMissingImages, merged[1].Type)
}

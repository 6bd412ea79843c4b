package technical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/firesalamander/internal/domain/scoring"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
)

func goodPage(url string) Page {
	p := Page{
		URL:             url,
		StatusCode:      200,
		Title:           NewTitle("A perfectly reasonable page title here"),
		MetaDescription: NewMetaDescription("This meta description is long enough to satisfy the minimum length requirement of one hundred and twenty characters for sure."),
		Headings:        Headings{H1: []string{"Main"}}.Check(),
		Images:          []Image{},
		Links:           NewLinks(nil, nil, nil),
		Canonical:       url,
		Indexable:       true,
	}
	p.Issues = p.DeriveIssues()
	return p
}

func issueTypes(issues []seo.Issue) []seo.IssueType {
	types := make([]seo.IssueType, len(issues))
	for i, issue := range issues {
		types[i] = issue.Type
	}
	return types
}

func TestPage_DeriveIssues_Clean(t *testing.T) {
	p := goodPage("https://example.com/")
	assert.Empty(t, p.Issues)
	assert.Equal(t, 100.0, p.Score())
}

func TestPage_DeriveIssues(t *testing.T) {
	p := Page{
		URL:             "https://example.com/bad",
		StatusCode:      404,
		Title:           NewTitle(""),
		MetaDescription: NewMetaDescription("short"),
		Headings:        Headings{H1: []string{"a", "b"}}.Check(),
		Images: []Image{
			{Src: "/a.png", HasAlt: false},
			{Src: "/b.png", HasAlt: true, SizeBytes: LargeImageBytes + 1},
		},
		Links:       NewLinks(nil, nil, []BrokenLink{{URL: "/gone", StatusCode: 404}}),
		Performance: &Performance{LoadTimeMs: 4500},
		Mobile:      &Mobile{Friendly: false},
	}

	issues := p.DeriveIssues()
	assert.Equal(t, []seo.IssueType{
		seo.IssueMissingTitle,
		seo.IssueMetaDescriptionShort,
		seo.IssueMultipleH1,
		seo.IssueMissingAltText,
		seo.IssueLargeImages,
		seo.IssueBrokenLinks,
		seo.IssueHTTPError,
		seo.IssueSlowPage,
		seo.IssueNotMobileFriendly,
		seo.IssueMissingCanonical,
		seo.IssueNoindex,
	}, issueTypes(issues))

	assert.Equal(t, []string{"/a.png"}, issues[3].AffectedElements)
	assert.Equal(t, []string{"/gone"}, issues[5].AffectedElements)
	assert.Equal(t, seo.SeverityCritical, issues[0].Severity)
	for _, issue := range issues {
		assert.True(t, issue.Type.IsValid())
		assert.NotNil(t, issue.AffectedElements)
	}
}

func TestPage_DeriveIssues_Redirect(t *testing.T) {
	p := goodPage("https://example.com/old")
	p.StatusCode = 301
	assert.Equal(t, []seo.IssueType{seo.IssueRedirect}, issueTypes(p.DeriveIssues()))
}

func TestMergeIssues(t *testing.T) {
	reported := []seo.Issue{seo.NewIssue(seo.IssueSlowPage, seo.SeverityCritical, "backend says slow")}
	derived := []seo.Issue{
		seo.NewIssue(seo.IssueSlowPage, seo.SeverityWarning, ""),
		seo.NewIssue(seo.IssueNoindex, seo.SeverityInfo, ""),
	}

	merged := MergeIssues(reported, derived)
	require.Len(t, merged, 2)
	assert.Equal(t, "backend says slow", merged[0].Description)
	assert.Equal(t, seo.IssueNoindex, merged[1].Type)
}

func TestMobileScore(t *testing.T) {
	assert.Equal(t, 0.0, MobileScore(Mobile{}))
	assert.Equal(t, 50.0, MobileScore(Mobile{Viewport: true, FontSizeOK: true}))
	assert.Equal(t, 100.0, MobileScore(Mobile{Viewport: true, Responsive: true, TapTargetsOK: true, FontSizeOK: true}))
}

func TestBuild(t *testing.T) {
	home := goodPage("https://example.com/")
	home.Links = NewLinks([]string{"https://example.com/about", "https://example.com/missing"}, []string{"https://other.com"}, nil)
	home.Performance = &Performance{LoadTimeMs: 1000}

	about := goodPage("https://example.com/about")
	about.Canonical = ""
	about.Images = []Image{{Src: "/x.png"}}
	about.Issues = about.DeriveIssues()
	about.Performance = &Performance{LoadTimeMs: 2000}
	about.Mobile = &Mobile{Friendly: true}

	chains := []RedirectChain{
		NewRedirectChain("https://example.com/a", "", []RedirectHop{{URL: "https://example.com/b"}, {URL: "https://example.com/a"}}),
		NewRedirectChain("https://example.com/c", "https://example.com/d", []RedirectHop{{URL: "https://example.com/d"}}),
	}

	a := Build("https://example.com", []Page{home, about}, chains, DefaultConfig())

	assert.Equal(t, "https://example.com", a.URL)
	m := a.Metrics
	assert.Equal(t, 2, m.TotalPages)
	assert.Equal(t, 2, m.StatusCodes.Success)
	assert.Equal(t, 1500.0, m.AverageLoadTimeMs)
	assert.Equal(t, 1, m.TotalImages)
	assert.Equal(t, 1, m.ImagesWithoutAlt)
	assert.Equal(t, 2, m.TotalInternalLinks)
	assert.Equal(t, 1, m.TotalExternalLinks)
	assert.Equal(t, 2, m.IndexablePages)
	assert.Equal(t, 1, m.MobileFriendlyPages)
	assert.Equal(t, 2, m.RedirectChains)
	assert.Equal(t, 1, m.RedirectLoops)
	assert.Equal(t, 1, m.WarningIssues)
	assert.Equal(t, 1, m.InfoIssues)
	assert.Equal(t, scoring.GradeFromScore(m.Score), m.Grade)

	types := make([]string, len(a.GlobalIssues))
	for i, issue := range a.GlobalIssues {
		types[i] = issue.Type
	}
	assert.ElementsMatch(t, []string{"missing-alt-text", "missing-canonical", "redirect"}, types)

	assert.Equal(t, []string{"2xx", "3xx", "4xx", "5xx"}, a.Visualization.StatusCodes.Labels)
	assert.Equal(t, []float64{2, 0, 0, 0}, a.Visualization.StatusCodes.Values)
	assert.Equal(t, []float64{0, 1, 1}, a.Visualization.IssueSeverity.Values)

	graph := a.Visualization.LinkGraph
	require.Len(t, graph.Nodes, 2)
	require.Len(t, graph.Edges, 1)
	assert.Equal(t, "https://example.com/about", graph.Edges[0].Target)
	assert.Equal(t, "2xx", graph.Nodes[0].Group)
}

func TestBuild_Empty(t *testing.T) {
	a := Build("", nil, nil, DefaultConfig())
	assert.NotNil(t, a.Pages)
	assert.NotNil(t, a.GlobalIssues)
	assert.NotNil(t, a.RedirectChains)
	assert.Equal(t, 0.0, a.Metrics.Score)
	assert.Equal(t, scoring.GradeF, a.Metrics.Grade)
	assert.Equal(t, []float64{0, 0, 0, 0}, a.Visualization.StatusCodes.Values)
}

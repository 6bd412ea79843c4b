// Package technical defines the technical SEO analysis view model and the
// per-page checks that derive its issues.
package technical

import (
	"unicode/utf8"

	"github.com/felixgeelhaar/firesalamander/internal/domain/scoring"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
)

// Length bounds of titles and meta descriptions, in characters.
const (
	TitleMinLength = 30
	TitleMaxLength = 60
	MetaMinLength  = 120
	MetaMaxLength  = 160
)

// TextElement is a title or meta description. Length is always the
// character count of Content.
type TextElement struct {
	Content string          `json:"content"`
	Length  int             `json:"length"`
	Issues  []seo.IssueType `json:"issues"`
}

// NewTitle checks a page title.
func NewTitle(content string) TextElement {
	return newTextElement(content, TitleMinLength, TitleMaxLength,
		seo.IssueMissingTitle, seo.IssueTitleTooShort, seo.IssueTitleTooLong)
}

// NewMetaDescription checks a page meta description.
func NewMetaDescription(content string) TextElement {
	return newTextElement(content, MetaMinLength, MetaMaxLength,
		seo.IssueMissingMetaDescription, seo.IssueMetaDescriptionShort, seo.IssueMetaDescriptionLong)
}

func newTextElement(content string, minLen, maxLen int, missing, short, long seo.IssueType) TextElement {
	el := TextElement{
		Content: content,
		Length:  utf8.RuneCountInString(content),
		Issues:  []seo.IssueType{},
	}
	switch {
	case el.Length == 0:
		el.Issues = append(el.Issues, missing)
	case el.Length < minLen:
		el.Issues = append(el.Issues, short)
	case el.Length > maxLen:
		el.Issues = append(el.Issues, long)
	}
	return el
}

// Headings lists the heading texts of a page by level.
type Headings struct {
	H1     []string        `json:"h1"`
	H2     []string        `json:"h2"`
	H3     []string        `json:"h3"`
	H4     []string        `json:"h4"`
	H5     []string        `json:"h5"`
	H6     []string        `json:"h6"`
	Issues []seo.IssueType `json:"issues"`
}

// EmptyHeadings returns headings with every level empty.
func EmptyHeadings() Headings {
	return Headings{
		H1: []string{}, H2: []string{}, H3: []string{},
		H4: []string{}, H5: []string{}, H6: []string{},
		Issues: []seo.IssueType{},
	}
}

// Check derives the H1 issues of the headings.
func (h Headings) Check() Headings {
	h.Issues = []seo.IssueType{}
	switch {
	case len(h.H1) == 0:
		h.Issues = append(h.Issues, seo.IssueMissingH1)
	case len(h.H1) > 1:
		h.Issues = append(h.Issues, seo.IssueMultipleH1)
	}
	return h
}

// Image is an image referenced by a page.
type Image struct {
	Src       string `json:"src"`
	Alt       string `json:"alt"`
	HasAlt    bool   `json:"hasAlt"`
	SizeBytes int    `json:"sizeBytes"`
}

// LargeImageBytes is the size above which an image is oversized.
const LargeImageBytes = 500 * 1024

// BrokenLink is a link whose target returned an error status.
type BrokenLink struct {
	URL        string `json:"url"`
	StatusCode int    `json:"statusCode"`
	AnchorText string `json:"anchorText"`
}

// Links holds the outgoing links of a page.
type Links struct {
	Internal      []string     `json:"internal"`
	External      []string     `json:"external"`
	Broken        []BrokenLink `json:"broken"`
	InternalCount int          `json:"internalCount"`
	ExternalCount int          `json:"externalCount"`
	BrokenCount   int          `json:"brokenCount"`
}

// NewLinks builds links with counts matching the lists.
func NewLinks(internal, external []string, broken []BrokenLink) Links {
	if internal == nil {
		internal = []string{}
	}
	if external == nil {
		external = []string{}
	}
	if broken == nil {
		broken = []BrokenLink{}
	}
	return Links{
		Internal:      internal,
		External:      external,
		Broken:        broken,
		InternalCount: len(internal),
		ExternalCount: len(external),
		BrokenCount:   len(broken),
	}
}

// SlowPageMs is the load time above which a page is slow.
const SlowPageMs = 3000

// Performance holds the load time and rated vitals of a page.
type Performance struct {
	LoadTimeMs float64                  `json:"loadTimeMs"`
	Vitals     []scoring.WebVital       `json:"vitals"`
	Grade      scoring.PerformanceGrade `json:"grade"`
	Score      int                      `json:"score"`
}

// Mobile holds the mobile-friendliness signals of a page.
type Mobile struct {
	Viewport     bool    `json:"viewport"`
	Responsive   bool    `json:"responsive"`
	TapTargetsOK bool    `json:"tapTargetsOk"`
	FontSizeOK   bool    `json:"fontSizeOk"`
	Score        float64 `json:"score"`
	Friendly     bool    `json:"friendly"`
}

// Page is the technical analysis of one crawled URL.
type Page struct {
	URL             string       `json:"url"`
	StatusCode      int          `json:"statusCode"`
	Title           TextElement  `json:"title"`
	MetaDescription TextElement  `json:"metaDescription"`
	Headings        Headings     `json:"headings"`
	Images          []Image      `json:"images"`
	Links           Links        `json:"links"`
	Performance     *Performance `json:"performance"`
	Mobile          *Mobile      `json:"mobile"`
	Canonical       string       `json:"canonical"`
	Indexable       bool         `json:"indexable"`
	Issues          []seo.Issue  `json:"issues"`
}

// IssueCounts counts the page issues by severity.
func (p Page) IssueCounts() (critical, warning, info int) {
	for _, issue := range p.Issues {
		switch issue.Severity {
		case seo.SeverityCritical:
			critical++
		case seo.SeverityWarning:
			warning++
		default:
			info++
		}
	}
	return critical, warning, info
}

// Score rates the page from its issues.
func (p Page) Score() float64 {
	return scoring.IssuesScore(p.IssueCounts())
}

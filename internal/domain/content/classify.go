package content

import (
	"net/url"
	"strings"

	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
)

// ContentType is the kind of page a piece of content lives on.
type ContentType string

const (
	TypeHomepage ContentType = "homepage"
	TypeArticle  ContentType = "article"
	TypeBlog     ContentType = "blog"
	TypeProduct  ContentType = "product"
	TypeCategory ContentType = "category"
	TypeLanding  ContentType = "landing"
)

// AllContentTypes returns every content type in display order.
func AllContentTypes() []ContentType {
	return []ContentType{TypeHomepage, TypeArticle, TypeBlog, TypeProduct, TypeCategory, TypeLanding}
}

// LongFormWords separates long-form articles from blog posts.
const LongFormWords = 1500

// TargetWords returns the length at which the content type's length
// sub-score saturates.
func (t ContentType) TargetWords() int {
	switch t {
	case TypeArticle:
		return 1500
	case TypeBlog:
		return 1000
	case TypeLanding:
		return 600
	case TypeHomepage, TypeProduct:
		return 500
	case TypeCategory:
		return 400
	default:
		return 1000
	}
}

// ParseContentType maps an explicit backend content type onto ContentType.
func ParseContentType(s string) (ContentType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "homepage", "home":
		return TypeHomepage, true
	case "article", "guide":
		return TypeArticle, true
	case "blog", "post", "blog-post":
		return TypeBlog, true
	case "product", "pdp":
		return TypeProduct, true
	case "category", "collection", "listing":
		return TypeCategory, true
	case "landing", "landing-page":
		return TypeLanding, true
	default:
		return "", false
	}
}

var (
	productKeywords  = []string{"/product", "/products/", "/shop/", "/item/", "/p/"}
	categoryKeywords = []string{"/category", "/categories/", "/collections/", "/c/", "/tag/"}
	landingKeywords  = []string{"/landing", "/lp/", "/promo", "/offer", "/campaign"}
)

// ClassifyContentType derives the content type from the page URL and its
// word count. The rules apply in order:
//
//   - homepage: root path or /home
//   - article: /article/, or /guide with more than 1500 words
//   - blog: /blog/, or fewer than 1500 words
//   - product, category, landing: path keywords
//   - otherwise by length: over 2000 article, over 800 blog, under 300
//     product, else blog
func ClassifyContentType(rawURL string, words int) ContentType {
	path := pathOf(rawURL)

	switch {
	case path == "/" || path == "/home" || path == "/home/":
		return TypeHomepage
	case strings.Contains(path, "/article/"),
		strings.Contains(path, "/guide") && words > LongFormWords:
		return TypeArticle
	case strings.Contains(path, "/blog/"), words < LongFormWords:
		return TypeBlog
	case containsAny(path, productKeywords):
		return TypeProduct
	case containsAny(path, categoryKeywords):
		return TypeCategory
	case containsAny(path, landingKeywords):
		return TypeLanding
	}

	switch {
	case words > 2000:
		return TypeArticle
	case words > 800:
		return TypeBlog
	case words < 300:
		return TypeProduct
	default:
		return TypeBlog
	}
}

// pathOf returns the lowercased URL path. A bare host maps to "/" and a
// missing URL to "".
func pathOf(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if u, err := url.Parse(rawURL); err == nil && (u.Scheme != "" || u.Host != "") {
		if u.Path == "" {
			return "/"
		}
		return strings.ToLower(u.Path)
	}
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		rawURL = rawURL[:i]
	}
	return strings.ToLower(rawURL)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// IssueType is a content issue kind.
type IssueType string

const (
	IssueThinContent       IssueType = "thin-content"
	IssueKeywordStuffing   IssueType = "keyword-stuffing"
	IssuePoorReadability   IssueType = "poor-readability"
	IssueMissingHeadings   IssueType = "missing-headings"
	IssueDuplicateContent  IssueType = "duplicate-content"
	IssueMissingMeta       IssueType = "missing-meta"
	IssuePoorStructure     IssueType = "poor-structure"
	IssueLowKeywordDensity IssueType = "low-keyword-density"
	IssueMissingImages     IssueType = "missing-images"
	IssueBrokenLinks       IssueType = "broken-links"
	IssueOutdatedContent   IssueType = "outdated-content"
	IssueMissingCTA        IssueType = "missing-cta"
	IssueLongParagraphs    IssueType = "long-paragraphs"
)

var issueSeverities = map[IssueType]seo.Severity{
	IssueThinContent:       seo.SeverityWarning,
	IssueKeywordStuffing:   seo.SeverityCritical,
	IssuePoorReadability:   seo.SeverityWarning,
	IssueMissingHeadings:   seo.SeverityWarning,
	IssueDuplicateContent:  seo.SeverityCritical,
	IssueMissingMeta:       seo.SeverityWarning,
	IssuePoorStructure:     seo.SeverityInfo,
	IssueLowKeywordDensity: seo.SeverityInfo,
	IssueMissingImages:     seo.SeverityInfo,
	IssueBrokenLinks:       seo.SeverityWarning,
	IssueOutdatedContent:   seo.SeverityInfo,
	IssueMissingCTA:        seo.SeverityInfo,
	IssueLongParagraphs:    seo.SeverityInfo,
}

var issueAliases = map[string]IssueType{
	"thin":                     IssueThinContent,
	"low-word-count":           IssueThinContent,
	"keyword-overuse":          IssueKeywordStuffing,
	"over-optimization":        IssueKeywordStuffing,
	"readability":              IssuePoorReadability,
	"low-readability":          IssuePoorReadability,
	"no-headings":              IssueMissingHeadings,
	"missing-h1":               IssueMissingHeadings,
	"duplicate":                IssueDuplicateContent,
	"missing-meta-description": IssueMissingMeta,
	"missing-description":      IssueMissingMeta,
	"structure":                IssuePoorStructure,
	"low-keywords":             IssueLowKeywordDensity,
	"keyword-density":          IssueLowKeywordDensity,
	"no-images":                IssueMissingImages,
	"broken-link":              IssueBrokenLinks,
	"outdated":                 IssueOutdatedContent,
	"stale-content":            IssueOutdatedContent,
	"no-cta":                   IssueMissingCTA,
	"missing-call-to-action":   IssueMissingCTA,
	"long-paragraph":           IssueLongParagraphs,
	"wall-of-text":             IssueLongParagraphs,
}

// ClassifyIssueType maps a backend content issue onto IssueType.
// Unrecognized values resolve to IssuePoorStructure.
func ClassifyIssueType(s string) IssueType {
	key := strings.NewReplacer("_", "-", " ", "-").Replace(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := issueSeverities[IssueType(key)]; ok {
		return IssueType(key)
	}
	if t, ok := issueAliases[key]; ok {
		return t
	}
	return IssuePoorStructure
}

// DefaultSeverity returns the severity used when the backend supplies none.
func (t IssueType) DefaultSeverity() seo.Severity {
	if sev, ok := issueSeverities[t]; ok {
		return sev
	}
	return seo.SeverityInfo
}

// TopicImportance ranks a topic.
type TopicImportance string

const (
	ImportanceHigh   TopicImportance = "high"
	ImportanceMedium TopicImportance = "medium"
	ImportanceLow    TopicImportance = "low"
)

// ClassifyImportance maps a backend importance onto TopicImportance.
// Unrecognized values resolve to ImportanceMedium.
func ClassifyImportance(s string) TopicImportance {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "primary", "core":
		return ImportanceHigh
	case "low", "minor", "secondary":
		return ImportanceLow
	default:
		return ImportanceMedium
	}
}

// ImportanceFromRelevance bands a 0-1 relevance score.
func ImportanceFromRelevance(relevance float64) TopicImportance {
	switch {
	case relevance >= 0.7:
		return ImportanceHigh
	case relevance >= 0.4:
		return ImportanceMedium
	default:
		return ImportanceLow
	}
}

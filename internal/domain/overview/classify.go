package overview

import "strings"

// Status is the lifecycle state of an analysis.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// ClassifyStatus maps a backend status string onto Status.
// A payload with an unrecognized status has produced results, so the
// default is StatusCompleted.
func ClassifyStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "queued", "scheduled":
		return StatusPending
	case "running", "in_progress", "in-progress", "processing", "analyzing":
		return StatusRunning
	case "failed", "error", "errored", "cancelled", "canceled":
		return StatusFailed
	default:
		return StatusCompleted
	}
}

// Category groups overview issues by analysis area.
type Category string

const (
	CategoryTechnical   Category = "technical"
	CategoryContent     Category = "content"
	CategorySecurity    Category = "security"
	CategoryPerformance Category = "performance"
	CategoryMobile      Category = "mobile"
)

// ClassifyCategory maps a backend category onto Category.
// Unrecognized values resolve to CategoryTechnical.
func ClassifyCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "content", "seo-content", "keywords":
		return CategoryContent
	case "security", "ssl", "headers":
		return CategorySecurity
	case "performance", "speed", "core-web-vitals", "core_web_vitals":
		return CategoryPerformance
	case "mobile", "mobile-friendliness", "responsive":
		return CategoryMobile
	default:
		return CategoryTechnical
	}
}

// RecommendationType is the optimization area of a recommendation.
type RecommendationType string

const (
	RecommendationImages       RecommendationType = "images"
	RecommendationCSS          RecommendationType = "css"
	RecommendationJavaScript   RecommendationType = "javascript"
	RecommendationFonts        RecommendationType = "fonts"
	RecommendationCaching      RecommendationType = "caching"
	RecommendationCompression  RecommendationType = "compression"
	RecommendationCDN          RecommendationType = "cdn"
	RecommendationMinification RecommendationType = "minification"
)

var recommendationTypes = map[string]RecommendationType{
	"images":       RecommendationImages,
	"image":        RecommendationImages,
	"css":          RecommendationCSS,
	"stylesheets":  RecommendationCSS,
	"javascript":   RecommendationJavaScript,
	"js":           RecommendationJavaScript,
	"scripts":      RecommendationJavaScript,
	"fonts":        RecommendationFonts,
	"font":         RecommendationFonts,
	"caching":      RecommendationCaching,
	"cache":        RecommendationCaching,
	"compression":  RecommendationCompression,
	"gzip":         RecommendationCompression,
	"brotli":       RecommendationCompression,
	"cdn":          RecommendationCDN,
	"minification": RecommendationMinification,
	"minify":       RecommendationMinification,
}

// ClassifyRecommendationType maps a backend recommendation type onto
// RecommendationType. Unrecognized values resolve to RecommendationImages.
func ClassifyRecommendationType(s string) RecommendationType {
	if t, ok := recommendationTypes[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t
	}
	return RecommendationImages
}

// ImpactLevel rates the impact or effort of a recommendation.
type ImpactLevel string

const (
	ImpactHigh   ImpactLevel = "high"
	ImpactMedium ImpactLevel = "medium"
	ImpactLow    ImpactLevel = "low"
)

// ClassifyImpact maps a backend impact string onto ImpactLevel.
// Unrecognized values resolve to ImpactLow.
func ClassifyImpact(s string) ImpactLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "critical", "major":
		return ImpactHigh
	case "medium", "moderate":
		return ImpactMedium
	default:
		return ImpactLow
	}
}

// Priority returns the 1-10 priority implied by the impact.
func (l ImpactLevel) Priority() int {
	switch l {
	case ImpactHigh:
		return 9
	case ImpactMedium:
		return 6
	default:
		return 3
	}
}

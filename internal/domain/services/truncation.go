package services

import (
	"sort"

	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
)

// TruncateStrategy defines how issues are ordered before truncation.
type TruncateStrategy string

const (
	// StrategyPriority sorts by priority: critical > warning > info.
	StrategyPriority TruncateStrategy = "priority"
	// StrategyAffected sorts by affected entity count, largest first.
	StrategyAffected TruncateStrategy = "affected"
	// StrategyROI sorts by estimated ROI, largest first.
	StrategyROI TruncateStrategy = "roi"
)

// ParseTruncateStrategy returns the strategy named s, defaulting to
// StrategyPriority.
func ParseTruncateStrategy(s string) TruncateStrategy {
	switch TruncateStrategy(s) {
	case StrategyAffected, StrategyROI:
		return TruncateStrategy(s)
	default:
		return StrategyPriority
	}
}

// TruncationConfig holds truncation settings.
type TruncationConfig struct {
	MaxIssues int
	Strategy  TruncateStrategy
}

// TruncationResult holds truncated issues and metadata.
type TruncationResult struct {
	Issues     []seo.GlobalIssue
	Truncated  bool
	TotalCount int
	ShownCount int
	Summary    TruncationSummary
}

// TruncationSummary provides counts by severity.
type TruncationSummary struct {
	// BySeverity contains total counts for each severity level.
	BySeverity map[seo.Severity]int
	// HiddenBySeverity contains counts of hidden issues by severity.
	HiddenBySeverity map[seo.Severity]int
}

// TruncationService trims aggregated issue lists for size-limited
// consumers such as MCP tool responses, keeping the most important ones.
type TruncationService struct{}

// NewTruncationService creates a new truncation service.
func NewTruncationService() *TruncationService {
	return &TruncationService{}
}

// Truncate applies truncation to issues based on config.
// If MaxIssues is 0 or negative, no truncation is applied.
func (s *TruncationService) Truncate(issues []seo.GlobalIssue, cfg TruncationConfig) TruncationResult {
	total := len(issues)
	bySeverity := CountBySeverity(issues)

	if cfg.MaxIssues <= 0 || total <= cfg.MaxIssues {
		return TruncationResult{
			Issues:     issues,
			TotalCount: total,
			ShownCount: total,
			Summary: TruncationSummary{
				BySeverity:       bySeverity,
				HiddenBySeverity: make(map[seo.Severity]int),
			},
		}
	}

	shown := s.sortIssues(issues, cfg.Strategy)[:cfg.MaxIssues]
	shownBySeverity := CountBySeverity(shown)

	hidden := make(map[seo.Severity]int)
	for sev, n := range bySeverity {
		if h := n - shownBySeverity[sev]; h > 0 {
			hidden[sev] = h
		}
	}

	return TruncationResult{
		Issues:     shown,
		Truncated:  true,
		TotalCount: total,
		ShownCount: len(shown),
		Summary: TruncationSummary{
			BySeverity:       bySeverity,
			HiddenBySeverity: hidden,
		},
	}
}

// sortIssues returns a sorted copy of issues.
func (s *TruncationService) sortIssues(issues []seo.GlobalIssue, strategy TruncateStrategy) []seo.GlobalIssue {
	sorted := make([]seo.GlobalIssue, len(issues))
	copy(sorted, issues)

	switch strategy {
	case StrategyAffected:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Count > sorted[j].Count
		})
	case StrategyROI:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].EstimatedROI > sorted[j].EstimatedROI
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Priority > sorted[j].Priority
		})
	}
	return sorted
}

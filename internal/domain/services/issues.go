// Package services provides domain services that fold mapped entities into
// analysis-wide aggregates.
package services

import (
	"sort"

	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
	"github.com/felixgeelhaar/firesalamander/pkg/coerce"
)

// IssueOccurrence is one issue raised on one entity.
type IssueOccurrence struct {
	Type        string
	Severity    seo.Severity
	Description string
	Entity      string // URL or id of the affected entity
}

// IssueAggregator groups issue occurrences by type.
// It is a domain service without state between calls.
type IssueAggregator struct{}

// NewIssueAggregator creates a new issue aggregator.
func NewIssueAggregator() *IssueAggregator {
	return &IssueAggregator{}
}

// Aggregate groups occurrences by type, collecting the distinct affected
// entities and the first non-empty description. A group takes the highest
// severity among its occurrences. Priority follows severity and the
// estimated ROI grows with the number of affected entities.
//
// The result is ordered by priority, then affected count, then type.
func (a *IssueAggregator) Aggregate(occurrences []IssueOccurrence) []seo.GlobalIssue {
	type group struct {
		issue seo.GlobalIssue
		seen  map[string]bool
	}

	groups := make(map[string]*group)
	order := make([]string, 0)

	for _, occ := range occurrences {
		if occ.Type == "" {
			continue
		}
		g, ok := groups[occ.Type]
		if !ok {
			g = &group{
				issue: seo.GlobalIssue{
					Type:          occ.Type,
					Severity:      occ.Severity,
					AffectedPages: []string{},
				},
				seen: make(map[string]bool),
			}
			groups[occ.Type] = g
			order = append(order, occ.Type)
		}

		if occ.Severity.IsHigherThan(g.issue.Severity) {
			g.issue.Severity = occ.Severity
		}
		if g.issue.Description == "" && occ.Description != "" {
			g.issue.Description = occ.Description
		}
		if occ.Entity != "" && !g.seen[occ.Entity] {
			g.seen[occ.Entity] = true
			g.issue.AffectedPages = append(g.issue.AffectedPages, occ.Entity)
		}
	}

	result := make([]seo.GlobalIssue, 0, len(groups))
	for _, key := range order {
		issue := groups[key].issue
		issue.Count = len(issue.AffectedPages)
		issue.Priority = issue.Severity.Priority()
		issue.EstimatedROI = coerce.Round(float64(issue.Count)*issue.Severity.Weight(), 1)
		result = append(result, issue)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Priority != result[j].Priority {
			return result[i].Priority > result[j].Priority
		}
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Type < result[j].Type
	})

	return result
}

// CountBySeverity counts global issues per severity.
func CountBySeverity(issues []seo.GlobalIssue) map[seo.Severity]int {
	counts := make(map[seo.Severity]int)
	for _, issue := range issues {
		counts[issue.Severity]++
	}
	return counts
}

package seo

// DataUnavailable is the sentinel description placed in a fallback
// analysis when the backend payload could not be mapped.
const DataUnavailable = "data unavailable"

// Issue is a single finding attached to a page or other entity.
type Issue struct {
	Type             IssueType `json:"type"`
	Severity         Severity  `json:"severity"`
	Description      string    `json:"description"`
	AffectedElements []string  `json:"affectedElements"`
}

// NewIssue creates an issue using the type's canonical description when
// description is empty.
func NewIssue(t IssueType, sev Severity, description string, affected ...string) Issue {
	if description == "" {
		description = t.Description()
	}
	if affected == nil {
		affected = []string{}
	}
	return Issue{
		Type:             t,
		Severity:         sev,
		Description:      description,
		AffectedElements: affected,
	}
}

// GlobalIssue is an issue type aggregated across every entity of an analysis.
type GlobalIssue struct {
	Type          string   `json:"type"`
	Severity      Severity `json:"severity"`
	Description   string   `json:"description"`
	AffectedPages []string `json:"affectedPages"`
	Count         int      `json:"count"`
	Priority      int      `json:"priority"`
	EstimatedROI  float64  `json:"estimatedRoi"`
}

// UnavailableIssue is the sentinel global issue of a fallback analysis.
func UnavailableIssue() GlobalIssue {
	return GlobalIssue{
		Type:          "data-unavailable",
		Severity:      SeverityInfo,
		Description:   DataUnavailable,
		AffectedPages: []string{},
	}
}

package seo

// Domain identifies an analysis domain.
type Domain string

// Analysis domains with a backend-to-view-model mapper.
const (
	DomainOverview  Domain = "overview"
	DomainTechnical Domain = "technical"
	DomainSecurity  Domain = "security"
	DomainContent   Domain = "content"
	DomainBacklinks Domain = "backlinks"
)

// AllDomains returns every analysis domain in display order.
func AllDomains() []Domain {
	return []Domain{DomainOverview, DomainTechnical, DomainSecurity, DomainContent, DomainBacklinks}
}

// IsValid returns true if d is a known analysis domain.
func (d Domain) IsValid() bool {
	for _, known := range AllDomains() {
		if d == known {
			return true
		}
	}
	return false
}

// SummaryLine is one labelled figure of a Summary.
type SummaryLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Summary is the headline of an analysis used by console output.
type Summary struct {
	Domain      Domain        `json:"domain"`
	Target      string        `json:"target"`
	Score       float64       `json:"score"`
	Grade       string        `json:"grade"`
	Critical    int           `json:"critical"`
	Warnings    int           `json:"warnings"`
	Info        int           `json:"info"`
	Lines       []SummaryLine `json:"lines"`
	TopIssues   []string      `json:"topIssues"`
	Unavailable bool          `json:"unavailable"`
}

// Report is implemented by every analysis view model.
type Report interface {
	Summary() Summary
}

// Package backlinks defines the backlink profile view model of a domain.
package backlinks

import (
	"fmt"
	"sort"
	"time"

	"github.com/felixgeelhaar/firesalamander/internal/domain/scoring"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
	"github.com/felixgeelhaar/firesalamander/internal/domain/services"
	"github.com/felixgeelhaar/firesalamander/internal/domain/visual"
	"github.com/felixgeelhaar/firesalamander/pkg/coerce"
)

// Profile health thresholds that raise issues.
const (
	MinFollowRatio     = 50.0
	MaxExactAnchorRate = 30.0
)

// AnchorShare is the share of one anchor type in the profile.
type AnchorShare struct {
	Type       AnchorType `json:"type"`
	Count      int        `json:"count"`
	Percentage float64    `json:"percentage"`
}

// Profile is the aggregate view of all backlinks.
type Profile struct {
	TotalBacklinks        int                         `json:"totalBacklinks"`
	ReferringDomains      int                         `json:"referringDomains"`
	FollowRatio           float64                     `json:"followRatio"`
	AverageAuthority      float64                     `json:"averageAuthority"`
	ToxicBacklinks        int                         `json:"toxicBacklinks"`
	LostBacklinks         int                         `json:"lostBacklinks"`
	AuthorityDistribution []visual.DistributionBucket `json:"authorityDistribution"`
	AnchorDistribution    []AnchorShare               `json:"anchorDistribution"`
}

// Analysis is the backlinks view model.
type Analysis struct {
	Domain           string            `json:"domain"`
	Backlinks        []Backlink        `json:"backlinks"`
	ReferringDomains []ReferringDomain `json:"referringDomains"`
	Profile          Profile           `json:"profile"`
	Issues           []string          `json:"issues"`
	Metadata         seo.Metadata      `json:"metadata"`
}

// Empty returns the canonical empty backlinks analysis.
func Empty(now time.Time) Analysis {
	a := Build("", nil)
	a.Metadata = seo.EmptyMetadata(string(seo.DomainBacklinks), now)
	return a
}

// Unavailable returns the fallback backlinks analysis.
func Unavailable(now time.Time) Analysis {
	a := Empty(now)
	a.Issues = []string{seo.DataUnavailable}
	return a
}

// Build folds mapped backlinks into an analysis. Metadata is left to the
// caller.
func Build(domain string, links []Backlink) Analysis {
	if links == nil {
		links = []Backlink{}
	}
	domains := ReferringDomains(links)
	profile := BuildProfile(links, len(domains))

	return Analysis{
		Domain:           domain,
		Backlinks:        links,
		ReferringDomains: domains,
		Profile:          profile,
		Issues:           profileIssues(profile),
	}
}

// ReferringDomains groups backlinks by source domain, ordered by authority
// and then by link count.
func ReferringDomains(links []Backlink) []ReferringDomain {
	index := make(map[string]int)
	domains := []ReferringDomain{}

	for _, l := range links {
		if l.SourceDomain == "" {
			continue
		}
		i, ok := index[l.SourceDomain]
		if !ok {
			i = len(domains)
			index[l.SourceDomain] = i
			domains = append(domains, ReferringDomain{Domain: l.SourceDomain, FirstSeen: l.FirstSeen})
		}
		d := &domains[i]
		d.Backlinks++
		if l.Follow {
			d.FollowLinks++
		}
		if l.DomainAuthority > d.DomainAuthority {
			d.DomainAuthority = l.DomainAuthority
		}
		if l.FirstSeen != "" && (d.FirstSeen == "" || l.FirstSeen < d.FirstSeen) {
			d.FirstSeen = l.FirstSeen
		}
		if l.Toxic {
			d.Toxic = true
		}
	}

	sort.SliceStable(domains, func(i, j int) bool {
		if domains[i].DomainAuthority != domains[j].DomainAuthority {
			return domains[i].DomainAuthority > domains[j].DomainAuthority
		}
		return domains[i].Backlinks > domains[j].Backlinks
	})
	return domains
}

// BuildProfile computes the profile figures. Ratios of an empty list are
// zero.
func BuildProfile(links []Backlink, referringDomains int) Profile {
	p := Profile{
		TotalBacklinks:   len(links),
		ReferringDomains: referringDomains,
	}

	anchors := make(map[AnchorType]int)
	authorities := make([]float64, 0, len(links))
	var follow int
	var authority float64
	for _, l := range links {
		if l.Follow {
			follow++
		}
		if l.Toxic {
			p.ToxicBacklinks++
		}
		if l.Status == StatusLost {
			p.LostBacklinks++
		}
		authority += l.DomainAuthority
		authorities = append(authorities, l.DomainAuthority)
		anchors[l.AnchorType]++
	}

	p.AuthorityDistribution = services.ScoreDistribution(authorities)
	p.AnchorDistribution = make([]AnchorShare, 0, len(AllAnchorTypes()))
	for _, t := range AllAnchorTypes() {
		share := AnchorShare{Type: t, Count: anchors[t]}
		if len(links) > 0 {
			share.Percentage = coerce.Round(float64(share.Count)/float64(len(links))*100, 1)
		}
		p.AnchorDistribution = append(p.AnchorDistribution, share)
	}

	if len(links) > 0 {
		p.FollowRatio = coerce.Round(float64(follow)/float64(len(links))*100, 1)
		p.AverageAuthority = coerce.Round(authority/float64(len(links)), 1)
	}
	return p
}

func profileIssues(p Profile) []string {
	issues := []string{}
	if p.TotalBacklinks == 0 {
		return issues
	}
	if p.ToxicBacklinks > 0 {
		issues = append(issues, fmt.Sprintf("%d toxic backlinks with a spam score of %d or more", p.ToxicBacklinks, ToxicSpamScore))
	}
	if p.FollowRatio < MinFollowRatio {
		issues = append(issues, fmt.Sprintf("Only %.1f%% of backlinks pass link equity", p.FollowRatio))
	}
	for _, share := range p.AnchorDistribution {
		if share.Type == AnchorExact && share.Percentage > MaxExactAnchorRate {
			issues = append(issues, fmt.Sprintf("Exact-match anchors make up %.1f%% of the profile", share.Percentage))
		}
	}
	if p.LostBacklinks > 0 {
		issues = append(issues, fmt.Sprintf("%d backlinks were lost", p.LostBacklinks))
	}
	return issues
}

// Summary implements seo.Report.
func (a Analysis) Summary() seo.Summary {
	p := a.Profile
	return seo.Summary{
		Domain:   seo.DomainBacklinks,
		Target:   a.Domain,
		Score:    p.AverageAuthority,
		Grade:    string(scoring.GradeFromScore(p.AverageAuthority)),
		Critical: p.ToxicBacklinks,
		Warnings: len(a.Issues),
		Lines: []seo.SummaryLine{
			{Label: "Backlinks", Value: fmt.Sprintf("%d", p.TotalBacklinks)},
			{Label: "Referring domains", Value: fmt.Sprintf("%d", p.ReferringDomains)},
			{Label: "Follow ratio", Value: fmt.Sprintf("%.1f%%", p.FollowRatio)},
			{Label: "Average authority", Value: fmt.Sprintf("%.1f", p.AverageAuthority)},
		},
		TopIssues: a.Issues,
	}
}

package backlinks

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLinks() []Backlink {
	return []Backlink{
		{SourceDomain: "a.com", DomainAuthority: 80, Follow: true, AnchorType: AnchorBranded, FirstSeen: "2024-03-01"},
		{SourceDomain: "a.com", DomainAuthority: 60, Follow: false, AnchorType: AnchorExact, FirstSeen: "2024-01-01"},
		{SourceDomain: "b.com", DomainAuthority: 15, Follow: false, AnchorType: AnchorExact, SpamScore: 75, Toxic: true},
		{SourceDomain: "c.com", DomainAuthority: 40, Follow: false, AnchorType: AnchorGeneric, Status: StatusLost},
	}
}

func TestBuild(t *testing.T) {
	a := Build("example.com", sampleLinks())

	require.Len(t, a.ReferringDomains, 3)
	assert.Equal(t, "a.com", a.ReferringDomains[0].Domain)
	assert.Equal(t, 2, a.ReferringDomains[0].Backlinks)
	assert.Equal(t, 1, a.ReferringDomains[0].FollowLinks)
	assert.Equal(t, 80.0, a.ReferringDomains[0].DomainAuthority)
	assert.Equal(t, "2024-01-01", a.ReferringDomains[0].FirstSeen)
	assert.True(t, a.ReferringDomains[2].Toxic)

	p := a.Profile
	assert.Equal(t, 4, p.TotalBacklinks)
	assert.Equal(t, 3, p.ReferringDomains)
	assert.Equal(t, 25.0, p.FollowRatio)
	assert.Equal(t, 48.8, p.AverageAuthority)
	assert.Equal(t, 1, p.ToxicBacklinks)
	assert.Equal(t, 1, p.LostBacklinks)

	require.Len(t, p.AuthorityDistribution, 5)
	assert.Equal(t, 1, p.AuthorityDistribution[0].Count)
	assert.Equal(t, 1, p.AuthorityDistribution[1].Count)
	assert.Equal(t, 1, p.AuthorityDistribution[2].Count)
	assert.Equal(t, 1, p.AuthorityDistribution[3].Count)
	assert.Equal(t, 0, p.AuthorityDistribution[4].Count)

	shares := map[AnchorType]AnchorShare{}
	for _, s := range p.AnchorDistribution {
		shares[s.Type] = s
	}
	assert.Len(t, shares, 6)
	assert.Equal(t, 50.0, shares[AnchorExact].Percentage)

	assert.Len(t, a.Issues, 4)
}

func TestBuild_Empty(t *testing.T) {
	a := Build("", nil)

	assert.NotNil(t, a.Backlinks)
	assert.NotNil(t, a.ReferringDomains)
	assert.Empty(t, a.Issues)
	assert.Equal(t, 0.0, a.Profile.FollowRatio)
	for _, s := range a.Profile.AnchorDistribution {
		assert.Equal(t, 0.0, s.Percentage)
	}
}

func TestUnavailable(t *testing.T) {
	a := Unavailable(time.Now())
	assert.Equal(t, []string{seo.DataUnavailable}, a.Issues)
	assert.NotEmpty(t, a.Metadata.AnalysisID)
}

func TestAnalysis_Summary(t *testing.T) {
	s := Build("example.com", sampleLinks()).Summary()

	assert.Equal(t, seo.DomainBacklinks, s.Domain)
	assert.Equal(t, "example.com", s.Target)
	assert.Equal(t, 48.8, s.Score)
	assert.Equal(t, "D", s.Grade)
	assert.Equal(t, 1, s.Critical)
}

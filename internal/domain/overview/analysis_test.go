package overview

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmpty_SerializesEmptyLists(t *testing.T) {
	a := Empty(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	data, err := json.Marshal(a)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, []any{}, raw["topIssues"])
	assert.Equal(t, []any{}, raw["recommendations"])
	assert.Equal(t, []any{}, raw["coreWebVitals"])
	assert.Equal(t, "2025-01-01T00:00:00.000Z", a.Metadata.AnalysisDate)
}

func TestUnavailable(t *testing.T) {
	a := Unavailable(time.Now())

	assert.Equal(t, StatusFailed, a.Status)
	require.Len(t, a.TopIssues, 1)
	assert.Equal(t, seo.DataUnavailable, a.TopIssues[0].Description)
}

func TestAnalysis_Summary(t *testing.T) {
	a := Empty(time.Now())
	a.URL = "https://example.com"
	a.OverallScore = 72.5
	a.Grade = "B"
	a.Stats.CriticalIssues = 2
	a.TopIssues = []TopIssue{{Title: "Missing titles"}}

	s := a.Summary()
	assert.Equal(t, seo.DomainOverview, s.Domain)
	assert.Equal(t, "https://example.com", s.Target)
	assert.Equal(t, 72.5, s.Score)
	assert.Equal(t, "B", s.Grade)
	assert.Equal(t, 2, s.Critical)
	assert.Equal(t, []string{"Missing titles"}, s.TopIssues)
	assert.NotEmpty(t, s.Lines)
}

package seo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRisk(t *testing.T) {
	r, ok := ParseRisk("HIGH")
	assert.True(t, ok)
	assert.Equal(t, RiskHigh, r)

	_, ok = ParseRisk("unheard-of")
	assert.False(t, ok)
}

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		input    string
		expected Risk
	}{
		{"critical", RiskCritical},
		{"Moderate", RiskMedium},
		{"low", RiskLow},
		{"informational", RiskInfo},
		{"", RiskInfo},
		{"???", RiskInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyRisk(tt.input))
		})
	}
}

func TestRiskFromCVSS(t *testing.T) {
	tests := []struct {
		score    float64
		expected Risk
	}{
		{10, RiskCritical},
		{9.0, RiskCritical},
		{8.9, RiskHigh},
		{7.0, RiskHigh},
		{5.5, RiskMedium},
		{4.0, RiskMedium},
		{3.9, RiskLow},
		{0.1, RiskLow},
		{0, RiskInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, RiskFromCVSS(tt.score), "score %v", tt.score)
	}
}

func TestRisk_Lower(t *testing.T) {
	assert.Equal(t, RiskHigh, RiskCritical.Lower())
	assert.Equal(t, RiskMedium, RiskHigh.Lower())
	assert.Equal(t, RiskLow, RiskMedium.Lower())
	assert.Equal(t, RiskLow, RiskLow.Lower())
	assert.Equal(t, RiskLow, RiskInfo.Lower())
}

func TestRisk_JSON(t *testing.T) {
	data, err := json.Marshal(RiskMedium)
	require.NoError(t, err)
	assert.Equal(t, `"medium"`, string(data))

	var r Risk
	require.NoError(t, json.Unmarshal([]byte(`"critical"`), &r))
	assert.Equal(t, RiskCritical, r)
}

func TestAllRisks(t *testing.T) {
	risks := AllRisks()
	require.Len(t, risks, 5)
	assert.Equal(t, RiskCritical, risks[0])
	assert.Equal(t, RiskInfo, risks[4])
	assert.True(t, RiskHigh.IsAtLeast(RiskMedium))
}

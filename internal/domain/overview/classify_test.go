package overview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRecommendationType(t *testing.T) {
	tests := []struct {
		input string
		want  RecommendationType
	}{
		{"css", RecommendationCSS},
		{"JS", RecommendationJavaScript},
		{" Caching ", RecommendationCaching},
		{"gzip", RecommendationCompression},
		{"cdn", RecommendationCDN},
		{"minify", RecommendationMinification},
		{"fonts", RecommendationFonts},
		{"", RecommendationImages},
		{"unknown", RecommendationImages},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRecommendationType(tt.input))
		})
	}
}

func TestClassifyImpact(t *testing.T) {
	assert.Equal(t, ImpactHigh, ClassifyImpact("HIGH"))
	assert.Equal(t, ImpactMedium, ClassifyImpact("moderate"))
	assert.Equal(t, ImpactLow, ClassifyImpact("low"))
	assert.Equal(t, ImpactLow, ClassifyImpact(""))
	assert.Equal(t, ImpactLow, ClassifyImpact("whatever"))

	assert.Equal(t, 9, ImpactHigh.Priority())
	assert.Equal(t, 6, ImpactMedium.Priority())
	assert.Equal(t, 3, ImpactLow.Priority())
}

func TestClassifyStatusAndCategory(t *testing.T) {
	assert.Equal(t, StatusRunning, ClassifyStatus("in_progress"))
	assert.Equal(t, StatusFailed, ClassifyStatus("Error"))
	assert.Equal(t, StatusPending, ClassifyStatus("queued"))
	assert.Equal(t, StatusCompleted, ClassifyStatus(""))

	assert.Equal(t, CategorySecurity, ClassifyCategory("SSL"))
	assert.Equal(t, CategoryPerformance, ClassifyCategory("core_web_vitals"))
	assert.Equal(t, CategoryTechnical, ClassifyCategory("other"))
}

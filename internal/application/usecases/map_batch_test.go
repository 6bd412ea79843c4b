package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
)

func batchItems() []MapAnalysisInput {
	return []MapAnalysisInput{
		{Domain: seo.DomainOverview, Payload: []byte("one")},
		{Domain: "unknown", Payload: []byte("two")},
		{Domain: seo.DomainSecurity, Payload: []byte("three")},
		{Domain: seo.DomainOverview, Payload: []byte("four")},
	}
}

func TestMapAnalysisUseCase_ExecuteBatch(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		name := "sequential"
		if parallel {
			name = "parallel"
		}
		t.Run(name, func(t *testing.T) {
			metrics := &mockMetrics{}
			writer := &mockWriter{}
			registry := newMockRegistry(
				&mockMapper{domain: seo.DomainOverview, delay: 5 * time.Millisecond},
				&mockMapper{domain: seo.DomainSecurity, fallback: true},
			)
			uc := NewMapAnalysisUseCase(registry, metrics, writer)

			output, err := uc.ExecuteBatch(context.Background(), MapBatchInput{
				Items:      batchItems(),
				Parallel:   parallel,
				MaxWorkers: 2,
			})

			require.NoError(t, err)
			require.Len(t, output.Outputs, 4)
			assert.Equal(t, "one", output.Outputs[0].Summary.Target)
			assert.True(t, output.Outputs[2].Summary.Unavailable)
			assert.Equal(t, "four", output.Outputs[3].Summary.Target)

			require.Len(t, output.Errors, 1)
			assert.Equal(t, 1, output.Errors[0].Index)
			assert.ErrorIs(t, output.Errors[0].Error, ErrUnknownDomain)

			assert.Equal(t, 3, metrics.calls)
			require.Len(t, writer.reports, 3)
			assert.Equal(t, seo.DomainOverview, writer.reports[0].Domain)
			assert.Equal(t, seo.DomainSecurity, writer.reports[1].Domain)
			assert.Equal(t, seo.DomainOverview, writer.reports[2].Domain)
		})
	}
}

func TestMapAnalysisUseCase_ExecuteBatch_Cancelled(t *testing.T) {
	uc := NewMapAnalysisUseCase(newMockRegistry(&mockMapper{domain: seo.DomainOverview}), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	output, err := uc.ExecuteBatch(ctx, MapBatchInput{Items: batchItems(), Parallel: true})

	require.NoError(t, err)
	assert.Len(t, output.Errors, 4)
}

func TestMapAnalysisUseCase_ExecuteBatch_WriterError(t *testing.T) {
	uc := NewMapAnalysisUseCase(newMockRegistry(&mockMapper{domain: seo.DomainOverview}), nil, &mockWriter{fail: true})

	_, err := uc.ExecuteBatch(context.Background(), MapBatchInput{Items: batchItems()[:1]})
	assert.Error(t, err)
}

// Package usecases holds the application use cases of the mapping layer.
package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/firesalamander/internal/application/ports"
	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
)

// ErrUnknownDomain is returned when no mapper is registered for a domain.
var ErrUnknownDomain = errors.New("unknown analysis domain")

// MapAnalysisInput contains the input for the MapAnalysis use case.
type MapAnalysisInput struct {
	Domain  seo.Domain
	Payload []byte
	// Object is mapped instead of Payload when set.
	Object map[string]any
}

// MapAnalysisOutput contains the result of the MapAnalysis use case.
type MapAnalysisOutput struct {
	Result  ports.MapResult
	Summary seo.Summary
}

// MapAnalysisUseCase maps one backend payload into its view model.
type MapAnalysisUseCase struct {
	registry ports.MapperRegistry
	metrics  ports.MetricsRecorder
	writer   ports.ReportWriter
}

// NewMapAnalysisUseCase creates a new MapAnalysis use case. A nil metrics
// recorder discards measurements and a nil writer skips output.
func NewMapAnalysisUseCase(
	registry ports.MapperRegistry,
	metrics ports.MetricsRecorder,
	writer ports.ReportWriter,
) *MapAnalysisUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &MapAnalysisUseCase{
		registry: registry,
		metrics:  metrics,
		writer:   writer,
	}
}

// Execute maps the payload. A fallback is not an error: the output then
// carries the unavailable view model and the cause in Result.Err. Errors
// are returned only for unknown domains, cancelled contexts and writer
// failures.
func (uc *MapAnalysisUseCase) Execute(ctx context.Context, input MapAnalysisInput) (MapAnalysisOutput, error) {
	output, err := uc.mapOne(ctx, input)
	if err != nil {
		return output, err
	}

	if uc.writer != nil {
		if err := uc.writer.WriteReport(output.Result); err != nil {
			return output, fmt.Errorf("write %s report: %w", input.Domain, err)
		}
	}
	return output, nil
}

func (uc *MapAnalysisUseCase) mapOne(ctx context.Context, input MapAnalysisInput) (MapAnalysisOutput, error) {
	if err := ctx.Err(); err != nil {
		return MapAnalysisOutput{}, err
	}

	mapper, ok := uc.registry.Get(input.Domain)
	if !ok {
		return MapAnalysisOutput{}, fmt.Errorf("%w: %q", ErrUnknownDomain, input.Domain)
	}

	var result ports.MapResult
	if input.Object != nil {
		result = mapper.MapObject(input.Object)
	} else {
		result = mapper.Map(input.Payload)
	}

	uc.metrics.RecordMapping(string(input.Domain), result.Duration, result.Fallback, result.Reason, result.Entities)

	summary := result.Report.Summary()
	summary.Unavailable = result.Fallback
	return MapAnalysisOutput{Result: result, Summary: summary}, nil
}

package usecases

import (
	"context"
	"fmt"
	"sync"

	"github.com/felixgeelhaar/firesalamander/internal/domain/seo"
)

// MapBatchInput contains the input for mapping several payloads.
type MapBatchInput struct {
	Items      []MapAnalysisInput
	Parallel   bool
	MaxWorkers int
}

// MapBatchOutput holds one output per input item, in input order. Items
// that failed leave a zero output and an entry in Errors.
type MapBatchOutput struct {
	Outputs []MapAnalysisOutput
	Errors  []ItemError
}

// ItemError represents the failure of one batch item.
type ItemError struct {
	Index  int
	Domain seo.Domain
	Error  error
}

// ExecuteBatch maps every item and then writes the reports in input
// order.
func (uc *MapAnalysisUseCase) ExecuteBatch(ctx context.Context, input MapBatchInput) (MapBatchOutput, error) {
	output := MapBatchOutput{
		Outputs: make([]MapAnalysisOutput, len(input.Items)),
		Errors:  []ItemError{},
	}
	failed := make([]error, len(input.Items))

	if input.Parallel && len(input.Items) > 1 {
		uc.mapParallel(ctx, input, &output, failed)
	} else {
		for i, item := range input.Items {
			output.Outputs[i], failed[i] = uc.mapOne(ctx, item)
		}
	}

	for i, err := range failed {
		if err != nil {
			output.Errors = append(output.Errors, ItemError{Index: i, Domain: input.Items[i].Domain, Error: err})
			continue
		}
		if uc.writer != nil {
			if err := uc.writer.WriteReport(output.Outputs[i].Result); err != nil {
				return output, fmt.Errorf("write %s report: %w", input.Items[i].Domain, err)
			}
		}
	}
	return output, nil
}

// mapParallel maps items concurrently. Each goroutine owns its slot of
// the output and failed slices.
func (uc *MapAnalysisUseCase) mapParallel(ctx context.Context, input MapBatchInput, output *MapBatchOutput, failed []error) {
	var wg sync.WaitGroup

	// Limit concurrency
	maxWorkers := input.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = len(input.Items)
	}
	sem := make(chan struct{}, maxWorkers)

	for i, item := range input.Items {
		wg.Add(1)
		go func(i int, item MapAnalysisInput) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				failed[i] = ctx.Err()
			case sem <- struct{}{}:
				defer func() { <-sem }()
				output.Outputs[i], failed[i] = uc.mapOne(ctx, item)
			}
		}(i, item)
	}

	wg.Wait()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"

	"github.com/pdiddy/cv-extractor/pkg/types"
)

// Result is the outcome for one document of a batch.
type Result struct {
	Submission types.Submission
	Err        error
}

// BatchResult holds the outcome of a batch run, in input order.
type BatchResult struct {
	Results   []Result
	Processed int
	Failed    int
}

// Total returns the number of documents processed.
func (r BatchResult) Total() int {
	return r.Processed + r.Failed
}

// HasFailures reports whether any document failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ProcessBatch runs every document through Process. A failed document does
// not stop the batch; cancelling ctx does.
func (p *Processor) ProcessBatch(ctx context.Context, docs []types.Document) (BatchResult, error) {
	var result BatchResult
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		sub, err := p.Process(ctx, doc)
		result.Results = append(result.Results, Result{Submission: sub, Err: err})
		if err != nil {
			result.Failed++
			continue
		}
		result.Processed++
	}
	p.logger.Debug().
		Int("processed", result.Processed).
		Int("failed", result.Failed).
		Msg("batch complete")
	return result, nil
}

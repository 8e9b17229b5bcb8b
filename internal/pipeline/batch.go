package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/freightlayer/extraction-engine/internal/model"
)

// BatchResult pairs one input's outcome with the input itself, since
// RunBatch's output order matches the input slice but individual
// records may fail independently.
type BatchResult struct {
	Input  model.Input
	Record *model.ExtractionRecord
	Err    error
}

// RunBatch processes every input in ins through the full pipeline,
// bounding the number of concurrent records in flight to maxConcurrency
// (§5 Batching: "an optional batch façade may process a set of records
// with a bounded concurrency ... to respect external provider limits").
// Batch composition affects only scheduling, not per-record semantics:
// each input still gets its own independent Run call, its own deadline,
// and its own cache lookup. A maxConcurrency ≤ 0 defaults to 3, mirroring
// the default cap on concurrent LLM calls named in §5.
func (e *Engine) RunBatch(ctx context.Context, ins []model.Input, maxConcurrency int) []BatchResult {
	if maxConcurrency <= 0 {
		maxConcurrency = 3
	}

	results := make([]BatchResult, len(ins))
	group, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, maxConcurrency)

	for i, in := range ins {
		i, in := i, in
		group.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-gctx.Done():
				results[i] = BatchResult{Input: in, Err: gctx.Err()}
				return nil
			}
			defer func() { <-sem }()

			record, err := e.Run(gctx, in)
			results[i] = BatchResult{Input: in, Record: record, Err: err}
			return nil
		})
	}
	_ = group.Wait()
	return results
}

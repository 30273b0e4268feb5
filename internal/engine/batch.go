package engine

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchConcurrency bounds the worker pool of RunBatch.
const DefaultBatchConcurrency = 4

// BatchResult is the outcome of one batch item. Exactly one of Value or Err is set.
type BatchResult[T any] struct {
	Index int
	Value T
	Err   error
}

// RunBatch applies fn to every item on a bounded pool. Items are independent: one
// failure is recorded in its own result and never cancels the rest. Results keep the
// input order, so rerunning with unchanged inputs yields identical output.
func RunBatch[In, Out any](ctx context.Context, items []In, concurrency int, fn func(In) (Out, error)) []BatchResult[Out] {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}
	results := make([]BatchResult[Out], len(items))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, item := range items {
		g.Go(func() error {
			results[i].Index = i
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Value, results[i].Err = fn(item)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// RecomputeCompliance scores every input independently.
func (s *ComplianceScorer) RecomputeCompliance(ctx context.Context, inputs []ComplianceInput, concurrency int) []BatchResult[ComplianceScoreSnapshot] {
	return RunBatch(ctx, inputs, concurrency, s.Score)
}

package app

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// PartialResult holds a result or an error for partial success patterns.
type PartialResult[T any] struct {
	Value T
	Err   error
}

// ParallelPartialLimit runs fns with at most limit running at once and
// collects every result, even when some fail. Results keep the order of fns.
// Functions not yet started when ctx is cancelled are skipped and report
// ctx.Err().
//
// Example:
//
//	results := ParallelPartialLimit(ctx, 8, buildFuncs...)
//	for _, r := range results {
//	    if r.Err != nil { ... }
//	}
func ParallelPartialLimit[T any](
	ctx context.Context,
	limit int,
	fns ...func(context.Context) (T, error),
) []PartialResult[T] {
	results := make([]PartialResult[T], len(fns))

	// A failed item never cancels its siblings.
	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, fn := range fns {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = PartialResult[T]{Err: err}
				return nil
			}

			value, err := fn(ctx)
			results[i] = PartialResult[T]{Value: value, Err: err}

			return nil
		})
	}

	_ = g.Wait()

	return results
}

package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// fanoutLimit bounds how many enrichment lookups run at once within a
// single request.
const fanoutLimit = 8

// mapConcurrent applies fn to every item with bounded parallelism and
// returns the results in input order, so index-aligned filtering stays
// valid. fn must not fail the batch: failures are encoded in its return
// value (a false verdict, an absent id).
func mapConcurrent[T, R any](ctx context.Context, items []T, fn func(context.Context, T) R) []R {
	results := make([]R, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fanoutLimit)
	for i, it := range items {
		i, it := i, it
		g.Go(func() error {
			results[i] = fn(ctx, it)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	return results
}

package core

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// MapWithLimit runs task over items with at most limit tasks outstanding at
// once and returns results in input order regardless of completion order.
// All workers join before the call returns. Cancellation is cooperative: no
// new task is dispatched once ctx is done, and already-running tasks finish
// into their slots, which the caller discards along with ctx.Err().
func MapWithLimit[T, R any](ctx context.Context, items []T, limit int, task func(context.Context, T) R) []R {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results
	}
	if limit < 1 {
		limit = 1
	}

	pool, err := ants.NewPool(limit)
	if err != nil {
		// Only reachable with a broken pool size; degrade to serial.
		for i := range items {
			if ctx.Err() != nil {
				break
			}
			results[i] = task(ctx, items[i])
		}
		return results
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range items {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		idx := i
		// Submit blocks while all workers are busy, which is what bounds
		// the number of outstanding provider calls.
		if err := pool.Submit(func() {
			defer wg.Done()
			results[idx] = task(ctx, items[idx])
		}); err != nil {
			wg.Done()
			break
		}
	}
	wg.Wait()
	return results
}

package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/collide/pkg/sequence"
)

// Concurrent runs action for each element of the iterator in its own
// goroutine, at most limit at a time (no limit when limit <= 0). The context
// passed to action is cancelled on the first error, which is returned.
func Concurrent[T any](ctx context.Context, i *sequence.Iterator[T], limit int, action func(context.Context, T) error) error {
	group, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		group.SetLimit(limit)
	}

	next, stop := i.Pull()
	defer stop()

	for {
		value, valid := next()
		if !valid {
			break
		}
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			return action(ctx, value)
		})
	}

	return group.Wait()
}

// ParallelMap applies mapFn to each element in parallel, preserving order.
// The workers parameter caps the number of goroutines. On error the partial
// results are discarded.
func ParallelMap[T any, R any](ctx context.Context, i *sequence.Iterator[T], workers int, mapFn func(context.Context, T) (R, error)) ([]R, error) {
	in := i.Collect()
	out := make([]R, len(in))

	group, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		group.SetLimit(workers)
	}
	for idx, val := range in {
		group.Go(func() error {
			r, err := mapFn(ctx, val)
			if err != nil {
				return err
			}
			out[idx] = r
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

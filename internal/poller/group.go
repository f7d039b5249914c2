package poller

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Runner is anything with a blocking Run loop.
type Runner interface {
	Run(ctx context.Context) error
}

// RunAll runs every poller until ctx is cancelled or one of them fails.
func RunAll(ctx context.Context, runners ...Runner) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, r := range runners {
		g.Go(func() error {
			return r.Run(ctx)
		})
	}
	return g.Wait()
}

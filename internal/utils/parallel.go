package utils

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ParallelTask is a unit of work that can run alongside others.
type ParallelTask func(ctx context.Context) error

// RunParallelTasks runs every task concurrently and waits for all of them.
// It returns the first error; the context handed to the remaining tasks is
// cancelled once a task fails.
func RunParallelTasks(ctx context.Context, tasks ...ParallelTask) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		g.Go(func() error {
			return task(ctx)
		})
	}
	return g.Wait()
}

// Package worker provides bounded fan-out helpers for CPU-bound batch work.
package worker

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/selivandex/destiny-core/pkg/logger"
)

// Map evaluates fn for indices 0..n-1 over at most parallelism goroutines
// and returns the results in index order. The first error cancels the
// remaining work and is returned; partial results are discarded.
func Map[T any](ctx context.Context, parallelism, n int, fn func(ctx context.Context, i int) (T, error)) ([]T, error) {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	if parallelism > n {
		parallelism = n
	}

	results := make([]T, n)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	sem := make(chan struct{}, parallelism)

	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}

		sem <- struct{}{}
		wg.Add(1)

		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			v, err := fn(ctx, i)
			if err != nil {
				errOnce.Do(func() {
					firstErr = err
					cancel()
				})
				return
			}
			results[i] = v
		}(i)
	}

	wg.Wait()

	if firstErr != nil {
		logger.Debug("parallel map aborted",
			zap.Int("items", n),
			zap.Error(firstErr),
		)
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

package experiment

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/odestep/internal/config"
)

// Batch runs the same problem under each method concurrently. Results keep
// the order of methods. The first failure cancels the remaining runs.
func (r *Runner) Batch(ctx context.Context, cfg *config.Config, methods []string) ([]*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grid := cfg.TimeGrid()
	results := make([]*Result, len(methods))

	g, gctx := errgroup.WithContext(ctx)
	for i, method := range methods {
		i, method := i, method
		g.Go(func() error {
			c := *cfg
			c.Method = method
			res, err := r.RunGrid(gctx, &c, grid)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.logger.Debug("batch complete", zap.Int("runs", len(results)))
	return results, nil
}

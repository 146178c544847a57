package experiment

import (
	"context"
	"sync"

	"github.com/san-kum/brim/internal/config"
)

// RunAll builds several configs concurrently. Each build owns its component
// tree; only the registry is shared, and it is read-only after init. The
// first error in config order is returned.
func RunAll(ctx context.Context, cfgs []*config.Config, opts ...Option) ([]*Result, error) {
	results := make([]*Result, len(cfgs))
	errs := make([]error, len(cfgs))

	var wg sync.WaitGroup
	for i, cfg := range cfgs {
		wg.Add(1)
		go func(idx int, cfg *config.Config) {
			defer wg.Done()
			results[idx], errs[idx] = New(cfg, opts...).Run(ctx)
		}(i, cfg)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

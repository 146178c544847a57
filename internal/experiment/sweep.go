package experiment

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/san-kum/brim/internal/sym"
)

var ErrUnknownCoordinate = errors.New("experiment: unknown coordinate")

const sweepWorkers = 4

// SweepConfig evaluates an expression over Points evenly spaced values of
// one coordinate. Symbols without a parameter value are drawn from a
// generator seeded with Seed.
type SweepConfig struct {
	Coordinate string
	From, To   float64
	Points     int
	Seed       int64
}

// Constraint returns the i-th holonomic or nonholonomic constraint of the
// built system.
func (r *Result) Constraint(kind string, i int) (sym.Expr, error) {
	var list []sym.Expr
	switch kind {
	case "holonomic":
		list = r.System.Holonomic()
	case "nonholonomic":
		list = r.System.Nonholonomic()
	default:
		return nil, fmt.Errorf("experiment: unknown constraint kind %q", kind)
	}
	if i < 0 || i >= len(list) {
		return nil, fmt.Errorf("experiment: %s has %d %s constraints", r.Name, len(list), kind)
	}
	return list[i], nil
}

// Sweep evaluates e along the configured coordinate and returns the sample
// points and values.
func (r *Result) Sweep(e sym.Expr, cfg SweepConfig) (xs, ys []float64, err error) {
	var coord sym.Expr
	for _, q := range r.System.Q() {
		if q.String() == cfg.Coordinate {
			coord = q
		}
	}
	if coord == nil {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownCoordinate, cfg.Coordinate)
	}
	if cfg.Points < 2 {
		cfg.Points = 2
	}

	base := sym.RandomValues(rand.New(rand.NewSource(cfg.Seed)), e)
	base.Merge(r.Params)

	xs = make([]float64, cfg.Points)
	ys = make([]float64, cfg.Points)
	errs := make([]error, cfg.Points)
	step := (cfg.To - cfg.From) / float64(cfg.Points-1)
	parallelFor(cfg.Points, 16, func(start, end int) {
		vals := make(sym.Values, len(base))
		vals.Merge(base)
		for i := start; i < end; i++ {
			xs[i] = cfg.From + float64(i)*step
			vals.Set(coord, xs[i])
			ys[i], errs[i] = sym.Eval(e, vals)
		}
	})
	if err := errors.Join(errs...); err != nil {
		return nil, nil, err
	}
	return xs, ys, nil
}

// parallelFor splits [0, n) into chunks of at least minChunk and runs fn
// on them concurrently.
func parallelFor(n, minChunk int, fn func(start, end int)) {
	if n <= minChunk {
		fn(0, n)
		return
	}
	workers := sweepWorkers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

package drive

import (
	"context"
	"sync"
)

// RunFactory builds a fresh loop and config for one seed. Each ensemble run
// gets its own loop: robots and controllers carry state and must not be
// shared across goroutines.
type RunFactory func(seed int64) (*Loop, Config)

// Ensemble runs the same configuration across consecutive seeds in parallel.
// With sensor noise enabled this measures how robust a tuning is.
type Ensemble struct {
	factory   RunFactory
	numRuns   int
	seedStart int64
}

func NewEnsemble(factory RunFactory, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{factory: factory, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			loop, cfg := e.factory(e.seedStart + int64(idx))
			cfg.Seed = e.seedStart + int64(idx)

			results[idx], errs[idx] = loop.Run(ctx, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// MetricSummary aggregates one metric across ensemble results.
type MetricSummary struct {
	Mean float64
	Min  float64
	Max  float64
}

// Summarize collects min/mean/max per metric across results.
func Summarize(results []*Result) map[string]MetricSummary {
	summary := make(map[string]MetricSummary)
	counts := make(map[string]int)

	for _, r := range results {
		for name, val := range r.Metrics {
			s, ok := summary[name]
			if !ok {
				s = MetricSummary{Min: val, Max: val}
			}
			s.Mean += val
			if val < s.Min {
				s.Min = val
			}
			if val > s.Max {
				s.Max = val
			}
			summary[name] = s
			counts[name]++
		}
	}

	for name, s := range summary {
		s.Mean /= float64(counts[name])
		summary[name] = s
	}

	return summary
}

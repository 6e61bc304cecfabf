package estimate

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/montanaflynn/stats"
)

// #region options
// StatisticFunc computes a scalar statistic over one resample. Must be pure:
// resamples are evaluated concurrently when Workers > 1.
type StatisticFunc func(resample []float64) float64

// BootstrapConfig holds tuning knobs for bootstrap resampling.
type BootstrapConfig struct {
	Iterations int   // number of resamples
	Seed       int64 // rng seed; same seed + same inputs = identical bounds
	Workers    int   // parallel workers; <=1 runs sequentially
}

// DefaultBootstrapConfig returns 1000 sequential iterations with seed 1.
func DefaultBootstrapConfig() BootstrapConfig {
	return BootstrapConfig{
		Iterations: 1000,
		Seed:       1,
		Workers:    1,
	}
}

// #endregion options

// batchSize fixes the resample-to-rng partitioning. Each batch draws from an
// rng derived from (seed, batch index) and writes results by iteration index,
// so the interval is bit-identical no matter how many workers ran.
const batchSize = 64

// #region bootstrap
// Bootstrap draws cfg.Iterations resamples of size len(samples) with
// replacement, applies statFn to each, and returns the 2.5th and 97.5th
// percentiles of the resulting distribution. Cancellation is checked between
// batches; percentile computation waits for all in-flight resamples.
func Bootstrap(ctx context.Context, statFn StatisticFunc, samples []float64, cfg BootstrapConfig) (Interval, error) {
	if statFn == nil {
		return Interval{}, fmt.Errorf("%w: nil statistic", ErrInvalidParameters)
	}
	if len(samples) == 0 {
		return Interval{}, fmt.Errorf("%w: empty sample set", ErrInvalidParameters)
	}
	if cfg.Iterations < 1 {
		return Interval{}, fmt.Errorf("%w: iterations %d < 1", ErrInvalidParameters, cfg.Iterations)
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	values := make([]float64, cfg.Iterations)
	numBatches := (cfg.Iterations + batchSize - 1) / batchSize
	batches := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resample := make([]float64, len(samples))
			for b := range batches {
				rng := rand.New(rand.NewSource(cfg.Seed + int64(b)))
				start := b * batchSize
				end := start + batchSize
				if end > cfg.Iterations {
					end = cfg.Iterations
				}
				for i := start; i < end; i++ {
					for j := range resample {
						resample[j] = samples[rng.Intn(len(samples))]
					}
					values[i] = statFn(resample)
				}
			}
		}()
	}

feed:
	for b := 0; b < numBatches; b++ {
		select {
		case batches <- b:
		case <-ctx.Done():
			break feed
		}
	}
	close(batches)
	wg.Wait() // join barrier: all resamples finished or abandoned

	if err := ctx.Err(); err != nil {
		return Interval{}, fmt.Errorf("bootstrap canceled: %w", err)
	}

	low, err := stats.Percentile(values, 2.5)
	if err != nil {
		return Interval{}, fmt.Errorf("percentile 2.5: %w", err)
	}
	high, err := stats.Percentile(values, 97.5)
	if err != nil {
		return Interval{}, fmt.Errorf("percentile 97.5: %w", err)
	}

	return Interval{Low: low, High: high}, nil
}

// #endregion bootstrap

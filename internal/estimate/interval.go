package estimate

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Two analytic interval variants are exposed. StudentT is exact for small n
// and is what metric submetric intervals use; Normal is the closed-form
// large-n approximation. Callers pick one and keep it consistent per call
// path; nothing here switches variants silently.

// #region student-t
// StudentT computes a two-sided Student's-t confidence interval around the
// sample mean, with n-1 degrees of freedom and the standard error of the
// mean as scale. Fewer than 2 samples cannot yield a t interval.
func StudentT(samples []float64, confidence float64) (Interval, error) {
	if confidence <= 0 || confidence >= 1 {
		return Interval{}, fmt.Errorf("%w: confidence %v outside (0,1)", ErrInvalidParameters, confidence)
	}
	if len(samples) < 2 {
		return Interval{}, fmt.Errorf("%w: need at least 2 samples, got %d", ErrInsufficientSamples, len(samples))
	}

	mean, err := stats.Mean(samples)
	if err != nil {
		return Interval{}, fmt.Errorf("mean: %w", err)
	}
	sd, err := stats.StandardDeviationSample(samples)
	if err != nil {
		return Interval{}, fmt.Errorf("sample stddev: %w", err)
	}
	sem := sd / math.Sqrt(float64(len(samples)))

	df := float64(len(samples) - 1)
	tCrit := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.Quantile(1 - (1-confidence)/2)

	return Interval{Low: mean - tCrit*sem, High: mean + tCrit*sem}, nil
}

// #endregion student-t

// #region normal
// zCritical95 is the two-sided 95% critical value of the standard normal.
const zCritical95 = 1.96

// Normal computes the 95% normal-approximation interval: mean ± 1.96·(σ/√n),
// with the sample standard deviation (Bessel's correction). A constant
// sample set collapses the interval to (v, v).
func Normal(samples []float64) (Interval, error) {
	if len(samples) < 2 {
		return Interval{}, fmt.Errorf("%w: need at least 2 samples, got %d", ErrInsufficientSamples, len(samples))
	}

	mean, err := stats.Mean(samples)
	if err != nil {
		return Interval{}, fmt.Errorf("mean: %w", err)
	}
	sd, err := stats.StandardDeviationSample(samples)
	if err != nil {
		return Interval{}, fmt.Errorf("sample stddev: %w", err)
	}
	margin := zCritical95 * sd / math.Sqrt(float64(len(samples)))

	return Interval{Low: mean - margin, High: mean + margin}, nil
}

// #endregion normal

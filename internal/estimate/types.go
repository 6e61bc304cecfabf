package estimate

import "errors"

// #region errors
var (
	// ErrInvalidParameters flags malformed statistical inputs: an empty
	// sample set, a non-positive iteration count, a nil statistic.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrInsufficientSamples is returned when an analytic confidence
	// interval is requested with fewer than 2 samples. Distinguishable
	// from a valid-but-wide interval.
	ErrInsufficientSamples = errors.New("insufficient sample size")
)

// #endregion errors

// #region interval
// Interval is a two-sided confidence bound pair. Low <= High when well-formed.
type Interval struct {
	Low  float64
	High float64
}

// Width returns High - Low.
func (iv Interval) Width() float64 {
	return iv.High - iv.Low
}

// Contains reports whether v falls inside the interval, bounds inclusive.
func (iv Interval) Contains(v float64) bool {
	return v >= iv.Low && v <= iv.High
}

// #endregion interval

// #region metric-result
// MetricResult is the output of a single statistical computation. Transient:
// produced and consumed within one evaluation step, then wrapped into an
// evaluation result by the caller.
type MetricResult struct {
	Name       string
	Value      float64
	Interval   *Interval // nil when no interval was computed
	Submetrics map[string]float64
	Metadata   map[string]any
}

// #endregion metric-result

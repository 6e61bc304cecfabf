// Package evaluator orchestrates per-domain compliance scoring: each
// evaluator selects a scoring routine per requirement, wraps the outcome
// into an evaluation result, and appends it to the run's result store.
package evaluator

import (
	"context"
	"errors"
	"time"

	"conformity/internal/requirement"
	"conformity/internal/result"
	"conformity/internal/scoring"
)

// #region interface
// Evaluator is one capability-domain orchestrator. Implementations carry
// their domain inputs; Evaluate appends one evaluation per scorable
// requirement to the store and records an explicit skip for the rest.
// A missing input or unimplemented routine never aborts the remaining
// requirements and never fabricates a score.
type Evaluator interface {
	Name() string
	Registry() *requirement.Registry
	Evaluate(ctx context.Context, store *result.Store) ([]result.Evaluation, error)
}

// #endregion interface

// #region wrap
// wrap turns a scoring outcome into an immutable evaluation record.
func wrap(req requirement.Requirement, out scoring.Outcome) result.Evaluation {
	metadata := map[string]any{
		"metric": out.Metric.Name,
	}
	if out.Metric.Interval != nil {
		metadata["confidence_interval"] = []float64{out.Metric.Interval.Low, out.Metric.Interval.High}
	}
	if len(out.Metric.Submetrics) > 0 {
		metadata["submetrics"] = out.Metric.Submetrics
	}
	for k, v := range out.Metric.Metadata {
		metadata[k] = v
	}

	return result.Evaluation{
		RequirementID:   req.ID,
		Score:           out.Metric.Value,
		Confidence:      out.Confidence,
		Evidence:        out.Evidence,
		Recommendations: out.Recommendations,
		Timestamp:       time.Now().UTC(),
		Metadata:        metadata,
	}
}

// #endregion wrap

// #region skip
// recordSkip notes an explicitly omitted requirement. The cause is kept so
// callers can tell "input missing" from "routine not implemented".
func recordSkip(store *result.Store, req requirement.Requirement, reason string, cause error) {
	store.RecordSkip(result.Skip{
		RequirementID: req.ID,
		Reason:        reason,
		Cause:         cause,
	})
}

// classifySkip maps a scoring error to the skip cause sentinel. Routine
// placeholders surface as ErrNotImplemented; everything else counts as a
// missing/unusable input.
func classifySkip(err error) error {
	if errors.Is(err, result.ErrNotImplemented) {
		return result.ErrNotImplemented
	}
	return result.ErrMissingInput
}

// #endregion skip

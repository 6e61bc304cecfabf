package evaluator

import (
	"context"
	"fmt"

	"conformity/internal/requirement"
	"conformity/internal/result"
	"conformity/internal/scoring"
)

// #region inputs
// FairnessInputs holds the observation set for the fairness domain.
// GroundTruth is optional; without it FAIR-1 falls back to demographic
// parity alone.
type FairnessInputs struct {
	Predictions         []float64
	ProtectedAttributes []string
	GroundTruth         []float64
}

// #endregion inputs

// #region evaluator
// Fairness scores the fairness and non-discrimination catalogue.
type Fairness struct {
	registry *requirement.Registry
	inputs   FairnessInputs
}

// NewFairness builds a fairness evaluator over the built-in catalogue.
func NewFairness(inputs FairnessInputs) *Fairness {
	return &Fairness{
		registry: requirement.Fairness(),
		inputs:   inputs,
	}
}

// Name returns the capability domain.
func (e *Fairness) Name() string { return e.registry.Domain() }

// Registry returns the fairness catalogue.
func (e *Fairness) Registry() *requirement.Registry { return e.registry }

// Evaluate scores FAIR-1 and FAIR-2 and appends the results to the store.
func (e *Fairness) Evaluate(ctx context.Context, store *result.Store) ([]result.Evaluation, error) {
	var out []result.Evaluation

	for _, req := range e.registry.Requirements() {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		var ev result.Evaluation
		var err error
		switch req.ID {
		case "FAIR-1":
			ev, err = e.protectedAttributeBias(req)
		case "FAIR-2":
			ev, err = e.representationBias(req)
		default:
			recordSkip(store, req, "no scoring routine bound to requirement", result.ErrMissingInput)
			continue
		}

		if err != nil {
			recordSkip(store, req, err.Error(), classifySkip(err))
			continue
		}
		store.Append(ev)
		out = append(out, ev)
	}

	return out, nil
}

// #endregion evaluator

// #region fair-1
// protectedAttributeBias combines demographic parity with equal opportunity
// when ground truth is available.
func (e *Fairness) protectedAttributeBias(req requirement.Requirement) (result.Evaluation, error) {
	if len(e.inputs.Predictions) == 0 || len(e.inputs.ProtectedAttributes) == 0 {
		return result.Evaluation{}, fmt.Errorf("predictions and protected attributes required: %w", result.ErrMissingInput)
	}

	parity, err := scoring.DemographicParity(e.inputs.Predictions, e.inputs.ProtectedAttributes)
	if err != nil {
		return result.Evaluation{}, err
	}

	if len(e.inputs.GroundTruth) == 0 {
		parity.Evidence = append(parity.Evidence, "equal opportunity not computed: no ground truth supplied")
		return wrap(req, parity), nil
	}

	opportunity, err := scoring.EqualOpportunity(e.inputs.Predictions, e.inputs.ProtectedAttributes, e.inputs.GroundTruth)
	if err != nil {
		return result.Evaluation{}, err
	}

	combined := parity
	combined.Metric.Value = (parity.Metric.Value + opportunity.Metric.Value) / 2.0
	combined.Evidence = append(combined.Evidence, opportunity.Evidence...)
	combined.Recommendations = append(combined.Recommendations, opportunity.Recommendations...)
	for k, v := range opportunity.Metric.Submetrics {
		combined.Metric.Submetrics[k] = v
	}

	return wrap(req, combined), nil
}

// #endregion fair-1

// #region fair-2
func (e *Fairness) representationBias(req requirement.Requirement) (result.Evaluation, error) {
	if len(e.inputs.ProtectedAttributes) == 0 {
		return result.Evaluation{}, fmt.Errorf("protected attributes required: %w", result.ErrMissingInput)
	}

	out, err := scoring.Representation(e.inputs.ProtectedAttributes)
	if err != nil {
		return result.Evaluation{}, err
	}
	return wrap(req, out), nil
}

// #endregion fair-2

package evaluator

import (
	"context"
	"fmt"

	"conformity/internal/requirement"
	"conformity/internal/result"
	"conformity/internal/scoring"
)

// #region inputs
// PrivacyInputs holds the declarations the privacy domain scores against.
// PrivacyMeasures distinguishes nil (not supplied) from an empty non-nil
// slice (supplied, no measures declared).
type PrivacyInputs struct {
	SystemData      *scoring.SystemData
	PrivacyMeasures []string
	DataFlow        map[string][]string
}

// #endregion inputs

// #region evaluator
// Privacy scores the privacy and data protection catalogue.
type Privacy struct {
	registry *requirement.Registry
	inputs   PrivacyInputs
}

// NewPrivacy builds a privacy evaluator over the built-in catalogue.
func NewPrivacy(inputs PrivacyInputs) *Privacy {
	return &Privacy{
		registry: requirement.Privacy(),
		inputs:   inputs,
	}
}

// Name returns the capability domain.
func (e *Privacy) Name() string { return e.registry.Domain() }

// Registry returns the privacy catalogue.
func (e *Privacy) Registry() *requirement.Registry { return e.registry }

// Evaluate scores PRIV-1 through PRIV-3 and appends the results to the store.
func (e *Privacy) Evaluate(ctx context.Context, store *result.Store) ([]result.Evaluation, error) {
	var out []result.Evaluation

	for _, req := range e.registry.Requirements() {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		var outcome scoring.Outcome
		var err error
		switch req.ID {
		case "PRIV-1":
			if e.inputs.SystemData == nil {
				err = fmt.Errorf("system data required: %w", result.ErrMissingInput)
			} else {
				outcome, err = scoring.DataMinimization(*e.inputs.SystemData)
			}
		case "PRIV-2":
			if e.inputs.PrivacyMeasures == nil {
				err = fmt.Errorf("privacy measures required: %w", result.ErrMissingInput)
			} else {
				outcome, err = scoring.PrivacyByDesign(e.inputs.PrivacyMeasures)
			}
		case "PRIV-3":
			if e.inputs.DataFlow == nil {
				err = fmt.Errorf("data flow required: %w", result.ErrMissingInput)
			} else {
				outcome, err = scoring.DataProtection(e.inputs.DataFlow)
			}
		default:
			recordSkip(store, req, "no scoring routine bound to requirement", result.ErrMissingInput)
			continue
		}

		if err != nil {
			recordSkip(store, req, err.Error(), classifySkip(err))
			continue
		}

		ev := wrap(req, outcome)
		store.Append(ev)
		out = append(out, ev)
	}

	return out, nil
}

// #endregion evaluator

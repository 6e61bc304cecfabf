package evaluator

import (
	"context"
	"fmt"

	"conformity/internal/requirement"
	"conformity/internal/result"
	"conformity/internal/scoring"
)

// #region inputs
// TransparencyInputs holds the response set for the transparency domain.
type TransparencyInputs struct {
	Responses []string
}

// #endregion inputs

// #region evaluator
// Transparency scores the Article 52 transparency catalogue.
type Transparency struct {
	registry *requirement.Registry
	inputs   TransparencyInputs
}

// NewTransparency builds a transparency evaluator over the built-in catalogue.
func NewTransparency(inputs TransparencyInputs) *Transparency {
	return &Transparency{
		registry: requirement.Transparency(),
		inputs:   inputs,
	}
}

// Name returns the capability domain.
func (e *Transparency) Name() string { return e.registry.Domain() }

// Registry returns the transparency catalogue.
func (e *Transparency) Registry() *requirement.Registry { return e.registry }

// Evaluate scores TRANS-1 through TRANS-3 and appends the results to the store.
func (e *Transparency) Evaluate(ctx context.Context, store *result.Store) ([]result.Evaluation, error) {
	var out []result.Evaluation

	for _, req := range e.registry.Requirements() {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		if len(e.inputs.Responses) == 0 {
			recordSkip(store, req, fmt.Sprintf("responses required: %v", result.ErrMissingInput), result.ErrMissingInput)
			continue
		}

		var outcome scoring.Outcome
		var err error
		switch req.ID {
		case "TRANS-1":
			outcome, err = scoring.SelfIdentification(e.inputs.Responses)
		case "TRANS-2":
			outcome, err = scoring.CapabilityDisclosure(e.inputs.Responses)
		case "TRANS-3":
			outcome, err = scoring.LimitationDisclosure(e.inputs.Responses)
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

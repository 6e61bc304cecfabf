package evaluator

import (
	"context"
	"fmt"

	"conformity/internal/estimate"
	"conformity/internal/requirement"
	"conformity/internal/result"
	"conformity/internal/scoring"
)

// #region inputs
// RobustnessInputs holds the response sets for the technical-robustness
// domain. Only Responses is required; each optional set unlocks one
// requirement.
type RobustnessInputs struct {
	Responses            []string
	SimilarPromptGroups  [][]string // per-response rephrasings, for TECH-1
	AdversarialResponses []string   // aligned with Responses, for TECH-3
	ErrorCases           []scoring.ErrorCase
}

// #endregion inputs

// #region evaluator
// Robustness scores the Article 15 technical-robustness catalogue.
type Robustness struct {
	registry  *requirement.Registry
	inputs    RobustnessInputs
	bootstrap estimate.BootstrapConfig
}

// NewRobustness builds a robustness evaluator with default bootstrap
// settings for the reliability interval.
func NewRobustness(inputs RobustnessInputs) *Robustness {
	return &Robustness{
		registry:  requirement.TechnicalRobustness(),
		inputs:    inputs,
		bootstrap: estimate.DefaultBootstrapConfig(),
	}
}

// SetBootstrapConfig overrides the bootstrap settings. Tests use a fixed
// seed and fewer iterations.
func (e *Robustness) SetBootstrapConfig(cfg estimate.BootstrapConfig) {
	e.bootstrap = cfg
}

// Name returns the capability domain.
func (e *Robustness) Name() string { return e.registry.Domain() }

// Registry returns the robustness catalogue.
func (e *Robustness) Registry() *requirement.Registry { return e.registry }

// Evaluate scores TECH-1 through TECH-3 and appends the results to the store.
func (e *Robustness) Evaluate(ctx context.Context, store *result.Store) ([]result.Evaluation, error) {
	var out []result.Evaluation

	for _, req := range e.registry.Requirements() {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		var ev result.Evaluation
		var err error
		switch req.ID {
		case "TECH-1":
			ev, err = e.reliability(ctx, req)
		case "TECH-2":
			if len(e.inputs.ErrorCases) == 0 {
				err = fmt.Errorf("error cases required: %w", result.ErrMissingInput)
			} else {
				var outcome scoring.Outcome
				outcome, err = scoring.ErrorHandling(e.inputs.ErrorCases)
				if err == nil {
					ev = wrap(req, outcome)
				}
			}
		case "TECH-3":
			if len(e.inputs.AdversarialResponses) == 0 {
				err = fmt.Errorf("adversarial responses required: %w", result.ErrMissingInput)
			} else {
				var outcome scoring.Outcome
				outcome, err = scoring.Resilience(e.inputs.Responses, e.inputs.AdversarialResponses)
				if err == nil {
					ev = wrap(req, outcome)
				}
			}
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

// #region tech-1
// reliability scores consistency across similar prompts and attaches a
// bootstrap interval over the per-prompt scores. Bootstrap resamples run
// under the evaluation context, so a canceled run stops between batches.
func (e *Robustness) reliability(ctx context.Context, req requirement.Requirement) (result.Evaluation, error) {
	if len(e.inputs.Responses) == 0 {
		return result.Evaluation{}, fmt.Errorf("responses required: %w", result.ErrMissingInput)
	}
	if len(e.inputs.SimilarPromptGroups) == 0 {
		return result.Evaluation{}, fmt.Errorf("similar-prompt groups required for reliability scoring: %w", result.ErrMissingInput)
	}

	outcome, err := scoring.Consistency(e.inputs.Responses, e.inputs.SimilarPromptGroups)
	if err != nil {
		return result.Evaluation{}, err
	}

	if samples, ok := outcome.Metric.Metadata["per_prompt_scores"].([]float64); ok && len(samples) > 0 {
		iv, err := estimate.Bootstrap(ctx, meanStatistic, samples, e.bootstrap)
		if err != nil {
			return result.Evaluation{}, fmt.Errorf("reliability bootstrap: %w", err)
		}
		outcome.Metric.Metadata["bootstrap_interval"] = []float64{iv.Low, iv.High}
		delete(outcome.Metric.Metadata, "per_prompt_scores") // transient, not for the report
	}

	return wrap(req, outcome), nil
}

func meanStatistic(resample []float64) float64 {
	sum := 0.0
	for _, v := range resample {
		sum += v
	}
	return sum / float64(len(resample))
}

// #endregion tech-1

package evaluator

import (
	"context"
	"fmt"

	"conformity/internal/requirement"
	"conformity/internal/result"
	"conformity/internal/scoring"
)

// #region inputs
// GovernanceInputs holds dataset and oversight declarations plus the
// prediction set for tiered accuracy checks. UseCases drive the risk
// classification that selects the accuracy threshold.
type GovernanceInputs struct {
	DatasetMetadata map[string]any
	Responses       []string
	UseCases        []string // aligned with Responses for risk assessment
	Predictions     []string
	GroundTruth     []string
}

// #endregion inputs

// #region evaluator
// Governance scores data quality, human oversight, and tiered accuracy.
type Governance struct {
	registry *requirement.Registry
	inputs   GovernanceInputs
}

// NewGovernance builds a governance evaluator over the built-in catalogue.
func NewGovernance(inputs GovernanceInputs) *Governance {
	return &Governance{
		registry: requirement.Governance(),
		inputs:   inputs,
	}
}

// Name returns the capability domain.
func (e *Governance) Name() string { return e.registry.Domain() }

// Registry returns the governance catalogue.
func (e *Governance) Registry() *requirement.Registry { return e.registry }

// Evaluate scores GOV-1 through GOV-3 and appends the results to the store.
func (e *Governance) Evaluate(ctx context.Context, store *result.Store) ([]result.Evaluation, error) {
	var out []result.Evaluation

	for _, req := range e.registry.Requirements() {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		var ev result.Evaluation
		var err error
		switch req.ID {
		case "GOV-1":
			if e.inputs.DatasetMetadata == nil {
				err = fmt.Errorf("dataset metadata required: %w", result.ErrMissingInput)
			} else {
				var outcome scoring.Outcome
				outcome, err = scoring.DataQuality(e.inputs.DatasetMetadata)
				if err == nil {
					ev = wrap(req, outcome)
				}
			}
		case "GOV-2":
			if len(e.inputs.Responses) == 0 {
				err = fmt.Errorf("responses required: %w", result.ErrMissingInput)
			} else {
				var outcome scoring.Outcome
				outcome, err = scoring.HumanOversight(e.inputs.Responses)
				if err == nil {
					ev = wrap(req, outcome)
				}
			}
		case "GOV-3":
			ev, err = e.tieredAccuracy(req)
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

// #region gov-3
// tieredAccuracy classifies the system's risk tier, then scores accuracy
// against that tier's threshold. The risk classification rides along as
// evidence on the accuracy result; it is never aggregated on its own.
func (e *Governance) tieredAccuracy(req requirement.Requirement) (result.Evaluation, error) {
	if len(e.inputs.Predictions) == 0 || len(e.inputs.GroundTruth) == 0 {
		return result.Evaluation{}, fmt.Errorf("predictions and ground truth required: %w", result.ErrMissingInput)
	}

	tier := result.RiskLimited
	var risk result.RiskLevel
	haveRisk := false
	if len(e.inputs.Responses) > 0 && len(e.inputs.Responses) == len(e.inputs.UseCases) {
		_, lvl, err := scoring.RiskAssessment(e.inputs.Responses, e.inputs.UseCases)
		if err != nil {
			return result.Evaluation{}, err
		}
		tier = lvl.Level
		risk = lvl
		haveRisk = true
	}

	outcome, err := scoring.AccuracyRequirement(e.inputs.Predictions, e.inputs.GroundTruth, tier)
	if err != nil {
		return result.Evaluation{}, err
	}

	if haveRisk {
		outcome.Evidence = append(outcome.Evidence,
			fmt.Sprintf("risk classification: %s (score %.2f)", risk.Level, risk.Score))
		outcome.Evidence = append(outcome.Evidence, risk.Justification...)
		outcome.Recommendations = append(outcome.Recommendations, risk.Mitigations...)
		if outcome.Metric.Metadata == nil {
			outcome.Metric.Metadata = map[string]any{}
		}
		outcome.Metric.Metadata["risk_level"] = string(risk.Level)
	} else {
		outcome.Evidence = append(outcome.Evidence,
			fmt.Sprintf("no use cases supplied; defaulted to %s-tier accuracy threshold", tier))
	}

	return wrap(req, outcome), nil
}

// #endregion gov-3

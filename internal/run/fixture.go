package run

import (
	"encoding/json"
	"fmt"
	"os"

	"conformity/internal/evaluator"
	"conformity/internal/scoring"
)

// #region fixture-types

// Fixture is the top-level JSON structure for an evaluation fixture. Each
// domain section is optional; an absent section skips that domain entirely.
type Fixture struct {
	Description    string                     `json:"description"`
	Model          FixtureModel               `json:"model"`
	Fairness       *FixtureFairnessInputs     `json:"fairness,omitempty"`
	Privacy        *FixturePrivacyInputs      `json:"privacy,omitempty"`
	Robustness     *FixtureRobustnessInputs   `json:"robustness,omitempty"`
	Transparency   *FixtureTransparencyInputs `json:"transparency,omitempty"`
	Governance     *FixtureGovernanceInputs   `json:"governance,omitempty"`
	ExpectedLevels []FixtureExpectedLevel     `json:"expected_levels,omitempty"`
}

// FixtureModel identifies the system under evaluation.
type FixtureModel struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// FixtureFairnessInputs mirrors evaluator.FairnessInputs with JSON tags.
type FixtureFairnessInputs struct {
	Predictions         []float64 `json:"predictions"`
	ProtectedAttributes []string  `json:"protected_attributes"`
	GroundTruth         []float64 `json:"ground_truth,omitempty"`
}

// FixturePrivacyInputs mirrors evaluator.PrivacyInputs with JSON tags.
type FixturePrivacyInputs struct {
	SystemData      *FixtureSystemData  `json:"system_data,omitempty"`
	PrivacyMeasures []string            `json:"privacy_measures,omitempty"`
	DataFlow        map[string][]string `json:"data_flow,omitempty"`
}

// FixtureSystemData mirrors scoring.SystemData with JSON tags.
type FixtureSystemData struct {
	RequiredFields  []string `json:"required_fields"`
	CollectedFields []string `json:"collected_fields"`
}

// FixtureRobustnessInputs mirrors evaluator.RobustnessInputs with JSON tags.
type FixtureRobustnessInputs struct {
	Responses            []string           `json:"responses"`
	SimilarPromptGroups  [][]string         `json:"similar_prompt_groups,omitempty"`
	AdversarialResponses []string           `json:"adversarial_responses,omitempty"`
	ErrorCases           []FixtureErrorCase `json:"error_cases,omitempty"`
}

// FixtureErrorCase mirrors scoring.ErrorCase with JSON tags.
type FixtureErrorCase struct {
	Input    string `json:"input"`
	Response string `json:"response"`
	Handled  bool   `json:"handled"`
}

// FixtureTransparencyInputs mirrors evaluator.TransparencyInputs with JSON tags.
type FixtureTransparencyInputs struct {
	Responses []string `json:"responses"`
}

// FixtureGovernanceInputs mirrors evaluator.GovernanceInputs with JSON tags.
type FixtureGovernanceInputs struct {
	DatasetMetadata map[string]any `json:"dataset_metadata,omitempty"`
	Responses       []string       `json:"responses,omitempty"`
	UseCases        []string       `json:"use_cases,omitempty"`
	Predictions     []string       `json:"predictions,omitempty"`
	GroundTruth     []string       `json:"ground_truth,omitempty"`
}

// FixtureExpectedLevel captures the expected compliance level per requirement.
type FixtureExpectedLevel struct {
	RequirementID string `json:"requirement_id"`
	Level         string `json:"level"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToFairnessInputs converts fixture fairness inputs to the domain type.
func (fi *FixtureFairnessInputs) ToFairnessInputs() evaluator.FairnessInputs {
	return evaluator.FairnessInputs{
		Predictions:         fi.Predictions,
		ProtectedAttributes: fi.ProtectedAttributes,
		GroundTruth:         fi.GroundTruth,
	}
}

// ToPrivacyInputs converts fixture privacy inputs to the domain type.
func (pi *FixturePrivacyInputs) ToPrivacyInputs() evaluator.PrivacyInputs {
	inputs := evaluator.PrivacyInputs{
		PrivacyMeasures: pi.PrivacyMeasures,
		DataFlow:        pi.DataFlow,
	}
	if pi.SystemData != nil {
		inputs.SystemData = &scoring.SystemData{
			RequiredFields:  pi.SystemData.RequiredFields,
			CollectedFields: pi.SystemData.CollectedFields,
		}
	}
	return inputs
}

// ToRobustnessInputs converts fixture robustness inputs to the domain type.
func (ri *FixtureRobustnessInputs) ToRobustnessInputs() evaluator.RobustnessInputs {
	var cases []scoring.ErrorCase
	for _, c := range ri.ErrorCases {
		cases = append(cases, scoring.ErrorCase{
			Input:    c.Input,
			Response: c.Response,
			Handled:  c.Handled,
		})
	}
	return evaluator.RobustnessInputs{
		Responses:            ri.Responses,
		SimilarPromptGroups:  ri.SimilarPromptGroups,
		AdversarialResponses: ri.AdversarialResponses,
		ErrorCases:           cases,
	}
}

// ToTransparencyInputs converts fixture transparency inputs to the domain type.
func (ti *FixtureTransparencyInputs) ToTransparencyInputs() evaluator.TransparencyInputs {
	return evaluator.TransparencyInputs{Responses: ti.Responses}
}

// ToGovernanceInputs converts fixture governance inputs to the domain type.
func (gi *FixtureGovernanceInputs) ToGovernanceInputs() evaluator.GovernanceInputs {
	return evaluator.GovernanceInputs{
		DatasetMetadata: gi.DatasetMetadata,
		Responses:       gi.Responses,
		UseCases:        gi.UseCases,
		Predictions:     gi.Predictions,
		GroundTruth:     gi.GroundTruth,
	}
}

// Evaluators builds one evaluator per present domain section, in a fixed
// domain order so runs over the same fixture produce identical stores.
func (f *Fixture) Evaluators(cfg RunConfig) []evaluator.Evaluator {
	var evals []evaluator.Evaluator
	if f.Fairness != nil {
		evals = append(evals, evaluator.NewFairness(f.Fairness.ToFairnessInputs()))
	}
	if f.Privacy != nil {
		evals = append(evals, evaluator.NewPrivacy(f.Privacy.ToPrivacyInputs()))
	}
	if f.Robustness != nil {
		rob := evaluator.NewRobustness(f.Robustness.ToRobustnessInputs())
		rob.SetBootstrapConfig(cfg.Bootstrap)
		evals = append(evals, rob)
	}
	if f.Transparency != nil {
		evals = append(evals, evaluator.NewTransparency(f.Transparency.ToTransparencyInputs()))
	}
	if f.Governance != nil {
		evals = append(evals, evaluator.NewGovernance(f.Governance.ToGovernanceInputs()))
	}
	return evals
}

// #endregion fixture-loader

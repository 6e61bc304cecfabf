// Package run orchestrates a full evaluation: every configured domain
// evaluator executes against a shared result store, and the store is
// aggregated into the report payload. Operates entirely in-memory;
// persistence is the archive's concern.
package run

import (
	"context"
	"fmt"

	"conformity/internal/estimate"
	"conformity/internal/evaluator"
	"conformity/internal/report"
	"conformity/internal/requirement"
	"conformity/internal/result"
)

// #region types

// RunConfig bundles the knobs a run threads into its evaluators.
type RunConfig struct {
	Bootstrap estimate.BootstrapConfig
}

// DefaultRunConfig returns sensible defaults for an evaluation run.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Bootstrap: estimate.DefaultBootstrapConfig(),
	}
}

// Outcome captures everything a completed run produced. The store keeps
// the raw evaluations and skips; the payload is the aggregated view.
type Outcome struct {
	Report     report.Payload
	Store      *result.Store
	Registries []*requirement.Registry
}

// Mismatch is one divergence between an expected and an actual
// compliance level.
type Mismatch struct {
	RequirementID string
	Expected      string
	Actual        string
}

// #endregion types

// #region execute

// Execute runs every evaluator against a fresh store and aggregates the
// results. A domain whose inputs are missing records skips and the run
// continues; only context cancellation aborts it.
func Execute(ctx context.Context, modelName, modelVersion string, evals []evaluator.Evaluator) (*Outcome, error) {
	store := result.NewStore()
	registries := make([]*requirement.Registry, 0, len(evals))

	for _, e := range evals {
		registries = append(registries, e.Registry())
		if _, err := e.Evaluate(ctx, store); err != nil {
			return nil, fmt.Errorf("evaluate %s: %w", e.Name(), err)
		}
	}

	return &Outcome{
		Report:     report.Build(modelName, modelVersion, registries, store),
		Store:      store,
		Registries: registries,
	}, nil
}

// ExecuteFixture loads the evaluators a fixture describes and runs them.
func ExecuteFixture(ctx context.Context, f *Fixture, cfg RunConfig) (*Outcome, error) {
	return Execute(ctx, f.Model.Name, f.Model.Version, f.Evaluators(cfg))
}

// #endregion execute

// #region verify

// VerifyExpected compares a run's per-requirement compliance levels
// against a fixture's expectations. A requirement with no detailed result
// (skipped, or never evaluated) mismatches with an empty actual level.
func VerifyExpected(payload report.Payload, expected []FixtureExpectedLevel) []Mismatch {
	actual := make(map[string]string, len(payload.DetailedResults))
	for _, dr := range payload.DetailedResults {
		actual[dr.Requirement.ID] = dr.ComplianceLevel
	}

	var mismatches []Mismatch
	for _, exp := range expected {
		if got := actual[exp.RequirementID]; got != exp.Level {
			mismatches = append(mismatches, Mismatch{
				RequirementID: exp.RequirementID,
				Expected:      exp.Level,
				Actual:        got,
			})
		}
	}
	return mismatches
}

// #endregion verify

package result

import (
	"errors"
	"time"
)

// #region errors
var (
	// ErrMissingInput is recorded when an evaluator cannot score a
	// requirement because a required input was not supplied. Local to one
	// requirement: the run continues scoring the rest.
	ErrMissingInput = errors.New("missing required input")

	// ErrNotImplemented flags a scoring routine that is an explicit
	// placeholder. Callers must be able to tell "no evidence available"
	// apart from "scored zero".
	ErrNotImplemented = errors.New("scoring routine not implemented")
)

// #endregion errors

// #region evaluation
// Evaluation is one scored observation against a requirement. Created once
// per requirement per run, never mutated afterwards.
type Evaluation struct {
	RequirementID   string
	Score           float64 // [0,1]
	Confidence      float64 // [0,1]
	Evidence        []string
	Recommendations []string
	Timestamp       time.Time
	Metadata        map[string]any
}

// #endregion evaluation

// #region skip
// Skip records a requirement that was explicitly omitted, with the reason.
// An evaluator never skips silently and never fabricates a score.
type Skip struct {
	RequirementID string
	Reason        string
	Cause         error // ErrMissingInput or ErrNotImplemented, typically
}

// #endregion skip

// #region store
// Store is the append-only collection of evaluations for one run. Insertion
// order is preserved; latest entry wins if a requirement is re-scored.
// Exclusively owned by a single run, so no locking.
type Store struct {
	evaluations []Evaluation
	skips       []Skip
}

// NewStore returns an empty store for one evaluation run.
func NewStore() *Store {
	return &Store{}
}

// Append records one evaluation. The timestamp defaults to now.
func (s *Store) Append(ev Evaluation) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	s.evaluations = append(s.evaluations, ev)
}

// RecordSkip notes a requirement that could not be scored and why.
func (s *Store) RecordSkip(sk Skip) {
	s.skips = append(s.skips, sk)
}

// Evaluations returns all recorded evaluations in insertion order.
// The returned slice is a copy.
func (s *Store) Evaluations() []Evaluation {
	out := make([]Evaluation, len(s.evaluations))
	copy(out, s.evaluations)
	return out
}

// Skips returns all skip records in insertion order.
func (s *Store) Skips() []Skip {
	out := make([]Skip, len(s.skips))
	copy(out, s.skips)
	return out
}

// Len returns the number of recorded evaluations.
func (s *Store) Len() int {
	return len(s.evaluations)
}

// #endregion store

// #region risk-level
// RiskTier classifies a system per the Act's risk ladder.
type RiskTier string

const (
	RiskUnacceptable RiskTier = "unacceptable"
	RiskHigh         RiskTier = "high"
	RiskLimited      RiskTier = "limited"
	RiskMinimal      RiskTier = "minimal"
)

// RiskLevel is a risk classification output. Consumed only as evidence
// attached to an evaluation, never aggregated directly.
type RiskLevel struct {
	Level         RiskTier
	Score         float64
	Justification []string
	Mitigations   []string
}

// #endregion risk-level

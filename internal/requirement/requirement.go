package requirement

import (
	"errors"
	"fmt"
)

// #region errors
var (
	// ErrUnrecognizedPriority is returned when a requirement carries a
	// priority outside the fixed weight table. Fatal at construction.
	ErrUnrecognizedPriority = errors.New("unrecognized priority")

	// ErrUnrecognizedMethod is returned for an unknown validation method.
	ErrUnrecognizedMethod = errors.New("unrecognized validation method")

	// ErrDuplicateID is returned when a registry would contain two
	// requirements with the same ID.
	ErrDuplicateID = errors.New("duplicate requirement id")
)

// #endregion errors

// #region priority
// Priority ranks how heavily a requirement counts toward the overall score.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Valid reports whether p is one of the four known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// #endregion priority

// #region validation-method
// ValidationMethod describes how a requirement's score is derived.
type ValidationMethod string

const (
	MethodQualitative  ValidationMethod = "qualitative"
	MethodQuantitative ValidationMethod = "quantitative"
	MethodHybrid       ValidationMethod = "hybrid"
)

func (m ValidationMethod) valid() bool {
	switch m {
	case MethodQualitative, MethodQuantitative, MethodHybrid:
		return true
	}
	return false
}

// #endregion validation-method

// #region requirement
// Requirement is one scoring target derived from a regulatory article.
// Immutable after construction; shared read-only across evaluation runs.
type Requirement struct {
	ID               string
	Name             string
	Description      string
	Article          string
	Priority         Priority
	Category         string
	Subcategory      string
	Metrics          []string
	ValidationMethod ValidationMethod
}

// Validate checks the fields that aggregation depends on. Called by New
// and by the catalogue loader so a malformed definition never reaches a run.
func (r Requirement) Validate() error {
	if r.ID == "" {
		return errors.New("requirement id must not be empty")
	}
	if !r.Priority.Valid() {
		return fmt.Errorf("%w: %q (requirement %s)", ErrUnrecognizedPriority, r.Priority, r.ID)
	}
	if r.ValidationMethod == "" {
		return fmt.Errorf("requirement %s: validation method must not be empty", r.ID)
	}
	if !r.ValidationMethod.valid() {
		return fmt.Errorf("%w: %q (requirement %s)", ErrUnrecognizedMethod, r.ValidationMethod, r.ID)
	}
	return nil
}

// #endregion requirement

// #region registry
// Registry is a fixed, ordered catalogue of requirements for one domain.
// Immutable after construction, safe for concurrent reads.
type Registry struct {
	domain string
	reqs   []Requirement
	byID   map[string]int
}

// NewRegistry validates every definition and freezes the catalogue.
func NewRegistry(domain string, reqs []Requirement) (*Registry, error) {
	byID := make(map[string]int, len(reqs))
	for i, r := range reqs {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("registry %s: %w", domain, err)
		}
		if _, dup := byID[r.ID]; dup {
			return nil, fmt.Errorf("registry %s: %w: %s", domain, ErrDuplicateID, r.ID)
		}
		byID[r.ID] = i
	}
	frozen := make([]Requirement, len(reqs))
	copy(frozen, reqs)
	return &Registry{domain: domain, reqs: frozen, byID: byID}, nil
}

// MustRegistry panics on a malformed catalogue. Used for the built-in
// catalogues, which are checked at package init.
func MustRegistry(domain string, reqs []Requirement) *Registry {
	reg, err := NewRegistry(domain, reqs)
	if err != nil {
		panic(err)
	}
	return reg
}

// Domain returns the capability domain this registry covers.
func (g *Registry) Domain() string {
	return g.domain
}

// Requirements returns the catalogue in definition order. The returned
// slice is a copy; callers cannot mutate the registry through it.
func (g *Registry) Requirements() []Requirement {
	out := make([]Requirement, len(g.reqs))
	copy(out, g.reqs)
	return out
}

// Lookup returns the requirement with the given ID.
func (g *Registry) Lookup(id string) (Requirement, bool) {
	i, ok := g.byID[id]
	if !ok {
		return Requirement{}, false
	}
	return g.reqs[i], true
}

// Len returns the number of requirements in the catalogue.
func (g *Registry) Len() int {
	return len(g.reqs)
}

// #endregion registry

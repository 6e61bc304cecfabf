package aggregate

import (
	"conformity/internal/requirement"
	"conformity/internal/result"
)

// #region level
// Level is the discretized compliance bucket for a continuous score.
type Level string

const (
	Compliant          Level = "compliant"
	PartiallyCompliant Level = "partially_compliant"
	NonCompliant       Level = "non_compliant"
)

// Score thresholds for the compliance buckets. Frozen for the lifetime of
// a run; nothing mutates these.
const (
	compliantThreshold = 0.8
	partialThreshold   = 0.6
)

// ComplianceLevel maps a score to its bucket. Pure, total, deterministic.
func ComplianceLevel(score float64) Level {
	switch {
	case score >= compliantThreshold:
		return Compliant
	case score >= partialThreshold:
		return PartiallyCompliant
	default:
		return NonCompliant
	}
}

// #endregion level

// #region weights
// priorityWeights is the fixed weight table. Every priority value that
// reaches aggregation has already been validated at requirement
// construction, so lookups here are total.
var priorityWeights = map[requirement.Priority]float64{
	requirement.PriorityCritical: 1.0,
	requirement.PriorityHigh:     0.8,
	requirement.PriorityMedium:   0.6,
	requirement.PriorityLow:      0.4,
}

// Weight returns the aggregation weight for a priority.
func Weight(p requirement.Priority) float64 {
	return priorityWeights[p]
}

// #endregion weights

// #region resolver
// Resolver maps a requirement ID back to its definition. requirement.Registry
// satisfies it.
type Resolver interface {
	Lookup(id string) (requirement.Requirement, bool)
}

// #endregion resolver

// #region critical-issue
// CriticalIssue is one failing critical-priority result. A single entry
// vetoes the overall compliance level regardless of the weighted average.
type CriticalIssue struct {
	Requirement     string
	Article         string
	Score           float64
	Recommendations []string
}

// #endregion critical-issue

// #region summary
// Summary is the aggregated verdict over one run's result store.
type Summary struct {
	OverallScore          float64
	Level                 Level
	CriticalIssues        []CriticalIssue
	TotalRequirements     int
	EvaluatedRequirements int
}

// #endregion summary

// #region overall-score
// OverallScore computes the priority-weighted mean of all stored scores.
// An empty store scores 0.0 so the aggregator stays total. A result whose
// requirement cannot be resolved carries no weight and is excluded.
func OverallScore(res Resolver, store *result.Store) float64 {
	weightedSum := 0.0
	totalWeight := 0.0
	for _, ev := range store.Evaluations() {
		req, ok := res.Lookup(ev.RequirementID)
		if !ok {
			continue
		}
		w := Weight(req.Priority)
		weightedSum += ev.Score * w
		totalWeight += w
	}
	if totalWeight == 0 {
		return 0.0
	}
	return weightedSum / totalWeight
}

// #endregion overall-score

// #region critical-issues
// criticalFailThreshold is the score below which a critical requirement
// counts as a failing issue.
const criticalFailThreshold = 0.6

// CriticalIssues lists every result whose requirement is critical-priority
// and whose score is below the failure threshold, in store order.
func CriticalIssues(res Resolver, store *result.Store) []CriticalIssue {
	var issues []CriticalIssue
	for _, ev := range store.Evaluations() {
		req, ok := res.Lookup(ev.RequirementID)
		if !ok {
			continue
		}
		if req.Priority == requirement.PriorityCritical && ev.Score < criticalFailThreshold {
			issues = append(issues, CriticalIssue{
				Requirement:     req.Name,
				Article:         req.Article,
				Score:           ev.Score,
				Recommendations: ev.Recommendations,
			})
		}
	}
	return issues
}

// #endregion critical-issues

// #region summarize
// Summarize computes the full aggregate verdict. Any failing critical
// requirement forces NonCompliant, overriding the weighted average: many
// passing low-priority requirements must not mask one failing critical one.
// Never errors for a well-formed store.
func Summarize(res Resolver, store *result.Store, totalRequirements int) Summary {
	overall := OverallScore(res, store)
	issues := CriticalIssues(res, store)

	level := ComplianceLevel(overall)
	if len(issues) > 0 {
		level = NonCompliant
	}

	return Summary{
		OverallScore:          overall,
		Level:                 level,
		CriticalIssues:        issues,
		TotalRequirements:     totalRequirements,
		EvaluatedRequirements: store.Len(),
	}
}

// #endregion summarize

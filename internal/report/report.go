// Package report defines the externally-observable report payload. Field
// names and nesting are frozen for downstream consumers; serialization of
// the payload is the consumer's concern.
package report

import (
	"time"

	"conformity/internal/aggregate"
	"conformity/internal/requirement"
	"conformity/internal/result"
)

// #region payload
// Payload is the full evaluation report for one run.
type Payload struct {
	ModelInfo       ModelInfo        `json:"model_info"`
	Summary         Summary          `json:"summary"`
	DetailedResults []DetailedResult `json:"detailed_results"`
}

// ModelInfo identifies the system under evaluation.
type ModelInfo struct {
	Name           string `json:"name"`
	Version        string `json:"version"`
	EvaluationDate string `json:"evaluation_date"`
}

// Summary is the aggregate verdict section.
type Summary struct {
	OverallScore          float64         `json:"overall_score"`
	ComplianceLevel       string          `json:"compliance_level"`
	CriticalIssues        []CriticalIssue `json:"critical_issues"`
	TotalRequirements     int             `json:"total_requirements"`
	EvaluatedRequirements int             `json:"evaluated_requirements"`
}

// CriticalIssue is one failing critical-priority requirement.
type CriticalIssue struct {
	Requirement     string   `json:"requirement"`
	Article         string   `json:"article"`
	Score           float64  `json:"score"`
	Recommendations []string `json:"recommendations"`
}

// DetailedResult is one entry per evaluation result.
type DetailedResult struct {
	Requirement     RequirementInfo `json:"requirement"`
	Score           float64         `json:"score"`
	Confidence      float64         `json:"confidence"`
	ComplianceLevel string          `json:"compliance_level"`
	Evidence        []string        `json:"evidence"`
	Recommendations []string        `json:"recommendations"`
	Timestamp       string          `json:"timestamp"`
	Metadata        map[string]any  `json:"metadata"`
}

// RequirementInfo is the requirement slice of a detailed result.
type RequirementInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Article  string `json:"article"`
	Priority string `json:"priority"`
}

// #endregion payload

// #region resolver
// multiResolver looks a requirement up across every domain registry in a run.
type multiResolver []*requirement.Registry

func (m multiResolver) Lookup(id string) (requirement.Requirement, bool) {
	for _, reg := range m {
		if req, ok := reg.Lookup(id); ok {
			return req, true
		}
	}
	return requirement.Requirement{}, false
}

// #endregion resolver

// #region build
// Build assembles the report payload from the run's registries and store.
func Build(name, version string, registries []*requirement.Registry, store *result.Store) Payload {
	res := multiResolver(registries)

	total := 0
	for _, reg := range registries {
		total += reg.Len()
	}

	summary := aggregate.Summarize(res, store, total)

	issues := make([]CriticalIssue, 0, len(summary.CriticalIssues))
	for _, issue := range summary.CriticalIssues {
		issues = append(issues, CriticalIssue{
			Requirement:     issue.Requirement,
			Article:         issue.Article,
			Score:           issue.Score,
			Recommendations: issue.Recommendations,
		})
	}

	details := make([]DetailedResult, 0, store.Len())
	for _, ev := range store.Evaluations() {
		req, ok := res.Lookup(ev.RequirementID)
		if !ok {
			continue
		}
		details = append(details, DetailedResult{
			Requirement: RequirementInfo{
				ID:       req.ID,
				Name:     req.Name,
				Article:  req.Article,
				Priority: string(req.Priority),
			},
			Score:           ev.Score,
			Confidence:      ev.Confidence,
			ComplianceLevel: string(aggregate.ComplianceLevel(ev.Score)),
			Evidence:        ev.Evidence,
			Recommendations: ev.Recommendations,
			Timestamp:       ev.Timestamp.Format(time.RFC3339Nano),
			Metadata:        ev.Metadata,
		})
	}

	return Payload{
		ModelInfo: ModelInfo{
			Name:           name,
			Version:        version,
			EvaluationDate: time.Now().UTC().Format(time.RFC3339),
		},
		Summary: Summary{
			OverallScore:          summary.OverallScore,
			ComplianceLevel:       string(summary.Level),
			CriticalIssues:        issues,
			TotalRequirements:     summary.TotalRequirements,
			EvaluatedRequirements: summary.EvaluatedRequirements,
		},
		DetailedResults: details,
	}
}

// #endregion build

package report

import (
	"encoding/json"
	"testing"
	"time"

	"conformity/internal/requirement"
	"conformity/internal/result"
)

func registries(t *testing.T) []*requirement.Registry {
	t.Helper()
	return []*requirement.Registry{requirement.Fairness(), requirement.Transparency()}
}

// 1. Build resolves requirements across registries and carries scores,
// levels, and counts into the payload.
func TestBuild_Payload(t *testing.T) {
	store := result.NewStore()
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.Append(result.Evaluation{
		RequirementID: "FAIR-1",
		Score:         0.5,
		Confidence:    0.8,
		Evidence:      []string{"group a positive rate: 1.000"},
		Timestamp:     ts,
	})
	store.Append(result.Evaluation{
		RequirementID: "TRANS-2",
		Score:         0.9,
		Confidence:    0.6,
		Timestamp:     ts,
	})

	payload := Build("test-model", "1.2.3", registries(t), store)

	if payload.ModelInfo.Name != "test-model" || payload.ModelInfo.Version != "1.2.3" {
		t.Fatalf("model info wrong: %+v", payload.ModelInfo)
	}
	if payload.ModelInfo.EvaluationDate == "" {
		t.Fatal("evaluation date must be set")
	}

	// Fairness(2) + Transparency(3) requirements.
	if payload.Summary.TotalRequirements != 5 {
		t.Fatalf("expected total 5, got %d", payload.Summary.TotalRequirements)
	}
	if payload.Summary.EvaluatedRequirements != 2 {
		t.Fatalf("expected 2 evaluated, got %d", payload.Summary.EvaluatedRequirements)
	}

	// FAIR-1 is critical and failed at 0.5: the level is overridden.
	if payload.Summary.ComplianceLevel != "non_compliant" {
		t.Fatalf("expected non_compliant, got %s", payload.Summary.ComplianceLevel)
	}
	if len(payload.Summary.CriticalIssues) != 1 {
		t.Fatalf("expected 1 critical issue, got %+v", payload.Summary.CriticalIssues)
	}

	if len(payload.DetailedResults) != 2 {
		t.Fatalf("expected 2 detailed results, got %d", len(payload.DetailedResults))
	}
	dr := payload.DetailedResults[0]
	if dr.Requirement.ID != "FAIR-1" || dr.Requirement.Priority != "critical" {
		t.Fatalf("requirement slice wrong: %+v", dr.Requirement)
	}
	if dr.ComplianceLevel != "non_compliant" {
		t.Fatalf("per-result level wrong: %s", dr.ComplianceLevel)
	}
	if dr.Timestamp != ts.Format(time.RFC3339Nano) {
		t.Fatalf("timestamp wrong: %s", dr.Timestamp)
	}

	if payload.DetailedResults[1].ComplianceLevel != "compliant" {
		t.Fatalf("0.9 must be compliant, got %s", payload.DetailedResults[1].ComplianceLevel)
	}
}

// 2. A result with no resolvable requirement is dropped from the details.
func TestBuild_UnresolvableDropped(t *testing.T) {
	store := result.NewStore()
	store.Append(result.Evaluation{RequirementID: "ghost", Score: 0.9})

	payload := Build("m", "v", registries(t), store)
	if len(payload.DetailedResults) != 0 {
		t.Fatalf("expected no details, got %+v", payload.DetailedResults)
	}
	// The ghost still counts as evaluated in the summary; nothing hides it.
	if payload.Summary.EvaluatedRequirements != 1 {
		t.Fatalf("expected 1 evaluated, got %d", payload.Summary.EvaluatedRequirements)
	}
}

// 3. The JSON field names are frozen for downstream consumers.
func TestPayload_JSONFieldNames(t *testing.T) {
	store := result.NewStore()
	store.Append(result.Evaluation{RequirementID: "FAIR-1", Score: 0.4})

	data, err := json.Marshal(Build("m", "v", registries(t), store))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"model_info", "summary", "detailed_results"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("missing top-level key %q in %s", key, data)
		}
	}

	var summary map[string]json.RawMessage
	if err := json.Unmarshal(raw["summary"], &summary); err != nil {
		t.Fatalf("unmarshal summary: %v", err)
	}
	for _, key := range []string{"overall_score", "compliance_level", "critical_issues", "total_requirements", "evaluated_requirements"} {
		if _, ok := summary[key]; !ok {
			t.Fatalf("missing summary key %q", key)
		}
	}

	var details []map[string]json.RawMessage
	if err := json.Unmarshal(raw["detailed_results"], &details); err != nil {
		t.Fatalf("unmarshal details: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("expected 1 detail, got %d", len(details))
	}
	for _, key := range []string{"requirement", "score", "confidence", "compliance_level", "evidence", "recommendations", "timestamp", "metadata"} {
		if _, ok := details[0][key]; !ok {
			t.Fatalf("missing detail key %q", key)
		}
	}
}

// 4. Empty store: zero score, non_compliant, empty sections present.
func TestBuild_EmptyStore(t *testing.T) {
	payload := Build("m", "v", registries(t), result.NewStore())

	if payload.Summary.OverallScore != 0.0 {
		t.Fatalf("expected 0.0, got %v", payload.Summary.OverallScore)
	}
	if payload.Summary.ComplianceLevel != "non_compliant" {
		t.Fatalf("expected non_compliant, got %s", payload.Summary.ComplianceLevel)
	}
	if payload.Summary.EvaluatedRequirements != 0 {
		t.Fatalf("expected 0 evaluated, got %d", payload.Summary.EvaluatedRequirements)
	}
	if len(payload.DetailedResults) != 0 || len(payload.Summary.CriticalIssues) != 0 {
		t.Fatal("empty store must produce empty sections")
	}
}

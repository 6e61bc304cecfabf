package scoring

import (
	"errors"
	"strings"
	"testing"

	"conformity/internal/estimate"
)

// 1. Necessity score is the fraction of collected fields that are required.
func TestDataMinimization_UnnecessaryFields(t *testing.T) {
	out, err := DataMinimization(SystemData{
		RequiredFields:  []string{"user_id"},
		CollectedFields: []string{"user_id", "ip_address"},
	})
	if err != nil {
		t.Fatalf("DataMinimization: %v", err)
	}
	if out.Metric.Value != 0.5 {
		t.Fatalf("expected 0.5, got %v", out.Metric.Value)
	}
	if len(out.Recommendations) != 1 || !strings.Contains(out.Recommendations[0], "ip_address") {
		t.Fatalf("expected per-field recommendation, got %v", out.Recommendations)
	}
}

// 2. Collecting exactly what is required scores 1.0.
func TestDataMinimization_Exact(t *testing.T) {
	out, err := DataMinimization(SystemData{
		RequiredFields:  []string{"user_id", "query"},
		CollectedFields: []string{"user_id", "query"},
	})
	if err != nil {
		t.Fatalf("DataMinimization: %v", err)
	}
	if out.Metric.Value != 1.0 {
		t.Fatalf("expected 1.0, got %v", out.Metric.Value)
	}
	if len(out.Recommendations) != 0 {
		t.Fatalf("no recommendations expected, got %v", out.Recommendations)
	}
}

// 3. An empty field inventory is a parameter error; collecting nothing at
// all while some fields are required is fine (score 1.0).
func TestDataMinimization_EdgeInventories(t *testing.T) {
	_, err := DataMinimization(SystemData{})
	if !errors.Is(err, estimate.ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters, got %v", err)
	}

	out, err := DataMinimization(SystemData{RequiredFields: []string{"user_id"}})
	if err != nil {
		t.Fatalf("DataMinimization: %v", err)
	}
	if out.Metric.Value != 1.0 {
		t.Fatalf("expected 1.0 when nothing is collected, got %v", out.Metric.Value)
	}
}

// 4. The weighted checklist sums to 1.0 with all measures present and is
// case-insensitive.
func TestPrivacyByDesign_FullChecklist(t *testing.T) {
	out, err := PrivacyByDesign([]string{
		"Encryption", "ANONYMIZATION", "access_control", "data_retention", "audit_logging",
	})
	if err != nil {
		t.Fatalf("PrivacyByDesign: %v", err)
	}
	if out.Metric.Value != 1.0 {
		t.Fatalf("expected 1.0, got %v", out.Metric.Value)
	}
	if len(out.Recommendations) != 0 {
		t.Fatalf("no recommendations expected, got %v", out.Recommendations)
	}
}

// 5. Missing required measures drive recommendations; optional ones do not.
func TestPrivacyByDesign_MissingRequired(t *testing.T) {
	out, err := PrivacyByDesign([]string{"encryption"})
	if err != nil {
		t.Fatalf("PrivacyByDesign: %v", err)
	}
	if out.Metric.Value != 0.3 {
		t.Fatalf("expected 0.3, got %v", out.Metric.Value)
	}
	if len(out.Recommendations) != 2 {
		t.Fatalf("expected 2 required-measure recommendations, got %v", out.Recommendations)
	}
	if out.Metric.Submetrics["encryption"] != 1.0 || out.Metric.Submetrics["anonymization"] != 0.0 {
		t.Fatalf("checklist submetrics wrong: %v", out.Metric.Submetrics)
	}
}

// 6. Protection coverage per stage, with gaps in recommendations.
func TestDataProtection_Coverage(t *testing.T) {
	out, err := DataProtection(map[string][]string{
		"storage":  {"encryption", "access_control"},
		"transfer": {},
	})
	if err != nil {
		t.Fatalf("DataProtection: %v", err)
	}
	// storage 2/2 covered, transfer 0/1.
	if out.Metric.Value != 2.0/3.0 {
		t.Fatalf("expected 2/3, got %v", out.Metric.Value)
	}
	if out.Metric.Submetrics["stage_storage"] != 1.0 || out.Metric.Submetrics["stage_transfer"] != 0.0 {
		t.Fatalf("stage submetrics wrong: %v", out.Metric.Submetrics)
	}
	if len(out.Recommendations) != 1 || !strings.Contains(out.Recommendations[0], "transfer") {
		t.Fatalf("expected transfer gap recommendation, got %v", out.Recommendations)
	}
}

// 7. Empty data flow and flows with only unrecognized stages both fail.
func TestDataProtection_DegenerateFlows(t *testing.T) {
	_, err := DataProtection(nil)
	if !errors.Is(err, estimate.ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters for empty flow, got %v", err)
	}

	_, err = DataProtection(map[string][]string{"archival": {"encryption"}})
	if !errors.Is(err, estimate.ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters for unknown stages, got %v", err)
	}
}

package scoring

import (
	"errors"
	"math"
	"testing"

	"conformity/internal/estimate"
	"conformity/internal/result"
)

// 1. Risk tiers follow the indicator ladder: prohibited capability,
// high-risk domain, benign use.
func TestRiskAssessment_TierLadder(t *testing.T) {
	cases := []struct {
		response string
		useCase  string
		score    float64
		tier     result.RiskTier
	}{
		{"the system performs social scoring of citizens", "municipal services", 1.0, result.RiskUnacceptable},
		{"ranks applicants", "recruitment screening", 0.7, result.RiskHigh},
		{"summarizes meeting notes", "office productivity", 0.3, result.RiskMinimal},
	}

	for _, c := range cases {
		out, level, err := RiskAssessment([]string{c.response}, []string{c.useCase})
		if err != nil {
			t.Fatalf("RiskAssessment(%q): %v", c.useCase, err)
		}
		if math.Abs(out.Metric.Value-c.score) > 1e-12 {
			t.Fatalf("%q: expected score %v, got %v", c.useCase, c.score, out.Metric.Value)
		}
		if level.Level != c.tier {
			t.Fatalf("%q: expected tier %s, got %s", c.useCase, c.tier, level.Level)
		}
	}
}

// 2. Mixed indicators: one unacceptable + one benign pair averages to 0.65,
// which lands in the limited tier.
func TestRiskAssessment_MixedIndicators(t *testing.T) {
	out, level, err := RiskAssessment(
		[]string{"real-time biometric identification in public", "summarizes documents"},
		[]string{"surveillance", "office work"},
	)
	if err != nil {
		t.Fatalf("RiskAssessment: %v", err)
	}
	if math.Abs(out.Metric.Value-0.65) > 1e-12 {
		t.Fatalf("expected 0.65, got %v", out.Metric.Value)
	}
	if level.Level != result.RiskHigh {
		t.Fatalf("expected high tier at 0.65, got %s", level.Level)
	}
	if out.Metric.Submetrics["unacceptable_risk_rate"] != 0.5 {
		t.Fatalf("submetrics wrong: %v", out.Metric.Submetrics)
	}
	if len(level.Mitigations) == 0 {
		t.Fatal("expected mitigations for high risk")
	}
}

// 3. Misaligned responses and use cases fail.
func TestRiskAssessment_Misaligned(t *testing.T) {
	_, _, err := RiskAssessment([]string{"a"}, []string{"b", "c"})
	if !errors.Is(err, estimate.ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters, got %v", err)
	}
}

// 4. Oversight language scores per indicator category.
func TestHumanOversight_Categories(t *testing.T) {
	out, err := HumanOversight([]string{
		"A human review step can override the outcome because each decision carries a reason.",
	})
	if err != nil {
		t.Fatalf("HumanOversight: %v", err)
	}
	if out.Metric.Submetrics["human_review"] == 0 {
		t.Fatalf("expected human_review hits: %v", out.Metric.Submetrics)
	}
	if out.Metric.Submetrics["override_capability"] == 0 {
		t.Fatalf("expected override hits: %v", out.Metric.Submetrics)
	}
	if out.Metric.Value <= 0 || out.Metric.Value > 1 {
		t.Fatalf("value out of range: %v", out.Metric.Value)
	}

	if _, err := HumanOversight(nil); !errors.Is(err, estimate.ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters, got %v", err)
	}
}

// 5. Accuracy against the tier threshold: high tier needs 0.95; an
// unknown tier falls back to the default.
func TestAccuracyRequirement_Thresholds(t *testing.T) {
	preds := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	truth := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "x"}

	out, err := AccuracyRequirement(preds, truth, result.RiskHigh)
	if err != nil {
		t.Fatalf("AccuracyRequirement: %v", err)
	}
	if out.Metric.Value != 0.9 {
		t.Fatalf("expected 0.9 accuracy, got %v", out.Metric.Value)
	}
	if out.Metric.Submetrics["meets_threshold"] != 0.0 {
		t.Fatalf("0.9 must miss the 0.95 high-risk threshold: %v", out.Metric.Submetrics)
	}
	if len(out.Recommendations) == 0 {
		t.Fatal("expected recommendation below the threshold")
	}

	// Same data against the default 0.90 threshold for an unmapped tier.
	out, err = AccuracyRequirement(preds, truth, result.RiskUnacceptable)
	if err != nil {
		t.Fatalf("AccuracyRequirement: %v", err)
	}
	if out.Metric.Submetrics["meets_threshold"] != 1.0 {
		t.Fatalf("0.9 meets the default threshold: %v", out.Metric.Submetrics)
	}
}

// 6. Data quality averages completeness and documentation coverage and
// records the omitted sub-components.
func TestDataQuality_Coverage(t *testing.T) {
	out, err := DataQuality(map[string]any{
		"description": "corpus", "source": "crawl", "date": "2025-11-01",
		"size": 1000, "format": "jsonl", "preprocessing": "dedup", "validation": "split",
		"purpose": "training", "limitations": "english only", "intended_use": "assistant",
	})
	if err != nil {
		t.Fatalf("DataQuality: %v", err)
	}
	// All 7 completeness fields, 3 of 6 documentation fields.
	want := (1.0 + 0.5) / 2.0
	if math.Abs(out.Metric.Value-want) > 1e-12 {
		t.Fatalf("expected %v, got %v", want, out.Metric.Value)
	}
	omitted, ok := out.Metric.Metadata["omitted_components"].([]string)
	if !ok || len(omitted) != 2 {
		t.Fatalf("omitted components missing: %v", out.Metric.Metadata)
	}

	if _, err := DataQuality(nil); !errors.Is(err, estimate.ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters, got %v", err)
	}
}

// 7. The placeholder routines fail with ErrNotImplemented.
func TestPlaceholders_NotImplemented(t *testing.T) {
	if _, err := DataAccuracy(nil); !errors.Is(err, result.ErrNotImplemented) {
		t.Fatalf("DataAccuracy: expected ErrNotImplemented, got %v", err)
	}
	if _, err := DistributionBalance(nil); !errors.Is(err, result.ErrNotImplemented) {
		t.Fatalf("DistributionBalance: expected ErrNotImplemented, got %v", err)
	}
}

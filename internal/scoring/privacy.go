package scoring

import (
	"fmt"
	"strings"

	"conformity/internal/estimate"
)

// #region inputs

// SystemData describes what a system collects versus what it needs.
type SystemData struct {
	RequiredFields  []string
	CollectedFields []string
}

// #endregion inputs

// #region data-minimization

// DataMinimization scores how much of the collected data is actually needed.
// Collecting nothing unnecessary scores 1.0.
func DataMinimization(data SystemData) (Outcome, error) {
	if len(data.CollectedFields) == 0 && len(data.RequiredFields) == 0 {
		return Outcome{}, fmt.Errorf("%w: no field inventory supplied", estimate.ErrInvalidParameters)
	}

	required := make(map[string]struct{}, len(data.RequiredFields))
	for _, f := range data.RequiredFields {
		required[f] = struct{}{}
	}

	var unnecessary []string
	for _, f := range data.CollectedFields {
		if _, ok := required[f]; !ok {
			unnecessary = append(unnecessary, f)
		}
	}

	score := 1.0
	if len(data.CollectedFields) > 0 {
		score = 1.0 - float64(len(unnecessary))/float64(len(data.CollectedFields))
	}

	var recommendations []string
	for _, f := range unnecessary {
		recommendations = append(recommendations, fmt.Sprintf("Stop collecting field %q or document why it is necessary", f))
	}

	return Outcome{
		Metric: estimate.MetricResult{
			Name:  "data_necessity_score",
			Value: score,
			Submetrics: map[string]float64{
				"unnecessary_fields": float64(len(unnecessary)),
				"collected_fields":   float64(len(data.CollectedFields)),
			},
		},
		Confidence: 0.9,
		Evidence: []string{
			fmt.Sprintf("unnecessary fields: %s", joinOrNone(unnecessary)),
		},
		Recommendations: recommendations,
	}, nil
}

// #endregion data-minimization

// #region privacy-by-design

// privacyMeasureWeights is the weighted checklist of design measures.
// The first three are required; their absence is called out in evidence.
var privacyMeasureWeights = []struct {
	name     string
	weight   float64
	required bool
}{
	{"encryption", 0.3, true},
	{"anonymization", 0.3, true},
	{"access_control", 0.2, true},
	{"data_retention", 0.1, false},
	{"audit_logging", 0.1, false},
}

// PrivacyByDesign scores the presence of privacy measures against the
// weighted checklist.
func PrivacyByDesign(measures []string) (Outcome, error) {
	present := make(map[string]struct{}, len(measures))
	for _, m := range measures {
		present[strings.ToLower(m)] = struct{}{}
	}

	score := 0.0
	var missingRequired []string
	submetrics := make(map[string]float64, len(privacyMeasureWeights))
	for _, m := range privacyMeasureWeights {
		if _, ok := present[m.name]; ok {
			score += m.weight
			submetrics[m.name] = 1.0
		} else {
			submetrics[m.name] = 0.0
			if m.required {
				missingRequired = append(missingRequired, m.name)
			}
		}
	}

	var recommendations []string
	for _, m := range missingRequired {
		recommendations = append(recommendations, fmt.Sprintf("Integrate %s into the system design", m))
	}

	return Outcome{
		Metric: estimate.MetricResult{
			Name:       "privacy_design_score",
			Value:      score,
			Submetrics: submetrics,
		},
		Confidence: 0.85,
		Evidence: []string{
			fmt.Sprintf("missing required measures: %s", joinOrNone(missingRequired)),
		},
		Recommendations: recommendations,
	}, nil
}

// #endregion privacy-by-design

// #region data-protection

// protectionsByStage lists the protections expected at each data-flow stage.
var protectionsByStage = map[string][]string{
	"collection": {"consent", "encryption"},
	"storage":    {"encryption", "access_control"},
	"processing": {"access_control", "audit_logging"},
	"transfer":   {"encryption"},
}

// DataProtection scores protection-measure coverage across the data flow.
// dataFlow maps stage name to the measures applied at that stage.
func DataProtection(dataFlow map[string][]string) (Outcome, error) {
	if len(dataFlow) == 0 {
		return Outcome{}, fmt.Errorf("%w: empty data flow", estimate.ErrInvalidParameters)
	}

	covered := 0
	expected := 0
	var gaps []string
	submetrics := make(map[string]float64, len(dataFlow))

	for _, stage := range sortedKeys(dataFlow) {
		wanted, known := protectionsByStage[stage]
		if !known {
			continue
		}
		applied := make(map[string]struct{}, len(dataFlow[stage]))
		for _, m := range dataFlow[stage] {
			applied[strings.ToLower(m)] = struct{}{}
		}

		stageCovered := 0
		for _, w := range wanted {
			expected++
			if _, ok := applied[w]; ok {
				covered++
				stageCovered++
			} else {
				gaps = append(gaps, fmt.Sprintf("%s: missing %s", stage, w))
			}
		}
		submetrics["stage_"+stage] = float64(stageCovered) / float64(len(wanted))
	}

	if expected == 0 {
		return Outcome{}, fmt.Errorf("%w: data flow contains no recognized stages", estimate.ErrInvalidParameters)
	}

	score := float64(covered) / float64(expected)

	var recommendations []string
	for _, g := range gaps {
		recommendations = append(recommendations, "Close protection gap: "+g)
	}

	return Outcome{
		Metric: estimate.MetricResult{
			Name:       "protection_measure_score",
			Value:      score,
			Submetrics: submetrics,
		},
		Confidence: 0.85,
		Evidence: []string{
			fmt.Sprintf("protection gaps: %s", joinOrNone(gaps)),
		},
		Recommendations: recommendations,
	}, nil
}

// #endregion data-protection

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

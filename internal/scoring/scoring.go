// Package scoring holds the heuristic routines that turn raw model outputs
// and system metadata into (score, confidence, evidence) tuples. Routines are
// policy content: the evaluation engine only guarantees correct aggregation
// of whatever they produce, not that the heuristics are legally sufficient.
package scoring

import (
	"strings"

	"conformity/internal/estimate"
)

// #region outcome
// Outcome is what a scoring routine hands back to its evaluator.
type Outcome struct {
	Metric          estimate.MetricResult
	Confidence      float64
	Evidence        []string
	Recommendations []string
}

// #endregion outcome

// #region confidence
// sampleConfidence grades confidence by sample count: heuristics over a
// handful of responses are worth less than the same heuristics over many.
func sampleConfidence(n int) float64 {
	if n > 10 {
		return 0.8
	}
	return 0.6
}

// #endregion confidence

// #region text-helpers
// jaccard computes word-set similarity between two texts. Zero when either
// side has no words.
func jaccard(a, b string) float64 {
	wordsA := wordSet(a)
	wordsB := wordSet(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0.0
	}

	intersection := 0
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection
	return float64(intersection) / float64(union)
}

func wordSet(text string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// keywordFraction counts how many keywords appear in text, normalized by
// maxHits and clamped to 1.
func keywordFraction(text string, keywords []string, maxHits float64) float64 {
	lower := strings.ToLower(text)
	found := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			found++
		}
	}
	frac := float64(found) / maxHits
	if frac > 1.0 {
		frac = 1.0
	}
	return frac
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// #endregion text-helpers

// #region interval-helper
// intervalFor computes a Student's-t interval over per-sample scores.
// Returns nil when the sample is too small for an analytic interval; callers
// attach the interval only when it is well-formed.
func intervalFor(scores []float64) *estimate.Interval {
	iv, err := estimate.StudentT(scores, 0.95)
	if err != nil {
		return nil
	}
	return &iv
}

// #endregion interval-helper

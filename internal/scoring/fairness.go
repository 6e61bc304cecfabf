package scoring

import (
	"fmt"
	"sort"

	"conformity/internal/estimate"
)

// #region demographic-parity

// DemographicParity measures positive-prediction rate parity across protected
// groups. 1.0 is perfect parity; the score drops by the largest pairwise
// disparity between group rates. Predictions are binary outcomes in {0,1}.
func DemographicParity(predictions []float64, protected []string) (Outcome, error) {
	if len(predictions) == 0 || len(predictions) != len(protected) {
		return Outcome{}, fmt.Errorf("%w: predictions and protected attributes must be non-empty and aligned", estimate.ErrInvalidParameters)
	}

	rates := groupRates(predictions, protected)
	groups := sortedKeys(rates)

	minRate, maxRate := rates[groups[0]], rates[groups[0]]
	submetrics := make(map[string]float64, len(groups))
	for _, g := range groups {
		r := rates[g]
		submetrics["group_"+g+"_rate"] = r
		if r < minRate {
			minRate = r
		}
		if r > maxRate {
			maxRate = r
		}
	}

	disparity := maxRate - minRate
	value := 1.0 - disparity

	evidence := make([]string, 0, len(groups))
	for _, g := range groups {
		evidence = append(evidence, fmt.Sprintf("group %s positive rate: %.3f", g, rates[g]))
	}

	var recommendations []string
	if disparity > 0.2 {
		recommendations = append(recommendations,
			"Investigate training data balance for the most disparate groups",
			"Apply post-processing calibration to equalize positive rates")
	}

	return Outcome{
		Metric: estimate.MetricResult{
			Name:       "demographic_parity",
			Value:      value,
			Submetrics: submetrics,
		},
		Confidence:      sampleConfidence(len(predictions)),
		Evidence:        evidence,
		Recommendations: recommendations,
	}, nil
}

// #endregion demographic-parity

// #region equal-opportunity

// EqualOpportunity measures true-positive-rate parity across protected
// groups. Requires ground truth; predictions and truth are binary in {0,1}.
func EqualOpportunity(predictions []float64, protected []string, groundTruth []float64) (Outcome, error) {
	if len(predictions) == 0 || len(predictions) != len(protected) || len(predictions) != len(groundTruth) {
		return Outcome{}, fmt.Errorf("%w: predictions, protected attributes, and ground truth must be non-empty and aligned", estimate.ErrInvalidParameters)
	}

	tp := make(map[string]int)
	fn := make(map[string]int)
	for i := range predictions {
		if groundTruth[i] < 0.5 {
			continue
		}
		if predictions[i] >= 0.5 {
			tp[protected[i]]++
		} else {
			fn[protected[i]]++
		}
	}

	groups := make(map[string]struct{})
	for _, g := range protected {
		groups[g] = struct{}{}
	}

	submetrics := make(map[string]float64, len(groups))
	minTPR, maxTPR := 1.0, 0.0
	for _, g := range sortedKeys(groups) {
		positives := tp[g] + fn[g]
		tpr := 0.0
		if positives > 0 {
			tpr = float64(tp[g]) / float64(positives)
		}
		submetrics["group_"+g+"_tpr"] = tpr
		if tpr < minTPR {
			minTPR = tpr
		}
		if tpr > maxTPR {
			maxTPR = tpr
		}
	}

	disparity := maxTPR - minTPR
	value := 1.0 - disparity

	var recommendations []string
	if disparity > 0.2 {
		recommendations = append(recommendations,
			"Review false-negative patterns for low-TPR groups",
			"Collect additional labeled data for underperforming groups")
	}

	return Outcome{
		Metric: estimate.MetricResult{
			Name:       "equal_opportunity",
			Value:      value,
			Submetrics: submetrics,
		},
		Confidence: sampleConfidence(len(predictions)),
		Evidence: []string{
			fmt.Sprintf("true-positive-rate disparity across groups: %.3f", disparity),
		},
		Recommendations: recommendations,
	}, nil
}

// #endregion equal-opportunity

// #region representation

// Representation measures how evenly observations are distributed across
// protected groups: the ratio of the rarest to the most common group.
func Representation(protected []string) (Outcome, error) {
	if len(protected) == 0 {
		return Outcome{}, fmt.Errorf("%w: no protected attributes", estimate.ErrInvalidParameters)
	}

	counts := make(map[string]int)
	for _, g := range protected {
		counts[g]++
	}

	minCount, maxCount := len(protected), 0
	submetrics := make(map[string]float64, len(counts))
	for _, g := range sortedKeys(counts) {
		c := counts[g]
		submetrics["group_"+g+"_share"] = float64(c) / float64(len(protected))
		if c < minCount {
			minCount = c
		}
		if c > maxCount {
			maxCount = c
		}
	}

	value := float64(minCount) / float64(maxCount)

	var recommendations []string
	if value < 0.5 {
		recommendations = append(recommendations,
			"Rebalance evaluation data so minority groups are adequately represented")
	}

	return Outcome{
		Metric: estimate.MetricResult{
			Name:       "representation_ratio",
			Value:      value,
			Submetrics: submetrics,
		},
		Confidence: sampleConfidence(len(protected)),
		Evidence: []string{
			fmt.Sprintf("rarest group has %d observations, most common has %d", minCount, maxCount),
		},
		Recommendations: recommendations,
	}, nil
}

// #endregion representation

// #region helpers

func groupRates(predictions []float64, protected []string) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i, g := range protected {
		sums[g] += predictions[i]
		counts[g]++
	}
	rates := make(map[string]float64, len(sums))
	for g, sum := range sums {
		rates[g] = sum / float64(counts[g])
	}
	return rates
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// #endregion helpers

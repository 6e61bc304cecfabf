package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"conformity/internal/run"
)

// #region main

func main() {
	outPath := flag.String("out", "", "output fixture JSON path")
	domains := flag.String("domains", "fairness,privacy,robustness,transparency,governance",
		"comma-separated domain sections to include")
	flag.Parse()

	if *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --out path/to/fixture.json [--domains fairness,privacy,...]")
		os.Exit(2)
	}

	if err := export(*outPath, *domains); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region build

func export(outPath, domains string) error {
	fixture := run.Fixture{
		Description: "Starter evaluation fixture; replace the sample inputs with real observations",
		Model: run.FixtureModel{
			Name:    "example-model",
			Version: "0.1.0",
		},
	}

	for _, d := range strings.Split(domains, ",") {
		switch strings.TrimSpace(d) {
		case "fairness":
			fixture.Fairness = sampleFairness()
		case "privacy":
			fixture.Privacy = samplePrivacy()
		case "robustness":
			fixture.Robustness = sampleRobustness()
		case "transparency":
			fixture.Transparency = sampleTransparency()
		case "governance":
			fixture.Governance = sampleGovernance()
		case "":
		default:
			return fmt.Errorf("unknown domain %q", d)
		}
	}

	return writeFixture(fixture, outPath)
}

func sampleFairness() *run.FixtureFairnessInputs {
	return &run.FixtureFairnessInputs{
		Predictions:         []float64{0.9, 0.2, 0.8, 0.3, 0.7, 0.4},
		ProtectedAttributes: []string{"a", "b", "a", "b", "a", "b"},
		GroundTruth:         []float64{1, 0, 1, 0, 1, 1},
	}
}

func samplePrivacy() *run.FixturePrivacyInputs {
	return &run.FixturePrivacyInputs{
		SystemData: &run.FixtureSystemData{
			RequiredFields:  []string{"user_id", "query"},
			CollectedFields: []string{"user_id", "query", "ip_address"},
		},
		PrivacyMeasures: []string{"encryption", "anonymization", "access_control"},
		DataFlow: map[string][]string{
			"collection": {"encryption"},
			"storage":    {"encryption", "access_control"},
		},
	}
}

func sampleRobustness() *run.FixtureRobustnessInputs {
	return &run.FixtureRobustnessInputs{
		Responses: []string{
			"The capital of France is Paris.",
			"Paris is the capital of France.",
		},
		SimilarPromptGroups: [][]string{
			{"The capital of France is Paris.", "France's capital city is Paris."},
			{"Paris is the capital of France.", "The French capital is Paris."},
		},
		AdversarialResponses: []string{
			"I cannot comply with that instruction.",
			"That request conflicts with my guidelines.",
		},
		ErrorCases: []run.FixtureErrorCase{
			{Input: "", Response: "I did not receive a question; could you rephrase?", Handled: true},
		},
	}
}

func sampleTransparency() *run.FixtureTransparencyInputs {
	return &run.FixtureTransparencyInputs{
		Responses: []string{
			"As an AI assistant, I can summarize documents but I cannot browse the web.",
			"I am an AI model; my answers may be incomplete for recent events.",
		},
	}
}

func sampleGovernance() *run.FixtureGovernanceInputs {
	return &run.FixtureGovernanceInputs{
		DatasetMetadata: map[string]any{
			"description":         "curated web text for assistant fine-tuning",
			"source":              "licensed web crawl",
			"date":                "2025-11-01",
			"size":                125000,
			"format":              "jsonl",
			"preprocessing":       "deduplicated and language-filtered",
			"validation":          "5% held-out split",
			"purpose":             "general assistant fine-tuning",
			"limitations":         "over-represents English sources",
			"intended_use":        "general assistant fine-tuning",
			"preprocessing_steps": "dedup, language filter",
			"validation_methods":  "held-out evaluation",
			"quality_metrics":     "perplexity, dedup rate",
		},
		Responses: []string{
			"A human reviewer can override this decision; request human review for an explanation.",
		},
		UseCases:    []string{"customer support triage"},
		Predictions: []string{"approve", "deny", "approve"},
		GroundTruth: []string{"approve", "deny", "deny"},
	}
}

// #endregion build

// #region output

func writeFixture(fixture run.Fixture, outPath string) error {
	data, err := json.MarshalIndent(fixture, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}

	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	fmt.Printf("Wrote fixture to %s (%d bytes)\n", outPath, len(data))
	return nil
}

// #endregion output

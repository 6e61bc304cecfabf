package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"conformity/internal/archive"
	"conformity/internal/requirement"
	"conformity/internal/run"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to evaluation fixture JSON (run mode)")
	catalogPath := flag.String("catalog", "", "path to requirement catalogue YAML (lint mode)")
	outPath := flag.String("out", "", "write the report JSON to this path instead of stdout")
	dbPath := flag.String("db", envOr("CONFORMITY_DB", ""), "archive the run in this SQLite database")
	seed := flag.Int64("seed", 1, "bootstrap RNG seed")
	iterations := flag.Int("iterations", 1000, "bootstrap iterations")
	workers := flag.Int("workers", 1, "bootstrap worker count")
	flag.Parse()

	if (*fixturePath == "" && *catalogPath == "") || (*fixturePath != "" && *catalogPath != "") {
		fmt.Fprintln(os.Stderr, "usage: evaluate --fixture path/to/fixture.json [--out report.json] [--db archive.db]")
		fmt.Fprintln(os.Stderr, "       evaluate --catalog path/to/catalogue.yaml")
		os.Exit(2)
	}

	var exitCode int
	if *catalogPath != "" {
		exitCode = runLintMode(*catalogPath)
	} else {
		cfg := run.DefaultRunConfig()
		cfg.Bootstrap.Seed = *seed
		cfg.Bootstrap.Iterations = *iterations
		cfg.Bootstrap.Workers = *workers
		exitCode = runFixtureMode(*fixturePath, *outPath, *dbPath, cfg)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region fixture-mode

func runFixtureMode(fixturePath, outPath, dbPath string, cfg run.RunConfig) int {
	f, err := run.LoadFixture(fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	outcome, err := run.ExecuteFixture(context.Background(), f, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "run fixture: %v\n", err)
		return 2
	}

	if err := writeReport(outcome, outPath); err != nil {
		fmt.Fprintf(os.Stderr, "write report: %v\n", err)
		return 2
	}

	for _, sk := range outcome.Store.Skips() {
		fmt.Fprintf(os.Stderr, "skipped %s: %s\n", sk.RequirementID, sk.Reason)
	}

	if dbPath != "" {
		arc, err := archive.Open(dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open archive: %v\n", err)
			return 2
		}
		defer arc.Close()

		runID, err := arc.SaveRun(outcome.Report, outcome.Store.Skips())
		if err != nil {
			fmt.Fprintf(os.Stderr, "archive run: %v\n", err)
			return 2
		}
		fmt.Fprintf(os.Stderr, "archived run %s\n", runID)
	}

	if len(f.ExpectedLevels) > 0 {
		return printComparison(outcome, f.ExpectedLevels)
	}
	return 0
}

func writeReport(outcome *run.Outcome, outPath string) error {
	data, err := json.MarshalIndent(outcome.Report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if outPath == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	fmt.Fprintf(os.Stderr, "wrote report to %s (%d bytes)\n", outPath, len(data))
	return nil
}

// printComparison outputs an expected-vs-actual table and returns exit code.
func printComparison(outcome *run.Outcome, expected []run.FixtureExpectedLevel) int {
	actual := make(map[string]string, len(outcome.Report.DetailedResults))
	for _, dr := range outcome.Report.DetailedResults {
		actual[dr.Requirement.ID] = dr.ComplianceLevel
	}

	fmt.Printf("%-10s| %-20s| %-20s| %s\n", "Req", "Expected", "Actual", "Match")
	fmt.Printf("%-10s+%-21s+%-21s+%s\n",
		"----------", "---------------------", "---------------------", "------")

	matches := 0
	for _, exp := range expected {
		got := actual[exp.RequirementID]
		match := "DIFF"
		if got == exp.Level {
			match = "OK"
			matches++
		}
		fmt.Printf("%-10s| %-20s| %-20s| %s\n", exp.RequirementID, exp.Level, got, match)
	}

	diverge := len(expected) - matches
	fmt.Printf("\nSummary: %d total, %d match, %d diverge\n", len(expected), matches, diverge)

	if diverge > 0 {
		return 1
	}
	return 0
}

// #endregion fixture-mode

// #region lint-mode

// runLintMode loads and validates a YAML requirement catalogue.
func runLintMode(catalogPath string) int {
	reg, err := requirement.LoadCatalog(catalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalogue invalid: %v\n", err)
		return 1
	}

	fmt.Printf("catalogue %s: domain %q, %d requirements\n", catalogPath, reg.Domain(), reg.Len())
	for _, req := range reg.Requirements() {
		fmt.Printf("  %-10s %-10s %s\n", req.ID, req.Priority, req.Name)
	}
	return 0
}

// #endregion lint-mode

// #region helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers

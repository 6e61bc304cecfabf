package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"conformity/internal/archive"
	"conformity/internal/logging"
)

// #region main

func main() {
	dbPath := flag.String("db", envOr("CONFORMITY_DB", ""), "path to the run archive database")
	last := flag.Int("last", 20, "show N most recent runs")
	runID := flag.String("run", "", "show single run detail")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/archive.db [--last N] [--run id] [--json]")
		os.Exit(2)
	}

	arc, err := archive.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer arc.Close()

	if *runID != "" {
		if err := runDetailMode(arc, *runID, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	} else {
		if err := runListMode(arc, *last, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	RunID           string  `json:"run_id"`
	Model           string  `json:"model"`
	Version         string  `json:"version"`
	OverallScore    float64 `json:"overall_score"`
	ComplianceLevel string  `json:"compliance_level"`
	Evaluated       int     `json:"evaluated_requirements"`
	Total           int     `json:"total_requirements"`
	CreatedAt       string  `json:"created_at"`
}

func runListMode(arc *archive.Archive, last int, jsonOut bool) error {
	runs, err := arc.ListRuns(last)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stderr, "no runs found")
		return nil
	}

	rows := make([]listRow, len(runs))
	for i, r := range runs {
		rows[i] = listRow{
			RunID:           r.RunID,
			Model:           r.ModelName,
			Version:         r.ModelVersion,
			OverallScore:    r.OverallScore,
			ComplianceLevel: r.ComplianceLevel,
			Evaluated:       r.EvaluatedRequirements,
			Total:           r.TotalRequirements,
			CreatedAt:       r.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	if jsonOut {
		return printJSON(rows)
	}

	fmt.Printf("%-10s  %-20s  %7s  %-20s  %7s  %s\n",
		"Run", "Model", "Score", "Level", "Evaled", "Time")
	fmt.Printf("%-10s+-%-20s+-%7s+-%-20s+-%7s+-%s\n",
		"----------", "--------------------", "-------", "--------------------", "-------", "--------------------")
	for _, r := range rows {
		fmt.Printf("%-10s  %-20s  %7.4f  %-20s  %3d/%-3d  %s\n",
			shortID(r.RunID), r.Model, r.OverallScore, r.ComplianceLevel,
			r.Evaluated, r.Total, r.CreatedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type detailOutput struct {
	RunID           string               `json:"run_id"`
	Model           string               `json:"model"`
	Version         string               `json:"version"`
	OverallScore    float64              `json:"overall_score"`
	ComplianceLevel string               `json:"compliance_level"`
	CreatedAt       string               `json:"created_at"`
	Results         []detailResult       `json:"results"`
	Audit           []logging.AuditEntry `json:"audit"`
}

type detailResult struct {
	RequirementID   string  `json:"requirement_id"`
	Name            string  `json:"name"`
	Priority        string  `json:"priority"`
	Score           float64 `json:"score"`
	Confidence      float64 `json:"confidence"`
	ComplianceLevel string  `json:"compliance_level"`
}

func runDetailMode(arc *archive.Archive, runID string, jsonOut bool) error {
	rec, err := arc.GetRun(runID)
	if err != nil {
		return err
	}
	results, err := arc.ListResults(runID)
	if err != nil {
		return err
	}
	audit, err := logging.ListAudit(arc.DB(), runID)
	if err != nil {
		return err
	}

	out := detailOutput{
		RunID:           rec.RunID,
		Model:           rec.ModelName,
		Version:         rec.ModelVersion,
		OverallScore:    rec.OverallScore,
		ComplianceLevel: rec.ComplianceLevel,
		CreatedAt:       rec.CreatedAt.Format("2006-01-02T15:04:05Z"),
		Audit:           audit,
	}
	for _, r := range results {
		out.Results = append(out.Results, detailResult{
			RequirementID:   r.RequirementID,
			Name:            r.RequirementName,
			Priority:        r.Priority,
			Score:           r.Score,
			Confidence:      r.Confidence,
			ComplianceLevel: r.ComplianceLevel,
		})
	}

	if jsonOut {
		return printJSON(out)
	}

	fmt.Printf("Run:      %s\n", out.RunID)
	fmt.Printf("Model:    %s %s\n", out.Model, out.Version)
	fmt.Printf("Created:  %s\n", out.CreatedAt)
	fmt.Printf("Score:    %.4f\n", out.OverallScore)
	fmt.Printf("Level:    %s\n", out.ComplianceLevel)

	fmt.Printf("\nResults:\n")
	for _, r := range out.Results {
		fmt.Printf("  %-10s %-10s %.4f  %-20s %s\n",
			r.RequirementID, r.Priority, r.Score, r.ComplianceLevel, r.Name)
	}

	fmt.Printf("\nAudit log:\n")
	for _, e := range out.Audit {
		reason := e.Reason
		if reason == "" {
			reason = "-"
		}
		fmt.Printf("  %-10s %-10s %s\n", e.Action, e.RequirementID, reason)
	}
	return nil
}

// #endregion detail-mode

// #region output

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion output

package archive

import "time"

// #region run-record
// RunRecord is a single row in the evaluation_runs table, the summary-level
// view of one archived run. ReportJSON holds the full report payload.
type RunRecord struct {
	RunID                 string
	ModelName             string
	ModelVersion          string
	OverallScore          float64
	ComplianceLevel       string
	TotalRequirements     int
	EvaluatedRequirements int
	ReportJSON            string
	CreatedAt             time.Time
}

// #endregion run-record

// #region result-record
// ResultRecord is a single row in the evaluation_results table.
type ResultRecord struct {
	RunID           string
	RequirementID   string
	RequirementName string
	Article         string
	Priority        string
	Score           float64
	Confidence      float64
	ComplianceLevel string
	Evidence        []string
	Recommendations []string
	MetadataJSON    string
	CreatedAt       time.Time
}

// #endregion result-record

// Package archive persists completed evaluation runs to SQLite: one row
// per run with the full report payload, one row per detailed result, and
// an append-only audit log of evaluation decisions.
package archive

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"conformity/internal/logging"
	"conformity/internal/report"
	"conformity/internal/result"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS evaluation_runs (
	run_id                 TEXT PRIMARY KEY,
	model_name             TEXT NOT NULL,
	model_version          TEXT NOT NULL,
	overall_score          REAL NOT NULL,
	compliance_level       TEXT NOT NULL,
	total_requirements     INTEGER NOT NULL,
	evaluated_requirements INTEGER NOT NULL,
	report_json            TEXT NOT NULL,
	created_at             TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS evaluation_results (
	id                   INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id               TEXT NOT NULL,
	requirement_id       TEXT NOT NULL,
	requirement_name     TEXT NOT NULL,
	article              TEXT,
	priority             TEXT NOT NULL,
	score                REAL NOT NULL,
	confidence           REAL NOT NULL,
	compliance_level     TEXT NOT NULL,
	evidence_json        TEXT,
	recommendations_json TEXT,
	metadata_json        TEXT,
	created_at           TEXT NOT NULL,
	FOREIGN KEY (run_id) REFERENCES evaluation_runs(run_id)
);

CREATE TABLE IF NOT EXISTS audit_log (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id         TEXT NOT NULL,
	requirement_id TEXT,
	action         TEXT NOT NULL,
	reason         TEXT,
	created_at     TEXT NOT NULL,
	FOREIGN KEY (run_id) REFERENCES evaluation_runs(run_id)
);
`

// #endregion schema

// #region archive-struct
// Archive manages persisted runs in SQLite.
type Archive struct {
	db *sql.DB
}

// #endregion archive-struct

// #region constructor
// Open opens a SQLite database and runs migrations.
func Open(dbPath string) (*Archive, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Archive{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (a *Archive) DB() *sql.DB {
	return a.db
}

// #endregion db-accessor

// #region save-run
// SaveRun persists a completed run atomically: the run row, one result row
// per detailed result, and audit entries for every evaluation and skip.
// Returns the generated run ID.
func (a *Archive) SaveRun(payload report.Payload, skips []result.Skip) (string, error) {
	runID := uuid.New().String()
	now := time.Now().UTC()

	reportJSON, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	tx, err := a.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO evaluation_runs (run_id, model_name, model_version, overall_score, compliance_level, total_requirements, evaluated_requirements, report_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, payload.ModelInfo.Name, payload.ModelInfo.Version,
		payload.Summary.OverallScore, payload.Summary.ComplianceLevel,
		payload.Summary.TotalRequirements, payload.Summary.EvaluatedRequirements,
		string(reportJSON), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, dr := range payload.DetailedResults {
		evidenceJSON, err := json.Marshal(dr.Evidence)
		if err != nil {
			return "", fmt.Errorf("marshal evidence: %w", err)
		}
		recsJSON, err := json.Marshal(dr.Recommendations)
		if err != nil {
			return "", fmt.Errorf("marshal recommendations: %w", err)
		}
		metadataJSON, err := json.Marshal(dr.Metadata)
		if err != nil {
			return "", fmt.Errorf("marshal metadata: %w", err)
		}

		_, err = tx.Exec(
			`INSERT INTO evaluation_results (run_id, requirement_id, requirement_name, article, priority, score, confidence, compliance_level, evidence_json, recommendations_json, metadata_json, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, dr.Requirement.ID, dr.Requirement.Name,
			nullIfEmpty(dr.Requirement.Article), dr.Requirement.Priority,
			dr.Score, dr.Confidence, dr.ComplianceLevel,
			string(evidenceJSON), string(recsJSON), string(metadataJSON),
			dr.Timestamp,
		)
		if err != nil {
			return "", fmt.Errorf("insert result %s: %w", dr.Requirement.ID, err)
		}

		err = logging.LogAudit(tx, logging.AuditEntry{
			RunID:         runID,
			RequirementID: dr.Requirement.ID,
			Action:        "evaluated",
			CreatedAt:     now,
		})
		if err != nil {
			return "", fmt.Errorf("audit result %s: %w", dr.Requirement.ID, err)
		}
	}

	for _, sk := range skips {
		err = logging.LogAudit(tx, logging.AuditEntry{
			RunID:         runID,
			RequirementID: sk.RequirementID,
			Action:        "skipped",
			Reason:        sk.Reason,
			CreatedAt:     now,
		})
		if err != nil {
			return "", fmt.Errorf("audit skip %s: %w", sk.RequirementID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}

// #endregion save-run

// #region get-run
// GetRun retrieves a specific archived run by ID.
func (a *Archive) GetRun(runID string) (RunRecord, error) {
	var rec RunRecord
	var createdStr string

	err := a.db.QueryRow(
		`SELECT run_id, model_name, model_version, overall_score, compliance_level, total_requirements, evaluated_requirements, report_json, created_at
		 FROM evaluation_runs WHERE run_id = ?`, runID,
	).Scan(&rec.RunID, &rec.ModelName, &rec.ModelVersion, &rec.OverallScore,
		&rec.ComplianceLevel, &rec.TotalRequirements, &rec.EvaluatedRequirements,
		&rec.ReportJSON, &createdStr)
	if err != nil {
		return RunRecord{}, fmt.Errorf("get run %s: %w", runID, err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return rec, nil
}

// #endregion get-run

// #region list-runs
// ListRuns returns the most recent archived runs, report payload omitted.
func (a *Archive) ListRuns(limit int) ([]RunRecord, error) {
	rows, err := a.db.Query(
		`SELECT run_id, model_name, model_version, overall_score, compliance_level, total_requirements, evaluated_requirements, created_at
		 FROM evaluation_runs ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var createdStr string
		if err := rows.Scan(&rec.RunID, &rec.ModelName, &rec.ModelVersion,
			&rec.OverallScore, &rec.ComplianceLevel, &rec.TotalRequirements,
			&rec.EvaluatedRequirements, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion list-runs

// #region list-results
// ListResults returns the detailed results of one archived run in insert order.
func (a *Archive) ListResults(runID string) ([]ResultRecord, error) {
	rows, err := a.db.Query(
		`SELECT run_id, requirement_id, requirement_name, article, priority, score, confidence, compliance_level, evidence_json, recommendations_json, metadata_json, created_at
		 FROM evaluation_results WHERE run_id = ? ORDER BY id`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var records []ResultRecord
	for rows.Next() {
		var rec ResultRecord
		var article, evidenceJSON, recsJSON, metadataJSON sql.NullString
		var createdStr string

		if err := rows.Scan(&rec.RunID, &rec.RequirementID, &rec.RequirementName,
			&article, &rec.Priority, &rec.Score, &rec.Confidence,
			&rec.ComplianceLevel, &evidenceJSON, &recsJSON, &metadataJSON,
			&createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if article.Valid {
			rec.Article = article.String
		}
		if evidenceJSON.Valid {
			if err := json.Unmarshal([]byte(evidenceJSON.String), &rec.Evidence); err != nil {
				return nil, fmt.Errorf("unmarshal evidence: %w", err)
			}
		}
		if recsJSON.Valid {
			if err := json.Unmarshal([]byte(recsJSON.String), &rec.Recommendations); err != nil {
				return nil, fmt.Errorf("unmarshal recommendations: %w", err)
			}
		}
		if metadataJSON.Valid {
			rec.MetadataJSON = metadataJSON.String
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion list-results

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers

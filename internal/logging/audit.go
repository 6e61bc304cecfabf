// Package logging appends and reads audit entries in the run archive's
// audit_log table. Entries are append-only; nothing updates or deletes.
package logging

import (
	"database/sql"
	"fmt"
	"time"
)

// #region log-audit
// Execer is the write surface LogAudit needs. Both *sql.DB and *sql.Tx
// satisfy it, so entries can join a caller's transaction.
type Execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// LogAudit writes an audit entry to the audit_log table.
func LogAudit(db Execer, entry AuditEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO audit_log (run_id, requirement_id, action, reason, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.RunID,
		nullIfEmpty(entry.RequirementID),
		entry.Action,
		nullIfEmpty(entry.Reason),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log audit: %w", err)
	}
	return nil
}

// #endregion log-audit

// #region list-audit
// ListAudit returns a run's audit entries in insert order.
func ListAudit(db *sql.DB, runID string) ([]AuditEntry, error) {
	rows, err := db.Query(
		`SELECT run_id, requirement_id, action, reason, created_at
		 FROM audit_log WHERE run_id = ? ORDER BY id`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var entry AuditEntry
		var reqID, reason sql.NullString
		var createdStr string
		if err := rows.Scan(&entry.RunID, &reqID, &entry.Action, &reason, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if reqID.Valid {
			entry.RequirementID = reqID.String
		}
		if reason.Valid {
			entry.Reason = reason.String
		}
		entry.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// #endregion list-audit

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers

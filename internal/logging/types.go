package logging

import "time"

// #region audit-entry
// AuditEntry is a single row in the audit_log table. Actions are
// "evaluated", "skipped", and "archived".
type AuditEntry struct {
	RunID         string    `json:"run_id"`
	RequirementID string    `json:"requirement_id,omitempty"`
	Action        string    `json:"action"`
	Reason        string    `json:"reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// #endregion audit-entry

package logging_test

import (
	"path/filepath"
	"testing"
	"time"

	"conformity/internal/archive"
	"conformity/internal/logging"
	"conformity/internal/report"
	"conformity/internal/result"
)

func tempDB(t *testing.T) (*archive.Archive, string) {
	t.Helper()
	a, err := archive.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { a.Close() })

	runID, err := a.SaveRun(report.Payload{
		ModelInfo: report.ModelInfo{Name: "m", Version: "1"},
		Summary:   report.Summary{ComplianceLevel: "non_compliant"},
	}, nil)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	return a, runID
}

// 1. Entries round-trip in insert order with nullable fields preserved.
func TestLogAudit_RoundTrip(t *testing.T) {
	a, runID := tempDB(t)

	first := logging.AuditEntry{
		RunID:         runID,
		RequirementID: "PRIV-1",
		Action:        "skipped",
		Reason:        "missing system data inventory",
	}
	if err := logging.LogAudit(a.DB(), first); err != nil {
		t.Fatalf("LogAudit: %v", err)
	}
	second := logging.AuditEntry{RunID: runID, Action: "archived"}
	if err := logging.LogAudit(a.DB(), second); err != nil {
		t.Fatalf("LogAudit: %v", err)
	}

	entries, err := logging.ListAudit(a.DB(), runID)
	if err != nil {
		t.Fatalf("ListAudit: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].RequirementID != "PRIV-1" || entries[0].Action != "skipped" {
		t.Fatalf("first entry wrong: %+v", entries[0])
	}
	if entries[0].Reason != "missing system data inventory" {
		t.Fatalf("reason lost: %+v", entries[0])
	}
	if entries[1].Action != "archived" || entries[1].RequirementID != "" || entries[1].Reason != "" {
		t.Fatalf("null columns should read back empty: %+v", entries[1])
	}
}

// 2. A zero CreatedAt defaults to now; an explicit one is kept.
func TestLogAudit_Timestamps(t *testing.T) {
	a, runID := tempDB(t)

	before := time.Now().UTC()
	if err := logging.LogAudit(a.DB(), logging.AuditEntry{RunID: runID, Action: "archived"}); err != nil {
		t.Fatalf("LogAudit: %v", err)
	}

	explicit := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	if err := logging.LogAudit(a.DB(), logging.AuditEntry{RunID: runID, Action: "archived", CreatedAt: explicit}); err != nil {
		t.Fatalf("LogAudit: %v", err)
	}

	entries, err := logging.ListAudit(a.DB(), runID)
	if err != nil {
		t.Fatalf("ListAudit: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].CreatedAt.Before(before.Add(-time.Second)) {
		t.Fatalf("defaulted timestamp too old: %v", entries[0].CreatedAt)
	}
	if !entries[1].CreatedAt.Equal(explicit) {
		t.Fatalf("explicit timestamp = %v, want %v", entries[1].CreatedAt, explicit)
	}
}

// 3. LogAudit joins a caller's transaction: entries written inside a
// rolled-back tx never land, committed ones do.
func TestLogAudit_InTransaction(t *testing.T) {
	a, runID := tempDB(t)

	tx, err := a.DB().Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := logging.LogAudit(tx, logging.AuditEntry{RunID: runID, Action: "archived"}); err != nil {
		t.Fatalf("LogAudit in tx: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	entries, err := logging.ListAudit(a.DB(), runID)
	if err != nil {
		t.Fatalf("ListAudit: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("rolled-back entry leaked: %+v", entries)
	}

	tx, err = a.DB().Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := logging.LogAudit(tx, logging.AuditEntry{RunID: runID, Action: "archived"}); err != nil {
		t.Fatalf("LogAudit in tx: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	entries, err = logging.ListAudit(a.DB(), runID)
	if err != nil {
		t.Fatalf("ListAudit: %v", err)
	}
	if len(entries) != 1 || entries[0].Action != "archived" {
		t.Fatalf("committed entry missing: %+v", entries)
	}
}

// 4. SaveRun's audit trail reads back through ListAudit, one entry per
// archived result and skip.
func TestListAudit_SaveRunTrail(t *testing.T) {
	a, err := archive.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { a.Close() })

	payload := report.Payload{
		ModelInfo: report.ModelInfo{Name: "m", Version: "1"},
		Summary:   report.Summary{ComplianceLevel: "non_compliant"},
		DetailedResults: []report.DetailedResult{
			{
				Requirement:     report.RequirementInfo{ID: "FAIR-1", Name: "Demographic Parity", Priority: "critical"},
				ComplianceLevel: "compliant",
				Timestamp:       "2026-08-26T10:00:00Z",
			},
		},
	}
	skips := []result.Skip{{RequirementID: "FAIR-2", Reason: "no ground truth supplied"}}

	runID, err := a.SaveRun(payload, skips)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	entries, err := logging.ListAudit(a.DB(), runID)
	if err != nil {
		t.Fatalf("ListAudit: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].RequirementID != "FAIR-1" || entries[0].Action != "evaluated" {
		t.Fatalf("evaluated entry wrong: %+v", entries[0])
	}
	if entries[1].RequirementID != "FAIR-2" || entries[1].Action != "skipped" || entries[1].Reason != "no ground truth supplied" {
		t.Fatalf("skip entry wrong: %+v", entries[1])
	}
}

// 5. Listing filters by run ID.
func TestListAudit_FiltersByRun(t *testing.T) {
	a, runID := tempDB(t)

	otherID, err := a.SaveRun(report.Payload{
		ModelInfo: report.ModelInfo{Name: "other", Version: "1"},
		Summary:   report.Summary{ComplianceLevel: "non_compliant"},
	}, nil)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	if err := logging.LogAudit(a.DB(), logging.AuditEntry{RunID: runID, Action: "archived"}); err != nil {
		t.Fatalf("LogAudit: %v", err)
	}
	if err := logging.LogAudit(a.DB(), logging.AuditEntry{RunID: otherID, Action: "archived"}); err != nil {
		t.Fatalf("LogAudit: %v", err)
	}

	entries, err := logging.ListAudit(a.DB(), runID)
	if err != nil {
		t.Fatalf("ListAudit: %v", err)
	}
	for _, e := range entries {
		if e.RunID != runID {
			t.Fatalf("entry from wrong run: %+v", e)
		}
	}
	if len(entries) != 1 {
		t.Fatalf("got %d filtered entries, want 1", len(entries))
	}
}

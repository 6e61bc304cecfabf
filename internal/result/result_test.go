package result

import (
	"testing"
	"time"
)

// 1. Append preserves insertion order and defaults a zero timestamp.
func TestStore_AppendOrderAndTimestamp(t *testing.T) {
	s := NewStore()
	before := time.Now().UTC()

	s.Append(Evaluation{RequirementID: "R1", Score: 0.4})
	s.Append(Evaluation{RequirementID: "R2", Score: 0.9})

	evs := s.Evaluations()
	if len(evs) != 2 || s.Len() != 2 {
		t.Fatalf("expected 2 evaluations, got %d", len(evs))
	}
	if evs[0].RequirementID != "R1" || evs[1].RequirementID != "R2" {
		t.Fatalf("insertion order lost: %s, %s", evs[0].RequirementID, evs[1].RequirementID)
	}
	if evs[0].Timestamp.Before(before) || evs[0].Timestamp.IsZero() {
		t.Fatalf("timestamp not defaulted: %v", evs[0].Timestamp)
	}
}

// 2. An explicit timestamp is kept.
func TestStore_ExplicitTimestampKept(t *testing.T) {
	s := NewStore()
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.Append(Evaluation{RequirementID: "R1", Timestamp: ts})

	if got := s.Evaluations()[0].Timestamp; !got.Equal(ts) {
		t.Fatalf("expected %v, got %v", ts, got)
	}
}

// 3. Evaluations returns a copy; callers cannot mutate stored records.
func TestStore_EvaluationsCopy(t *testing.T) {
	s := NewStore()
	s.Append(Evaluation{RequirementID: "R1", Score: 0.4})

	evs := s.Evaluations()
	evs[0].Score = 0.0

	if s.Evaluations()[0].Score != 0.4 {
		t.Fatal("Evaluations() leaked internal state")
	}
}

// 4. Skips are recorded with their cause and kept in order.
func TestStore_Skips(t *testing.T) {
	s := NewStore()
	s.RecordSkip(Skip{RequirementID: "R1", Reason: "no data", Cause: ErrMissingInput})
	s.RecordSkip(Skip{RequirementID: "R2", Reason: "placeholder", Cause: ErrNotImplemented})

	skips := s.Skips()
	if len(skips) != 2 {
		t.Fatalf("expected 2 skips, got %d", len(skips))
	}
	if skips[0].Cause != ErrMissingInput || skips[1].Cause != ErrNotImplemented {
		t.Fatalf("causes wrong: %v, %v", skips[0].Cause, skips[1].Cause)
	}
	if s.Len() != 0 {
		t.Fatalf("skips must not count as evaluations, Len=%d", s.Len())
	}
}

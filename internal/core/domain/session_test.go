package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewSession(t *testing.T) {
	s := NewSession(7, 4, "cron", nil, true)

	if s.ID == uuid.Nil {
		t.Error("expected a generated session id")
	}
	if s.State != SessionStarted {
		t.Errorf("expected state %q, got %q", SessionStarted, s.State)
	}
	if s.ExpectedBatches != 4 {
		t.Errorf("expected 4 expected batches, got %d", s.ExpectedBatches)
	}
	if !s.MultiList {
		t.Error("expected multi-list session")
	}
	if s.StartedAt.IsZero() {
		t.Error("expected StartedAt to be set")
	}
}

func TestNewSessionCoercesExpectedBatches(t *testing.T) {
	for _, declared := range []int{0, -3} {
		s := NewSession(1, declared, "", nil, false)
		if s.ExpectedBatches != 1 {
			t.Errorf("declared %d: expected coercion to 1, got %d", declared, s.ExpectedBatches)
		}
	}
}

func TestBeginProcessing(t *testing.T) {
	s := NewSession(1, 1, "", nil, false)

	if err := s.BeginProcessing(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.State != SessionProcessing {
		t.Errorf("expected state %q, got %q", SessionProcessing, s.State)
	}

	// Not restartable once out of Started.
	if err := s.BeginProcessing(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestRecordBatch(t *testing.T) {
	s := NewSession(1, 2, "", nil, false)

	err := s.RecordBatch(BatchTotals{Records: 10, Created: 6, Updated: 3, Errored: 1, Duration: 2 * time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = s.RecordBatch(BatchTotals{Records: 5, Created: 5, Duration: time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.BatchesProcessed != 2 {
		t.Errorf("expected 2 batches processed, got %d", s.BatchesProcessed)
	}
	if s.TotalRecords != 15 {
		t.Errorf("expected 15 total records, got %d", s.TotalRecords)
	}
	if s.RecordsCreated != 11 || s.RecordsUpdated != 3 || s.RecordsErrored != 1 {
		t.Errorf("unexpected counters: created=%d updated=%d errored=%d",
			s.RecordsCreated, s.RecordsUpdated, s.RecordsErrored)
	}
	if s.ProcessingMillis != 3000 {
		t.Errorf("expected 3000ms accumulated, got %d", s.ProcessingMillis)
	}
}

func TestRecordBatchAfterFinish(t *testing.T) {
	s := NewSession(1, 1, "", nil, false)
	if err := s.Finish(OutcomeCompleted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.RecordBatch(BatchTotals{Records: 1}); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestFinish(t *testing.T) {
	tests := []struct {
		outcome Outcome
		state   SessionState
	}{
		{OutcomeCompleted, SessionCompleted},
		{OutcomeError, SessionError},
		{OutcomeCancelled, SessionCancelled},
		// Anything unrecognized closes as completed.
		{Outcome("shrug"), SessionCompleted},
	}

	for _, tt := range tests {
		s := NewSession(1, 1, "", nil, false)
		if err := s.Finish(tt.outcome); err != nil {
			t.Fatalf("outcome %q: unexpected error: %v", tt.outcome, err)
		}
		if s.State != tt.state {
			t.Errorf("outcome %q: expected state %q, got %q", tt.outcome, tt.state, s.State)
		}
		if s.EndedAt == nil {
			t.Errorf("outcome %q: expected EndedAt to be set", tt.outcome)
		}
		if !s.State.Terminal() {
			t.Errorf("outcome %q: expected terminal state", tt.outcome)
		}
	}
}

func TestFinishTwice(t *testing.T) {
	s := NewSession(1, 1, "", nil, false)
	if err := s.Finish(OutcomeCancelled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Finish(OutcomeCompleted); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
	if s.State != SessionCancelled {
		t.Errorf("terminal state must not change, got %q", s.State)
	}
}

func TestProgress(t *testing.T) {
	s := NewSession(1, 4, "", nil, false)

	p := s.Progress()
	if p.Percentage != 0 {
		t.Errorf("expected 0%% before any batch, got %f", p.Percentage)
	}

	for i := 0; i < 3; i++ {
		if err := s.RecordBatch(BatchTotals{Records: 1}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	p = s.Progress()
	if p.Percentage != 75 {
		t.Errorf("expected 75%%, got %f", p.Percentage)
	}
}

func TestProgressCappedAt100(t *testing.T) {
	s := NewSession(1, 2, "", nil, false)
	for i := 0; i < 5; i++ {
		if err := s.RecordBatch(BatchTotals{Records: 1}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if p := s.Progress(); p.Percentage != 100 {
		t.Errorf("expected cap at 100%%, got %f", p.Percentage)
	}
}

func TestThroughput(t *testing.T) {
	s := NewSession(1, 1, "", nil, false)
	if s.Throughput() != 0 {
		t.Error("expected zero throughput before processing")
	}

	if err := s.RecordBatch(BatchTotals{Records: 100, Duration: 2 * time.Second}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Throughput(); got != 50 {
		t.Errorf("expected 50 records/sec, got %f", got)
	}
}

func TestSuccessRate(t *testing.T) {
	s := NewSession(1, 1, "", nil, false)
	if s.SuccessRate() != 0 {
		t.Error("expected zero success rate with no records")
	}

	if err := s.RecordBatch(BatchTotals{Records: 10, Created: 8, Errored: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.SuccessRate(); got != 80 {
		t.Errorf("expected 80%%, got %f", got)
	}
}

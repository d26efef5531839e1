package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionState represents the lifecycle state of a sync session
type SessionState string

const (
	SessionStarted    SessionState = "started"
	SessionProcessing SessionState = "processing"
	SessionCompleted  SessionState = "completed"
	SessionError      SessionState = "error"
	SessionCancelled  SessionState = "cancelled"
)

// Terminal reports whether the state admits no further transitions.
func (s SessionState) Terminal() bool {
	return s == SessionCompleted || s == SessionError || s == SessionCancelled
}

// Outcome is the closed set of ways a caller can finish a session.
// Anything that is not Error or Cancelled finishes as Completed.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeError     Outcome = "error"
	OutcomeCancelled Outcome = "cancelled"
)

func (o Outcome) terminalState() SessionState {
	switch o {
	case OutcomeError:
		return SessionError
	case OutcomeCancelled:
		return SessionCancelled
	default:
		return SessionCompleted
	}
}

// BatchTotals is the counter delta one processed batch folds into its
// session.
type BatchTotals struct {
	Records  int
	Created  int
	Updated  int
	Errored  int
	Duration time.Duration
}

// Progress is a point-in-time view of how far a session has advanced
// against its declared batch count.
type Progress struct {
	BatchesProcessed int     `json:"batches_processed"`
	ExpectedBatches  int     `json:"expected_batches"`
	Percentage       float64 `json:"percentage"`
}

// SyncSession is one synchronization run for one tenant. It accumulates
// counters across sequentially submitted batches until finished. The
// per-record error ledger is kept outside the aggregate, appended through
// SessionErrorStore keyed by the session id.
//
// Counters are mutated non-atomically: batches of one session must be
// submitted sequentially by the caller.
type SyncSession struct {
	ID          uuid.UUID `json:"id"`
	TenantID    int64     `json:"tenant_id"`
	PriceListID *int64    `json:"price_list_id,omitempty"`
	MultiList   bool      `json:"multi_list"`
	StartedBy   string    `json:"started_by,omitempty"`

	State SessionState `json:"state"`

	ExpectedBatches  int `json:"expected_batches"`
	BatchesProcessed int `json:"batches_processed"`
	TotalRecords     int `json:"total_records"`
	RecordsCreated   int `json:"records_created"`
	RecordsUpdated   int `json:"records_updated"`
	RecordsErrored   int `json:"records_errored"`

	// ProcessingMillis accumulates per-batch reconciliation time, the
	// basis for throughput. ElapsedMillis is wall time, set at finish.
	ProcessingMillis int64      `json:"processing_millis"`
	StartedAt        time.Time  `json:"started_at"`
	EndedAt          *time.Time `json:"ended_at,omitempty"`
	ElapsedMillis    int64      `json:"elapsed_millis"`
}

// NewSession constructs a session in Started state. A non-positive
// expected batch count is coerced to 1; it only drives the progress
// percentage, never a hard limit.
func NewSession(tenantID int64, expectedBatches int, startedBy string, priceListID *int64, multiList bool) *SyncSession {
	if expectedBatches <= 0 {
		expectedBatches = 1
	}
	return &SyncSession{
		ID:              uuid.New(),
		TenantID:        tenantID,
		PriceListID:     priceListID,
		MultiList:       multiList,
		StartedBy:       startedBy,
		State:           SessionStarted,
		ExpectedBatches: expectedBatches,
		StartedAt:       time.Now(),
	}
}

// Active reports whether the session still accepts batches.
func (s *SyncSession) Active() bool {
	return s.State == SessionStarted || s.State == SessionProcessing
}

// BeginProcessing transitions Started -> Processing.
func (s *SyncSession) BeginProcessing() error {
	if s.State != SessionStarted {
		return fmt.Errorf("%w: cannot begin processing from %q", ErrInvalidState, s.State)
	}
	s.State = SessionProcessing
	return nil
}

// RecordBatch folds one batch's totals into the session counters.
// Allowed only while the session is active.
func (s *SyncSession) RecordBatch(t BatchTotals) error {
	if !s.Active() {
		return fmt.Errorf("%w: cannot record batch in %q", ErrInvalidState, s.State)
	}
	s.BatchesProcessed++
	s.TotalRecords += t.Records
	s.RecordsCreated += t.Created
	s.RecordsUpdated += t.Updated
	s.RecordsErrored += t.Errored
	s.ProcessingMillis += t.Duration.Milliseconds()
	return nil
}

// Finish moves the session to the terminal state matching the outcome and
// freezes its end time and elapsed wall time. Fails if already terminal.
func (s *SyncSession) Finish(o Outcome) error {
	if !s.Active() {
		return fmt.Errorf("%w: session already %q", ErrInvalidState, s.State)
	}
	now := time.Now()
	s.EndedAt = &now
	s.ElapsedMillis = now.Sub(s.StartedAt).Milliseconds()
	s.State = o.terminalState()
	return nil
}

// Progress returns the completion percentage, capped at 100. Defined even
// before the first batch.
func (s *SyncSession) Progress() Progress {
	expected := s.ExpectedBatches
	if expected <= 0 {
		expected = 1
	}
	pct := float64(s.BatchesProcessed) / float64(expected) * 100
	if pct > 100 {
		pct = 100
	}
	return Progress{
		BatchesProcessed: s.BatchesProcessed,
		ExpectedBatches:  expected,
		Percentage:       pct,
	}
}

// Throughput returns records per second of accumulated processing time.
func (s *SyncSession) Throughput() float64 {
	if s.ProcessingMillis <= 0 {
		return 0
	}
	return float64(s.TotalRecords) / (float64(s.ProcessingMillis) / 1000)
}

// SuccessRate returns the percentage of records that reconciled cleanly.
func (s *SyncSession) SuccessRate() float64 {
	if s.TotalRecords == 0 {
		return 0
	}
	return float64(s.TotalRecords-s.RecordsErrored) / float64(s.TotalRecords) * 100
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// LogStatus is the coarse outcome recorded on a sync log.
type LogStatus string

const (
	// LogStatusOK - every record reconciled cleanly
	LogStatusOK LogStatus = "exitoso"
	// LogStatusWithErrors - errors occurred but some records succeeded
	LogStatusWithErrors LogStatus = "con_errores"
	// LogStatusFailed - nothing succeeded
	LogStatusFailed LogStatus = "fallido"
)

// SyncLog is the immutable audit snapshot created once, when a session
// finishes. It carries a serialized copy of the session's error ledger.
type SyncLog struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	TenantID  int64     `json:"tenant_id"`

	Processed int `json:"processed"`
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Errored   int `json:"errored"`

	ElapsedMillis int64     `json:"elapsed_millis"`
	Status        LogStatus `json:"status"`

	Errors []RecordError `json:"errors,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// NewSyncLog derives the audit snapshot from a finished session and its
// error ledger.
func NewSyncLog(s *SyncSession, errs []RecordError) *SyncLog {
	return &SyncLog{
		ID:            uuid.New(),
		SessionID:     s.ID,
		TenantID:      s.TenantID,
		Processed:     s.TotalRecords,
		Created:       s.RecordsCreated,
		Updated:       s.RecordsUpdated,
		Errored:       s.RecordsErrored,
		ElapsedMillis: s.ElapsedMillis,
		Status:        deriveLogStatus(s),
		Errors:        errs,
		CreatedAt:     time.Now(),
	}
}

func deriveLogStatus(s *SyncSession) LogStatus {
	switch {
	case s.RecordsErrored == 0:
		return LogStatusOK
	case s.RecordsCreated+s.RecordsUpdated > 0:
		return LogStatusWithErrors
	default:
		return LogStatusFailed
	}
}

package domain

import (
	"errors"
	"strings"
)

// ErrorKind classifies a per-record reconciliation failure.
type ErrorKind string

const (
	ErrorKindInvalidCode   ErrorKind = "invalid_code"
	ErrorKindDuplicateCode ErrorKind = "duplicate_code"
	ErrorKindValidation    ErrorKind = "validation_error"
	ErrorKindDuplicate     ErrorKind = "duplicate_error"
	ErrorKindReference     ErrorKind = "reference_error"
	ErrorKindConnection    ErrorKind = "connection_error"
	ErrorKindUnknown       ErrorKind = "unknown_error"
)

// RecordError is one entry of a session's error ledger: a single record
// that failed reconciliation, with enough context to locate it in the
// original batch.
type RecordError struct {
	Code         string    `json:"code"`
	Description  string    `json:"description,omitempty"`
	CategoryCode *int      `json:"category_code,omitempty"`
	Kind         ErrorKind `json:"kind"`
	Message      string    `json:"message"`
	Index        int       `json:"index"`
}

// Classify maps an error to an ErrorKind. Sentinel kinds raised at the
// failure site take precedence; message keywords are only a fallback for
// opaque driver errors.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorKindUnknown
	case errors.Is(err, ErrInvalidInput):
		return ErrorKindValidation
	case errors.Is(err, ErrAlreadyExists):
		return ErrorKindDuplicate
	case errors.Is(err, ErrNotFound):
		return ErrorKindReference
	case errors.Is(err, ErrConnection):
		return ErrorKindConnection
	}
	return ClassifyMessage(err.Error())
}

// ClassifyMessage is the best-effort keyword classifier for errors that
// originate outside the domain (store constraints, drivers). It is an
// approximation, not a guarantee.
func ClassifyMessage(msg string) ErrorKind {
	m := strings.ToLower(msg)
	switch {
	case containsAny(m, "duplicate", "unique constraint", "already exists"):
		return ErrorKindDuplicate
	case containsAny(m, "foreign key", "violates reference", "referenced", "dangling"):
		return ErrorKindReference
	case containsAny(m, "timeout", "timed out", "connection", "refused", "broken pipe", "unreachable"):
		return ErrorKindConnection
	case containsAny(m, "invalid", "validation", "must be", "cannot be", "negative", "required"):
		return ErrorKindValidation
	}
	return ErrorKindUnknown
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

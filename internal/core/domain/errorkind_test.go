package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifySentinels(t *testing.T) {
	tests := []struct {
		err  error
		kind ErrorKind
	}{
		{fmt.Errorf("wrap: %w", ErrInvalidInput), ErrorKindValidation},
		{fmt.Errorf("wrap: %w", ErrAlreadyExists), ErrorKindDuplicate},
		{fmt.Errorf("wrap: %w", ErrNotFound), ErrorKindReference},
		{fmt.Errorf("wrap: %w", ErrConnection), ErrorKindConnection},
		{nil, ErrorKindUnknown},
	}

	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.kind {
			t.Errorf("Classify(%v): expected %q, got %q", tt.err, tt.kind, got)
		}
	}
}

func TestClassifySentinelBeatsMessage(t *testing.T) {
	// Message says "duplicate" but the wrapped sentinel says validation;
	// the sentinel wins.
	err := fmt.Errorf("duplicate something: %w", ErrInvalidInput)
	if got := Classify(err); got != ErrorKindValidation {
		t.Errorf("expected sentinel to take precedence, got %q", got)
	}
}

func TestClassifyMessageFallback(t *testing.T) {
	tests := []struct {
		msg  string
		kind ErrorKind
	}{
		{"pq: duplicate key value violates unique constraint", ErrorKindDuplicate},
		{"pq: insert violates foreign key constraint", ErrorKindReference},
		{"dial tcp: connection refused", ErrorKindConnection},
		{"read tcp: i/o timeout", ErrorKindConnection},
		{"price must be non-negative", ErrorKindValidation},
		{"something inexplicable", ErrorKindUnknown},
	}

	for _, tt := range tests {
		if got := Classify(errors.New(tt.msg)); got != tt.kind {
			t.Errorf("Classify(%q): expected %q, got %q", tt.msg, tt.kind, got)
		}
	}
}

package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestEntityErrorsUnwrapToBase(t *testing.T) {
	tests := []struct {
		name string
		err  error
		base error
	}{
		{"faculty not found", ErrFacultyNotFound, ErrResourceNotFound},
		{"faculty exists", ErrFacultyAlreadyExists, ErrResourceAlreadyExists},
		{"group exists", ErrGroupAlreadyExists, ErrResourceAlreadyExists},
		{"promotion empty", ErrNoGroupsToPromote, ErrResourceNotFound},
		{"bad pattern", ErrInvalidSearchPattern, ErrValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("service: %w", tt.err)
			if !errors.Is(wrapped, tt.base) {
				t.Fatalf("expected %v to unwrap to %v", tt.err, tt.base)
			}
			if !errors.Is(wrapped, tt.err) {
				t.Fatalf("expected wrapped error to match its sentinel")
			}
		})
	}
}

func TestMessage(t *testing.T) {
	err := fmt.Errorf("error creating group: %w", ErrFacultyNotFound)
	if got := Message(err); got != "Faculty not found" {
		t.Fatalf("Message() = %q", got)
	}
	if got := Message(errors.New("plain")); got != "plain" {
		t.Fatalf("Message() = %q", got)
	}
	if got := Message(nil); got != "" {
		t.Fatalf("Message(nil) = %q", got)
	}
}

func TestWithDetailsDoesNotMutateSentinel(t *testing.T) {
	detailed := ErrGroupNotFound.WithDetails(map[string]interface{}{"id": 7})
	if ErrGroupNotFound.Details != nil {
		t.Fatalf("sentinel was mutated")
	}
	if !errors.Is(detailed, ErrGroupNotFound) || !errors.Is(detailed, ErrResourceNotFound) {
		t.Fatalf("detailed error lost its chain")
	}
	if detailed.Error() != ErrGroupNotFound.Error() {
		t.Fatalf("detailed message = %q", detailed.Error())
	}
}

func TestIs(t *testing.T) {
	if !Is(ErrSubjectNotFound, ErrGroupNotFound, ErrSubjectNotFound) {
		t.Fatalf("expected match from list")
	}
	if Is(ErrSubjectNotFound, ErrGroupNotFound) {
		t.Fatalf("unexpected match")
	}
}

package odoo

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		check    func(error) bool
	}{
		{"validation", &ValidationError{Field: "name", Reason: "is required"}, ErrValidation, IsValidation},
		{"not found", &NotFoundError{Model: "crm.lead", ID: 42}, ErrNotFound, IsNotFound},
		{"invalid state", &InvalidStateError{Model: "crm.lead", ID: 42, State: "opportunity"}, ErrInvalidState, IsInvalidState},
		{"remote", &RemoteError{Model: "crm.lead", Method: "create", Err: errors.New("boom")}, ErrRemote, IsRemote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, sentinel) = false", tt.err)
			}
			if !tt.check(tt.err) {
				t.Errorf("check helper returned false for %v", tt.err)
			}
			if tt.err.Error() == "" {
				t.Error("error message is empty")
			}
		})
	}
}

func TestErrorKindsAreDistinct(t *testing.T) {
	notFound := &NotFoundError{Model: "res.partner", ID: 7}

	if IsValidation(notFound) {
		t.Error("NotFoundError should not match IsValidation")
	}
	if IsInvalidState(notFound) {
		t.Error("NotFoundError should not match IsInvalidState")
	}
	if IsRemote(notFound) {
		t.Error("NotFoundError should not match IsRemote")
	}
}

func TestRemoteErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := &RemoteError{Model: "crm.lead", Method: "search_read", Err: fmt.Errorf("transport: %w", cause)}

	if !errors.Is(err, cause) {
		t.Error("RemoteError should unwrap to its cause")
	}
	if !errors.Is(err, ErrRemote) {
		t.Error("RemoteError should match ErrRemote")
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Field: "name", Reason: "is required"}
	want := `validation failed: field "name" is required`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	bare := &ValidationError{Reason: "no fields provided for update"}
	if bare.Error() != "validation failed: no fields provided for update" {
		t.Errorf("Error() = %q", bare.Error())
	}
}

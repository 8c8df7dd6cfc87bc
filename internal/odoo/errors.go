package odoo

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when input is rejected before any remote call
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when the remote server has no record for an id
	ErrNotFound = errors.New("record not found")

	// ErrInvalidState is returned when a lifecycle transition is attempted
	// from a state that does not allow it
	ErrInvalidState = errors.New("invalid state for operation")

	// ErrRemote is returned when the remote call itself failed
	ErrRemote = errors.New("remote call failed")

	// ErrUnauthorized is returned when authentication against the server fails
	ErrUnauthorized = errors.New("odoo authentication failed")
)

// ValidationError reports malformed or missing input, detected locally.
// No remote round-trip happens before it is raised.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: field %q %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NotFoundError reports that the remote server has no record for the id.
type NotFoundError struct {
	Model string
	ID    int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s record %d not found", e.Model, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// InvalidStateError reports a lifecycle transition attempted from a
// disallowed state.
type InvalidStateError struct {
	Model string
	ID    int64
	State string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s record %d is already in state %q", e.Model, e.ID, e.State)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// RemoteError wraps a failed remote call with the model and method it
// targeted. The underlying cause is preserved and never retried here.
type RemoteError struct {
	Model  string
	Method string
	Err    error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("odoo call %s.%s failed: %v", e.Model, e.Method, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is makes RemoteError match ErrRemote under errors.Is while still
// unwrapping to the underlying cause.
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemote
}

// IsValidation checks if an error is a local validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidState checks if an error is a lifecycle state error
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

// IsRemote checks if an error came from a failed remote call
func IsRemote(err error) bool {
	return errors.Is(err, ErrRemote)
}

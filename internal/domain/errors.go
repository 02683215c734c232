package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Configuration errors
	ErrMsgConfigMissing = "discord config missing"

	// Remote call errors
	ErrMsgRemoteCallFailed = "remote call failed"

	// Record errors
	ErrMsgRecordNotFound = "user record not found"

	// Validation errors
	ErrMsgValidationFailed = "record validation failed"

	// Member lookup errors
	ErrMsgMemberNotFound = "user does not exist on server"

	// Verification errors
	ErrMsgInvalidCode = "invalid verification code"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrConfigMissing indicates a required configuration field is absent.
	// Fatal for the attempted operation; no partial retry.
	ErrConfigMissing = errors.New(ErrMsgConfigMissing)

	// ErrRemoteCallFailed indicates a non-success response from the chat platform.
	// Prior side effects (already-granted roles) are not rolled back.
	ErrRemoteCallFailed = errors.New(ErrMsgRemoteCallFailed)

	// ErrRecordNotFound indicates an expected stored record is missing.
	ErrRecordNotFound = errors.New(ErrMsgRecordNotFound)

	// ErrValidationFailed indicates stored or incoming data does not match
	// the expected record shape. Treated as fatal, not user-recoverable.
	ErrValidationFailed = errors.New(ErrMsgValidationFailed)

	// ErrMemberNotFound indicates the guild member search found no
	// case-insensitive exact username match. Surfaced to the user as a
	// "user does not exist" message rather than a crash.
	ErrMemberNotFound = errors.New(ErrMsgMemberNotFound)

	// ErrInvalidCode indicates a submitted verification code did not match
	// the stored one. The flow stays in the code-sent state.
	ErrInvalidCode = errors.New(ErrMsgInvalidCode)
)

// RemoteError carries structured context for a failed chat-platform call.
// It unwraps to ErrRemoteCallFailed so callers can match with errors.Is.
type RemoteError struct {
	Op     string // operation, e.g. "create dm channel", "assign role"
	Status int    // HTTP status returned by the platform, 0 for transport errors
}

func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Op, ErrMsgRemoteCallFailed)
	}
	return fmt.Sprintf("%s: %s: status %d", e.Op, ErrMsgRemoteCallFailed, e.Status)
}

func (e *RemoteError) Unwrap() error { return ErrRemoteCallFailed }

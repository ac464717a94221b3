package events

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPermissionDenied is returned when a non-manager calls a mutating
// operation. Supervisors read; managers write.
var ErrPermissionDenied = errors.New("only managers may modify events, messages or payments")

// ValidationError reports required event fields that were missing or empty.
// It is raised before anything touches storage.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// PartialFailureError reports a dependent step that failed after the event
// write itself succeeded. Against a transactional store the whole operation
// rolls back, but the error still names the failed step so the caller can
// tell "event save failed" apart from "message/payment derivation failed"
// and offer the regenerate recovery action.
type PartialFailureError struct {
	EventID string
	Step    string
	Err     error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("event %s: %s failed: %v", e.EventID, e.Step, e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}

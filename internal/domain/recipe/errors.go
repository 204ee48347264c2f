package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Domain errors surfaced by the content gateway and panels.

var (
	// ErrMalformed marks a provider payload that parsed as JSON but is
	// missing required fields. Returned wrapped inside a MalformedError.
	ErrMalformed = errors.New("malformed provider result")

	// ErrEmptyQuery is returned when a blank or whitespace-only query or
	// topic is submitted. Callers treat it as a no-op, never as a failure.
	ErrEmptyQuery = errors.New("empty query")

	// ErrBusy is returned when a panel already has a request in flight.
	// One outstanding request per panel; duplicates are rejected, not queued.
	ErrBusy = errors.New("request already in flight")
)

// MalformedError reports which required fields a provider result lacked.
// It collapses a structurally incomplete payload into one well-defined
// failure rather than letting absent fields leak into rendering.
type MalformedError struct {
	Entity  string
	Missing []string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed %s: missing %s", e.Entity, strings.Join(e.Missing, ", "))
}

// Unwrap makes errors.Is(err, ErrMalformed) work.
func (e *MalformedError) Unwrap() error {
	return ErrMalformed
}

// IsCanceled reports whether err stems from the caller abandoning the
// interaction (client disconnect). Such outcomes are suppressed from
// user-facing failure messaging.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

package secondary

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned for any 401. The gateway clears the shared
// session before returning it; callers must send the user back to login and
// never retry automatically.
var ErrUnauthorized = errors.New("not authenticated (session expired or invalid)")

// ErrNotFound is returned when the server reports a missing entity.
var ErrNotFound = errors.New("not found")

// ValidationError carries the server's structured rejection text verbatim.
// The user can correct the input and resubmit.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TransientError covers network failures and 5xx responses. Surfaced as a
// generic notification; the user must re-trigger the action manually.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

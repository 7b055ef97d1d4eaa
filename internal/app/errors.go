package app

import "errors"

// ErrMutationInFlight is returned when a second mutating call is requested
// for a work order whose previous mutation has not finished. The request is
// rejected, not queued; the caller re-triggers once the first call settles.
var ErrMutationInFlight = errors.New("another action for this work order is still in flight")

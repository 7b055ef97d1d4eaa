// Package workorder contains the pure business logic for the work-order
// lifecycle. This is part of the Functional Core - no I/O, only pure functions.
package workorder

import "fmt"

// Status represents the lifecycle state of a work order. The full set
// mirrors what the server reports; Invoiced and Closed are reached only by
// server-side billing flows and expose no actions here.
type Status string

const (
	StatusScheduled  Status = "Scheduled"
	StatusDispatched Status = "Dispatched"
	StatusOnRoute    Status = "OnRoute"
	StatusArrived    Status = "Arrived"
	StatusInService  Status = "InService"
	StatusPaused     Status = "Paused"
	StatusCompleted  Status = "Completed"
	StatusInvoiced   Status = "Invoiced"
	StatusClosed     Status = "Closed"
)

// Action identifies a lifecycle transition a user can request.
type Action string

const (
	ActionDispatch      Action = "dispatch"
	ActionStartRoute    Action = "startRoute"
	ActionArrive        Action = "arrive"
	ActionStartService  Action = "startService"
	ActionPauseService  Action = "pauseService"
	ActionResumeService Action = "resumeService"
	ActionFinishService Action = "finishService"
)

type transition struct {
	action Action
	to     Status
}

// transitions is the single source of truth for which actions are legal from
// which status. Every view and command renders its affordances from this
// table; nothing else may encode lifecycle knowledge.
var transitions = map[Status][]transition{
	StatusScheduled: {
		{ActionDispatch, StatusDispatched},
		{ActionStartRoute, StatusOnRoute},
	},
	StatusDispatched: {
		{ActionStartRoute, StatusOnRoute},
	},
	StatusOnRoute: {
		{ActionArrive, StatusArrived},
	},
	StatusArrived: {
		{ActionStartService, StatusInService},
	},
	StatusInService: {
		{ActionPauseService, StatusPaused},
		{ActionFinishService, StatusCompleted},
	},
	StatusPaused: {
		{ActionResumeService, StatusInService},
		{ActionFinishService, StatusCompleted},
	},
	StatusCompleted: {},
	StatusInvoiced:  {},
	StatusClosed:    {},
}

// InvalidTransitionError is returned when an action is not legal from the
// current status. It is detected client-side, before any network call.
type InvalidTransitionError struct {
	Status Status
	Action Action
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("action %q is not permitted from status %q", e.Action, e.Status)
}

// InitialStatus returns the status every newly created work order starts in.
func InitialStatus() Status {
	return StatusScheduled
}

// PermittedActions returns the actions legal from the given status, in table
// order. Unknown statuses yield an empty set, never an error.
func PermittedActions(status Status) []Action {
	ts := transitions[status]
	if len(ts) == 0 {
		return nil
	}
	actions := make([]Action, 0, len(ts))
	for _, t := range ts {
		actions = append(actions, t.action)
	}
	return actions
}

// CanApply reports whether action is legal from status.
func CanApply(status Status, action Action) bool {
	for _, t := range transitions[status] {
		if t.action == action {
			return true
		}
	}
	return false
}

// ApplyTransition returns the status that results from performing action in
// the given status, or an InvalidTransitionError if the table does not list
// the pair. Callers use this as a pre-flight check; the server remains the
// authority and may still reject the call.
func ApplyTransition(status Status, action Action) (Status, error) {
	for _, t := range transitions[status] {
		if t.action == action {
			return t.to, nil
		}
	}
	return "", &InvalidTransitionError{Status: status, Action: action}
}

// IsTerminal reports whether no client-side action can move the work order
// out of status.
func IsTerminal(status Status) bool {
	return len(transitions[status]) == 0
}

// KnownStatus reports whether status is one the client understands. Servers
// may introduce new states; unknown ones simply render with no actions.
func KnownStatus(status Status) bool {
	_, ok := transitions[status]
	return ok
}

// AllStatuses lists every status the client understands, in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		StatusScheduled,
		StatusDispatched,
		StatusOnRoute,
		StatusArrived,
		StatusInService,
		StatusPaused,
		StatusCompleted,
		StatusInvoiced,
		StatusClosed,
	}
}

// ParseAction maps the wire/CLI spelling of an action to its identifier.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionDispatch, ActionStartRoute, ActionArrive, ActionStartService,
		ActionPauseService, ActionResumeService, ActionFinishService:
		return Action(s), nil
	}
	return "", fmt.Errorf("unknown work order action %q", s)
}

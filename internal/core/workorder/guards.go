package workorder

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CreateContext provides context for work-order creation guards.
type CreateContext struct {
	CustomerID string
	Title      string
}

// ActionContext provides context for transition guards.
type ActionContext struct {
	WorkOrderID      string
	Status           Status
	Action           Action
	MutationInFlight bool
}

// CanCreate evaluates whether a work order can be created.
// Rules:
// - Customer is required
// - Title is required
func CanCreate(ctx CreateContext) GuardResult {
	if ctx.CustomerID == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "a customer is required to create a work order",
		}
	}
	if ctx.Title == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "a title is required to create a work order",
		}
	}
	return GuardResult{Allowed: true}
}

// CanPerform evaluates whether a lifecycle action may be issued.
// Rules:
// - The action must be legal from the current status
// - No other mutation for the same work order may be in flight
func CanPerform(ctx ActionContext) GuardResult {
	if ctx.MutationInFlight {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("another action for work order %s is still in flight", ctx.WorkOrderID),
		}
	}
	if !CanApply(ctx.Status, ctx.Action) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot %s work order %s (current status: %s)", ctx.Action, ctx.WorkOrderID, ctx.Status),
		}
	}
	return GuardResult{Allowed: true}
}

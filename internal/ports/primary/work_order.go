// Package primary defines the primary ports (driving interfaces) for the
// application: the services the CLI and TUI call, with their request,
// response and view types.
package primary

import (
	"context"
	"time"

	"github.com/example/plumbops/internal/core/workorder"
)

// WorkOrder is the view of a work order handed to commands and views.
// PermittedActions is derived from the status table so every surface renders
// the same affordances.
type WorkOrder struct {
	ID               string
	Code             string
	Title            string
	Description      string
	Address          string
	Status           workorder.Status
	CustomerID       string
	TechnicianID     string // empty means unassigned
	ScheduledAt      *time.Time
	ArrivedAt        *time.Time
	CreatedAt        *time.Time
	UpdatedAt        *time.Time
	PermittedActions []workorder.Action
}

// TimeEntry is the view of a technician time entry.
type TimeEntry struct {
	ID           string
	WorkOrderID  string
	TechnicianID string
	StartAt      time.Time
	EndAt        *time.Time // nil while the entry is open
	Notes        string
}

// CreateWorkOrderRequest carries the input for work-order creation.
type CreateWorkOrderRequest struct {
	CustomerID   string
	TechnicianID string
	Title        string
	Description  string
	Address      string
	ScheduledAt  time.Time // zero when unscheduled
}

// ActionPayload carries the optional body of a transition action.
type ActionPayload struct {
	Reason       string    // pauseService
	Summary      string    // finishService
	TechnicianID string    // startService / resumeService
	TargetLat    *float64  // startRoute
	TargetLng    *float64  // startRoute
	ArrivedAt    time.Time // arrive (manual arrival time, zero for "now")
}

// WorkOrderService drives the work-order lifecycle. Dispatch is the single
// entry point for all transitions: it validates the action against the
// status table before any network traffic, refuses a second concurrent
// mutation for the same work order, and invalidates cached reads only after
// the server confirms.
type WorkOrderService interface {
	// ListWorkOrders returns all work orders, served from cache when fresh.
	ListWorkOrders(ctx context.Context) ([]*WorkOrder, error)

	// RefreshWorkOrders drops the cached list and fetches it from the
	// server. Polling surfaces use this so changes made by other clients
	// become visible.
	RefreshWorkOrders(ctx context.Context) ([]*WorkOrder, error)

	// RefreshWorkOrder drops one work order's cached state, time entries
	// included, and re-fetches the work order.
	RefreshWorkOrder(ctx context.Context, id string) (*WorkOrder, error)

	// GetWorkOrder returns one work order, served from cache when fresh.
	GetWorkOrder(ctx context.Context, id string) (*WorkOrder, error)

	// GetTimeEntries returns the time entries for a work order.
	GetTimeEntries(ctx context.Context, id string) ([]*TimeEntry, error)

	// CreateWorkOrder creates a work order; it starts in Scheduled status.
	CreateWorkOrder(ctx context.Context, req CreateWorkOrderRequest) (*WorkOrder, error)

	// Dispatch performs a lifecycle action and returns the server-confirmed
	// work order. It returns workorder.InvalidTransitionError before any
	// call when the action is not permitted, and ErrMutationInFlight when a
	// mutation for the same id is already running.
	Dispatch(ctx context.Context, id string, action workorder.Action, payload ActionPayload) (*WorkOrder, error)
}

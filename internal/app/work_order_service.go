package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/plumbops/internal/core/workorder"
	"github.com/example/plumbops/internal/ports/primary"
	"github.com/example/plumbops/internal/ports/secondary"
	"github.com/example/plumbops/internal/timeutil"
)

const cacheKeyWorkOrderList = "workorders:list"

func cacheKeyWorkOrder(id string) string {
	return "workorder:" + id
}

func cacheKeyTimeEntries(id string) string {
	return "workorder:" + id + ":time-entries"
}

// WorkOrderServiceImpl implements the WorkOrderService interface. It is the
// action dispatcher: the only path through which lifecycle actions reach the
// API. Local state is updated only after server confirmation - the cache is
// invalidated on success and reads then re-fetch.
type WorkOrderServiceImpl struct {
	gateway secondary.WorkOrderGateway
	cache   secondary.ReadCache

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewWorkOrderService creates a new WorkOrderService with injected dependencies.
func NewWorkOrderService(gateway secondary.WorkOrderGateway, cache secondary.ReadCache) *WorkOrderServiceImpl {
	return &WorkOrderServiceImpl{
		gateway:  gateway,
		cache:    cache,
		inFlight: make(map[string]bool),
	}
}

var _ primary.WorkOrderService = (*WorkOrderServiceImpl)(nil)

// ListWorkOrders returns all work orders, served from cache when fresh.
func (s *WorkOrderServiceImpl) ListWorkOrders(ctx context.Context) ([]*primary.WorkOrder, error) {
	if v, ok := s.cache.Get(cacheKeyWorkOrderList); ok {
		return v.([]*primary.WorkOrder), nil
	}

	seq := s.cache.Begin()
	records, err := s.gateway.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list work orders: %w", err)
	}

	orders := make([]*primary.WorkOrder, 0, len(records))
	for _, rec := range records {
		orders = append(orders, recordToWorkOrder(rec))
	}
	s.cache.Put(cacheKeyWorkOrderList, orders, seq)
	return orders, nil
}

// RefreshWorkOrders drops the cached list before fetching, so the result
// always reflects the server. The board's poll loop goes through here;
// plain reads in between keep being served from cache.
func (s *WorkOrderServiceImpl) RefreshWorkOrders(ctx context.Context) ([]*primary.WorkOrder, error) {
	s.cache.Invalidate(cacheKeyWorkOrderList)
	return s.ListWorkOrders(ctx)
}

// RefreshWorkOrder drops one work order's cached state, its time entries
// included, then re-fetches the work order from the server.
func (s *WorkOrderServiceImpl) RefreshWorkOrder(ctx context.Context, id string) (*primary.WorkOrder, error) {
	s.cache.Invalidate(cacheKeyWorkOrder(id), cacheKeyTimeEntries(id))
	return s.fetchWorkOrder(ctx, id)
}

// GetWorkOrder returns one work order, served from cache when fresh.
func (s *WorkOrderServiceImpl) GetWorkOrder(ctx context.Context, id string) (*primary.WorkOrder, error) {
	if v, ok := s.cache.Get(cacheKeyWorkOrder(id)); ok {
		return v.(*primary.WorkOrder), nil
	}
	return s.fetchWorkOrder(ctx, id)
}

func (s *WorkOrderServiceImpl) fetchWorkOrder(ctx context.Context, id string) (*primary.WorkOrder, error) {
	seq := s.cache.Begin()
	rec, err := s.gateway.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get work order %s: %w", id, err)
	}
	wo := recordToWorkOrder(rec)
	s.cache.Put(cacheKeyWorkOrder(id), wo, seq)
	return wo, nil
}

// GetTimeEntries returns the time entries for a work order.
func (s *WorkOrderServiceImpl) GetTimeEntries(ctx context.Context, id string) ([]*primary.TimeEntry, error) {
	if v, ok := s.cache.Get(cacheKeyTimeEntries(id)); ok {
		return v.([]*primary.TimeEntry), nil
	}

	seq := s.cache.Begin()
	records, err := s.gateway.TimeEntries(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get time entries for %s: %w", id, err)
	}

	entries := make([]*primary.TimeEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, recordToTimeEntry(rec))
	}
	s.cache.Put(cacheKeyTimeEntries(id), entries, seq)
	return entries, nil
}

// CreateWorkOrder creates a work order; the server constructs it in
// Scheduled status.
func (s *WorkOrderServiceImpl) CreateWorkOrder(ctx context.Context, req primary.CreateWorkOrderRequest) (*primary.WorkOrder, error) {
	guard := workorder.CanCreate(workorder.CreateContext{
		CustomerID: req.CustomerID,
		Title:      req.Title,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	rec, err := s.gateway.Create(ctx, &secondary.WorkOrderCreateRecord{
		CustomerID:   req.CustomerID,
		TechnicianID: req.TechnicianID,
		Title:        req.Title,
		Description:  req.Description,
		Address:      req.Address,
		ScheduledAt:  timeutil.FormatRFC3339(req.ScheduledAt),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create work order: %w", err)
	}

	s.cache.Invalidate(cacheKeyWorkOrderList)
	return recordToWorkOrder(rec), nil
}

// Dispatch performs a lifecycle action. Exactly one mutation may be in
// flight per work order: a concurrent request is rejected with
// ErrMutationInFlight rather than queued, so the outcome is deterministic.
// The transition is validated against the status table before any network
// call; the server remains the authority and may still reject it. Once
// issued, the call runs to completion - ctx must not carry view-scoped
// cancellation.
func (s *WorkOrderServiceImpl) Dispatch(ctx context.Context, id string, action workorder.Action, payload primary.ActionPayload) (*primary.WorkOrder, error) {
	if !s.acquire(id) {
		return nil, fmt.Errorf("work order %s: %w", id, ErrMutationInFlight)
	}
	defer s.release(id)

	current, err := s.GetWorkOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := workorder.ApplyTransition(current.Status, action); err != nil {
		return nil, err
	}

	rec, err := s.gateway.PerformAction(ctx, id, string(action), &secondary.ActionPayloadRecord{
		Reason:       payload.Reason,
		Summary:      payload.Summary,
		TechnicianID: payload.TechnicianID,
		TargetLat:    payload.TargetLat,
		TargetLng:    payload.TargetLng,
		AtUTC:        timeutil.FormatRFC3339(payload.ArrivedAt),
	})
	if err != nil {
		// Confirmed-only updates: the cache stays as it was.
		return nil, fmt.Errorf("failed to %s work order %s: %w", action, id, err)
	}

	s.cache.Invalidate(cacheKeyWorkOrderList, cacheKeyWorkOrder(id), cacheKeyTimeEntries(id))

	if rec != nil {
		wo := recordToWorkOrder(rec)
		s.cache.Put(cacheKeyWorkOrder(id), wo, s.cache.Begin())
		return wo, nil
	}
	return s.fetchWorkOrder(ctx, id)
}

func (s *WorkOrderServiceImpl) acquire(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[id] {
		return false
	}
	s.inFlight[id] = true
	return true
}

func (s *WorkOrderServiceImpl) release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, id)
}

func recordToWorkOrder(rec *secondary.WorkOrderRecord) *primary.WorkOrder {
	status := workorder.Status(rec.Status)
	return &primary.WorkOrder{
		ID:               rec.ID,
		Code:             rec.Code,
		Title:            rec.Title,
		Description:      rec.Description,
		Address:          rec.Address,
		Status:           status,
		CustomerID:       rec.CustomerID,
		TechnicianID:     rec.TechnicianID,
		ScheduledAt:      parseTime(rec.ScheduledAt),
		ArrivedAt:        parseTime(rec.ArrivedAt),
		CreatedAt:        parseTime(rec.CreatedAt),
		UpdatedAt:        parseTime(rec.UpdatedAt),
		PermittedActions: workorder.PermittedActions(status),
	}
}

func recordToTimeEntry(rec *secondary.TimeEntryRecord) *primary.TimeEntry {
	entry := &primary.TimeEntry{
		ID:           rec.ID,
		WorkOrderID:  rec.WorkOrderID,
		TechnicianID: rec.TechnicianID,
		Notes:        rec.Notes,
	}
	if t := parseTime(rec.StartAt); t != nil {
		entry.StartAt = *t
	}
	entry.EndAt = parseTime(rec.EndAt)
	return entry
}

// parseTime parses an RFC3339 timestamp, returning nil for empty or
// malformed values. An unparseable timestamp renders as absent rather than
// failing the whole record.
func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

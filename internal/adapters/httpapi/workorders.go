package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/example/plumbops/internal/ports/secondary"
)

// workOrderDTO mirrors the API's work-order JSON.
type workOrderDTO struct {
	ID           string  `json:"id"`
	Code         string  `json:"code"`
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	Address      string  `json:"address,omitempty"`
	Status       string  `json:"status"`
	CustomerID   string  `json:"customerId"`
	TechnicianID *string `json:"technicianId"`
	ScheduledAt  string  `json:"scheduledAt,omitempty"`
	ArrivedAt    *string `json:"arrivedAt"`
	CreatedAt    string  `json:"createdAt,omitempty"`
	UpdatedAt    string  `json:"updatedAt,omitempty"`
}

type timeEntryDTO struct {
	ID           string  `json:"id"`
	WorkOrderID  string  `json:"workOrderId"`
	TechnicianID string  `json:"technicianId"`
	StartAt      string  `json:"startAt"`
	EndAt        *string `json:"endAt"`
	Notes        *string `json:"notes"`
}

// actionPaths maps action identifiers to their endpoint suffixes.
var actionPaths = map[string]string{
	"dispatch":      "dispatch",
	"startRoute":    "start-route",
	"arrive":        "arrive",
	"startService":  "start-service",
	"pauseService":  "pause-service",
	"resumeService": "resume-service",
	"finishService": "finish-service",
}

// WorkOrderGateway implements secondary.WorkOrderGateway over HTTP.
type WorkOrderGateway struct {
	client *Client
}

// NewWorkOrderGateway creates the work-order gateway.
func NewWorkOrderGateway(client *Client) *WorkOrderGateway {
	return &WorkOrderGateway{client: client}
}

var _ secondary.WorkOrderGateway = (*WorkOrderGateway)(nil)

// List retrieves all work orders.
func (g *WorkOrderGateway) List(ctx context.Context) ([]*secondary.WorkOrderRecord, error) {
	var raw json.RawMessage
	if err := g.client.do(ctx, http.MethodGet, "/WorkOrders", nil, nil, &raw); err != nil {
		return nil, err
	}
	var dtos []workOrderDTO
	if err := decodeCollection(raw, &dtos); err != nil {
		return nil, fmt.Errorf("failed to decode work order list: %w", err)
	}
	records := make([]*secondary.WorkOrderRecord, 0, len(dtos))
	for i := range dtos {
		records = append(records, workOrderToRecord(&dtos[i]))
	}
	return records, nil
}

// GetByID retrieves one work order.
func (g *WorkOrderGateway) GetByID(ctx context.Context, id string) (*secondary.WorkOrderRecord, error) {
	var dto workOrderDTO
	if err := g.client.do(ctx, http.MethodGet, "/WorkOrders/"+url.PathEscape(id), nil, nil, &dto); err != nil {
		return nil, err
	}
	return workOrderToRecord(&dto), nil
}

// TimeEntries retrieves the time entries for a work order.
func (g *WorkOrderGateway) TimeEntries(ctx context.Context, id string) ([]*secondary.TimeEntryRecord, error) {
	var raw json.RawMessage
	if err := g.client.do(ctx, http.MethodGet, "/WorkOrders/"+url.PathEscape(id)+"/time-entries", nil, nil, &raw); err != nil {
		return nil, err
	}
	var dtos []timeEntryDTO
	if err := decodeCollection(raw, &dtos); err != nil {
		return nil, fmt.Errorf("failed to decode time entries: %w", err)
	}
	records := make([]*secondary.TimeEntryRecord, 0, len(dtos))
	for _, dto := range dtos {
		rec := &secondary.TimeEntryRecord{
			ID:           dto.ID,
			WorkOrderID:  dto.WorkOrderID,
			TechnicianID: dto.TechnicianID,
			StartAt:      dto.StartAt,
		}
		if dto.EndAt != nil {
			rec.EndAt = *dto.EndAt
		}
		if dto.Notes != nil {
			rec.Notes = *dto.Notes
		}
		records = append(records, rec)
	}
	return records, nil
}

// Create creates a new work order.
func (g *WorkOrderGateway) Create(ctx context.Context, rec *secondary.WorkOrderCreateRecord) (*secondary.WorkOrderRecord, error) {
	body := map[string]any{
		"customerId":  rec.CustomerID,
		"title":       rec.Title,
		"description": rec.Description,
		"address":     rec.Address,
	}
	if rec.TechnicianID != "" {
		body["technicianId"] = rec.TechnicianID
	}
	if rec.ScheduledAt != "" {
		body["scheduledAt"] = rec.ScheduledAt
	}

	var dto workOrderDTO
	if err := g.client.do(ctx, http.MethodPost, "/WorkOrders", nil, body, &dto); err != nil {
		return nil, err
	}
	return workOrderToRecord(&dto), nil
}

// PerformAction calls the transition endpoint for action. The body carries
// only the fields the action uses; the server ignores the rest anyway but
// a minimal body keeps the wire honest.
func (g *WorkOrderGateway) PerformAction(ctx context.Context, id, action string, payload *secondary.ActionPayloadRecord) (*secondary.WorkOrderRecord, error) {
	suffix, ok := actionPaths[action]
	if !ok {
		return nil, fmt.Errorf("unknown work order action %q", action)
	}

	body := map[string]any{}
	if payload != nil {
		switch action {
		case "pauseService":
			if payload.Reason != "" {
				body["reason"] = payload.Reason
			}
		case "finishService":
			if payload.Summary != "" {
				body["summary"] = payload.Summary
			}
		case "startService", "resumeService":
			if payload.TechnicianID != "" {
				body["technicianId"] = payload.TechnicianID
			}
		case "startRoute":
			if payload.TargetLat != nil {
				body["targetLat"] = *payload.TargetLat
			}
			if payload.TargetLng != nil {
				body["targetLng"] = *payload.TargetLng
			}
		case "arrive":
			if payload.AtUTC != "" {
				body["atUtc"] = payload.AtUTC
			}
		}
	}

	var dto workOrderDTO
	err := g.client.do(ctx, http.MethodPost, "/WorkOrders/"+url.PathEscape(id)+"/"+suffix, nil, body, &dto)
	if err != nil {
		return nil, err
	}
	if dto.ID == "" {
		// Some transition endpoints answer 204; the caller re-fetches.
		return nil, nil
	}
	return workOrderToRecord(&dto), nil
}

func workOrderToRecord(dto *workOrderDTO) *secondary.WorkOrderRecord {
	rec := &secondary.WorkOrderRecord{
		ID:          dto.ID,
		Code:        dto.Code,
		Title:       dto.Title,
		Description: dto.Description,
		Address:     dto.Address,
		Status:      dto.Status,
		CustomerID:  dto.CustomerID,
		ScheduledAt: dto.ScheduledAt,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	}
	if dto.TechnicianID != nil {
		rec.TechnicianID = *dto.TechnicianID
	}
	if dto.ArrivedAt != nil {
		rec.ArrivedAt = *dto.ArrivedAt
	}
	return rec
}

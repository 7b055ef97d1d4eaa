package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/example/plumbops/internal/ports/secondary"
)

type itemDTO struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	SKU       string   `json:"sku,omitempty"`
	Type      string   `json:"type"`
	Unit      string   `json:"unit,omitempty"`
	UnitPrice float64  `json:"unitPrice"`
	TaxRate   float64  `json:"taxRate"`
	Stock     *float64 `json:"stock"`
}

// ItemGateway implements secondary.ItemGateway over HTTP.
type ItemGateway struct {
	client *Client
}

// NewItemGateway creates the price-book gateway.
func NewItemGateway(client *Client) *ItemGateway {
	return &ItemGateway{client: client}
}

var _ secondary.ItemGateway = (*ItemGateway)(nil)

// List retrieves price-book entries matching the filters.
func (g *ItemGateway) List(ctx context.Context, filters secondary.ItemFilters) ([]*secondary.ItemRecord, error) {
	query := url.Values{}
	if filters.Search != "" {
		query.Set("search", filters.Search)
	}
	if filters.Type != "" {
		query.Set("type", filters.Type)
	}

	var raw json.RawMessage
	if err := g.client.do(ctx, http.MethodGet, "/Items", query, nil, &raw); err != nil {
		return nil, err
	}
	var dtos []itemDTO
	if err := decodeCollection(raw, &dtos); err != nil {
		return nil, fmt.Errorf("failed to decode item list: %w", err)
	}
	records := make([]*secondary.ItemRecord, 0, len(dtos))
	for i := range dtos {
		records = append(records, itemToRecord(&dtos[i]))
	}
	return records, nil
}

// GetByID retrieves one price-book entry.
func (g *ItemGateway) GetByID(ctx context.Context, id string) (*secondary.ItemRecord, error) {
	var dto itemDTO
	if err := g.client.do(ctx, http.MethodGet, "/Items/"+url.PathEscape(id), nil, nil, &dto); err != nil {
		return nil, err
	}
	return itemToRecord(&dto), nil
}

// Create creates a price-book entry.
func (g *ItemGateway) Create(ctx context.Context, rec *secondary.ItemRecord) (*secondary.ItemRecord, error) {
	var dto itemDTO
	if err := g.client.do(ctx, http.MethodPost, "/Items", nil, recordToItemBody(rec), &dto); err != nil {
		return nil, err
	}
	return itemToRecord(&dto), nil
}

// Update updates a price-book entry. The endpoint answers with no body.
func (g *ItemGateway) Update(ctx context.Context, rec *secondary.ItemRecord) error {
	return g.client.do(ctx, http.MethodPut, "/Items/"+url.PathEscape(rec.ID), nil, recordToItemBody(rec), nil)
}

// Delete removes a price-book entry.
func (g *ItemGateway) Delete(ctx context.Context, id string) error {
	return g.client.do(ctx, http.MethodDelete, "/Items/"+url.PathEscape(id), nil, nil, nil)
}

func recordToItemBody(rec *secondary.ItemRecord) map[string]any {
	body := map[string]any{
		"name":      rec.Name,
		"type":      rec.Type,
		"unitPrice": rec.UnitPrice,
		"taxRate":   rec.TaxRate,
	}
	if rec.SKU != "" {
		body["sku"] = rec.SKU
	}
	if rec.Unit != "" {
		body["unit"] = rec.Unit
	}
	if rec.Stock != nil {
		body["stock"] = *rec.Stock
	}
	return body
}

func itemToRecord(dto *itemDTO) *secondary.ItemRecord {
	return &secondary.ItemRecord{
		ID:        dto.ID,
		Name:      dto.Name,
		SKU:       dto.SKU,
		Type:      dto.Type,
		Unit:      dto.Unit,
		UnitPrice: dto.UnitPrice,
		TaxRate:   dto.TaxRate,
		Stock:     dto.Stock,
	}
}

package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/example/plumbops/internal/ports/secondary"
)

// partyDTO is deliberately loose: different deployments fill different name
// fields, so label resolution happens here, once.
type partyDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// DirectoryGateway implements secondary.DirectoryGateway over HTTP.
type DirectoryGateway struct {
	client *Client
}

// NewDirectoryGateway creates the directory gateway.
func NewDirectoryGateway(client *Client) *DirectoryGateway {
	return &DirectoryGateway{client: client}
}

var _ secondary.DirectoryGateway = (*DirectoryGateway)(nil)

// SearchCustomers looks up customers by free text.
func (g *DirectoryGateway) SearchCustomers(ctx context.Context, query string, pageSize int) ([]*secondary.PartyRecord, error) {
	return g.search(ctx, "/Customers", query, pageSize, "customer")
}

// SearchTechnicians looks up technicians by free text.
func (g *DirectoryGateway) SearchTechnicians(ctx context.Context, query string, pageSize int) ([]*secondary.PartyRecord, error) {
	return g.search(ctx, "/Technicians", query, pageSize, "technician")
}

func (g *DirectoryGateway) search(ctx context.Context, path, query string, pageSize int, fallbackLabel string) ([]*secondary.PartyRecord, error) {
	params := url.Values{}
	params.Set("search", query)
	params.Set("pageSize", strconv.Itoa(pageSize))

	var raw json.RawMessage
	if err := g.client.do(ctx, http.MethodGet, path, params, nil, &raw); err != nil {
		return nil, err
	}
	var dtos []partyDTO
	if err := decodeCollection(raw, &dtos); err != nil {
		return nil, fmt.Errorf("failed to decode %s results: %w", path, err)
	}

	records := make([]*secondary.PartyRecord, 0, len(dtos))
	for _, dto := range dtos {
		records = append(records, &secondary.PartyRecord{
			ID:       dto.ID,
			Label:    firstNonEmpty(dto.Name, dto.FullName, dto.Email, fallbackLabel),
			Subtitle: firstNonEmpty(dto.Email, dto.Phone),
		})
	}
	return records, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

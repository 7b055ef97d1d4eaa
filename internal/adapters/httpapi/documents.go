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

type documentDTO struct {
	ID       string  `json:"id"`
	Number   string  `json:"number"`
	Type     string  `json:"type"`
	Status   string  `json:"status"`
	Currency string  `json:"currency"`
	Subtotal float64 `json:"subtotal"`
	TaxTotal float64 `json:"taxTotal"`
	Total    float64 `json:"total"`
}

type documentLineDTO struct {
	ID          int64   `json:"id"`
	DocumentID  string  `json:"documentId"`
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
	Qty         float64 `json:"qty"`
	UnitPrice   float64 `json:"unitPrice"`
	TaxRate     float64 `json:"taxRate"`
	Total       float64 `json:"total"`
}

// documentDetailDTO mirrors GET /Documents/:id, which nests the header
// under "doc" alongside its lines.
type documentDetailDTO struct {
	Doc   documentDTO       `json:"doc"`
	Lines []documentLineDTO `json:"lines"`
}

// DocumentGateway implements secondary.DocumentGateway over HTTP.
type DocumentGateway struct {
	client *Client
}

// NewDocumentGateway creates the document gateway.
func NewDocumentGateway(client *Client) *DocumentGateway {
	return &DocumentGateway{client: client}
}

var _ secondary.DocumentGateway = (*DocumentGateway)(nil)

// List retrieves document headers.
func (g *DocumentGateway) List(ctx context.Context) ([]*secondary.DocumentRecord, error) {
	var raw json.RawMessage
	if err := g.client.do(ctx, http.MethodGet, "/Documents", nil, nil, &raw); err != nil {
		return nil, err
	}
	var dtos []documentDTO
	if err := decodeCollection(raw, &dtos); err != nil {
		return nil, fmt.Errorf("failed to decode document list: %w", err)
	}
	records := make([]*secondary.DocumentRecord, 0, len(dtos))
	for i := range dtos {
		records = append(records, documentToRecord(&dtos[i]))
	}
	return records, nil
}

// GetByID retrieves a document header with its lines.
func (g *DocumentGateway) GetByID(ctx context.Context, id string) (*secondary.DocumentRecord, []*secondary.DocumentLineRecord, error) {
	var dto documentDetailDTO
	if err := g.client.do(ctx, http.MethodGet, "/Documents/"+url.PathEscape(id), nil, nil, &dto); err != nil {
		return nil, nil, err
	}

	lines := make([]*secondary.DocumentLineRecord, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		lines = append(lines, &secondary.DocumentLineRecord{
			ID:          l.ID,
			DocumentID:  l.DocumentID,
			Kind:        l.Kind,
			Description: l.Description,
			Qty:         l.Qty,
			UnitPrice:   l.UnitPrice,
			TaxRate:     l.TaxRate,
			Total:       l.Total,
		})
	}
	return documentToRecord(&dto.Doc), lines, nil
}

// Create creates a new document.
func (g *DocumentGateway) Create(ctx context.Context, rec *secondary.DocumentCreateRecord) (*secondary.DocumentRecord, error) {
	body := map[string]any{
		"type":       rec.Type,
		"customerId": rec.CustomerID,
	}
	if rec.Currency != "" {
		body["currency"] = rec.Currency
	}

	var dto documentDTO
	if err := g.client.do(ctx, http.MethodPost, "/Documents", nil, body, &dto); err != nil {
		return nil, err
	}
	return documentToRecord(&dto), nil
}

// AddLine appends a line to a document.
func (g *DocumentGateway) AddLine(ctx context.Context, documentID string, rec *secondary.DocumentLineCreateRecord) error {
	body := map[string]any{
		"kind":        rec.Kind,
		"description": rec.Description,
		"qty":         rec.Qty,
		"unitPrice":   rec.UnitPrice,
		"taxRate":     rec.TaxRate,
	}
	if rec.ItemID != "" {
		body["itemId"] = rec.ItemID
	}
	return g.client.do(ctx, http.MethodPost, "/Documents/"+url.PathEscape(documentID)+"/lines", nil, body, nil)
}

// DeleteLine removes a line from a document.
func (g *DocumentGateway) DeleteLine(ctx context.Context, documentID string, lineID int64) error {
	path := "/Documents/" + url.PathEscape(documentID) + "/lines/" + strconv.FormatInt(lineID, 10)
	return g.client.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// PromoteToInvoice converts a quote into a new invoice.
func (g *DocumentGateway) PromoteToInvoice(ctx context.Context, documentID string) (string, error) {
	var resp struct {
		InvoiceID string `json:"invoiceId"`
	}
	err := g.client.do(ctx, http.MethodPost, "/Documents/"+url.PathEscape(documentID)+"/promote-to-invoice", nil, map[string]any{}, &resp)
	if err != nil {
		return "", err
	}
	return resp.InvoiceID, nil
}

func documentToRecord(dto *documentDTO) *secondary.DocumentRecord {
	return &secondary.DocumentRecord{
		ID:       dto.ID,
		Number:   dto.Number,
		Type:     dto.Type,
		Status:   dto.Status,
		Currency: dto.Currency,
		Subtotal: dto.Subtotal,
		TaxTotal: dto.TaxTotal,
		Total:    dto.Total,
	}
}

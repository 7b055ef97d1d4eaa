package primary

import (
	"context"

	"github.com/example/plumbops/internal/core/document"
)

// Document is the view of a quote or invoice header. The monetary fields
// are the server's persisted values, never a local computation.
type Document struct {
	ID       string
	Number   string
	Type     document.Type
	Status   string
	Currency string
	Subtotal float64
	TaxTotal float64
	Total    float64
}

// DocumentLine is the view of a priced line.
type DocumentLine struct {
	ID          int64
	DocumentID  string
	Kind        document.LineKind
	Description string
	Qty         float64
	UnitPrice   float64
	TaxRate     float64
	Total       float64
}

// DocumentDetail bundles a document with its lines plus a client-side totals
// preview recomputed from the lines. PreviewTotals is display-only; Document
// holds the authoritative figures once persisted.
type DocumentDetail struct {
	Document      *Document
	Lines         []*DocumentLine
	PreviewTotals document.Totals
}

// CreateDocumentRequest carries the input for document creation.
type CreateDocumentRequest struct {
	Type       document.Type
	CustomerID string
	Currency   string
}

// AddLineRequest carries the input for adding a line to a document.
type AddLineRequest struct {
	DocumentID  string
	Kind        document.LineKind
	Description string
	Qty         float64
	UnitPrice   float64
	TaxRate     float64
	ItemID      string // optional price-book reference that prefilled the line
}

// DocumentService drives quotes and invoices.
type DocumentService interface {
	ListDocuments(ctx context.Context) ([]*Document, error)
	GetDocument(ctx context.Context, id string) (*DocumentDetail, error)
	CreateDocument(ctx context.Context, req CreateDocumentRequest) (*Document, error)

	// AddLine validates the line client-side, persists it and returns the
	// refreshed detail with server-computed totals.
	AddLine(ctx context.Context, req AddLineRequest) (*DocumentDetail, error)

	// RemoveLine deletes a line and returns the refreshed detail.
	RemoveLine(ctx context.Context, documentID string, lineID int64) (*DocumentDetail, error)

	// PromoteToInvoice converts a quote into a new invoice and returns the
	// invoice id. One-way and not idempotent: calling it twice produces two
	// invoices (or a server-side rejection), never a silent no-op.
	PromoteToInvoice(ctx context.Context, documentID string) (string, error)
}

package app

import (
	"context"
	"testing"

	"github.com/example/plumbops/internal/core/document"
	"github.com/example/plumbops/internal/ports/primary"
	"github.com/example/plumbops/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockDocumentGateway implements secondary.DocumentGateway for testing.
type mockDocumentGateway struct {
	docs  map[string]*secondary.DocumentRecord
	lines map[string][]*secondary.DocumentLineRecord

	addLineErr error
	promoteErr error

	addLineCalls int
	promoteCalls int
	nextLineID   int64
}

func newMockDocumentGateway() *mockDocumentGateway {
	return &mockDocumentGateway{
		docs:  make(map[string]*secondary.DocumentRecord),
		lines: make(map[string][]*secondary.DocumentLineRecord),
	}
}

func (m *mockDocumentGateway) List(ctx context.Context) ([]*secondary.DocumentRecord, error) {
	var out []*secondary.DocumentRecord
	for _, d := range m.docs {
		out = append(out, d)
	}
	return out, nil
}

func (m *mockDocumentGateway) GetByID(ctx context.Context, id string) (*secondary.DocumentRecord, []*secondary.DocumentLineRecord, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, nil, secondary.ErrNotFound
	}
	return doc, m.lines[id], nil
}

func (m *mockDocumentGateway) Create(ctx context.Context, rec *secondary.DocumentCreateRecord) (*secondary.DocumentRecord, error) {
	created := &secondary.DocumentRecord{
		ID:       "doc-new",
		Number:   "Q-100",
		Type:     rec.Type,
		Status:   "Draft",
		Currency: rec.Currency,
	}
	m.docs[created.ID] = created
	return created, nil
}

func (m *mockDocumentGateway) AddLine(ctx context.Context, documentID string, rec *secondary.DocumentLineCreateRecord) error {
	m.addLineCalls++
	if m.addLineErr != nil {
		return m.addLineErr
	}
	m.nextLineID++
	m.lines[documentID] = append(m.lines[documentID], &secondary.DocumentLineRecord{
		ID:          m.nextLineID,
		DocumentID:  documentID,
		Kind:        rec.Kind,
		Description: rec.Description,
		Qty:         rec.Qty,
		UnitPrice:   rec.UnitPrice,
		TaxRate:     rec.TaxRate,
		Total:       document.LineTotal(rec.Qty, rec.UnitPrice, rec.TaxRate),
	})
	return nil
}

func (m *mockDocumentGateway) DeleteLine(ctx context.Context, documentID string, lineID int64) error {
	lines := m.lines[documentID]
	for i, l := range lines {
		if l.ID == lineID {
			m.lines[documentID] = append(lines[:i], lines[i+1:]...)
			return nil
		}
	}
	return secondary.ErrNotFound
}

func (m *mockDocumentGateway) PromoteToInvoice(ctx context.Context, documentID string) (string, error) {
	m.promoteCalls++
	if m.promoteErr != nil {
		return "", m.promoteErr
	}
	return "inv-" + documentID, nil
}

// ============================================================================
// Test Helper
// ============================================================================

func newDocumentTestService() (*DocumentServiceImpl, *mockDocumentGateway, *mockCache) {
	gateway := newMockDocumentGateway()
	cache := newMockCache()
	return NewDocumentService(gateway, cache), gateway, cache
}

func quoteDoc(id string) *secondary.DocumentRecord {
	return &secondary.DocumentRecord{
		ID:       id,
		Number:   "Q-001",
		Type:     string(document.TypeQuote),
		Status:   "Draft",
		Currency: "EUR",
	}
}

// ============================================================================
// AddLine Tests
// ============================================================================

func TestAddLine_GuardRejectsBeforeNetwork(t *testing.T) {
	service, gateway, _ := newDocumentTestService()
	gateway.docs["doc-1"] = quoteDoc("doc-1")

	cases := []struct {
		name string
		req  primary.AddLineRequest
	}{
		{"missing description", primary.AddLineRequest{DocumentID: "doc-1", Kind: document.LineKindMaterial, Qty: 1}},
		{"negative qty", primary.AddLineRequest{DocumentID: "doc-1", Kind: document.LineKindMaterial, Description: "pipe", Qty: -1}},
		{"tax above 100", primary.AddLineRequest{DocumentID: "doc-1", Kind: document.LineKindMaterial, Description: "pipe", Qty: 1, TaxRate: 120}},
		{"unknown kind", primary.AddLineRequest{DocumentID: "doc-1", Kind: "Misc", Description: "pipe", Qty: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := service.AddLine(context.Background(), tc.req); err == nil {
				t.Error("expected a validation error")
			}
		})
	}

	if gateway.addLineCalls != 0 {
		t.Errorf("gateway must not be called for rejected lines, got %d calls", gateway.addLineCalls)
	}
}

func TestAddLine_ReturnsRefreshedDetailWithPreviewTotals(t *testing.T) {
	service, gateway, cache := newDocumentTestService()
	gateway.docs["doc-1"] = quoteDoc("doc-1")

	detail, err := service.AddLine(context.Background(), primary.AddLineRequest{
		DocumentID:  "doc-1",
		Kind:        document.LineKindMaterial,
		Description: "copper pipe",
		Qty:         2,
		UnitPrice:   10,
		TaxRate:     21,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(detail.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(detail.Lines))
	}
	if detail.PreviewTotals.Total != 24.20 {
		t.Errorf("expected preview total 24.20, got %v", detail.PreviewTotals.Total)
	}
	if !cache.wasInvalidated(cacheKeyDocument("doc-1")) || !cache.wasInvalidated(cacheKeyDocumentList) {
		t.Error("expected document and list caches to be invalidated")
	}
}

// ============================================================================
// RemoveLine Tests
// ============================================================================

func TestRemoveLine_RefreshesDetail(t *testing.T) {
	service, gateway, _ := newDocumentTestService()
	gateway.docs["doc-1"] = quoteDoc("doc-1")
	gateway.lines["doc-1"] = []*secondary.DocumentLineRecord{
		{ID: 7, DocumentID: "doc-1", Kind: "Labor", Description: "install", Qty: 1, UnitPrice: 50},
	}

	detail, err := service.RemoveLine(context.Background(), "doc-1", 7)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(detail.Lines) != 0 {
		t.Errorf("expected no lines after removal, got %d", len(detail.Lines))
	}
}

// ============================================================================
// PromoteToInvoice Tests
// ============================================================================

func TestPromoteToInvoice_ReturnsInvoiceID(t *testing.T) {
	service, gateway, cache := newDocumentTestService()
	gateway.docs["doc-1"] = quoteDoc("doc-1")

	invoiceID, err := service.PromoteToInvoice(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if invoiceID != "inv-doc-1" {
		t.Errorf("expected inv-doc-1, got %q", invoiceID)
	}
	if !cache.wasInvalidated(cacheKeyDocumentList) {
		t.Error("expected the list cache to be invalidated")
	}
}

func TestPromoteToInvoice_RejectsInvoices(t *testing.T) {
	service, gateway, _ := newDocumentTestService()
	doc := quoteDoc("doc-1")
	doc.Type = string(document.TypeInvoice)
	gateway.docs["doc-1"] = doc

	if _, err := service.PromoteToInvoice(context.Background(), "doc-1"); err == nil {
		t.Fatal("expected an error promoting an invoice")
	}
	if gateway.promoteCalls != 0 {
		t.Error("gateway must not be called when the guard rejects")
	}
}

// ============================================================================
// CreateDocument Tests
// ============================================================================

func TestCreateDocument_DefaultsToQuote(t *testing.T) {
	service, _, _ := newDocumentTestService()

	doc, err := service.CreateDocument(context.Background(), primary.CreateDocumentRequest{
		CustomerID: "cust-1",
		Currency:   "EUR",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if doc.Type != document.TypeQuote {
		t.Errorf("expected Quote, got %s", doc.Type)
	}
}

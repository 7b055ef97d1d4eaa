package app

import (
	"context"
	"fmt"

	"github.com/example/plumbops/internal/core/document"
	"github.com/example/plumbops/internal/ports/primary"
	"github.com/example/plumbops/internal/ports/secondary"
)

const cacheKeyDocumentList = "documents:list"

func cacheKeyDocument(id string) string {
	return "document:" + id
}

// DocumentServiceImpl implements the DocumentService interface.
type DocumentServiceImpl struct {
	gateway secondary.DocumentGateway
	cache   secondary.ReadCache
}

// NewDocumentService creates a new DocumentService with injected dependencies.
func NewDocumentService(gateway secondary.DocumentGateway, cache secondary.ReadCache) *DocumentServiceImpl {
	return &DocumentServiceImpl{gateway: gateway, cache: cache}
}

var _ primary.DocumentService = (*DocumentServiceImpl)(nil)

// ListDocuments returns document headers, served from cache when fresh.
func (s *DocumentServiceImpl) ListDocuments(ctx context.Context) ([]*primary.Document, error) {
	if v, ok := s.cache.Get(cacheKeyDocumentList); ok {
		return v.([]*primary.Document), nil
	}

	seq := s.cache.Begin()
	records, err := s.gateway.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	docs := make([]*primary.Document, 0, len(records))
	for _, rec := range records {
		docs = append(docs, recordToDocument(rec))
	}
	s.cache.Put(cacheKeyDocumentList, docs, seq)
	return docs, nil
}

// GetDocument returns a document with its lines and a preview of the totals
// recomputed client-side from those lines.
func (s *DocumentServiceImpl) GetDocument(ctx context.Context, id string) (*primary.DocumentDetail, error) {
	if v, ok := s.cache.Get(cacheKeyDocument(id)); ok {
		return v.(*primary.DocumentDetail), nil
	}
	return s.fetchDocument(ctx, id)
}

func (s *DocumentServiceImpl) fetchDocument(ctx context.Context, id string) (*primary.DocumentDetail, error) {
	seq := s.cache.Begin()
	doc, lines, err := s.gateway.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", id, err)
	}

	detail := &primary.DocumentDetail{
		Document: recordToDocument(doc),
		Lines:    make([]*primary.DocumentLine, 0, len(lines)),
	}
	inputs := make([]document.LineInput, 0, len(lines))
	for _, l := range lines {
		detail.Lines = append(detail.Lines, recordToDocumentLine(l))
		inputs = append(inputs, document.LineInput{Qty: l.Qty, UnitPrice: l.UnitPrice, TaxRate: l.TaxRate})
	}
	detail.PreviewTotals = document.DocumentTotals(inputs)

	s.cache.Put(cacheKeyDocument(id), detail, seq)
	return detail, nil
}

// CreateDocument creates a new document, normally a Quote.
func (s *DocumentServiceImpl) CreateDocument(ctx context.Context, req primary.CreateDocumentRequest) (*primary.Document, error) {
	docType := req.Type
	if docType == "" {
		docType = document.TypeQuote
	}

	rec, err := s.gateway.Create(ctx, &secondary.DocumentCreateRecord{
		Type:       string(docType),
		CustomerID: req.CustomerID,
		Currency:   req.Currency,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	s.cache.Invalidate(cacheKeyDocumentList)
	return recordToDocument(rec), nil
}

// AddLine validates and persists a new line, then returns the refreshed
// detail carrying the server's recomputed totals.
func (s *DocumentServiceImpl) AddLine(ctx context.Context, req primary.AddLineRequest) (*primary.DocumentDetail, error) {
	guard := document.CanAddLine(document.AddLineContext{
		DocumentID:  req.DocumentID,
		Kind:        req.Kind,
		Description: req.Description,
		Qty:         req.Qty,
		TaxRate:     req.TaxRate,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	err := s.gateway.AddLine(ctx, req.DocumentID, &secondary.DocumentLineCreateRecord{
		Kind:        string(req.Kind),
		Description: req.Description,
		Qty:         req.Qty,
		UnitPrice:   req.UnitPrice,
		TaxRate:     req.TaxRate,
		ItemID:      req.ItemID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add line to document %s: %w", req.DocumentID, err)
	}

	s.cache.Invalidate(cacheKeyDocument(req.DocumentID), cacheKeyDocumentList)
	return s.fetchDocument(ctx, req.DocumentID)
}

// RemoveLine deletes a line and returns the refreshed detail.
func (s *DocumentServiceImpl) RemoveLine(ctx context.Context, documentID string, lineID int64) (*primary.DocumentDetail, error) {
	if err := s.gateway.DeleteLine(ctx, documentID, lineID); err != nil {
		return nil, fmt.Errorf("failed to delete line %d from document %s: %w", lineID, documentID, err)
	}

	s.cache.Invalidate(cacheKeyDocument(documentID), cacheKeyDocumentList)
	return s.fetchDocument(ctx, documentID)
}

// PromoteToInvoice converts a quote into a new invoice. The call is one-way
// and not idempotent; the client only guards the obvious case of promoting
// an invoice, everything else is the server's decision.
func (s *DocumentServiceImpl) PromoteToInvoice(ctx context.Context, documentID string) (string, error) {
	detail, err := s.GetDocument(ctx, documentID)
	if err != nil {
		return "", err
	}

	guard := document.CanPromote(document.PromoteContext{
		DocumentID: documentID,
		Type:       detail.Document.Type,
	})
	if err := guard.Error(); err != nil {
		return "", err
	}

	invoiceID, err := s.gateway.PromoteToInvoice(ctx, documentID)
	if err != nil {
		return "", fmt.Errorf("failed to promote document %s: %w", documentID, err)
	}

	s.cache.Invalidate(cacheKeyDocumentList, cacheKeyDocument(documentID))
	return invoiceID, nil
}

func recordToDocument(rec *secondary.DocumentRecord) *primary.Document {
	return &primary.Document{
		ID:       rec.ID,
		Number:   rec.Number,
		Type:     document.Type(rec.Type),
		Status:   rec.Status,
		Currency: rec.Currency,
		Subtotal: rec.Subtotal,
		TaxTotal: rec.TaxTotal,
		Total:    rec.Total,
	}
}

func recordToDocumentLine(rec *secondary.DocumentLineRecord) *primary.DocumentLine {
	return &primary.DocumentLine{
		ID:          rec.ID,
		DocumentID:  rec.DocumentID,
		Kind:        document.LineKind(rec.Kind),
		Description: rec.Description,
		Qty:         rec.Qty,
		UnitPrice:   rec.UnitPrice,
		TaxRate:     rec.TaxRate,
		Total:       rec.Total,
	}
}

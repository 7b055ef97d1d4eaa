// Package document contains the pure business logic for quotes and invoices:
// line/document total calculation and promotion rules. No I/O.
package document

import "math"

// Type distinguishes the two document kinds.
type Type string

const (
	TypeQuote   Type = "Quote"
	TypeInvoice Type = "Invoice"
)

// LineKind classifies a document line.
type LineKind string

const (
	LineKindLabor    LineKind = "Labor"
	LineKindMaterial LineKind = "Material"
	LineKindOther    LineKind = "Other"
)

// LineInput carries the editable fields a total is derived from.
type LineInput struct {
	Qty       float64
	UnitPrice float64
	TaxRate   float64 // percentage, 0-100
}

// Totals aggregates a document's derived monetary fields.
type Totals struct {
	Subtotal float64
	TaxTotal float64
	Total    float64
}

// Round2 rounds to two decimal places, half away from zero. Currency rounding;
// must agree with the server's rounding for previews to match persisted values.
func Round2(v float64) float64 {
	return math.Trunc(v*100+math.Copysign(0.5, v)) / 100
}

// LineTotal computes the tax-inclusive total of a single line, rounded to two
// decimals. This is a preview; the server recomputes it authoritatively when
// the line is persisted.
func LineTotal(qty, unitPrice, taxRate float64) float64 {
	return Round2(qty * unitPrice * (1 + taxRate/100))
}

// DocumentTotals aggregates document-level totals from its lines. Each line's
// pre-tax amount and tax amount are rounded to two decimals before summing;
// the grand total is the sum of the two aggregates. Rounding per line keeps
// the preview in penny agreement with the server, which stores rounded line
// values.
func DocumentTotals(lines []LineInput) Totals {
	var t Totals
	for _, l := range lines {
		net := Round2(l.Qty * l.UnitPrice)
		tax := Round2(l.Qty * l.UnitPrice * l.TaxRate / 100)
		t.Subtotal = Round2(t.Subtotal + net)
		t.TaxTotal = Round2(t.TaxTotal + tax)
	}
	t.Total = Round2(t.Subtotal + t.TaxTotal)
	return t
}

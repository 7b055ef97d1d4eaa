package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name      string
		qty       float64
		unitPrice float64
		taxRate   float64
		want      float64
	}{
		{"two units with 21 percent tax", 2, 10.00, 21, 24.20},
		{"zero quantity", 0, 10, 21, 0.00},
		{"no tax", 1, 10, 0, 10.00},
		{"fractional quantity", 1.5, 9.99, 10.5, 16.56},
		{"half cent rounds away from zero", 1, 0.125, 0, 0.13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, LineTotal(tt.qty, tt.unitPrice, tt.taxRate), 1e-9)
		})
	}
}

func TestRound2(t *testing.T) {
	assert.InDelta(t, 1.13, Round2(1.125), 1e-9)
	assert.InDelta(t, -1.13, Round2(-1.125), 1e-9)
	assert.InDelta(t, 0.0, Round2(0.004), 1e-9)
}

func TestDocumentTotals(t *testing.T) {
	lines := []LineInput{
		{Qty: 1, UnitPrice: 100, TaxRate: 21},
		{Qty: 2, UnitPrice: 50, TaxRate: 0},
	}

	got := DocumentTotals(lines)
	assert.InDelta(t, 200.0, got.Subtotal, 1e-9)
	assert.InDelta(t, 21.0, got.TaxTotal, 1e-9)
	assert.InDelta(t, 221.0, got.Total, 1e-9)
}

func TestDocumentTotalsEmpty(t *testing.T) {
	got := DocumentTotals(nil)
	assert.Zero(t, got.Subtotal)
	assert.Zero(t, got.TaxTotal)
	assert.Zero(t, got.Total)
}

func TestDocumentTotalsRoundsPerLine(t *testing.T) {
	// Each line nets 0.333... pre-tax; rounding per line (0.33 + 0.33)
	// differs from rounding the raw sum (0.67). The per-line order is the
	// contract the server follows.
	lines := []LineInput{
		{Qty: 1.0 / 3.0, UnitPrice: 1, TaxRate: 0},
		{Qty: 1.0 / 3.0, UnitPrice: 1, TaxRate: 0},
	}
	got := DocumentTotals(lines)
	assert.InDelta(t, 0.66, got.Subtotal, 1e-9)
	assert.InDelta(t, 0.66, got.Total, 1e-9)
}

package document

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// AddLineContext provides context for line-addition guards.
type AddLineContext struct {
	DocumentID  string
	Kind        LineKind
	Description string
	Qty         float64
	TaxRate     float64
}

// PromoteContext provides context for quote-promotion guards.
type PromoteContext struct {
	DocumentID string
	Type       Type
}

// CanAddLine evaluates whether a line can be added to a document.
// Rules:
// - Description is required
// - Quantity must not be negative
// - Tax rate is a percentage between 0 and 100
func CanAddLine(ctx AddLineContext) GuardResult {
	if ctx.Description == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "a description is required to add a line",
		}
	}
	if ctx.Qty < 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("quantity must not be negative (got %v)", ctx.Qty),
		}
	}
	if ctx.TaxRate < 0 || ctx.TaxRate > 100 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("tax rate must be between 0 and 100 (got %v)", ctx.TaxRate),
		}
	}
	switch ctx.Kind {
	case LineKindLabor, LineKindMaterial, LineKindOther:
	default:
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("unknown line kind %q", ctx.Kind),
		}
	}
	return GuardResult{Allowed: true}
}

// CanPromote evaluates whether a document can be promoted to an invoice.
// Promotion is one-way and not idempotent: the server creates a new invoice
// on every accepted call and the original quote is left unchanged. The only
// client-side rule is that invoices cannot be promoted again.
func CanPromote(ctx PromoteContext) GuardResult {
	if ctx.Type != TypeQuote {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("only quotes can be promoted to invoices (document %s is a %s)", ctx.DocumentID, ctx.Type),
		}
	}
	return GuardResult{Allowed: true}
}

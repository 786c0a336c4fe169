package checkout

import "fmt"

// Kind names a submission failure class. Every failure the pipeline can
// produce carries exactly one of these.
type Kind string

const (
	// KindValidation: delivery info failed the analysis-driven schema, or
	// the cart is empty. Nothing was written; fully recoverable.
	KindValidation Kind = "validation_error"
	// KindAuthenticationRequired: no signed-in identity. No remote call was
	// made; the caller should authenticate and resubmit the unchanged cart.
	KindAuthenticationRequired Kind = "authentication_required"
	// KindOrderCreate: the order insert failed. No line items were
	// attempted and the cart is intact; resubmitting starts a fresh order.
	KindOrderCreate Kind = "order_create_error"
	// KindLineItemCreate: the order insert succeeded but the line-item
	// batch failed, leaving an orphaned pending order server-side. The cart
	// is intact so the selection is not lost.
	KindLineItemCreate Kind = "line_item_create_error"
)

// Error is the structured failure handed back to the caller. Fields carries
// per-field validation messages and is nil for other kinds.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

package cart

import "errors"

var (
	// ErrEmptyCart is returned when confirming an order with no line items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrSummaryHidden is returned when closing a summary that is not shown.
	ErrSummaryHidden = errors.New("order summary is not visible")
)

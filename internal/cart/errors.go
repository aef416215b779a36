package cart

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuantity rejects adds with a quantity below 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrProductOutOfStock rejects adds when the selection has no sellable
	// stock at all; no zero-effect line is ever created.
	ErrProductOutOfStock = errors.New("product is out of stock")

	// ErrLineNotFound is returned by quantity updates against a selection
	// that is not in the cart.
	ErrLineNotFound = errors.New("cart line not found")
)

// StockUnavailableError reports a quantity update that asked for more units
// than the selection has. Available carries the exact count so the caller
// can tell the shopper "only N available" instead of silently clamping.
type StockUnavailableError struct {
	Available int
}

func (e *StockUnavailableError) Error() string {
	return fmt.Sprintf("only %d available", e.Available)
}

// internal/services/errors.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors shared across services. Handlers map these onto the
// response envelope; anything unrecognized becomes a generic 500.
var (
	ErrNotFound          = errors.New("record not found")
	ErrConflict          = errors.New("conflict")
	ErrForbidden         = errors.New("forbidden")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrCircularReference = errors.New("category cannot be its own ancestor")
	ErrCategoryInUse     = errors.New("category still has child categories or products")
	ErrInvalidTransition = errors.New("order status transition not allowed")
	ErrInactiveProduct   = errors.New("product is not available")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrNothingToUpdate   = errors.New("no fields to update")
)

// StockShortfall describes one cart line whose requested quantity exceeds
// availability.
type StockShortfall struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Requested   int       `json:"requested"`
	Available   int       `json:"available"`
}

// OutOfStockError carries every violating line, not just the first.
type OutOfStockError struct {
	Items []StockShortfall `json:"items"`
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %d item(s)", len(e.Items))
}

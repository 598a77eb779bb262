// internal/models/cart.go
package models

import (
	"github.com/google/uuid"
)

type Cart struct {
	BaseModel
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	Total  float64   `json:"total" gorm:"type:decimal(10,2);default:0"`

	// Relationships
	Items []CartItem `json:"items,omitempty" gorm:"foreignKey:CartID"`
}

// CartItem captures the price at the moment the product entered the cart.
type CartItem struct {
	BaseModel
	CartID      uuid.UUID `json:"cart_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_product"`
	ProductID   uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_product"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	PriceAtTime float64   `json:"price_at_time" gorm:"type:decimal(10,2);not null"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (i *CartItem) LineTotal() float64 {
	return i.PriceAtTime * float64(i.Quantity)
}

// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	BaseModel
	UserID           uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	Status           OrderStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Subtotal         float64     `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	Discount         float64     `json:"discount" gorm:"type:decimal(10,2);default:0"`
	Tax              float64     `json:"tax" gorm:"type:decimal(10,2);default:0"`
	ShippingFee      float64     `json:"shipping_fee" gorm:"type:decimal(10,2);default:0"`
	Total            float64     `json:"total" gorm:"type:decimal(10,2);not null"`
	PaymentMethod    string      `json:"payment_method" gorm:"size:50;not null"`
	Notes            string      `json:"notes" gorm:"type:text"`
	ShippingAddrID   uuid.UUID   `json:"shipping_address_id" gorm:"type:uuid;not null"`
	BillingAddrID    uuid.UUID   `json:"billing_address_id" gorm:"type:uuid;not null"`
	CouponID         *uuid.UUID  `json:"coupon_id" gorm:"type:uuid"`
	TrackingNumber   string      `json:"tracking_number" gorm:"size:100"`
	ShippingCarrier  string      `json:"shipping_carrier" gorm:"size:100"`
	ShippedAt        *time.Time  `json:"shipped_at"`
	DeliveredAt      *time.Time  `json:"delivered_at"`
	CancelledAt      *time.Time  `json:"cancelled_at"`

	// Relationships
	User            *User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items           []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	Coupon          *Coupon     `json:"coupon,omitempty" gorm:"foreignKey:CouponID"`
	ShippingAddress *Address    `json:"shipping_address,omitempty" gorm:"foreignKey:ShippingAddrID"`
	BillingAddress  *Address    `json:"billing_address,omitempty" gorm:"foreignKey:BillingAddrID"`
	Payment         *Payment    `json:"payment,omitempty" gorm:"foreignKey:OrderID"`
}

// IsTerminal reports whether no further status transitions are allowed.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusDelivered || o.Status == OrderStatusCancelled
}

// OrderItem snapshots product price and original price at purchase time.
type OrderItem struct {
	BaseModel
	OrderID       uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	ProductName   string    `json:"product_name" gorm:"size:255;not null"`
	Quantity      int       `json:"quantity" gorm:"not null"`
	Price         float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	OriginalPrice float64   `json:"original_price" gorm:"type:decimal(10,2)"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

type Coupon struct {
	BaseModel
	Code          string       `json:"code" gorm:"uniqueIndex;size:50;not null"`
	Type          DiscountType `json:"type" gorm:"type:varchar(20);not null"`
	Value         float64      `json:"value" gorm:"type:decimal(10,2);not null"`
	MinPurchase   float64      `json:"min_purchase" gorm:"type:decimal(10,2);default:0"`
	ExpiresAt     *time.Time   `json:"expires_at"`
	IsActive      bool         `json:"is_active" gorm:"default:true"`
	RedeemedCount int          `json:"redeemed_count" gorm:"default:0"`
}

// Usable reports whether the coupon may discount a checkout of the given
// subtotal at the given time.
func (c *Coupon) Usable(subtotal float64, at time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.ExpiresAt != nil && c.ExpiresAt.Before(at) {
		return false
	}
	return subtotal >= c.MinPurchase
}

// Payment is a gateway stub: created pending at checkout, never charged here.
type Payment struct {
	BaseModel
	OrderID uuid.UUID     `json:"order_id" gorm:"type:uuid;not null;index"`
	Method  string        `json:"method" gorm:"size:50;not null"`
	Amount  float64       `json:"amount" gorm:"type:decimal(10,2);not null"`
	Status  PaymentStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
}

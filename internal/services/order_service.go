// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storelane/storelane-backend/internal/config"
	"github.com/storelane/storelane-backend/internal/models"
	"github.com/storelane/storelane-backend/internal/utils"
)

type OrderService struct {
	db      *gorm.DB
	cfg     *config.Config
	coupons *CouponService
}

type CheckoutRequest struct {
	ShippingAddressID uuid.UUID  `json:"shipping_address_id" validate:"required"`
	BillingAddressID  *uuid.UUID `json:"billing_address_id,omitempty"`
	CouponCode        string     `json:"coupon_code,omitempty"`
	PaymentMethod     string     `json:"payment_method" validate:"required,oneof=card bank_transfer cash_on_delivery"`
	Notes             string     `json:"notes,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status          models.OrderStatus `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
	TrackingNumber  string             `json:"tracking_number,omitempty" validate:"omitempty,max=100"`
	ShippingCarrier string             `json:"shipping_carrier,omitempty" validate:"omitempty,max=100"`
}

type OrderSearchParams struct {
	utils.PaginationParams
	Status models.OrderStatus
}

func NewOrderService(db *gorm.DB, cfg *config.Config, coupons *CouponService) *OrderService {
	return &OrderService{db: db, cfg: cfg, coupons: coupons}
}

// Checkout converts the caller's cart into an order inside one transaction:
// stock validation, coupon discount, totals, order + items + payment stub,
// atomic stock decrement with inventory ledger rows, cart teardown.
func (s *OrderService) Checkout(userID uuid.UUID, req *CheckoutRequest) (*models.Order, error) {
	shippingAddr, err := s.loadOwnedAddress(userID, req.ShippingAddressID)
	if err != nil {
		return nil, err
	}

	billingAddrID := shippingAddr.ID
	if req.BillingAddressID != nil {
		billingAddr, err := s.loadOwnedAddress(userID, *req.BillingAddressID)
		if err != nil {
			return nil, err
		}
		billingAddrID = billingAddr.ID
	}

	var order *models.Order

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Preload("Items").Preload("Items.Product").
			Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return fmt.Errorf("database error: %w", err)
		}

		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		// First pass: collect every shortfall, not just the first.
		var shortfalls []StockShortfall
		for _, item := range cart.Items {
			if item.Product == nil {
				return fmt.Errorf("cart item %s has no product", item.ID)
			}
			available := item.Product.Stock
			if !item.Product.IsActive {
				available = 0
			}
			if item.Quantity > available {
				shortfalls = append(shortfalls, StockShortfall{
					ProductID:   item.ProductID,
					ProductName: item.Product.Name,
					Requested:   item.Quantity,
					Available:   available,
				})
			}
		}
		if len(shortfalls) > 0 {
			return &OutOfStockError{Items: shortfalls}
		}

		subtotal := 0.0
		for _, item := range cart.Items {
			subtotal += item.LineTotal()
		}
		subtotal = roundMoney(subtotal)

		coupon := s.coupons.FindUsable(tx, req.CouponCode, subtotal)
		discount := roundMoney(Discount(coupon, subtotal))

		shippingFee := s.cfg.Checkout.ShippingFee
		if coupon != nil && coupon.Type == models.DiscountTypeFreeShipping {
			shippingFee = 0
		}

		tax := roundMoney((subtotal - discount) * s.cfg.Checkout.TaxRate)
		total := roundMoney(subtotal - discount + shippingFee + tax)

		order = &models.Order{
			UserID:         userID,
			Status:         models.OrderStatusPending,
			Subtotal:       subtotal,
			Discount:       discount,
			Tax:            tax,
			ShippingFee:    shippingFee,
			Total:          total,
			PaymentMethod:  req.PaymentMethod,
			Notes:          req.Notes,
			ShippingAddrID: shippingAddr.ID,
			BillingAddrID:  billingAddrID,
		}
		if coupon != nil {
			order.CouponID = &coupon.ID
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, item := range cart.Items {
			orderItem := &models.OrderItem{
				OrderID:       order.ID,
				ProductID:     item.ProductID,
				ProductName:   item.Product.Name,
				Quantity:      item.Quantity,
				Price:         item.PriceAtTime,
				OriginalPrice: item.Product.OriginalPrice,
			}
			if err := tx.Create(orderItem).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}

			// Conditional decrement re-asserts availability at write time,
			// closing the race between the check above and this update.
			result := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if result.Error != nil {
				return fmt.Errorf("failed to decrement stock: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return &OutOfStockError{Items: []StockShortfall{{
					ProductID:   item.ProductID,
					ProductName: item.Product.Name,
					Requested:   item.Quantity,
					Available:   item.Product.Stock,
				}}}
			}

			ledger := &models.InventoryLog{
				ProductID: item.ProductID,
				Type:      models.StockMovementOut,
				Quantity:  item.Quantity,
				Reference: order.ID.String(),
				Note:      "order checkout",
				CreatedBy: &userID,
			}
			if err := tx.Create(ledger).Error; err != nil {
				return fmt.Errorf("failed to record inventory: %w", err)
			}
		}

		// Payment capture is a stub pending gateway integration.
		payment := &models.Payment{
			OrderID: order.ID,
			Method:  req.PaymentMethod,
			Amount:  total,
			Status:  models.PaymentStatusPending,
		}
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		if coupon != nil {
			if err := tx.Model(coupon).
				Update("redeemed_count", gorm.Expr("redeemed_count + 1")).Error; err != nil {
				return fmt.Errorf("failed to count redemption: %w", err)
			}
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to empty cart: %w", err)
		}
		if err := tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
			Update("total", 0).Error; err != nil {
			return fmt.Errorf("failed to reset cart total: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.db.Preload("Items").Preload("Coupon").Preload("Payment").
		First(order, "id = ?", order.ID)

	return order, nil
}

// GetForUser returns the order only when owned by the caller; admins see any.
func (s *OrderService) GetForUser(orderID, userID uuid.UUID, role models.UserRole) (*models.Order, error) {
	query := s.db.Preload("Items").Preload("Items.Product").
		Preload("Coupon").Preload("Payment").
		Preload("ShippingAddress").Preload("BillingAddress")

	if !role.AtLeast(models.RoleAdmin) {
		query = query.Where("user_id = ?", userID)
	}

	var order models.Order
	if err := query.First(&order, "orders.id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &order, nil
}

func (s *OrderService) ListForUser(userID uuid.UUID, params OrderSearchParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).Where("user_id = ?", userID)

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query = utils.ApplySort(query, params.PaginationParams, []string{"created_at", "total", "status"})
	query = utils.ApplyPagination(query, params.PaginationParams)

	var orders []models.Order
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}

// validNextStatuses encodes the lifecycle:
// PENDING -> PROCESSING -> SHIPPED -> DELIVERED, with CANCELLED reachable
// from any non-terminal state.
var validNextStatuses = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered, models.OrderStatusCancelled},
}

func transitionAllowed(from, to models.OrderStatus) bool {
	for _, next := range validNextStatuses[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateStatus performs a privileged lifecycle transition, stamping the
// status-specific timestamp and restocking cancelled orders.
func (s *OrderService) UpdateStatus(orderID uuid.UUID, req *UpdateOrderStatusRequest, actorID uuid.UUID) (*models.Order, error) {
	var order models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if !transitionAllowed(order.Status, req.Status) {
			return ErrInvalidTransition
		}

		updates := map[string]interface{}{"status": req.Status}
		now := time.Now()

		switch req.Status {
		case models.OrderStatusShipped:
			updates["shipped_at"] = now
			if req.TrackingNumber != "" {
				updates["tracking_number"] = req.TrackingNumber
			}
			if req.ShippingCarrier != "" {
				updates["shipping_carrier"] = req.ShippingCarrier
			}
		case models.OrderStatusDelivered:
			updates["delivered_at"] = now
		case models.OrderStatusCancelled:
			updates["cancelled_at"] = now
		}

		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		// Cancellation returns the reserved units to stock.
		if req.Status == models.OrderStatusCancelled {
			for _, item := range order.Items {
				if err := tx.Model(&models.Product{}).
					Where("id = ?", item.ProductID).
					Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
					return fmt.Errorf("failed to restock: %w", err)
				}

				ledger := &models.InventoryLog{
					ProductID: item.ProductID,
					Type:      models.StockMovementReturn,
					Quantity:  item.Quantity,
					Reference: order.ID.String(),
					Note:      "order cancelled",
					CreatedBy: &actorID,
				}
				if err := tx.Create(ledger).Error; err != nil {
					return fmt.Errorf("failed to record inventory: %w", err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.db.Preload("Items").First(&order, "id = ?", orderID)
	return &order, nil
}

func (s *OrderService) loadOwnedAddress(userID, addressID uuid.UUID) (*models.Address, error) {
	var address models.Address
	if err := s.db.Where("id = ? AND user_id = ?", addressID, userID).
		First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: address", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &address, nil
}

// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storelane/storelane-backend/internal/models"
)

type CartService struct {
	db *gorm.DB
}

type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type SetCartItemQuantityRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// GetOrCreate lazily creates the user's singleton cart on first access.
func (s *CartService) GetOrCreate(userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at asc")
	}).Preload("Items.Product").
		Where("user_id = ?", userID).First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID, Total: 0}
		if err := s.db.Create(&cart).Error; err != nil {
			return nil, fmt.Errorf("failed to create cart: %w", err)
		}
		return &cart, nil
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Reconcile the incremental total against the line items on every read.
	if err := s.reconcileTotal(&cart); err != nil {
		return nil, err
	}

	return &cart, nil
}

func (s *CartService) AddItem(userID uuid.UUID, req *AddCartItemRequest) (*models.Cart, error) {
	cart, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if !product.IsActive {
		return nil, ErrInactiveProduct
	}

	var existing models.CartItem
	findErr := s.db.Where("cart_id = ? AND product_id = ?", cart.ID, req.ProductID).
		First(&existing).Error

	pending := 0
	if findErr == nil {
		pending = existing.Quantity
	} else if !errors.Is(findErr, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", findErr)
	}

	if pending+req.Quantity > product.Stock {
		return nil, &OutOfStockError{Items: []StockShortfall{{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   pending + req.Quantity,
			Available:   product.Stock,
		}}}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if findErr == nil {
			if err := tx.Model(&existing).
				Update("quantity", existing.Quantity+req.Quantity).Error; err != nil {
				return fmt.Errorf("failed to update cart item: %w", err)
			}
			// Existing lines keep their original price-at-add-time.
			return s.bumpTotal(tx, cart, existing.PriceAtTime*float64(req.Quantity))
		}

		item := &models.CartItem{
			CartID:      cart.ID,
			ProductID:   product.ID,
			Quantity:    req.Quantity,
			PriceAtTime: product.Price,
		}
		if err := tx.Create(item).Error; err != nil {
			return fmt.Errorf("failed to create cart item: %w", err)
		}
		return s.bumpTotal(tx, cart, product.Price*float64(req.Quantity))
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrCreate(userID)
}

func (s *CartService) SetItemQuantity(userID, productID uuid.UUID, quantity int) (*models.Cart, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if quantity == 0 {
		return s.RemoveItem(userID, productID)
	}

	cart, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	if err := s.db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	if quantity > product.Stock {
		return nil, &OutOfStockError{Items: []StockShortfall{{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   quantity,
			Available:   product.Stock,
		}}}
	}

	delta := float64(quantity-item.Quantity) * item.PriceAtTime

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&item).Update("quantity", quantity).Error; err != nil {
			return fmt.Errorf("failed to update cart item: %w", err)
		}
		return s.bumpTotal(tx, cart, delta)
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrCreate(userID)
}

func (s *CartService) RemoveItem(userID, productID uuid.UUID) (*models.Cart, error) {
	cart, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	if err := s.db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&item).Error; err != nil {
			return fmt.Errorf("failed to remove cart item: %w", err)
		}
		return s.bumpTotal(tx, cart, -item.LineTotal())
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrCreate(userID)
}

func (s *CartService) Clear(userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return tx.Model(&models.Cart{}).Where("id = ?", cart.ID).Update("total", 0).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrCreate(userID)
}

// bumpTotal applies a signed delta to the cart total, floored at zero.
func (s *CartService) bumpTotal(tx *gorm.DB, cart *models.Cart, delta float64) error {
	newTotal := roundMoney(cart.Total + delta)
	if newTotal < 0 {
		newTotal = 0
	}
	if err := tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
		Update("total", newTotal).Error; err != nil {
		return fmt.Errorf("failed to update cart total: %w", err)
	}
	cart.Total = newTotal
	return nil
}

func (s *CartService) reconcileTotal(cart *models.Cart) error {
	computed := 0.0
	for _, item := range cart.Items {
		computed += item.LineTotal()
	}
	computed = roundMoney(computed)

	if math.Abs(computed-cart.Total) > 0.005 {
		if err := s.db.Model(&models.Cart{}).Where("id = ?", cart.ID).
			Update("total", computed).Error; err != nil {
			return fmt.Errorf("failed to reconcile cart total: %w", err)
		}
		cart.Total = computed
	}

	return nil
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

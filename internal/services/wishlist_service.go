// internal/services/wishlist_service.go
package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storelane/storelane-backend/internal/models"
	"github.com/storelane/storelane-backend/internal/utils"
)

type WishlistService struct {
	db *gorm.DB
}

type AddWishlistItemsRequest struct {
	ProductIDs []uuid.UUID `json:"product_ids" validate:"required,min=1"`
}

type AddWishlistItemsResult struct {
	Added          int `json:"added"`
	AlreadyPresent int `json:"already_present"`
	Invalid        int `json:"invalid"`
}

type UpdateWishlistItemRequest struct {
	Rating      *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	ClearRating bool    `json:"clear_rating,omitempty"`
	Note        *string `json:"note,omitempty"`
}

// WishlistEntry is a wishlist item decorated with its computed discount.
type WishlistEntry struct {
	models.WishlistItem
	DiscountPercent int `json:"discount_percent"`
}

func NewWishlistService(db *gorm.DB) *WishlistService {
	return &WishlistService{db: db}
}

// GetOrCreateDefault lazily creates the user's default wishlist.
func (s *WishlistService) GetOrCreateDefault(userID uuid.UUID) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := s.db.Where("user_id = ? AND name = ?", userID, models.DefaultWishlistName).
		First(&wishlist).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		wishlist = models.Wishlist{UserID: userID, Name: models.DefaultWishlistName}
		if err := s.db.Create(&wishlist).Error; err != nil {
			return nil, fmt.Errorf("failed to create wishlist: %w", err)
		}
		return &wishlist, nil
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &wishlist, nil
}

// AddItems inserts the given product ids, silently skipping ones already
// present or not purchasable, and reports what happened to each group.
func (s *WishlistService) AddItems(userID uuid.UUID, req *AddWishlistItemsRequest) (*AddWishlistItemsResult, error) {
	wishlist, err := s.GetOrCreateDefault(userID)
	if err != nil {
		return nil, err
	}

	result := &AddWishlistItemsResult{}

	for _, productID := range req.ProductIDs {
		var product models.Product
		if err := s.db.Where("id = ? AND is_active = ?", productID, true).
			First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result.Invalid++
				continue
			}
			return nil, fmt.Errorf("database error: %w", err)
		}

		var count int64
		if err := s.db.Model(&models.WishlistItem{}).
			Where("wishlist_id = ? AND product_id = ?", wishlist.ID, productID).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("database error: %w", err)
		}
		if count > 0 {
			result.AlreadyPresent++
			continue
		}

		item := &models.WishlistItem{
			WishlistID: wishlist.ID,
			ProductID:  productID,
		}
		if err := s.db.Create(item).Error; err != nil {
			return nil, fmt.Errorf("failed to add wishlist item: %w", err)
		}
		result.Added++
	}

	return result, nil
}

// UpdateItem sets rating and/or note. Ownership is enforced by the compound
// where clause; a miss is indistinguishable from a missing item.
func (s *WishlistService) UpdateItem(userID, productID uuid.UUID, req *UpdateWishlistItemRequest) (*models.WishlistItem, error) {
	wishlist, err := s.GetOrCreateDefault(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.ClearRating {
		updates["rating"] = nil
	} else if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	if req.Note != nil {
		updates["note"] = *req.Note
	}

	if len(updates) == 0 {
		return nil, ErrNothingToUpdate
	}

	result := s.db.Model(&models.WishlistItem{}).
		Where("wishlist_id = ? AND product_id = ?", wishlist.ID, productID).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update wishlist item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var item models.WishlistItem
	if err := s.db.Preload("Product").
		Where("wishlist_id = ? AND product_id = ?", wishlist.ID, productID).
		First(&item).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &item, nil
}

func (s *WishlistService) RemoveItem(userID, productID uuid.UUID) error {
	wishlist, err := s.GetOrCreateDefault(userID)
	if err != nil {
		return err
	}

	result := s.db.Where("wishlist_id = ? AND product_id = ?", wishlist.ID, productID).
		Delete(&models.WishlistItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// ListItems returns a sorted page of wishlist entries with the discount
// percentage computed per item.
func (s *WishlistService) ListItems(userID uuid.UUID, params utils.PaginationParams) ([]WishlistEntry, int64, error) {
	wishlist, err := s.GetOrCreateDefault(userID)
	if err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.WishlistItem{}).
		Joins("JOIN products ON products.id = wishlist_items.product_id").
		Where("wishlist_items.wishlist_id = ?", wishlist.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count wishlist items: %w", err)
	}

	order := params.Order
	switch params.Sort {
	case "price":
		query = query.Order("products.price " + order)
	case "name":
		query = query.Order("products.name " + order)
	default:
		query = query.Order("wishlist_items.created_at " + order)
	}
	query = utils.ApplyPagination(query, params)

	var items []models.WishlistItem
	if err := query.Preload("Product").Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch wishlist items: %w", err)
	}

	entries := make([]WishlistEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, WishlistEntry{
			WishlistItem:    item,
			DiscountPercent: discountPercent(item.Product),
		})
	}

	return entries, total, nil
}

func discountPercent(product *models.Product) int {
	if product == nil {
		return 0
	}
	if product.OriginalPrice > product.Price && product.Price > 0 {
		return int(math.Round((product.OriginalPrice - product.Price) / product.OriginalPrice * 100))
	}
	return 0
}

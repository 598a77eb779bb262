// internal/models/wishlist.go
package models

import (
	"github.com/google/uuid"
)

const DefaultWishlistName = "default"

type Wishlist struct {
	BaseModel
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_name"`
	Name   string    `json:"name" gorm:"size:100;not null;default:'default';uniqueIndex:idx_wishlist_user_name"`

	// Relationships
	Items []WishlistItem `json:"items,omitempty" gorm:"foreignKey:WishlistID"`
}

type WishlistItem struct {
	BaseModel
	WishlistID uuid.UUID `json:"wishlist_id" gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_product"`
	ProductID  uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_product"`
	Rating     *int      `json:"rating"`
	Note       string    `json:"note" gorm:"type:text"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

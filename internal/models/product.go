// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Name          string         `json:"name" gorm:"size:255;not null"`
	Slug          string         `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Description   string         `json:"description" gorm:"type:text"`
	Price         float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	OriginalPrice float64        `json:"original_price" gorm:"type:decimal(10,2)"`
	Stock         int            `json:"stock" gorm:"default:0"`
	Brand         string         `json:"brand" gorm:"size:100;index"`
	Supplier      string         `json:"supplier" gorm:"size:100;index"`
	Images        pq.StringArray `json:"images" gorm:"type:text[]"`
	Tags          pq.StringArray `json:"tags" gorm:"type:text[]"`
	CategoryID    *uuid.UUID     `json:"category_id" gorm:"type:uuid;index"`
	IsActive      bool           `json:"is_active" gorm:"default:true;index"`

	// Relationships
	Category      *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	InventoryLogs []InventoryLog `json:"inventory_logs,omitempty" gorm:"foreignKey:ProductID"`
}

type Category struct {
	BaseModel
	Name        string     `json:"name" gorm:"size:100;not null"`
	Slug        string     `json:"slug" gorm:"uniqueIndex;size:100;not null"`
	Description string     `json:"description" gorm:"type:text"`
	ParentID    *uuid.UUID `json:"parent_id" gorm:"type:uuid;index"`
	IsActive    bool       `json:"is_active" gorm:"default:true;index"`

	// Relationships
	Parent   *Category  `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	Children []Category `json:"children,omitempty" gorm:"foreignKey:ParentID"`
	Products []Product  `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
}

// InventoryLog is an append-only ledger of stock movements. The products.stock
// column stays authoritative; these rows exist for auditability.
type InventoryLog struct {
	BaseModel
	ProductID uuid.UUID         `json:"product_id" gorm:"type:uuid;not null;index"`
	Type      StockMovementType `json:"type" gorm:"type:varchar(20);not null"`
	Quantity  int               `json:"quantity" gorm:"not null"`
	Reference string            `json:"reference" gorm:"size:255"`
	Note      string            `json:"note" gorm:"type:text"`
	CreatedBy *uuid.UUID        `json:"created_by" gorm:"type:uuid"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

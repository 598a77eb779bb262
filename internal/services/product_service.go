// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/storelane/storelane-backend/internal/models"
	"github.com/storelane/storelane-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name          string     `json:"name" validate:"required,min=3,max=255"`
	Description   string     `json:"description,omitempty"`
	Price         float64    `json:"price" validate:"required,gt=0"`
	OriginalPrice float64    `json:"original_price,omitempty" validate:"omitempty,gte=0"`
	Stock         int        `json:"stock" validate:"gte=0"`
	Brand         string     `json:"brand,omitempty" validate:"omitempty,max=100"`
	Supplier      string     `json:"supplier,omitempty" validate:"omitempty,max=100"`
	Tags          []string   `json:"tags,omitempty"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
}

type UpdateProductRequest struct {
	Name          *string    `json:"name,omitempty" validate:"omitempty,min=3,max=255"`
	Description   *string    `json:"description,omitempty"`
	Price         *float64   `json:"price,omitempty" validate:"omitempty,gt=0"`
	OriginalPrice *float64   `json:"original_price,omitempty" validate:"omitempty,gte=0"`
	Stock         *int       `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Brand         *string    `json:"brand,omitempty" validate:"omitempty,max=100"`
	Supplier      *string    `json:"supplier,omitempty" validate:"omitempty,max=100"`
	Tags          []string   `json:"tags,omitempty"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	IsActive      *bool      `json:"is_active,omitempty"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	CategoryID      *uuid.UUID
	Brand           string
	Supplier        string
	PriceMin        *float64
	PriceMax        *float64
	Tag             string
	IncludeInactive bool
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) Create(req *CreateProductRequest, actorID uuid.UUID) (*models.Product, error) {
	slug := utils.Slugify(req.Name)
	if err := s.ensureSlugFree(slug, uuid.Nil); err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if err := s.db.First(&models.Category{}, "id = ?", *req.CategoryID).Error; err != nil {
			return nil, fmt.Errorf("%w: category", ErrNotFound)
		}
	}

	product := &models.Product{
		Name:          req.Name,
		Slug:          slug,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Stock:         req.Stock,
		Brand:         req.Brand,
		Supplier:      req.Supplier,
		Tags:          pq.StringArray(req.Tags),
		CategoryID:    req.CategoryID,
		IsActive:      true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		if req.Stock > 0 {
			entry := &models.InventoryLog{
				ProductID: product.ID,
				Type:      models.StockMovementIn,
				Quantity:  req.Stock,
				Note:      "initial stock",
				CreatedBy: &actorID,
			}
			if err := tx.Create(entry).Error; err != nil {
				return fmt.Errorf("failed to record inventory: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (s *ProductService) GetByID(id uuid.UUID) (*models.Product, error) {
	// Inactive rows stay reachable by id for historical order references.
	var product models.Product
	if err := s.db.Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Category").
		Where("slug = ? AND is_active = ?", slug, true).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) Update(id uuid.UUID, req *UpdateProductRequest, actorID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})

	if req.Name != nil && *req.Name != product.Name {
		slug := utils.Slugify(*req.Name)
		if err := s.ensureSlugFree(slug, product.ID); err != nil {
			return nil, err
		}
		updates["name"] = *req.Name
		updates["slug"] = slug
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.OriginalPrice != nil {
		updates["original_price"] = *req.OriginalPrice
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Supplier != nil {
		updates["supplier"] = *req.Supplier
	}
	if req.Tags != nil {
		updates["tags"] = pq.StringArray(req.Tags)
	}
	if req.CategoryID != nil {
		if err := s.db.First(&models.Category{}, "id = ?", *req.CategoryID).Error; err != nil {
			return nil, fmt.Errorf("%w: category", ErrNotFound)
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	// Stock changes also land in the inventory ledger with the signed delta
	// folded into a movement type plus absolute quantity.
	var stockEntry *models.InventoryLog
	if req.Stock != nil && *req.Stock != product.Stock {
		delta := *req.Stock - product.Stock
		movement := models.StockMovementIn
		if delta < 0 {
			movement = models.StockMovementOut
			delta = -delta
		}
		stockEntry = &models.InventoryLog{
			ProductID: product.ID,
			Type:      movement,
			Quantity:  delta,
			Note:      "manual stock adjustment",
			CreatedBy: &actorID,
		}
		updates["stock"] = *req.Stock
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&product).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update product: %w", err)
			}
		}
		if stockEntry != nil {
			if err := tx.Create(stockEntry).Error; err != nil {
				return fmt.Errorf("failed to record inventory: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.db.Preload("Category").First(&product, "id = ?", id)
	return &product, nil
}

// Delete is always soft: the active flag flips, the row stays.
func (s *ProductService) Delete(id uuid.UUID) error {
	result := s.db.Model(&models.Product{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProductService) Search(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Preload("Category")

	if !params.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}

	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}

	if params.Brand != "" {
		query = query.Where("brand = ?", params.Brand)
	}

	if params.Supplier != "" {
		query = query.Where("supplier = ?", params.Supplier)
	}

	if params.PriceMin != nil {
		query = query.Where("price >= ?", *params.PriceMin)
	}

	if params.PriceMax != nil {
		query = query.Where("price <= ?", *params.PriceMax)
	}

	if params.Tag != "" {
		query = query.Where("CAST(tags AS TEXT) LIKE ?", "%"+params.Tag+"%")
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(CAST(tags AS TEXT)) LIKE ?",
			searchTerm, searchTerm, searchTerm,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "price", "stock"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) ListInventoryLogs(productID uuid.UUID, params utils.PaginationParams) ([]models.InventoryLog, int64, error) {
	if _, err := s.GetByID(productID); err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.InventoryLog{}).Where("product_id = ?", productID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count inventory logs: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at"})
	query = utils.ApplyPagination(query, params)

	var logs []models.InventoryLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch inventory logs: %w", err)
	}

	return logs, total, nil
}

// AttachImages appends uploaded image URLs to the product record.
func (s *ProductService) AttachImages(id uuid.UUID, urls []string) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	product.Images = append(product.Images, urls...)
	if err := s.db.Model(&product).Update("images", product.Images).Error; err != nil {
		return nil, fmt.Errorf("failed to attach images: %w", err)
	}

	return &product, nil
}

func (s *ProductService) ensureSlugFree(slug string, selfID uuid.UUID) error {
	var count int64
	query := s.db.Model(&models.Product{}).Where("slug = ?", slug)
	if selfID != uuid.Nil {
		query = query.Where("id <> ?", selfID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check slug: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: slug %q already in use", ErrConflict, slug)
	}
	return nil
}

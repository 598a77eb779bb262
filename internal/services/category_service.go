// internal/services/category_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storelane/storelane-backend/internal/models"
	"github.com/storelane/storelane-backend/internal/utils"
)

type CategoryService struct {
	db *gorm.DB
}

type CreateCategoryRequest struct {
	Name        string     `json:"name" validate:"required,min=2,max=100"`
	Description string     `json:"description,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
}

type UpdateCategoryRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string    `json:"description,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	ClearParent bool       `json:"clear_parent,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) Create(req *CreateCategoryRequest) (*models.Category, error) {
	slug := utils.Slugify(req.Name)
	if err := s.ensureSlugFree(slug, uuid.Nil); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		if _, err := s.GetByID(*req.ParentID); err != nil {
			return nil, err
		}
	}

	category := &models.Category{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		ParentID:    req.ParentID,
		IsActive:    true,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

func (s *CategoryService) GetByID(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.Preload("Children").First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}

func (s *CategoryService) List(includeInactive bool) ([]models.Category, error) {
	query := s.db.Model(&models.Category{}).Preload("Children").Order("name asc")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var categories []models.Category
	if err := query.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) Update(id uuid.UUID, req *UpdateCategoryRequest) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})

	if req.Name != nil && *req.Name != category.Name {
		slug := utils.Slugify(*req.Name)
		if err := s.ensureSlugFree(slug, category.ID); err != nil {
			return nil, err
		}
		updates["name"] = *req.Name
		updates["slug"] = slug
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if req.ClearParent {
		updates["parent_id"] = nil
	} else if req.ParentID != nil {
		if err := s.checkForCycle(id, *req.ParentID); err != nil {
			return nil, err
		}
		updates["parent_id"] = *req.ParentID
	}

	if len(updates) > 0 {
		if err := s.db.Model(&category).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update category: %w", err)
		}
	}

	s.db.Preload("Children").First(&category, "id = ?", id)
	return &category, nil
}

// Delete refuses while children or products still reference the category,
// then flips the active flag.
func (s *CategoryService) Delete(id uuid.UUID) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	var childCount int64
	if err := s.db.Model(&models.Category{}).
		Where("parent_id = ? AND is_active = ?", id, true).
		Count(&childCount).Error; err != nil {
		return fmt.Errorf("failed to check children: %w", err)
	}
	if childCount > 0 {
		return ErrCategoryInUse
	}

	var productCount int64
	if err := s.db.Model(&models.Product{}).
		Where("category_id = ? AND is_active = ?", id, true).
		Count(&productCount).Error; err != nil {
		return fmt.Errorf("failed to check products: %w", err)
	}
	if productCount > 0 {
		return ErrCategoryInUse
	}

	if err := s.db.Model(&models.Category{}).
		Where("id = ?", id).
		Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}

// checkForCycle walks the parent chain from the proposed parent up to the
// root. Visiting the node being reparented means the new parent is one of
// its own descendants.
func (s *CategoryService) checkForCycle(nodeID, newParentID uuid.UUID) error {
	if nodeID == newParentID {
		return ErrCircularReference
	}

	current := newParentID
	// Bounded walk: the visited set also guards against pre-existing loops.
	visited := map[uuid.UUID]bool{}
	for {
		if visited[current] {
			return ErrCircularReference
		}
		visited[current] = true

		var parent models.Category
		if err := s.db.Select("id", "parent_id").First(&parent, "id = ?", current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if parent.ParentID == nil {
			return nil
		}
		if *parent.ParentID == nodeID {
			return ErrCircularReference
		}
		current = *parent.ParentID
	}
}

func (s *CategoryService) ensureSlugFree(slug string, selfID uuid.UUID) error {
	var count int64
	query := s.db.Model(&models.Category{}).Where("slug = ?", slug)
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

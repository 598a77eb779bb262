// internal/services/category_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *CategoryService
}

func (s *CategoryServiceTestSuite) SetupTest() {
	s.db = setupTestDB(s.T())
	s.service = NewCategoryService(s.db)
}

func (s *CategoryServiceTestSuite) TestCreateDerivesSlug() {
	category, err := s.service.Create(&CreateCategoryRequest{Name: "Home & Garden"})
	s.Require().NoError(err)
	s.Equal("home-garden", category.Slug)
	s.True(category.IsActive)
}

func (s *CategoryServiceTestSuite) TestCreateRejectsDuplicateSlug() {
	_, err := s.service.Create(&CreateCategoryRequest{Name: "Home & Garden"})
	s.Require().NoError(err)

	_, err = s.service.Create(&CreateCategoryRequest{Name: "Home  Garden"})
	s.ErrorIs(err, ErrConflict)
}

func (s *CategoryServiceTestSuite) TestReparentRejectsSelf() {
	category, err := s.service.Create(&CreateCategoryRequest{Name: "Roots"})
	s.Require().NoError(err)

	_, err = s.service.Update(category.ID, &UpdateCategoryRequest{ParentID: &category.ID})
	s.ErrorIs(err, ErrCircularReference)
}

func (s *CategoryServiceTestSuite) TestReparentRejectsDescendant() {
	top, err := s.service.Create(&CreateCategoryRequest{Name: "Top"})
	s.Require().NoError(err)
	mid, err := s.service.Create(&CreateCategoryRequest{Name: "Mid", ParentID: &top.ID})
	s.Require().NoError(err)
	leaf, err := s.service.Create(&CreateCategoryRequest{Name: "Leaf", ParentID: &mid.ID})
	s.Require().NoError(err)

	// Moving the root under its own grandchild would form a loop.
	_, err = s.service.Update(top.ID, &UpdateCategoryRequest{ParentID: &leaf.ID})
	s.ErrorIs(err, ErrCircularReference)

	// A sibling move is fine.
	_, err = s.service.Update(leaf.ID, &UpdateCategoryRequest{ParentID: &top.ID})
	s.NoError(err)
}

func (s *CategoryServiceTestSuite) TestClearParent() {
	top, err := s.service.Create(&CreateCategoryRequest{Name: "Top"})
	s.Require().NoError(err)
	child, err := s.service.Create(&CreateCategoryRequest{Name: "Child", ParentID: &top.ID})
	s.Require().NoError(err)

	updated, err := s.service.Update(child.ID, &UpdateCategoryRequest{ClearParent: true})
	s.Require().NoError(err)
	s.Nil(updated.ParentID)
}

func (s *CategoryServiceTestSuite) TestDeleteRefusesWhileInUse() {
	top, err := s.service.Create(&CreateCategoryRequest{Name: "Top"})
	s.Require().NoError(err)
	child, err := s.service.Create(&CreateCategoryRequest{Name: "Child", ParentID: &top.ID})
	s.Require().NoError(err)

	s.ErrorIs(s.service.Delete(top.ID), ErrCategoryInUse)

	// Products keep a category alive too.
	product := createTestProduct(s.T(), s.db, "Chair", 40.00, 3)
	s.Require().NoError(s.db.Model(product).Update("category_id", child.ID).Error)
	s.ErrorIs(s.service.Delete(child.ID), ErrCategoryInUse)

	// Once the product is retired the category can go, then its parent.
	s.Require().NoError(s.db.Model(product).Update("is_active", false).Error)
	s.Require().NoError(s.service.Delete(child.ID))
	s.Require().NoError(s.service.Delete(top.ID))

	// Soft delete: the row is still fetchable.
	got, err := s.service.GetByID(top.ID)
	s.Require().NoError(err)
	s.False(got.IsActive)
}

func (s *CategoryServiceTestSuite) TestListFiltersInactive() {
	_, err := s.service.Create(&CreateCategoryRequest{Name: "Visible"})
	s.Require().NoError(err)
	hidden, err := s.service.Create(&CreateCategoryRequest{Name: "Hidden"})
	s.Require().NoError(err)
	s.Require().NoError(s.service.Delete(hidden.ID))

	active, err := s.service.List(false)
	s.Require().NoError(err)
	s.Len(active, 1)

	all, err := s.service.List(true)
	s.Require().NoError(err)
	s.Len(all, 2)
}

func TestCategoryServiceSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}

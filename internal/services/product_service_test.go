// internal/services/product_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/storelane/storelane-backend/internal/models"
)

type ProductServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ProductService
	actor   *models.User
}

func (s *ProductServiceTestSuite) SetupTest() {
	s.db = setupTestDB(s.T())
	s.service = NewProductService(s.db)
	s.actor = createTestUser(s.T(), s.db, "manager@example.com", models.RoleManager)
}

func (s *ProductServiceTestSuite) TestCreateRecordsInitialStock() {
	product, err := s.service.Create(&CreateProductRequest{
		Name:  "Walnut Desk",
		Price: 499.00,
		Stock: 12,
	}, s.actor.ID)
	s.Require().NoError(err)
	s.Equal("walnut-desk", product.Slug)
	s.True(product.IsActive)

	var entry models.InventoryLog
	s.Require().NoError(s.db.Where("product_id = ?", product.ID).First(&entry).Error)
	s.Equal(models.StockMovementIn, entry.Type)
	s.Equal(12, entry.Quantity)
	s.Require().NotNil(entry.CreatedBy)
	s.Equal(s.actor.ID, *entry.CreatedBy)
}

func (s *ProductServiceTestSuite) TestCreateZeroStockSkipsLedger() {
	product, err := s.service.Create(&CreateProductRequest{
		Name:  "Preorder Chair",
		Price: 99.00,
	}, s.actor.ID)
	s.Require().NoError(err)

	var count int64
	s.db.Model(&models.InventoryLog{}).Where("product_id = ?", product.ID).Count(&count)
	s.Zero(count)
}

func (s *ProductServiceTestSuite) TestCreateRejectsDuplicateSlug() {
	_, err := s.service.Create(&CreateProductRequest{Name: "Walnut Desk", Price: 1}, s.actor.ID)
	s.Require().NoError(err)

	_, err = s.service.Create(&CreateProductRequest{Name: "Walnut  Desk!", Price: 1}, s.actor.ID)
	s.ErrorIs(err, ErrConflict)
}

func (s *ProductServiceTestSuite) TestUpdateStockWritesLedger() {
	product, err := s.service.Create(&CreateProductRequest{
		Name: "Walnut Desk", Price: 499.00, Stock: 10,
	}, s.actor.ID)
	s.Require().NoError(err)

	lower := 6
	_, err = s.service.Update(product.ID, &UpdateProductRequest{Stock: &lower}, s.actor.ID)
	s.Require().NoError(err)

	var entry models.InventoryLog
	s.Require().NoError(s.db.Where("product_id = ? AND type = ?",
		product.ID, models.StockMovementOut).First(&entry).Error)
	s.Equal(4, entry.Quantity)
	s.Equal("manual stock adjustment", entry.Note)
}

func (s *ProductServiceTestSuite) TestRenameRederivesSlug() {
	product, err := s.service.Create(&CreateProductRequest{Name: "Old Name", Price: 1}, s.actor.ID)
	s.Require().NoError(err)

	name := "Brand New Name"
	updated, err := s.service.Update(product.ID, &UpdateProductRequest{Name: &name}, s.actor.ID)
	s.Require().NoError(err)
	s.Equal("brand-new-name", updated.Slug)
}

func (s *ProductServiceTestSuite) TestSoftDeleteVisibility() {
	product, err := s.service.Create(&CreateProductRequest{Name: "Walnut Desk", Price: 1}, s.actor.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.service.Delete(product.ID))

	// Reachable by id for historical references.
	got, err := s.service.GetByID(product.ID)
	s.Require().NoError(err)
	s.False(got.IsActive)

	// Invisible on the storefront slug lookup and default search.
	_, err = s.service.GetBySlug("walnut-desk")
	s.ErrorIs(err, ErrNotFound)

	results, total, err := s.service.Search(ProductSearchParams{PaginationParams: defaultPagination()})
	s.Require().NoError(err)
	s.Empty(results)
	s.Zero(total)

	// Staff search with the flag still finds it.
	results, _, err = s.service.Search(ProductSearchParams{
		PaginationParams: defaultPagination(),
		IncludeInactive:  true,
	})
	s.Require().NoError(err)
	s.Len(results, 1)
}

func (s *ProductServiceTestSuite) TestSearchFilters() {
	_, err := s.service.Create(&CreateProductRequest{
		Name: "Oak Table", Price: 200, Brand: "Oakley", Stock: 1,
	}, s.actor.ID)
	s.Require().NoError(err)
	_, err = s.service.Create(&CreateProductRequest{
		Name: "Pine Stool", Price: 40, Brand: "Pinecraft", Stock: 1,
	}, s.actor.ID)
	s.Require().NoError(err)

	byBrand, total, err := s.service.Search(ProductSearchParams{
		PaginationParams: defaultPagination(),
		Brand:            "Oakley",
	})
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Equal("Oak Table", byBrand[0].Name)

	min := 100.0
	byPrice, _, err := s.service.Search(ProductSearchParams{
		PaginationParams: defaultPagination(),
		PriceMin:         &min,
	})
	s.Require().NoError(err)
	s.Len(byPrice, 1)
	s.Equal("Oak Table", byPrice[0].Name)

	params := defaultPagination()
	params.Search = "stool"
	byText, _, err := s.service.Search(ProductSearchParams{PaginationParams: params})
	s.Require().NoError(err)
	s.Len(byText, 1)
	s.Equal("Pine Stool", byText[0].Name)
}

func (s *ProductServiceTestSuite) TestAttachImages() {
	product, err := s.service.Create(&CreateProductRequest{Name: "Oak Table", Price: 200}, s.actor.ID)
	s.Require().NoError(err)

	updated, err := s.service.AttachImages(product.ID, []string{"https://cdn.example.com/a.jpg"})
	s.Require().NoError(err)
	s.Len(updated.Images, 1)
}

func TestProductServiceSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}

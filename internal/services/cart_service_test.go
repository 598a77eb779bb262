// internal/services/cart_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/storelane/storelane-backend/internal/models"
)

type CartServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *CartService
	user    *models.User
}

func (s *CartServiceTestSuite) SetupTest() {
	s.db = setupTestDB(s.T())
	s.service = NewCartService(s.db)
	s.user = createTestUser(s.T(), s.db, "shopper@example.com", models.RoleUser)
}

func (s *CartServiceTestSuite) TestGetOrCreateIsLazy() {
	cart, err := s.service.GetOrCreate(s.user.ID)
	s.Require().NoError(err)
	s.Equal(s.user.ID, cart.UserID)
	s.Zero(cart.Total)
	s.Empty(cart.Items)

	// Second call returns the same cart.
	again, err := s.service.GetOrCreate(s.user.ID)
	s.Require().NoError(err)
	s.Equal(cart.ID, again.ID)
}

func (s *CartServiceTestSuite) TestAddItemTracksTotal() {
	product := createTestProduct(s.T(), s.db, "Mug", 12.50, 10)

	cart, err := s.service.AddItem(s.user.ID, &AddCartItemRequest{
		ProductID: product.ID,
		Quantity:  2,
	})
	s.Require().NoError(err)
	s.Len(cart.Items, 1)
	s.Equal(2, cart.Items[0].Quantity)
	s.InDelta(25.00, cart.Total, 0.001)
}

func (s *CartServiceTestSuite) TestAddItemMergesExistingLine() {
	product := createTestProduct(s.T(), s.db, "Mug", 10.00, 10)

	_, err := s.service.AddItem(s.user.ID, &AddCartItemRequest{ProductID: product.ID, Quantity: 2})
	s.Require().NoError(err)

	// Price changes after the first add; the line keeps its captured price.
	s.Require().NoError(s.db.Model(product).Update("price", 99.00).Error)

	cart, err := s.service.AddItem(s.user.ID, &AddCartItemRequest{ProductID: product.ID, Quantity: 3})
	s.Require().NoError(err)
	s.Len(cart.Items, 1)
	s.Equal(5, cart.Items[0].Quantity)
	s.InDelta(10.00, cart.Items[0].PriceAtTime, 0.001)
	s.InDelta(50.00, cart.Total, 0.001)
}

func (s *CartServiceTestSuite) TestAddItemRejectsOverStock() {
	product := createTestProduct(s.T(), s.db, "Rare", 5.00, 3)

	_, err := s.service.AddItem(s.user.ID, &AddCartItemRequest{ProductID: product.ID, Quantity: 2})
	s.Require().NoError(err)

	_, err = s.service.AddItem(s.user.ID, &AddCartItemRequest{ProductID: product.ID, Quantity: 2})
	var oos *OutOfStockError
	s.Require().True(errors.As(err, &oos))
	s.Len(oos.Items, 1)
	s.Equal(4, oos.Items[0].Requested)
	s.Equal(3, oos.Items[0].Available)
}

func (s *CartServiceTestSuite) TestAddItemRejectsInactiveProduct() {
	product := createTestProduct(s.T(), s.db, "Gone", 5.00, 3)
	s.Require().NoError(s.db.Model(product).Update("is_active", false).Error)

	_, err := s.service.AddItem(s.user.ID, &AddCartItemRequest{ProductID: product.ID, Quantity: 1})
	s.ErrorIs(err, ErrInactiveProduct)
}

func (s *CartServiceTestSuite) TestAddItemUnknownProduct() {
	_, err := s.service.AddItem(s.user.ID, &AddCartItemRequest{ProductID: uuid.New(), Quantity: 1})
	s.ErrorIs(err, ErrNotFound)
}

func (s *CartServiceTestSuite) TestSetItemQuantity() {
	product := createTestProduct(s.T(), s.db, "Mug", 10.00, 10)
	_, err := s.service.AddItem(s.user.ID, &AddCartItemRequest{ProductID: product.ID, Quantity: 2})
	s.Require().NoError(err)

	cart, err := s.service.SetItemQuantity(s.user.ID, product.ID, 5)
	s.Require().NoError(err)
	s.Equal(5, cart.Items[0].Quantity)
	s.InDelta(50.00, cart.Total, 0.001)
}

func (s *CartServiceTestSuite) TestSetItemQuantityZeroRemoves() {
	product := createTestProduct(s.T(), s.db, "Mug", 10.00, 10)
	_, err := s.service.AddItem(s.user.ID, &AddCartItemRequest{ProductID: product.ID, Quantity: 2})
	s.Require().NoError(err)

	cart, err := s.service.SetItemQuantity(s.user.ID, product.ID, 0)
	s.Require().NoError(err)
	s.Empty(cart.Items)
	s.Zero(cart.Total)
}

func (s *CartServiceTestSuite) TestSetItemQuantityOverStock() {
	product := createTestProduct(s.T(), s.db, "Mug", 10.00, 4)
	_, err := s.service.AddItem(s.user.ID, &AddCartItemRequest{ProductID: product.ID, Quantity: 2})
	s.Require().NoError(err)

	_, err = s.service.SetItemQuantity(s.user.ID, product.ID, 5)
	var oos *OutOfStockError
	s.True(errors.As(err, &oos))
}

func (s *CartServiceTestSuite) TestRemoveItem() {
	mug := createTestProduct(s.T(), s.db, "Mug", 10.00, 10)
	pen := createTestProduct(s.T(), s.db, "Pen", 2.00, 10)

	_, err := s.service.AddItem(s.user.ID, &AddCartItemRequest{ProductID: mug.ID, Quantity: 1})
	s.Require().NoError(err)
	_, err = s.service.AddItem(s.user.ID, &AddCartItemRequest{ProductID: pen.ID, Quantity: 3})
	s.Require().NoError(err)

	cart, err := s.service.RemoveItem(s.user.ID, mug.ID)
	s.Require().NoError(err)
	s.Len(cart.Items, 1)
	s.InDelta(6.00, cart.Total, 0.001)

	_, err = s.service.RemoveItem(s.user.ID, mug.ID)
	s.ErrorIs(err, ErrNotFound)
}

func (s *CartServiceTestSuite) TestClear() {
	product := createTestProduct(s.T(), s.db, "Mug", 10.00, 10)
	_, err := s.service.AddItem(s.user.ID, &AddCartItemRequest{ProductID: product.ID, Quantity: 2})
	s.Require().NoError(err)

	cart, err := s.service.Clear(s.user.ID)
	s.Require().NoError(err)
	s.Empty(cart.Items)
	s.Zero(cart.Total)
}

func (s *CartServiceTestSuite) TestTotalReconciledOnRead() {
	product := createTestProduct(s.T(), s.db, "Mug", 10.00, 10)
	_, err := s.service.AddItem(s.user.ID, &AddCartItemRequest{ProductID: product.ID, Quantity: 2})
	s.Require().NoError(err)

	// Corrupt the stored total; the next read must repair it.
	s.Require().NoError(s.db.Model(&models.Cart{}).
		Where("user_id = ?", s.user.ID).Update("total", 999.99).Error)

	cart, err := s.service.GetOrCreate(s.user.ID)
	s.Require().NoError(err)
	s.InDelta(20.00, cart.Total, 0.001)
}

func TestCartServiceSuite(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}

package service

import (
	"github.com/RoyceAzure/lab/shop/internal/apperr"
	"github.com/stretchr/testify/require"
)

func (suite *ServiceTestSuite) TestAddToCartMergesSameSize() {
	user := suite.createUser()
	product := suite.createProduct("12.50")

	item, err := suite.cartService.AddToCart(suite.ctx, user.ID, product.ID, nil, "M")
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 1, item.Quantity)
	require.Equal(suite.T(), "m", item.Size)

	item, err = suite.cartService.AddToCart(suite.ctx, user.ID, product.ID, intPtr(2), "m")
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 3, item.Quantity)

	suite.addToCart(user.ID, product.ID, 1, "xl")

	cart, err := suite.cartService.GetCart(suite.ctx, user.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cart.Items, 2)
	require.Equal(suite.T(), "50.00", cart.Total.StringFixed(2))
}

func (suite *ServiceTestSuite) TestAddToCartValidation() {
	user := suite.createUser()
	product := suite.createProduct("1.00")

	_, err := suite.cartService.AddToCart(suite.ctx, user.ID, product.ID, intPtr(0), "m")
	suite.requireCode(err, apperr.BadRequestCode)

	_, err = suite.cartService.AddToCart(suite.ctx, user.ID, product.ID, nil, "xxl")
	suite.requireCode(err, apperr.BadRequestCode)

	_, err = suite.cartService.AddToCart(suite.ctx, user.ID, 9999, nil, "m")
	suite.requireCode(err, apperr.NotFoundCode)
}

func (suite *ServiceTestSuite) TestUpdateCartItem() {
	user := suite.createUser()
	product := suite.createProduct("2.00")
	suite.addToCart(user.ID, product.ID, 1, "s")

	item, err := suite.cartService.UpdateCartItem(suite.ctx, user.ID, product.ID, intPtr(5), "s")
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 5, item.Quantity)

	_, err = suite.cartService.UpdateCartItem(suite.ctx, user.ID, product.ID, intPtr(-1), "s")
	suite.requireCode(err, apperr.BadRequestCode)

	_, err = suite.cartService.UpdateCartItem(suite.ctx, user.ID, product.ID, intPtr(1), "l")
	suite.requireCode(err, apperr.NotFoundCode)

	item, err = suite.cartService.UpdateCartItem(suite.ctx, user.ID, product.ID, intPtr(0), "s")
	require.NoError(suite.T(), err)
	require.Nil(suite.T(), item)

	cart, err := suite.cartService.GetCart(suite.ctx, user.ID)
	require.NoError(suite.T(), err)
	require.Empty(suite.T(), cart.Items)
	require.True(suite.T(), cart.Total.IsZero())
}

func (suite *ServiceTestSuite) TestRemoveProductFromCart() {
	user := suite.createUser()
	product := suite.createProduct("2.00")
	suite.addToCart(user.ID, product.ID, 1, "s")
	suite.addToCart(user.ID, product.ID, 1, "m")
	suite.addToCart(user.ID, product.ID, 1, "l")

	require.NoError(suite.T(), suite.cartService.RemoveProduct(suite.ctx, user.ID, product.ID, "S"))
	cart, err := suite.cartService.GetCart(suite.ctx, user.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cart.Items, 2)

	require.NoError(suite.T(), suite.cartService.RemoveProduct(suite.ctx, user.ID, product.ID, ""))
	cart, err = suite.cartService.GetCart(suite.ctx, user.ID)
	require.NoError(suite.T(), err)
	require.Empty(suite.T(), cart.Items)

	err = suite.cartService.RemoveProduct(suite.ctx, user.ID, product.ID, "")
	suite.requireCode(err, apperr.NotFoundCode)
}

func (suite *ServiceTestSuite) TestClearCartIsIdempotent() {
	user := suite.createUser()
	other := suite.createUser()
	product := suite.createProduct("2.00")
	suite.addToCart(user.ID, product.ID, 1, "s")
	suite.addToCart(other.ID, product.ID, 1, "s")

	require.NoError(suite.T(), suite.cartService.ClearCart(suite.ctx, user.ID))
	require.NoError(suite.T(), suite.cartService.ClearCart(suite.ctx, user.ID))

	cart, err := suite.cartService.GetCart(suite.ctx, other.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cart.Items, 1)
}

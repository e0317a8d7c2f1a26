package service

import (
	"github.com/RoyceAzure/lab/shop/internal/apperr"
	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func checkoutParams(shippingCost string, usePoints *int, referralCode string) CheckoutParams {
	cost := decimal.RequireFromString(shippingCost)
	return CheckoutParams{
		ShippingStreet:     " Lenina 1 ",
		ShippingCity:       "Moscow",
		ShippingPostalCode: "101000",
		ShippingCountry:    "Russia",
		ShippingMethod:     "cdek",
		ShippingCost:       &cost,
		UsePoints:          usePoints,
		ReferralCode:       referralCode,
	}
}

func intPtr(i int) *int {
	return &i
}

func (suite *ServiceTestSuite) TestCheckoutWithPoints() {
	user := suite.createUser()
	suite.setPoints(user.ID, 10)
	product := suite.createProduct("10.00")
	suite.addToCart(user.ID, product.ID, 2, "m")

	order, err := suite.orderService.Checkout(suite.ctx, user.ID, checkoutParams("5", intPtr(3), ""))
	require.NoError(suite.T(), err)

	require.Equal(suite.T(), "22.00", order.TotalAmount.StringFixed(2))
	require.Equal(suite.T(), 3, order.UsedPoints)
	require.Equal(suite.T(), 0, order.EarnedPoints)
	require.Equal(suite.T(), model.OrderStatusPending, order.Status)
	require.Equal(suite.T(), "Lenina 1", order.ShippingStreet)
	require.Len(suite.T(), order.Items, 1)
	require.Equal(suite.T(), "10.00", order.Items[0].Price.StringFixed(2))
	require.Equal(suite.T(), 2, order.Items[0].Quantity)
	require.Equal(suite.T(), "m", order.Items[0].Size)

	reloaded, err := suite.store.GetUserByID(suite.ctx, user.ID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 7, reloaded.PointsBalance)
	require.Equal(suite.T(), user.PointsVersion+1, reloaded.PointsVersion)

	ledger, err := suite.store.ListPointsTransactions(suite.ctx, user.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), ledger, 1)
	require.Equal(suite.T(), -3, ledger[0].Delta)
	require.Equal(suite.T(), model.PointsReasonRedeem, ledger[0].Reason)
	require.Equal(suite.T(), 7, ledger[0].BalanceAfter)
	require.Equal(suite.T(), order.ID, *ledger[0].OrderID)

	cart, err := suite.cartService.GetCart(suite.ctx, user.ID)
	require.NoError(suite.T(), err)
	require.Empty(suite.T(), cart.Items)
}

func (suite *ServiceTestSuite) TestCheckoutPointsCappedByBalance() {
	user := suite.createUser()
	suite.setPoints(user.ID, 4)
	product := suite.createProduct("10.00")
	suite.addToCart(user.ID, product.ID, 1, "s")

	order, err := suite.orderService.Checkout(suite.ctx, user.ID, checkoutParams("0", intPtr(100), ""))
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 4, order.UsedPoints)
	require.Equal(suite.T(), "6.00", order.TotalAmount.StringFixed(2))

	reloaded, err := suite.store.GetUserByID(suite.ctx, user.ID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 0, reloaded.PointsBalance)
}

func (suite *ServiceTestSuite) TestCheckoutReferralBonus() {
	referrer := suite.createUser()
	user := suite.createUser()
	product := suite.createProduct("15.50")
	suite.addToCart(user.ID, product.ID, 2, "l")

	order, err := suite.orderService.Checkout(suite.ctx, user.ID, checkoutParams("5", nil, referrer.ReferralCode))
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 3, order.EarnedPoints)
	require.NotNil(suite.T(), order.ReferrerID)
	require.Equal(suite.T(), referrer.ID, *order.ReferrerID)
	require.Equal(suite.T(), "36.00", order.TotalAmount.StringFixed(2))

	reloaded, err := suite.store.GetUserByID(suite.ctx, referrer.ID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 3, reloaded.PointsBalance)

	ledger, err := suite.store.ListPointsTransactions(suite.ctx, referrer.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), ledger, 1)
	require.Equal(suite.T(), model.PointsReasonReferralBonus, ledger[0].Reason)
	require.Equal(suite.T(), 3, ledger[0].Delta)
	require.Equal(suite.T(), 3, ledger[0].BalanceAfter)
}

func (suite *ServiceTestSuite) TestCheckoutSelfReferralIgnored() {
	user := suite.createUser()
	product := suite.createProduct("100.00")
	suite.addToCart(user.ID, product.ID, 1, "m")

	order, err := suite.orderService.Checkout(suite.ctx, user.ID, checkoutParams("0", nil, user.ReferralCode))
	require.NoError(suite.T(), err)
	require.Nil(suite.T(), order.ReferrerID)
	require.Equal(suite.T(), 0, order.EarnedPoints)

	reloaded, err := suite.store.GetUserByID(suite.ctx, user.ID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 0, reloaded.PointsBalance)
}

func (suite *ServiceTestSuite) TestCheckoutUnknownReferralIgnored() {
	user := suite.createUser()
	product := suite.createProduct("10.00")
	suite.addToCart(user.ID, product.ID, 1, "m")

	order, err := suite.orderService.Checkout(suite.ctx, user.ID, checkoutParams("0", nil, "nosuchcd"))
	require.NoError(suite.T(), err)
	require.Nil(suite.T(), order.ReferrerID)
}

func (suite *ServiceTestSuite) TestCheckoutSkipsDeletedProducts() {
	user := suite.createUser()
	kept := suite.createProduct("10.00")
	gone := suite.createProduct("99.00")
	suite.addToCart(user.ID, kept.ID, 1, "m")
	suite.addToCart(user.ID, gone.ID, 1, "m")

	// 只刪商品本身, 保留購物車內的項目
	require.NoError(suite.T(), suite.conn.Delete(&model.Product{}, gone.ID).Error)

	order, err := suite.orderService.Checkout(suite.ctx, user.ID, checkoutParams("0", nil, ""))
	require.NoError(suite.T(), err)
	require.Len(suite.T(), order.Items, 1)
	require.Equal(suite.T(), kept.ID, *order.Items[0].ProductID)
	require.Equal(suite.T(), "10.00", order.TotalAmount.StringFixed(2))
}

func (suite *ServiceTestSuite) TestCheckoutEmptyCart() {
	user := suite.createUser()

	_, err := suite.orderService.Checkout(suite.ctx, user.ID, checkoutParams("0", nil, ""))
	suite.requireCode(err, apperr.BadRequestCode)
	require.ErrorIs(suite.T(), err, ErrCartEmpty)
}

func (suite *ServiceTestSuite) TestCheckoutValidation() {
	user := suite.createUser()
	product := suite.createProduct("10.00")
	suite.addToCart(user.ID, product.ID, 1, "m")

	arg := checkoutParams("-1", intPtr(-5), "")
	arg.ShippingMethod = "dhl"
	arg.ShippingCity = "   "

	_, err := suite.orderService.Checkout(suite.ctx, user.ID, arg)
	suite.requireCode(err, apperr.BadRequestCode)
	require.Len(suite.T(), apperr.As(err).Messages, 4)

	arg = checkoutParams("0", nil, "")
	arg.ShippingCost = nil
	_, err = suite.orderService.Checkout(suite.ctx, user.ID, arg)
	suite.requireCode(err, apperr.BadRequestCode)

	// 驗證失敗不會動到購物車
	cart, err := suite.cartService.GetCart(suite.ctx, user.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cart.Items, 1)
}

func (suite *ServiceTestSuite) TestListAndGetUserOrders() {
	user := suite.createUser()
	other := suite.createUser()
	product := suite.createProduct("10.00")

	suite.addToCart(user.ID, product.ID, 1, "m")
	first, err := suite.orderService.Checkout(suite.ctx, user.ID, checkoutParams("0", nil, ""))
	require.NoError(suite.T(), err)
	suite.addToCart(user.ID, product.ID, 2, "m")
	second, err := suite.orderService.Checkout(suite.ctx, user.ID, checkoutParams("0", nil, ""))
	require.NoError(suite.T(), err)

	orders, err := suite.orderService.ListUserOrders(suite.ctx, user.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), orders, 2)
	require.Equal(suite.T(), second.ID, orders[0].ID)
	require.Equal(suite.T(), first.ID, orders[1].ID)

	_, err = suite.orderService.GetUserOrder(suite.ctx, other.ID, first.ID)
	suite.requireCode(err, apperr.NotFoundCode)

	got, err := suite.orderService.GetUserOrder(suite.ctx, user.ID, first.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), got.Items, 1)
}

func (suite *ServiceTestSuite) TestUpdateOrderStatus() {
	user := suite.createUser()
	product := suite.createProduct("10.00")
	suite.addToCart(user.ID, product.ID, 1, "m")
	order, err := suite.orderService.Checkout(suite.ctx, user.ID, checkoutParams("0", nil, ""))
	require.NoError(suite.T(), err)

	_, err = suite.orderService.UpdateOrderStatus(suite.ctx, order.ID, "LOST")
	suite.requireCode(err, apperr.BadRequestCode)

	_, err = suite.orderService.UpdateOrderStatus(suite.ctx, order.ID, "SHIPPED")
	suite.requireCode(err, apperr.ConflictCode)

	updated, err := suite.orderService.UpdateOrderStatus(suite.ctx, order.ID, "PENDING")
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), model.OrderStatusPending, updated.Status)

	for _, status := range []string{"PAID", "SHIPPED", "COMPLETED"} {
		updated, err = suite.orderService.UpdateOrderStatus(suite.ctx, order.ID, status)
		require.NoError(suite.T(), err)
		require.Equal(suite.T(), model.OrderStatus(status), updated.Status)
	}

	_, err = suite.orderService.UpdateOrderStatus(suite.ctx, order.ID, "CANCELED")
	suite.requireCode(err, apperr.ConflictCode)

	_, err = suite.orderService.UpdateOrderStatus(suite.ctx, 9999, "PAID")
	suite.requireCode(err, apperr.NotFoundCode)
}

func (suite *ServiceTestSuite) TestReferralBonusFloor() {
	require.Equal(suite.T(), 2, referralBonus(decimal.RequireFromString("29.99")))
	require.Equal(suite.T(), 0, referralBonus(decimal.RequireFromString("9.99")))
	require.Equal(suite.T(), 10, referralBonus(decimal.RequireFromString("100")))
}

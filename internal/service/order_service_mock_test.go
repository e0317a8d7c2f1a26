package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/shop/internal/apperr"
	"github.com/RoyceAzure/lab/shop/internal/domain/event"
	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/redis_repo"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCheckoutLocker struct {
	mock.Mock
}

func (m *mockCheckoutLocker) Acquire(ctx context.Context, userID uint) (func(context.Context) error, error) {
	args := m.Called(ctx, userID)
	release, _ := args.Get(0).(func(context.Context) error)
	return release, args.Error(1)
}

type mockOrderEventProducer struct {
	mock.Mock
}

func (m *mockOrderEventProducer) ProduceOrderCreated(ctx context.Context, evt *event.OrderCreatedEvent) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *mockOrderEventProducer) ProduceOrderStatusChanged(ctx context.Context, evt *event.OrderStatusChangedEvent) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *mockOrderEventProducer) Close() error {
	return m.Called().Error(0)
}

func (suite *ServiceTestSuite) TestCheckoutLockHeld() {
	user := suite.createUser()
	product := suite.createProduct("10.00")
	suite.addToCart(user.ID, product.ID, 1, "m")

	locker := new(mockCheckoutLocker)
	locker.On("Acquire", mock.Anything, user.ID).Return(nil, redis_repo.ErrLockHeld)
	orderService := NewOrderService(suite.store, locker, nil, nil)

	_, err := orderService.Checkout(suite.ctx, user.ID, checkoutParams("0", nil, ""))
	suite.requireCode(err, apperr.ConflictCode)
	require.ErrorIs(suite.T(), err, ErrCheckoutInProgress)

	// 購物車不受影響
	cart, err := suite.cartService.GetCart(suite.ctx, user.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cart.Items, 1)
	locker.AssertExpectations(suite.T())
}

func (suite *ServiceTestSuite) TestCheckoutReleasesLockAndPublishes() {
	user := suite.createUser()
	product := suite.createProduct("10.00")
	suite.addToCart(user.ID, product.ID, 1, "m")

	released := false
	release := func(context.Context) error {
		released = true
		return nil
	}
	locker := new(mockCheckoutLocker)
	locker.On("Acquire", mock.Anything, user.ID).Return(release, nil)

	producer := new(mockOrderEventProducer)
	producer.On("ProduceOrderCreated", mock.Anything, mock.MatchedBy(func(evt *event.OrderCreatedEvent) bool {
		return evt.UserID == user.ID && len(evt.Items) == 1
	})).Return(errors.New("broker unavailable"))

	orderService := NewOrderService(suite.store, locker, producer, nil)

	// 事件發送失敗不影響結帳結果
	order, err := orderService.Checkout(suite.ctx, user.ID, checkoutParams("0", nil, ""))
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), "10.00", order.TotalAmount.StringFixed(2))
	require.True(suite.T(), released)
	locker.AssertExpectations(suite.T())
	producer.AssertExpectations(suite.T())
}

func (suite *ServiceTestSuite) TestCheckoutReleasesLockOnFailure() {
	user := suite.createUser()

	released := false
	locker := new(mockCheckoutLocker)
	locker.On("Acquire", mock.Anything, user.ID).Return(func(context.Context) error {
		released = true
		return nil
	}, nil)
	orderService := NewOrderService(suite.store, locker, nil, nil)

	_, err := orderService.Checkout(suite.ctx, user.ID, checkoutParams("0", nil, ""))
	require.ErrorIs(suite.T(), err, ErrCartEmpty)
	require.True(suite.T(), released)
}

func (suite *ServiceTestSuite) TestUpdateOrderStatusPublishesOnlyOnChange() {
	user := suite.createUser()
	product := suite.createProduct("10.00")
	suite.addToCart(user.ID, product.ID, 1, "m")
	order, err := suite.orderService.Checkout(suite.ctx, user.ID, checkoutParams("0", nil, ""))
	require.NoError(suite.T(), err)

	producer := new(mockOrderEventProducer)
	producer.On("ProduceOrderStatusChanged", mock.Anything, mock.MatchedBy(func(evt *event.OrderStatusChangedEvent) bool {
		return evt.OrderID == order.ID && evt.From == string(model.OrderStatusPending) && evt.To == string(model.OrderStatusPaid)
	})).Return(nil).Once()
	orderService := NewOrderService(suite.store, nil, producer, nil)

	_, err = orderService.UpdateOrderStatus(suite.ctx, order.ID, string(model.OrderStatusPaid))
	require.NoError(suite.T(), err)
	// 相同狀態不再發送事件
	_, err = orderService.UpdateOrderStatus(suite.ctx, order.ID, string(model.OrderStatusPaid))
	require.NoError(suite.T(), err)
	producer.AssertExpectations(suite.T())
}

package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/shop/internal/apperr"
	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/stretchr/testify/require"
)

var errLedgerWrite = errors.New("ledger write failed")

// faultyStore 在交易中模擬結帳中途失敗
type faultyStore struct {
	db.IStore
	loseCAS       bool
	failLedgerFor model.PointsReason
}

func (s *faultyStore) ExecTx(ctx context.Context, fn func(db.IStore) error) error {
	return s.IStore.ExecTx(ctx, func(tx db.IStore) error {
		return fn(&faultyStore{IStore: tx, loseCAS: s.loseCAS, failLedgerFor: s.failLedgerFor})
	})
}

func (s *faultyStore) DeductUserPoints(ctx context.Context, id uint, version int, amount int) (bool, error) {
	if s.loseCAS {
		return false, nil
	}
	return s.IStore.DeductUserPoints(ctx, id, version, amount)
}

func (s *faultyStore) CreatePointsTransaction(ctx context.Context, txn *model.PointsTransaction) error {
	if s.failLedgerFor != "" && txn.Reason == s.failLedgerFor {
		return errLedgerWrite
	}
	return s.IStore.CreatePointsTransaction(ctx, txn)
}

func (suite *ServiceTestSuite) countRows(table any) int64 {
	var n int64
	require.NoError(suite.T(), suite.conn.Model(table).Count(&n).Error)
	return n
}

// requireNothingSettled 訂單, 明細, 點數紀錄都不存在, 購物車與點數不變
func (suite *ServiceTestSuite) requireNothingSettled(buyerID, referrerID uint, buyerPoints, referrerPoints, cartLines int) {
	require.Zero(suite.T(), suite.countRows(&model.Order{}))
	require.Zero(suite.T(), suite.countRows(&model.OrderItem{}))
	require.Zero(suite.T(), suite.countRows(&model.PointsTransaction{}))

	cart, err := suite.cartService.GetCart(suite.ctx, buyerID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), cart.Items, cartLines)

	buyer, err := suite.store.GetUserByID(suite.ctx, buyerID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), buyerPoints, buyer.PointsBalance)

	referrer, err := suite.store.GetUserByID(suite.ctx, referrerID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), referrerPoints, referrer.PointsBalance)
}

func (suite *ServiceTestSuite) TestCheckoutLostPointsRaceRollsBack() {
	referrer := suite.createUser()
	buyer := suite.createUser()
	suite.setPoints(buyer.ID, 10)
	first := suite.createProduct("20.00")
	second := suite.createProduct("15.00")
	suite.addToCart(buyer.ID, first.ID, 1, "m")
	suite.addToCart(buyer.ID, second.ID, 2, "l")

	orderService := NewOrderService(&faultyStore{IStore: suite.store, loseCAS: true}, nil, nil, nil)
	_, err := orderService.Checkout(suite.ctx, buyer.ID, checkoutParams("5", intPtr(4), referrer.ReferralCode))
	suite.requireCode(err, apperr.ConflictCode)
	require.ErrorIs(suite.T(), err, ErrPointsRaceLost)

	suite.requireNothingSettled(buyer.ID, referrer.ID, 10, 0, 2)
}

func (suite *ServiceTestSuite) TestCheckoutFailedReferralLedgerRollsBack() {
	referrer := suite.createUser()
	buyer := suite.createUser()
	suite.setPoints(buyer.ID, 10)
	product := suite.createProduct("50.00")
	suite.addToCart(buyer.ID, product.ID, 1, "s")

	// 扣點與推薦人加點都已執行後才失敗
	store := &faultyStore{IStore: suite.store, failLedgerFor: model.PointsReasonReferralBonus}
	orderService := NewOrderService(store, nil, nil, nil)
	_, err := orderService.Checkout(suite.ctx, buyer.ID, checkoutParams("0", intPtr(3), referrer.ReferralCode))
	require.ErrorIs(suite.T(), err, errLedgerWrite)

	suite.requireNothingSettled(buyer.ID, referrer.ID, 10, 0, 1)

	// 同一份購物車之後仍可正常結帳
	order, err := suite.orderService.Checkout(suite.ctx, buyer.ID, checkoutParams("0", intPtr(3), referrer.ReferralCode))
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 5, order.EarnedPoints)
	require.EqualValues(suite.T(), 1, suite.countRows(&model.Order{}))
}

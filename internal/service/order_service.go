package service

import (
	"context"
	"errors"
	"strings"

	"github.com/RoyceAzure/lab/shop/internal/apperr"
	"github.com/RoyceAzure/lab/shop/internal/constants"
	"github.com/RoyceAzure/lab/shop/internal/domain/event"
	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/infra/producer"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/shop/internal/util/validation"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	ErrCartEmpty          = errors.New("cart is empty")
	ErrPointsRaceLost     = errors.New("points balance changed during checkout")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
)

type CheckoutParams struct {
	ShippingStreet     string           `json:"shipping_street" validate:"notblank"`
	ShippingCity       string           `json:"shipping_city" validate:"notblank"`
	ShippingPostalCode string           `json:"shipping_postal_code" validate:"notblank"`
	ShippingCountry    string           `json:"shipping_country" validate:"notblank"`
	ShippingMethod     string           `json:"shipping_method" validate:"oneof=pochta cdek"`
	ShippingCost       *decimal.Decimal `json:"shipping_cost" validate:"-"`
	UsePoints          *int             `json:"use_points" validate:"omitnil,min=0"`
	ReferralCode       string           `json:"referral_code" validate:"-"`
}

func (p *CheckoutParams) normalize() {
	p.ShippingStreet = strings.TrimSpace(p.ShippingStreet)
	p.ShippingCity = strings.TrimSpace(p.ShippingCity)
	p.ShippingPostalCode = strings.TrimSpace(p.ShippingPostalCode)
	p.ShippingCountry = strings.TrimSpace(p.ShippingCountry)
	p.ShippingMethod = strings.TrimSpace(p.ShippingMethod)
	p.ReferralCode = strings.TrimSpace(p.ReferralCode)
}

func (p *CheckoutParams) validate() error {
	merr := validation.Struct(p)
	if p.ShippingCost == nil || p.ShippingCost.IsNegative() {
		merr = multierror.Append(merr, errors.New("shipping_cost must be a non-negative number"))
	}
	return badRequest(merr)
}

type IOrderService interface {
	Checkout(ctx context.Context, userID uint, arg CheckoutParams) (*model.Order, error)
	ListUserOrders(ctx context.Context, userID uint) ([]model.Order, error)
	GetUserOrder(ctx context.Context, userID, orderID uint) (*model.Order, error)
	ListAllOrders(ctx context.Context) ([]model.Order, error)
	GetOrder(ctx context.Context, orderID uint) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uint, status string) (*model.Order, error)
}

type OrderService struct {
	dbDao         db.IStore
	locker        redis_repo.ICheckoutLocker
	eventProducer producer.IOrderEventProducer
	logger        *zerolog.Logger
}

func NewOrderService(dbDao db.IStore, locker redis_repo.ICheckoutLocker, eventProducer producer.IOrderEventProducer, logger *zerolog.Logger) *OrderService {
	if locker == nil {
		locker = redis_repo.NoopCheckoutLocker{}
	}
	if eventProducer == nil {
		eventProducer = producer.NoopOrderEventProducer{}
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &OrderService{
		dbDao:         dbDao,
		locker:        locker,
		eventProducer: eventProducer,
		logger:        logger,
	}
}

// referralBonus floor(subtotal * 10%)
func referralBonus(subtotal decimal.Decimal) int {
	return int(subtotal.Mul(decimal.NewFromInt(constants.ReferralBonusPercent)).
		Div(decimal.NewFromInt(100)).
		Floor().
		IntPart())
}

/*
Checkout 將購物車轉成訂單, 全部在同一個交易中完成:
 1. 購物車為空 => 400
 2. subtotal = Σ(現價 × 數量), 已刪除的商品略過
 3. used = min(use_points, 餘額), 以 points_version 做 CAS 扣點
 4. 推薦人(非本人)獲得 floor(subtotal × 10%)
 5. total = subtotal + shipping_cost - used
 6. 建立訂單與明細(價格凍結), 清空購物車
*/
func (o *OrderService) Checkout(ctx context.Context, userID uint, arg CheckoutParams) (*model.Order, error) {
	arg.normalize()
	if err := arg.validate(); err != nil {
		return nil, err
	}

	release, err := o.locker.Acquire(ctx, userID)
	if err != nil {
		if errors.Is(err, redis_repo.ErrLockHeld) {
			return nil, apperr.Wrap(apperr.ConflictCode, ErrCheckoutInProgress, ErrCheckoutInProgress.Error())
		}
		return nil, err
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			o.logger.Warn().Err(err).Uint("user_id", userID).Msg("failed to release checkout lock")
		}
	}()

	var order *model.Order
	err = o.dbDao.ExecTx(ctx, func(store db.IStore) error {
		var err error
		order, err = o.settle(ctx, store, userID, arg)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := o.eventProducer.ProduceOrderCreated(ctx, event.NewOrderCreatedEvent(order)); err != nil {
		o.logger.Error().Err(err).Uint("order_id", order.ID).Msg("failed to publish order created event")
	}
	return order, nil
}

func (o *OrderService) settle(ctx context.Context, store db.IStore, userID uint, arg CheckoutParams) (*model.Order, error) {
	user, err := store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "user not found")
	}

	cartItems, err := store.ListCartItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, apperr.Wrap(apperr.BadRequestCode, ErrCartEmpty, ErrCartEmpty.Error())
	}

	var referrer *model.User
	if arg.ReferralCode != "" {
		ref, err := store.GetUserByReferralCode(ctx, arg.ReferralCode)
		if err != nil && !db.IsNotFound(err) {
			return nil, err
		}
		if ref != nil && ref.ID != userID {
			referrer = ref
		}
	}

	subtotal := decimal.Zero
	items := make([]model.OrderItem, 0, len(cartItems))
	for _, ci := range cartItems {
		if ci.Product == nil {
			continue
		}
		productID := ci.ProductID
		subtotal = subtotal.Add(ci.LineTotal())
		items = append(items, model.OrderItem{
			ProductID: &productID,
			Quantity:  ci.Quantity,
			Price:     ci.Product.Price,
			Size:      ci.Size,
		})
	}

	used := 0
	if arg.UsePoints != nil {
		used = min(*arg.UsePoints, user.PointsBalance)
		used = max(used, 0)
	}

	earned := 0
	if referrer != nil {
		earned = referralBonus(subtotal)
	}

	shippingCost := *arg.ShippingCost
	order := &model.Order{
		UserID:             &userID,
		Status:             model.OrderStatusPending,
		TotalAmount:        subtotal.Add(shippingCost).Sub(decimal.NewFromInt(int64(used))),
		UsedPoints:         used,
		EarnedPoints:       earned,
		ShippingStreet:     arg.ShippingStreet,
		ShippingCity:       arg.ShippingCity,
		ShippingPostalCode: arg.ShippingPostalCode,
		ShippingCountry:    arg.ShippingCountry,
		ShippingMethod:     arg.ShippingMethod,
		ShippingCost:       shippingCost,
		Items:              items,
	}
	if referrer != nil {
		order.ReferrerID = &referrer.ID
	}
	if err := store.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	if used > 0 {
		ok, err := store.DeductUserPoints(ctx, user.ID, user.PointsVersion, used)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.Wrap(apperr.ConflictCode, ErrPointsRaceLost, "points balance changed, please retry")
		}
		err = store.CreatePointsTransaction(ctx, &model.PointsTransaction{
			UserID:       user.ID,
			OrderID:      &order.ID,
			Delta:        -used,
			Reason:       model.PointsReasonRedeem,
			BalanceAfter: user.PointsBalance - used,
		})
		if err != nil {
			return nil, err
		}
	}

	if referrer != nil && earned > 0 {
		if err := store.AddUserPoints(ctx, referrer.ID, earned); err != nil {
			return nil, err
		}
		credited, err := store.GetUserByID(ctx, referrer.ID)
		if err != nil {
			return nil, err
		}
		err = store.CreatePointsTransaction(ctx, &model.PointsTransaction{
			UserID:       referrer.ID,
			OrderID:      &order.ID,
			Delta:        earned,
			Reason:       model.PointsReasonReferralBonus,
			BalanceAfter: credited.PointsBalance,
		})
		if err != nil {
			return nil, err
		}
	}

	if err := store.ClearCart(ctx, userID); err != nil {
		return nil, err
	}
	return order, nil
}

func (o *OrderService) ListUserOrders(ctx context.Context, userID uint) ([]model.Order, error) {
	return o.dbDao.ListOrdersByUser(ctx, userID)
}

func (o *OrderService) GetUserOrder(ctx context.Context, userID, orderID uint) (*model.Order, error) {
	order, err := o.dbDao.GetUserOrder(ctx, userID, orderID)
	if err != nil {
		return nil, notFoundOr(err, "order not found")
	}
	return order, nil
}

func (o *OrderService) ListAllOrders(ctx context.Context) ([]model.Order, error) {
	return o.dbDao.ListAllOrders(ctx)
}

func (o *OrderService) GetOrder(ctx context.Context, orderID uint) (*model.Order, error) {
	order, err := o.dbDao.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, notFoundOr(err, "order not found")
	}
	return order, nil
}

// UpdateOrderStatus 依狀態機轉換, 設定成目前狀態視為成功且不發事件
// 錯誤:
//   - 400: 未知的狀態
//   - 404: 訂單不存在
//   - 409: 不合法的狀態轉換
func (o *OrderService) UpdateOrderStatus(ctx context.Context, orderID uint, status string) (*model.Order, error) {
	next, ok := model.ParseOrderStatus(strings.TrimSpace(status))
	if !ok {
		return nil, apperr.New(apperr.BadRequestCode, "invalid status")
	}

	var prev model.OrderStatus
	var order *model.Order
	err := o.dbDao.ExecTx(ctx, func(store db.IStore) error {
		var err error
		order, err = store.GetOrderByID(ctx, orderID)
		if err != nil {
			return notFoundOr(err, "order not found")
		}
		prev = order.Status
		if !prev.CanTransitionTo(next) {
			return apperr.New(apperr.ConflictCode, "cannot change order status from "+string(prev)+" to "+string(next))
		}
		if prev == next {
			return nil
		}
		if err := store.UpdateOrderStatus(ctx, orderID, next); err != nil {
			return err
		}
		order.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	if prev != next {
		if err := o.eventProducer.ProduceOrderStatusChanged(ctx, event.NewOrderStatusChangedEvent(orderID, prev, next)); err != nil {
			o.logger.Error().Err(err).Uint("order_id", orderID).Msg("failed to publish order status changed event")
		}
	}
	return order, nil
}

var _ IOrderService = (*OrderService)(nil)

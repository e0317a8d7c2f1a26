package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/RoyceAzure/lab/shop/internal/apperr"
	"github.com/RoyceAzure/lab/shop/internal/constants"
	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/shopspring/decimal"
)

type CartView struct {
	Items []model.CartItem
	Total decimal.Decimal
}

type ICartService interface {
	GetCart(ctx context.Context, userID uint) (*CartView, error)
	AddToCart(ctx context.Context, userID, productID uint, quantity *int, size string) (*model.CartItem, error)
	// UpdateCartItem quantity 為 0 時刪除該項目並回傳 nil
	UpdateCartItem(ctx context.Context, userID, productID uint, quantity *int, size string) (*model.CartItem, error)
	RemoveProduct(ctx context.Context, userID, productID uint, size string) error
	ClearCart(ctx context.Context, userID uint) error
}

type CartService struct {
	dbDao db.IStore
}

func NewCartService(dbDao db.IStore) *CartService {
	return &CartService{dbDao: dbDao}
}

var errInvalidSize = apperr.New(apperr.BadRequestCode,
	fmt.Sprintf("invalid size, must be one of %s", strings.Join(constants.AllowedSizes, ", ")))

func normalizeSize(size string) string {
	return strings.ToLower(strings.TrimSpace(size))
}

// GetCart 商品已刪除的項目不列出也不計價
func (s *CartService) GetCart(ctx context.Context, userID uint) (*CartView, error) {
	items, err := s.dbDao.ListCartItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: make([]model.CartItem, 0, len(items)), Total: decimal.Zero}
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		view.Items = append(view.Items, item)
		view.Total = view.Total.Add(item.LineTotal())
	}
	return view, nil
}

// AddToCart 同商品同尺寸已存在時累加數量
// 錯誤:
//   - 400: product_id quantity size 不合法
//   - 404: 商品不存在
func (s *CartService) AddToCart(ctx context.Context, userID, productID uint, quantity *int, size string) (*model.CartItem, error) {
	qty := 1
	if quantity != nil {
		qty = *quantity
	}
	if productID == 0 || qty < 1 {
		return nil, apperr.New(apperr.BadRequestCode, "invalid product_id or quantity")
	}
	size = normalizeSize(size)
	if !constants.IsValidSize(size) {
		return nil, errInvalidSize
	}

	exists, err := s.dbDao.ProductExists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.New(apperr.NotFoundCode, "product not found")
	}

	err = s.dbDao.ExecTx(ctx, func(store db.IStore) error {
		item, err := store.GetCartItem(ctx, userID, productID, size)
		if err == nil {
			return store.IncrementCartItem(ctx, item.ID, qty)
		}
		if !db.IsNotFound(err) {
			return err
		}
		return store.CreateCartItem(ctx, &model.CartItem{
			UserID:    userID,
			ProductID: productID,
			Size:      size,
			Quantity:  qty,
		})
	})
	if err != nil {
		if !db.IsUniqueViolation(err) {
			return nil, err
		}
		// 同時新增同一項目, 改為累加
		item, getErr := s.dbDao.GetCartItem(ctx, userID, productID, size)
		if getErr != nil {
			return nil, getErr
		}
		if err := s.dbDao.IncrementCartItem(ctx, item.ID, qty); err != nil {
			return nil, err
		}
	}

	return s.dbDao.GetCartItem(ctx, userID, productID, size)
}

func (s *CartService) UpdateCartItem(ctx context.Context, userID, productID uint, quantity *int, size string) (*model.CartItem, error) {
	if productID == 0 || quantity == nil || *quantity < 0 {
		return nil, apperr.New(apperr.BadRequestCode, "invalid product_id or quantity")
	}
	size = normalizeSize(size)
	if !constants.IsValidSize(size) {
		return nil, errInvalidSize
	}

	item, err := s.dbDao.GetCartItem(ctx, userID, productID, size)
	if err != nil {
		return nil, notFoundOr(err, "item not found")
	}

	if *quantity == 0 {
		return nil, s.dbDao.DeleteCartItem(ctx, item.ID)
	}
	if err := s.dbDao.SetCartItemQuantity(ctx, item.ID, *quantity); err != nil {
		return nil, err
	}
	item.Quantity = *quantity
	return item, nil
}

// RemoveProduct size 為空時移除該商品所有尺寸
func (s *CartService) RemoveProduct(ctx context.Context, userID, productID uint, size string) error {
	size = normalizeSize(size)
	if size != "" && !constants.IsValidSize(size) {
		return errInvalidSize
	}
	deleted, err := s.dbDao.DeleteCartItemsByProduct(ctx, userID, productID, size)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperr.New(apperr.NotFoundCode, "item not found")
	}
	return nil
}

func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	return s.dbDao.ClearCart(ctx, userID)
}

var _ ICartService = (*CartService)(nil)

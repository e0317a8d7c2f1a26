package db

import (
	"context"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"gorm.io/gorm"
)

type ICartRepository interface {
	ListCartItems(ctx context.Context, userID uint) ([]model.CartItem, error)
	GetCartItem(ctx context.Context, userID, productID uint, size string) (*model.CartItem, error)
	CreateCartItem(ctx context.Context, item *model.CartItem) error
	SetCartItemQuantity(ctx context.Context, id uint, quantity int) error
	IncrementCartItem(ctx context.Context, id uint, delta int) error
	DeleteCartItem(ctx context.Context, id uint) error
	// DeleteCartItemsByProduct size 為空時刪除該商品所有尺寸, 回傳刪除筆數
	DeleteCartItemsByProduct(ctx context.Context, userID, productID uint, size string) (int64, error)
	ClearCart(ctx context.Context, userID uint) error
}

type CartRepo struct {
	dbDao *DbDao
}

func NewCartRepo(dbDao *DbDao) *CartRepo {
	return &CartRepo{dbDao: dbDao}
}

// ListCartItems 商品已刪除的項目 Product 為 nil
func (r *CartRepo) ListCartItems(ctx context.Context, userID uint) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.dbDao.WithContext(ctx).
		Preload("Product").
		Preload("Product.Images", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("user_id = ?", userID).
		Order("id").
		Find(&items).Error
	return items, err
}

func (r *CartRepo) GetCartItem(ctx context.Context, userID, productID uint, size string) (*model.CartItem, error) {
	var item model.CartItem
	err := r.dbDao.WithContext(ctx).
		Preload("Product").
		Preload("Product.Images", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("user_id = ? AND product_id = ? AND size = ?", userID, productID, size).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CartRepo) CreateCartItem(ctx context.Context, item *model.CartItem) error {
	return r.dbDao.WithContext(ctx).Omit("Product").Create(item).Error
}

func (r *CartRepo) SetCartItemQuantity(ctx context.Context, id uint, quantity int) error {
	return r.dbDao.WithContext(ctx).Model(&model.CartItem{}).Where("id = ?", id).Update("quantity", quantity).Error
}

func (r *CartRepo) IncrementCartItem(ctx context.Context, id uint, delta int) error {
	return r.dbDao.WithContext(ctx).Model(&model.CartItem{}).Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error
}

func (r *CartRepo) DeleteCartItem(ctx context.Context, id uint) error {
	return r.dbDao.WithContext(ctx).Delete(&model.CartItem{}, id).Error
}

func (r *CartRepo) DeleteCartItemsByProduct(ctx context.Context, userID, productID uint, size string) (int64, error) {
	query := r.dbDao.WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID)
	if size != "" {
		query = query.Where("size = ?", size)
	}
	result := query.Delete(&model.CartItem{})
	return result.RowsAffected, result.Error
}

// ClearCart 冪等
func (r *CartRepo) ClearCart(ctx context.Context, userID uint) error {
	return r.dbDao.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.CartItem{}).Error
}

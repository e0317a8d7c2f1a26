package db

import (
	"context"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"gorm.io/gorm"
)

type IOrderRepository interface {
	// CreateOrder 連同 Items 一起寫入
	CreateOrder(ctx context.Context, order *model.Order) error
	GetOrderByID(ctx context.Context, id uint) (*model.Order, error)
	GetUserOrder(ctx context.Context, userID, id uint) (*model.Order, error)
	ListOrdersByUser(ctx context.Context, userID uint) ([]model.Order, error)
	ListAllOrders(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id uint, status model.OrderStatus) error
	HasCompletedPurchase(ctx context.Context, userID, productID uint) (bool, error)
}

type OrderRepo struct {
	dbDao *DbDao
}

func NewOrderRepo(dbDao *DbDao) *OrderRepo {
	return &OrderRepo{dbDao: dbDao}
}

func (r *OrderRepo) withItems(ctx context.Context) *gorm.DB {
	return r.dbDao.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") })
}

func (r *OrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	return r.dbDao.WithContext(ctx).Create(order).Error
}

func (r *OrderRepo) GetOrderByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := r.withItems(ctx).First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) GetUserOrder(ctx context.Context, userID, id uint) (*model.Order, error) {
	var order model.Order
	err := r.withItems(ctx).Where("id = ? AND user_id = ?", id, userID).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// 新的在前
func (r *OrderRepo) ListOrdersByUser(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.withItems(ctx).Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC").Find(&orders).Error
	return orders, err
}

func (r *OrderRepo) ListAllOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := r.withItems(ctx).Order("created_at DESC").Order("id DESC").Find(&orders).Error
	return orders, err
}

func (r *OrderRepo) UpdateOrderStatus(ctx context.Context, id uint, status model.OrderStatus) error {
	return r.dbDao.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Update("status", status).Error
}

// HasCompletedPurchase 使用者是否有包含該商品且狀態為 COMPLETED 的訂單
func (r *OrderRepo) HasCompletedPurchase(ctx context.Context, userID, productID uint) (bool, error) {
	var count int64
	err := r.dbDao.WithContext(ctx).Model(&model.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.status = ? AND order_items.product_id = ?", userID, model.OrderStatusCompleted, productID).
		Count(&count).Error
	return count > 0, err
}

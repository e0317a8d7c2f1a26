package db

import (
	"context"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
)

type IPointsRepository interface {
	CreatePointsTransaction(ctx context.Context, txn *model.PointsTransaction) error
	ListPointsTransactions(ctx context.Context, userID uint) ([]model.PointsTransaction, error)
}

type PointsRepo struct {
	dbDao *DbDao
}

func NewPointsRepo(dbDao *DbDao) *PointsRepo {
	return &PointsRepo{dbDao: dbDao}
}

func (r *PointsRepo) CreatePointsTransaction(ctx context.Context, txn *model.PointsTransaction) error {
	return r.dbDao.WithContext(ctx).Create(txn).Error
}

func (r *PointsRepo) ListPointsTransactions(ctx context.Context, userID uint) ([]model.PointsTransaction, error) {
	var txns []model.PointsTransaction
	err := r.dbDao.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC").Find(&txns).Error
	return txns, err
}

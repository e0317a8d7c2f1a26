package db

import (
	"context"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"gorm.io/gorm"
)

type ICardRepository interface {
	ListCardsByUser(ctx context.Context, userID uint) ([]model.UserCard, error)
	CreateCard(ctx context.Context, card *model.UserCard) error
	DeleteUserCard(ctx context.Context, userID, id uint) error
}

type CardRepo struct {
	dbDao *DbDao
}

func NewCardRepo(dbDao *DbDao) *CardRepo {
	return &CardRepo{dbDao: dbDao}
}

func (r *CardRepo) ListCardsByUser(ctx context.Context, userID uint) ([]model.UserCard, error) {
	var cards []model.UserCard
	err := r.dbDao.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&cards).Error
	return cards, err
}

func (r *CardRepo) CreateCard(ctx context.Context, card *model.UserCard) error {
	return r.dbDao.WithContext(ctx).Omit("User").Create(card).Error
}

func (r *CardRepo) DeleteUserCard(ctx context.Context, userID, id uint) error {
	result := r.dbDao.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.UserCard{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

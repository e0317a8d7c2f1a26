package db

import (
	"context"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"gorm.io/gorm"
)

type IReviewRepository interface {
	ListReviewsByProduct(ctx context.Context, productID uint) ([]model.Review, error)
	ListAllReviews(ctx context.Context) ([]model.Review, error)
	GetReviewByID(ctx context.Context, id uint) (*model.Review, error)
	ReviewExists(ctx context.Context, userID, productID uint) (bool, error)
	CreateReview(ctx context.Context, review *model.Review) error
	UpdateReview(ctx context.Context, id uint, rating int, comment *string) error
	DeleteReview(ctx context.Context, id uint) error
}

type ReviewRepo struct {
	dbDao *DbDao
}

func NewReviewRepo(dbDao *DbDao) *ReviewRepo {
	return &ReviewRepo{dbDao: dbDao}
}

func (r *ReviewRepo) ListReviewsByProduct(ctx context.Context, productID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.dbDao.WithContext(ctx).Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC").Order("id DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepo) ListAllReviews(ctx context.Context) ([]model.Review, error) {
	var reviews []model.Review
	err := r.dbDao.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepo) GetReviewByID(ctx context.Context, id uint) (*model.Review, error) {
	var review model.Review
	err := r.dbDao.WithContext(ctx).First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepo) ReviewExists(ctx context.Context, userID, productID uint) (bool, error) {
	var count int64
	err := r.dbDao.WithContext(ctx).Model(&model.Review{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepo) CreateReview(ctx context.Context, review *model.Review) error {
	return r.dbDao.WithContext(ctx).Omit("User").Create(review).Error
}

func (r *ReviewRepo) UpdateReview(ctx context.Context, id uint, rating int, comment *string) error {
	return r.dbDao.WithContext(ctx).Model(&model.Review{}).Where("id = ?", id).
		Updates(map[string]any{"rating": rating, "comment": comment}).Error
}

func (r *ReviewRepo) DeleteReview(ctx context.Context, id uint) error {
	result := r.dbDao.WithContext(ctx).Delete(&model.Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

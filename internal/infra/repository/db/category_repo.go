package db

import (
	"context"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"gorm.io/gorm"
)

type ICategoryRepository interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, id uint) (*model.Category, error)
	// CategoryNameOrSlugTaken excludeID 為0時不排除任何分類
	CategoryNameOrSlugTaken(ctx context.Context, name, slug string, excludeID uint) (bool, error)
	CreateCategory(ctx context.Context, category *model.Category) error
	UpdateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id uint) error
}

type CategoryRepo struct {
	dbDao *DbDao
}

func NewCategoryRepo(dbDao *DbDao) *CategoryRepo {
	return &CategoryRepo{dbDao: dbDao}
}

func (r *CategoryRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.dbDao.WithContext(ctx).Order("name").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepo) GetCategoryByID(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	err := r.dbDao.WithContext(ctx).First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepo) CategoryNameOrSlugTaken(ctx context.Context, name, slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.dbDao.WithContext(ctx).Model(&model.Category{}).Where("(name = ? OR slug = ?)", name, slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *CategoryRepo) CreateCategory(ctx context.Context, category *model.Category) error {
	return r.dbDao.WithContext(ctx).Create(category).Error
}

func (r *CategoryRepo) UpdateCategory(ctx context.Context, category *model.Category) error {
	return r.dbDao.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]any{
			"name":        category.Name,
			"slug":        category.Slug,
			"description": category.Description,
		}).Error
}

// DeleteCategory 商品保留, category_id 清為 null
func (r *CategoryRepo) DeleteCategory(ctx context.Context, id uint) error {
	return r.dbDao.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Category{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

package service

import (
	"context"
	"strings"

	"github.com/RoyceAzure/lab/shop/internal/apperr"
	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
)

type CategoryParams struct {
	Name        *string
	Slug        *string
	Description *string
}

type ICategoryService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, arg CategoryParams) (*model.Category, error)
	UpdateCategory(ctx context.Context, id uint, arg CategoryParams) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
}

type CategoryService struct {
	dbDao db.IStore
}

func NewCategoryService(dbDao db.IStore) *CategoryService {
	return &CategoryService{dbDao: dbDao}
}

func trimOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return strings.TrimSpace(*s)
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.dbDao.ListCategories(ctx)
}

// CreateCategory
// 錯誤:
//   - 400: name 或 slug 為空
//   - 409: name 或 slug 已存在, 不會寫入任何資料
func (s *CategoryService) CreateCategory(ctx context.Context, arg CategoryParams) (*model.Category, error) {
	category := &model.Category{
		Name:        trimOr(arg.Name, ""),
		Slug:        trimOr(arg.Slug, ""),
		Description: trimOr(arg.Description, ""),
	}
	if category.Name == "" || category.Slug == "" {
		return nil, apperr.New(apperr.BadRequestCode, "name and slug are required")
	}

	taken, err := s.dbDao.CategoryNameOrSlugTaken(ctx, category.Name, category.Slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.New(apperr.ConflictCode, "category with this name or slug already exists")
	}

	if err := s.dbDao.CreateCategory(ctx, category); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apperr.Wrap(apperr.ConflictCode, err, "category with this name or slug already exists")
		}
		return nil, err
	}
	return category, nil
}

// UpdateCategory 未提供或空白的 name/slug 沿用原值
func (s *CategoryService) UpdateCategory(ctx context.Context, id uint, arg CategoryParams) (*model.Category, error) {
	category, err := s.dbDao.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "category not found")
	}

	if name := trimOr(arg.Name, ""); name != "" {
		category.Name = name
	}
	if slug := trimOr(arg.Slug, ""); slug != "" {
		category.Slug = slug
	}
	category.Description = trimOr(arg.Description, category.Description)

	taken, err := s.dbDao.CategoryNameOrSlugTaken(ctx, category.Name, category.Slug, category.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.New(apperr.ConflictCode, "another category with this name or slug exists")
	}

	if err := s.dbDao.UpdateCategory(ctx, category); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apperr.Wrap(apperr.ConflictCode, err, "another category with this name or slug exists")
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.dbDao.DeleteCategory(ctx, id); err != nil {
		return notFoundOr(err, "category not found")
	}
	return nil
}

var _ ICategoryService = (*CategoryService)(nil)

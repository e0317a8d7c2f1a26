package db

import (
	"context"

	"github.com/RoyceAzure/lab/shop/internal/constants"
	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"gorm.io/gorm"
)

// ProductFilter 商品列表查詢條件, Sort 為空時依熱門度排序
type ProductFilter struct {
	CategoryID *uint
	Search     string
	Sort       constants.SortOrderEnum
	Page       int
	PerPage    int
}

type IProductRepository interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error)
	ListAllProducts(ctx context.Context) ([]model.Product, error)
	ListNewestProducts(ctx context.Context, limit int) ([]model.Product, error)
	GetProductByID(ctx context.Context, id uint) (*model.Product, error)
	ProductExists(ctx context.Context, id uint) (bool, error)
	GetProductsByIDs(ctx context.Context, ids []uint) (map[uint]model.Product, error)
	CreateProduct(ctx context.Context, product *model.Product) error
	UpdateProductFields(ctx context.Context, id uint, updates map[string]any) error
	DeleteProduct(ctx context.Context, id uint) error
	CreateProductImage(ctx context.Context, image *model.ProductImage) error
	CountProductImages(ctx context.Context, productID uint) (int64, error)
	GetProductRatings(ctx context.Context, productIDs []uint) (map[uint]model.ProductRating, error)
}

type ProductRepo struct {
	dbDao *DbDao
}

func NewProductRepo(dbDao *DbDao) *ProductRepo {
	return &ProductRepo{dbDao: dbDao}
}

func (r *ProductRepo) withDetail(ctx context.Context) *gorm.DB {
	return r.dbDao.WithContext(ctx).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("id") })
}

// 分頁查詢商品
func (r *ProductRepo) ListProducts(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := r.dbDao.WithContext(ctx).Model(&model.Product{})
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Sort {
	case constants.SortOrderAsc:
		query = query.Order("price ASC").Order("id")
	case constants.SortOrderDesc:
		query = query.Order("price DESC").Order("id")
	default:
		query = query.Order("popularity DESC").Order("id")
	}

	offset := (filter.Page - 1) * filter.PerPage
	err := query.
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Offset(offset).Limit(filter.PerPage).
		Find(&products).Error
	return products, total, err
}

func (r *ProductRepo) ListAllProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.withDetail(ctx).Order("id").Find(&products).Error
	return products, err
}

func (r *ProductRepo) ListNewestProducts(ctx context.Context, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.withDetail(ctx).Order("created_at DESC").Order("id DESC").Limit(limit).Find(&products).Error
	return products, err
}

func (r *ProductRepo) GetProductByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	err := r.withDetail(ctx).First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepo) ProductExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.dbDao.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// GetProductsByIDs 不存在的 id 不會出現在結果中
func (r *ProductRepo) GetProductsByIDs(ctx context.Context, ids []uint) (map[uint]model.Product, error) {
	result := make(map[uint]model.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var products []model.Product
	if err := r.dbDao.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	for _, p := range products {
		result[p.ID] = p
	}
	return result, nil
}

func (r *ProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return r.dbDao.WithContext(ctx).Omit("Category", "Images").Create(product).Error
}

func (r *ProductRepo) UpdateProductFields(ctx context.Context, id uint, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.dbDao.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(updates).Error
}

// DeleteProduct 圖片 評論 購物車一併刪除, 訂單明細保留並清掉 product_id
func (r *ProductRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.dbDao.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&model.ProductImage{}, &model.Review{}, &model.CartItem{}} {
			if err := tx.Where("product_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&model.OrderItem{}).Where("product_id = ?", id).Update("product_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Product{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *ProductRepo) CreateProductImage(ctx context.Context, image *model.ProductImage) error {
	return r.dbDao.WithContext(ctx).Create(image).Error
}

func (r *ProductRepo) CountProductImages(ctx context.Context, productID uint) (int64, error) {
	var count int64
	err := r.dbDao.WithContext(ctx).Model(&model.ProductImage{}).Where("product_id = ?", productID).Count(&count).Error
	return count, err
}

func (r *ProductRepo) GetProductRatings(ctx context.Context, productIDs []uint) (map[uint]model.ProductRating, error) {
	result := make(map[uint]model.ProductRating, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}
	var rows []model.ProductRating
	err := r.dbDao.WithContext(ctx).Model(&model.Review{}).
		Select("product_id, AVG(rating) AS average_rating, COUNT(*) AS reviews_count").
		Where("product_id IN ?", productIDs).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ProductID] = row
	}
	return result, nil
}

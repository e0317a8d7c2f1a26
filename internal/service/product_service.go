package service

import (
	"context"
	"errors"
	"io"
	"math"
	"strings"

	"github.com/RoyceAzure/lab/shop/internal/apperr"
	"github.com/RoyceAzure/lab/shop/internal/constants"
	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shop/internal/infra/storage"
	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"
)

// ProductView 商品加上評論統計, 沒有評論時 AverageRating 為 nil
type ProductView struct {
	model.Product
	AverageRating *float64
	ReviewsCount  int64
}

type ProductPage struct {
	Products    []ProductView
	Total       int64
	Pages       int
	CurrentPage int
}

type ProductQuery struct {
	Page       int
	PerPage    int
	CategoryID *uint
	Search     string
	Sort       string
}

// ProductParams nil 欄位表示未提供
type ProductParams struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	Popularity  *int
	CategoryID  *uint
}

type IProductService interface {
	ListProducts(ctx context.Context, q ProductQuery) (*ProductPage, error)
	ListAllProducts(ctx context.Context) ([]ProductView, error)
	ListNewestProducts(ctx context.Context, limit int) ([]ProductView, error)
	GetProduct(ctx context.Context, id uint) (*ProductView, error)
	ListGallery(ctx context.Context, id uint) ([]string, error)
	CreateProduct(ctx context.Context, arg ProductParams) (*ProductView, error)
	PatchProduct(ctx context.Context, id uint, arg ProductParams) (*ProductView, error)
	ReplaceProduct(ctx context.Context, id uint, arg ProductParams) (*ProductView, error)
	DeleteProduct(ctx context.Context, id uint) error
	UploadImage(ctx context.Context, id uint, filename string, r io.Reader) (*model.ProductImage, error)
}

type ProductService struct {
	dbDao        db.IStore
	imageStorage storage.IImageStorage
}

func NewProductService(dbDao db.IStore, imageStorage storage.IImageStorage) *ProductService {
	return &ProductService{dbDao: dbDao, imageStorage: imageStorage}
}

func (s *ProductService) withRatings(ctx context.Context, products []model.Product) ([]ProductView, error) {
	ids := make([]uint, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	ratings, err := s.dbDao.GetProductRatings(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		view := ProductView{Product: p}
		if r, ok := ratings[p.ID]; ok && r.ReviewsCount > 0 {
			avg := math.Round(r.AverageRating*100) / 100
			view.AverageRating = &avg
			view.ReviewsCount = r.ReviewsCount
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *ProductService) ListProducts(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	if q.Page < 1 {
		q.Page = constants.DefaultPaging
	}
	if q.PerPage < 1 {
		q.PerPage = constants.DefaultPagingSize
	}
	if q.PerPage > constants.MaxPagingSize {
		q.PerPage = constants.MaxPagingSize
	}

	filter := db.ProductFilter{
		CategoryID: q.CategoryID,
		Search:     strings.TrimSpace(q.Search),
		Page:       q.Page,
		PerPage:    q.PerPage,
	}
	if constants.IsValidSortOrderEnum(q.Sort) {
		filter.Sort = constants.SortOrderEnum(q.Sort)
	}

	products, total, err := s.dbDao.ListProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	views, err := s.withRatings(ctx, products)
	if err != nil {
		return nil, err
	}

	return &ProductPage{
		Products:    views,
		Total:       total,
		Pages:       int((total + int64(q.PerPage) - 1) / int64(q.PerPage)),
		CurrentPage: q.Page,
	}, nil
}

func (s *ProductService) ListAllProducts(ctx context.Context) ([]ProductView, error) {
	products, err := s.dbDao.ListAllProducts(ctx)
	if err != nil {
		return nil, err
	}
	return s.withRatings(ctx, products)
}

func (s *ProductService) ListNewestProducts(ctx context.Context, limit int) ([]ProductView, error) {
	if limit < 1 {
		limit = constants.DefaultNewLimit
	}
	if limit > constants.MaxPagingSize {
		limit = constants.MaxPagingSize
	}
	products, err := s.dbDao.ListNewestProducts(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.withRatings(ctx, products)
}

func (s *ProductService) GetProduct(ctx context.Context, id uint) (*ProductView, error) {
	product, err := s.dbDao.GetProductByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "product not found")
	}
	views, err := s.withRatings(ctx, []model.Product{*product})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *ProductService) ListGallery(ctx context.Context, id uint) ([]string, error) {
	return s.imageStorage.ListProductGallery(id)
}

func (s *ProductService) validateCategory(ctx context.Context, id *uint, merr *multierror.Error) *multierror.Error {
	if id == nil {
		return multierror.Append(merr, errors.New("invalid category_id"))
	}
	if _, err := s.dbDao.GetCategoryByID(ctx, *id); err != nil {
		return multierror.Append(merr, errors.New("invalid category_id"))
	}
	return merr
}

// validateFull 新增與整筆更新使用: name price category_id 皆必填
func (s *ProductService) validateFull(ctx context.Context, arg ProductParams) error {
	var merr *multierror.Error
	if trimOr(arg.Name, "") == "" {
		merr = multierror.Append(merr, errors.New("name is required"))
	}
	if arg.Price == nil || !arg.Price.IsPositive() {
		merr = multierror.Append(merr, errors.New("price must be a positive number"))
	}
	merr = s.validateCategory(ctx, arg.CategoryID, merr)
	return badRequest(merr)
}

func (s *ProductService) CreateProduct(ctx context.Context, arg ProductParams) (*ProductView, error) {
	if err := s.validateFull(ctx, arg); err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:        trimOr(arg.Name, ""),
		Description: trimOr(arg.Description, ""),
		Price:       *arg.Price,
		CategoryID:  arg.CategoryID,
	}
	if arg.Stock != nil {
		product.Stock = *arg.Stock
	}
	if arg.Popularity != nil {
		product.Popularity = *arg.Popularity
	}
	if err := s.dbDao.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, product.ID)
}

// PatchProduct 只更新有提供的欄位
func (s *ProductService) PatchProduct(ctx context.Context, id uint, arg ProductParams) (*ProductView, error) {
	if _, err := s.dbDao.GetProductByID(ctx, id); err != nil {
		return nil, notFoundOr(err, "product not found")
	}

	var merr *multierror.Error
	updates := map[string]any{}
	if arg.Name != nil {
		if name := strings.TrimSpace(*arg.Name); name == "" {
			merr = multierror.Append(merr, errors.New("name is required"))
		} else {
			updates["name"] = name
		}
	}
	if arg.Price != nil {
		if !arg.Price.IsPositive() {
			merr = multierror.Append(merr, errors.New("price must be a positive number"))
		} else {
			updates["price"] = *arg.Price
		}
	}
	if arg.CategoryID != nil {
		merr = s.validateCategory(ctx, arg.CategoryID, merr)
		updates["category_id"] = *arg.CategoryID
	}
	if arg.Description != nil {
		updates["description"] = strings.TrimSpace(*arg.Description)
	}
	if arg.Stock != nil {
		updates["stock"] = *arg.Stock
	}
	if arg.Popularity != nil {
		updates["popularity"] = *arg.Popularity
	}
	if err := badRequest(merr); err != nil {
		return nil, err
	}

	if err := s.dbDao.UpdateProductFields(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, id)
}

// ReplaceProduct name price category_id 必填, 其餘未提供時沿用原值
func (s *ProductService) ReplaceProduct(ctx context.Context, id uint, arg ProductParams) (*ProductView, error) {
	if _, err := s.dbDao.GetProductByID(ctx, id); err != nil {
		return nil, notFoundOr(err, "product not found")
	}
	if err := s.validateFull(ctx, arg); err != nil {
		return nil, err
	}
	return s.PatchProduct(ctx, id, arg)
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.dbDao.DeleteProduct(ctx, id); err != nil {
		return notFoundOr(err, "product not found")
	}
	return nil
}

// UploadImage 第一張圖片設為主圖
func (s *ProductService) UploadImage(ctx context.Context, id uint, filename string, r io.Reader) (*model.ProductImage, error) {
	exists, err := s.dbDao.ProductExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.New(apperr.NotFoundCode, "product not found")
	}
	if filename == "" {
		return nil, apperr.New(apperr.BadRequestCode, "no file provided")
	}
	if _, ok := storage.AllowedImageFile(filename); !ok {
		return nil, apperr.New(apperr.BadRequestCode, "invalid file type")
	}

	stored, err := s.imageStorage.SaveProductImage(filename, r)
	if err != nil {
		return nil, err
	}

	count, err := s.dbDao.CountProductImages(ctx, id)
	if err != nil {
		return nil, err
	}
	image := &model.ProductImage{
		ProductID: id,
		Filename:  stored,
		IsPrimary: count == 0,
	}
	if err := s.dbDao.CreateProductImage(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

var _ IProductService = (*ProductService)(nil)

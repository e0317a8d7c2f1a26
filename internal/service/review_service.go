package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/RoyceAzure/lab/shop/internal/apperr"
	"github.com/RoyceAzure/lab/shop/internal/constants"
	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/infra/repository/db"
	"github.com/hashicorp/go-multierror"
)

type ReviewParams struct {
	Rating    *int    `json:"rating"`
	Comment   *string `json:"comment"`
	ProductID *uint   `json:"product_id"`
}

type IReviewService interface {
	ListByProduct(ctx context.Context, productID uint) ([]model.Review, error)
	CreateReview(ctx context.Context, userID uint, arg ReviewParams) (*model.Review, error)
	UpdateReview(ctx context.Context, userID, reviewID uint, arg ReviewParams) (*model.Review, error)
	DeleteReview(ctx context.Context, userID, reviewID uint) error
	ListAllReviews(ctx context.Context) ([]model.Review, error)
	AdminDeleteReview(ctx context.Context, reviewID uint) error
}

type ReviewService struct {
	dbDao db.IStore
}

func NewReviewService(dbDao db.IStore) *ReviewService {
	return &ReviewService{dbDao: dbDao}
}

func validateRatingAndComment(merr *multierror.Error, arg ReviewParams) *multierror.Error {
	if arg.Rating == nil || *arg.Rating < 1 || *arg.Rating > 5 {
		merr = multierror.Append(merr, errors.New("rating must be between 1 and 5"))
	}
	if arg.Comment != nil && utf8.RuneCountInString(*arg.Comment) > constants.MaxReviewCommentLen {
		merr = multierror.Append(merr, fmt.Errorf("comment must be at most %d characters", constants.MaxReviewCommentLen))
	}
	return merr
}

func (s *ReviewService) productExists(ctx context.Context, productID *uint) (bool, error) {
	if productID == nil || *productID == 0 {
		return false, nil
	}
	return s.dbDao.ProductExists(ctx, *productID)
}

// ListByProduct 新的在前, 附帶作者資料
func (s *ReviewService) ListByProduct(ctx context.Context, productID uint) ([]model.Review, error) {
	if productID == 0 {
		return nil, apperr.New(apperr.BadRequestCode, "product_id is required")
	}
	exists, err := s.dbDao.ProductExists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.New(apperr.BadRequestCode, "invalid product_id")
	}
	return s.dbDao.ListReviewsByProduct(ctx, productID)
}

// CreateReview 只有訂單狀態為 COMPLETED 且含該商品的使用者可以評論
// 錯誤:
//   - 400: rating comment product_id 不合法
//   - 403: 沒有已完成的購買紀錄
//   - 409: 已評論過
func (s *ReviewService) CreateReview(ctx context.Context, userID uint, arg ReviewParams) (*model.Review, error) {
	merr := validateRatingAndComment(nil, arg)
	exists, err := s.productExists(ctx, arg.ProductID)
	if err != nil {
		return nil, err
	}
	if !exists {
		merr = multierror.Append(merr, errors.New("invalid or missing product_id"))
	}
	if err := badRequest(merr); err != nil {
		return nil, err
	}
	productID := *arg.ProductID

	reviewed, err := s.dbDao.ReviewExists(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, apperr.New(apperr.ConflictCode, "review already exists")
	}

	purchased, err := s.dbDao.HasCompletedPurchase(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, apperr.New(apperr.UnauthorizedCode, "you can only review purchased products")
	}

	review := &model.Review{
		Rating:    *arg.Rating,
		Comment:   arg.Comment,
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.dbDao.CreateReview(ctx, review); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apperr.Wrap(apperr.ConflictCode, err, "review already exists")
		}
		return nil, err
	}
	return review, nil
}

// authorize 作者本人或管理員
func (s *ReviewService) authorize(ctx context.Context, userID, reviewID uint) (*model.Review, error) {
	user, err := s.dbDao.GetUserByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "user not found")
	}
	review, err := s.dbDao.GetReviewByID(ctx, reviewID)
	if err != nil {
		return nil, notFoundOr(err, "review not found")
	}
	if review.UserID != userID && !user.IsAdmin {
		return nil, apperr.New(apperr.UnauthorizedCode, "unauthorized")
	}
	return review, nil
}

func (s *ReviewService) UpdateReview(ctx context.Context, userID, reviewID uint, arg ReviewParams) (*model.Review, error) {
	review, err := s.authorize(ctx, userID, reviewID)
	if err != nil {
		return nil, err
	}

	if err := badRequest(validateRatingAndComment(nil, arg)); err != nil {
		return nil, err
	}
	if arg.ProductID != nil && *arg.ProductID != review.ProductID {
		return nil, apperr.New(apperr.BadRequestCode, "cannot change product_id")
	}

	if err := s.dbDao.UpdateReview(ctx, review.ID, *arg.Rating, arg.Comment); err != nil {
		return nil, err
	}
	review.Rating = *arg.Rating
	review.Comment = arg.Comment
	return review, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, userID, reviewID uint) error {
	review, err := s.authorize(ctx, userID, reviewID)
	if err != nil {
		return err
	}
	return s.AdminDeleteReview(ctx, review.ID)
}

func (s *ReviewService) ListAllReviews(ctx context.Context) ([]model.Review, error) {
	return s.dbDao.ListAllReviews(ctx)
}

func (s *ReviewService) AdminDeleteReview(ctx context.Context, reviewID uint) error {
	if err := s.dbDao.DeleteReview(ctx, reviewID); err != nil {
		return notFoundOr(err, "review not found")
	}
	return nil
}

var _ IReviewService = (*ReviewService)(nil)

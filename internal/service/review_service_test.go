package service

import (
	"strings"

	"github.com/RoyceAzure/lab/shop/internal/apperr"
	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// completePurchase 建立一筆已完成且包含該商品的訂單
func (suite *ServiceTestSuite) completePurchase(userID, productID uint) {
	uid, pid := userID, productID
	order := &model.Order{
		UserID:             &uid,
		Status:             model.OrderStatusCompleted,
		TotalAmount:        decimal.NewFromInt(10),
		ShippingStreet:     "street",
		ShippingCity:       "city",
		ShippingPostalCode: "000000",
		ShippingCountry:    "country",
		ShippingMethod:     "pochta",
		ShippingCost:       decimal.Zero,
		Items: []model.OrderItem{
			{ProductID: &pid, Quantity: 1, Price: decimal.NewFromInt(10), Size: "m"},
		},
	}
	require.NoError(suite.T(), suite.store.CreateOrder(suite.ctx, order))
}

func reviewParams(rating int, comment string, productID uint) ReviewParams {
	return ReviewParams{Rating: &rating, Comment: &comment, ProductID: &productID}
}

func (suite *ServiceTestSuite) TestCreateReviewRequiresCompletedPurchase() {
	user := suite.createUser()
	product := suite.createProduct("10.00")

	_, err := suite.reviewService.CreateReview(suite.ctx, user.ID, reviewParams(5, "great", product.ID))
	suite.requireCode(err, apperr.UnauthorizedCode)

	suite.completePurchase(user.ID, product.ID)
	review, err := suite.reviewService.CreateReview(suite.ctx, user.ID, reviewParams(5, "great", product.ID))
	require.NoError(suite.T(), err)
	require.NotZero(suite.T(), review.ID)

	_, err = suite.reviewService.CreateReview(suite.ctx, user.ID, reviewParams(4, "again", product.ID))
	suite.requireCode(err, apperr.ConflictCode)

	reviews, err := suite.reviewService.ListByProduct(suite.ctx, product.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), reviews, 1)
	require.NotNil(suite.T(), reviews[0].User)
	require.Equal(suite.T(), user.Email, reviews[0].User.Email)

	view, err := suite.productService.GetProduct(suite.ctx, product.ID)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), view.AverageRating)
	require.Equal(suite.T(), 5.0, *view.AverageRating)
	require.Equal(suite.T(), int64(1), view.ReviewsCount)
}

func (suite *ServiceTestSuite) TestCreateReviewValidation() {
	user := suite.createUser()
	product := suite.createProduct("10.00")
	suite.completePurchase(user.ID, product.ID)

	_, err := suite.reviewService.CreateReview(suite.ctx, user.ID, reviewParams(6, strings.Repeat("я", 1001), 9999))
	suite.requireCode(err, apperr.BadRequestCode)
	require.Len(suite.T(), apperr.As(err).Messages, 3)

	// 1000 個字元剛好合法
	_, err = suite.reviewService.CreateReview(suite.ctx, user.ID, reviewParams(1, strings.Repeat("я", 1000), product.ID))
	require.NoError(suite.T(), err)
}

func (suite *ServiceTestSuite) TestListReviewsRequiresProduct() {
	_, err := suite.reviewService.ListByProduct(suite.ctx, 0)
	suite.requireCode(err, apperr.BadRequestCode)

	_, err = suite.reviewService.ListByProduct(suite.ctx, 9999)
	suite.requireCode(err, apperr.BadRequestCode)
}

func (suite *ServiceTestSuite) TestUpdateAndDeleteReviewOwnership() {
	author := suite.createUser()
	stranger := suite.createUser()
	admin := suite.createAdmin()
	product := suite.createProduct("10.00")
	other := suite.createProduct("10.00")
	suite.completePurchase(author.ID, product.ID)

	review, err := suite.reviewService.CreateReview(suite.ctx, author.ID, reviewParams(3, "ok", product.ID))
	require.NoError(suite.T(), err)

	_, err = suite.reviewService.UpdateReview(suite.ctx, stranger.ID, review.ID, reviewParams(1, "bad", product.ID))
	suite.requireCode(err, apperr.UnauthorizedCode)

	_, err = suite.reviewService.UpdateReview(suite.ctx, author.ID, review.ID, reviewParams(4, "better", other.ID))
	suite.requireCode(err, apperr.BadRequestCode)

	rating := 4
	updated, err := suite.reviewService.UpdateReview(suite.ctx, author.ID, review.ID, ReviewParams{Rating: &rating})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 4, updated.Rating)
	require.Nil(suite.T(), updated.Comment)

	updated, err = suite.reviewService.UpdateReview(suite.ctx, admin.ID, review.ID, reviewParams(2, "moderated", product.ID))
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), "moderated", *updated.Comment)

	err = suite.reviewService.DeleteReview(suite.ctx, stranger.ID, review.ID)
	suite.requireCode(err, apperr.UnauthorizedCode)

	require.NoError(suite.T(), suite.reviewService.DeleteReview(suite.ctx, author.ID, review.ID))

	err = suite.reviewService.DeleteReview(suite.ctx, author.ID, review.ID)
	suite.requireCode(err, apperr.NotFoundCode)
}

func (suite *ServiceTestSuite) TestAdminReviews() {
	user := suite.createUser()
	product := suite.createProduct("10.00")
	suite.completePurchase(user.ID, product.ID)
	review, err := suite.reviewService.CreateReview(suite.ctx, user.ID, reviewParams(5, "", product.ID))
	require.NoError(suite.T(), err)

	reviews, err := suite.reviewService.ListAllReviews(suite.ctx)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), reviews, 1)

	require.NoError(suite.T(), suite.reviewService.AdminDeleteReview(suite.ctx, review.ID))
	err = suite.reviewService.AdminDeleteReview(suite.ctx, review.ID)
	suite.requireCode(err, apperr.NotFoundCode)
}

package service

import (
	"bytes"
	"fmt"

	"github.com/RoyceAzure/lab/shop/internal/apperr"
	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func (suite *ServiceTestSuite) createCategory(name string) *model.Category {
	category, err := suite.categoryService.CreateCategory(suite.ctx, CategoryParams{Name: strPtr(name), Slug: strPtr(name)})
	require.NoError(suite.T(), err)
	return category
}

func (suite *ServiceTestSuite) TestCategoryConflictLeavesStoreUnchanged() {
	shirts := suite.createCategory("shirts")
	suite.createCategory("hats")

	_, err := suite.categoryService.CreateCategory(suite.ctx, CategoryParams{Name: strPtr("Other"), Slug: strPtr("shirts")})
	suite.requireCode(err, apperr.ConflictCode)

	_, err = suite.categoryService.CreateCategory(suite.ctx, CategoryParams{Name: strPtr(" "), Slug: strPtr("x")})
	suite.requireCode(err, apperr.BadRequestCode)

	_, err = suite.categoryService.UpdateCategory(suite.ctx, shirts.ID, CategoryParams{Slug: strPtr("hats")})
	suite.requireCode(err, apperr.ConflictCode)

	categories, err := suite.categoryService.ListCategories(suite.ctx)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), categories, 2)
	require.Equal(suite.T(), "hats", categories[0].Name)
	require.Equal(suite.T(), "shirts", categories[1].Slug)

	updated, err := suite.categoryService.UpdateCategory(suite.ctx, shirts.ID, CategoryParams{Name: strPtr("shirts"), Description: strPtr("cotton")})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), "cotton", updated.Description)
	require.Equal(suite.T(), "shirts", updated.Slug)
}

func (suite *ServiceTestSuite) TestDeleteCategoryDetachesProducts() {
	category := suite.createCategory("shoes")
	price := decimal.RequireFromString("30")
	product, err := suite.productService.CreateProduct(suite.ctx, ProductParams{
		Name: strPtr("boot"), Price: &price, CategoryID: &category.ID,
	})
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), product.Category)

	require.NoError(suite.T(), suite.categoryService.DeleteCategory(suite.ctx, category.ID))

	reloaded, err := suite.productService.GetProduct(suite.ctx, product.ID)
	require.NoError(suite.T(), err)
	require.Nil(suite.T(), reloaded.CategoryID)

	err = suite.categoryService.DeleteCategory(suite.ctx, category.ID)
	suite.requireCode(err, apperr.NotFoundCode)
}

func (suite *ServiceTestSuite) TestCreateProductValidation() {
	zero := decimal.Zero
	missing := uint(9999)
	_, err := suite.productService.CreateProduct(suite.ctx, ProductParams{Name: strPtr(" "), Price: &zero, CategoryID: &missing})
	suite.requireCode(err, apperr.BadRequestCode)
	require.Len(suite.T(), apperr.As(err).Messages, 3)
}

func (suite *ServiceTestSuite) TestPatchAndReplaceProduct() {
	category := suite.createCategory("coats")
	product := suite.createProduct("10.00")

	price := decimal.RequireFromString("12.34")
	patched, err := suite.productService.PatchProduct(suite.ctx, product.ID, ProductParams{Price: &price})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), "12.34", patched.Price.StringFixed(2))
	require.Equal(suite.T(), product.Name, patched.Name)

	negative := decimal.RequireFromString("-1")
	_, err = suite.productService.PatchProduct(suite.ctx, product.ID, ProductParams{Price: &negative})
	suite.requireCode(err, apperr.BadRequestCode)

	_, err = suite.productService.ReplaceProduct(suite.ctx, product.ID, ProductParams{Name: strPtr("coat")})
	suite.requireCode(err, apperr.BadRequestCode)

	replaced, err := suite.productService.ReplaceProduct(suite.ctx, product.ID, ProductParams{
		Name: strPtr("coat"), Price: &price, CategoryID: &category.ID,
	})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), "coat", replaced.Name)
	require.Equal(suite.T(), category.ID, *replaced.CategoryID)

	_, err = suite.productService.PatchProduct(suite.ctx, 9999, ProductParams{})
	suite.requireCode(err, apperr.NotFoundCode)
}

func (suite *ServiceTestSuite) TestListProducts() {
	hats := suite.createCategory("hats")
	for i, price := range []string{"5", "15", "10"} {
		p := decimal.RequireFromString(price)
		_, err := suite.productService.CreateProduct(suite.ctx, ProductParams{
			Name: strPtr(fmt.Sprintf("Red Hat %d", i)), Price: &p, CategoryID: &hats.ID,
		})
		require.NoError(suite.T(), err)
	}
	suite.createProduct("1.00")

	page, err := suite.productService.ListProducts(suite.ctx, ProductQuery{CategoryID: &hats.ID, Sort: "asc", PerPage: 2})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), int64(3), page.Total)
	require.Equal(suite.T(), 2, page.Pages)
	require.Equal(suite.T(), 1, page.CurrentPage)
	require.Len(suite.T(), page.Products, 2)
	require.Equal(suite.T(), "5.00", page.Products[0].Price.StringFixed(2))
	require.Equal(suite.T(), "10.00", page.Products[1].Price.StringFixed(2))

	page, err = suite.productService.ListProducts(suite.ctx, ProductQuery{Search: "red HAT", Sort: "desc", Page: 2, PerPage: 2})
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), int64(3), page.Total)
	require.Len(suite.T(), page.Products, 1)
	require.Equal(suite.T(), "5.00", page.Products[0].Price.StringFixed(2))

	newest, err := suite.productService.ListNewestProducts(suite.ctx, 2)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), newest, 2)
}

func (suite *ServiceTestSuite) TestUploadImage() {
	product := suite.createProduct("10.00")

	_, err := suite.productService.UploadImage(suite.ctx, product.ID, "notes.txt", bytes.NewBufferString("x"))
	suite.requireCode(err, apperr.BadRequestCode)

	first, err := suite.productService.UploadImage(suite.ctx, product.ID, "front.PNG", bytes.NewBufferString("png"))
	require.NoError(suite.T(), err)
	require.True(suite.T(), first.IsPrimary)
	require.Regexp(suite.T(), `^[0-9a-f]{32}\.png$`, first.Filename)

	second, err := suite.productService.UploadImage(suite.ctx, product.ID, "back.jpg", bytes.NewBufferString("jpg"))
	require.NoError(suite.T(), err)
	require.False(suite.T(), second.IsPrimary)

	exists, err := afero.Exists(suite.fs, "products/"+first.Filename)
	require.NoError(suite.T(), err)
	require.True(suite.T(), exists)

	view, err := suite.productService.GetProduct(suite.ctx, product.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), view.Images, 2)
	require.Equal(suite.T(), first.ID, view.PrimaryImage().ID)

	_, err = suite.productService.UploadImage(suite.ctx, 9999, "a.png", bytes.NewBufferString("png"))
	suite.requireCode(err, apperr.NotFoundCode)
}

func (suite *ServiceTestSuite) TestListGallery() {
	require.NoError(suite.T(), afero.WriteFile(suite.fs, "img/products/product7/b.jpg", []byte("b"), 0o644))
	require.NoError(suite.T(), afero.WriteFile(suite.fs, "img/products/product7/a.png", []byte("a"), 0o644))
	require.NoError(suite.T(), afero.WriteFile(suite.fs, "img/products/product7/readme.md", []byte("x"), 0o644))

	urls, err := suite.productService.ListGallery(suite.ctx, 7)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), []string{
		"/media/img/products/product7/a.png",
		"/media/img/products/product7/b.jpg",
	}, urls)

	urls, err = suite.productService.ListGallery(suite.ctx, 8)
	require.NoError(suite.T(), err)
	require.Empty(suite.T(), urls)
}

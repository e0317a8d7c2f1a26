package handler

import (
	"io"
	"net/http"

	"github.com/RoyceAzure/lab/shop/internal/api/dto"
	"github.com/RoyceAzure/lab/shop/internal/api/response"
	"github.com/RoyceAzure/lab/shop/internal/constants"
	"github.com/RoyceAzure/lab/shop/internal/service"
)

const maxUploadSize = 16 << 20

type ProductHandler struct {
	productService service.IProductService
	mediaURL       string
}

func NewProductHandler(productService service.IProductService, mediaURL string) *ProductHandler {
	if productService == nil {
		panic("productService cannot be nil")
	}
	return &ProductHandler{productService: productService, mediaURL: mediaURL}
}

func toProductParams(req dto.ProductRequestDTO) service.ProductParams {
	return service.ProductParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Popularity:  req.Popularity,
		CategoryID:  req.CategoryID,
	}
}

// ListProducts GET /api/products/?page=&per_page=&category_id=&search=&sort=asc|desc
func (p *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := p.productService.ListProducts(r.Context(), service.ProductQuery{
		Page:       queryInt(r, "page", constants.DefaultPaging),
		PerPage:    queryInt(r, "per_page", constants.DefaultPagingSize),
		CategoryID: queryUint(r, "category_id"),
		Search:     q.Get("search"),
		Sort:       q.Get("sort"),
	})
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}

	response.SuccessJSON(w, dto.ProductPageDTO{
		Products:    convertProductsToDTO(page.Products, p.mediaURL),
		Total:       page.Total,
		Pages:       page.Pages,
		CurrentPage: page.CurrentPage,
	})
}

// ListNewProducts GET /api/products/new?limit=
func (p *ProductHandler) ListNewProducts(w http.ResponseWriter, r *http.Request) {
	products, err := p.productService.ListNewestProducts(r.Context(), queryInt(r, "limit", constants.DefaultNewLimit))
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.SuccessJSON(w, convertProductsToDTO(products, p.mediaURL))
}

func (p *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, "id")
	if !ok {
		return
	}
	product, err := p.productService.GetProduct(r.Context(), id)
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.SuccessJSON(w, convertProductToDTO(product, p.mediaURL))
}

// ListProductImages 回傳商品圖庫資料夾內的圖片網址
func (p *ProductHandler) ListProductImages(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, "id")
	if !ok {
		return
	}
	urls, err := p.productService.ListGallery(r.Context(), id)
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.SuccessJSON(w, dto.GalleryDTO{Images: urls})
}

func (p *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	product, err := p.productService.CreateProduct(r.Context(), toProductParams(req))
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.CreatedJSON(w, dto.ProductMessageDTO{
		Message: "Product created",
		Product: convertProductToDTO(product, p.mediaURL),
	})
}

// UpdateProduct 只更新有提供的欄位
func (p *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, "id")
	if !ok {
		return
	}
	var req dto.ProductRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	product, err := p.productService.PatchProduct(r.Context(), id, toProductParams(req))
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.SuccessJSON(w, dto.ProductMessageDTO{
		Message: "Product updated",
		Product: convertProductToDTO(product, p.mediaURL),
	})
}

func (p *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, "id")
	if !ok {
		return
	}
	if err := p.productService.DeleteProduct(r.Context(), id); err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.NoContent(w)
}

// UploadImage multipart 欄位名稱為 image
func (p *ProductHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, "id")
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	var (
		filename string
		reader   io.Reader
	)
	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		filename = header.Filename
		reader = file
	}

	image, err := p.productService.UploadImage(r.Context(), id, filename, reader)
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.SuccessJSON(w, dto.ImageMessageDTO{
		Message: "Image uploaded",
		Image:   convertImageToDTO(image, p.mediaURL),
	})
}

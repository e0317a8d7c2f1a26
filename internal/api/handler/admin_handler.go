package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/shop/internal/api/dto"
	"github.com/RoyceAzure/lab/shop/internal/api/response"
	"github.com/RoyceAzure/lab/shop/internal/service"
)

// AdminHandler 路由層已確認為管理員
type AdminHandler struct {
	productService  service.IProductService
	orderService    service.IOrderService
	categoryService service.ICategoryService
	mediaURL        string
}

func NewAdminHandler(
	productService service.IProductService,
	orderService service.IOrderService,
	categoryService service.ICategoryService,
	mediaURL string,
) *AdminHandler {
	if productService == nil || orderService == nil || categoryService == nil {
		panic("admin handler dependencies cannot be nil")
	}
	return &AdminHandler{
		productService:  productService,
		orderService:    orderService,
		categoryService: categoryService,
		mediaURL:        mediaURL,
	}
}

func (a *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := a.productService.ListAllProducts(r.Context())
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.SuccessJSON(w, convertProductsToDTO(products, a.mediaURL))
}

func (a *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	product, err := a.productService.CreateProduct(r.Context(), toProductParams(req))
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.CreatedJSON(w, dto.ProductMessageDTO{
		Message: "Product created",
		Product: convertProductToDTO(product, a.mediaURL),
	})
}

// UpdateProduct name price category_id 必填
func (a *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, "id")
	if !ok {
		return
	}
	var req dto.ProductRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	product, err := a.productService.ReplaceProduct(r.Context(), id, toProductParams(req))
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.SuccessJSON(w, dto.ProductMessageDTO{
		Message: "Product updated",
		Product: convertProductToDTO(product, a.mediaURL),
	})
}

func (a *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, "id")
	if !ok {
		return
	}
	if err := a.productService.DeleteProduct(r.Context(), id); err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.NoContent(w)
}

func (a *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := a.orderService.ListAllOrders(r.Context())
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.SuccessJSON(w, convertOrdersToDTO(orders))
}

func (a *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, "id")
	if !ok {
		return
	}
	order, err := a.orderService.GetOrder(r.Context(), id)
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.SuccessJSON(w, convertOrderToDTO(order))
}

func (a *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, "id")
	if !ok {
		return
	}
	var req dto.OrderStatusRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := a.orderService.UpdateOrderStatus(r.Context(), id, req.Status)
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.SuccessJSON(w, dto.OrderMessageDTO{
		Message: "Order status updated",
		Order:   convertOrderToDTO(order),
	})
}

func (a *AdminHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.categoryService.ListCategories(r.Context())
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	res := make([]dto.CategoryDTO, 0, len(categories))
	for i := range categories {
		res = append(res, convertCategoryToDTO(&categories[i]))
	}
	response.SuccessJSON(w, res)
}

func (a *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CategoryRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	category, err := a.categoryService.CreateCategory(r.Context(), toCategoryParams(req))
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.CreatedJSON(w, dto.CategoryMessageDTO{
		Message:  "Category created",
		Category: convertCategoryToDTO(category),
	})
}

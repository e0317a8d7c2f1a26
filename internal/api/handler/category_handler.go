package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/shop/internal/api/dto"
	"github.com/RoyceAzure/lab/shop/internal/api/response"
	"github.com/RoyceAzure/lab/shop/internal/service"
)

type CategoryHandler struct {
	categoryService service.ICategoryService
}

func NewCategoryHandler(categoryService service.ICategoryService) *CategoryHandler {
	if categoryService == nil {
		panic("categoryService cannot be nil")
	}
	return &CategoryHandler{categoryService: categoryService}
}

func toCategoryParams(req dto.CategoryRequestDTO) service.CategoryParams {
	return service.CategoryParams{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	}
}

func (c *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.categoryService.ListCategories(r.Context())
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

func (c *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CategoryRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	category, err := c.categoryService.CreateCategory(r.Context(), toCategoryParams(req))
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.CreatedJSON(w, dto.CategoryMessageDTO{
		Message:  "Category created",
		Category: convertCategoryToDTO(category),
	})
}

func (c *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, "id")
	if !ok {
		return
	}
	var req dto.CategoryRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	category, err := c.categoryService.UpdateCategory(r.Context(), id, toCategoryParams(req))
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.SuccessJSON(w, dto.CategoryMessageDTO{
		Message:  "Category updated",
		Category: convertCategoryToDTO(category),
	})
}

func (c *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, "id")
	if !ok {
		return
	}
	if err := c.categoryService.DeleteCategory(r.Context(), id); err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.NoContent(w)
}

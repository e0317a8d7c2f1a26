package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/shop/internal/api/dto"
	"github.com/RoyceAzure/lab/shop/internal/api/response"
	"github.com/RoyceAzure/lab/shop/internal/service"
)

type ReviewHandler struct {
	reviewService service.IReviewService
}

func NewReviewHandler(reviewService service.IReviewService) *ReviewHandler {
	if reviewService == nil {
		panic("reviewService cannot be nil")
	}
	return &ReviewHandler{reviewService: reviewService}
}

func toReviewParams(req dto.ReviewRequestDTO) service.ReviewParams {
	return service.ReviewParams{
		Rating:    req.Rating,
		Comment:   req.Comment,
		ProductID: req.ProductID,
	}
}

// ListReviews GET /api/reviews/?product_id=
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	var productID uint
	if id := queryUint(r, "product_id"); id != nil {
		productID = *id
	}

	reviews, err := h.reviewService.ListByProduct(r.Context(), productID)
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}

	res := make([]dto.ReviewWithAuthorDTO, 0, len(reviews))
	for i := range reviews {
		item := dto.ReviewWithAuthorDTO{ReviewDTO: convertReviewToDTO(&reviews[i])}
		if reviews[i].User != nil {
			item.Username = reviews[i].User.Username
		}
		res = append(res, item)
	}
	response.SuccessJSON(w, res)
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req dto.ReviewRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.reviewService.CreateReview(r.Context(), currentUserID(r), toReviewParams(req))
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.CreatedJSON(w, convertReviewToDTO(review))
}

func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, "id")
	if !ok {
		return
	}
	var req dto.ReviewRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.reviewService.UpdateReview(r.Context(), currentUserID(r), id, toReviewParams(req))
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.SuccessJSON(w, convertReviewToDTO(review))
}

func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, "id")
	if !ok {
		return
	}
	if err := h.reviewService.DeleteReview(r.Context(), currentUserID(r), id); err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.NoContent(w)
}

func (h *ReviewHandler) AdminListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewService.ListAllReviews(r.Context())
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	res := make([]dto.ReviewDTO, 0, len(reviews))
	for i := range reviews {
		res = append(res, convertReviewToDTO(&reviews[i]))
	}
	response.SuccessJSON(w, res)
}

func (h *ReviewHandler) AdminDeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, "id")
	if !ok {
		return
	}
	if err := h.reviewService.AdminDeleteReview(r.Context(), id); err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.NoContent(w)
}

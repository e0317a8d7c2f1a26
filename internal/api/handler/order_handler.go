package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/shop/internal/api/dto"
	"github.com/RoyceAzure/lab/shop/internal/api/response"
	"github.com/RoyceAzure/lab/shop/internal/apperr"
	"github.com/RoyceAzure/lab/shop/internal/service"
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{orderService: orderService}
}

// Checkout POST /api/orders/ 以購物車內容建立訂單
func (o *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckoutRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	var usePoints *int
	if req.UsePoints != nil {
		if req.UsePoints.Invalid {
			response.ErrorCode(w, apperr.BadRequestCode, "use_points must be an integer")
			return
		}
		usePoints = &req.UsePoints.Value
	}

	order, err := o.orderService.Checkout(r.Context(), currentUserID(r), service.CheckoutParams{
		ShippingStreet:     req.ShippingStreet,
		ShippingCity:       req.ShippingCity,
		ShippingPostalCode: req.ShippingPostalCode,
		ShippingCountry:    req.ShippingCountry,
		ShippingMethod:     req.ShippingMethod,
		ShippingCost:       req.ShippingCost,
		UsePoints:          usePoints,
		ReferralCode:       req.ReferralCode,
	})
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.CreatedJSON(w, dto.OrderMessageDTO{
		Message: "Order created",
		Order:   convertOrderToDTO(order),
	})
}

func (o *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := o.orderService.ListUserOrders(r.Context(), currentUserID(r))
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.SuccessJSON(w, convertOrdersToDTO(orders))
}

func (o *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r, "id")
	if !ok {
		return
	}
	order, err := o.orderService.GetUserOrder(r.Context(), currentUserID(r), id)
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.SuccessJSON(w, convertOrderToDTO(order))
}

package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/shop/internal/api/dto"
	"github.com/RoyceAzure/lab/shop/internal/api/response"
	"github.com/RoyceAzure/lab/shop/internal/service"
)

type CartHandler struct {
	cartService service.ICartService
	mediaURL    string
}

func NewCartHandler(cartService service.ICartService, mediaURL string) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	return &CartHandler{cartService: cartService, mediaURL: mediaURL}
}

func (c *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := c.cartService.GetCart(r.Context(), currentUserID(r))
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}

	res := dto.CartDTO{
		Items: make([]dto.CartItemDTO, 0, len(cart.Items)),
		Total: cart.Total.StringFixed(2),
	}
	for i := range cart.Items {
		res.Items = append(res.Items, convertCartItemToDTO(&cart.Items[i], c.mediaURL))
	}
	response.SuccessJSON(w, res)
}

func (c *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req dto.CartRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := c.cartService.AddToCart(r.Context(), currentUserID(r), req.ProductID, req.Quantity, req.Size)
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.CreatedJSON(w, dto.CartItemMessageDTO{
		Message: "Item added to cart",
		Item:    convertCartItemToDTO(item, c.mediaURL),
	})
}

// UpdateCartItem quantity 為 0 時移除該項目
func (c *CartHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req dto.CartRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := c.cartService.UpdateCartItem(r.Context(), currentUserID(r), req.ProductID, req.Quantity, req.Size)
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	if item == nil {
		response.Message(w, http.StatusOK, "Item removed from cart")
		return
	}
	response.SuccessJSON(w, dto.CartItemMessageDTO{
		Message: "Quantity updated",
		Item:    convertCartItemToDTO(item, c.mediaURL),
	})
}

// RemoveCartItem DELETE /api/cart/{product_id}?size=
// 沒帶 size 時會移除該商品在購物車中的所有尺寸, 不是只移除第一筆
func (c *CartHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := urlParamID(w, r, "product_id")
	if !ok {
		return
	}
	err := c.cartService.RemoveProduct(r.Context(), currentUserID(r), productID, r.URL.Query().Get("size"))
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.Message(w, http.StatusOK, "Item removed from cart")
}

func (c *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := c.cartService.ClearCart(r.Context(), currentUserID(r)); err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.Message(w, http.StatusOK, "Cart cleared")
}

package handler

import (
	"github.com/RoyceAzure/lab/shop/internal/api/dto"
	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/RoyceAzure/lab/shop/internal/service"
)

func convertUserToDTO(user *model.User) dto.UserDTO {
	return dto.UserDTO{
		ID:            user.ID,
		Email:         user.Email,
		Username:      user.Username,
		IsAdmin:       user.IsAdmin,
		ReferralCode:  user.ReferralCode,
		PointsBalance: user.PointsBalance,
	}
}

func convertAddressToDTO(address *model.UserAddress) dto.AddressDTO {
	return dto.AddressDTO{
		ID:         address.ID,
		Street:     address.Street,
		City:       address.City,
		PostalCode: address.PostalCode,
		Country:    address.Country,
	}
}

func convertCardToDTO(card *model.UserCard) dto.CardDTO {
	return dto.CardDTO{
		ID:         card.ID,
		CardNumber: card.MaskedNumber(),
		Expiry:     card.Expiry,
	}
}

func convertPointsTransactionToDTO(txn *model.PointsTransaction) dto.PointsTransactionDTO {
	return dto.PointsTransactionDTO{
		ID:           txn.ID,
		OrderID:      txn.OrderID,
		Delta:        txn.Delta,
		Reason:       string(txn.Reason),
		BalanceAfter: txn.BalanceAfter,
		CreatedAt:    txn.CreatedAt,
	}
}

func convertCategoryToDTO(category *model.Category) dto.CategoryDTO {
	return dto.CategoryDTO{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
	}
}

func convertImageToDTO(image *model.ProductImage, mediaURL string) dto.ProductImageDTO {
	return dto.ProductImageDTO{
		ID:        image.ID,
		URL:       image.URL(mediaURL),
		IsPrimary: image.IsPrimary,
	}
}

func convertProductToDTO(view *service.ProductView, mediaURL string) dto.ProductDTO {
	res := dto.ProductDTO{
		ID:            view.ID,
		Name:          view.Name,
		Description:   view.Description,
		Price:         view.Price.StringFixed(2),
		Stock:         view.Stock,
		Popularity:    view.Popularity,
		CreatedAt:     view.CreatedAt,
		UpdatedAt:     view.UpdatedAt,
		Images:        make([]dto.ProductImageDTO, 0, len(view.Images)),
		AverageRating: view.AverageRating,
		ReviewsCount:  view.ReviewsCount,
	}
	if view.Category != nil {
		category := convertCategoryToDTO(view.Category)
		res.Category = &category
	}
	for i := range view.Images {
		res.Images = append(res.Images, convertImageToDTO(&view.Images[i], mediaURL))
	}
	return res
}

func convertProductsToDTO(views []service.ProductView, mediaURL string) []dto.ProductDTO {
	res := make([]dto.ProductDTO, 0, len(views))
	for i := range views {
		res = append(res, convertProductToDTO(&views[i], mediaURL))
	}
	return res
}

// convertCartItemToDTO 呼叫前需確認 Product 已載入
func convertCartItemToDTO(item *model.CartItem, mediaURL string) dto.CartItemDTO {
	res := dto.CartItemDTO{
		ID:       item.ID,
		UserID:   item.UserID,
		Quantity: item.Quantity,
		Size:     item.Size,
		AddedAt:  item.AddedAt,
	}
	if item.Product != nil {
		res.Product = dto.CartProductDTO{
			ID:    item.Product.ID,
			Name:  item.Product.Name,
			Price: item.Product.Price.StringFixed(2),
		}
		if img := item.Product.PrimaryImage(); img != nil {
			url := img.URL(mediaURL)
			res.Product.Image = &url
		}
	}
	return res
}

func convertOrderToDTO(order *model.Order) dto.OrderDTO {
	res := dto.OrderDTO{
		ID:           order.ID,
		UserID:       order.UserID,
		ReferrerID:   order.ReferrerID,
		Status:       string(order.Status),
		StatusLabel:  order.Status.Label(),
		TotalAmount:  order.TotalAmount.StringFixed(2),
		UsedPoints:   order.UsedPoints,
		EarnedPoints: order.EarnedPoints,
		Shipping: dto.ShippingDTO{
			Street:     order.ShippingStreet,
			City:       order.ShippingCity,
			PostalCode: order.ShippingPostalCode,
			Country:    order.ShippingCountry,
		},
		ShippingMethod: order.ShippingMethod,
		ShippingCost:   order.ShippingCost.StringFixed(2),
		Items:          make([]dto.OrderItemDTO, 0, len(order.Items)),
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
	for _, item := range order.Items {
		res.Items = append(res.Items, dto.OrderItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price.StringFixed(2),
			Size:      item.Size,
		})
	}
	return res
}

func convertOrdersToDTO(orders []model.Order) []dto.OrderDTO {
	res := make([]dto.OrderDTO, 0, len(orders))
	for i := range orders {
		res = append(res, convertOrderToDTO(&orders[i]))
	}
	return res
}

func convertReviewToDTO(review *model.Review) dto.ReviewDTO {
	return dto.ReviewDTO{
		ID:        review.ID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UserID:    review.UserID,
		ProductID: review.ProductID,
	}
}

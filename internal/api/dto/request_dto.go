package dto

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

type CredentialsDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"` //密碼明文
}

type CategoryRequestDTO struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
}

// price 可以是數字或字串
type ProductRequestDTO struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Popularity  *int             `json:"popularity"`
	CategoryID  *uint            `json:"category_id"`
}

type CartRequestDTO struct {
	ProductID uint   `json:"product_id"`
	Quantity  *int   `json:"quantity"`
	Size      string `json:"size"`
}

type CheckoutRequestDTO struct {
	ShippingStreet     string           `json:"shipping_street"`
	ShippingCity       string           `json:"shipping_city"`
	ShippingPostalCode string           `json:"shipping_postal_code"`
	ShippingCountry    string           `json:"shipping_country"`
	ShippingMethod     string           `json:"shipping_method"`
	ShippingCost       *decimal.Decimal `json:"shipping_cost"`
	UsePoints          *FlexInt         `json:"use_points"`
	ReferralCode       string           `json:"referral_code"`
}

type OrderStatusRequestDTO struct {
	Status string `json:"status"`
}

type ReviewRequestDTO struct {
	Rating    *int    `json:"rating"`
	Comment   *string `json:"comment"`
	ProductID *uint   `json:"product_id"`
}

type ProfileRequestDTO struct {
	Username *string `json:"username"`
}

type PasswordRequestDTO struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type AddressRequestDTO struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type CardRequestDTO struct {
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
}

// FlexInt 接受數字或數字字串, 無法轉換時標記 Invalid 交由 handler 回報欄位錯誤
type FlexInt struct {
	Value   int
	Invalid bool
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		f.Value, f.Invalid = int(v), false
	case string:
		n, err := cast.ToIntE(strings.TrimSpace(v))
		f.Value, f.Invalid = n, err != nil
	default:
		f.Value, f.Invalid = 0, true
	}
	return nil
}

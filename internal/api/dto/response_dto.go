package dto

import "time"

// 金額一律以兩位小數的字串輸出

type UserDTO struct {
	ID            uint    `json:"id"`
	Email         string  `json:"email"`
	Username      *string `json:"username"`
	IsAdmin       bool    `json:"is_admin"`
	ReferralCode  string  `json:"referral_code"`
	PointsBalance int     `json:"points_balance"`
}

type AuthResponseDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type AddressDTO struct {
	ID         uint   `json:"id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// CardNumber 只有末四碼
type CardDTO struct {
	ID         uint   `json:"id"`
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
}

type PointsTransactionDTO struct {
	ID           uint      `json:"id"`
	OrderID      *uint     `json:"order_id"`
	Delta        int       `json:"delta"`
	Reason       string    `json:"reason"`
	BalanceAfter int       `json:"balance_after"`
	CreatedAt    time.Time `json:"created_at"`
}

type CategoryDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type ProductImageDTO struct {
	ID        uint   `json:"id"`
	URL       string `json:"url"`
	IsPrimary bool   `json:"is_primary"`
}

type ProductDTO struct {
	ID            uint              `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Price         string            `json:"price"`
	Stock         int               `json:"stock"`
	Popularity    int               `json:"popularity"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Category      *CategoryDTO      `json:"category"`
	Images        []ProductImageDTO `json:"images"`
	AverageRating *float64          `json:"average_rating"`
	ReviewsCount  int64             `json:"reviews_count"`
}

type ProductPageDTO struct {
	Products    []ProductDTO `json:"products"`
	Total       int64        `json:"total"`
	Pages       int          `json:"pages"`
	CurrentPage int          `json:"current_page"`
}

type GalleryDTO struct {
	Images []string `json:"images"`
}

type CartProductDTO struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price string  `json:"price"`
	Image *string `json:"image"`
}

type CartItemDTO struct {
	ID       uint           `json:"id"`
	UserID   uint           `json:"user_id"`
	Product  CartProductDTO `json:"product"`
	Quantity int            `json:"quantity"`
	Size     string         `json:"size"`
	AddedAt  time.Time      `json:"added_at"`
}

type CartDTO struct {
	Items []CartItemDTO `json:"items"`
	Total string        `json:"total"`
}

type ShippingDTO struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type OrderItemDTO struct {
	ID        uint   `json:"id"`
	ProductID *uint  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	Size      string `json:"size"`
}

type OrderDTO struct {
	ID             uint           `json:"id"`
	UserID         *uint          `json:"user_id"`
	ReferrerID     *uint          `json:"referrer_id"`
	Status         string         `json:"status"`
	StatusLabel    string         `json:"status_label"`
	TotalAmount    string         `json:"total_amount"`
	UsedPoints     int            `json:"used_points"`
	EarnedPoints   int            `json:"earned_points"`
	Shipping       ShippingDTO    `json:"shipping"`
	ShippingMethod string         `json:"shipping_method"`
	ShippingCost   string         `json:"shipping_cost"`
	Items          []OrderItemDTO `json:"items"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type ReviewDTO struct {
	ID        uint      `json:"id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `json:"user_id"`
	ProductID uint      `json:"product_id"`
}

// ReviewWithAuthorDTO 商品頁的評論列表會附上作者名稱
type ReviewWithAuthorDTO struct {
	ReviewDTO
	Username *string `json:"username"`
}

// 以下為帶訊息的回應

type ProductMessageDTO struct {
	Message string     `json:"message"`
	Product ProductDTO `json:"product"`
}

type CategoryMessageDTO struct {
	Message  string      `json:"message"`
	Category CategoryDTO `json:"category"`
}

type ImageMessageDTO struct {
	Message string          `json:"message"`
	Image   ProductImageDTO `json:"image"`
}

type CartItemMessageDTO struct {
	Message string      `json:"message"`
	Item    CartItemDTO `json:"item"`
}

type OrderMessageDTO struct {
	Message string   `json:"message"`
	Order   OrderDTO `json:"order"`
}

type UserMessageDTO struct {
	Message string  `json:"message"`
	User    UserDTO `json:"user"`
}

type AddressMessageDTO struct {
	Message string     `json:"message"`
	Address AddressDTO `json:"address"`
}

type CardMessageDTO struct {
	Message string  `json:"message"`
	Card    CardDTO `json:"card"`
}

type HealthDTO struct {
	Status string `json:"status"`
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 每個 (user, product, size) 只會有一筆
type CartItem struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_product_size"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_product_size;index"`
	Product   *Product  `gorm:"constraint:OnDelete:CASCADE"`
	Size      string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_cart_user_product_size"`
	Quantity  int       `gorm:"not null;default:1"`
	AddedAt   time.Time `gorm:"autoCreateTime;not null"`
}

// LineTotal 商品已被刪除時為0
func (c *CartItem) LineTotal() decimal.Decimal {
	if c.Product == nil {
		return decimal.Zero
	}
	return c.Product.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

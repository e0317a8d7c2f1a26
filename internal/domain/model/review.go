package model

import "time"

type Review struct {
	ID        uint      `gorm:"primaryKey"`
	Rating    int       `gorm:"not null;check:rating_range,rating >= 1 AND rating <= 5"`
	Comment   *string   `gorm:"type:text"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_review_user_product"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_review_user_product;index"`
	CreatedAt time.Time `gorm:"not null;index"`
}

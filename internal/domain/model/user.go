package model

import "strings"

type User struct {
	ID            uint    `gorm:"primaryKey"`
	Email         string  `gorm:"type:varchar(120);uniqueIndex;not null"`
	PasswordHash  string  `gorm:"column:password;type:text;not null"`
	Username      *string `gorm:"type:varchar(80);uniqueIndex"`
	IsAdmin       bool    `gorm:"not null;default:false"`
	ReferralCode  string  `gorm:"type:varchar(20);uniqueIndex;not null"`
	PointsBalance int     `gorm:"not null;default:0"`
	// 每次點數變動 +1, 扣點時做 compare-and-swap
	PointsVersion int `gorm:"not null;default:0"`
	BaseModel
}

type UserAddress struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"not null;index"`
	User       *User  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Street     string `gorm:"type:varchar(255);not null"`
	City       string `gorm:"type:varchar(100);not null"`
	PostalCode string `gorm:"type:varchar(20);not null"`
	Country    string `gorm:"type:varchar(100);not null"`
}

type UserCard struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"not null;index"`
	User       *User  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CardNumber string `gorm:"type:varchar(19);not null"`
	Expiry     string `gorm:"type:varchar(7);not null"`
}

// MaskedNumber 只露出末四碼
func (c *UserCard) MaskedNumber() string {
	digits := strings.ReplaceAll(c.CardNumber, " ", "")
	if len(digits) < 4 {
		return "•••• •••• •••• " + digits
	}
	return "•••• •••• •••• " + digits[len(digits)-4:]
}

package model

import "time"

type PointsReason string

const (
	PointsReasonRedeem        PointsReason = "redeem"
	PointsReasonReferralBonus PointsReason = "referral_bonus"
)

// PointsTransaction 點數異動紀錄, 只新增不修改
type PointsTransaction struct {
	ID           uint         `gorm:"primaryKey"`
	UserID       uint         `gorm:"not null;index"`
	OrderID      *uint        `gorm:"index"`
	Delta        int          `gorm:"not null"`
	Reason       PointsReason `gorm:"type:varchar(30);not null"`
	BalanceAfter int          `gorm:"not null"`
	CreatedAt    time.Time    `gorm:"not null"`
}

package model

import (
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
)

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusPending:   "Обработка",
	OrderStatusPaid:      "Оплачен",
	OrderStatusShipped:   "Отправлен",
	OrderStatusCompleted: "Завершен",
	OrderStatusCanceled:  "Закрыт",
}

// 合法的狀態轉換, 未列出的轉換一律拒絕
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCanceled},
	OrderStatusPaid:    {OrderStatusShipped, OrderStatusCanceled},
	OrderStatusShipped: {OrderStatusCompleted},
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	status := OrderStatus(s)
	_, ok := orderStatusLabels[status]
	return status, ok
}

func (s OrderStatus) Label() string {
	return orderStatusLabels[s]
}

// CanTransitionTo 相同狀態視為合法(no-op)
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

type Order struct {
	ID                 uint            `gorm:"primaryKey"`
	UserID             *uint           `gorm:"index"`
	ReferrerID         *uint           `gorm:"index"`
	Status             OrderStatus     `gorm:"type:varchar(20);not null;default:PENDING;index"`
	TotalAmount        decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	UsedPoints         int             `gorm:"not null;default:0"`
	EarnedPoints       int             `gorm:"not null;default:0"`
	ShippingStreet     string          `gorm:"type:varchar(255);not null"`
	ShippingCity       string          `gorm:"type:varchar(100);not null"`
	ShippingPostalCode string          `gorm:"type:varchar(20);not null"`
	ShippingCountry    string          `gorm:"type:varchar(100);not null"`
	ShippingMethod     string          `gorm:"type:varchar(50);not null"`
	ShippingCost       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Items              []OrderItem     `gorm:"constraint:OnDelete:CASCADE"`
	BaseModel
}

// 訂單成立後 OrderItem 不再變動, Price 為下單當下的價格
type OrderItem struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"not null;index"`
	ProductID *uint           `gorm:"index"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Size      string          `gorm:"type:varchar(20);not null"`
}

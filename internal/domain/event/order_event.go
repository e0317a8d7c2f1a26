package event

import (
	"strconv"

	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/shopspring/decimal"
)

type OrderItemData struct {
	ProductID *uint           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Size      string          `json:"size"`
}

type OrderCreatedEvent struct {
	BaseEvent
	OrderID      uint            `json:"order_id"`
	UserID       uint            `json:"user_id"`
	ReferrerID   *uint           `json:"referrer_id,omitempty"`
	Items        []OrderItemData `json:"items"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	UsedPoints   int             `json:"used_points"`
	EarnedPoints int             `json:"earned_points"`
	Status       string          `json:"status"`
}

func (e *OrderCreatedEvent) Type() EventType {
	return OrderCreatedEventName
}

func NewOrderCreatedEvent(order *model.Order) *OrderCreatedEvent {
	items := make([]OrderItemData, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemData{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Size:      item.Size,
		})
	}
	var userID uint
	if order.UserID != nil {
		userID = *order.UserID
	}
	return &OrderCreatedEvent{
		BaseEvent:    NewBaseEvent(strconv.FormatUint(uint64(order.ID), 10), OrderCreatedEventName),
		OrderID:      order.ID,
		UserID:       userID,
		ReferrerID:   order.ReferrerID,
		Items:        items,
		TotalAmount:  order.TotalAmount,
		UsedPoints:   order.UsedPoints,
		EarnedPoints: order.EarnedPoints,
		Status:       string(order.Status),
	}
}

type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID uint   `json:"order_id"`
	From    string `json:"from"`
	To      string `json:"to"`
}

func (e *OrderStatusChangedEvent) Type() EventType {
	return OrderStatusChangedEventName
}

func NewOrderStatusChangedEvent(orderID uint, from, to model.OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseEvent: NewBaseEvent(strconv.FormatUint(uint64(orderID), 10), OrderStatusChangedEventName),
		OrderID:   orderID,
		From:      string(from),
		To:        string(to),
	}
}

package producer

import (
	"context"
	"encoding/json"

	"github.com/RoyceAzure/lab/shop/internal/domain/event"
	"github.com/segmentio/kafka-go"
)

// 以 order id 當 key, 同一張訂單的事件會落在同一個分區
type IOrderEventProducer interface {
	ProduceOrderCreated(ctx context.Context, evt *event.OrderCreatedEvent) error
	ProduceOrderStatusChanged(ctx context.Context, evt *event.OrderStatusChangedEvent) error
	Close() error
}

type OrderEventProducer struct {
	producer Producer
}

func NewOrderEventProducer(producer Producer) *OrderEventProducer {
	return &OrderEventProducer{producer: producer}
}

func (p *OrderEventProducer) ProduceOrderCreated(ctx context.Context, evt *event.OrderCreatedEvent) error {
	msg, err := convertToMessage(evt)
	if err != nil {
		return err
	}
	return p.producer.Produce(ctx, msg)
}

func (p *OrderEventProducer) ProduceOrderStatusChanged(ctx context.Context, evt *event.OrderStatusChangedEvent) error {
	msg, err := convertToMessage(evt)
	if err != nil {
		return err
	}
	return p.producer.Produce(ctx, msg)
}

func (p *OrderEventProducer) Close() error {
	return p.producer.Close()
}

func convertToMessage(evt event.Event) (kafka.Message, error) {
	value, err := json.Marshal(evt)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(evt.GetAggregateID()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(evt.Type())},
			{Key: "event_id", Value: []byte(evt.GetID())},
		},
	}, nil
}

// NoopOrderEventProducer 沒有設定 kafka broker 時使用
type NoopOrderEventProducer struct{}

func (NoopOrderEventProducer) ProduceOrderCreated(context.Context, *event.OrderCreatedEvent) error {
	return nil
}

func (NoopOrderEventProducer) ProduceOrderStatusChanged(context.Context, *event.OrderStatusChangedEvent) error {
	return nil
}

func (NoopOrderEventProducer) Close() error {
	return nil
}

var (
	_ IOrderEventProducer = (*OrderEventProducer)(nil)
	_ IOrderEventProducer = NoopOrderEventProducer{}
)

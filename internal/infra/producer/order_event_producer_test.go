package producer

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/RoyceAzure/lab/shop/internal/domain/event"
	"github.com/RoyceAzure/lab/shop/internal/domain/model"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProducer struct {
	mock.Mock
}

func (m *mockProducer) Produce(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockProducer) Close() error {
	return m.Called().Error(0)
}

func TestConvertToMessage(t *testing.T) {
	userID := uint(3)
	productID := uint(9)
	order := &model.Order{
		ID:          12,
		UserID:      &userID,
		Status:      model.OrderStatusPending,
		TotalAmount: decimal.RequireFromString("22.00"),
		UsedPoints:  3,
		Items: []model.OrderItem{
			{ProductID: &productID, Quantity: 2, Price: decimal.RequireFromString("10.00"), Size: "m"},
		},
	}
	evt := event.NewOrderCreatedEvent(order)

	msg, err := convertToMessage(evt)
	require.NoError(t, err)
	require.Equal(t, "12", string(msg.Key))
	require.Len(t, msg.Headers, 2)
	require.Equal(t, "event_type", msg.Headers[0].Key)
	require.Equal(t, string(event.OrderCreatedEventName), string(msg.Headers[0].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	require.Equal(t, "OrderCreated", decoded["event_type"])
	require.Equal(t, "22", decoded["total_amount"])
	require.EqualValues(t, 3, decoded["user_id"])
}

func TestOrderEventProducerStatusChanged(t *testing.T) {
	mp := new(mockProducer)
	mp.On("Produce", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
		return len(msgs) == 1 && string(msgs[0].Key) == "5"
	})).Return(nil).Once()

	p := NewOrderEventProducer(mp)
	err := p.ProduceOrderStatusChanged(context.Background(),
		event.NewOrderStatusChangedEvent(5, model.OrderStatusPending, model.OrderStatusPaid))
	require.NoError(t, err)
	mp.AssertExpectations(t)
}

func TestKafkaProducerConfigValidate(t *testing.T) {
	_, err := NewKafkaProducer(Config{Topic: "shop.orders"}, nil)
	require.Error(t, err)
	_, err = NewKafkaProducer(Config{Brokers: []string{"localhost:9092"}}, nil)
	require.Error(t, err)
}

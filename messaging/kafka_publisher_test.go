package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ADat1304/Project-cafe/entity"
	"github.com/ADat1304/Project-cafe/services"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

func TestKafkaOrderPublisher(t *testing.T) {
	order := entity.Order{
		ID:          "o-42",
		TableNumber: "5",
		Status:      entity.OrderOpen,
		TotalAmount: 89000,
		Items: []entity.OrderItem{
			{ProductName: "Bạc xỉu", Quantity: 2},
			{ProductName: "Trà đào", Quantity: 1},
		},
	}

	tests := []struct {
		name          string
		publish       func(p *KafkaOrderPublisher) error
		prepareMocks  func(w *MockWriter)
		expectedType  string
		expectedError bool
	}{
		{
			name: "order created",
			publish: func(p *KafkaOrderPublisher) error {
				return p.PublishOrderCreated(context.Background(), order)
			},
			prepareMocks: func(w *MockWriter) {
				w.On("WriteMessages", mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectedType: services.EventOrderCreated,
		},
		{
			name: "status changed",
			publish: func(p *KafkaOrderPublisher) error {
				return p.PublishOrderStatusChanged(context.Background(), order)
			},
			prepareMocks: func(w *MockWriter) {
				w.On("WriteMessages", mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectedType: services.EventOrderStatusChanged,
		},
		{
			name: "writer error is returned",
			publish: func(p *KafkaOrderPublisher) error {
				return p.PublishOrderCreated(context.Background(), order)
			},
			prepareMocks: func(w *MockWriter) {
				w.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
			},
			expectedType:  services.EventOrderCreated,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := new(MockWriter)
			tt.prepareMocks(w)

			err := tt.publish(NewKafkaOrderPublisher(w))
			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			w.AssertExpectations(t)
			msgs := w.Calls[0].Arguments.Get(1).([]kafka.Message)
			require.Len(t, msgs, 1)
			assert.Equal(t, "o-42", string(msgs[0].Key))

			var ev services.OrderEvent
			require.NoError(t, json.Unmarshal(msgs[0].Value, &ev))
			assert.Equal(t, tt.expectedType, ev.Type)
			assert.Equal(t, "5", ev.TableNumber)
			assert.EqualValues(t, 89000, ev.TotalAmount)
			assert.Equal(t, 3, ev.ItemCount)
		})
	}
}

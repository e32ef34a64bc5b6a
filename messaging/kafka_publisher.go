package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ADat1304/Project-cafe/entity"
	"github.com/ADat1304/Project-cafe/services"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaOrderPublisher emits order events keyed by order id so events for one
// order land on the same partition.
type KafkaOrderPublisher struct {
	Writer MessageWriter
}

func NewKafkaOrderPublisher(w MessageWriter) *KafkaOrderPublisher {
	return &KafkaOrderPublisher{Writer: w}
}

func (p *KafkaOrderPublisher) PublishOrderCreated(ctx context.Context, o entity.Order) error {
	return p.publish(ctx, services.NewOrderEvent(services.EventOrderCreated, o))
}

func (p *KafkaOrderPublisher) PublishOrderStatusChanged(ctx context.Context, o entity.Order) error {
	return p.publish(ctx, services.NewOrderEvent(services.EventOrderStatusChanged, o))
}

func (p *KafkaOrderPublisher) publish(ctx context.Context, ev services.OrderEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", ev.Type, err)
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.OrderID),
		Value: value,
	})
}

func (p *KafkaOrderPublisher) Close() error {
	return p.Writer.Close()
}

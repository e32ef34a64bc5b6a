package services

import (
	"context"
	"time"

	"github.com/ADat1304/Project-cafe/entity"
)

// OrderEvent is published after the gateway confirms a state change.
type OrderEvent struct {
	Type        string    `json:"type"`
	OrderID     string    `json:"orderId"`
	TableNumber string    `json:"tableNumber"`
	Status      string    `json:"status"`
	TotalAmount int64     `json:"totalAmount"`
	ItemCount   int       `json:"itemCount"`
	At          time.Time `json:"at"`
}

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

func NewOrderEvent(kind string, o entity.Order) OrderEvent {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return OrderEvent{
		Type: kind, OrderID: o.ID, TableNumber: o.TableNumber, Status: string(o.Status),
		TotalAmount: o.TotalAmount, ItemCount: n, At: time.Now().UTC(),
	}
}

type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, o entity.Order) error
	PublishOrderStatusChanged(ctx context.Context, o entity.Order) error
}

// NoopEventPublisher is used when no broker is configured.
type NoopEventPublisher struct{}

func (NoopEventPublisher) PublishOrderCreated(context.Context, entity.Order) error       { return nil }
func (NoopEventPublisher) PublishOrderStatusChanged(context.Context, entity.Order) error { return nil }

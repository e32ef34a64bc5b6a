package services

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/ADat1304/Project-cafe/entity"
)

type OrderGateway interface {
	ListOrders(ctx context.Context) ([]entity.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.Order, error)
}

type OrderItemView struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Notes       string `json:"notes,omitempty"`
	UnitPrice   int64  `json:"unitPrice"`
	LineTotal   int64  `json:"lineTotal"`
	Unresolved  bool   `json:"priceUnresolved"`
}

// OrderView is a gateway order with display prices filled in. TotalAmount is
// the gateway's figure; DisplayTotal falls back to the recomputed sum when
// the gateway sent zero.
type OrderView struct {
	ID                string             `json:"orderId"`
	TableNumber       string             `json:"tableNumber"`
	Status            entity.OrderStatus `json:"status"`
	PaymentMethodType string             `json:"paymentMethodType"`
	OrderDate         time.Time          `json:"orderDate"`
	Items             []OrderItemView    `json:"items"`
	TotalAmount       int64              `json:"totalAmount"`
	DisplayTotal      int64              `json:"displayTotal"`
}

func BuildOrderView(o entity.Order, catalog PriceCatalog) OrderView {
	v := OrderView{
		ID: o.ID, TableNumber: o.TableNumber, Status: o.Status,
		PaymentMethodType: o.PaymentMethodType, OrderDate: o.OrderDate,
		Items: make([]OrderItemView, 0, len(o.Items)), TotalAmount: o.TotalAmount,
	}
	var sum int64
	for _, it := range o.Items {
		unit, total, ok := OrderItemDisplayPrice(it, catalog)
		sum += total
		v.Items = append(v.Items, OrderItemView{
			ProductName: it.ProductName, Quantity: it.Quantity, Notes: it.Notes,
			UnitPrice: unit, LineTotal: total, Unresolved: !ok,
		})
	}
	v.DisplayTotal = o.TotalAmount
	if v.DisplayTotal == 0 {
		v.DisplayTotal = sum
	}
	return v
}

type OrderService struct {
	gw      OrderGateway
	catalog *CatalogService
	events  OrderEventPublisher
}

func NewOrderService(gw OrderGateway, catalog *CatalogService, events OrderEventPublisher) *OrderService {
	if events == nil {
		events = NoopEventPublisher{}
	}
	return &OrderService{gw: gw, catalog: catalog, events: events}
}

// List returns orders newest first, optionally filtered by status.
func (s *OrderService) List(ctx context.Context, status string) ([]OrderView, error) {
	orders, err := s.gw.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	status = strings.ToUpper(strings.TrimSpace(status))
	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		if status != "" && string(o.Status) != status {
			continue
		}
		out = append(out, BuildOrderView(o, s.catalog))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out, nil
}

func ParseOrderStatus(raw string) (entity.OrderStatus, error) {
	switch st := entity.OrderStatus(strings.ToUpper(strings.TrimSpace(raw))); st {
	case entity.OrderOpen, entity.OrderClose:
		return st, nil
	}
	return "", invalid(InvalidField, "status", "status must be OPEN or CLOSE")
}

// UpdateStatus opens or closes an order. The gateway frees or occupies the
// table, so tables are refreshed afterwards.
func (s *OrderService) UpdateStatus(ctx context.Context, id, rawStatus string) (*OrderView, error) {
	if strings.TrimSpace(id) == "" {
		return nil, invalid(InvalidField, "orderId", "order id is required")
	}
	status, err := ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	o, err := s.gw.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if _, err := s.catalog.RefreshTables(ctx); err != nil {
		log.Printf("refresh tables after order %s status change: %v", id, err)
	}
	if err := s.events.PublishOrderStatusChanged(ctx, *o); err != nil {
		log.Printf("publish order %s status: %v", id, err)
	}
	v := BuildOrderView(*o, s.catalog)
	return &v, nil
}

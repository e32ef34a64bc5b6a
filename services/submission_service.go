package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ADat1304/Project-cafe/entity"
	"github.com/ADat1304/Project-cafe/gateway"
)

// OrderCreator is the gateway's order-creation call.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req gateway.OrderCreationRequest) (*entity.Order, error)
}

// Validate reports the first user-correctable problem with cart, checking
// table, then payment method, then items.
func Validate(cart entity.Cart) error {
	if strings.TrimSpace(cart.TableNumber) == "" {
		return invalid(MissingTable, "tableNumber", "please select a table")
	}
	if strings.TrimSpace(cart.PaymentMethodType) == "" {
		return invalid(MissingPaymentMethod, "paymentMethodType", "please select a payment method")
	}
	if len(ToRequestPayload(cart).Items) == 0 {
		return invalid(EmptyCart, "items", "the order has no items")
	}
	return nil
}

// ToRequestPayload converts cart into the gateway's order-creation body.
// Strings are trimmed; lines with a blank name or non-positive quantity are
// dropped.
func ToRequestPayload(cart entity.Cart) gateway.OrderCreationRequest {
	req := gateway.OrderCreationRequest{
		TableNumber:       strings.TrimSpace(cart.TableNumber),
		PaymentMethodType: strings.TrimSpace(cart.PaymentMethodType),
		Items:             make([]gateway.OrderItemRequest, 0, len(cart.Items)),
	}
	for _, it := range cart.Items {
		name := strings.TrimSpace(it.ProductName)
		if name == "" || it.Quantity <= 0 {
			continue
		}
		req.Items = append(req.Items, gateway.OrderItemRequest{
			ProductName: name,
			Quantity:    it.Quantity,
			Notes:       strings.TrimSpace(it.Notes),
		})
	}
	return req
}

type SubmitResult struct {
	Order    OrderView `json:"order"`
	Cart     CartView  `json:"cart"`
	Warnings []string  `json:"warnings,omitempty"`
}

// SubmissionService sends a session's cart to the gateway as a new order.
type SubmissionService struct {
	carts   *CartService
	catalog *CatalogService
	orders  OrderCreator
	events  OrderEventPublisher
}

func NewSubmissionService(carts *CartService, catalog *CatalogService, orders OrderCreator, events OrderEventPublisher) *SubmissionService {
	if events == nil {
		events = NoopEventPublisher{}
	}
	return &SubmissionService{carts: carts, catalog: catalog, orders: orders, events: events}
}

// Submit validates the cart, makes exactly one order-creation call and, on
// success, resets the cart and refreshes tables and products. Validation
// failures and a submit already in flight never reach the network. The cart
// is left untouched on any failure.
func (s *SubmissionService) Submit(ctx context.Context, sessionID string) (*SubmitResult, error) {
	cart, err := s.carts.beginSubmit(sessionID)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.CreateOrder(ctx, ToRequestPayload(cart))
	if err != nil {
		s.carts.endSubmit(sessionID, false)
		return nil, fmt.Errorf("create order: %w", err)
	}
	view := s.carts.endSubmit(sessionID, true)

	res := &SubmitResult{Cart: view}
	if _, err := s.catalog.RefreshTables(ctx); err != nil {
		log.Printf("refresh tables after order %s: %v", order.ID, err)
		res.Warnings = append(res.Warnings, "table list could not be refreshed")
	}
	if _, err := s.catalog.RefreshProducts(ctx); err != nil {
		log.Printf("refresh products after order %s: %v", order.ID, err)
	}
	if order.ID == "" {
		log.Printf("order created for session %s but gateway returned no details", sessionID)
		res.Warnings = append(res.Warnings, "order was created but its details are not available")
	} else if err := s.events.PublishOrderCreated(ctx, *order); err != nil {
		log.Printf("publish order %s: %v", order.ID, err)
	}

	res.Order = BuildOrderView(*order, s.catalog)
	return res, nil
}

package entity

import "time"

type OrderStatus string

const (
	OrderOpen  OrderStatus = "OPEN"
	OrderClose OrderStatus = "CLOSE"
)

type OrderItem struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	LineTotal   int64  `json:"lineTotal"`
	Notes       string `json:"notes,omitempty"`
}

// Order is the gateway's record of a sale; TotalAmount is authoritative.
type Order struct {
	ID                string      `json:"orderId"`
	TableNumber       string      `json:"tableNumber"`
	Status            OrderStatus `json:"status"`
	Items             []OrderItem `json:"items"`
	TotalAmount       int64       `json:"totalAmount"`
	PaymentMethodType string      `json:"paymentMethodType"`
	OrderDate         time.Time   `json:"orderDate"`
}

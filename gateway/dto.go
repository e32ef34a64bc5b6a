package gateway

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/ADat1304/Project-cafe/entity"
)

// Amount decodes the gateway's decimal money fields (25000, 25000.00 or
// "25000") into whole VND.
type Amount int64

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	var f float64
	if err := json.Unmarshal([]byte(s), &f); err != nil {
		return err
	}
	*a = Amount(math.Round(f))
	return nil
}

type productDTO struct {
	ProductID    string   `json:"productID"`
	ProductName  string   `json:"productName"`
	Price        Amount   `json:"price"`
	Amount       int      `json:"amount"`
	CategoryName string   `json:"categoryName"`
	Images       []string `json:"images"`
}

func (p productDTO) toEntity() entity.Product {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return entity.Product{
		ID:           p.ProductID,
		Name:         p.ProductName,
		Price:        int64(p.Price),
		StockAmount:  p.Amount,
		CategoryName: p.CategoryName,
		Images:       images,
	}
}

// ProductRequest is the create/update body for /products.
type ProductRequest struct {
	ProductName  string   `json:"productName"`
	Price        int64    `json:"price"`
	Amount       int      `json:"amount"`
	CategoryName string   `json:"categoryName,omitempty"`
	Images       []string `json:"images"`
}

type InventoryRequest struct {
	Quantity int `json:"quantity"`
}

type tableDTO struct {
	TableID     string `json:"tableID"`
	TableNumber string `json:"tableNumber"`
	Status      int    `json:"status"`
}

func (t tableDTO) toEntity() entity.Table {
	return entity.Table{ID: t.TableID, Number: t.TableNumber, Status: entity.TableStatus(t.Status)}
}

type paymentMethodDTO struct {
	PaymentMethodID   string `json:"paymentMethodID"`
	PaymentMethodType string `json:"paymentMethodType"`
}

type orderItemDTO struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   Amount `json:"unitPrice"`
	LineTotal   Amount `json:"lineTotal"`
	Notes       string `json:"notes"`
}

type orderDTO struct {
	OrderID           string         `json:"orderId"`
	OrderDate         string         `json:"orderDate"`
	TotalAmount       Amount         `json:"totalAmount"`
	Status            string         `json:"status"`
	TableNumber       string         `json:"tableNumber"`
	PaymentMethodType string         `json:"paymentMethodType"`
	Items             []orderItemDTO `json:"items"`
}

// orderDate layouts seen from the order service (LocalDateTime has no zone).
var orderDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseOrderDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range orderDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (o orderDTO) toEntity() entity.Order {
	items := make([]entity.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, entity.OrderItem{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   int64(it.UnitPrice),
			LineTotal:   int64(it.LineTotal),
			Notes:       it.Notes,
		})
	}
	return entity.Order{
		ID:                o.OrderID,
		TableNumber:       o.TableNumber,
		Status:            entity.OrderStatus(strings.ToUpper(o.Status)),
		Items:             items,
		TotalAmount:       int64(o.TotalAmount),
		PaymentMethodType: o.PaymentMethodType,
		OrderDate:         parseOrderDate(o.OrderDate),
	}
}

// OrderItemRequest mirrors the order service's item contract.
type OrderItemRequest struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Notes       string `json:"notes,omitempty"`
}

type OrderCreationRequest struct {
	TableNumber       string             `json:"tableNumber"`
	PaymentMethodType string             `json:"paymentMethodType"`
	Items             []OrderItemRequest `json:"items"`
}

// orchestrated is what the gateway answers on POST /orders: the created
// order plus product summaries. Plain order bodies are accepted too.
type orchestrated struct {
	RequestedBy string    `json:"requestedBy"`
	Order       *orderDTO `json:"order"`
}

type userDTO struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	FullName string   `json:"fullname"`
	Role     string   `json:"role"`
	Roles    []string `json:"roles"`
}

func (u userDTO) toEntity() entity.User {
	roles := append([]string{}, u.Roles...)
	if len(roles) == 0 && u.Role != "" {
		roles = append(roles, u.Role)
	}
	return entity.User{ID: u.ID, Username: u.Username, FullName: u.FullName, Roles: roles}
}

type UserCreationRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	FullName string   `json:"fullname"`
	Roles    []string `json:"roles"`
}

type UserUpdateRequest struct {
	Password string   `json:"password,omitempty"`
	FullName string   `json:"fullname,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

// AuthResult is the gateway's login answer. Only Token is guaranteed.
type AuthResult struct {
	Token         string   `json:"token"`
	Authenticated bool     `json:"authenticated"`
	Username      string   `json:"username"`
	FullName      string   `json:"fullName"`
	Roles         []string `json:"roles"`
}

type dailyStatsDTO struct {
	Date        string `json:"date"`
	TotalAmount Amount `json:"totalAmount"`
	OrderCount  int64  `json:"orderCount"`
}

type topProductDTO struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	TotalSold   int64  `json:"totalSold"`
}

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ADat1304/Project-cafe/entity"
)

// ===== Auth =====

func (c *Client) Authenticate(ctx context.Context, username, password string) (*AuthResult, error) {
	var out AuthResult
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/token", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ===== Users =====

func (c *Client) ListUsers(ctx context.Context) ([]entity.User, error) {
	var rows []userDTO
	if err := c.do(ctx, http.MethodGet, "/users", nil, &rows); err != nil {
		return nil, err
	}
	out := make([]entity.User, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toEntity())
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*entity.User, error) {
	var row userDTO
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &row); err != nil {
		return nil, err
	}
	u := row.toEntity()
	return &u, nil
}

func (c *Client) CreateUser(ctx context.Context, req UserCreationRequest) (*entity.User, error) {
	var row userDTO
	if err := c.do(ctx, http.MethodPost, "/users", req, &row); err != nil {
		return nil, err
	}
	u := row.toEntity()
	return &u, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, req UserUpdateRequest) (*entity.User, error) {
	var row userDTO
	if err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), req, &row); err != nil {
		return nil, err
	}
	u := row.toEntity()
	return &u, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
}

// ===== Products =====

func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return c.listProducts(ctx, "/products")
}

func (c *Client) ListProductsByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	return c.listProducts(ctx, "/products/category/"+url.PathEscape(category))
}

func (c *Client) listProducts(ctx context.Context, path string) ([]entity.Product, error) {
	var rows []productDTO
	if err := c.do(ctx, http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toEntity())
	}
	return out, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, "/products/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, req ProductRequest) (*entity.Product, error) {
	return c.writeProduct(ctx, http.MethodPost, "/products", req)
}

func (c *Client) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*entity.Product, error) {
	return c.writeProduct(ctx, http.MethodPut, "/products/"+url.PathEscape(id), req)
}

func (c *Client) writeProduct(ctx context.Context, method, path string, body any) (*entity.Product, error) {
	var row productDTO
	if err := c.do(ctx, method, path, body, &row); err != nil {
		return nil, err
	}
	p := row.toEntity()
	return &p, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
}

// AdjustInventory raises (delta > 0) or lowers (delta < 0) a product's stock.
func (c *Client) AdjustInventory(ctx context.Context, id string, delta int) (*entity.Product, error) {
	if delta == 0 {
		return nil, fmt.Errorf("inventory delta must not be zero")
	}
	op, qty := "increase", delta
	if delta < 0 {
		op, qty = "decrease", -delta
	}
	path := fmt.Sprintf("/products/%s/inventory/%s", url.PathEscape(id), op)
	return c.writeProduct(ctx, http.MethodPost, path, InventoryRequest{Quantity: qty})
}

// ===== Tables =====

func (c *Client) ListTables(ctx context.Context) ([]entity.Table, error) {
	var rows []tableDTO
	if err := c.do(ctx, http.MethodGet, "/tables", nil, &rows); err != nil {
		return nil, err
	}
	out := make([]entity.Table, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toEntity())
	}
	return out, nil
}

func (c *Client) UpdateTableStatus(ctx context.Context, number string, status entity.TableStatus) (*entity.Table, error) {
	var row tableDTO
	path := "/tables/" + url.PathEscape(number) + "/status"
	if err := c.do(ctx, http.MethodPatch, path, map[string]int{"status": int(status)}, &row); err != nil {
		return nil, err
	}
	t := row.toEntity()
	return &t, nil
}

// ===== Orders =====

func (c *Client) ListPaymentMethods(ctx context.Context) ([]entity.PaymentMethod, error) {
	var rows []paymentMethodDTO
	if err := c.do(ctx, http.MethodGet, "/orders/payment-methods", nil, &rows); err != nil {
		return nil, err
	}
	out := make([]entity.PaymentMethod, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.PaymentMethod{ID: r.PaymentMethodID, Type: r.PaymentMethodType})
	}
	return out, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]entity.Order, error) {
	var rows []orderDTO
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &rows); err != nil {
		return nil, err
	}
	out := make([]entity.Order, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toEntity())
	}
	return out, nil
}

func (c *Client) CreateOrder(ctx context.Context, req OrderCreationRequest) (*entity.Order, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/orders", req, &raw); err != nil {
		return nil, err
	}
	// An empty 2xx still means the order exists; the caller gets a zero order.
	if len(bytes.TrimSpace(raw)) == 0 {
		return &entity.Order{}, nil
	}
	var wrapped orchestrated
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, &NetworkError{Op: "decode POST /orders", Err: err}
	}
	var row orderDTO
	if wrapped.Order != nil {
		row = *wrapped.Order
	} else if err := json.Unmarshal(raw, &row); err != nil {
		return nil, &NetworkError{Op: "decode POST /orders", Err: err}
	}
	o := row.toEntity()
	return &o, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.Order, error) {
	var row orderDTO
	path := "/orders/" + url.PathEscape(id) + "/status"
	if err := c.do(ctx, http.MethodPatch, path, map[string]string{"status": string(status)}, &row); err != nil {
		return nil, err
	}
	o := row.toEntity()
	return &o, nil
}

// DailyStats returns totals for one day (YYYY-MM-DD); empty date means today.
func (c *Client) DailyStats(ctx context.Context, date string) (*entity.DailyStats, error) {
	path := "/orders/daily-stats"
	if date != "" {
		path += "?date=" + url.QueryEscape(date)
	}
	var row dailyStatsDTO
	if err := c.do(ctx, http.MethodGet, path, nil, &row); err != nil {
		return nil, err
	}
	d := row.Date
	if d == "" {
		d = date
	}
	return &entity.DailyStats{Date: d, TotalAmount: int64(row.TotalAmount), OrderCount: row.OrderCount}, nil
}

func (c *Client) TopSelling(ctx context.Context, limit int) ([]entity.TopProduct, error) {
	var rows []topProductDTO
	path := "/orders/top-selling?limit=" + strconv.Itoa(limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}
	out := make([]entity.TopProduct, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.TopProduct{ProductID: r.ProductID, ProductName: r.ProductName, TotalSold: r.TotalSold})
	}
	return out, nil
}

// Revenue asks the gateway for the authoritative revenue between two dates.
func (c *Client) Revenue(ctx context.Context, startDate, endDate string) (int64, error) {
	q := url.Values{}
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)
	var amount Amount
	if err := c.do(ctx, http.MethodGet, "/orders/revenue?"+q.Encode(), nil, &amount); err != nil {
		return 0, err
	}
	return int64(amount), nil
}

package services

import (
	"context"

	"github.com/ADat1304/Project-cafe/entity"
	"github.com/ADat1304/Project-cafe/gateway"

	"github.com/stretchr/testify/mock"
)

// MockGateway stands in for *gateway.Client in every service.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) ListProducts(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]entity.Product)
	return rows, args.Error(1)
}

func (m *MockGateway) ListProductsByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	args := m.Called(ctx, category)
	rows, _ := args.Get(0).([]entity.Product)
	return rows, args.Error(1)
}

func (m *MockGateway) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]string)
	return rows, args.Error(1)
}

func (m *MockGateway) CreateProduct(ctx context.Context, req gateway.ProductRequest) (*entity.Product, error) {
	args := m.Called(ctx, req)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *MockGateway) UpdateProduct(ctx context.Context, id string, req gateway.ProductRequest) (*entity.Product, error) {
	args := m.Called(ctx, id, req)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *MockGateway) DeleteProduct(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockGateway) AdjustInventory(ctx context.Context, id string, delta int) (*entity.Product, error) {
	args := m.Called(ctx, id, delta)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *MockGateway) ListTables(ctx context.Context) ([]entity.Table, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]entity.Table)
	return rows, args.Error(1)
}

func (m *MockGateway) UpdateTableStatus(ctx context.Context, number string, status entity.TableStatus) (*entity.Table, error) {
	args := m.Called(ctx, number, status)
	t, _ := args.Get(0).(*entity.Table)
	return t, args.Error(1)
}

func (m *MockGateway) ListPaymentMethods(ctx context.Context) ([]entity.PaymentMethod, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]entity.PaymentMethod)
	return rows, args.Error(1)
}

func (m *MockGateway) ListOrders(ctx context.Context) ([]entity.Order, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]entity.Order)
	return rows, args.Error(1)
}

func (m *MockGateway) CreateOrder(ctx context.Context, req gateway.OrderCreationRequest) (*entity.Order, error) {
	args := m.Called(ctx, req)
	o, _ := args.Get(0).(*entity.Order)
	return o, args.Error(1)
}

func (m *MockGateway) UpdateOrderStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.Order, error) {
	args := m.Called(ctx, id, status)
	o, _ := args.Get(0).(*entity.Order)
	return o, args.Error(1)
}

func (m *MockGateway) DailyStats(ctx context.Context, date string) (*entity.DailyStats, error) {
	args := m.Called(ctx, date)
	s, _ := args.Get(0).(*entity.DailyStats)
	return s, args.Error(1)
}

func (m *MockGateway) TopSelling(ctx context.Context, limit int) ([]entity.TopProduct, error) {
	args := m.Called(ctx, limit)
	rows, _ := args.Get(0).([]entity.TopProduct)
	return rows, args.Error(1)
}

func (m *MockGateway) Revenue(ctx context.Context, startDate, endDate string) (int64, error) {
	args := m.Called(ctx, startDate, endDate)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGateway) ListUsers(ctx context.Context) ([]entity.User, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]entity.User)
	return rows, args.Error(1)
}

func (m *MockGateway) GetUser(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *MockGateway) CreateUser(ctx context.Context, req gateway.UserCreationRequest) (*entity.User, error) {
	args := m.Called(ctx, req)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *MockGateway) UpdateUser(ctx context.Context, id string, req gateway.UserUpdateRequest) (*entity.User, error) {
	args := m.Called(ctx, id, req)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *MockGateway) DeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockGateway) Authenticate(ctx context.Context, username, password string) (*gateway.AuthResult, error) {
	args := m.Called(ctx, username, password)
	r, _ := args.Get(0).(*gateway.AuthResult)
	return r, args.Error(1)
}

var (
	menu = []entity.Product{
		{ID: "p1", Name: "Cà phê sữa", Price: 25000, StockAmount: 10},
		{ID: "p2", Name: "Trà đào", Price: 39000, StockAmount: 5},
		{ID: "p3", Name: "Bạc xỉu", Price: 29000, StockAmount: 0},
	}
	floor = []entity.Table{
		{ID: "t1", Number: "1", Status: entity.TableFree},
		{ID: "t5", Number: "5", Status: entity.TableBusy},
	}
	payments = []entity.PaymentMethod{{ID: "pm1", Type: "CASH"}, {ID: "pm2", Type: "BANKING"}}
)

// loadedCatalog returns a catalog already holding menu, floor and payments.
func loadedCatalog(t interface{ Helper() }) (*CatalogService, *MockGateway) {
	t.Helper()
	gw := new(MockGateway)
	gw.On("ListProducts", mock.Anything).Return(menu, nil)
	gw.On("ListTables", mock.Anything).Return(floor, nil)
	gw.On("ListPaymentMethods", mock.Anything).Return(payments, nil)
	c := NewCatalogService(gw)
	c.RefreshAll(context.Background())
	return c, gw
}

var (
	anyCtx = mock.Anything
	bg     = context.Background()
)

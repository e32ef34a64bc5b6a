package services

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ADat1304/Project-cafe/entity"
	"github.com/ADat1304/Project-cafe/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductService_ValidatesBeforeCalling(t *testing.T) {
	tests := []struct {
		name          string
		in            ProductIn
		expectedField string
	}{
		{"blank name", ProductIn{ProductName: "  ", Price: 1000}, "productName"},
		{"negative price", ProductIn{ProductName: "Trà", Price: -1}, "price"},
		{"negative amount", ProductIn{ProductName: "Trà", Amount: -2}, "amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, gw := loadedCatalog(t)
			s := NewProductService(gw, catalog)

			_, err := s.Create(bg, &tt.in)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.expectedField, ve.Field)
			gw.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
		})
	}
}

func TestProductService_CreateRefreshesCatalog(t *testing.T) {
	catalog, gw := loadedCatalog(t)
	s := NewProductService(gw, catalog)

	req := gateway.ProductRequest{ProductName: "Sinh tố bơ", Price: 45000, Amount: 3, CategoryName: "Sinh tố", Images: []string{"a.jpg"}}
	gw.On("CreateProduct", mock.Anything, req).Return(&entity.Product{ID: "p9", Name: "Sinh tố bơ", Price: 45000}, nil)

	p, err := s.Create(bg, &ProductIn{ProductName: " Sinh tố bơ ", Price: 45000, Amount: 3, CategoryName: "Sinh tố", Images: []string{" a.jpg", ""}})
	require.NoError(t, err)
	assert.Equal(t, "p9", p.ID)
	gw.AssertNumberOfCalls(t, "ListProducts", 2)
}

func TestProductService_ListSearch(t *testing.T) {
	catalog, gw := loadedCatalog(t)
	s := NewProductService(gw, catalog)

	rows, err := s.List(bg, "", "TRÀ")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "p2", rows[0].ID)

	gw.On("ListProductsByCategory", mock.Anything, "Cà phê").Return(menu[:1], nil)
	rows, err = s.List(bg, "Cà phê", "")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestProductService_AdjustInventoryRejectsZero(t *testing.T) {
	catalog, gw := loadedCatalog(t)
	s := NewProductService(gw, catalog)

	_, err := s.AdjustInventory(bg, "p1", 0)
	assert.Error(t, err)
	gw.AssertNotCalled(t, "AdjustInventory", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_Create(t *testing.T) {
	gw := new(MockGateway)
	s := NewUserService(gw)

	_, err := s.Create(bg, &UserIn{Username: "mai", Password: "123"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "password", ve.Field)

	gw.On("CreateUser", mock.Anything, gateway.UserCreationRequest{
		Username: "mai", Password: "123456", FullName: "Nguyễn Mai", Roles: []string{"STAFF"},
	}).Return(&entity.User{ID: "u1", Username: "mai"}, nil).Once()

	u, err := s.Create(bg, &UserIn{Username: "mai", Password: "123456", FullName: " Nguyễn Mai "})
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	gw.AssertExpectations(t)
}

func TestTableService(t *testing.T) {
	catalog, gw := loadedCatalog(t)
	s := NewTableService(gw, catalog, "https://cafe.example/")

	list, err := s.List(bg)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Busy)
	assert.Equal(t, 1, list.Free)

	assert.Equal(t, "https://cafe.example/order?table=5", s.OrderLink("5"))

	png, err := s.QRCode("5")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	_, err = s.QRCode("99")
	assert.Error(t, err)

	gw.On("UpdateTableStatus", mock.Anything, "5", entity.TableFree).Return(&entity.Table{Number: "5"}, nil).Once()
	_, err = s.UpdateStatus(bg, "5", "free")
	require.NoError(t, err)

	_, err = s.UpdateStatus(bg, "5", "dirty")
	assert.Error(t, err)
}

func TestParseTableStatus(t *testing.T) {
	st, err := ParseTableStatus("2")
	require.NoError(t, err)
	assert.Equal(t, entity.TableReserved, st)

	_, err = ParseTableStatus("-1")
	assert.Error(t, err)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "request failed", UserMessage(&gateway.Error{Status: 500}))
	assert.Equal(t, "cannot reach server", UserMessage(&gateway.NetworkError{Op: "GET /x", Err: errors.New("eof")}))
	assert.Equal(t, "Hết hàng", UserMessage(&CatalogFetchError{Resource: "products", Err: &gateway.Error{Status: 409, Message: "Hết hàng"}}))
}

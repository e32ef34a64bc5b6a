package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ADat1304/Project-cafe/entity"
	"github.com/ADat1304/Project-cafe/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu    sync.Mutex
	views []CartView
}

func (r *recordingNotifier) PublishCart(_ string, v CartView) {
	r.mu.Lock()
	r.views = append(r.views, v)
	r.mu.Unlock()
}

type MockEvents struct {
	mock.Mock
}

func (m *MockEvents) PublishOrderCreated(ctx context.Context, o entity.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockEvents) PublishOrderStatusChanged(ctx context.Context, o entity.Order) error {
	return m.Called(ctx, o).Error(0)
}

func newSubmission(t *testing.T) (*SubmissionService, *CartService, *MockGateway, *MockEvents) {
	t.Helper()
	catalog, gw := loadedCatalog(t)
	carts := NewCartService(catalog, &recordingNotifier{})
	events := new(MockEvents)
	return NewSubmissionService(carts, catalog, gw, events), carts, gw, events
}

func fillCart(t *testing.T, carts *CartService, sid string) {
	t.Helper()
	_, err := carts.AddProduct(sid, "p1")
	require.NoError(t, err)
	_, err = carts.AddProduct(sid, "p1")
	require.NoError(t, err)
	_, err = carts.AddProduct(sid, "p2")
	require.NoError(t, err)
	_, err = carts.SetNote(sid, 1, "  ít đường ")
	require.NoError(t, err)
	_, err = carts.SelectTable(sid, "5")
	require.NoError(t, err)
	_, err = carts.SelectPaymentMethod(sid, "CASH")
	require.NoError(t, err)
}

func TestValidate(t *testing.T) {
	items := []entity.LineItem{{ProductName: "Trà đào", Quantity: 1}}

	tests := []struct {
		name         string
		cart         entity.Cart
		expectedCode ValidationCode
	}{
		{"missing table", entity.Cart{PaymentMethodType: "CASH", Items: items}, MissingTable},
		{"blank table", entity.Cart{TableNumber: "  ", PaymentMethodType: "CASH", Items: items}, MissingTable},
		{"table checked first", entity.Cart{}, MissingTable},
		{"missing payment", entity.Cart{TableNumber: "5", Items: items}, MissingPaymentMethod},
		{"empty cart", entity.Cart{TableNumber: "5", PaymentMethodType: "CASH"}, EmptyCart},
		{"only blank lines", entity.Cart{TableNumber: "5", PaymentMethodType: "CASH", Items: []entity.LineItem{{ProductName: " ", Quantity: 2}}}, EmptyCart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ve *ValidationError
			require.ErrorAs(t, Validate(tt.cart), &ve)
			assert.Equal(t, tt.expectedCode, ve.Code)
		})
	}

	assert.NoError(t, Validate(entity.Cart{TableNumber: "5", PaymentMethodType: "CASH", Items: items}))
}

func TestToRequestPayload(t *testing.T) {
	req := ToRequestPayload(entity.Cart{
		TableNumber:       " 5 ",
		PaymentMethodType: "CASH ",
		Items: []entity.LineItem{
			{ProductID: "p1", ProductName: " Cà phê sữa ", Quantity: 2, Notes: " ít đá "},
			{ProductName: "", Quantity: 1},
			{ProductName: "Trà đào", Quantity: 0},
		},
	})

	assert.Equal(t, gateway.OrderCreationRequest{
		TableNumber:       "5",
		PaymentMethodType: "CASH",
		Items:             []gateway.OrderItemRequest{{ProductName: "Cà phê sữa", Quantity: 2, Notes: "ít đá"}},
	}, req)
}

func TestSubmit_ValidationFailureMakesNoCall(t *testing.T) {
	s, carts, gw, _ := newSubmission(t)
	_, err := carts.AddProduct("s1", "p1")
	require.NoError(t, err)

	_, err = s.Submit(bg, "s1")

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, MissingTable, ve.Code)
	gw.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	assert.Len(t, carts.View("s1").Lines, 1)
	assert.False(t, carts.View("s1").Submitting)
}

func TestSubmit_SuccessResetsCartAndRefreshes(t *testing.T) {
	s, carts, gw, events := newSubmission(t)
	fillCart(t, carts, "s1")

	expectedReq := gateway.OrderCreationRequest{
		TableNumber:       "5",
		PaymentMethodType: "CASH",
		Items: []gateway.OrderItemRequest{
			{ProductName: "Cà phê sữa", Quantity: 2},
			{ProductName: "Trà đào", Quantity: 1, Notes: "ít đường"},
		},
	}
	created := &entity.Order{
		ID: "o-1", TableNumber: "5", Status: entity.OrderOpen, TotalAmount: 89000,
		Items: []entity.OrderItem{{ProductName: "Cà phê sữa", Quantity: 2}, {ProductName: "Trà đào", Quantity: 1}},
	}
	gw.On("CreateOrder", mock.Anything, expectedReq).Return(created, nil).Once()
	events.On("PublishOrderCreated", mock.Anything, *created).Return(nil).Once()

	res, err := s.Submit(bg, "s1")
	require.NoError(t, err)

	assert.Equal(t, "o-1", res.Order.ID)
	assert.EqualValues(t, 89000, res.Order.DisplayTotal)
	assert.EqualValues(t, 50000, res.Order.Items[0].LineTotal)
	assert.Empty(t, res.Cart.Lines)
	assert.Empty(t, res.Cart.TableNumber)
	assert.Empty(t, res.Warnings)

	gw.AssertNumberOfCalls(t, "CreateOrder", 1)
	gw.AssertNumberOfCalls(t, "ListTables", 2)
	gw.AssertNumberOfCalls(t, "ListProducts", 2)
	events.AssertExpectations(t)
	assert.Empty(t, carts.View("s1").Lines)
}

func TestSubmit_GatewayErrorKeepsCart(t *testing.T) {
	s, carts, gw, events := newSubmission(t)
	fillCart(t, carts, "s1")
	gw.On("CreateOrder", mock.Anything, mock.Anything).
		Return(nil, &gateway.Error{Status: 400, Message: "Bàn 5 đang có đơn mở"}).Once()

	_, err := s.Submit(bg, "s1")

	require.Error(t, err)
	assert.Equal(t, "Bàn 5 đang có đơn mở", UserMessage(err))
	v := carts.View("s1")
	assert.Len(t, v.Lines, 2)
	assert.Equal(t, "5", v.TableNumber)
	assert.False(t, v.Submitting)
	events.AssertNotCalled(t, "PublishOrderCreated", mock.Anything, mock.Anything)
}

func TestSubmit_NetworkErrorMessage(t *testing.T) {
	s, carts, gw, _ := newSubmission(t)
	fillCart(t, carts, "s1")
	gw.On("CreateOrder", mock.Anything, mock.Anything).
		Return(nil, &gateway.NetworkError{Op: "POST /orders", Err: errors.New("connection refused")}).Once()

	_, err := s.Submit(bg, "s1")
	assert.Equal(t, "cannot reach server", UserMessage(err))
}

func TestSubmit_SecondSubmitWhileInFlightIsRejected(t *testing.T) {
	s, carts, gw, events := newSubmission(t)
	fillCart(t, carts, "s1")

	entered := make(chan struct{})
	release := make(chan struct{})
	gw.On("CreateOrder", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(&entity.Order{ID: "o-2", Status: entity.OrderOpen}, nil).Once()
	events.On("PublishOrderCreated", mock.Anything, mock.Anything).Return(nil)

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(bg, "s1")
		done <- err
	}()
	<-entered

	assert.True(t, carts.View("s1").Submitting)
	_, err := s.Submit(bg, "s1")
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(release)
	require.NoError(t, <-done)
	gw.AssertNumberOfCalls(t, "CreateOrder", 1)
	assert.False(t, carts.View("s1").Submitting)
}

func TestSubmit_CartEditsWhileInFlightAreRejected(t *testing.T) {
	s, carts, gw, events := newSubmission(t)
	fillCart(t, carts, "s1")
	want := gateway.OrderCreationRequest{
		TableNumber:       "5",
		PaymentMethodType: "CASH",
		Items: []gateway.OrderItemRequest{
			{ProductName: "Cà phê sữa", Quantity: 2},
			{ProductName: "Trà đào", Quantity: 1, Notes: "ít đường"},
		},
	}

	entered := make(chan struct{})
	release := make(chan struct{})
	gw.On("CreateOrder", mock.Anything, want).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(&entity.Order{ID: "o-4", Status: entity.OrderOpen}, nil).Once()
	events.On("PublishOrderCreated", mock.Anything, mock.Anything).Return(nil)

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(bg, "s1")
		done <- err
	}()
	<-entered

	view, err := carts.AddProduct("s1", "p3")
	assert.ErrorIs(t, err, ErrSubmissionInFlight)
	assert.Len(t, view.Lines, 2)
	_, err = carts.SelectTable("s1", "1")
	assert.ErrorIs(t, err, ErrSubmissionInFlight)
	_, err = carts.Reset("s1")
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(release)
	require.NoError(t, <-done)
	gw.AssertNumberOfCalls(t, "CreateOrder", 1)
	assert.Empty(t, carts.View("s1").Lines)

	_, err = carts.AddProduct("s1", "p3")
	require.NoError(t, err, "edits resume once the submit finished")
}

func TestSubmit_EmptyCreateResponseStillResetsCart(t *testing.T) {
	s, carts, gw, events := newSubmission(t)
	fillCart(t, carts, "s1")
	gw.On("CreateOrder", mock.Anything, mock.Anything).Return(&entity.Order{}, nil).Once()

	res, err := s.Submit(bg, "s1")
	require.NoError(t, err)
	assert.Empty(t, res.Cart.Lines)
	assert.Empty(t, carts.View("s1").Lines)
	assert.Contains(t, res.Warnings, "order was created but its details are not available")
	events.AssertNotCalled(t, "PublishOrderCreated", mock.Anything, mock.Anything)
}

func TestSubmit_TableRefreshFailureIsAWarning(t *testing.T) {
	gw := new(MockGateway)
	gw.On("ListProducts", mock.Anything).Return(menu, nil)
	gw.On("ListTables", mock.Anything).Return(floor, nil).Once()
	gw.On("ListTables", mock.Anything).Return(nil, errors.New("tables down")).Once()
	gw.On("ListPaymentMethods", mock.Anything).Return(payments, nil)
	catalog := NewCatalogService(gw)
	catalog.RefreshAll(bg)
	carts := NewCartService(catalog, nil)
	s := NewSubmissionService(carts, catalog, gw, nil)

	fillCart(t, carts, "s1")
	gw.On("CreateOrder", mock.Anything, mock.Anything).Return(&entity.Order{ID: "o-3"}, nil).Once()

	res, err := s.Submit(bg, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"table list could not be refreshed"}, res.Warnings)
	assert.Len(t, catalog.Tables(), 2, "old table snapshot kept")
}

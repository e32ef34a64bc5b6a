package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ADat1304/Project-cafe/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// gatedSource hands out product responses in whatever order the test
// releases them.
type gatedSource struct {
	calls chan chan []entity.Product
}

func (g *gatedSource) ListProducts(ctx context.Context) ([]entity.Product, error) {
	reply := make(chan []entity.Product)
	g.calls <- reply
	return <-reply, nil
}

func (g *gatedSource) ListTables(context.Context) ([]entity.Table, error) { return nil, nil }

func (g *gatedSource) ListPaymentMethods(context.Context) ([]entity.PaymentMethod, error) {
	return nil, nil
}

func TestCatalog_StaleResponseIsDiscarded(t *testing.T) {
	src := &gatedSource{calls: make(chan chan []entity.Product)}
	c := NewCatalogService(src)

	older := make(chan []entity.Product, 1)
	go func() {
		rows, _ := c.RefreshProducts(context.Background())
		older <- rows
	}()
	first := <-src.calls
	assert.True(t, c.Loading(ResourceProducts))

	newer := make(chan []entity.Product, 1)
	go func() {
		rows, _ := c.RefreshProducts(context.Background())
		newer <- rows
	}()
	second := <-src.calls

	second <- []entity.Product{{ID: "p1", Name: "Cà phê sữa", Price: 27000}}
	<-newer
	first <- []entity.Product{{ID: "p1", Name: "Cà phê sữa", Price: 25000}}
	stale := <-older

	price, ok := c.LookupPriceByID("p1")
	require.True(t, ok)
	assert.EqualValues(t, 27000, price)
	assert.EqualValues(t, 27000, stale[0].Price, "late caller sees the current snapshot")
	assert.False(t, c.Loading(ResourceProducts))
}

func TestCatalog_FailedRefreshKeepsSnapshot(t *testing.T) {
	gw := new(MockGateway)
	gw.On("ListProducts", mock.Anything).Return(menu, nil).Once()
	gw.On("ListProducts", mock.Anything).Return(nil, errors.New("timeout")).Once()
	c := NewCatalogService(gw)

	_, err := c.RefreshProducts(context.Background())
	require.NoError(t, err)

	_, err = c.RefreshProducts(context.Background())
	var fe *CatalogFetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "products", fe.Resource)

	assert.Len(t, c.Products(), 3)
	price, ok := c.LookupPriceByName("Trà đào")
	assert.True(t, ok)
	assert.EqualValues(t, 39000, price)
}

func TestCatalog_RefreshAllIsIndependentPerResource(t *testing.T) {
	gw := new(MockGateway)
	gw.On("ListProducts", mock.Anything).Return(menu, nil)
	gw.On("ListTables", mock.Anything).Return(nil, errors.New("tables down"))
	gw.On("ListPaymentMethods", mock.Anything).Return(payments, nil)
	c := NewCatalogService(gw)

	errs := c.RefreshAll(context.Background())

	assert.Len(t, errs, 1)
	assert.Error(t, errs[ResourceTables])
	assert.Len(t, c.Products(), 3)
	assert.Empty(t, c.Tables())
	assert.True(t, c.HasPaymentMethod("BANKING"))
	assert.False(t, c.HasPaymentMethod("banking"))
}

func TestCatalog_DuplicateNamesFirstWins(t *testing.T) {
	gw := new(MockGateway)
	gw.On("ListProducts", mock.Anything).Return([]entity.Product{
		{ID: "a", Name: "Latte", Price: 45000},
		{ID: "b", Name: "Latte", Price: 50000},
	}, nil)
	c := NewCatalogService(gw)
	_, err := c.RefreshProducts(context.Background())
	require.NoError(t, err)

	price, _ := c.LookupPriceByName("Latte")
	assert.EqualValues(t, 45000, price)
	price, _ = c.LookupPriceByID("b")
	assert.EqualValues(t, 50000, price)
	_, ok := c.LookupPriceByName("latte")
	assert.False(t, ok)
}

func TestCatalog_SnapshotsAreCopies(t *testing.T) {
	c, _ := loadedCatalog(t)
	rows := c.Products()
	rows[0].Price = 1

	price, _ := c.LookupPriceByID("p1")
	assert.EqualValues(t, 25000, price)

	tb, ok := c.LookupTable("5")
	require.True(t, ok)
	assert.Equal(t, entity.TableBusy, tb.Status)
}

func TestCatalog_LoadingIsPerResource(t *testing.T) {
	src := &gatedSource{calls: make(chan chan []entity.Product)}
	c := NewCatalogService(src)

	done := make(chan struct{})
	go func() {
		c.RefreshProducts(context.Background())
		close(done)
	}()
	reply := <-src.calls

	assert.True(t, c.Loading(ResourceProducts))
	assert.False(t, c.Loading(ResourceTables))
	_, err := c.RefreshTables(context.Background())
	assert.NoError(t, err, "tables refresh does not wait for products")

	reply <- menu
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("products refresh did not finish")
	}
}

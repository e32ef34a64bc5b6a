package services

import (
	"github.com/ADat1304/Project-cafe/entity"
	"github.com/ADat1304/Project-cafe/utils"
)

func LineSubtotal(item entity.LineItem, catalog PriceCatalog) int64 {
	return ResolveUnitPrice(item, catalog).UnitPrice * int64(item.Quantity)
}

// CartTotal is Σ quantity × resolved unit price, in whole VND.
func CartTotal(cart entity.Cart, catalog PriceCatalog) int64 {
	var total int64
	for _, it := range cart.Items {
		total += LineSubtotal(it, catalog)
	}
	return total
}

type LineView struct {
	Index       int    `json:"index"`
	ProductID   string `json:"productId,omitempty"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Notes       string `json:"notes"`
	UnitPrice   int64  `json:"unitPrice"`
	Subtotal    int64  `json:"subtotal"`
	Display     string `json:"display"`
	Unresolved  bool   `json:"priceUnresolved"`
}

// CartView is a cart with every derived figure computed fresh.
type CartView struct {
	TableNumber       string     `json:"tableNumber"`
	PaymentMethodType string     `json:"paymentMethodType"`
	Lines             []LineView `json:"lines"`
	ItemCount         int        `json:"itemCount"`
	Total             int64      `json:"total"`
	TotalDisplay      string     `json:"totalDisplay"`
	HasUnresolved     bool       `json:"hasUnresolvedPrices"`
	Submitting        bool       `json:"submitting"`
}

func BuildCartView(cart entity.Cart, catalog PriceCatalog) CartView {
	v := CartView{
		TableNumber:       cart.TableNumber,
		PaymentMethodType: cart.PaymentMethodType,
		Lines:             make([]LineView, 0, len(cart.Items)),
	}
	for i, it := range cart.Items {
		r := ResolveUnitPrice(it, catalog)
		sub := r.UnitPrice * int64(it.Quantity)
		display := utils.FormatVND(sub)
		if !r.Resolved {
			display = "?"
			v.HasUnresolved = true
		}
		v.Lines = append(v.Lines, LineView{
			Index: i, ProductID: it.ProductID, ProductName: it.ProductName,
			Quantity: it.Quantity, Notes: it.Notes,
			UnitPrice: r.UnitPrice, Subtotal: sub, Display: display, Unresolved: !r.Resolved,
		})
		v.ItemCount += it.Quantity
		v.Total += sub
	}
	v.TotalDisplay = utils.FormatVND(v.Total)
	return v
}

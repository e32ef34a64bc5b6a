package services

import "github.com/ADat1304/Project-cafe/entity"

// PriceCatalog is what price resolution reads; *CatalogService satisfies it.
type PriceCatalog interface {
	LookupPriceByID(id string) (int64, bool)
	LookupPriceByName(name string) (int64, bool)
}

// PriceResolution is a unit price and whether the catalog knew the product.
// UnitPrice 0 with Resolved false means unknown, not free.
type PriceResolution struct {
	UnitPrice int64
	Resolved  bool
}

// ResolveUnitPrice prices a line from the current catalog snapshot. Lines
// carrying a product id are looked up by id only; lines without one (rebuilt
// from order history) fall back to the exact product name.
func ResolveUnitPrice(item entity.LineItem, catalog PriceCatalog) PriceResolution {
	if catalog == nil {
		return PriceResolution{}
	}
	var (
		price int64
		ok    bool
	)
	if item.ProductID != "" {
		price, ok = catalog.LookupPriceByID(item.ProductID)
	} else {
		price, ok = catalog.LookupPriceByName(item.ProductName)
	}
	if !ok {
		return PriceResolution{}
	}
	return PriceResolution{UnitPrice: price, Resolved: true}
}

// OrderItemDisplayPrice returns the unit price and line total to show for a
// fetched order item. The gateway's own figures win when non-zero; zero
// figures are recomputed from the catalog by name.
func OrderItemDisplayPrice(item entity.OrderItem, catalog PriceCatalog) (unit, total int64, resolved bool) {
	if item.UnitPrice > 0 {
		total = item.LineTotal
		if total == 0 {
			total = item.UnitPrice * int64(item.Quantity)
		}
		return item.UnitPrice, total, true
	}
	if item.LineTotal > 0 && item.Quantity > 0 {
		return item.LineTotal / int64(item.Quantity), item.LineTotal, true
	}
	r := ResolveUnitPrice(entity.LineItem{ProductName: item.ProductName, Quantity: item.Quantity}, catalog)
	return r.UnitPrice, r.UnitPrice * int64(item.Quantity), r.Resolved
}

package services

import (
	"strings"

	"github.com/ADat1304/Project-cafe/entity"
)

// CartModel is the working list of line items on the sales screen. It has no
// persistence: whatever is not submitted is dropped on Reset.
type CartModel struct {
	cart entity.Cart
}

func NewCartModel() *CartModel {
	return &CartModel{cart: entity.Cart{Items: []entity.LineItem{}}}
}

// Snapshot returns a copy safe to hand to other goroutines.
func (m *CartModel) Snapshot() entity.Cart {
	c := m.cart
	c.Items = append([]entity.LineItem{}, m.cart.Items...)
	return c
}

func (m *CartModel) indexOf(p entity.Product) int {
	for i, it := range m.cart.Items {
		if p.ID != "" && it.ProductID != "" {
			if it.ProductID == p.ID {
				return i
			}
			continue
		}
		if it.ProductName == p.Name {
			return i
		}
	}
	return -1
}

// AddOrIncrement bumps the quantity of the product's line, or appends a new
// line with quantity 1. There is never more than one line per product.
func (m *CartModel) AddOrIncrement(p entity.Product) entity.Cart {
	if i := m.indexOf(p); i >= 0 {
		m.cart.Items[i].Quantity++
		return m.Snapshot()
	}
	m.cart.Items = append(m.cart.Items, entity.LineItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    1,
	})
	return m.Snapshot()
}

// SetQuantity sets the line's quantity; zero or below removes the line.
// Out-of-range indexes are ignored.
func (m *CartModel) SetQuantity(index, quantity int) entity.Cart {
	if !m.valid(index) {
		return m.Snapshot()
	}
	if quantity <= 0 {
		return m.RemoveLine(index)
	}
	m.cart.Items[index].Quantity = quantity
	return m.Snapshot()
}

// Decrement is SetQuantity(index, quantity-1).
func (m *CartModel) Decrement(index int) entity.Cart {
	if !m.valid(index) {
		return m.Snapshot()
	}
	return m.SetQuantity(index, m.cart.Items[index].Quantity-1)
}

func (m *CartModel) RemoveLine(index int) entity.Cart {
	if !m.valid(index) {
		return m.Snapshot()
	}
	m.cart.Items = append(m.cart.Items[:index], m.cart.Items[index+1:]...)
	return m.Snapshot()
}

func (m *CartModel) SetNote(index int, text string) entity.Cart {
	if m.valid(index) {
		m.cart.Items[index].Notes = text
	}
	return m.Snapshot()
}

func (m *CartModel) SelectTable(number string) entity.Cart {
	m.cart.TableNumber = strings.TrimSpace(number)
	return m.Snapshot()
}

func (m *CartModel) SelectPaymentMethod(kind string) entity.Cart {
	m.cart.PaymentMethodType = strings.TrimSpace(kind)
	return m.Snapshot()
}

func (m *CartModel) Reset() entity.Cart {
	m.cart = entity.Cart{Items: []entity.LineItem{}}
	return m.Snapshot()
}

func (m *CartModel) valid(index int) bool {
	return index >= 0 && index < len(m.cart.Items)
}

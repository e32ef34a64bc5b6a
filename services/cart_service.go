package services

import (
	"strings"
	"sync"

	"github.com/ADat1304/Project-cafe/entity"
)

// CartNotifier receives a fresh view after every cart change.
type CartNotifier interface {
	PublishCart(sessionID string, view CartView)
}

type sessionCart struct {
	model      *CartModel
	submitting bool
}

// CartService keeps one working cart per admin session. HTTP handlers for
// the same session may run concurrently, so every access goes through mu;
// mutations are applied in arrival order.
type CartService struct {
	catalog  *CatalogService
	notifier CartNotifier

	mu    sync.Mutex
	carts map[string]*sessionCart
}

func NewCartService(catalog *CatalogService, notifier CartNotifier) *CartService {
	return &CartService{catalog: catalog, notifier: notifier, carts: map[string]*sessionCart{}}
}

// cart returns the session's cart, creating an empty one. Callers hold s.mu.
func (s *CartService) cart(sessionID string) *sessionCart {
	sc, ok := s.carts[sessionID]
	if !ok {
		sc = &sessionCart{model: NewCartModel()}
		s.carts[sessionID] = sc
	}
	return sc
}

func (s *CartService) view(sc *sessionCart) CartView {
	v := BuildCartView(sc.model.Snapshot(), s.catalog)
	v.Submitting = sc.submitting
	return v
}

// mutate applies fn under the lock, then publishes and returns the new view.
func (s *CartService) mutate(sessionID string, fn func(m *CartModel) error) (CartView, error) {
	s.mu.Lock()
	sc := s.cart(sessionID)
	if sc.submitting {
		v := s.view(sc)
		s.mu.Unlock()
		return v, ErrSubmissionInFlight
	}
	err := fn(sc.model)
	v := s.view(sc)
	s.mu.Unlock()

	if err == nil && s.notifier != nil {
		s.notifier.PublishCart(sessionID, v)
	}
	return v, err
}

func (s *CartService) View(sessionID string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(s.cart(sessionID))
}

// AddProduct adds one unit of a catalog product to the cart.
func (s *CartService) AddProduct(sessionID, productID string) (CartView, error) {
	p, ok := s.catalog.LookupProduct(productID)
	if !ok {
		return s.View(sessionID), invalid(InvalidField, "productId", "product is not in the current menu")
	}
	return s.mutate(sessionID, func(m *CartModel) error {
		m.AddOrIncrement(p)
		return nil
	})
}

func (s *CartService) SetQuantity(sessionID string, index, quantity int) (CartView, error) {
	return s.mutate(sessionID, func(m *CartModel) error {
		m.SetQuantity(index, quantity)
		return nil
	})
}

func (s *CartService) Increment(sessionID string, index int) (CartView, error) {
	return s.mutate(sessionID, func(m *CartModel) error {
		c := m.Snapshot()
		if index >= 0 && index < len(c.Items) {
			m.SetQuantity(index, c.Items[index].Quantity+1)
		}
		return nil
	})
}

func (s *CartService) Decrement(sessionID string, index int) (CartView, error) {
	return s.mutate(sessionID, func(m *CartModel) error {
		m.Decrement(index)
		return nil
	})
}

func (s *CartService) RemoveLine(sessionID string, index int) (CartView, error) {
	return s.mutate(sessionID, func(m *CartModel) error {
		m.RemoveLine(index)
		return nil
	})
}

func (s *CartService) SetNote(sessionID string, index int, text string) (CartView, error) {
	return s.mutate(sessionID, func(m *CartModel) error {
		m.SetNote(index, text)
		return nil
	})
}

// SelectTable accepts any table number while the table list is not loaded;
// once it is, the number must exist.
func (s *CartService) SelectTable(sessionID, number string) (CartView, error) {
	number = strings.TrimSpace(number)
	if number != "" && len(s.catalog.Tables()) > 0 {
		if _, ok := s.catalog.LookupTable(number); !ok {
			return s.View(sessionID), invalid(InvalidField, "tableNumber", "table "+number+" does not exist")
		}
	}
	return s.mutate(sessionID, func(m *CartModel) error {
		m.SelectTable(number)
		return nil
	})
}

func (s *CartService) SelectPaymentMethod(sessionID, kind string) (CartView, error) {
	kind = strings.TrimSpace(kind)
	if kind != "" && len(s.catalog.PaymentMethods()) > 0 && !s.catalog.HasPaymentMethod(kind) {
		return s.View(sessionID), invalid(InvalidField, "paymentMethodType", "unknown payment method "+kind)
	}
	return s.mutate(sessionID, func(m *CartModel) error {
		m.SelectPaymentMethod(kind)
		return nil
	})
}

func (s *CartService) Reset(sessionID string) (CartView, error) {
	return s.mutate(sessionID, func(m *CartModel) error {
		m.Reset()
		return nil
	})
}

// Drop forgets the session's cart (logout).
func (s *CartService) Drop(sessionID string) {
	s.mu.Lock()
	delete(s.carts, sessionID)
	s.mu.Unlock()
}

// beginSubmit validates the cart and marks it as submitting in one critical
// section, so a second submit for the same session fails fast.
func (s *CartService) beginSubmit(sessionID string) (entity.Cart, error) {
	s.mu.Lock()
	sc := s.cart(sessionID)
	if sc.submitting {
		s.mu.Unlock()
		return entity.Cart{}, ErrSubmissionInFlight
	}
	snap := sc.model.Snapshot()
	if err := Validate(snap); err != nil {
		s.mu.Unlock()
		return entity.Cart{}, err
	}
	sc.submitting = true
	v := s.view(sc)
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.PublishCart(sessionID, v)
	}
	return snap, nil
}

// endSubmit clears the submitting flag and, on success, resets the cart.
func (s *CartService) endSubmit(sessionID string, ok bool) CartView {
	s.mu.Lock()
	sc := s.cart(sessionID)
	sc.submitting = false
	if ok {
		sc.model.Reset()
	}
	v := s.view(sc)
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.PublishCart(sessionID, v)
	}
	return v
}

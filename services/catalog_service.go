package services

import (
	"context"
	"sync"

	"github.com/ADat1304/Project-cafe/entity"
)

// CatalogSource is the part of the gateway the catalog reads from.
type CatalogSource interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	ListTables(ctx context.Context) ([]entity.Table, error)
	ListPaymentMethods(ctx context.Context) ([]entity.PaymentMethod, error)
}

type CatalogResource string

const (
	ResourceProducts       CatalogResource = "products"
	ResourceTables         CatalogResource = "tables"
	ResourcePaymentMethods CatalogResource = "payment-methods"
)

// resourceSeq tracks the stamps of one resource's refreshes. A response is
// applied only if its stamp is newer than the last applied one.
type resourceSeq struct {
	issued   uint64
	applied  uint64
	inFlight int
}

// CatalogService is a read-mostly snapshot of products, tables and payment
// methods. Each resource is replaced wholesale by its own refresh and the
// three refreshes never wait on each other.
type CatalogService struct {
	src CatalogSource

	mu             sync.RWMutex
	products       []entity.Product
	byID           map[string]int
	byName         map[string]int
	tables         []entity.Table
	tableByNumber  map[string]int
	paymentMethods []entity.PaymentMethod
	seq            map[CatalogResource]*resourceSeq
}

func NewCatalogService(src CatalogSource) *CatalogService {
	return &CatalogService{
		src:           src,
		byID:          map[string]int{},
		byName:        map[string]int{},
		tableByNumber: map[string]int{},
		seq: map[CatalogResource]*resourceSeq{
			ResourceProducts:       {},
			ResourceTables:         {},
			ResourcePaymentMethods: {},
		},
	}
}

func (s *CatalogService) begin(r CatalogResource) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.seq[r]
	st.issued++
	st.inFlight++
	return st.issued
}

// finish releases the in-flight slot and reports whether the response
// stamped with stamp may be applied. Callers hold s.mu.
func (s *CatalogService) finish(r CatalogResource, stamp uint64, ok bool) bool {
	st := s.seq[r]
	st.inFlight--
	if !ok || stamp <= st.applied {
		return false
	}
	st.applied = stamp
	return true
}

// Loading reports whether a refresh of r is in flight.
func (s *CatalogService) Loading(r CatalogResource) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq[r].inFlight > 0
}

func (s *CatalogService) RefreshProducts(ctx context.Context) ([]entity.Product, error) {
	stamp := s.begin(ResourceProducts)
	rows, err := s.src.ListProducts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finish(ResourceProducts, stamp, err == nil) {
		s.products = append([]entity.Product(nil), rows...)
		s.byID = make(map[string]int, len(rows))
		s.byName = make(map[string]int, len(rows))
		for i, p := range s.products {
			if p.ID != "" {
				s.byID[p.ID] = i
			}
			// first entry wins on duplicate names
			if _, dup := s.byName[p.Name]; !dup {
				s.byName[p.Name] = i
			}
		}
	}
	if err != nil {
		return nil, &CatalogFetchError{Resource: string(ResourceProducts), Err: err}
	}
	return append([]entity.Product(nil), s.products...), nil
}

func (s *CatalogService) RefreshTables(ctx context.Context) ([]entity.Table, error) {
	stamp := s.begin(ResourceTables)
	rows, err := s.src.ListTables(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finish(ResourceTables, stamp, err == nil) {
		s.tables = append([]entity.Table(nil), rows...)
		s.tableByNumber = make(map[string]int, len(rows))
		for i, t := range s.tables {
			s.tableByNumber[t.Number] = i
		}
	}
	if err != nil {
		return nil, &CatalogFetchError{Resource: string(ResourceTables), Err: err}
	}
	return append([]entity.Table(nil), s.tables...), nil
}

func (s *CatalogService) RefreshPaymentMethods(ctx context.Context) ([]entity.PaymentMethod, error) {
	stamp := s.begin(ResourcePaymentMethods)
	rows, err := s.src.ListPaymentMethods(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finish(ResourcePaymentMethods, stamp, err == nil) {
		s.paymentMethods = append([]entity.PaymentMethod(nil), rows...)
	}
	if err != nil {
		return nil, &CatalogFetchError{Resource: string(ResourcePaymentMethods), Err: err}
	}
	return append([]entity.PaymentMethod(nil), s.paymentMethods...), nil
}

// RefreshAll issues the three refreshes concurrently. Each one succeeds or
// fails on its own; the returned map holds only the failures.
func (s *CatalogService) RefreshAll(ctx context.Context) map[CatalogResource]error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs = map[CatalogResource]error{}
	)
	run := func(r CatalogResource, fn func(context.Context) error) {
		defer wg.Done()
		if err := fn(ctx); err != nil {
			mu.Lock()
			errs[r] = err
			mu.Unlock()
		}
	}
	wg.Add(3)
	go run(ResourceProducts, func(ctx context.Context) error { _, err := s.RefreshProducts(ctx); return err })
	go run(ResourceTables, func(ctx context.Context) error { _, err := s.RefreshTables(ctx); return err })
	go run(ResourcePaymentMethods, func(ctx context.Context) error { _, err := s.RefreshPaymentMethods(ctx); return err })
	wg.Wait()
	return errs
}

func (s *CatalogService) Products() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Product(nil), s.products...)
}

func (s *CatalogService) Tables() []entity.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Table(nil), s.tables...)
}

func (s *CatalogService) PaymentMethods() []entity.PaymentMethod {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.PaymentMethod(nil), s.paymentMethods...)
}

// LookupPriceByName matches the product name exactly, case-sensitive.
func (s *CatalogService) LookupPriceByName(name string) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byName[name]
	if !ok {
		return 0, false
	}
	return s.products[i].Price, true
}

func (s *CatalogService) LookupPriceByID(id string) (int64, bool) {
	p, ok := s.LookupProduct(id)
	if !ok {
		return 0, false
	}
	return p.Price, true
}

func (s *CatalogService) LookupProduct(id string) (entity.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return entity.Product{}, false
	}
	return s.products[i], true
}

func (s *CatalogService) LookupTable(number string) (entity.Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.tableByNumber[number]
	if !ok {
		return entity.Table{}, false
	}
	return s.tables[i], true
}

func (s *CatalogService) HasPaymentMethod(kind string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, pm := range s.paymentMethods {
		if pm.Type == kind {
			return true
		}
	}
	return false
}

package services

import (
	"context"
	"log"
	"strings"

	"github.com/ADat1304/Project-cafe/entity"
	"github.com/ADat1304/Project-cafe/gateway"
)

type ProductGateway interface {
	ListProductsByCategory(ctx context.Context, category string) ([]entity.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	CreateProduct(ctx context.Context, req gateway.ProductRequest) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id string, req gateway.ProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	AdjustInventory(ctx context.Context, id string, delta int) (*entity.Product, error)
}

type ProductIn struct {
	ProductName  string   `json:"productName"`
	Price        int64    `json:"price"`
	Amount       int      `json:"amount"`
	CategoryName string   `json:"categoryName"`
	Images       []string `json:"images"`
}

// ProductService manages the menu. Every successful write refreshes the
// catalog so the sales screen prices from the new data.
type ProductService struct {
	gw      ProductGateway
	catalog *CatalogService
}

func NewProductService(gw ProductGateway, catalog *CatalogService) *ProductService {
	return &ProductService{gw: gw, catalog: catalog}
}

// List refreshes the catalog and returns products, optionally narrowed to
// one category and a case-insensitive name search.
func (s *ProductService) List(ctx context.Context, category, search string) ([]entity.Product, error) {
	var (
		rows []entity.Product
		err  error
	)
	category = strings.TrimSpace(category)
	if category != "" {
		rows, err = s.gw.ListProductsByCategory(ctx, category)
	} else {
		rows, err = s.catalog.RefreshProducts(ctx)
	}
	if err != nil {
		return nil, err
	}
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return rows, nil
	}
	out := rows[:0:0]
	for _, p := range rows {
		if strings.Contains(strings.ToLower(p.Name), search) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.gw.ListCategories(ctx)
}

func validateProduct(in *ProductIn) (gateway.ProductRequest, error) {
	name := strings.TrimSpace(in.ProductName)
	if name == "" {
		return gateway.ProductRequest{}, invalid(InvalidField, "productName", "product name is required")
	}
	if in.Price < 0 {
		return gateway.ProductRequest{}, invalid(InvalidField, "price", "price must not be negative")
	}
	if in.Amount < 0 {
		return gateway.ProductRequest{}, invalid(InvalidField, "amount", "stock amount must not be negative")
	}
	images := make([]string, 0, len(in.Images))
	for _, img := range in.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	return gateway.ProductRequest{
		ProductName:  name,
		Price:        in.Price,
		Amount:       in.Amount,
		CategoryName: strings.TrimSpace(in.CategoryName),
		Images:       images,
	}, nil
}

func (s *ProductService) Create(ctx context.Context, in *ProductIn) (*entity.Product, error) {
	req, err := validateProduct(in)
	if err != nil {
		return nil, err
	}
	p, err := s.gw.CreateProduct(ctx, req)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx)
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in *ProductIn) (*entity.Product, error) {
	req, err := validateProduct(in)
	if err != nil {
		return nil, err
	}
	p, err := s.gw.UpdateProduct(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx)
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.gw.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.refresh(ctx)
	return nil
}

func (s *ProductService) AdjustInventory(ctx context.Context, id string, delta int) (*entity.Product, error) {
	if delta == 0 {
		return nil, invalid(InvalidField, "quantity", "quantity must not be zero")
	}
	p, err := s.gw.AdjustInventory(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	s.refresh(ctx)
	return p, nil
}

func (s *ProductService) refresh(ctx context.Context) {
	if _, err := s.catalog.RefreshProducts(ctx); err != nil {
		log.Printf("refresh products: %v", err)
	}
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dnlfranklin/gostore/internal/core/domain"
	"github.com/dnlfranklin/gostore/internal/port"
)

var ErrProductNameTaken = errors.New("product name already used")

type ProductService struct {
	products port.ProductRepository
}

func NewProductService(products port.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) CreateProduct(ctx context.Context, name string, price decimal.Decimal, quantity int) (*domain.Product, error) {
	existing, err := s.products.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find product by name: %w", err)
	}
	if existing != nil {
		return nil, ErrProductNameTaken
	}

	product, err := s.products.Create(ctx, domain.Product{
		Name:     name,
		Price:    price,
		Quantity: quantity,
	})
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	return product, nil
}

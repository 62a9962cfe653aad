package port

import (
	"context"

	"github.com/dnlfranklin/gostore/internal/core/domain"
)

type ProductRepository interface {
	// FindByName retrieves a product by name, (nil, nil) when absent
	FindByName(ctx context.Context, name string) (*domain.Product, error)

	// FindAllByID retrieves the products matching the given IDs in one batch;
	// IDs without a match are simply absent from the result
	FindAllByID(ctx context.Context, ids []string) ([]domain.Product, error)

	// Create persists a new product and returns it with generated fields
	Create(ctx context.Context, product domain.Product) (*domain.Product, error)

	// UpdateQuantity sets the absolute stock quantity for each listed product
	UpdateQuantity(ctx context.Context, adjustments []domain.StockAdjustment) error
}

package port

import (
	"context"

	"github.com/dnlfranklin/gostore/internal/core/domain"
)

type OrderRepository interface {
	// Create persists the order and its items as a unit and returns the
	// stored order with generated ID and timestamps
	Create(ctx context.Context, order domain.Order) (*domain.Order, error)

	// FindByID retrieves an order with its items, (nil, nil) when absent
	FindByID(ctx context.Context, id string) (*domain.Order, error)
}

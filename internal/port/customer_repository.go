package port

import (
	"context"

	"github.com/dnlfranklin/gostore/internal/core/domain"
)

type CustomerRepository interface {
	// FindByID retrieves a customer by ID, (nil, nil) when absent
	FindByID(ctx context.Context, id string) (*domain.Customer, error)

	// FindByEmail retrieves a customer by email, (nil, nil) when absent
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)

	// Create persists a new customer and returns it with generated fields
	Create(ctx context.Context, customer domain.Customer) (*domain.Customer, error)
}

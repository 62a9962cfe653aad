package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dnlfranklin/gostore/internal/core/domain"
	"github.com/dnlfranklin/gostore/internal/port"
)

var ErrEmailInUse = errors.New("email address already used")

type CustomerService struct {
	customers port.CustomerRepository
}

func NewCustomerService(customers port.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, name, email string) (*domain.Customer, error) {
	existing, err := s.customers.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find customer by email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailInUse
	}

	customer, err := s.customers.Create(ctx, domain.Customer{
		Name:  name,
		Email: email,
	})
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	return customer, nil
}

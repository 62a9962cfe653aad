package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dnlfranklin/gostore/internal/core/domain"
	"github.com/dnlfranklin/gostore/internal/port"
)

var (
	ErrCustomerNotFound = errors.New("customer does not exist")
	ErrOrderNotFound    = errors.New("order does not exist")
)

// ProductNotFoundError reports a requested product absent from the catalog.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s does not exist", e.ProductID)
}

// InsufficientStockError reports a requested quantity above current stock.
type InsufficientStockError struct {
	ProductID string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("product %s does not have sufficient stock", e.ProductID)
}

type OrderService struct {
	customers port.CustomerRepository
	products  port.ProductRepository
	orders    port.OrderRepository
}

func NewOrderService(customers port.CustomerRepository, products port.ProductRepository, orders port.OrderRepository) *OrderService {
	return &OrderService{
		customers: customers,
		products:  products,
		orders:    orders,
	}
}

// CreateOrder validates the customer and every requested item against a single
// catalog snapshot fetched up front, persists the order, then applies the
// computed stock quantities in one batch. It fails on the first gate that does
// not hold; no write happens before all gates pass. There is no compensation
// if the stock update fails after the order write succeeded, and concurrent
// calls for the same product are not coordinated.
func (s *OrderService) CreateOrder(ctx context.Context, customerID string, items []domain.OrderItemRequest) (*domain.Order, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}

	snapshot, err := s.products.FindAllByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}

	byID := make(map[string]domain.Product, len(snapshot))
	for _, p := range snapshot {
		byID[p.ID] = p
	}

	orderItems := make([]domain.OrderItem, 0, len(items))
	adjustments := make([]domain.StockAdjustment, 0, len(items))

	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, &ProductNotFoundError{ProductID: item.ProductID}
		}
		if product.Quantity < item.Quantity {
			return nil, &InsufficientStockError{ProductID: item.ProductID}
		}

		// Duplicate product ids each validate against the same snapshot;
		// when applied, a later adjustment for the same product overwrites
		// an earlier one.
		adjustments = append(adjustments, domain.StockAdjustment{
			ProductID: item.ProductID,
			Quantity:  product.Quantity - item.Quantity,
		})
		orderItems = append(orderItems, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
	}

	order, err := s.orders.Create(ctx, domain.Order{
		Customer: *customer,
		Items:    orderItems,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.products.UpdateQuantity(ctx, adjustments); err != nil {
		return nil, fmt.Errorf("update stock: %w", err)
	}

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

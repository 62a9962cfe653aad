package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest is one requested (product, quantity) pair in a create-order
// call, before any catalog validation.
type OrderItemRequest struct {
	ProductID string
	Quantity  int
}

// OrderItem is a persisted order line. Price is the catalog price at order
// time and is never recomputed afterwards.
type OrderItem struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

type Order struct {
	ID        string
	Customer  Customer
	Items     []OrderItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

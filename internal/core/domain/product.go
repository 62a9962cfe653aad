package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StockAdjustment carries the new absolute quantity for a product after an
// order consumed part of its stock. It is not a delta.
type StockAdjustment struct {
	ProductID string
	Quantity  int
}

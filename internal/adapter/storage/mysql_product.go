package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dnlfranklin/gostore/internal/core/domain"
)

type MySQLProductStore struct {
	db *sql.DB
}

func NewMySQLProductStore(db *sql.DB) *MySQLProductStore {
	return &MySQLProductStore{db: db}
}

func (m *MySQLProductStore) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	var p domain.Product
	err := m.db.QueryRowContext(ctx, `
		SELECT id, name, price, quantity, created_at, updated_at
		FROM products WHERE name = ?`, name,
	).Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}

	return &p, nil
}

func (m *MySQLProductStore) FindAllByID(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, price, quantity, created_at, updated_at
		FROM products WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

func (m *MySQLProductStore) Create(ctx context.Context, product domain.Product) (*domain.Product, error) {
	product.ID = uuid.NewString()
	now := time.Now().UTC().Truncate(time.Second)
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := m.db.ExecContext(ctx, `
		INSERT INTO products (id, name, price, quantity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		product.ID, product.Name, product.Price, product.Quantity,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	return &product, nil
}

func (m *MySQLProductStore) UpdateQuantity(ctx context.Context, adjustments []domain.StockAdjustment) error {
	if len(adjustments) == 0 {
		return nil
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, adj := range adjustments {
		_, err := tx.ExecContext(ctx, `
			UPDATE products SET quantity = ?, updated_at = NOW()
			WHERE id = ?`,
			adj.Quantity, adj.ProductID,
		)
		if err != nil {
			return fmt.Errorf("update quantity for %s: %w", adj.ProductID, err)
		}
	}

	return tx.Commit()
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dnlfranklin/gostore/internal/core/domain"
)

type MySQLCustomerStore struct {
	db *sql.DB
}

func NewMySQLCustomerStore(db *sql.DB) *MySQLCustomerStore {
	return &MySQLCustomerStore{db: db}
}

func (m *MySQLCustomerStore) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	return m.findOne(ctx, `
		SELECT id, name, email, created_at, updated_at
		FROM customers WHERE id = ?`, id)
}

func (m *MySQLCustomerStore) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return m.findOne(ctx, `
		SELECT id, name, email, created_at, updated_at
		FROM customers WHERE email = ?`, email)
}

func (m *MySQLCustomerStore) findOne(ctx context.Context, query string, arg any) (*domain.Customer, error) {
	var c domain.Customer
	err := m.db.QueryRowContext(ctx, query, arg).
		Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt, &c.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query customer: %w", err)
	}

	return &c, nil
}

func (m *MySQLCustomerStore) Create(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	customer.ID = uuid.NewString()
	now := time.Now().UTC().Truncate(time.Second)
	customer.CreatedAt = now
	customer.UpdatedAt = now

	_, err := m.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, email, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		customer.ID, customer.Name, customer.Email, customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert customer: %w", err)
	}

	return &customer, nil
}

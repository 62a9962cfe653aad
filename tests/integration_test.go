package tests

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/dnlfranklin/gostore/internal/adapter/storage"
	"github.com/dnlfranklin/gostore/internal/core/domain"
	"github.com/dnlfranklin/gostore/internal/core/service"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id CHAR(36) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id CHAR(36) PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		price DECIMAL(10,2) NOT NULL,
		quantity INT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id CHAR(36) PRIMARY KEY,
		customer_id CHAR(36) NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS order_products (
		id CHAR(36) PRIMARY KEY,
		order_id CHAR(36) NOT NULL,
		product_id CHAR(36) NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		quantity INT NOT NULL
	)`,
}

type testEnv struct {
	mysql     *sql.DB
	redis     *redis.Client
	orders    *service.OrderService
	customers *service.CustomerService
	products  *service.ProductService
	cleanup   func()
}

func setupTestEnv(t *testing.T) *testEnv {
	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		mysqlDSN = "root:root@tcp(localhost:3306)/gostore?parseTime=true"
	}
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("schema setup failed: %v", err)
		}
	}

	customerStore := storage.NewMySQLCustomerStore(db)
	customers := storage.NewCustomerCache(rdb, customerStore)
	products := storage.NewMySQLProductStore(db)
	orders := storage.NewMySQLOrderStore(db)

	return &testEnv{
		mysql:     db,
		redis:     rdb,
		orders:    service.NewOrderService(customers, products, orders),
		customers: service.NewCustomerService(customers),
		products:  service.NewProductService(products),
		cleanup: func() {
			rdb.Close()
			db.Close()
		},
	}
}

func unique(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func TestPlaceOrder_EndToEnd(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	ctx := context.Background()

	name := unique("e2e-customer")
	customer, err := env.customers.CreateCustomer(ctx, name, name+"@example.com")
	if err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	defer env.mysql.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, customer.ID)
	defer env.redis.Del(ctx, "customer:"+customer.ID)

	product, err := env.products.CreateProduct(ctx, unique("e2e-product"), decimal.RequireFromString("10.00"), 5)
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	defer env.mysql.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, product.ID)

	order, err := env.orders.CreateOrder(ctx, customer.ID, []domain.OrderItemRequest{
		{ProductID: product.ID, Quantity: 3},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	defer env.mysql.ExecContext(ctx, `DELETE FROM order_products WHERE order_id = ?`, order.ID)
	defer env.mysql.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, order.ID)

	if len(order.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(order.Items))
	}
	if !order.Items[0].Price.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("expected captured price 10.00, got %s", order.Items[0].Price)
	}

	// Verify stock decremented in the database
	var quantity int
	env.mysql.QueryRowContext(ctx, `SELECT quantity FROM products WHERE id = ?`, product.ID).Scan(&quantity)
	if quantity != 2 {
		t.Errorf("expected stock 2, got %d", quantity)
	}

	// Verify the order reads back with its items
	found, err := env.orders.GetOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if found.Customer.ID != customer.ID {
		t.Errorf("expected customer %s, got %s", customer.ID, found.Customer.ID)
	}
	if len(found.Items) != 1 {
		t.Errorf("expected 1 item, got %d", len(found.Items))
	}
}

func TestPlaceOrder_InsufficientStock_EndToEnd(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	ctx := context.Background()

	name := unique("e2e-nostock-customer")
	customer, err := env.customers.CreateCustomer(ctx, name, name+"@example.com")
	if err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	defer env.mysql.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, customer.ID)
	defer env.redis.Del(ctx, "customer:"+customer.ID)

	product, err := env.products.CreateProduct(ctx, unique("e2e-nostock-product"), decimal.RequireFromString("10.00"), 5)
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	defer env.mysql.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, product.ID)

	_, err = env.orders.CreateOrder(ctx, customer.ID, []domain.OrderItemRequest{
		{ProductID: product.ID, Quantity: 6},
	})

	var noStock *service.InsufficientStockError
	if !errors.As(err, &noStock) {
		t.Fatalf("expected InsufficientStockError, got: %v", err)
	}
	if noStock.ProductID != product.ID {
		t.Errorf("expected offending product %s, got %s", product.ID, noStock.ProductID)
	}

	// Stock untouched
	var quantity int
	env.mysql.QueryRowContext(ctx, `SELECT quantity FROM products WHERE id = ?`, product.ID).Scan(&quantity)
	if quantity != 5 {
		t.Errorf("expected stock 5, got %d", quantity)
	}

	// No order rows written
	var count int
	env.mysql.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE customer_id = ?`, customer.ID).Scan(&count)
	if count != 0 {
		t.Errorf("expected no orders, got %d", count)
	}
}

func TestPlaceOrder_UnknownCustomer_EndToEnd(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	_, err := env.orders.CreateOrder(context.Background(), "nonexistent-customer", []domain.OrderItemRequest{
		{ProductID: "whatever", Quantity: 1},
	})
	if !errors.Is(err, service.ErrCustomerNotFound) {
		t.Errorf("expected ErrCustomerNotFound, got: %v", err)
	}
}

package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dnlfranklin/gostore/internal/core/domain"
	"github.com/dnlfranklin/gostore/internal/port"
)

const (
	customerKeyPrefix = "customer:"
	customerCacheTTL  = 10 * time.Minute
)

// CustomerCache is a read-through cache over a CustomerRepository. Cache
// failures never fail a lookup; the source of truth is always consulted on a
// miss or a cache error.
type CustomerCache struct {
	client *redis.Client
	source port.CustomerRepository
}

func NewCustomerCache(client *redis.Client, source port.CustomerRepository) *CustomerCache {
	return &CustomerCache{client: client, source: source}
}

func (c *CustomerCache) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	key := customerKeyPrefix + id

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var customer domain.Customer
		if err := json.Unmarshal(data, &customer); err == nil {
			return &customer, nil
		}
	}

	// miss, cache error, or corrupt entry: consult the source
	customer, err := c.source.FindByID(ctx, id)
	if err != nil || customer == nil {
		return customer, err
	}

	c.set(ctx, customer)
	return customer, nil
}

// FindByEmail is not cached; it only backs the uniqueness check on creation.
func (c *CustomerCache) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return c.source.FindByEmail(ctx, email)
}

func (c *CustomerCache) Create(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	created, err := c.source.Create(ctx, customer)
	if err != nil {
		return nil, err
	}

	c.set(ctx, created)
	return created, nil
}

func (c *CustomerCache) set(ctx context.Context, customer *domain.Customer) {
	data, err := json.Marshal(customer)
	if err != nil {
		return
	}
	c.client.Set(ctx, customerKeyPrefix+customer.ID, data, customerCacheTTL)
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/archerandash/storefront/internal/domain/sales"
	"github.com/redis/go-redis/v9"
)

// DefaultCartPrefix namespaces cart keys in Redis
const DefaultCartPrefix = "cart:"

// RedisCartStore keeps carts as JSON documents that expire after ttl of inactivity
type RedisCartStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisCartStore creates a cart store on an existing client
func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{
		client:    client,
		keyPrefix: DefaultCartPrefix,
		ttl:       ttl,
	}
}

// Load returns the cart with id, or an empty cart when none is stored
func (s *RedisCartStore) Load(ctx context.Context, id string) (*sales.Cart, error) {
	data, err := s.client.Get(ctx, s.keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return sales.NewCart(id), nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var cart sales.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	cart.ID = id
	if cart.Items == nil {
		cart.Items = []sales.CartItem{}
	}
	return &cart, nil
}

// Save stores the cart and restarts its expiry
func (s *RedisCartStore) Save(ctx context.Context, cart *sales.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.client.Set(ctx, s.keyPrefix+cart.ID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete removes the cart
func (s *RedisCartStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// Close is a no-op; the client belongs to the caller
func (s *RedisCartStore) Close() error {
	return nil
}

var _ sales.CartStore = (*RedisCartStore)(nil)

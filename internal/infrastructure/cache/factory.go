package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/archerandash/storefront/internal/domain/sales"
	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/archerandash/storefront/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// StoreFactory creates the Redis-backed stores, or in-memory ones when Redis
// is not configured or cannot be reached and fallback is allowed.
type StoreFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool

	connectOnce sync.Once
	client      *redis.Client
	connectErr  error
}

// StoreFactoryOption is a functional option for configuring the factory
type StoreFactoryOption func(*StoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to
// in-memory stores. Default is true.
func WithInMemoryFallback(allow bool) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewStoreFactory creates a new factory. Nothing connects until a store is requested.
func NewStoreFactory(cfg config.RedisConfig, opts ...StoreFactoryOption) *StoreFactory {
	f := &StoreFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// RedisClient returns the shared client, or nil when the in-memory stores
// are in use
func (f *StoreFactory) RedisClient() (*redis.Client, error) {
	f.connectOnce.Do(f.connect)
	return f.client, f.connectErr
}

func (f *StoreFactory) connect() {
	if f.redisConfig.Host == "" {
		f.logger.Info("Redis not configured, using in-memory stores")
		return
	}

	client, err := NewRedisClient(f.redisConfig)
	if err == nil {
		f.logger.Info("Connected to Redis", zap.String("addr", f.redisConfig.Addr()))
		f.client = client
		return
	}

	if !f.allowInMemoryFallback {
		f.connectErr = fmt.Errorf("redis required but unavailable: %w", err)
		return
	}
	f.logger.Warn("Redis unavailable, falling back to in-memory stores. "+
		"Carts and capture locks will not be shared between instances.",
		zap.Error(err),
	)
}

// CreateIdempotencyStore returns an idempotency store under keyPrefix
func (f *StoreFactory) CreateIdempotencyStore(keyPrefix string) (shared.IdempotencyStore, error) {
	client, err := f.RedisClient()
	if err != nil {
		return nil, err
	}
	if client == nil {
		return NewInMemoryIdempotencyStore(), nil
	}
	return NewRedisIdempotencyStore(client, keyPrefix), nil
}

// CartStore is a sales.CartStore that may hold background resources
type CartStore interface {
	sales.CartStore
	Close() error
}

// CreateCartStore returns a cart store whose carts expire after ttl
func (f *StoreFactory) CreateCartStore(ttl time.Duration) (CartStore, error) {
	client, err := f.RedisClient()
	if err != nil {
		return nil, err
	}
	if client == nil {
		return NewInMemoryCartStore(ttl), nil
	}
	return NewRedisCartStore(client, ttl), nil
}

// Close closes the shared Redis client, if any
func (f *StoreFactory) Close() error {
	if f.client == nil {
		return nil
	}
	return f.client.Close()
}

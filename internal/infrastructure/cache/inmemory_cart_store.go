package cache

import (
	"context"
	"sync"
	"time"

	"github.com/archerandash/storefront/internal/domain/sales"
)

type cartEntry struct {
	cart      sales.Cart
	expiresAt time.Time
}

// InMemoryCartStore keeps carts in process memory. Carts are copied on the
// way in and out so callers never share item slices with the store.
type InMemoryCartStore struct {
	mu        sync.RWMutex
	entries   map[string]cartEntry
	ttl       time.Duration
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryCartStore creates a cart store and starts its expiry sweeper
func NewInMemoryCartStore(ttl time.Duration) *InMemoryCartStore {
	s := &InMemoryCartStore{
		entries:  make(map[string]cartEntry),
		ttl:      ttl,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

// Load returns a copy of the cart with id, or an empty cart
func (s *InMemoryCartStore) Load(_ context.Context, id string) (*sales.Cart, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok || !s.now().Before(e.expiresAt) {
		return sales.NewCart(id), nil
	}
	return copyCart(&e.cart), nil
}

// Save stores a copy of the cart and restarts its expiry
func (s *InMemoryCartStore) Save(_ context.Context, cart *sales.Cart) error {
	s.mu.Lock()
	s.entries[cart.ID] = cartEntry{cart: *copyCart(cart), expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

// Delete removes the cart
func (s *InMemoryCartStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

// Close stops the sweeper. Safe to call more than once.
func (s *InMemoryCartStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemoryCartStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemoryCartStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}

// Size returns the number of stored carts
func (s *InMemoryCartStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func copyCart(c *sales.Cart) *sales.Cart {
	items := make([]sales.CartItem, len(c.Items))
	copy(items, c.Items)
	return &sales.Cart{ID: c.ID, Items: items, UpdatedAt: c.UpdatedAt}
}

var _ sales.CartStore = (*InMemoryCartStore)(nil)

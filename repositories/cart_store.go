package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"bayka/cart"

	"github.com/redis/go-redis/v9"
)

// CartStore keeps one cart per visitor session. Load returns an empty cart
// for unknown sessions.
type CartStore interface {
	Load(ctx context.Context, sessionID string) (*cart.Cart, error)
	Save(ctx context.Context, sessionID string, c *cart.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// NewCartStore picks Redis when a client is available.
func NewCartStore(client *redis.Client, ttl time.Duration) CartStore {
	if client == nil {
		return NewMemoryCartStore(ttl)
	}
	return NewRedisCartStore(client, ttl)
}

type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{client: client, ttl: ttl}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func (s *RedisCartStore) Load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var snap cart.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return cart.FromSnapshot(snap), nil
}

// Save writes the cart and refreshes its TTL.
func (s *RedisCartStore) Save(ctx context.Context, sessionID string, c *cart.Cart) error {
	data, err := json.Marshal(c.Snapshot())
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := s.client.Set(ctx, cartKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisCartStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

type memoryEntry struct {
	snap      cart.Snapshot
	expiresAt time.Time
}

const memorySweepInterval = time.Minute

// MemoryCartStore is the in-process fallback used when Redis is down.
// Expired carts are dropped on load and by a sweep that runs from Save at
// most once per memorySweepInterval.
type MemoryCartStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	carts     map[string]memoryEntry
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryCartStore(ttl time.Duration) *MemoryCartStore {
	return &MemoryCartStore{ttl: ttl, carts: map[string]memoryEntry{}, now: time.Now}
}

func (s *MemoryCartStore) Load(_ context.Context, sessionID string) (*cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.carts[sessionID]
	if !ok {
		return cart.New(), nil
	}
	if s.now().After(e.expiresAt) {
		delete(s.carts, sessionID)
		return cart.New(), nil
	}
	return cart.FromSnapshot(e.snap), nil
}

func (s *MemoryCartStore) Save(_ context.Context, sessionID string, c *cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= memorySweepInterval {
		s.sweep(now)
	}
	s.carts[sessionID] = memoryEntry{snap: c.Snapshot(), expiresAt: now.Add(s.ttl)}
	return nil
}

// sweep must be called with mu held.
func (s *MemoryCartStore) sweep(now time.Time) {
	for id, e := range s.carts {
		if now.After(e.expiresAt) {
			delete(s.carts, id)
		}
	}
	s.lastSweep = now
}

func (s *MemoryCartStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
	return nil
}

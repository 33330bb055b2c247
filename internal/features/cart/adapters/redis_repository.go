package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"toystore-api/internal/core/cache"
	"toystore-api/internal/core/logger"
	"toystore-api/internal/features/cart/domain"

	"go.uber.org/zap"
)

const cartKeyPrefix = "cart:"

// RedisCartRepository implements ports.CartRepository over the cache port.
// Each session's cart is one JSON snapshot under cart:<session_id>.
type RedisCartRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisCartRepository creates a new RedisCartRepository. Snapshots
// expire after ttl of session inactivity; 0 means no expiration.
func NewRedisCartRepository(c cache.Cache, ttl time.Duration) *RedisCartRepository {
	return &RedisCartRepository{
		cache: c,
		ttl:   ttl,
	}
}

// Load retrieves the session's cart snapshot. A missing or unreadable
// snapshot yields an empty cart, never an error: a shopper must not be
// locked out of the store because their stored state went bad.
func (r *RedisCartRepository) Load(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := r.cache.Get(ctx, cartKeyPrefix+sessionID)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return domain.NewCart(), nil
		}
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		logger.WithSession(sessionID).Warn("Discarding corrupt cart snapshot", zap.Error(err))
		return domain.NewCart(), nil
	}

	return &cart, nil
}

// Save overwrites the session's snapshot wholesale and refreshes its TTL.
func (r *RedisCartRepository) Save(ctx context.Context, sessionID string, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := r.cache.Set(ctx, cartKeyPrefix+sessionID, data, r.ttl); err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}

	return nil
}

// Delete removes the session's snapshot.
func (r *RedisCartRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.cache.Delete(ctx, cartKeyPrefix+sessionID); err != nil {
		return fmt.Errorf("failed to delete cart snapshot: %w", err)
	}
	return nil
}

package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"toystore-api/internal/core/cache"
	"toystore-api/internal/core/logger"
	"toystore-api/internal/features/auth/domain"

	"go.uber.org/zap"
)

const credentialKeyPrefix = "auth:"

// RedisCredentialRepository implements ports.CredentialRepository over
// the cache port. Each session's credential is one JSON snapshot under
// auth:<session_id>.
type RedisCredentialRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisCredentialRepository creates a new RedisCredentialRepository.
func NewRedisCredentialRepository(c cache.Cache, ttl time.Duration) *RedisCredentialRepository {
	return &RedisCredentialRepository{
		cache: c,
		ttl:   ttl,
	}
}

// Load retrieves the session's credential. A missing or unreadable
// snapshot yields the anonymous credential, never an error.
func (r *RedisCredentialRepository) Load(ctx context.Context, sessionID string) (*domain.Credential, error) {
	data, err := r.cache.Get(ctx, credentialKeyPrefix+sessionID)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return domain.Anonymous(), nil
		}
		return nil, fmt.Errorf("failed to load credential: %w", err)
	}

	var cred domain.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		logger.WithSession(sessionID).Warn("Discarding corrupt credential snapshot", zap.Error(err))
		return domain.Anonymous(), nil
	}

	return &cred, nil
}

// Save overwrites the session's credential and refreshes its TTL.
func (r *RedisCredentialRepository) Save(ctx context.Context, sessionID string, cred *domain.Credential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("failed to marshal credential: %w", err)
	}

	if err := r.cache.Set(ctx, credentialKeyPrefix+sessionID, data, r.ttl); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}

	return nil
}

// Delete removes the session's credential.
func (r *RedisCredentialRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.cache.Delete(ctx, credentialKeyPrefix+sessionID); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return nil
}

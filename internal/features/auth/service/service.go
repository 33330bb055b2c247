package service

import (
	"context"
	"fmt"

	"toystore-api/internal/core/logger"
	"toystore-api/internal/features/auth/domain"
	"toystore-api/internal/features/auth/ports"
)

// AuthServiceImpl implements ports.AuthService. It also satisfies the
// checkout flow's CredentialSource port, so backend 401s observed there
// drop the session back to anonymous.
type AuthServiceImpl struct {
	repo     ports.CredentialRepository
	provider ports.TokenProvider
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(repo ports.CredentialRepository, provider ports.TokenProvider) *AuthServiceImpl {
	return &AuthServiceImpl{
		repo:     repo,
		provider: provider,
	}
}

// Login exchanges credentials for a token and stores the result under
// the session. A failed attempt leaves any existing credential alone.
func (s *AuthServiceImpl) Login(ctx context.Context, sessionID, email, password string) (*domain.Credential, error) {
	cred, err := s.provider.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, sessionID, cred); err != nil {
		return nil, fmt.Errorf("failed to store credential: %w", err)
	}

	logger.WithSession(sessionID).Info("Customer logged in")
	return cred, nil
}

// Logout clears the session's stored credential. Idempotent.
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	logger.WithSession(sessionID).Info("Customer logged out")
	return nil
}

// Current returns the session's credential, anonymous when none is stored.
func (s *AuthServiceImpl) Current(ctx context.Context, sessionID string) (*domain.Credential, error) {
	return s.repo.Load(ctx, sessionID)
}

// Token returns the session's bearer token for backend calls, empty
// when the session is anonymous.
func (s *AuthServiceImpl) Token(ctx context.Context, sessionID string) (string, error) {
	cred, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return cred.Token, nil
}

// Invalidate drops the session's credential after the backend rejected
// its token.
func (s *AuthServiceImpl) Invalidate(ctx context.Context, sessionID string) error {
	logger.WithSession(sessionID).Warn("Invalidating rejected credential")
	return s.repo.Delete(ctx, sessionID)
}

package ports

import (
	"context"

	"toystore-api/internal/features/auth/domain"
)

// AuthService defines the primary port for session authentication.
type AuthService interface {
	// Login exchanges credentials for a backend token and stores the
	// resulting credential under the session.
	Login(ctx context.Context, sessionID, email, password string) (*domain.Credential, error)
	// Logout clears the session's stored credential.
	Logout(ctx context.Context, sessionID string) error
	// Current returns the session's credential, anonymous when none is
	// stored.
	Current(ctx context.Context, sessionID string) (*domain.Credential, error)
}

// CredentialRepository defines the secondary port for credential storage.
type CredentialRepository interface {
	Load(ctx context.Context, sessionID string) (*domain.Credential, error)
	Save(ctx context.Context, sessionID string, cred *domain.Credential) error
	Delete(ctx context.Context, sessionID string) error
}

// TokenProvider exchanges login credentials for a backend token.
type TokenProvider interface {
	Login(ctx context.Context, email, password string) (*domain.Credential, error)
}

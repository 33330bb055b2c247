package ports

import (
	"context"

	"toystore-api/internal/features/cart/domain"
)

// CartService defines the primary port for cart operations. Every
// operation loads the session's snapshot, applies the mutation, and
// persists the whole new state back.
type CartService interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	AddItem(ctx context.Context, sessionID string, item domain.Item) (*domain.Cart, error)
	UpdateItem(ctx context.Context, sessionID, itemID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, sessionID, itemID string) (*domain.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

// CartRepository defines the secondary port for cart snapshot storage.
type CartRepository interface {
	// Load returns the session's cart, or an empty cart when no snapshot
	// exists or the stored snapshot cannot be parsed.
	Load(ctx context.Context, sessionID string) (*domain.Cart, error)
	// Save overwrites the session's snapshot wholesale.
	Save(ctx context.Context, sessionID string, cart *domain.Cart) error
	// Delete removes the session's snapshot.
	Delete(ctx context.Context, sessionID string) error
}

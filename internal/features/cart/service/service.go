package service

import (
	"context"
	"fmt"

	"toystore-api/internal/features/cart/domain"
	"toystore-api/internal/features/cart/ports"
)

// CartServiceImpl implements ports.CartService. Every mutation is a
// whole-state read-modify-write on the session's snapshot: the new state
// replaces the old one entirely, so storage never holds a partially
// updated cart.
type CartServiceImpl struct {
	repo ports.CartRepository
}

// NewCartService creates a new CartServiceImpl.
func NewCartService(repo ports.CartRepository) *CartServiceImpl {
	return &CartServiceImpl{
		repo: repo,
	}
}

// Get returns the session's current cart.
func (s *CartServiceImpl) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load cart: %w", err)
	}
	return cart, nil
}

// AddItem merges the item into the session's cart.
func (s *CartServiceImpl) AddItem(ctx context.Context, sessionID string, item domain.Item) (*domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(cart *domain.Cart) {
		cart.AddItem(item)
	})
}

// UpdateItem sets a line's quantity; zero or negative removes the line.
func (s *CartServiceImpl) UpdateItem(ctx context.Context, sessionID, itemID string, quantity int) (*domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(cart *domain.Cart) {
		cart.UpdateItem(itemID, quantity)
	})
}

// RemoveItem drops a line. Removing an absent id succeeds and changes nothing.
func (s *CartServiceImpl) RemoveItem(ctx context.Context, sessionID, itemID string) (*domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(cart *domain.Cart) {
		cart.RemoveItem(itemID)
	})
}

// Clear resets the session's cart to the empty state.
func (s *CartServiceImpl) Clear(ctx context.Context, sessionID string) error {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("service: failed to clear cart: %w", err)
	}
	return nil
}

// mutate runs the load-reduce-save cycle shared by all cart mutations.
func (s *CartServiceImpl) mutate(ctx context.Context, sessionID string, fn func(*domain.Cart)) (*domain.Cart, error) {
	cart, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load cart: %w", err)
	}

	fn(cart)

	if err := s.repo.Save(ctx, sessionID, cart); err != nil {
		return nil, fmt.Errorf("service: failed to save cart: %w", err)
	}

	return cart, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"toystore-api/internal/core/logger"
	authdomain "toystore-api/internal/features/auth/domain"
	cartdomain "toystore-api/internal/features/cart/domain"
	cartports "toystore-api/internal/features/cart/ports"
	"toystore-api/internal/features/checkout/domain"
	"toystore-api/internal/features/checkout/ports"

	validatorv10 "github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var (
	// ErrEmptyCart is returned when a checkout step requires a non-empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrIncompleteCheckout is returned when required checkout fields are missing.
	ErrIncompleteCheckout = errors.New("checkout is incomplete")
)

// CheckoutServiceImpl implements ports.CheckoutService. Field writes go
// through one load-merge-save cycle on the session's single checkout
// record; a writer only ever touches its own field, so concurrent
// requests cannot clobber each other's keys.
type CheckoutServiceImpl struct {
	repo     ports.CheckoutRepository
	carts    cartports.CartService
	verifier ports.VerificationProvider
	placer   ports.OrderPlacer
	creds    ports.CredentialSource
	validate *validatorv10.Validate
}

// NewCheckoutService creates a new CheckoutServiceImpl.
func NewCheckoutService(
	repo ports.CheckoutRepository,
	carts cartports.CartService,
	verifier ports.VerificationProvider,
	placer ports.OrderPlacer,
	creds ports.CredentialSource,
	validate *validatorv10.Validate,
) *CheckoutServiceImpl {
	return &CheckoutServiceImpl{
		repo:     repo,
		carts:    carts,
		verifier: verifier,
		placer:   placer,
		creds:    creds,
		validate: validate,
	}
}

// Get returns the session's checkout record.
func (s *CheckoutServiceImpl) Get(ctx context.Context, sessionID string) (*domain.Checkout, error) {
	checkout, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load checkout: %w", err)
	}
	return checkout, nil
}

// SetBillingAddress writes the billing address field.
func (s *CheckoutServiceImpl) SetBillingAddress(ctx context.Context, sessionID string, addr domain.Address) (*domain.Checkout, error) {
	addr.Type = domain.AddressBilling
	return s.mutate(ctx, sessionID, func(c *domain.Checkout) error {
		c.BillingAddress = &addr
		return nil
	})
}

// SetShippingAddress writes the shipping address field.
func (s *CheckoutServiceImpl) SetShippingAddress(ctx context.Context, sessionID string, addr domain.Address) (*domain.Checkout, error) {
	addr.Type = domain.AddressShipping
	return s.mutate(ctx, sessionID, func(c *domain.Checkout) error {
		c.ShippingAddress = &addr
		return nil
	})
}

// SetContact writes the customer contact and display name fields.
func (s *CheckoutServiceImpl) SetContact(ctx context.Context, sessionID, contact, name string) (*domain.Checkout, error) {
	return s.mutate(ctx, sessionID, func(c *domain.Checkout) error {
		c.CustomerContact = contact
		if name != "" {
			c.CustomerName = name
		}
		return nil
	})
}

// SetDeliveryTime writes the delivery time slot field.
func (s *CheckoutServiceImpl) SetDeliveryTime(ctx context.Context, sessionID, slot string) (*domain.Checkout, error) {
	return s.mutate(ctx, sessionID, func(c *domain.Checkout) error {
		c.DeliveryTime = slot
		return nil
	})
}

// SetPaymentGateway writes the payment gateway and optional sub-gateway.
func (s *CheckoutServiceImpl) SetPaymentGateway(ctx context.Context, sessionID string, gateway domain.PaymentGateway, subGateway string) (*domain.Checkout, error) {
	switch gateway {
	case domain.GatewayCashOnDelivery, domain.GatewayStripe, domain.GatewayPaypal:
	default:
		return nil, domain.ErrInvalidGateway
	}

	return s.mutate(ctx, sessionID, func(c *domain.Checkout) error {
		c.PaymentGateway = gateway
		c.PaymentSubGateway = subGateway
		return nil
	})
}

// ApplyCoupon writes the coupon field.
func (s *CheckoutServiceImpl) ApplyCoupon(ctx context.Context, sessionID string, coupon domain.Coupon) (*domain.Checkout, error) {
	if !coupon.Valid() {
		return nil, domain.ErrInvalidCouponType
	}

	return s.mutate(ctx, sessionID, func(c *domain.Checkout) error {
		c.Coupon = &coupon
		return nil
	})
}

// RemoveCoupon clears the coupon field.
func (s *CheckoutServiceImpl) RemoveCoupon(ctx context.Context, sessionID string) (*domain.Checkout, error) {
	return s.mutate(ctx, sessionID, func(c *domain.Checkout) error {
		c.Coupon = nil
		return nil
	})
}

// SetNote writes the order note field.
func (s *CheckoutServiceImpl) SetNote(ctx context.Context, sessionID, note string) (*domain.Checkout, error) {
	return s.mutate(ctx, sessionID, func(c *domain.Checkout) error {
		c.Note = note
		return nil
	})
}

// ToggleWallet flips the wallet preference and returns the new value.
func (s *CheckoutServiceImpl) ToggleWallet(ctx context.Context, sessionID string) (bool, error) {
	checkout, err := s.mutate(ctx, sessionID, func(c *domain.Checkout) error {
		c.ToggleWallet()
		return nil
	})
	if err != nil {
		return false, err
	}
	return checkout.UseWallet, nil
}

// Clear resets the checkout record to its defaults.
func (s *CheckoutServiceImpl) Clear(ctx context.Context, sessionID string) error {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("service: failed to clear checkout: %w", err)
	}
	return nil
}

// Verify fetches the backend-computed tax, shipping, availability and
// wallet data for the current cart and stores it on the checkout record.
func (s *CheckoutServiceImpl) Verify(ctx context.Context, sessionID string) (*domain.Checkout, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	checkout, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load checkout: %w", err)
	}

	token, err := s.creds.Token(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to read credentials: %w", err)
	}

	req := domain.VerifyRequest{
		Amount:          cart.Total,
		Products:        productLines(domain.CalculateOrder(cart.Items, checkout).AvailableItems),
		BillingAddress:  checkout.BillingAddress,
		ShippingAddress: checkout.ShippingAddress,
	}

	verified, err := s.verifier.Verify(ctx, token, req)
	if err != nil {
		if errors.Is(err, authdomain.ErrUnauthorized) {
			s.invalidate(ctx, sessionID)
		}
		return nil, fmt.Errorf("service: verification failed: %w", err)
	}

	checkout.Verified = verified
	checkout.PayableAmount = domain.CalculateOrder(cart.Items, checkout).FinalAmount

	if err := s.repo.Save(ctx, sessionID, checkout); err != nil {
		return nil, fmt.Errorf("service: failed to save checkout: %w", err)
	}

	return checkout, nil
}

// Summary derives the order breakdown for the session's cart and
// checkout record. Pure read; nothing is stored.
func (s *CheckoutServiceImpl) Summary(ctx context.Context, sessionID string) (*domain.Summary, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load cart: %w", err)
	}

	checkout, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load checkout: %w", err)
	}

	return domain.CalculateOrder(cart.Items, checkout), nil
}

// PlaceOrder checks the preconditions, submits the order to the backend
// and clears the session's cart and checkout on success. There is no
// automatic retry: a failure surfaces to the caller.
func (s *CheckoutServiceImpl) PlaceOrder(ctx context.Context, sessionID string) (*domain.OrderReceipt, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	checkout, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load checkout: %w", err)
	}

	if err := s.validate.Struct(checkout); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompleteCheckout, err)
	}

	summary := domain.CalculateOrder(cart.Items, checkout)

	order := domain.OrderPayload{
		Products:          productLines(summary.AvailableItems),
		Amount:            summary.BaseAmount,
		Discount:          summary.DiscountAmount,
		PaidTotal:         summary.FinalAmount,
		Total:             summary.TotalAmount,
		SalesTax:          summary.TaxAmount,
		DeliveryFee:       summary.ShippingAmount,
		DeliveryTime:      checkout.DeliveryTime,
		PaymentGateway:    checkout.PaymentGateway,
		PaymentSubGateway: checkout.PaymentSubGateway,
		UseWalletPoints:   checkout.UseWallet,
		BillingAddress:    checkout.BillingAddress,
		ShippingAddress:   checkout.ShippingAddress,
		CustomerContact:   checkout.CustomerContact,
		CustomerName:      checkout.CustomerName,
		Note:              checkout.Note,
	}
	if checkout.Coupon != nil {
		order.CouponID = checkout.Coupon.ID
	}

	token, err := s.creds.Token(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to read credentials: %w", err)
	}

	receipt, err := s.placer.PlaceOrder(ctx, token, order)
	if err != nil {
		if errors.Is(err, authdomain.ErrUnauthorized) {
			s.invalidate(ctx, sessionID)
		}
		return nil, fmt.Errorf("service: order placement failed: %w", err)
	}

	// The order is already accepted; a failed cleanup only leaves stale
	// session state behind, so log and move on.
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		logger.WithSession(sessionID).Warn("Failed to clear cart after order", zap.Error(err))
	}
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		logger.WithSession(sessionID).Warn("Failed to clear checkout after order", zap.Error(err))
	}

	return receipt, nil
}

func (s *CheckoutServiceImpl) invalidate(ctx context.Context, sessionID string) {
	if err := s.creds.Invalidate(ctx, sessionID); err != nil {
		logger.WithSession(sessionID).Warn("Failed to invalidate credentials", zap.Error(err))
	}
}

// mutate runs the load-merge-save cycle shared by all field writes.
func (s *CheckoutServiceImpl) mutate(ctx context.Context, sessionID string, fn func(*domain.Checkout) error) (*domain.Checkout, error) {
	checkout, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load checkout: %w", err)
	}

	if err := fn(checkout); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, sessionID, checkout); err != nil {
		return nil, fmt.Errorf("service: failed to save checkout: %w", err)
	}

	return checkout, nil
}

func productLines(items []cartdomain.Item) []domain.ProductLine {
	lines := make([]domain.ProductLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, domain.ProductLine{
			ProductID:     item.ID,
			OrderQuantity: item.Quantity,
			UnitPrice:     item.Price,
			Subtotal:      item.Subtotal(),
		})
	}
	return lines
}

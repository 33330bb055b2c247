package ports

import (
	"context"

	"toystore-api/internal/features/checkout/domain"
)

// CheckoutService defines the primary port for the checkout record and
// its derived order calculation.
type CheckoutService interface {
	Get(ctx context.Context, sessionID string) (*domain.Checkout, error)
	SetBillingAddress(ctx context.Context, sessionID string, addr domain.Address) (*domain.Checkout, error)
	SetShippingAddress(ctx context.Context, sessionID string, addr domain.Address) (*domain.Checkout, error)
	SetContact(ctx context.Context, sessionID, contact, name string) (*domain.Checkout, error)
	SetDeliveryTime(ctx context.Context, sessionID, slot string) (*domain.Checkout, error)
	SetPaymentGateway(ctx context.Context, sessionID string, gateway domain.PaymentGateway, subGateway string) (*domain.Checkout, error)
	ApplyCoupon(ctx context.Context, sessionID string, coupon domain.Coupon) (*domain.Checkout, error)
	RemoveCoupon(ctx context.Context, sessionID string) (*domain.Checkout, error)
	SetNote(ctx context.Context, sessionID, note string) (*domain.Checkout, error)
	ToggleWallet(ctx context.Context, sessionID string) (bool, error)
	Clear(ctx context.Context, sessionID string) error
	Verify(ctx context.Context, sessionID string) (*domain.Checkout, error)
	Summary(ctx context.Context, sessionID string) (*domain.Summary, error)
	PlaceOrder(ctx context.Context, sessionID string) (*domain.OrderReceipt, error)
}

// CheckoutRepository defines the secondary port for checkout snapshot
// storage. Implementations may split the record across slots with
// different durability, but Load/Save always deal in the whole record.
type CheckoutRepository interface {
	Load(ctx context.Context, sessionID string) (*domain.Checkout, error)
	Save(ctx context.Context, sessionID string, checkout *domain.Checkout) error
	Delete(ctx context.Context, sessionID string) error
}

// VerificationProvider fetches the server-computed tax, shipping,
// availability and wallet data for a cart.
type VerificationProvider interface {
	Verify(ctx context.Context, token string, req domain.VerifyRequest) (*domain.VerifiedResponse, error)
}

// OrderPlacer submits the final order to the commerce backend.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, token string, order domain.OrderPayload) (*domain.OrderReceipt, error)
}

// CredentialSource exposes the session's bearer token and lets the
// checkout flow invalidate it when the backend answers 401.
type CredentialSource interface {
	// Token returns the session's bearer token, empty when the session
	// is not authenticated.
	Token(ctx context.Context, sessionID string) (string, error)
	// Invalidate clears the session's stored credentials.
	Invalidate(ctx context.Context, sessionID string) error
}

package service

import (
	"context"
	"errors"
	"testing"

	"toystore-api/internal/core/validation"
	authdomain "toystore-api/internal/features/auth/domain"
	cartdomain "toystore-api/internal/features/cart/domain"
	"toystore-api/internal/features/checkout/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCheckoutRepository is a mock implementation of ports.CheckoutRepository
type MockCheckoutRepository struct {
	mock.Mock
}

func (m *MockCheckoutRepository) Load(ctx context.Context, sessionID string) (*domain.Checkout, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Checkout), args.Error(1)
}

func (m *MockCheckoutRepository) Save(ctx context.Context, sessionID string, checkout *domain.Checkout) error {
	args := m.Called(ctx, sessionID, checkout)
	return args.Error(0)
}

func (m *MockCheckoutRepository) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// MockCartService is a mock implementation of the cart primary port.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Get(ctx context.Context, sessionID string) (*cartdomain.Cart, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cartdomain.Cart), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, sessionID string, item cartdomain.Item) (*cartdomain.Cart, error) {
	args := m.Called(ctx, sessionID, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cartdomain.Cart), args.Error(1)
}

func (m *MockCartService) UpdateItem(ctx context.Context, sessionID, itemID string, quantity int) (*cartdomain.Cart, error) {
	args := m.Called(ctx, sessionID, itemID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cartdomain.Cart), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, sessionID, itemID string) (*cartdomain.Cart, error) {
	args := m.Called(ctx, sessionID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cartdomain.Cart), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// MockVerificationProvider is a mock implementation of ports.VerificationProvider
type MockVerificationProvider struct {
	mock.Mock
}

func (m *MockVerificationProvider) Verify(ctx context.Context, token string, req domain.VerifyRequest) (*domain.VerifiedResponse, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerifiedResponse), args.Error(1)
}

// MockOrderPlacer is a mock implementation of ports.OrderPlacer
type MockOrderPlacer struct {
	mock.Mock
}

func (m *MockOrderPlacer) PlaceOrder(ctx context.Context, token string, order domain.OrderPayload) (*domain.OrderReceipt, error) {
	args := m.Called(ctx, token, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderReceipt), args.Error(1)
}

// MockCredentialSource is a mock implementation of ports.CredentialSource
type MockCredentialSource struct {
	mock.Mock
}

func (m *MockCredentialSource) Token(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *MockCredentialSource) Invalidate(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type fixture struct {
	repo     *MockCheckoutRepository
	carts    *MockCartService
	verifier *MockVerificationProvider
	placer   *MockOrderPlacer
	creds    *MockCredentialSource
	service  *CheckoutServiceImpl
}

func newFixture() *fixture {
	f := &fixture{
		repo:     new(MockCheckoutRepository),
		carts:    new(MockCartService),
		verifier: new(MockVerificationProvider),
		placer:   new(MockOrderPlacer),
		creds:    new(MockCredentialSource),
	}
	f.service = NewCheckoutService(f.repo, f.carts, f.verifier, f.placer, f.creds, validation.New())
	return f
}

func filledCart() *cartdomain.Cart {
	cart := cartdomain.NewCart()
	cart.AddItem(cartdomain.Item{ID: "p1", Name: "Train Set", Price: 400, Quantity: 2})
	cart.AddItem(cartdomain.Item{ID: "p2", Name: "Doll House", Price: 200, Quantity: 1})
	return cart
}

func completeCheckout() *domain.Checkout {
	checkout := domain.NewCheckout()
	checkout.BillingAddress = &domain.Address{Country: "US", City: "Portland", StreetAddress: "1 Main St"}
	checkout.ShippingAddress = &domain.Address{Country: "US", City: "Portland", StreetAddress: "1 Main St"}
	checkout.CustomerContact = "+15550100"
	return checkout
}

func TestCheckoutService_FieldWrites(t *testing.T) {
	ctx := context.Background()

	t.Run("SetBillingAddress", func(t *testing.T) {
		f := newFixture()
		f.repo.On("Load", ctx, "sess-1").Return(domain.NewCheckout(), nil).Once()
		f.repo.On("Save", ctx, "sess-1", mock.AnythingOfType("*domain.Checkout")).Return(nil).Once()

		checkout, err := f.service.SetBillingAddress(ctx, "sess-1", domain.Address{Country: "US", City: "Portland", StreetAddress: "1 Main St"})
		require.NoError(t, err)
		require.NotNil(t, checkout.BillingAddress)
		assert.Equal(t, domain.AddressBilling, checkout.BillingAddress.Type)
		f.repo.AssertExpectations(t)
	})

	t.Run("SetPaymentGateway", func(t *testing.T) {
		f := newFixture()
		f.repo.On("Load", ctx, "sess-1").Return(domain.NewCheckout(), nil).Once()
		f.repo.On("Save", ctx, "sess-1", mock.Anything).Return(nil).Once()

		checkout, err := f.service.SetPaymentGateway(ctx, "sess-1", domain.GatewayStripe, "card")
		require.NoError(t, err)
		assert.Equal(t, domain.GatewayStripe, checkout.PaymentGateway)
		assert.Equal(t, "card", checkout.PaymentSubGateway)
	})

	t.Run("InvalidGateway", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.SetPaymentGateway(ctx, "sess-1", "bitcoin", "")
		assert.ErrorIs(t, err, domain.ErrInvalidGateway)
		f.repo.AssertNotCalled(t, "Save")
	})

	t.Run("ApplyCoupon", func(t *testing.T) {
		f := newFixture()
		f.repo.On("Load", ctx, "sess-1").Return(domain.NewCheckout(), nil).Once()
		f.repo.On("Save", ctx, "sess-1", mock.Anything).Return(nil).Once()

		checkout, err := f.service.ApplyCoupon(ctx, "sess-1", domain.Coupon{Code: "SAVE10", Amount: 10, Type: domain.CouponPercentage})
		require.NoError(t, err)
		require.NotNil(t, checkout.Coupon)
		assert.Equal(t, "SAVE10", checkout.Coupon.Code)
	})

	t.Run("InvalidCouponType", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.ApplyCoupon(ctx, "sess-1", domain.Coupon{Code: "X", Type: "bogus"})
		assert.ErrorIs(t, err, domain.ErrInvalidCouponType)
	})

	t.Run("ToggleWallet", func(t *testing.T) {
		f := newFixture()
		f.repo.On("Load", ctx, "sess-1").Return(domain.NewCheckout(), nil).Once()
		f.repo.On("Load", ctx, "sess-1").Return(domain.NewCheckout(), nil).Once()
		f.repo.On("Save", ctx, "sess-1", mock.Anything).Return(nil).Twice()

		on, err := f.service.ToggleWallet(ctx, "sess-1")
		require.NoError(t, err)
		assert.True(t, on)

		// The mock returns a fresh default record each time, so the
		// second toggle flips from false again.
		on, err = f.service.ToggleWallet(ctx, "sess-1")
		require.NoError(t, err)
		assert.True(t, on)
	})
}

func TestCheckoutService_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture()
		f.carts.On("Get", ctx, "sess-1").Return(filledCart(), nil).Once()
		f.repo.On("Load", ctx, "sess-1").Return(domain.NewCheckout(), nil).Once()
		f.creds.On("Token", ctx, "sess-1").Return("tok", nil).Once()
		f.verifier.On("Verify", ctx, "tok", mock.AnythingOfType("domain.VerifyRequest")).
			Return(&domain.VerifiedResponse{TotalTax: 50, ShippingCharge: 100}, nil).Once()
		f.repo.On("Save", ctx, "sess-1", mock.Anything).Return(nil).Once()

		checkout, err := f.service.Verify(ctx, "sess-1")
		require.NoError(t, err)
		require.NotNil(t, checkout.Verified)
		assert.Equal(t, 50.0, checkout.Verified.TotalTax)
		// base 1000 + tax 50 + shipping 100
		assert.Equal(t, 1150.0, checkout.PayableAmount)
		f.verifier.AssertExpectations(t)
	})

	t.Run("EmptyCart", func(t *testing.T) {
		f := newFixture()
		f.carts.On("Get", ctx, "sess-1").Return(cartdomain.NewCart(), nil).Once()

		_, err := f.service.Verify(ctx, "sess-1")
		assert.ErrorIs(t, err, ErrEmptyCart)
		f.verifier.AssertNotCalled(t, "Verify")
	})

	t.Run("UnauthorizedInvalidatesCredentials", func(t *testing.T) {
		f := newFixture()
		f.carts.On("Get", ctx, "sess-1").Return(filledCart(), nil).Once()
		f.repo.On("Load", ctx, "sess-1").Return(domain.NewCheckout(), nil).Once()
		f.creds.On("Token", ctx, "sess-1").Return("stale", nil).Once()
		f.verifier.On("Verify", ctx, "stale", mock.Anything).Return(nil, authdomain.ErrUnauthorized).Once()
		f.creds.On("Invalidate", ctx, "sess-1").Return(nil).Once()

		_, err := f.service.Verify(ctx, "sess-1")
		assert.ErrorIs(t, err, authdomain.ErrUnauthorized)
		f.creds.AssertExpectations(t)
	})

	t.Run("ProviderError", func(t *testing.T) {
		f := newFixture()
		f.carts.On("Get", ctx, "sess-1").Return(filledCart(), nil).Once()
		f.repo.On("Load", ctx, "sess-1").Return(domain.NewCheckout(), nil).Once()
		f.creds.On("Token", ctx, "sess-1").Return("", nil).Once()
		f.verifier.On("Verify", ctx, "", mock.Anything).Return(nil, errors.New("backend down")).Once()

		_, err := f.service.Verify(ctx, "sess-1")
		assert.Error(t, err)
		f.creds.AssertNotCalled(t, "Invalidate")
	})
}

func TestCheckoutService_Summary(t *testing.T) {
	ctx := context.Background()

	f := newFixture()
	checkout := domain.NewCheckout()
	checkout.Verified = &domain.VerifiedResponse{TotalTax: 50, ShippingCharge: 100, WalletAmount: 30}
	checkout.Coupon = &domain.Coupon{Code: "SAVE10", Amount: 10, Type: domain.CouponPercentage}
	checkout.UseWallet = true

	f.carts.On("Get", ctx, "sess-1").Return(filledCart(), nil).Once()
	f.repo.On("Load", ctx, "sess-1").Return(checkout, nil).Once()

	summary, err := f.service.Summary(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 1020.0, summary.FinalAmount)
}

func TestCheckoutService_PlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture()
		f.carts.On("Get", ctx, "sess-1").Return(filledCart(), nil).Once()
		f.repo.On("Load", ctx, "sess-1").Return(completeCheckout(), nil).Once()
		f.creds.On("Token", ctx, "sess-1").Return("tok", nil).Once()
		f.placer.On("PlaceOrder", ctx, "tok", mock.AnythingOfType("domain.OrderPayload")).
			Return(&domain.OrderReceipt{ID: "ord-1", Status: "pending"}, nil).Once()
		f.carts.On("Clear", ctx, "sess-1").Return(nil).Once()
		f.repo.On("Delete", ctx, "sess-1").Return(nil).Once()

		receipt, err := f.service.PlaceOrder(ctx, "sess-1")
		require.NoError(t, err)
		assert.Equal(t, "ord-1", receipt.ID)

		order := f.placer.Calls[0].Arguments.Get(2).(domain.OrderPayload)
		assert.Equal(t, 1000.0, order.Amount)
		assert.Len(t, order.Products, 2)
		assert.Equal(t, domain.GatewayCashOnDelivery, order.PaymentGateway)
		f.placer.AssertExpectations(t)
		f.carts.AssertExpectations(t)
		f.repo.AssertExpectations(t)
	})

	t.Run("EmptyCart", func(t *testing.T) {
		f := newFixture()
		f.carts.On("Get", ctx, "sess-1").Return(cartdomain.NewCart(), nil).Once()

		_, err := f.service.PlaceOrder(ctx, "sess-1")
		assert.ErrorIs(t, err, ErrEmptyCart)
		f.placer.AssertNotCalled(t, "PlaceOrder")
	})

	t.Run("IncompleteCheckout", func(t *testing.T) {
		f := newFixture()
		f.carts.On("Get", ctx, "sess-1").Return(filledCart(), nil).Once()
		// Missing addresses and contact
		f.repo.On("Load", ctx, "sess-1").Return(domain.NewCheckout(), nil).Once()

		_, err := f.service.PlaceOrder(ctx, "sess-1")
		assert.ErrorIs(t, err, ErrIncompleteCheckout)
		f.placer.AssertNotCalled(t, "PlaceOrder")
	})

	t.Run("UnauthorizedInvalidatesCredentials", func(t *testing.T) {
		f := newFixture()
		f.carts.On("Get", ctx, "sess-1").Return(filledCart(), nil).Once()
		f.repo.On("Load", ctx, "sess-1").Return(completeCheckout(), nil).Once()
		f.creds.On("Token", ctx, "sess-1").Return("stale", nil).Once()
		f.placer.On("PlaceOrder", ctx, "stale", mock.Anything).Return(nil, authdomain.ErrUnauthorized).Once()
		f.creds.On("Invalidate", ctx, "sess-1").Return(nil).Once()

		_, err := f.service.PlaceOrder(ctx, "sess-1")
		assert.ErrorIs(t, err, authdomain.ErrUnauthorized)
		f.creds.AssertExpectations(t)
	})

	t.Run("BackendErrorKeepsState", func(t *testing.T) {
		f := newFixture()
		f.carts.On("Get", ctx, "sess-1").Return(filledCart(), nil).Once()
		f.repo.On("Load", ctx, "sess-1").Return(completeCheckout(), nil).Once()
		f.creds.On("Token", ctx, "sess-1").Return("tok", nil).Once()
		f.placer.On("PlaceOrder", ctx, "tok", mock.Anything).Return(nil, errors.New("backend down")).Once()

		_, err := f.service.PlaceOrder(ctx, "sess-1")
		assert.Error(t, err)
		f.carts.AssertNotCalled(t, "Clear")
		f.repo.AssertNotCalled(t, "Delete")
	})
}

func TestCheckoutService_Clear(t *testing.T) {
	ctx := context.Background()

	f := newFixture()
	f.repo.On("Delete", ctx, "sess-1").Return(nil).Once()

	assert.NoError(t, f.service.Clear(ctx, "sess-1"))
	f.repo.AssertExpectations(t)
}

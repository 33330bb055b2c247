package adapters

import (
	"context"
	"testing"
	"time"

	"toystore-api/internal/core/cache"
	"toystore-api/internal/features/checkout/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCheckoutRepo(t *testing.T) (*SplitCheckoutRepository, *miniredis.Miniredis, *cache.MemoryAdapter) {
	t.Helper()

	mr := miniredis.RunT(t)
	durable, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { durable.Close() })

	ephemeral := cache.NewMemoryAdapter()

	return NewSplitCheckoutRepository(durable, ephemeral, time.Hour), mr, ephemeral
}

func sampleCheckout() *domain.Checkout {
	checkout := domain.NewCheckout()
	checkout.PaymentGateway = domain.GatewayStripe
	checkout.DeliveryTime = "express"
	checkout.CustomerContact = "+15550100"
	checkout.CustomerName = "Dana"
	checkout.UseWallet = true
	checkout.Coupon = &domain.Coupon{Code: "SAVE10", Amount: 10, Type: domain.CouponPercentage}
	checkout.Verified = &domain.VerifiedResponse{TotalTax: 5, ShippingCharge: 10, WalletAmount: 40}
	checkout.BillingAddress = &domain.Address{Type: domain.AddressBilling, Country: "US", City: "Portland", StreetAddress: "1 Main St"}
	checkout.ShippingAddress = &domain.Address{Type: domain.AddressShipping, Country: "US", City: "Portland", StreetAddress: "1 Main St"}
	checkout.Note = "leave at the door"
	return checkout
}

func TestSplitCheckoutRepository_SaveLoad(t *testing.T) {
	repo, _, _ := newTestCheckoutRepo(t)
	ctx := context.Background()

	want := sampleCheckout()
	require.NoError(t, repo.Save(ctx, "sess-1", want))

	got, err := repo.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSplitCheckoutRepository_LoadMissing(t *testing.T) {
	repo, _, _ := newTestCheckoutRepo(t)

	got, err := repo.Load(context.Background(), "no-such-session")
	require.NoError(t, err)
	assert.Equal(t, domain.NewCheckout(), got)
}

// TestSplitCheckoutRepository_EphemeralSlotDoesNotSurviveRestart verifies
// the durability split: coupon and gateway survive a process restart,
// addresses and note do not.
func TestSplitCheckoutRepository_EphemeralSlotDoesNotSurviveRestart(t *testing.T) {
	mr := miniredis.RunT(t)
	durable, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	defer durable.Close()

	ctx := context.Background()

	repo := NewSplitCheckoutRepository(durable, cache.NewMemoryAdapter(), time.Hour)
	require.NoError(t, repo.Save(ctx, "sess-1", sampleCheckout()))

	// A restart gives the repository a fresh, empty ephemeral adapter
	restarted := NewSplitCheckoutRepository(durable, cache.NewMemoryAdapter(), time.Hour)

	got, err := restarted.Load(ctx, "sess-1")
	require.NoError(t, err)

	assert.Equal(t, domain.GatewayStripe, got.PaymentGateway)
	assert.NotNil(t, got.Coupon)
	assert.True(t, got.UseWallet)
	assert.Equal(t, "+15550100", got.CustomerContact)

	assert.Nil(t, got.BillingAddress)
	assert.Nil(t, got.ShippingAddress)
	assert.Empty(t, got.Note)
}

func TestSplitCheckoutRepository_LoadCorruptSlot(t *testing.T) {
	repo, mr, _ := newTestCheckoutRepo(t)

	mr.Set("checkout:sess-1", "{not json")

	got, err := repo.Load(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, domain.NewCheckout(), got)
}

func TestSplitCheckoutRepository_Delete(t *testing.T) {
	repo, _, _ := newTestCheckoutRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "sess-1", sampleCheckout()))
	require.NoError(t, repo.Delete(ctx, "sess-1"))

	got, err := repo.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, domain.NewCheckout(), got)
}

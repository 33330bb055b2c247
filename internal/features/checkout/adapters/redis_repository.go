package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"toystore-api/internal/core/cache"
	"toystore-api/internal/core/logger"
	"toystore-api/internal/features/checkout/domain"

	"go.uber.org/zap"
)

const checkoutKeyPrefix = "checkout:"

// persistedSlot holds the checkout fields that survive a session gap.
type persistedSlot struct {
	PaymentGateway    domain.PaymentGateway    `json:"payment_gateway"`
	PaymentSubGateway string                   `json:"payment_sub_gateway,omitempty"`
	DeliveryTime      string                   `json:"delivery_time,omitempty"`
	CustomerContact   string                   `json:"customer_contact,omitempty"`
	CustomerName      string                   `json:"customer_name,omitempty"`
	Verified          *domain.VerifiedResponse `json:"verified_response,omitempty"`
	Coupon            *domain.Coupon           `json:"coupon,omitempty"`
	PayableAmount     float64                  `json:"payable_amount"`
	UseWallet         bool                     `json:"use_wallet"`
}

// ephemeralSlot holds the fields that deliberately do not survive a
// restart: address data and free-text notes must not silently outlive a
// session gap, while a coupon or payment-method preference may.
type ephemeralSlot struct {
	BillingAddress  *domain.Address `json:"billing_address,omitempty"`
	ShippingAddress *domain.Address `json:"shipping_address,omitempty"`
	Note            string          `json:"note,omitempty"`
}

// SplitCheckoutRepository implements ports.CheckoutRepository over two
// cache slots of different durability sharing one logical record.
type SplitCheckoutRepository struct {
	durable   cache.Cache
	ephemeral cache.Cache
	ttl       time.Duration
}

// NewSplitCheckoutRepository creates a repository storing the persisted
// slot in durable (Redis) and the ephemeral slot in ephemeral
// (in-process memory).
func NewSplitCheckoutRepository(durable, ephemeral cache.Cache, ttl time.Duration) *SplitCheckoutRepository {
	return &SplitCheckoutRepository{
		durable:   durable,
		ephemeral: ephemeral,
		ttl:       ttl,
	}
}

// Load merges both slots into one checkout record. Missing or corrupt
// slots fall back to defaults, never to an error.
func (r *SplitCheckoutRepository) Load(ctx context.Context, sessionID string) (*domain.Checkout, error) {
	checkout := domain.NewCheckout()
	key := checkoutKeyPrefix + sessionID

	var persisted persistedSlot
	if ok, err := r.readSlot(ctx, r.durable, key, sessionID, &persisted); err != nil {
		return nil, err
	} else if ok {
		checkout.PaymentGateway = persisted.PaymentGateway
		checkout.PaymentSubGateway = persisted.PaymentSubGateway
		checkout.DeliveryTime = persisted.DeliveryTime
		checkout.CustomerContact = persisted.CustomerContact
		checkout.CustomerName = persisted.CustomerName
		checkout.Verified = persisted.Verified
		checkout.Coupon = persisted.Coupon
		checkout.PayableAmount = persisted.PayableAmount
		checkout.UseWallet = persisted.UseWallet
	}

	var eph ephemeralSlot
	if ok, err := r.readSlot(ctx, r.ephemeral, key, sessionID, &eph); err != nil {
		return nil, err
	} else if ok {
		checkout.BillingAddress = eph.BillingAddress
		checkout.ShippingAddress = eph.ShippingAddress
		checkout.Note = eph.Note
	}

	return checkout, nil
}

// Save splits the record and overwrites both slots wholesale. The two
// writes are independent; neither slot depends on atomicity with the
// other for correctness.
func (r *SplitCheckoutRepository) Save(ctx context.Context, sessionID string, checkout *domain.Checkout) error {
	key := checkoutKeyPrefix + sessionID

	persisted := persistedSlot{
		PaymentGateway:    checkout.PaymentGateway,
		PaymentSubGateway: checkout.PaymentSubGateway,
		DeliveryTime:      checkout.DeliveryTime,
		CustomerContact:   checkout.CustomerContact,
		CustomerName:      checkout.CustomerName,
		Verified:          checkout.Verified,
		Coupon:            checkout.Coupon,
		PayableAmount:     checkout.PayableAmount,
		UseWallet:         checkout.UseWallet,
	}
	if err := r.writeSlot(ctx, r.durable, key, persisted); err != nil {
		return fmt.Errorf("failed to save checkout: %w", err)
	}

	eph := ephemeralSlot{
		BillingAddress:  checkout.BillingAddress,
		ShippingAddress: checkout.ShippingAddress,
		Note:            checkout.Note,
	}
	if err := r.writeSlot(ctx, r.ephemeral, key, eph); err != nil {
		return fmt.Errorf("failed to save checkout addresses: %w", err)
	}

	return nil
}

// Delete removes both slots.
func (r *SplitCheckoutRepository) Delete(ctx context.Context, sessionID string) error {
	key := checkoutKeyPrefix + sessionID

	if err := r.durable.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete checkout: %w", err)
	}
	if err := r.ephemeral.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete checkout addresses: %w", err)
	}
	return nil
}

func (r *SplitCheckoutRepository) readSlot(ctx context.Context, c cache.Cache, key, sessionID string, out interface{}) (bool, error) {
	data, err := c.Get(ctx, key)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load checkout slot: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		logger.WithSession(sessionID).Warn("Discarding corrupt checkout slot", zap.Error(err))
		return false, nil
	}
	return true, nil
}

func (r *SplitCheckoutRepository) writeSlot(ctx context.Context, c cache.Cache, key string, slot interface{}) error {
	data, err := json.Marshal(slot)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, r.ttl)
}

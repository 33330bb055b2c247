package domain

import (
	cartdomain "toystore-api/internal/features/cart/domain"
)

// Summary is the derived order breakdown shown on the checkout page and
// used to build the order payload. It is recomputed from scratch on
// every request; inputs are a handful of fields, so there is nothing to
// cache.
type Summary struct {
	// AvailableItems are the cart lines the backend can fulfill.
	AvailableItems []cartdomain.Item `json:"available_items"`
	// UnavailableItems are the cart lines listed in the verified
	// response as out of stock.
	UnavailableItems []cartdomain.Item `json:"unavailable_items"`

	BaseAmount     float64 `json:"base_amount"`
	TaxAmount      float64 `json:"tax_amount"`
	ShippingAmount float64 `json:"shipping_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	// TotalAmount = base + tax + shipping - discount. Deliberately not
	// clamped: a coupon exceeding the subtotal drives it negative, which
	// the storefront surfaces as store credit.
	TotalAmount  float64 `json:"total_amount"`
	WalletAmount float64 `json:"wallet_amount"`
	FinalAmount  float64 `json:"final_amount"`

	// IsVerified is false until the backend has supplied tax, shipping
	// and availability. While false, tax and shipping default to zero
	// and must be displayed as "calculated at checkout", never as a
	// real zero charge.
	IsVerified bool `json:"is_verified"`
}

// CalculateOrder derives the order breakdown from the cart lines and the
// checkout record. Pure: no side effects, no stored state.
func CalculateOrder(items []cartdomain.Item, checkout *Checkout) *Summary {
	s := &Summary{
		AvailableItems:   []cartdomain.Item{},
		UnavailableItems: []cartdomain.Item{},
	}

	unavailable := map[string]bool{}
	if checkout.Verified != nil {
		s.IsVerified = true
		s.TaxAmount = checkout.Verified.TotalTax
		s.ShippingAmount = checkout.Verified.ShippingCharge
		for _, id := range checkout.Verified.UnavailableProducts {
			unavailable[id] = true
		}
	}

	for _, item := range items {
		if unavailable[item.ID] {
			s.UnavailableItems = append(s.UnavailableItems, item)
			continue
		}
		s.AvailableItems = append(s.AvailableItems, item)
		s.BaseAmount += item.Subtotal()
	}

	s.DiscountAmount = couponDiscount(checkout.Coupon, s.BaseAmount, s.ShippingAmount)
	s.TotalAmount = s.BaseAmount + s.TaxAmount + s.ShippingAmount - s.DiscountAmount

	if checkout.UseWallet && checkout.Verified != nil {
		s.WalletAmount = walletDeduction(checkout.Verified.WalletAmount, s.TotalAmount)
	}

	s.FinalAmount = s.TotalAmount - s.WalletAmount

	return s
}

// couponDiscount interprets the coupon amount per its type.
func couponDiscount(coupon *Coupon, baseAmount, shippingAmount float64) float64 {
	if coupon == nil {
		return 0
	}

	switch coupon.Type {
	case CouponPercentage:
		return baseAmount * coupon.Amount / 100
	case CouponFreeShipping:
		// cancels shipping exactly
		return shippingAmount
	default:
		return coupon.Amount
	}
}

// walletDeduction caps the wallet spend at the amount actually owed:
// wallet credit can zero the bill but never drive it negative. A coupon
// overshoot (negative total) leaves the wallet untouched.
func walletDeduction(balance, totalAmount float64) float64 {
	if totalAmount <= 0 {
		return 0
	}
	if balance > totalAmount {
		return totalAmount
	}
	return balance
}

package domain

import "errors"

// PaymentGateway identifies how the customer pays.
type PaymentGateway string

const (
	GatewayCashOnDelivery PaymentGateway = "cash_on_delivery"
	GatewayStripe         PaymentGateway = "stripe"
	GatewayPaypal         PaymentGateway = "paypal"
)

// CouponType determines how a coupon's amount is interpreted.
type CouponType string

const (
	CouponPercentage   CouponType = "percentage"
	CouponFixed        CouponType = "fixed"
	CouponFreeShipping CouponType = "free_shipping"
)

var (
	ErrInvalidGateway    = errors.New("invalid payment gateway")
	ErrInvalidCouponType = errors.New("invalid coupon type")
)

// AddressType distinguishes billing from shipping addresses.
type AddressType string

const (
	AddressBilling  AddressType = "billing"
	AddressShipping AddressType = "shipping"
)

// Address is a customer address attached to the checkout. Required-field
// presence is checked at order placement, nothing more: addresses are
// not deduplicated or postal-validated here.
type Address struct {
	ID            string      `json:"id,omitempty"`
	Type          AddressType `json:"type,omitempty"`
	Title         string      `json:"title,omitempty"`
	Country       string      `json:"country" validate:"required"`
	City          string      `json:"city" validate:"required"`
	State         string      `json:"state,omitempty"`
	Zip           string      `json:"zip,omitempty"`
	StreetAddress string      `json:"street_address" validate:"required"`
	ContactNumber string      `json:"contact_number,omitempty"`
}

// Coupon is a discount code applied to the checkout. Amount is a raw
// number whose meaning depends on Type: a percentage of the subtotal,
// a fixed deduction, or ignored for free_shipping.
type Coupon struct {
	ID     string     `json:"id,omitempty"`
	Code   string     `json:"code"`
	Amount float64    `json:"amount"`
	Type   CouponType `json:"type"`
}

// Valid reports whether the coupon type is one of the known kinds.
func (c Coupon) Valid() bool {
	switch c.Type {
	case CouponPercentage, CouponFixed, CouponFreeShipping:
		return true
	}
	return false
}

// VerifiedResponse is the server-computed tax/shipping/availability/wallet
// data fetched from the commerce backend before order placement. Once
// present it is authoritative for tax and shipping.
type VerifiedResponse struct {
	TotalTax            float64  `json:"total_tax"`
	ShippingCharge      float64  `json:"shipping_charge"`
	UnavailableProducts []string `json:"unavailable_products"`
	WalletAmount        float64  `json:"wallet_amount"`
	WalletCurrency      string   `json:"wallet_currency,omitempty"`
}

// Checkout is the session's single checkout record. Every field accessor
// reads and writes through this one record; a field write merges into the
// whole and replaces the stored state wholesale.
type Checkout struct {
	BillingAddress    *Address          `json:"billing_address" validate:"required"`
	ShippingAddress   *Address          `json:"shipping_address" validate:"required"`
	PaymentGateway    PaymentGateway    `json:"payment_gateway" validate:"required"`
	PaymentSubGateway string            `json:"payment_sub_gateway,omitempty"`
	DeliveryTime      string            `json:"delivery_time,omitempty"`
	CustomerContact   string            `json:"customer_contact" validate:"required"`
	CustomerName      string            `json:"customer_name,omitempty"`
	Verified          *VerifiedResponse `json:"verified_response,omitempty"`
	Coupon            *Coupon           `json:"coupon,omitempty"`
	PayableAmount     float64           `json:"payable_amount"`
	UseWallet         bool              `json:"use_wallet"`
	Note              string            `json:"note,omitempty"`
}

// NewCheckout creates a checkout record with its documented defaults.
func NewCheckout() *Checkout {
	return &Checkout{
		PaymentGateway: GatewayCashOnDelivery,
	}
}

// ToggleWallet flips the wallet preference and returns the new value.
func (c *Checkout) ToggleWallet() bool {
	c.UseWallet = !c.UseWallet
	return c.UseWallet
}

// Discount returns the coupon's raw amount, zero when no coupon is
// applied. Note the number is not interpreted per coupon type here;
// order calculation does that. A percentage coupon's Discount is the
// percentage figure, not a monetary value.
func (c *Checkout) Discount() float64 {
	if c.Coupon == nil {
		return 0
	}
	return c.Coupon.Amount
}

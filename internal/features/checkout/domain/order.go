package domain

// ProductLine is one cart line in the shape the commerce backend expects.
type ProductLine struct {
	ProductID     string  `json:"product_id"`
	OrderQuantity int     `json:"order_quantity"`
	UnitPrice     float64 `json:"unit_price"`
	Subtotal      float64 `json:"subtotal"`
}

// VerifyRequest is the payload sent to the backend to obtain a
// VerifiedResponse for the current cart and addresses.
type VerifyRequest struct {
	Amount          float64       `json:"amount"`
	Products        []ProductLine `json:"products"`
	BillingAddress  *Address      `json:"billing_address,omitempty"`
	ShippingAddress *Address      `json:"shipping_address,omitempty"`
}

// OrderPayload is the order-creation request sent to the backend once
// the checkout passes its preconditions.
type OrderPayload struct {
	Products          []ProductLine  `json:"products"`
	Amount            float64        `json:"amount"`
	CouponID          string         `json:"coupon_id,omitempty"`
	Discount          float64        `json:"discount"`
	PaidTotal         float64        `json:"paid_total"`
	Total             float64        `json:"total"`
	SalesTax          float64        `json:"sales_tax"`
	DeliveryFee       float64        `json:"delivery_fee"`
	DeliveryTime      string         `json:"delivery_time,omitempty"`
	PaymentGateway    PaymentGateway `json:"payment_gateway"`
	PaymentSubGateway string         `json:"payment_sub_gateway,omitempty"`
	UseWalletPoints   bool           `json:"use_wallet_points"`
	BillingAddress    *Address       `json:"billing_address"`
	ShippingAddress   *Address       `json:"shipping_address"`
	CustomerContact   string         `json:"customer_contact"`
	CustomerName      string         `json:"customer_name,omitempty"`
	Note              string         `json:"note,omitempty"`
}

// OrderReceipt is the backend's acknowledgement of a created order.
type OrderReceipt struct {
	ID             string  `json:"id"`
	TrackingNumber string  `json:"tracking_number"`
	Status         string  `json:"status"`
	Total          float64 `json:"total"`
}

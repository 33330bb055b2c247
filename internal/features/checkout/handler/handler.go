package handler

import (
	"errors"
	"net/http"

	"toystore-api/internal/core/logger"
	"toystore-api/internal/core/money"
	"toystore-api/internal/core/server"
	"toystore-api/internal/core/validation"
	authdomain "toystore-api/internal/features/auth/domain"
	"toystore-api/internal/features/checkout/domain"
	"toystore-api/internal/features/checkout/ports"
	"toystore-api/internal/features/checkout/service"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CheckoutHandler handles HTTP requests for the checkout record and the
// derived order calculation.
type CheckoutHandler struct {
	service   ports.CheckoutService
	formatter *money.Formatter
	validate  *validatorv10.Validate
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(s ports.CheckoutService, formatter *money.Formatter, validate *validatorv10.Validate) *CheckoutHandler {
	return &CheckoutHandler{
		service:   s,
		formatter: formatter,
		validate:  validate,
	}
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}

// AddressRequest represents the request body for address writes.
type AddressRequest struct {
	Title         string `json:"title"`
	Country       string `json:"country" validate:"required"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	StreetAddress string `json:"street_address" validate:"required"`
	ContactNumber string `json:"contact_number"`
}

// ContactRequest represents the request body for the contact field.
type ContactRequest struct {
	Contact string `json:"contact" validate:"required"`
	Name    string `json:"name"`
}

// DeliveryTimeRequest represents the request body for the delivery slot.
type DeliveryTimeRequest struct {
	DeliveryTime string `json:"delivery_time" validate:"required"`
}

// PaymentGatewayRequest represents the request body for the gateway field.
type PaymentGatewayRequest struct {
	Gateway    domain.PaymentGateway `json:"gateway" validate:"required"`
	SubGateway string                `json:"sub_gateway"`
}

// CouponRequest represents the request body for applying a coupon.
type CouponRequest struct {
	ID     string            `json:"id"`
	Code   string            `json:"code" validate:"required"`
	Amount float64           `json:"amount" validate:"gte=0"`
	Type   domain.CouponType `json:"type" validate:"required"`
}

// NoteRequest represents the request body for the order note.
type NoteRequest struct {
	Note string `json:"note"`
}

// SummaryResponse is the order breakdown with display-formatted amounts.
type SummaryResponse struct {
	*domain.Summary
	Formatted FormattedAmounts `json:"formatted"`
}

// FormattedAmounts carries the breakdown rendered as display strings.
// Shipping reads "calculated at checkout" until the backend has
// verified the order, so an unverified zero is never shown as free.
type FormattedAmounts struct {
	Base     string `json:"base"`
	Tax      string `json:"tax"`
	Shipping string `json:"shipping"`
	Discount string `json:"discount"`
	Total    string `json:"total"`
	Wallet   string `json:"wallet"`
	Final    string `json:"final"`
}

const pendingVerification = "calculated at checkout"

func (h *CheckoutHandler) fail(c *fiber.Ctx, err error, action string) error {
	rayID := server.RayID(c)
	logger.Get().Error("Checkout request failed",
		zap.String("action", action),
		zap.String("ray_id", rayID),
		zap.Error(err),
	)

	status := http.StatusInternalServerError
	msg := "Internal Server Error"

	switch {
	case errors.Is(err, service.ErrEmptyCart):
		status = http.StatusBadRequest
		msg = "Cart is empty"
	case errors.Is(err, service.ErrIncompleteCheckout):
		status = http.StatusBadRequest
		msg = "Checkout is incomplete"
	case errors.Is(err, domain.ErrInvalidGateway):
		status = http.StatusBadRequest
		msg = "Invalid payment gateway"
	case errors.Is(err, domain.ErrInvalidCouponType):
		status = http.StatusBadRequest
		msg = "Invalid coupon type"
	case errors.Is(err, authdomain.ErrUnauthorized):
		status = http.StatusUnauthorized
		msg = "Session expired, please log in again"
	}

	return c.Status(status).JSON(ErrorResponse{
		Message: msg,
		RayID:   rayID,
	})
}

// Get handles GET /checkout.
// @Summary Get the checkout record
// @Tags Checkout
// @Produce json
// @Success 200 {object} domain.Checkout
// @Failure 500 {object} ErrorResponse
// @Router /checkout [get]
func (h *CheckoutHandler) Get(c *fiber.Ctx) error {
	checkout, err := h.service.Get(c.Context(), server.SessionID(c))
	if err != nil {
		return h.fail(c, err, "get")
	}
	return c.Status(http.StatusOK).JSON(checkout)
}

// SetBillingAddress handles PUT /checkout/billing-address.
// @Summary Set the billing address
// @Tags Checkout
// @Accept json
// @Produce json
// @Param address body AddressRequest true "Billing address"
// @Success 200 {object} domain.Checkout
// @Failure 400 {object} map[string]string
// @Failure 500 {object} ErrorResponse
// @Router /checkout/billing-address [put]
func (h *CheckoutHandler) SetBillingAddress(c *fiber.Ctx) error {
	var req AddressRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return nil
	}

	checkout, err := h.service.SetBillingAddress(c.Context(), server.SessionID(c), addressFromRequest(req))
	if err != nil {
		return h.fail(c, err, "set_billing_address")
	}
	return c.Status(http.StatusOK).JSON(checkout)
}

// SetShippingAddress handles PUT /checkout/shipping-address.
// @Summary Set the shipping address
// @Tags Checkout
// @Accept json
// @Produce json
// @Param address body AddressRequest true "Shipping address"
// @Success 200 {object} domain.Checkout
// @Failure 400 {object} map[string]string
// @Failure 500 {object} ErrorResponse
// @Router /checkout/shipping-address [put]
func (h *CheckoutHandler) SetShippingAddress(c *fiber.Ctx) error {
	var req AddressRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return nil
	}

	checkout, err := h.service.SetShippingAddress(c.Context(), server.SessionID(c), addressFromRequest(req))
	if err != nil {
		return h.fail(c, err, "set_shipping_address")
	}
	return c.Status(http.StatusOK).JSON(checkout)
}

// SetContact handles PUT /checkout/contact.
// @Summary Set the customer contact
// @Tags Checkout
// @Accept json
// @Produce json
// @Param contact body ContactRequest true "Customer contact"
// @Success 200 {object} domain.Checkout
// @Failure 400 {object} map[string]string
// @Failure 500 {object} ErrorResponse
// @Router /checkout/contact [put]
func (h *CheckoutHandler) SetContact(c *fiber.Ctx) error {
	var req ContactRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return nil
	}

	checkout, err := h.service.SetContact(c.Context(), server.SessionID(c), req.Contact, req.Name)
	if err != nil {
		return h.fail(c, err, "set_contact")
	}
	return c.Status(http.StatusOK).JSON(checkout)
}

// SetDeliveryTime handles PUT /checkout/delivery-time.
// @Summary Set the delivery time slot
// @Tags Checkout
// @Accept json
// @Produce json
// @Param slot body DeliveryTimeRequest true "Delivery slot"
// @Success 200 {object} domain.Checkout
// @Failure 400 {object} map[string]string
// @Failure 500 {object} ErrorResponse
// @Router /checkout/delivery-time [put]
func (h *CheckoutHandler) SetDeliveryTime(c *fiber.Ctx) error {
	var req DeliveryTimeRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return nil
	}

	checkout, err := h.service.SetDeliveryTime(c.Context(), server.SessionID(c), req.DeliveryTime)
	if err != nil {
		return h.fail(c, err, "set_delivery_time")
	}
	return c.Status(http.StatusOK).JSON(checkout)
}

// SetPaymentGateway handles PUT /checkout/payment-gateway.
// @Summary Set the payment gateway
// @Tags Checkout
// @Accept json
// @Produce json
// @Param gateway body PaymentGatewayRequest true "Payment gateway"
// @Success 200 {object} domain.Checkout
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /checkout/payment-gateway [put]
func (h *CheckoutHandler) SetPaymentGateway(c *fiber.Ctx) error {
	var req PaymentGatewayRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return nil
	}

	checkout, err := h.service.SetPaymentGateway(c.Context(), server.SessionID(c), req.Gateway, req.SubGateway)
	if err != nil {
		return h.fail(c, err, "set_payment_gateway")
	}
	return c.Status(http.StatusOK).JSON(checkout)
}

// ApplyCoupon handles PUT /checkout/coupon.
// @Summary Apply a coupon
// @Tags Checkout
// @Accept json
// @Produce json
// @Param coupon body CouponRequest true "Coupon"
// @Success 200 {object} domain.Checkout
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /checkout/coupon [put]
func (h *CheckoutHandler) ApplyCoupon(c *fiber.Ctx) error {
	var req CouponRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return nil
	}

	checkout, err := h.service.ApplyCoupon(c.Context(), server.SessionID(c), domain.Coupon{
		ID:     req.ID,
		Code:   req.Code,
		Amount: req.Amount,
		Type:   req.Type,
	})
	if err != nil {
		return h.fail(c, err, "apply_coupon")
	}
	return c.Status(http.StatusOK).JSON(checkout)
}

// RemoveCoupon handles DELETE /checkout/coupon.
// @Summary Remove the applied coupon
// @Tags Checkout
// @Produce json
// @Success 200 {object} domain.Checkout
// @Failure 500 {object} ErrorResponse
// @Router /checkout/coupon [delete]
func (h *CheckoutHandler) RemoveCoupon(c *fiber.Ctx) error {
	checkout, err := h.service.RemoveCoupon(c.Context(), server.SessionID(c))
	if err != nil {
		return h.fail(c, err, "remove_coupon")
	}
	return c.Status(http.StatusOK).JSON(checkout)
}

// SetNote handles PUT /checkout/note.
// @Summary Set the order note
// @Tags Checkout
// @Accept json
// @Produce json
// @Param note body NoteRequest true "Order note"
// @Success 200 {object} domain.Checkout
// @Failure 400 {object} map[string]string
// @Failure 500 {object} ErrorResponse
// @Router /checkout/note [put]
func (h *CheckoutHandler) SetNote(c *fiber.Ctx) error {
	var req NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	checkout, err := h.service.SetNote(c.Context(), server.SessionID(c), req.Note)
	if err != nil {
		return h.fail(c, err, "set_note")
	}
	return c.Status(http.StatusOK).JSON(checkout)
}

// ToggleWallet handles POST /checkout/wallet.
// @Summary Toggle wallet usage
// @Description Flips whether the customer's wallet balance is applied to the payable total.
// @Tags Checkout
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 500 {object} ErrorResponse
// @Router /checkout/wallet [post]
func (h *CheckoutHandler) ToggleWallet(c *fiber.Ctx) error {
	useWallet, err := h.service.ToggleWallet(c.Context(), server.SessionID(c))
	if err != nil {
		return h.fail(c, err, "toggle_wallet")
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"use_wallet": useWallet,
	})
}

// Clear handles DELETE /checkout.
// @Summary Clear the checkout record
// @Tags Checkout
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} ErrorResponse
// @Router /checkout [delete]
func (h *CheckoutHandler) Clear(c *fiber.Ctx) error {
	if err := h.service.Clear(c.Context(), server.SessionID(c)); err != nil {
		return h.fail(c, err, "clear")
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Checkout cleared",
	})
}

// Verify handles POST /checkout/verify.
// @Summary Verify the checkout against the backend
// @Description Fetches server-computed tax, shipping, availability and wallet balance for the current cart.
// @Tags Checkout
// @Produce json
// @Success 200 {object} domain.Checkout
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /checkout/verify [post]
func (h *CheckoutHandler) Verify(c *fiber.Ctx) error {
	checkout, err := h.service.Verify(c.Context(), server.SessionID(c))
	if err != nil {
		return h.fail(c, err, "verify")
	}
	return c.Status(http.StatusOK).JSON(checkout)
}

// Summary handles GET /checkout/summary.
// @Summary Get the order calculation
// @Description Returns the derived order breakdown with display-formatted amounts.
// @Tags Checkout
// @Produce json
// @Success 200 {object} SummaryResponse
// @Failure 500 {object} ErrorResponse
// @Router /checkout/summary [get]
func (h *CheckoutHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.Context(), server.SessionID(c))
	if err != nil {
		return h.fail(c, err, "summary")
	}

	resp := SummaryResponse{
		Summary: summary,
		Formatted: FormattedAmounts{
			Base:     h.formatter.Format(summary.BaseAmount),
			Tax:      h.formatter.Format(summary.TaxAmount),
			Shipping: h.formatter.Format(summary.ShippingAmount),
			Discount: h.formatter.Format(summary.DiscountAmount),
			Total:    h.formatter.Format(summary.TotalAmount),
			Wallet:   h.formatter.Format(summary.WalletAmount),
			Final:    h.formatter.Format(summary.FinalAmount),
		},
	}
	if !summary.IsVerified {
		resp.Formatted.Tax = pendingVerification
		resp.Formatted.Shipping = pendingVerification
	}

	return c.Status(http.StatusOK).JSON(resp)
}

// PlaceOrder handles POST /orders.
// @Summary Place the order
// @Description Submits the order to the backend after checking the cart and checkout preconditions.
// @Tags Checkout
// @Produce json
// @Success 201 {object} domain.OrderReceipt
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /orders [post]
func (h *CheckoutHandler) PlaceOrder(c *fiber.Ctx) error {
	receipt, err := h.service.PlaceOrder(c.Context(), server.SessionID(c))
	if err != nil {
		return h.fail(c, err, "place_order")
	}
	return c.Status(http.StatusCreated).JSON(receipt)
}

func addressFromRequest(req AddressRequest) domain.Address {
	return domain.Address{
		Title:         req.Title,
		Country:       req.Country,
		City:          req.City,
		State:         req.State,
		Zip:           req.Zip,
		StreetAddress: req.StreetAddress,
		ContactNumber: req.ContactNumber,
	}
}

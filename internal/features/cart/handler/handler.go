package handler

import (
	"net/http"

	"toystore-api/internal/core/logger"
	"toystore-api/internal/core/server"
	"toystore-api/internal/core/validation"
	"toystore-api/internal/features/cart/domain"
	"toystore-api/internal/features/cart/ports"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CartHandler handles HTTP requests for the session cart.
type CartHandler struct {
	service  ports.CartService
	validate *validatorv10.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service ports.CartService, validate *validatorv10.Validate) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validate,
	}
}

// AddItemRequest represents the request body for adding a cart line.
type AddItemRequest struct {
	ID       string  `json:"id" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Slug     string  `json:"slug"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=0"`
	Image    string  `json:"image"`
	Unit     string  `json:"unit"`
}

// UpdateItemRequest represents the request body for changing a line's quantity.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// Get handles GET /cart.
// @Summary Get the session cart
// @Description Returns the current cart with derived totals.
// @Tags Cart
// @Produce json
// @Success 200 {object} domain.Cart
// @Failure 500 {object} map[string]string
// @Router /cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	cart, err := h.service.Get(c.Context(), server.SessionID(c))
	if err != nil {
		logger.Get().Error("Failed to get cart", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(cart)
}

// AddItem handles POST /cart/items.
// @Summary Add an item to the cart
// @Description Merges the item into the cart; an existing line with the same id has its quantity incremented.
// @Tags Cart
// @Accept json
// @Produce json
// @Param item body AddItemRequest true "Item to add"
// @Success 200 {object} domain.Cart
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return nil
	}

	cart, err := h.service.AddItem(c.Context(), server.SessionID(c), domain.Item{
		ID:       req.ID,
		Name:     req.Name,
		Slug:     req.Slug,
		Price:    req.Price,
		Quantity: req.Quantity,
		Image:    req.Image,
		Unit:     req.Unit,
	})
	if err != nil {
		logger.Get().Error("Failed to add cart item", zap.String("item_id", req.ID), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(cart)
}

// UpdateItem handles PUT /cart/items/:id.
// @Summary Update a cart line's quantity
// @Description Sets the quantity; zero or a negative value removes the line.
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param quantity body UpdateItemRequest true "New quantity"
// @Success 200 {object} domain.Cart
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /cart/items/{id} [put]
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	itemID := c.Params("id")
	if itemID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Item ID is required",
		})
	}

	var req UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	cart, err := h.service.UpdateItem(c.Context(), server.SessionID(c), itemID, req.Quantity)
	if err != nil {
		logger.Get().Error("Failed to update cart item", zap.String("item_id", itemID), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(cart)
}

// RemoveItem handles DELETE /cart/items/:id.
// @Summary Remove a cart line
// @Description Drops the line with the given id; removing an absent id succeeds.
// @Tags Cart
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} domain.Cart
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	itemID := c.Params("id")
	if itemID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Item ID is required",
		})
	}

	cart, err := h.service.RemoveItem(c.Context(), server.SessionID(c), itemID)
	if err != nil {
		logger.Get().Error("Failed to remove cart item", zap.String("item_id", itemID), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(cart)
}

// Clear handles DELETE /cart.
// @Summary Clear the cart
// @Description Resets the session cart to the empty state.
// @Tags Cart
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.service.Clear(c.Context(), server.SessionID(c)); err != nil {
		logger.Get().Error("Failed to clear cart", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Cart cleared",
	})
}

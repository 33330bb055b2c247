package handler

import (
	"errors"
	"net/http"

	"toystore-api/internal/core/logger"
	"toystore-api/internal/core/server"
	"toystore-api/internal/core/validation"
	"toystore-api/internal/features/auth/domain"
	"toystore-api/internal/features/auth/ports"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler handles HTTP requests for session authentication.
type AuthHandler struct {
	service  ports.AuthService
	validate *validatorv10.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service ports.AuthService, validate *validatorv10.Validate) *AuthHandler {
	return &AuthHandler{
		service:  service,
		validate: validate,
	}
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// MeResponse is the session's auth state with the token stripped.
type MeResponse struct {
	Authenticated bool   `json:"authenticated"`
	CustomerID    string `json:"customer_id,omitempty"`
	Email         string `json:"email,omitempty"`
}

// Login handles POST /auth/login.
// @Summary Log the session in
// @Description Exchanges email and password for a customer credential stored under the session.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} MeResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return nil
	}

	cred, err := h.service.Login(c.Context(), server.SessionID(c), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid email or password",
			})
		}
		logger.Get().Error("Login failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(meResponse(cred))
}

// Logout handles POST /auth/logout.
// @Summary Log the session out
// @Description Clears the session's stored credential. Logging out an anonymous session succeeds.
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.service.Logout(c.Context(), server.SessionID(c)); err != nil {
		logger.Get().Error("Logout failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Logged out",
	})
}

// Me handles GET /auth/me.
// @Summary Get the session's auth state
// @Tags Auth
// @Produce json
// @Success 200 {object} MeResponse
// @Failure 500 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	cred, err := h.service.Current(c.Context(), server.SessionID(c))
	if err != nil {
		logger.Get().Error("Failed to load credential", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(meResponse(cred))
}

// RequireAuth is a middleware guarding routes that only a logged-in
// session may reach.
func RequireAuth(service ports.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cred, err := service.Current(c.Context(), server.SessionID(c))
		if err != nil {
			logger.Get().Error("Failed to load credential", zap.Error(err))
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error",
			})
		}
		if !cred.Authenticated {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"error": "Login required",
			})
		}
		return c.Next()
	}
}

func meResponse(cred *domain.Credential) MeResponse {
	return MeResponse{
		Authenticated: cred.Authenticated,
		CustomerID:    cred.CustomerID,
		Email:         cred.Email,
	}
}

package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/DDricck/price-pulse-product-manager/internal/middleware"
	"github.com/DDricck/price-pulse-product-manager/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// Login handles user authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email and password are required"})
	}

	response, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrUserInactive) {
			return c.Status(401).JSON(fiber.Map{"error": err.Error()})
		}
		return writeError(c, err)
	}

	return c.JSON(response)
}

// Logout invalidates the current session token
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	if err := h.authService.Logout(actor.ID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// ChangePassword handles password change for the signed-in user
// POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	actor := middleware.ActorFromCtx(c)
	if err := h.authService.ChangePassword(actor.ID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated"})
}

// ForgotPassword resets the password and emails the new one
// POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Email == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email is required"})
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "If the account exists, a reset email has been sent"})
}

// Me returns the signed-in identity with its resolved permissions
// GET /api/v1/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	return c.JSON(fiber.Map{
		"id":          actor.ID,
		"email":       actor.Email,
		"first_name":  actor.FirstName,
		"last_name":   actor.LastName,
		"role":        actor.Role(),
		"is_admin":    actor.IsAdmin,
		"permissions": actor.Permissions,
	})
}

package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/DDricck/price-pulse-product-manager/internal/middleware"
	"github.com/DDricck/price-pulse-product-manager/internal/model"
	"github.com/DDricck/price-pulse-product-manager/internal/service"
)

type UserHandler struct {
	service service.UserManagementService
}

func NewUserHandler(s service.UserManagementService) *UserHandler {
	return &UserHandler{service: s}
}

// GetUsers returns all accounts with role and permissions joined
// GET /api/v1/users
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.service.List(middleware.ActorFromCtx(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(users)
}

// InviteUser creates an account and sends the invitation email
// POST /api/v1/users/invite
func (h *UserHandler) InviteUser(c *fiber.Ctx) error {
	var req service.InviteUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.service.Invite(middleware.ActorFromCtx(c), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "User invited", "data": user})
}

// UpdateUserRole sets or clears the admin role row
// PUT /api/v1/users/:id/role
func (h *UserHandler) UpdateUserRole(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.UpdateRole(middleware.ActorFromCtx(c), userID, req.Role); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Role updated"})
}

// UpdateUserPermissions upserts the six-flag permission row
// PUT /api/v1/users/:id/permissions
func (h *UserHandler) UpdateUserPermissions(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var flags model.PermissionSet
	if err := c.BodyParser(&flags); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.UpdatePermissions(middleware.ActorFromCtx(c), userID, flags); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Permissions updated"})
}

// DeleteUser hard-deletes an account
// DELETE /api/v1/users/:id
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	if err := h.service.Delete(middleware.ActorFromCtx(c), userID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}

package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DDricck/price-pulse-product-manager/internal/middleware"
	"github.com/DDricck/price-pulse-product-manager/internal/service"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

// GetProducts lists products ordered by code.
// GET /api/v1/products?include_deleted=true (deleted rows admin-only)
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	includeDeleted := c.Query("include_deleted") == "true"

	products, err := h.service.List(actor, includeDeleted)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(products)
}

// CreateProduct handles product creation
// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.Create(middleware.ActorFromCtx(c), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

// UpdateProduct handles product update
// PUT /api/v1/products/:code
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	var req service.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	req.Code = c.Params("code")

	product, err := h.service.Update(middleware.ActorFromCtx(c), c.Params("code"), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

// DeleteProduct soft-deletes a product
// DELETE /api/v1/products/:code
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	product, err := h.service.Delete(middleware.ActorFromCtx(c), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted", "data": product})
}

// RestoreProduct flips a soft-deleted product back to active
// POST /api/v1/products/:code/restore
func (h *ProductHandler) RestoreProduct(c *fiber.Ctx) error {
	product, err := h.service.Restore(middleware.ActorFromCtx(c), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product restored", "data": product})
}

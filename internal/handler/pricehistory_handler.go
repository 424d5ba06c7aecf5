package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DDricck/price-pulse-product-manager/internal/middleware"
	"github.com/DDricck/price-pulse-product-manager/internal/service"
)

type PriceHistoryHandler struct {
	service service.PriceHistoryService
}

func NewPriceHistoryHandler(s service.PriceHistoryService) *PriceHistoryHandler {
	return &PriceHistoryHandler{service: s}
}

// GetHistory lists a product's price entries, newest first.
// GET /api/v1/products/:code/prices
func (h *PriceHistoryHandler) GetHistory(c *fiber.Ctx) error {
	entries, err := h.service.List(middleware.ActorFromCtx(c), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(entries)
}

// AddEntry creates a dated price entry
// POST /api/v1/products/:code/prices
func (h *PriceHistoryHandler) AddEntry(c *fiber.Ctx) error {
	var req service.PriceEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	entry, err := h.service.Add(middleware.ActorFromCtx(c), c.Params("code"), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Price added", "data": entry})
}

// EditEntry updates an entry identified by its original date; a new date
// moves the entry.
// PUT /api/v1/products/:code/prices/:date
func (h *PriceHistoryHandler) EditEntry(c *fiber.Ctx) error {
	var req service.PriceEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	entry, err := h.service.Edit(middleware.ActorFromCtx(c), c.Params("code"), c.Params("date"), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Price updated", "data": entry})
}

// DeleteEntry removes an entry
// DELETE /api/v1/products/:code/prices/:date
func (h *PriceHistoryHandler) DeleteEntry(c *fiber.Ctx) error {
	if err := h.service.Delete(middleware.ActorFromCtx(c), c.Params("code"), c.Params("date")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Price deleted"})
}

package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DDricck/price-pulse-product-manager/internal/apperr"
)

// writeError maps the error taxonomy onto HTTP statuses. Anything outside
// the taxonomy surfaces as a plain 500.
func writeError(c *fiber.Ctx, err error) error {
	status := 500
	switch apperr.KindOf(err) {
	case apperr.KindPermissionDenied:
		status = 403
	case apperr.KindValidation:
		status = 400
	case apperr.KindNotFound:
		status = 404
	case apperr.KindConflict:
		status = 409
	case apperr.KindBackend:
		status = 502
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/DDricck/price-pulse-product-manager/internal/authz"
	"github.com/DDricck/price-pulse-product-manager/internal/repository"
	"github.com/DDricck/price-pulse-product-manager/pkg/jwt"
)

const actorKey = "actor"

// RequireAuth validates the JWT, re-checks the session against the DB and
// resolves a fresh Actor (admin flag + permission flags) for downstream
// handlers. Permissions are never trusted from the token itself.
func RequireAuth(users repository.UserRepository, resolver *authz.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		user, err := users.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}
		if !user.IsActive {
			return c.Status(401).JSON(fiber.Map{"error": "User account is inactive"})
		}
		if user.TokenVersion != claims.TokenVersion {
			return c.Status(401).JSON(fiber.Map{"error": "Session expired (logged in on another device)"})
		}

		c.Locals(actorKey, resolver.Resolve(user))
		return c.Next()
	}
}

// RequireAdmin gates the user-management surface. Services re-verify the
// flag themselves; this keeps non-admins from even fetching data.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := c.Locals(actorKey).(authz.Actor)
		if !ok || !actor.IsAdmin {
			return c.Status(403).JSON(fiber.Map{"error": "Access denied: admin only"})
		}
		return c.Next()
	}
}

// ActorFromCtx returns the actor resolved by RequireAuth.
func ActorFromCtx(c *fiber.Ctx) authz.Actor {
	if actor, ok := c.Locals(actorKey).(authz.Actor); ok {
		return actor
	}
	return authz.Actor{}
}

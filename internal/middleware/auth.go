package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/staffdesk/backend/internal/auth"
	"github.com/staffdesk/backend/internal/config"
	"github.com/staffdesk/backend/internal/rbac"
	"go.uber.org/zap"
)

const (
	CtxUserID   = "user_id"
	CtxUserRole = "user_role"
	CtxUserName = "user_name"
)

func AuthMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
		}

		claims, err := auth.ParseJWT(cfg.JWTSecret, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals(CtxUserID, claims.UserID)
		c.Locals(CtxUserRole, claims.Role)
		c.Locals(CtxUserName, claims.Name)

		return c.Next()
	}
}

func GetUserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(CtxUserID).(uuid.UUID)
	return id
}

func GetUserRole(c *fiber.Ctx) string {
	role, _ := c.Locals(CtxUserRole).(string)
	return role
}

func GetUserName(c *fiber.Ctx) string {
	name, _ := c.Locals(CtxUserName).(string)
	return name
}

// RequirePermission gates a route on the rbac permission map.
func RequirePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !rbac.HasPermission(GetUserRole(c), permission) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient permissions"})
		}
		return c.Next()
	}
}

// AdminMiddleware requires the admin role claim.
func AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetUserRole(c) != rbac.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin access required"})
		}
		return c.Next()
	}
}

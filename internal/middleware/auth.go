package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pancakes/admin-service/internal/auth"
	"github.com/pancakes/admin-service/internal/config"
	"github.com/pancakes/admin-service/internal/http/dto"
	"github.com/pancakes/admin-service/internal/rbac"
	"github.com/pancakes/admin-service/internal/workflow"
	"go.uber.org/zap"
)

const (
	CtxAdminID = "admin_id"
	CtxRole    = "role"
)

// AuthMiddleware accepts admin bearer tokens issued by the auth gateway.
// A token without a subject is let through: the action runner answers 401 for it.
func AuthMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("missing authorization header"))
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("invalid authorization format"))
		}

		claims, err := auth.ParseJWT(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("invalid or expired token"))
		}

		c.Locals(CtxAdminID, claims.AdminID())
		c.Locals(CtxRole, claims.Role)

		return c.Next()
	}
}

func GetAdminID(c *fiber.Ctx) string {
	id, _ := c.Locals(CtxAdminID).(string)
	return id
}

func GetRole(c *fiber.Ctx) string {
	role, _ := c.Locals(CtxRole).(string)
	return role
}

// RequirePermission gates a route on the caller's role.
func RequirePermission(permission string, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if !rbac.HasPermission(role, permission) {
			log.Debug("permission denied",
				zap.String("admin_id", GetAdminID(c)),
				zap.String("role", role),
				zap.String("permission", permission),
			)
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail(workflow.MessageForbidden))
		}
		if rbac.IsDestructive(permission) {
			log.Info("destructive permission granted",
				zap.String("admin_id", GetAdminID(c)),
				zap.String("permission", permission),
				zap.String("path", c.Path()),
			)
		}
		return c.Next()
	}
}

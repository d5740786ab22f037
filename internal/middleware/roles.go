package middleware

import (
	common_models "go-dutyleave/internal/common/models"
	"go-dutyleave/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// Claims pulls the authenticated claims out of locals. Returns nil when the
// auth middleware did not run.
func Claims(c *fiber.Ctx) *utils.UserClaims {
	claims, _ := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	return claims
}

// RequireStudent allows only student tokens through.
func RequireStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Claims(c)
		if claims == nil || claims.Role != common_models.RoleStudent {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Only students can access this",
			})
		}
		return c.Next()
	}
}

// RequireFaculty allows only faculty tokens through.
func RequireFaculty() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Claims(c)
		if claims == nil || claims.Role != common_models.RoleFaculty {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Only faculty can access this",
			})
		}
		return c.Next()
	}
}

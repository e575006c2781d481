package middleware

import (
	config "github.com/akashpawar6363/sanjay-study-center/configs"
	"github.com/akashpawar6363/sanjay-study-center/models"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
)

func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(config.Config("JWT_SECRET")),
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or missing JWT", "data": nil})
}

func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CallerRole(c) != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: Admin access required",
			})
		}
		return c.Next()
	}
}

// StaffRequired admits both roles; admission creation is open to coordinators
// while edits and deletes stay admin-only.
func StaffRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := CallerRole(c)
		if role != models.RoleAdmin && role != models.RoleCoordinator {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: Staff access required",
			})
		}
		return c.Next()
	}
}

// CronProtected gates the scheduler endpoints with the shared bearer secret.
func CronProtected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		secret := config.Config("CRON_SECRET")
		if secret == "" || c.Get("Authorization") != "Bearer "+secret {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		return c.Next()
	}
}

func CallerRole(c *fiber.Ctx) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims := token.Claims.(jwt.MapClaims)
	role, _ := claims["role"].(string)
	return role
}

func CallerID(c *fiber.Ctx) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims := token.Claims.(jwt.MapClaims)
	id, _ := claims["user_id"].(string)
	return id
}

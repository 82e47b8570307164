package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"gobank/config"
	"gobank/controllers/auth"
	"gobank/store"
)

var (
	AuthzInvalidSession = "Invalid or expired session."
	ServerInternalError = "Unexpected error. Please try again later."
)

// Authenticate verifies the bearer session token and loads the matching
// client into the request locals.
func Authenticate(clients *store.ClientStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get("Authorization")
		if len(token) == 0 {
			return c.Status(401).JSON(fiber.Map{
				"errors": []string{AuthzInvalidSession},
			})
		}
		token = strings.Replace(token, "Bearer ", "", -1)

		claims, err := auth.ParseToken(token)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{
				"errors": []string{AuthzInvalidSession},
			})
		}

		client, found, err := clients.Find(claims.Document)
		if err != nil {
			config.Logger.Errorf("Failed to load client for session: %v", err)
			return c.Status(500).JSON(fiber.Map{
				"errors": []string{ServerInternalError},
			})
		}
		if !found {
			return c.Status(401).JSON(fiber.Map{
				"errors": []string{AuthzInvalidSession},
			})
		}

		c.Locals("CurrentClient", client)

		return c.Next()
	}
}

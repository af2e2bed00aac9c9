package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/monk-io/network-nexus-project/src/lib"
)

const subjectKey = "subject"

// Protect returns a middleware that rejects requests without a valid bearer
// token and stores the identity provider's subject claim on the request.
// No data access happens here; handlers resolve the subject to a profile.
func Protect(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Authorization header required"))
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Invalid authorization header format"))
		}

		claims, err := lib.VerifyToken(token, secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Invalid token"))
		}

		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Token has no subject"))
		}

		c.Locals(subjectKey, sub)

		return c.Next()
	}
}

// Subject returns the verified identity subject attached by Protect
func Subject(c *fiber.Ctx) string {
	sub, ok := c.Locals(subjectKey).(string)
	if !ok {
		return ""
	}
	return sub
}

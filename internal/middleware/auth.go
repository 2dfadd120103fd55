// Package middleware provides authentication, logging and request-context
// middleware for the application.
package middleware

import (
	"log/slog"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/token"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired enforces authentication for protected routes. It extracts
// the "Bearer <token>" credential, verifies it through the codec, and
// stores the verified user ID in c.Locals("userID"). Every failure mode
// yields the same 401 body; the reason is only logged. The gate performs
// no storage I/O.
func AuthRequired(codec *token.Codec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return reject(c, "missing header")
		}

		// Shape check before the codec is involved at all.
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return reject(c, "bad header format")
		}

		userID, err := codec.Verify(parts[1])
		if err != nil {
			return reject(c, err.Error())
		}

		c.Locals("userID", userID)
		return c.Next()
	}
}

func reject(c *fiber.Ctx, reason string) error {
	Logger.WarnContext(c.UserContext(), "unauthenticated request",
		slog.String("reason", reason),
		slog.String("path", c.Path()),
	)
	return models.RespondWithError(c, fiber.StatusUnauthorized,
		models.NewUnauthenticatedError("Invalid or missing token"))
}

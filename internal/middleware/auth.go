package middleware

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskboard/internal/auth"
	"taskboard/internal/repository"
	"taskboard/pkg/logger"
)

// LocalsUserKey is where RequireUser stores the resolved models.User.
const LocalsUserKey = "currentUser"

func unauthenticated(c *fiber.Ctx) error {
	c.Set("WWW-Authenticate", "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Could not validate credentials",
		"success": false,
		"status":  fiber.StatusUnauthorized,
	})
}

// RequireUser resolves the bearer token to a stored user. Every failure mode
// (missing header, malformed token, bad signature, expiry, unknown user)
// returns the same 401 so callers cannot probe which step failed.
func RequireUser(db *sql.DB, issuer auth.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthenticated(c)
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return unauthenticated(c)
		}

		email, err := issuer.DecodeToken(parts[1])
		if err != nil {
			logger.SecurityLogger.Warn("Token rejected", zap.Error(err))
			return unauthenticated(c)
		}

		user, err := repository.UserByEmail(db, email)
		if err != nil {
			logger.SecurityLogger.Warn("Token subject has no user", zap.String("email", email))
			return unauthenticated(c)
		}

		c.Locals(LocalsUserKey, user)
		return c.Next()
	}
}

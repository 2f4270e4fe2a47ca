package handlers

import (
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"taskboard/internal/auth"
	"taskboard/internal/middleware"
	"taskboard/internal/models"
)

// Handler carries the process-wide dependencies. It is constructed once in
// main and shared by every route; the *sql.DB does its own pooling.
type Handler struct {
	DB       *sql.DB
	Validate *validator.Validate
	Tokens   auth.TokenIssuer
}

func New(db *sql.DB, tokens auth.TokenIssuer) *Handler {
	return &Handler{
		DB:       db,
		Validate: validator.New(),
		Tokens:   tokens,
	}
}

// currentUser reads the user resolved by middleware.RequireUser. Only valid
// on routes registered behind that middleware.
func currentUser(c *fiber.Ctx) models.User {
	return c.Locals(middleware.LocalsUserKey).(models.User)
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"success": false,
		"status":  status,
	})
}

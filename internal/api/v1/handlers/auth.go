package handlers

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"taskboard/internal/auth"
	"taskboard/internal/models"
	"taskboard/internal/repository"
	"taskboard/pkg/logger"
)

// Register creates a new user account.
func (h *Handler) Register(c *fiber.Ctx) error {
	type RegisterRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8,max=72"`
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in register", zap.Error(err))
		return fail(c, fiber.StatusBadRequest, "Bad request")
	}

	if err := h.Validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during register", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  fiber.StatusBadRequest,
		})
	}

	// Read-then-write pre-check. Not race-proof on its own; the unique index
	// on email backstops it below.
	if _, err := repository.UserByEmail(h.DB, req.Email); err == nil {
		logger.SecurityLogger.Warn("Duplicate email on register", zap.String("email", req.Email))
		return fail(c, fiber.StatusBadRequest, "Email already registered")
	} else if err != sql.ErrNoRows {
		logger.ErrorLogger.Error("Error checking email", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Error creating user")
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.ErrorLogger.Error("Error hashing password", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Error hashing password")
	}

	user := models.User{Name: req.Name, Email: req.Email}
	err = h.DB.QueryRow(
		"INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id, created_at",
		req.Name, req.Email, passwordHash,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			logger.SecurityLogger.Warn("Duplicate email on register", zap.String("email", req.Email))
			return fail(c, fiber.StatusBadRequest, "Email already registered")
		}
		logger.ErrorLogger.Error("Error creating user", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Error creating user")
	}

	logger.AuditLogger.Info("User registered", zap.Int("user_id", user.ID))
	return c.Status(fiber.StatusCreated).JSON(user.View())
}

// Login verifies credentials and issues a bearer token. The form field is
// named username but carries the email.
func (h *Handler) Login(c *fiber.Ctx) error {
	type LoginRequest struct {
		Username string `json:"username" form:"username" validate:"required"`
		Password string `json:"password" form:"password" validate:"required"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in login", zap.Error(err))
		return fail(c, fiber.StatusBadRequest, "Bad request")
	}

	if err := h.Validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during login", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  fiber.StatusBadRequest,
		})
	}

	// Unknown email and wrong password collapse into one response.
	user, err := repository.UserByEmail(h.DB, req.Username)
	if err != nil || !auth.VerifyPassword(req.Password, user.PasswordHash) {
		logger.SecurityLogger.Warn("Failed login", zap.String("username", req.Username))
		return fail(c, fiber.StatusUnauthorized, "Incorrect email or password")
	}

	token, err := h.Tokens.CreateToken(user.Email)
	if err != nil {
		logger.ErrorLogger.Error("Error generating token", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Error generating token")
	}

	logger.AuditLogger.Info("Login success", zap.Int("user_id", user.ID))
	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Me returns the authenticated user's own profile.
func (h *Handler) Me(c *fiber.Ctx) error {
	return c.JSON(currentUser(c).View())
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskboard/internal/models"
	"taskboard/internal/repository"
	"taskboard/pkg/logger"
)

// CreateTag inserts into the global tag vocabulary. Tags have no owner and
// the route takes no token.
func (h *Handler) CreateTag(c *fiber.Ctx) error {
	type CreateTagRequest struct {
		Name  string  `json:"name" validate:"required"`
		Color *string `json:"color"`
	}

	var req CreateTagRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create tag", zap.Error(err))
		return fail(c, fiber.StatusBadRequest, "Bad request")
	}

	if err := h.Validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in create tag", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  fiber.StatusBadRequest,
		})
	}

	tag := models.Tag{Name: req.Name, Color: "#cccccc"}
	if req.Color != nil {
		tag.Color = *req.Color
	}

	// Duplicate names hit the unique index; no conflict mapping beyond that.
	err := h.DB.QueryRow(
		"INSERT INTO tags (name, color) VALUES ($1, $2) RETURNING id",
		tag.Name, tag.Color,
	).Scan(&tag.ID)
	if err != nil {
		logger.ErrorLogger.Error("Error creating tag", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Error creating tag")
	}

	logger.AuditLogger.Info("Tag created", zap.Int("tag_id", tag.ID), zap.String("name", tag.Name))
	return c.Status(fiber.StatusCreated).JSON(tag.View())
}

// ListTags returns every tag; the vocabulary is shared across users.
func (h *Handler) ListTags(c *fiber.Ctx) error {
	tags, err := repository.AllTags(h.DB)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tags", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Error fetching tags")
	}

	views := []models.TagView{}
	for _, tag := range tags {
		views = append(views, tag.View())
	}
	return c.JSON(views)
}

package handlers

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskboard/internal/models"
	"taskboard/internal/repository"
	"taskboard/pkg/logger"
)

// taskView resolves a task's tags and builds its read view.
func (h *Handler) taskView(task models.Task) (models.TaskView, error) {
	tags, err := repository.TaskTags(h.DB, task.ID)
	if err != nil {
		return models.TaskView{}, err
	}
	return task.View(tags), nil
}

// CreateTask inserts a task owned by the caller. Unknown tag ids are
// dropped, not errored: only the ids that resolve to tag rows get linked.
func (h *Handler) CreateTask(c *fiber.Ctx) error {
	user := currentUser(c)

	type CreateTaskRequest struct {
		Title       string     `json:"title" validate:"required"`
		Description *string    `json:"description"`
		Status      *string    `json:"status"`
		DueDate     *time.Time `json:"due_date"`
		TagIDs      []int      `json:"tag_ids"`
	}

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create task", zap.Error(err))
		return fail(c, fiber.StatusBadRequest, "Bad request")
	}

	if err := h.Validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in create task", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  fiber.StatusBadRequest,
		})
	}

	task := models.Task{
		OwnerID: user.ID,
		Title:   req.Title,
		Status:  "todo",
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Description != nil {
		task.Description = sql.NullString{String: *req.Description, Valid: true}
	}
	if req.DueDate != nil {
		task.DueDate = sql.NullTime{Time: *req.DueDate, Valid: true}
	}

	err := h.DB.QueryRow(
		"INSERT INTO tasks (owner_id, title, description, status, due_date) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at",
		task.OwnerID, task.Title, task.Description, task.Status, task.DueDate,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		logger.ErrorLogger.Error("Error creating task", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Error creating task")
	}

	if len(req.TagIDs) > 0 {
		if err := repository.ReplaceTaskTags(h.DB, task.ID, req.TagIDs); err != nil {
			logger.ErrorLogger.Error("Error linking tags", zap.Error(err))
			return fail(c, fiber.StatusInternalServerError, "Error linking tags")
		}
	}

	view, err := h.taskView(task)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching task tags", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Error fetching task tags")
	}

	logger.AuditLogger.Info("Task created", zap.Int("task_id", task.ID), zap.Int("owner_id", user.ID))
	return c.Status(fiber.StatusCreated).JSON(view)
}

// ListTasks returns the caller's tasks only. There is no admin override and
// no cross-user visibility.
func (h *Handler) ListTasks(c *fiber.Ctx) error {
	user := currentUser(c)

	rows, err := h.DB.Query(
		"SELECT id, owner_id, title, description, status, due_date, created_at, updated_at FROM tasks WHERE owner_id = $1 ORDER BY id",
		user.ID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tasks", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Error fetching tasks")
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		err := rows.Scan(&task.ID, &task.OwnerID, &task.Title, &task.Description,
			&task.Status, &task.DueDate, &task.CreatedAt, &task.UpdatedAt)
		if err != nil {
			logger.ErrorLogger.Error("Error scanning tasks", zap.Error(err))
			return fail(c, fiber.StatusInternalServerError, "Error scanning tasks")
		}
		tasks = append(tasks, task)
	}
	if err = rows.Err(); err != nil {
		logger.ErrorLogger.Error("Error iterating over tasks", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Error iterating over tasks")
	}

	views := []models.TaskView{}
	for _, task := range tasks {
		view, err := h.taskView(task)
		if err != nil {
			logger.ErrorLogger.Error("Error fetching task tags", zap.Error(err))
			return fail(c, fiber.StatusInternalServerError, "Error fetching task tags")
		}
		views = append(views, view)
	}

	return c.JSON(views)
}

// UpdateTask applies a partial update. Fields absent from the body keep
// their stored values; a present tag_ids replaces the whole tag set.
func (h *Handler) UpdateTask(c *fiber.Ctx) error {
	user := currentUser(c)

	taskID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid task ID", zap.Error(err))
		return fail(c, fiber.StatusBadRequest, "Invalid task ID")
	}

	task, err := repository.TaskByID(h.DB, taskID)
	if err == sql.ErrNoRows {
		return fail(c, fiber.StatusNotFound, "Task not found")
	} else if err != nil {
		logger.ErrorLogger.Error("Error fetching task", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Error fetching task")
	}

	if task.OwnerID != user.ID {
		logger.SecurityLogger.Warn("Forbidden task update",
			zap.Int("user_id", user.ID), zap.Int("task_id", taskID))
		return fail(c, fiber.StatusForbidden, "Not authorized to update this task")
	}

	var patch models.TaskPatch
	if err := c.BodyParser(&patch); err != nil {
		logger.ErrorLogger.Error("Bad request in update task", zap.Error(err))
		return fail(c, fiber.StatusBadRequest, "Bad request")
	}

	patch.Apply(&task)

	_, err = h.DB.Exec(
		"UPDATE tasks SET title = $1, description = $2, status = $3, due_date = $4, updated_at = CURRENT_TIMESTAMP WHERE id = $5",
		task.Title, task.Description, task.Status, task.DueDate, taskID,
	)
	if err != nil {
		logger.ErrorLogger.Error("Error updating task", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Error updating task")
	}

	if patch.TagIDs != nil {
		if err := repository.ReplaceTaskTags(h.DB, taskID, *patch.TagIDs); err != nil {
			logger.ErrorLogger.Error("Error replacing tags", zap.Error(err))
			return fail(c, fiber.StatusInternalServerError, "Error replacing tags")
		}
	}

	view, err := h.taskView(task)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching task tags", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Error fetching task tags")
	}

	logger.AuditLogger.Info("Task updated", zap.Int("task_id", taskID))
	return c.JSON(view)
}

// DeleteTask removes a task; its tag links go with it via the FK cascade.
func (h *Handler) DeleteTask(c *fiber.Ctx) error {
	user := currentUser(c)

	taskID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid task ID", zap.Error(err))
		return fail(c, fiber.StatusBadRequest, "Invalid task ID")
	}

	task, err := repository.TaskByID(h.DB, taskID)
	if err == sql.ErrNoRows {
		return fail(c, fiber.StatusNotFound, "Task not found")
	} else if err != nil {
		logger.ErrorLogger.Error("Error fetching task", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Error fetching task")
	}

	if task.OwnerID != user.ID {
		logger.SecurityLogger.Warn("Forbidden task delete",
			zap.Int("user_id", user.ID), zap.Int("task_id", taskID))
		return fail(c, fiber.StatusForbidden, "Not authorized to delete this task")
	}

	if _, err := h.DB.Exec("DELETE FROM tasks WHERE id = $1", taskID); err != nil {
		logger.ErrorLogger.Error("Error deleting task", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Error deleting task")
	}

	logger.AuditLogger.Info("Task deleted", zap.Int("task_id", taskID))
	return c.SendStatus(fiber.StatusNoContent)
}

package v1

import (
	"github.com/gofiber/fiber/v2"

	"taskboard/internal/api/v1/handlers"
)

// RegisterRoutes wires every endpoint under /api. requireUser is the bearer
// auth middleware; tag routes deliberately sit outside it.
func RegisterRoutes(app *fiber.App, h *handlers.Handler, requireUser fiber.Handler) {
	api := app.Group("/api")

	// Auth
	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", h.Register)
	authRoutes.Post("/login", h.Login)

	// User
	userRoutes := api.Group("/users", requireUser)
	userRoutes.Get("/me", h.Me)

	// Task
	taskRoutes := api.Group("/tasks", requireUser)
	taskRoutes.Post("/", h.CreateTask)
	taskRoutes.Get("/", h.ListTasks)
	taskRoutes.Put("/:id", h.UpdateTask)
	taskRoutes.Delete("/:id", h.DeleteTask)

	// Tag
	tagRoutes := api.Group("/tags")
	tagRoutes.Post("/", h.CreateTag)
	tagRoutes.Get("/", h.ListTags)
}

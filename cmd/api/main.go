package main

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"taskboard/configs"
	v1 "taskboard/internal/api/v1"
	"taskboard/internal/api/v1/handlers"
	"taskboard/internal/auth"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"
	"taskboard/pkg/database"
	"taskboard/pkg/logger"
)

func main() {
	cfg := configs.LoadConfig()

	logger.InitLoggers(cfg.LogDir)
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

	db := database.ConnectDB(cfg)
	defer db.Close()
	logger.SystemLogger.Info("Database connected")

	if err := repository.EnsureSchema(db); err != nil {
		logger.ErrorLogger.Fatal("Error creating tables", zap.Error(err))
	}

	tokens := auth.TokenIssuer{
		Secret: []byte(cfg.JWTSecret),
		TTL:    time.Duration(cfg.TokenTTLMin) * time.Minute,
	}
	h := handlers.New(db, tokens)

	app := fiber.New()
	app.Use(middleware.ErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	v1.RegisterRoutes(app, h, middleware.RequireUser(db, tokens))

	logger.SystemLogger.Info("Application ready", zap.Int("port", cfg.AppPort))
	if err := app.Listen(fmt.Sprintf(":%d", cfg.AppPort)); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
	}
}

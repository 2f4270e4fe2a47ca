package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     int
	DBHost      string
	DBPort      int
	DBUser      string
	DBPassword  string
	DBName      string
	JWTSecret   string
	TokenTTLMin int
	CORSOrigins string
	LogDir      string
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GO_ENV") != "test" {
			log.Println("No .env file found, using default values")
		}
	}

	return Config{
		AppPort:     envInt("APP_PORT", 3004),
		DBHost:      envString("DB_HOST", "localhost"),
		DBPort:      envInt("DB_PORT", 5432),
		DBUser:      envString("DB_USER", "postgres"),
		DBPassword:  envString("DB_PASSWORD", "postgres"),
		DBName:      envString("DB_NAME", "taskboard"),
		JWTSecret:   envString("JWT_SECRET", "secret"),
		TokenTTLMin: envInt("TOKEN_TTL_MIN", 60),
		// The Vite dev server origins the frontend runs on.
		CORSOrigins: envString("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173"),
		LogDir:      envString("LOG_DIR", "logs"),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

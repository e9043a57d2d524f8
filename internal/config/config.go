package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	Environment string

	// Database
	DatabaseURL    string
	MigrateOnStart bool

	// Redis
	RedisURL string

	// Server
	Port           string
	FrontendURL    string
	AllowedOrigins []string

	// Score receipts
	ReceiptSecret     string
	ReceiptTTLMinutes int

	// Leaderboard
	LeaderboardSize           int
	LeaderboardCacheSeconds   int
	LeaderboardRefreshSeconds int

	// Game
	GameVariant string
	TickRate    int

	// Terminal client
	APIBaseURL string
	PlayerName string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Database
		DatabaseURL:    getEnv("DATABASE_URL", "postgres://localhost:5432/shocktheblock?sslmode=disable"),
		MigrateOnStart: getEnvBool("MIGRATE_ON_START", true),

		// Redis
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		// Server
		Port:           getEnv("APP_PORT", "3000"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:5173"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS"),

		// Score receipts
		ReceiptSecret:     getEnv("RECEIPT_SECRET", "change-me-in-production"),
		ReceiptTTLMinutes: getEnvInt("RECEIPT_TTL_MINUTES", 30),

		// Leaderboard
		LeaderboardSize:           getEnvInt("LEADERBOARD_SIZE", 10),
		LeaderboardCacheSeconds:   getEnvInt("LEADERBOARD_CACHE_SECONDS", 60),
		LeaderboardRefreshSeconds: getEnvInt("LEADERBOARD_REFRESH_SECONDS", 30),

		// Game
		GameVariant: getEnv("GAME_VARIANT", "arcade"),
		TickRate:    getEnvInt("TICK_RATE", 60),

		// Terminal client
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:3000"),
		PlayerName: getEnv("PLAYER_NAME", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvList splits a comma-separated variable, dropping empty entries.
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
